package models

import "gorm.io/gorm"

// MedalStock is the per-branch medal counter. Exactly one row per branch;
// Quantity never goes below zero and is only ever mutated with conditional
// updates inside a transaction.
type MedalStock struct {
	gorm.Model
	BranchID uint `json:"branchId" gorm:"uniqueIndex;not null"`
	Quantity int  `json:"quantity" gorm:"not null;default:0"`
}

func (MedalStock) TableName() string {
	return "medal_stocks"
}
