package models

import (
	"time"

	"gorm.io/gorm"
)

// CertificateMigration is the immutable record of a certificate moving from
// one branch to another. Migrations run as batches over a number range; every
// row of the same batch shares a BatchID.
type CertificateMigration struct {
	gorm.Model
	CertificateID uint      `json:"certificateId" gorm:"not null;index"`
	FromBranchID  uint      `json:"fromBranchId" gorm:"not null"`
	ToBranchID    uint      `json:"toBranchId" gorm:"not null;index"`
	MigratedBy    uint      `json:"migratedBy" gorm:"not null"`
	BatchID       string    `json:"batchId" gorm:"type:varchar(36);index"`
	MigratedAt    time.Time `json:"migratedAt" gorm:"not null"`
}

func (CertificateMigration) TableName() string {
	return "certificate_migrations"
}
