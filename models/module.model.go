package models

import "gorm.io/gorm"

// Division groups teaching modules (e.g. a curriculum level)
type Division struct {
	gorm.Model
	Name      string `json:"name" gorm:"type:varchar(100);not null"`
	IsDeleted bool   `json:"isDeleted" gorm:"default:false"`
}

func (Division) TableName() string {
	return "divisions"
}

// Module represents a teaching module a certificate can be printed for.
// The engine only reads this table to validate print requests.
type Module struct {
	gorm.Model
	DivisionID uint   `json:"divisionId" gorm:"index;not null"`
	Name       string `json:"name" gorm:"type:varchar(100);not null"`
	IsActive   bool   `json:"isActive" gorm:"default:true"`
	IsDeleted  bool   `json:"isDeleted" gorm:"default:false"`

	Division Division `gorm:"foreignKey:DivisionID" json:"-"`
}

func (Module) TableName() string {
	return "modules"
}
