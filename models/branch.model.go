package models

import "gorm.io/gorm"

// Branch represents an organizational unit. Head branches own a certificate
// numbering space and may have sub-branches under them; a sub-branch always
// belongs to exactly one head branch via ParentID.
type Branch struct {
	gorm.Model
	Code         string `json:"code" gorm:"type:varchar(20);uniqueIndex;not null"`
	Name         string `json:"name" gorm:"type:varchar(100);not null"`
	IsHeadBranch bool   `json:"isHeadBranch" gorm:"default:false"`
	ParentID     *uint  `json:"parentId" gorm:"index"` // nil for head branches
	IsActive     bool   `json:"isActive" gorm:"default:true"`
}

func (Branch) TableName() string {
	return "branches"
}
