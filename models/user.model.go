package models

import "gorm.io/gorm"

// UserRole defines the role of a user
type UserRole string

const (
	RoleTeacher UserRole = "TEACHER"
	RoleAdmin   UserRole = "ADMIN"
)

// User represents a teacher or a branch admin. Account management itself
// (registration, passwords) lives in a separate service; this table only
// carries what authorization checks need.
type User struct {
	gorm.Model
	Name      string   `json:"name" gorm:"type:varchar(100)"`
	Email     string   `json:"email" gorm:"type:varchar(255);uniqueIndex"`
	Role      UserRole `json:"role" gorm:"type:varchar(20);not null;default:'TEACHER'"`
	BranchID  uint     `json:"branchId" gorm:"index;not null"`
	IsDeleted bool     `json:"isDeleted" gorm:"default:false"`

	Branch Branch `gorm:"foreignKey:BranchID" json:"-"`
}

func (User) TableName() string {
	return "users"
}
