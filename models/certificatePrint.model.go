package models

import (
	"time"

	"gorm.io/gorm"
)

// CertificatePrint is one row per print or reprint of a certificate. The
// ledger is append-only: a reprint adds a new row and never touches the
// original, so the full print history of a certificate stays auditable.
type CertificatePrint struct {
	gorm.Model
	CertificateID uint      `json:"certificateId" gorm:"not null;index"`
	StudentName   string    `json:"studentName" gorm:"type:varchar(255);not null"`
	ModuleID      uint      `json:"moduleId" gorm:"not null"`
	PTCDate       time.Time `json:"ptcDate"`
	TeacherID     uint      `json:"teacherId" gorm:"not null;index"`
	BranchID      uint      `json:"branchId" gorm:"not null"`
	IsReprint     bool      `json:"isReprint" gorm:"default:false"`
	PrintedAt     time.Time `json:"printedAt" gorm:"not null;index"`
}

func (CertificatePrint) TableName() string {
	return "certificate_prints"
}
