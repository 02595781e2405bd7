package models

import (
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// CertificateStatus defines the lifecycle status of a certificate
type CertificateStatus string

const (
	CertificateInStock  CertificateStatus = "in_stock"
	CertificateReserved CertificateStatus = "reserved"
	CertificatePrinted  CertificateStatus = "printed"
	CertificateMigrated CertificateStatus = "migrated"
)

// CertificateNumberPrefix is the display prefix of every certificate number
const CertificateNumberPrefix = "No. "

// Certificate represents one physical, sequentially numbered certificate.
// Number is never reused; HeadBranchID never changes after creation, while
// CurrentBranchID moves when the certificate is migrated to a sub-branch.
type Certificate struct {
	gorm.Model
	Number          string            `json:"number" gorm:"type:varchar(20);uniqueIndex;not null"`
	SerialNumber    int               `json:"serialNumber" gorm:"not null;index:idx_certificates_head_serial"`
	HeadBranchID    uint              `json:"headBranchId" gorm:"not null;index:idx_certificates_head_serial"`
	CurrentBranchID uint              `json:"currentBranchId" gorm:"not null;index"`
	Status          CertificateStatus `json:"status" gorm:"type:varchar(20);not null;default:'in_stock';index"`
	MedalIncluded   bool              `json:"medalIncluded" gorm:"default:false"`
	CreatedBy       uint              `json:"createdBy"`
}

func (Certificate) TableName() string {
	return "certificates"
}

// FormatCertificateNumber renders a serial as the boundary format "No. NNNNNN"
func FormatCertificateNumber(serial int) string {
	return fmt.Sprintf("%s%06d", CertificateNumberPrefix, serial)
}

// ParseCertificateNumber extracts the bare serial from a formatted number
func ParseCertificateNumber(number string) (int, error) {
	if !strings.HasPrefix(number, CertificateNumberPrefix) {
		return 0, fmt.Errorf("invalid certificate number format: %q", number)
	}
	serial, err := strconv.Atoi(strings.TrimPrefix(number, CertificateNumberPrefix))
	if err != nil {
		return 0, fmt.Errorf("invalid certificate number format: %q", number)
	}
	return serial, nil
}
