package workflow

import (
	"errors"
	"fmt"

	"certstock/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// MaxBulkCreateSize caps how many certificates one bulk create may produce
const MaxBulkCreateSize = 10000

// StockCount holds the per-status certificate counts of a branch
type StockCount struct {
	InStock  int64 `json:"in_stock"`
	Reserved int64 `json:"reserved"`
	Printed  int64 `json:"printed"`
	Migrated int64 `json:"migrated"`
	Total    int64 `json:"total"`
}

// BulkCreateCertificates inserts certificates numbered startN..endN for a
// head branch. All rows land in one batch with status in_stock at the head
// branch, followed by a single bulk_create log entry. Fails without writing
// anything if any number in the range already exists.
func BulkCreateCertificates(tx *gorm.DB, logger *logrus.Logger, headBranchID uint, startN, endN int, withMedal bool, createdBy uint, actorRole string) ([]models.Certificate, error) {
	if startN < 1 || endN < 1 || startN > endN {
		return nil, fmt.Errorf("%w: %d..%d", ErrInvalidRange, startN, endN)
	}
	count := endN - startN + 1
	if count > MaxBulkCreateSize {
		return nil, fmt.Errorf("%w: %d > %d", ErrRangeTooLarge, count, MaxBulkCreateSize)
	}

	branch, err := getActiveBranch(tx, headBranchID)
	if err != nil {
		return nil, err
	}
	if !branch.IsHeadBranch {
		return nil, fmt.Errorf("%w: branch %s is not a head branch", ErrValidation, branch.Code)
	}

	// Numbers are globally unique, so a serial collision anywhere blocks the
	// whole range.
	var existing int64
	if err := tx.Model(&models.Certificate{}).
		Where("serial_number BETWEEN ? AND ?", startN, endN).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, fmt.Errorf("%w: %d of %d numbers taken", ErrDuplicateRange, existing, count)
	}

	certificates := make([]models.Certificate, 0, count)
	for serial := startN; serial <= endN; serial++ {
		certificates = append(certificates, models.Certificate{
			Number:          models.FormatCertificateNumber(serial),
			SerialNumber:    serial,
			HeadBranchID:    headBranchID,
			CurrentBranchID: headBranchID,
			Status:          models.CertificateInStock,
			MedalIncluded:   withMedal,
			CreatedBy:       createdBy,
		})
	}
	if err := tx.CreateInBatches(&certificates, 500).Error; err != nil {
		// A racing bulk create can slip past the count above; the unique
		// index on number is the backstop.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: numbers collided on insert", ErrDuplicateRange)
		}
		return nil, err
	}

	batchID := uuid.NewString()
	err = LogAction(tx, LogEntry{
		Action:       models.ActionBulkCreate,
		ActorID:      createdBy,
		ActorRole:    actorRole,
		ToBranchID:   uintPtr(headBranchID),
		Metadata: map[string]interface{}{
			"batchId":     batchID,
			"startNumber": startN,
			"endNumber":   endN,
			"count":       count,
			"withMedal":   withMedal,
		},
	})
	if err != nil {
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"branchId": headBranchID,
		"batchId":  batchID,
		"count":    count,
	}).Info("bulk created certificates")

	return certificates, nil
}

// FindAvailableCertificates returns in-stock certificates at a branch with no
// active reservation, lowest number first, locked for update so concurrent
// reservations cannot pick the same row.
func FindAvailableCertificates(tx *gorm.DB, branchID uint, limit int) ([]models.Certificate, error) {
	activeReservations := tx.Model(&models.Reservation{}).
		Select("certificate_id").
		Where("status = ?", models.ReservationActive)

	var certificates []models.Certificate
	err := lockForUpdate(tx).
		Where("current_branch_id = ? AND status = ?", branchID, models.CertificateInStock).
		Where("id NOT IN (?)", activeReservations).
		Order("serial_number ASC").
		Limit(limit).
		Find(&certificates).Error
	return certificates, err
}

// UpdateCertificateLocation moves a certificate to a new branch and resets it
// to in_stock. Only migration uses this.
func UpdateCertificateLocation(tx *gorm.DB, certificateID, newBranchID uint) error {
	result := tx.Model(&models.Certificate{}).
		Where("id = ?", certificateID).
		Updates(map[string]interface{}{
			"current_branch_id": newBranchID,
			"status":            models.CertificateInStock,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: certificate %d", ErrNotFound, certificateID)
	}
	return nil
}

// UpdateCertificateStatus sets the lifecycle status of a certificate
func UpdateCertificateStatus(tx *gorm.DB, certificateID uint, status models.CertificateStatus) error {
	result := tx.Model(&models.Certificate{}).
		Where("id = ?", certificateID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: certificate %d", ErrNotFound, certificateID)
	}
	return nil
}

// GetStockCount returns certificate counts grouped by status for one branch
func GetStockCount(tx *gorm.DB, branchID uint) (*StockCount, error) {
	var rows []struct {
		Status models.CertificateStatus
		Count  int64
	}
	err := tx.Model(&models.Certificate{}).
		Select("status, count(*) as count").
		Where("current_branch_id = ?", branchID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := &StockCount{}
	for _, row := range rows {
		switch row.Status {
		case models.CertificateInStock:
			counts.InStock = row.Count
		case models.CertificateReserved:
			counts.Reserved = row.Count
		case models.CertificatePrinted:
			counts.Printed = row.Count
		case models.CertificateMigrated:
			counts.Migrated = row.Count
		}
		counts.Total += row.Count
	}
	return counts, nil
}

// GetCertificate loads one certificate row, locked for update
func GetCertificate(tx *gorm.DB, certificateID uint) (*models.Certificate, error) {
	var certificate models.Certificate
	if err := lockForUpdate(tx).First(&certificate, certificateID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: certificate %d", ErrNotFound, certificateID)
		}
		return nil, err
	}
	return &certificate, nil
}
