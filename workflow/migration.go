package workflow

import (
	"fmt"
	"time"

	"certstock/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// MigrateCertificateRange relocates every certificate numbered startN..endN
// of a head branch to one of its sub-branches. The whole range must be
// in_stock: a single reserved or printed certificate in the range aborts the
// migration with zero rows moved. One migration record is written per
// certificate (sharing a batch id) plus a single summary log entry.
func MigrateCertificateRange(tx *gorm.DB, logger *logrus.Logger, headBranchID uint, startN, endN int, toBranchID, actorID uint, actorRole string) (int, error) {
	if startN < 1 || endN < 1 || startN > endN {
		return 0, fmt.Errorf("%w: %d..%d", ErrInvalidRange, startN, endN)
	}

	toBranch, err := getActiveBranch(tx, toBranchID)
	if err != nil {
		return 0, err
	}
	if toBranch.IsHeadBranch || toBranch.ParentID == nil || *toBranch.ParentID != headBranchID {
		return 0, fmt.Errorf("%w: branch %s is not a sub-branch of head branch %d", ErrValidation, toBranch.Code, headBranchID)
	}

	var certificates []models.Certificate
	err = lockForUpdate(tx).
		Where("head_branch_id = ? AND serial_number BETWEEN ? AND ?", headBranchID, startN, endN).
		Order("serial_number ASC").
		Find(&certificates).Error
	if err != nil {
		return 0, err
	}
	if len(certificates) == 0 {
		return 0, fmt.Errorf("%w: %d..%d at head branch %d", ErrEmptyRange, startN, endN, headBranchID)
	}

	conflicting := 0
	for _, certificate := range certificates {
		if certificate.Status != models.CertificateInStock {
			conflicting++
		}
	}
	if conflicting > 0 {
		return 0, fmt.Errorf("%w: %d of %d certificates are not in stock", ErrCannotMigrate, conflicting, len(certificates))
	}

	batchID := uuid.NewString()
	now := time.Now()
	migrations := make([]models.CertificateMigration, 0, len(certificates))
	for _, certificate := range certificates {
		migrations = append(migrations, models.CertificateMigration{
			CertificateID: certificate.ID,
			FromBranchID:  certificate.CurrentBranchID,
			ToBranchID:    toBranchID,
			MigratedBy:    actorID,
			BatchID:       batchID,
			MigratedAt:    now,
		})
	}

	result := tx.Model(&models.Certificate{}).
		Where("head_branch_id = ? AND serial_number BETWEEN ? AND ?", headBranchID, startN, endN).
		Updates(map[string]interface{}{
			"current_branch_id": toBranchID,
			"status":            models.CertificateInStock,
		})
	if result.Error != nil {
		return 0, result.Error
	}

	if err := tx.CreateInBatches(&migrations, 500).Error; err != nil {
		return 0, err
	}

	err = LogAction(tx, LogEntry{
		Action:       models.ActionMigrate,
		ActorID:      actorID,
		ActorRole:    actorRole,
		FromBranchID: uintPtr(headBranchID),
		ToBranchID:   uintPtr(toBranchID),
		Metadata: map[string]interface{}{
			"batchId":     batchID,
			"startNumber": startN,
			"endNumber":   endN,
			"count":       len(certificates),
		},
	})
	if err != nil {
		return 0, err
	}

	logger.WithFields(logrus.Fields{
		"headBranchId": headBranchID,
		"toBranchId":   toBranchID,
		"batchId":      batchID,
		"count":        len(certificates),
	}).Info("certificates migrated")
	return len(certificates), nil
}
