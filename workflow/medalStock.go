package workflow

import (
	"errors"
	"fmt"

	"certstock/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InitMedalStock creates the zero-quantity stock row for a branch if it does
// not exist yet. Called whenever a branch is created so every branch always
// has exactly one stock row.
func InitMedalStock(tx *gorm.DB, branchID uint) error {
	row := models.MedalStock{BranchID: branchID, Quantity: 0}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "branch_id"}},
		DoNothing: true,
	}).Create(&row).Error
}

// AddMedalStock increments the medal counter of a branch, creating the row
// if the branch has none yet. Writes one "add" log entry.
func AddMedalStock(tx *gorm.DB, logger *logrus.Logger, branchID uint, quantity int, actorID uint, actorRole string) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be greater than 0", ErrValidation)
	}
	if _, err := getActiveBranch(tx, branchID); err != nil {
		return err
	}

	result := tx.Model(&models.MedalStock{}).
		Where("branch_id = ?", branchID).
		Update("quantity", gorm.Expr("quantity + ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		row := models.MedalStock{BranchID: branchID, Quantity: quantity}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}

	err := LogAction(tx, LogEntry{
		Action:     models.ActionMedalAdd,
		ActorID:    actorID,
		ActorRole:  actorRole,
		ToBranchID: uintPtr(branchID),
		Metadata:   map[string]interface{}{"quantity": quantity},
	})
	if err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{"branchId": branchID, "quantity": quantity}).Info("medal stock added")
	return nil
}

// ConsumeMedal decrements the branch counter by exactly one, but only when at
// least one medal is left. The conditional UPDATE keeps the counter from ever
// going negative under concurrent prints.
func ConsumeMedal(tx *gorm.DB, branchID uint) error {
	result := tx.Model(&models.MedalStock{}).
		Where("branch_id = ? AND quantity >= 1", branchID).
		Update("quantity", gorm.Expr("quantity - 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: branch %d", ErrInsufficientMedalStock, branchID)
	}
	return nil
}

// TransferMedalStock moves quantity medals from one branch to another. Must
// run inside an already-open transaction; a failed decrement aborts before
// the destination is touched, so a partial transfer is never persisted.
// Writes migrate_out and migrate_in log entries.
func TransferMedalStock(tx *gorm.DB, logger *logrus.Logger, fromBranchID, toBranchID uint, quantity int, actorID uint, actorRole string) error {
	if !inTransaction(tx) {
		return ErrNotInTransaction
	}
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be greater than 0", ErrValidation)
	}
	if fromBranchID == toBranchID {
		return fmt.Errorf("%w: source and destination branch are the same", ErrValidation)
	}

	fromBranch, err := getActiveBranch(tx, fromBranchID)
	if err != nil {
		return err
	}
	toBranch, err := getActiveBranch(tx, toBranchID)
	if err != nil {
		return err
	}
	if headBranchIDOf(fromBranch) != headBranchIDOf(toBranch) {
		return fmt.Errorf("%w: branches %s and %s belong to different head branches", ErrValidation, fromBranch.Code, toBranch.Code)
	}

	// Conditional decrement guards against racing consumptions without an
	// extra read.
	result := tx.Model(&models.MedalStock{}).
		Where("branch_id = ? AND quantity >= ?", fromBranchID, quantity).
		Update("quantity", gorm.Expr("quantity - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: branch %s has less than %d medals", ErrInsufficientStock, fromBranch.Code, quantity)
	}

	result = tx.Model(&models.MedalStock{}).
		Where("branch_id = ?", toBranchID).
		Update("quantity", gorm.Expr("quantity + ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		row := models.MedalStock{BranchID: toBranchID, Quantity: quantity}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}

	metadata := map[string]interface{}{"quantity": quantity}
	err = LogAction(tx, LogEntry{
		Action:       models.ActionMigrateOut,
		ActorID:      actorID,
		ActorRole:    actorRole,
		FromBranchID: uintPtr(fromBranchID),
		ToBranchID:   uintPtr(toBranchID),
		Metadata:     metadata,
	})
	if err != nil {
		return err
	}
	err = LogAction(tx, LogEntry{
		Action:       models.ActionMigrateIn,
		ActorID:      actorID,
		ActorRole:    actorRole,
		FromBranchID: uintPtr(fromBranchID),
		ToBranchID:   uintPtr(toBranchID),
		Metadata:     metadata,
	})
	if err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"fromBranchId": fromBranchID,
		"toBranchId":   toBranchID,
		"quantity":     quantity,
	}).Info("medal stock transferred")
	return nil
}

// GetMedalStock returns the current medal quantity of a branch. A branch
// without a stock row reports zero.
func GetMedalStock(tx *gorm.DB, branchID uint) (int, error) {
	var row models.MedalStock
	if err := tx.Where("branch_id = ?", branchID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return row.Quantity, nil
}
