package workflow

import (
	"errors"
	"fmt"

	"certstock/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockForUpdate adds SELECT ... FOR UPDATE so a row cannot be claimed twice
// by concurrent transactions. sqlite (used in tests) is single-writer and
// rejects the clause, so it is skipped there.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// inTransaction reports whether tx is an open transaction rather than the
// raw connection pool.
func inTransaction(tx *gorm.DB) bool {
	_, ok := tx.Statement.ConnPool.(gorm.TxCommitter)
	return ok
}

// getActiveBranch loads a branch and fails if it is missing or deactivated
func getActiveBranch(tx *gorm.DB, branchID uint) (*models.Branch, error) {
	var branch models.Branch
	if err := tx.First(&branch, branchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: branch %d", ErrNotFound, branchID)
		}
		return nil, err
	}
	if !branch.IsActive {
		return nil, fmt.Errorf("%w: branch %s is not active", ErrValidation, branch.Code)
	}
	return &branch, nil
}

// headBranchIDOf resolves the head branch a branch belongs to (itself when
// it already is a head branch).
func headBranchIDOf(branch *models.Branch) uint {
	if branch.IsHeadBranch || branch.ParentID == nil {
		return branch.ID
	}
	return *branch.ParentID
}

func uintPtr(v uint) *uint {
	return &v
}
