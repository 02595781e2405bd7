package workflow

import (
	"testing"

	"certstock/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func medalQuantity(t *testing.T, db *gorm.DB, branchID uint) int {
	t.Helper()
	quantity, err := GetMedalStock(db, branchID)
	require.NoError(t, err)
	return quantity
}

func TestAddMedalStock(t *testing.T) {
	db := setupTestDB(t)
	head := createHeadBranch(t, db, "H01")

	require.NoError(t, AddMedalStock(db, testLogger(), head.ID, 5, 1, "ADMIN"))
	assert.Equal(t, 5, medalQuantity(t, db, head.ID))

	require.NoError(t, AddMedalStock(db, testLogger(), head.ID, 3, 1, "ADMIN"))
	assert.Equal(t, 8, medalQuantity(t, db, head.ID))

	assert.EqualValues(t, 2, countLogs(t, db, models.ActionMedalAdd))
}

func TestAddMedalStockInvalidQuantity(t *testing.T) {
	db := setupTestDB(t)
	head := createHeadBranch(t, db, "H01")

	assert.ErrorIs(t, AddMedalStock(db, testLogger(), head.ID, 0, 1, "ADMIN"), ErrValidation)
	assert.ErrorIs(t, AddMedalStock(db, testLogger(), head.ID, -4, 1, "ADMIN"), ErrValidation)
}

func TestConsumeMedal(t *testing.T) {
	db := setupTestDB(t)
	head := createHeadBranch(t, db, "H01")
	require.NoError(t, AddMedalStock(db, testLogger(), head.ID, 1, 1, "ADMIN"))

	require.NoError(t, ConsumeMedal(db, head.ID))
	assert.Equal(t, 0, medalQuantity(t, db, head.ID))

	// The counter must never go below zero
	assert.ErrorIs(t, ConsumeMedal(db, head.ID), ErrInsufficientMedalStock)
	assert.Equal(t, 0, medalQuantity(t, db, head.ID))
}

func TestTransferRequiresTransaction(t *testing.T) {
	db := setupTestDB(t)
	head := createHeadBranch(t, db, "H01")
	sub := createSubBranch(t, db, head, "S01")

	err := TransferMedalStock(db, testLogger(), head.ID, sub.ID, 1, 1, "ADMIN")
	assert.ErrorIs(t, err, ErrNotInTransaction)
}

func TestTransferInsufficientStock(t *testing.T) {
	db := setupTestDB(t)
	head := createHeadBranch(t, db, "H01")
	sub := createSubBranch(t, db, head, "S01")
	require.NoError(t, AddMedalStock(db, testLogger(), head.ID, 3, 1, "ADMIN"))

	err := db.Transaction(func(tx *gorm.DB) error {
		return TransferMedalStock(tx, testLogger(), head.ID, sub.ID, 5, 1, "ADMIN")
	})
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// A failed transfer leaves both branches untouched
	assert.Equal(t, 3, medalQuantity(t, db, head.ID))
	assert.Equal(t, 0, medalQuantity(t, db, sub.ID))
	assert.EqualValues(t, 0, countLogs(t, db, models.ActionMigrateOut))
}

func TestTransferMedalStock(t *testing.T) {
	db := setupTestDB(t)
	head := createHeadBranch(t, db, "H01")
	sub := createSubBranch(t, db, head, "S01")
	require.NoError(t, AddMedalStock(db, testLogger(), head.ID, 10, 1, "ADMIN"))

	err := db.Transaction(func(tx *gorm.DB) error {
		return TransferMedalStock(tx, testLogger(), head.ID, sub.ID, 4, 1, "ADMIN")
	})
	require.NoError(t, err)

	assert.Equal(t, 6, medalQuantity(t, db, head.ID))
	assert.Equal(t, 4, medalQuantity(t, db, sub.ID))

	assert.EqualValues(t, 1, countLogs(t, db, models.ActionMigrateOut))
	assert.EqualValues(t, 1, countLogs(t, db, models.ActionMigrateIn))
}

func TestTransferAcrossHeadBranchesFails(t *testing.T) {
	db := setupTestDB(t)
	headA := createHeadBranch(t, db, "H01")
	headB := createHeadBranch(t, db, "H02")
	require.NoError(t, AddMedalStock(db, testLogger(), headA.ID, 10, 1, "ADMIN"))

	err := db.Transaction(func(tx *gorm.DB) error {
		return TransferMedalStock(tx, testLogger(), headA.ID, headB.ID, 2, 1, "ADMIN")
	})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, 10, medalQuantity(t, db, headA.ID))
}

func TestInitMedalStockIdempotent(t *testing.T) {
	db := setupTestDB(t)
	head := createHeadBranch(t, db, "H01") // already initializes the row

	require.NoError(t, InitMedalStock(db, head.ID))
	require.NoError(t, InitMedalStock(db, head.ID))

	var count int64
	require.NoError(t, db.Model(&models.MedalStock{}).Where("branch_id = ?", head.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
	assert.Equal(t, 0, medalQuantity(t, db, head.ID))
}
