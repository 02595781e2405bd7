package workflow

import (
	"io"
	"path/filepath"
	"testing"

	"certstock/models"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// setupTestDB opens a throwaway sqlite database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Branch{},
		&models.User{},
		&models.Division{},
		&models.Module{},
		&models.Certificate{},
		&models.Reservation{},
		&models.CertificatePrint{},
		&models.MedalStock{},
		&models.CertificateMigration{},
		&models.ActivityLog{},
	))
	return db
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func createHeadBranch(t *testing.T, db *gorm.DB, code string) models.Branch {
	t.Helper()
	branch := models.Branch{Code: code, Name: "Head " + code, IsHeadBranch: true, IsActive: true}
	require.NoError(t, db.Create(&branch).Error)
	require.NoError(t, InitMedalStock(db, branch.ID))
	return branch
}

func createSubBranch(t *testing.T, db *gorm.DB, parent models.Branch, code string) models.Branch {
	t.Helper()
	parentID := parent.ID
	branch := models.Branch{Code: code, Name: "Sub " + code, ParentID: &parentID, IsActive: true}
	require.NoError(t, db.Create(&branch).Error)
	require.NoError(t, InitMedalStock(db, branch.ID))
	return branch
}

func createTeacher(t *testing.T, db *gorm.DB, branchID uint, email string) models.User {
	t.Helper()
	teacher := models.User{Name: "Teacher " + email, Email: email, Role: models.RoleTeacher, BranchID: branchID}
	require.NoError(t, db.Create(&teacher).Error)
	return teacher
}

func createModule(t *testing.T, db *gorm.DB) models.Module {
	t.Helper()
	division := models.Division{Name: "Primary"}
	require.NoError(t, db.Create(&division).Error)
	module := models.Module{DivisionID: division.ID, Name: "Arithmetic Level 1", IsActive: true}
	require.NoError(t, db.Create(&module).Error)
	return module
}

func countLogs(t *testing.T, db *gorm.DB, action models.ActionType) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.ActivityLog{}).Where("action_type = ?", action).Count(&count).Error)
	return count
}
