package workflow

import (
	"testing"
	"time"

	"certstock/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func backdateReservation(t *testing.T, db *gorm.DB, certificateID uint, expiresAt time.Time) {
	t.Helper()
	err := db.Model(&models.Reservation{}).
		Where("certificate_id = ? AND status = ?", certificateID, models.ReservationActive).
		Update("expires_at", expiresAt).Error
	require.NoError(t, err)
}

func TestSweepExpiredReservations(t *testing.T) {
	db := setupTestDB(t)
	head := createHeadBranch(t, db, "H01")
	teacher := createTeacher(t, db, head.ID, "t1@example.com")

	_, err := BulkCreateCertificates(db, testLogger(), head.ID, 1, 3, false, 1, "ADMIN")
	require.NoError(t, err)

	certificate, _, err := ReserveCertificate(db, testLogger(), teacher.ID, head.ID)
	require.NoError(t, err)
	backdateReservation(t, db, certificate.ID, time.Now().Add(-1*time.Hour))

	swept, err := SweepExpiredReservations(db, testLogger())
	require.NoError(t, err)
	assert.Equal(t, 1, swept)

	var reservation models.Reservation
	require.NoError(t, db.Where("certificate_id = ?", certificate.ID).First(&reservation).Error)
	assert.Equal(t, models.ReservationExpired, reservation.Status)

	var stored models.Certificate
	require.NoError(t, db.First(&stored, certificate.ID).Error)
	assert.Equal(t, models.CertificateInStock, stored.Status)

	var entry models.ActivityLog
	require.NoError(t, db.Where("action_type = ?", models.ActionRelease).First(&entry).Error)
	assert.Contains(t, string(entry.Metadata), "auto_expired")
	assert.Equal(t, "system", entry.ActorRole)

	// The reclaimed certificate can be reserved again right away
	again, _, err := ReserveCertificate(db, testLogger(), teacher.ID, head.ID)
	require.NoError(t, err)
	assert.Equal(t, certificate.Number, again.Number)
}

func TestSweepSkipsConsumedReservation(t *testing.T) {
	db := setupTestDB(t)
	head := createHeadBranch(t, db, "H01")
	teacher := createTeacher(t, db, head.ID, "t1@example.com")
	module := createModule(t, db)

	_, err := BulkCreateCertificates(db, testLogger(), head.ID, 1, 1, false, 1, "ADMIN")
	require.NoError(t, err)
	certificate, _, err := ReserveCertificate(db, testLogger(), teacher.ID, head.ID)
	require.NoError(t, err)
	_, err = PrintCertificate(db, testLogger(), certificate.ID, teacher.ID, "John Doe", module.ID, ptcDate)
	require.NoError(t, err)

	// The consumed hold ages past its window; a printed certificate must
	// never be pulled back into stock.
	err = db.Model(&models.Reservation{}).
		Where("certificate_id = ?", certificate.ID).
		Update("expires_at", time.Now().Add(-1*time.Hour)).Error
	require.NoError(t, err)

	swept, err := SweepExpiredReservations(db, testLogger())
	require.NoError(t, err)
	assert.Zero(t, swept)

	var stored models.Certificate
	require.NoError(t, db.First(&stored, certificate.ID).Error)
	assert.Equal(t, models.CertificatePrinted, stored.Status)

	var reservation models.Reservation
	require.NoError(t, db.Where("certificate_id = ?", certificate.ID).First(&reservation).Error)
	assert.Equal(t, models.ReservationConsumed, reservation.Status)
}

func TestSweepNothingExpired(t *testing.T) {
	db := setupTestDB(t)
	head := createHeadBranch(t, db, "H01")
	teacher := createTeacher(t, db, head.ID, "t1@example.com")

	_, err := BulkCreateCertificates(db, testLogger(), head.ID, 1, 1, false, 1, "ADMIN")
	require.NoError(t, err)
	_, _, err = ReserveCertificate(db, testLogger(), teacher.ID, head.ID)
	require.NoError(t, err)

	swept, err := SweepExpiredReservations(db, testLogger())
	require.NoError(t, err)
	assert.Zero(t, swept)

	reservations, err := FindActiveReservationsByTeacher(db, teacher.ID)
	require.NoError(t, err)
	assert.Len(t, reservations, 1)
	assert.EqualValues(t, 0, countLogs(t, db, models.ActionRelease))
}

func TestSweepLeavesLiveReservationsAlone(t *testing.T) {
	db := setupTestDB(t)
	head := createHeadBranch(t, db, "H01")
	teacher := createTeacher(t, db, head.ID, "t1@example.com")

	_, err := BulkCreateCertificates(db, testLogger(), head.ID, 1, 2, false, 1, "ADMIN")
	require.NoError(t, err)

	expired, _, err := ReserveCertificate(db, testLogger(), teacher.ID, head.ID)
	require.NoError(t, err)
	live, _, err := ReserveCertificate(db, testLogger(), teacher.ID, head.ID)
	require.NoError(t, err)
	backdateReservation(t, db, expired.ID, time.Now().Add(-5*time.Minute))

	swept, err := SweepExpiredReservations(db, testLogger())
	require.NoError(t, err)
	assert.Equal(t, 1, swept)

	reservations, err := FindActiveReservationsByTeacher(db, teacher.ID)
	require.NoError(t, err)
	require.Len(t, reservations, 1)
	assert.Equal(t, live.ID, reservations[0].CertificateID)
}
