package workflow

import (
	"sync"
	"testing"
	"time"

	"certstock/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestReserveCertificate(t *testing.T) {
	db := setupTestDB(t)
	head := createHeadBranch(t, db, "H01")
	teacher := createTeacher(t, db, head.ID, "t1@example.com")

	_, err := BulkCreateCertificates(db, testLogger(), head.ID, 1, 3, false, 1, "ADMIN")
	require.NoError(t, err)

	certificate, reservation, err := ReserveCertificate(db, testLogger(), teacher.ID, head.ID)
	require.NoError(t, err)

	// The lowest available number is always handed out first
	assert.Equal(t, "No. 000001", certificate.Number)
	assert.Equal(t, models.CertificateReserved, certificate.Status)
	assert.Equal(t, models.ReservationActive, reservation.Status)
	assert.WithinDuration(t, reservation.ReservedAt.Add(24*time.Hour), reservation.ExpiresAt, time.Minute)

	assert.EqualValues(t, 1, countLogs(t, db, models.ActionReserve))

	// The next reserve picks the next number
	next, _, err := ReserveCertificate(db, testLogger(), teacher.ID, head.ID)
	require.NoError(t, err)
	assert.Equal(t, "No. 000002", next.Number)
}

func TestReserveCertificateCap(t *testing.T) {
	db := setupTestDB(t)
	head := createHeadBranch(t, db, "H01")
	teacher := createTeacher(t, db, head.ID, "t1@example.com")

	_, err := BulkCreateCertificates(db, testLogger(), head.ID, 1, 6, false, 1, "ADMIN")
	require.NoError(t, err)

	for i := 0; i < MaxActiveReservations; i++ {
		_, _, err := ReserveCertificate(db, testLogger(), teacher.ID, head.ID)
		require.NoError(t, err)
	}

	_, _, err = ReserveCertificate(db, testLogger(), teacher.ID, head.ID)
	assert.ErrorIs(t, err, ErrMaxReservations)

	// Existing reservations are untouched by the failed attempt
	reservations, err := FindActiveReservationsByTeacher(db, teacher.ID)
	require.NoError(t, err)
	assert.Len(t, reservations, MaxActiveReservations)
}

func TestReserveCertificateCapConcurrent(t *testing.T) {
	db := setupTestDB(t)
	head := createHeadBranch(t, db, "H01")
	teacher := createTeacher(t, db, head.ID, "t1@example.com")

	_, err := BulkCreateCertificates(db, testLogger(), head.ID, 1, 10, false, 1, "ADMIN")
	require.NoError(t, err)

	for i := 0; i < MaxActiveReservations-1; i++ {
		_, _, err := ReserveCertificate(db, testLogger(), teacher.ID, head.ID)
		require.NoError(t, err)
	}

	// Two simultaneous reserves race for the last slot. The teacher row lock
	// serializes them, so at most one may win.
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			db.Transaction(func(tx *gorm.DB) error {
				_, _, err := ReserveCertificate(tx, testLogger(), teacher.ID, head.ID)
				return err
			})
		}()
	}
	wg.Wait()

	reservations, err := FindActiveReservationsByTeacher(db, teacher.ID)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(reservations), MaxActiveReservations)
}

func TestReserveCertificateNoStock(t *testing.T) {
	db := setupTestDB(t)
	head := createHeadBranch(t, db, "H01")
	teacher := createTeacher(t, db, head.ID, "t1@example.com")

	_, _, err := ReserveCertificate(db, testLogger(), teacher.ID, head.ID)
	assert.ErrorIs(t, err, ErrNoStock)
}

func TestReserveCertificateAccessDenied(t *testing.T) {
	db := setupTestDB(t)
	headA := createHeadBranch(t, db, "H01")
	headB := createHeadBranch(t, db, "H02")
	outsider := createTeacher(t, db, headB.ID, "t2@example.com")

	_, err := BulkCreateCertificates(db, testLogger(), headA.ID, 1, 3, false, 1, "ADMIN")
	require.NoError(t, err)

	_, _, err = ReserveCertificate(db, testLogger(), outsider.ID, headA.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestReserveAtSubBranchByHeadTeacher(t *testing.T) {
	db := setupTestDB(t)
	head := createHeadBranch(t, db, "H01")
	sub := createSubBranch(t, db, head, "S01")
	teacher := createTeacher(t, db, head.ID, "t1@example.com")

	_, err := BulkCreateCertificates(db, testLogger(), head.ID, 1, 5, false, 1, "ADMIN")
	require.NoError(t, err)
	_, err = MigrateCertificateRange(db, testLogger(), head.ID, 1, 5, sub.ID, 1, "ADMIN")
	require.NoError(t, err)

	certificate, _, err := ReserveCertificate(db, testLogger(), teacher.ID, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, sub.ID, certificate.CurrentBranchID)
}

func TestReleaseReservation(t *testing.T) {
	db := setupTestDB(t)
	head := createHeadBranch(t, db, "H01")
	teacher := createTeacher(t, db, head.ID, "t1@example.com")

	_, err := BulkCreateCertificates(db, testLogger(), head.ID, 1, 3, false, 1, "ADMIN")
	require.NoError(t, err)

	certificate, _, err := ReserveCertificate(db, testLogger(), teacher.ID, head.ID)
	require.NoError(t, err)

	require.NoError(t, ReleaseReservation(db, testLogger(), certificate.ID, teacher.ID))

	var stored models.Certificate
	require.NoError(t, db.First(&stored, certificate.ID).Error)
	assert.Equal(t, models.CertificateInStock, stored.Status)

	var reservation models.Reservation
	require.NoError(t, db.Where("certificate_id = ?", certificate.ID).First(&reservation).Error)
	assert.Equal(t, models.ReservationReleased, reservation.Status)

	var entry models.ActivityLog
	require.NoError(t, db.Where("action_type = ?", models.ActionRelease).First(&entry).Error)
	assert.Contains(t, string(entry.Metadata), "teacher_release")

	// The released certificate goes back to the front of the pool
	again, _, err := ReserveCertificate(db, testLogger(), teacher.ID, head.ID)
	require.NoError(t, err)
	assert.Equal(t, certificate.Number, again.Number)
}

func TestReleaseByOtherTeacherDenied(t *testing.T) {
	db := setupTestDB(t)
	head := createHeadBranch(t, db, "H01")
	holder := createTeacher(t, db, head.ID, "t1@example.com")
	other := createTeacher(t, db, head.ID, "t2@example.com")

	_, err := BulkCreateCertificates(db, testLogger(), head.ID, 1, 3, false, 1, "ADMIN")
	require.NoError(t, err)

	certificate, _, err := ReserveCertificate(db, testLogger(), holder.ID, head.ID)
	require.NoError(t, err)

	err = ReleaseReservation(db, testLogger(), certificate.ID, other.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	reservations, err := FindActiveReservationsByTeacher(db, holder.ID)
	require.NoError(t, err)
	assert.Len(t, reservations, 1)
}

func TestReleaseWithoutReservation(t *testing.T) {
	db := setupTestDB(t)
	head := createHeadBranch(t, db, "H01")
	teacher := createTeacher(t, db, head.ID, "t1@example.com")

	certificates, err := BulkCreateCertificates(db, testLogger(), head.ID, 1, 1, false, 1, "ADMIN")
	require.NoError(t, err)

	err = ReleaseReservation(db, testLogger(), certificates[0].ID, teacher.ID)
	assert.ErrorIs(t, err, ErrNotReserved)
}

func TestFindActiveReservationsByTeacher(t *testing.T) {
	db := setupTestDB(t)
	head := createHeadBranch(t, db, "H01")
	teacher := createTeacher(t, db, head.ID, "t1@example.com")

	_, err := BulkCreateCertificates(db, testLogger(), head.ID, 1, 3, false, 1, "ADMIN")
	require.NoError(t, err)

	first, _, err := ReserveCertificate(db, testLogger(), teacher.ID, head.ID)
	require.NoError(t, err)
	_, _, err = ReserveCertificate(db, testLogger(), teacher.ID, head.ID)
	require.NoError(t, err)

	reservations, err := FindActiveReservationsByTeacher(db, teacher.ID)
	require.NoError(t, err)
	require.Len(t, reservations, 2)
	assert.Equal(t, first.ID, reservations[0].CertificateID)
	assert.Equal(t, first.Number, reservations[0].Certificate.Number)
}
