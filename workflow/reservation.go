package workflow

import (
	"errors"
	"fmt"
	"time"

	"certstock/config"
	"certstock/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// MaxActiveReservations caps how many certificates one teacher may hold at
// the same time
const MaxActiveReservations = 5

func reservationTTL() time.Duration {
	if config.AppConfig != nil && config.AppConfig.ReservationTTLHours > 0 {
		return time.Duration(config.AppConfig.ReservationTTLHours) * time.Hour
	}
	return 24 * time.Hour
}

// teacherCanAccess checks that a teacher may act on a branch: their own
// branch, or a direct sub-branch when the teacher sits at the head branch.
func teacherCanAccess(teacher *models.User, branch *models.Branch) bool {
	if teacher.BranchID == branch.ID {
		return true
	}
	return branch.ParentID != nil && *branch.ParentID == teacher.BranchID
}

// ReserveCertificate claims the lowest-numbered available certificate at a
// branch for a teacher for the configured window (24h by default). The teacher
// row is locked first so the per-teacher cap holds under concurrent reserves;
// the certificate row is locked before the claim so two concurrent reserves
// can never pick the same certificate.
func ReserveCertificate(tx *gorm.DB, logger *logrus.Logger, teacherID, branchID uint) (*models.Certificate, *models.Reservation, error) {
	var teacher models.User
	// Locking the teacher row serializes concurrent reserves by the same
	// teacher, so the cap count below cannot race past the limit.
	if err := lockForUpdate(tx).Where("id = ? AND is_deleted = false", teacherID).First(&teacher).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("%w: teacher %d", ErrNotFound, teacherID)
		}
		return nil, nil, err
	}

	branch, err := getActiveBranch(tx, branchID)
	if err != nil {
		return nil, nil, err
	}
	if !teacherCanAccess(&teacher, branch) {
		return nil, nil, fmt.Errorf("%w: teacher %d has no access to branch %s", ErrAccessDenied, teacherID, branch.Code)
	}

	var activeCount int64
	err = tx.Model(&models.Reservation{}).
		Where("teacher_id = ? AND status = ?", teacherID, models.ReservationActive).
		Count(&activeCount).Error
	if err != nil {
		return nil, nil, err
	}
	if activeCount >= MaxActiveReservations {
		return nil, nil, fmt.Errorf("%w: limit is %d", ErrMaxReservations, MaxActiveReservations)
	}

	certificates, err := FindAvailableCertificates(tx, branchID, 1)
	if err != nil {
		return nil, nil, err
	}
	if len(certificates) == 0 {
		return nil, nil, fmt.Errorf("%w: branch %s", ErrNoStock, branch.Code)
	}
	certificate := certificates[0]

	now := time.Now()
	reservation := models.Reservation{
		CertificateID: certificate.ID,
		TeacherID:     teacherID,
		Status:        models.ReservationActive,
		ReservedAt:    now,
		ExpiresAt:     now.Add(reservationTTL()),
	}
	if err := tx.Create(&reservation).Error; err != nil {
		return nil, nil, err
	}

	if err := UpdateCertificateStatus(tx, certificate.ID, models.CertificateReserved); err != nil {
		return nil, nil, err
	}
	certificate.Status = models.CertificateReserved

	err = LogAction(tx, LogEntry{
		Action:        models.ActionReserve,
		ActorID:       teacherID,
		ActorRole:     string(models.RoleTeacher),
		CertificateID: uintPtr(certificate.ID),
		ToBranchID:    uintPtr(branchID),
		Metadata: map[string]interface{}{
			"number":    certificate.Number,
			"expiresAt": reservation.ExpiresAt,
		},
	})
	if err != nil {
		return nil, nil, err
	}

	logger.WithFields(logrus.Fields{
		"teacherId": teacherID,
		"number":    certificate.Number,
	}).Info("certificate reserved")
	return &certificate, &reservation, nil
}

// getActiveReservation loads the single active reservation of a certificate
func getActiveReservation(tx *gorm.DB, certificateID uint) (*models.Reservation, error) {
	var reservation models.Reservation
	err := tx.Where("certificate_id = ? AND status = ?", certificateID, models.ReservationActive).
		First(&reservation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: certificate %d", ErrNotReserved, certificateID)
		}
		return nil, err
	}
	return &reservation, nil
}

// ReleaseReservation hands a reserved certificate back to stock. Only the
// holding teacher may release; an already-expired hold is left for the
// sweeper instead of silently succeeding here.
func ReleaseReservation(tx *gorm.DB, logger *logrus.Logger, certificateID, teacherID uint) error {
	certificate, err := GetCertificate(tx, certificateID)
	if err != nil {
		return err
	}

	reservation, err := getActiveReservation(tx, certificateID)
	if err != nil {
		return err
	}
	if reservation.TeacherID != teacherID {
		return fmt.Errorf("%w: reservation is held by another teacher", ErrAccessDenied)
	}
	if time.Now().After(reservation.ExpiresAt) {
		return fmt.Errorf("%w: reservation %d", ErrReservationExpired, reservation.ID)
	}

	err = tx.Model(reservation).Update("status", models.ReservationReleased).Error
	if err != nil {
		return err
	}
	if err := UpdateCertificateStatus(tx, certificateID, models.CertificateInStock); err != nil {
		return err
	}

	err = LogAction(tx, LogEntry{
		Action:        models.ActionRelease,
		ActorID:       teacherID,
		ActorRole:     string(models.RoleTeacher),
		CertificateID: uintPtr(certificateID),
		Metadata: map[string]interface{}{
			"number": certificate.Number,
			"reason": "teacher_release",
		},
	})
	if err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"teacherId": teacherID,
		"number":    certificate.Number,
	}).Info("reservation released")
	return nil
}

// FindActiveReservationsByTeacher lists the live holds of one teacher,
// oldest first, with the certificate loaded.
func FindActiveReservationsByTeacher(tx *gorm.DB, teacherID uint) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := tx.Where("teacher_id = ? AND status = ?", teacherID, models.ReservationActive).
		Preload("Certificate").
		Order("reserved_at ASC").
		Find(&reservations).Error
	return reservations, err
}
