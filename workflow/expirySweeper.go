package workflow

import (
	"time"

	"certstock/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SweepExpiredReservations runs one reservation expiry sweep in its own
// transaction: every active reservation past its window is expired, the
// certificate returns to stock and a release log entry tagged auto_expired is
// written. Finding nothing leaves no side effects at all. Returns the number
// of reservations reclaimed.
//
// This is the only path allowed to close reservations without a
// holding-teacher check.
func SweepExpiredReservations(db *gorm.DB, logger *logrus.Logger) (int, error) {
	swept := 0
	err := db.Transaction(func(tx *gorm.DB) error {
		var expired []models.Reservation
		err := tx.Where("status = ? AND expires_at <= ?", models.ReservationActive, time.Now()).
			Find(&expired).Error
		if err != nil {
			return err
		}

		for _, reservation := range expired {
			// Certificate first, reservation second: the same lock order as
			// printing, so a print racing the sweep at the expiry boundary
			// blocks instead of deadlocking.
			if _, err := GetCertificate(tx, reservation.CertificateID); err != nil {
				return err
			}

			// The hold may have been consumed or released between the scan
			// and the certificate lock; transition only a still-expired
			// active hold.
			result := tx.Model(&models.Reservation{}).
				Where("id = ? AND status = ? AND expires_at <= ?",
					reservation.ID, models.ReservationActive, time.Now()).
				Update("status", models.ReservationExpired)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				continue
			}

			if err := UpdateCertificateStatus(tx, reservation.CertificateID, models.CertificateInStock); err != nil {
				return err
			}
			err = LogAction(tx, LogEntry{
				Action:        models.ActionRelease,
				ActorID:       reservation.TeacherID,
				ActorRole:     "system",
				CertificateID: uintPtr(reservation.CertificateID),
				Metadata: map[string]interface{}{
					"reason":        "auto_expired",
					"reservationId": reservation.ID,
				},
			})
			if err != nil {
				return err
			}
			swept++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if swept > 0 {
		logger.WithField("count", swept).Info("expired reservations reclaimed")
	}
	return swept, nil
}
