package workflow

import (
	"errors"
	"fmt"
	"time"

	"certstock/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// getPrintableModule validates that the requested module exists and is live
func getPrintableModule(tx *gorm.DB, moduleID uint) (*models.Module, error) {
	var module models.Module
	err := tx.Where("id = ? AND is_active = true AND is_deleted = false", moduleID).
		First(&module).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: module %d", ErrNotFound, moduleID)
		}
		return nil, err
	}
	return &module, nil
}

// PrintCertificate performs the first print of a reserved certificate: one
// medal is consumed from the certificate's current branch (when the
// certificate includes one), the reservation is consumed, the certificate
// becomes printed and an append-only print row is written. Any failure rolls
// the caller's transaction back in full, leaving the reservation active so
// the teacher can retry.
func PrintCertificate(tx *gorm.DB, logger *logrus.Logger, certificateID, teacherID uint, studentName string, moduleID uint, ptcDate time.Time) (*models.CertificatePrint, error) {
	certificate, err := GetCertificate(tx, certificateID)
	if err != nil {
		return nil, err
	}

	reservation, err := getActiveReservation(tx, certificateID)
	if err != nil {
		return nil, err
	}
	if reservation.TeacherID != teacherID {
		return nil, fmt.Errorf("%w: reservation is held by another teacher", ErrAccessDenied)
	}
	// The sweeper may not have run yet; an expired hold must not print.
	if time.Now().After(reservation.ExpiresAt) {
		return nil, fmt.Errorf("%w: reservation %d", ErrReservationExpired, reservation.ID)
	}

	module, err := getPrintableModule(tx, moduleID)
	if err != nil {
		return nil, err
	}

	if certificate.MedalIncluded {
		if err := ConsumeMedal(tx, certificate.CurrentBranchID); err != nil {
			return nil, err
		}
	}

	err = tx.Model(reservation).Update("status", models.ReservationConsumed).Error
	if err != nil {
		return nil, err
	}
	if err := UpdateCertificateStatus(tx, certificateID, models.CertificatePrinted); err != nil {
		return nil, err
	}

	printRecord := models.CertificatePrint{
		CertificateID: certificateID,
		StudentName:   studentName,
		ModuleID:      moduleID,
		PTCDate:       ptcDate,
		TeacherID:     teacherID,
		BranchID:      certificate.CurrentBranchID,
		IsReprint:     false,
		PrintedAt:     time.Now(),
	}
	if err := tx.Create(&printRecord).Error; err != nil {
		return nil, err
	}

	err = LogAction(tx, LogEntry{
		Action:        models.ActionPrint,
		ActorID:       teacherID,
		ActorRole:     string(models.RoleTeacher),
		CertificateID: uintPtr(certificateID),
		Metadata: map[string]interface{}{
			"number":      certificate.Number,
			"studentName": studentName,
			"moduleId":    moduleID,
			"moduleName":  module.Name,
		},
	})
	if err != nil {
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"teacherId": teacherID,
		"number":    certificate.Number,
		"module":    module.Name,
	}).Info("certificate printed")
	return &printRecord, nil
}

// ReprintCertificate appends a new print row for an already printed
// certificate. Only the teacher who made the original print may reprint, and
// a reprint never touches medal stock or the certificate status.
func ReprintCertificate(tx *gorm.DB, logger *logrus.Logger, certificateID, teacherID uint, studentName string, moduleID uint, ptcDate time.Time) (*models.CertificatePrint, error) {
	certificate, err := GetCertificate(tx, certificateID)
	if err != nil {
		return nil, err
	}
	if certificate.Status != models.CertificatePrinted {
		return nil, fmt.Errorf("%w: certificate %s has not been printed", ErrValidation, certificate.Number)
	}

	var original models.CertificatePrint
	err = tx.Where("certificate_id = ? AND is_reprint = false", certificateID).
		Order("printed_at ASC, id ASC").
		First(&original).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no print record for certificate %s", ErrNotFound, certificate.Number)
		}
		return nil, err
	}
	if original.TeacherID != teacherID {
		return nil, fmt.Errorf("%w: certificate was printed by another teacher", ErrAccessDenied)
	}

	module, err := getPrintableModule(tx, moduleID)
	if err != nil {
		return nil, err
	}

	printRecord := models.CertificatePrint{
		CertificateID: certificateID,
		StudentName:   studentName,
		ModuleID:      moduleID,
		PTCDate:       ptcDate,
		TeacherID:     teacherID,
		BranchID:      certificate.CurrentBranchID,
		IsReprint:     true,
		PrintedAt:     time.Now(),
	}
	if err := tx.Create(&printRecord).Error; err != nil {
		return nil, err
	}

	err = LogAction(tx, LogEntry{
		Action:        models.ActionReprint,
		ActorID:       teacherID,
		ActorRole:     string(models.RoleTeacher),
		CertificateID: uintPtr(certificateID),
		Metadata: map[string]interface{}{
			"number":      certificate.Number,
			"studentName": studentName,
			"moduleId":    moduleID,
			"moduleName":  module.Name,
		},
	})
	if err != nil {
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"teacherId": teacherID,
		"number":    certificate.Number,
	}).Info("certificate reprinted")
	return &printRecord, nil
}

// PrintHistory returns every print of a certificate in chronological order:
// the original first, reprints after it.
func PrintHistory(tx *gorm.DB, certificateID uint) ([]models.CertificatePrint, error) {
	var prints []models.CertificatePrint
	err := tx.Where("certificate_id = ?", certificateID).
		Order("printed_at ASC, id ASC").
		Find(&prints).Error
	return prints, err
}
