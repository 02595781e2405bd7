package models

import (
	"time"

	"gorm.io/gorm"
)

// ReservationStatus defines the status of a certificate reservation
type ReservationStatus string

const (
	ReservationActive   ReservationStatus = "active"
	ReservationReleased ReservationStatus = "released"
	ReservationConsumed ReservationStatus = "consumed" // reservation ended by a successful print
	ReservationExpired  ReservationStatus = "expired"
)

// Reservation is a time-bounded claim binding one certificate to one teacher.
// At most one active reservation exists per certificate; rows are never
// deleted, only transitioned out of the active status.
type Reservation struct {
	gorm.Model
	CertificateID uint              `json:"certificateId" gorm:"not null;index"`
	TeacherID     uint              `json:"teacherId" gorm:"not null;index"`
	Status        ReservationStatus `json:"status" gorm:"type:varchar(20);not null;default:'active';index"`
	ReservedAt    time.Time         `json:"reservedAt" gorm:"not null"`
	ExpiresAt     time.Time         `json:"expiresAt" gorm:"not null;index"`

	Certificate Certificate `gorm:"foreignKey:CertificateID" json:"certificate"`
}

func (Reservation) TableName() string {
	return "reservations"
}
