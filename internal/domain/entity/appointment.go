package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusBooked     AppointmentStatus = "BOOKED"      // booked by a patient
	AppointmentStatusApproved   AppointmentStatus = "APPROVED"    // approved by the doctor
	AppointmentStatusRejected   AppointmentStatus = "REJECTED"    // rejected by the doctor
	AppointmentStatusCompleted  AppointmentStatus = "COMPLETED"   // consultation done
	AppointmentStatusPCancelled AppointmentStatus = "P_CANCELLED" // cancelled by the patient
	AppointmentStatusDCancelled AppointmentStatus = "D_CANCELLED" // cancelled by the doctor
)

// IsTerminal reports whether no further transition is allowed from this status
func (s AppointmentStatus) IsTerminal() bool {
	switch s {
	case AppointmentStatusRejected, AppointmentStatusCompleted,
		AppointmentStatusPCancelled, AppointmentStatusDCancelled:
		return true
	}
	return false
}

// Appointment references one availability slot and one patient. Multiple
// historical appointments may reference the same slot across cancel/rebook
// cycles; the one with the highest id is the current one.
type Appointment struct {
	ID             int               `gorm:"primaryKey;autoIncrement" json:"id"`
	AvailabilityID int               `gorm:"not null;index" json:"availability_id"`
	PatientID      uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	SubProfileID   *int              `gorm:"index" json:"sub_profile_id,omitempty"`
	Status         AppointmentStatus `gorm:"type:varchar(20);not null;default:'BOOKED';index" json:"status"`
	Note           string            `gorm:"type:varchar(500)" json:"note,omitempty"`
	CreatedAt      time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Availability Availability   `gorm:"foreignKey:AvailabilityID" json:"availability,omitempty"`
	Patient      PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	SubProfile   *SubProfile    `gorm:"foreignKey:SubProfileID" json:"sub_profile,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}
