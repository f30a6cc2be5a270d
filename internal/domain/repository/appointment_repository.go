package repository

import (
	"smarthealth/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id int) (*entity.Appointment, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error)
	// FindLatestByAvailabilityID resolves the current appointment for a slot:
	// the one with the highest id.
	FindLatestByAvailabilityID(db *gorm.DB, availabilityID int) (*entity.Appointment, error)
	UpdateStatus(db *gorm.DB, id int, status entity.AppointmentStatus) (int64, error)
	// UpdateStatusByAvailabilityID conditionally updates the appointment(s) of
	// a slot whose current status is in allowedCurrent; returns affected rows.
	UpdateStatusByAvailabilityID(db *gorm.DB, availabilityID int, status entity.AppointmentStatus, allowedCurrent []entity.AppointmentStatus) (int64, error)
	UpdateStatusByAvailabilityIDs(db *gorm.DB, availabilityIDs []int, status entity.AppointmentStatus, allowedCurrent []entity.AppointmentStatus) (int64, error)
}
