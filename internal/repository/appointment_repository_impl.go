package repository

import (
	"errors"

	"smarthealth/internal/domain/entity"
	domainRepo "smarthealth/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id int) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Availability").Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Availability").
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindLatestByAvailabilityID(db *gorm.DB, availabilityID int) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Where("availability_id = ?", availabilityID).
		Order("id DESC").
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) UpdateStatus(db *gorm.DB, id int, status entity.AppointmentStatus) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("id = ?", id).
		Update("status", status)
	return result.RowsAffected, result.Error
}

// UpdateStatusByAvailabilityID guards the write with the allowed current
// statuses so a concurrent mutation cannot be silently overwritten.
func (r *appointmentRepository) UpdateStatusByAvailabilityID(db *gorm.DB, availabilityID int, status entity.AppointmentStatus, allowedCurrent []entity.AppointmentStatus) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("availability_id = ? AND status IN ?", availabilityID, allowedCurrent).
		Update("status", status)
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) UpdateStatusByAvailabilityIDs(db *gorm.DB, availabilityIDs []int, status entity.AppointmentStatus, allowedCurrent []entity.AppointmentStatus) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("availability_id IN ? AND status IN ?", availabilityIDs, allowedCurrent).
		Update("status", status)
	return result.RowsAffected, result.Error
}
