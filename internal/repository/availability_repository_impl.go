package repository

import (
	"errors"
	"time"

	"smarthealth/internal/domain/entity"
	domainRepo "smarthealth/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type availabilityRepository struct{}

func NewAvailabilityRepository() domainRepo.AvailabilityRepository {
	return &availabilityRepository{}
}

func (r *availabilityRepository) Create(db *gorm.DB, availability *entity.Availability) error {
	return db.Create(availability).Error
}

func (r *availabilityRepository) FindByID(db *gorm.DB, id int) (*entity.Availability, error) {
	var availability entity.Availability
	err := db.Where("id = ?", id).First(&availability).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &availability, nil
}

func (r *availabilityRepository) ExistsByKey(db *gorm.DB, doctorID uuid.UUID, date time.Time, startTime, endTime string) (bool, error) {
	var count int64
	err := db.Model(&entity.Availability{}).
		Where("doctor_id = ? AND date = ? AND start_time = ? AND end_time = ?", doctorID, date, startTime, endTime).
		Count(&count).Error
	return count > 0, err
}

// HasOverlap uses the half-open interval test: a candidate [start,end)
// overlaps an existing slot iff start < existing.end AND end > existing.start.
func (r *availabilityRepository) HasOverlap(db *gorm.DB, doctorID uuid.UUID, date time.Time, startTime, endTime string) (bool, error) {
	var count int64
	err := db.Model(&entity.Availability{}).
		Where("doctor_id = ? AND date = ? AND start_time < ? AND end_time > ?", doctorID, date, endTime, startTime).
		Count(&count).Error
	return count > 0, err
}

func (r *availabilityRepository) FindByDoctorAndDateRange(db *gorm.DB, doctorID uuid.UUID, from, to time.Time) ([]entity.Availability, error) {
	var availabilities []entity.Availability
	err := db.Where("doctor_id = ? AND date BETWEEN ? AND ?", doctorID, from, to).
		Order("date, start_time").
		Find(&availabilities).Error
	if err != nil {
		return nil, err
	}
	return availabilities, nil
}

func (r *availabilityRepository) MarkBooked(db *gorm.DB, id int) (int64, error) {
	result := db.Model(&entity.Availability{}).
		Where("id = ? AND status IN ?", id, []entity.SlotStatus{entity.SlotStatusAvailable, entity.SlotStatusReAvailable}).
		Update("status", entity.SlotStatusBooked)
	return result.RowsAffected, result.Error
}

func (r *availabilityRepository) UpdateStatus(db *gorm.DB, id int, status entity.SlotStatus) (int64, error) {
	result := db.Model(&entity.Availability{}).
		Where("id = ?", id).
		Update("status", status)
	return result.RowsAffected, result.Error
}

func (r *availabilityRepository) UpdateStatusBulk(db *gorm.DB, ids []int, status entity.SlotStatus) (int64, error) {
	result := db.Model(&entity.Availability{}).
		Where("id IN ?", ids).
		Update("status", status)
	return result.RowsAffected, result.Error
}

func (r *availabilityRepository) DeleteByIDs(db *gorm.DB, ids []int) (int64, error) {
	result := db.Where("id IN ?", ids).Delete(&entity.Availability{})
	return result.RowsAffected, result.Error
}

func (r *availabilityRepository) DeleteAvailableByID(db *gorm.DB, id int, doctorID uuid.UUID) (int64, error) {
	result := db.Where("id = ? AND doctor_id = ? AND status = ?", id, doctorID, entity.SlotStatusAvailable).
		Delete(&entity.Availability{})
	return result.RowsAffected, result.Error
}

func (r *availabilityRepository) DeleteAvailableInRange(db *gorm.DB, doctorID uuid.UUID, fromDate, toDate time.Time, startTime, endTime string) (int64, error) {
	result := db.Where("doctor_id = ? AND status = ? AND date BETWEEN ? AND ? AND start_time >= ? AND end_time <= ?",
		doctorID, entity.SlotStatusAvailable, fromDate, toDate, startTime, endTime).
		Delete(&entity.Availability{})
	return result.RowsAffected, result.Error
}
