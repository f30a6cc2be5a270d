package repository

import (
	"errors"
	"time"

	"smarthealth/internal/domain/entity"
	domainRepo "smarthealth/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorLeaveRepository struct{}

func NewDoctorLeaveRepository() domainRepo.DoctorLeaveRepository {
	return &doctorLeaveRepository{}
}

func (r *doctorLeaveRepository) Create(db *gorm.DB, leave *entity.DoctorLeave) error {
	return db.Create(leave).Error
}

func (r *doctorLeaveRepository) FindByID(db *gorm.DB, id int) (*entity.DoctorLeave, error) {
	var leave entity.DoctorLeave
	err := db.Where("id = ?", id).First(&leave).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &leave, nil
}

func (r *doctorLeaveRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.DoctorLeave, error) {
	var leaves []entity.DoctorLeave
	err := db.Where("doctor_id = ?", doctorID).
		Order("from_date DESC").
		Find(&leaves).Error
	if err != nil {
		return nil, err
	}
	return leaves, nil
}

func (r *doctorLeaveRepository) HasOverlapping(db *gorm.DB, doctorID uuid.UUID, from, to time.Time) (bool, error) {
	var count int64
	err := db.Model(&entity.DoctorLeave{}).
		Where("doctor_id = ? AND status IN ? AND from_date <= ? AND to_date >= ?",
			doctorID, []entity.LeaveStatus{entity.LeaveStatusBooked, entity.LeaveStatusApproved}, to, from).
		Count(&count).Error
	return count > 0, err
}

func (r *doctorLeaveRepository) HasApprovedOn(db *gorm.DB, doctorID uuid.UUID, date time.Time) (bool, error) {
	var count int64
	err := db.Model(&entity.DoctorLeave{}).
		Where("doctor_id = ? AND status = ? AND from_date <= ? AND to_date >= ?",
			doctorID, entity.LeaveStatusApproved, date, date).
		Count(&count).Error
	return count > 0, err
}

func (r *doctorLeaveRepository) UpdateStatus(db *gorm.DB, id int, status entity.LeaveStatus) (int64, error) {
	result := db.Model(&entity.DoctorLeave{}).
		Where("id = ?", id).
		Update("status", status)
	return result.RowsAffected, result.Error
}
