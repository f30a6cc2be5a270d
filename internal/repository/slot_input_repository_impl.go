package repository

import (
	"errors"

	"smarthealth/internal/domain/entity"
	domainRepo "smarthealth/internal/domain/repository"

	"gorm.io/gorm"
)

type slotInputRepository struct{}

func NewSlotInputRepository() domainRepo.SlotInputRepository {
	return &slotInputRepository{}
}

func (r *slotInputRepository) FindByValue(db *gorm.DB, startTime, endTime string, gapMinutes int) (*entity.SlotInput, error) {
	var slotInput entity.SlotInput
	err := db.Where("start_time = ? AND end_time = ? AND gap_minutes = ?", startTime, endTime, gapMinutes).
		First(&slotInput).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &slotInput, nil
}

func (r *slotInputRepository) Create(db *gorm.DB, slotInput *entity.SlotInput) error {
	return db.Create(slotInput).Error
}
