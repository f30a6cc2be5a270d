package repository

import (
	"smarthealth/internal/domain/entity"

	"gorm.io/gorm"
)

type SlotInputRepository interface {
	FindByValue(db *gorm.DB, startTime, endTime string, gapMinutes int) (*entity.SlotInput, error)
	Create(db *gorm.DB, slotInput *entity.SlotInput) error
}
