package repository

import (
	"time"

	"smarthealth/internal/domain/entity"

	"gorm.io/gorm"
)

type HolidayRepository interface {
	Create(db *gorm.DB, holiday *entity.Holiday) error
	ExistsByDate(db *gorm.DB, date time.Time) (bool, error)
	FindAll(db *gorm.DB) ([]entity.Holiday, error)
	DeleteByID(db *gorm.DB, id int) (int64, error)
}
