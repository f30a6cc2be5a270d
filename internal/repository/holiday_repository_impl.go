package repository

import (
	"time"

	"smarthealth/internal/domain/entity"
	domainRepo "smarthealth/internal/domain/repository"

	"gorm.io/gorm"
)

type holidayRepository struct{}

func NewHolidayRepository() domainRepo.HolidayRepository {
	return &holidayRepository{}
}

func (r *holidayRepository) Create(db *gorm.DB, holiday *entity.Holiday) error {
	return db.Create(holiday).Error
}

func (r *holidayRepository) ExistsByDate(db *gorm.DB, date time.Time) (bool, error) {
	var count int64
	err := db.Model(&entity.Holiday{}).Where("holiday_date = ?", date).Count(&count).Error
	return count > 0, err
}

func (r *holidayRepository) FindAll(db *gorm.DB) ([]entity.Holiday, error) {
	var holidays []entity.Holiday
	err := db.Order("holiday_date").Find(&holidays).Error
	if err != nil {
		return nil, err
	}
	return holidays, nil
}

func (r *holidayRepository) DeleteByID(db *gorm.DB, id int) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Holiday{})
	return result.RowsAffected, result.Error
}
