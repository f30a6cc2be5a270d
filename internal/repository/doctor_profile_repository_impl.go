package repository

import (
	"errors"

	"smarthealth/internal/domain/entity"
	domainRepo "smarthealth/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorProfileRepository struct{}

func NewDoctorProfileRepository() domainRepo.DoctorProfileRepository {
	return &doctorProfileRepository{}
}

func (r *doctorProfileRepository) Create(db *gorm.DB, profile *entity.DoctorProfile) error {
	return db.Create(profile).Error
}

func (r *doctorProfileRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error) {
	var profile entity.DoctorProfile
	err := db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *doctorProfileRepository) FindByEmail(db *gorm.DB, email string) (*entity.DoctorProfile, error) {
	var profile entity.DoctorProfile
	err := db.Joins("JOIN users ON users.id = doctor_profiles.user_id").
		Where("users.email = ?", email).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *doctorProfileRepository) Update(db *gorm.DB, profile *entity.DoctorProfile) error {
	return db.Save(profile).Error
}
