package repository

import (
	"errors"

	"smarthealth/internal/domain/entity"
	domainRepo "smarthealth/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type patientProfileRepository struct{}

func NewPatientProfileRepository() domainRepo.PatientProfileRepository {
	return &patientProfileRepository{}
}

func (r *patientProfileRepository) Create(db *gorm.DB, profile *entity.PatientProfile) error {
	return db.Create(profile).Error
}

func (r *patientProfileRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.PatientProfile, error) {
	var profile entity.PatientProfile
	err := db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

type subProfileRepository struct{}

func NewSubProfileRepository() domainRepo.SubProfileRepository {
	return &subProfileRepository{}
}

func (r *subProfileRepository) Create(db *gorm.DB, subProfile *entity.SubProfile) error {
	return db.Create(subProfile).Error
}

func (r *subProfileRepository) FindByID(db *gorm.DB, id int) (*entity.SubProfile, error) {
	var subProfile entity.SubProfile
	err := db.Where("id = ?", id).First(&subProfile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &subProfile, nil
}

func (r *subProfileRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.SubProfile, error) {
	var subProfiles []entity.SubProfile
	err := db.Where("patient_id = ?", patientID).Find(&subProfiles).Error
	if err != nil {
		return nil, err
	}
	return subProfiles, nil
}
