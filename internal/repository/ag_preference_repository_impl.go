package repository

import (
	"errors"

	"smarthealth/internal/domain/entity"
	domainRepo "smarthealth/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type agPreferenceRepository struct{}

func NewAGPreferenceRepository() domainRepo.AGPreferenceRepository {
	return &agPreferenceRepository{}
}

func (r *agPreferenceRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) (*entity.AGPreference, error) {
	var preference entity.AGPreference
	err := db.Preload("SlotInputs").Where("doctor_id = ?", doctorID).First(&preference).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &preference, nil
}

func (r *agPreferenceRepository) Save(db *gorm.DB, preference *entity.AGPreference) error {
	// Save the row first, then replace the many2many association so removed
	// slot inputs are unlinked rather than accumulated.
	if err := db.Omit("SlotInputs").Save(preference).Error; err != nil {
		return err
	}
	return db.Model(preference).Association("SlotInputs").Replace(preference.SlotInputs)
}

func (r *agPreferenceRepository) FindActiveByModes(db *gorm.DB, modes []entity.AGMode) ([]entity.AGPreference, error) {
	var preferences []entity.AGPreference
	err := db.Preload("SlotInputs").
		Where("mode IN ? AND is_active = ?", modes, true).
		Find(&preferences).Error
	if err != nil {
		return nil, err
	}
	return preferences, nil
}
