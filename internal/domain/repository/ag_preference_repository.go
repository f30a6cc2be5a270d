package repository

import (
	"smarthealth/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AGPreferenceRepository interface {
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) (*entity.AGPreference, error)
	// Save upserts the preference row and replaces its slot input association.
	Save(db *gorm.DB, preference *entity.AGPreference) error
	// FindActiveByModes lists active preferences in the given modes; used by
	// the scheduled generator.
	FindActiveByModes(db *gorm.DB, modes []entity.AGMode) ([]entity.AGPreference, error)
}
