package repository

import (
	"smarthealth/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PatientProfileRepository interface {
	Create(db *gorm.DB, profile *entity.PatientProfile) error
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.PatientProfile, error)
}

type SubProfileRepository interface {
	Create(db *gorm.DB, subProfile *entity.SubProfile) error
	FindByID(db *gorm.DB, id int) (*entity.SubProfile, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.SubProfile, error)
}
