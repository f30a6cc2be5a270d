package repository

import (
	"smarthealth/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorProfileRepository interface {
	Create(db *gorm.DB, profile *entity.DoctorProfile) error
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error)
	FindByEmail(db *gorm.DB, email string) (*entity.DoctorProfile, error)
	Update(db *gorm.DB, profile *entity.DoctorProfile) error
}
