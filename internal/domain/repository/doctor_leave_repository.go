package repository

import (
	"time"

	"smarthealth/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorLeaveRepository interface {
	Create(db *gorm.DB, leave *entity.DoctorLeave) error
	FindByID(db *gorm.DB, id int) (*entity.DoctorLeave, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.DoctorLeave, error)
	// HasOverlapping reports whether a BOOKED or APPROVED leave for the doctor
	// intersects [from, to].
	HasOverlapping(db *gorm.DB, doctorID uuid.UUID, from, to time.Time) (bool, error)
	// HasApprovedOn reports whether an APPROVED leave covers the given date.
	HasApprovedOn(db *gorm.DB, doctorID uuid.UUID, date time.Time) (bool, error)
	UpdateStatus(db *gorm.DB, id int, status entity.LeaveStatus) (int64, error)
}
