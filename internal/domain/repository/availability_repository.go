package repository

import (
	"time"

	"smarthealth/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AvailabilityRepository interface {
	Create(db *gorm.DB, availability *entity.Availability) error
	FindByID(db *gorm.DB, id int) (*entity.Availability, error)
	ExistsByKey(db *gorm.DB, doctorID uuid.UUID, date time.Time, startTime, endTime string) (bool, error)
	HasOverlap(db *gorm.DB, doctorID uuid.UUID, date time.Time, startTime, endTime string) (bool, error)
	FindByDoctorAndDateRange(db *gorm.DB, doctorID uuid.UUID, from, to time.Time) ([]entity.Availability, error)
	// MarkBooked conditionally moves a bookable slot to BOOKED and returns
	// affected rows; 0 means the slot was concurrently taken or withdrawn.
	MarkBooked(db *gorm.DB, id int) (int64, error)
	UpdateStatus(db *gorm.DB, id int, status entity.SlotStatus) (int64, error)
	UpdateStatusBulk(db *gorm.DB, ids []int, status entity.SlotStatus) (int64, error)
	DeleteByIDs(db *gorm.DB, ids []int) (int64, error)
	// DeleteAvailableByID deletes a doctor's own slot only while it is still
	// AVAILABLE; returns affected rows.
	DeleteAvailableByID(db *gorm.DB, id int, doctorID uuid.UUID) (int64, error)
	DeleteAvailableInRange(db *gorm.DB, doctorID uuid.UUID, fromDate, toDate time.Time, startTime, endTime string) (int64, error)
}
