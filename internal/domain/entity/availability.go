package entity

import (
	"time"

	"github.com/google/uuid"
)

// SlotStatus represents the status of an availability slot
type SlotStatus string

const (
	SlotStatusAvailable   SlotStatus = "AVAILABLE"    // open for booking
	SlotStatusReAvailable SlotStatus = "RE_AVAILABLE" // re-opened after a patient cancellation
	SlotStatusBooked      SlotStatus = "BOOKED"       // booked by a patient
	SlotStatusCancelled   SlotStatus = "CANCELLED"    // pulled by the doctor or a leave
)

// Availability is one bookable time interval for a doctor on a date.
// The (doctor_id, date, start_time, end_time) key is immutable after creation.
type Availability struct {
	ID        int        `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID  uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_slot_key" json:"doctor_id"`
	Date      time.Time  `gorm:"type:date;not null;index;uniqueIndex:idx_slot_key" json:"date"`
	StartTime string     `gorm:"type:time;not null;uniqueIndex:idx_slot_key" json:"start_time"`
	EndTime   string     `gorm:"type:time;not null;uniqueIndex:idx_slot_key" json:"end_time"`
	Status    SlotStatus `gorm:"type:varchar(20);not null;default:'AVAILABLE';index" json:"status"`
	Mode      AGMode     `gorm:"type:varchar(20);not null" json:"mode"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor       DoctorProfile `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:AvailabilityID" json:"appointments,omitempty"`
}

func (Availability) TableName() string {
	return "availabilities"
}

// IsBookable reports whether a patient can book this slot
func (a *Availability) IsBookable() bool {
	return a.Status == SlotStatusAvailable || a.Status == SlotStatusReAvailable
}
