package entity

import (
	"time"

	"github.com/google/uuid"
)

// LeaveStatus represents the status of a doctor leave request
type LeaveStatus string

const (
	LeaveStatusBooked   LeaveStatus = "BOOKED"   // requested, pending decision
	LeaveStatusApproved LeaveStatus = "APPROVED" // approved, cascade has run
	LeaveStatusRejected LeaveStatus = "REJECTED" // rejected, terminal
)

// IsValid reports whether s is a known leave status
func (s LeaveStatus) IsValid() bool {
	switch s {
	case LeaveStatusBooked, LeaveStatusApproved, LeaveStatusRejected:
		return true
	}
	return false
}

// DoctorLeave is a leave request over an inclusive date range. Days counts
// only effective days (non-Sunday, non-holiday). No two BOOKED/APPROVED
// leaves for the same doctor may overlap.
type DoctorLeave struct {
	ID        int         `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID  uuid.UUID   `gorm:"type:uuid;not null;index" json:"doctor_id"`
	FromDate  time.Time   `gorm:"type:date;not null;column:from_date" json:"from_date"`
	ToDate    time.Time   `gorm:"type:date;not null;column:to_date" json:"to_date"`
	Status    LeaveStatus `gorm:"type:varchar(20);not null;default:'BOOKED';index" json:"status"`
	Days      int         `gorm:"not null" json:"days"`
	Reason    string      `gorm:"type:varchar(500)" json:"reason,omitempty"`
	CreatedAt time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time   `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor DoctorProfile `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (DoctorLeave) TableName() string {
	return "doctor_leaves"
}
