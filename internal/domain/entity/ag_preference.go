package entity

import (
	"time"

	"github.com/google/uuid"
)

// AGMode selects how availability slots are generated for a doctor
type AGMode string

const (
	AGModeAuto             AGMode = "AUTO"              // fixed default blocks, generated by the scheduler
	AGModeManual           AGMode = "MANUAL"            // explicit per-slot entries
	AGModeCustomOneTime    AGMode = "CUSTOM_ONE_TIME"   // one-shot generation over a date range
	AGModeCustomContinuous AGMode = "CUSTOM_CONTINUOUS" // rolling generation, advanced by the scheduler
	AGModeScheduled        AGMode = "SCHEDULED"         // scheduler-invoked run for AUTO/CUSTOM_CONTINUOUS doctors
)

// IsValid reports whether m is a known generation mode
func (m AGMode) IsValid() bool {
	switch m {
	case AGModeAuto, AGModeManual, AGModeCustomOneTime, AGModeCustomContinuous, AGModeScheduled:
		return true
	}
	return false
}

// AGPreference is a doctor's slot generation configuration. Exactly one row
// per doctor, sharing the doctor's primary key. LastGeneratedOn is the
// watermark date through which continuous/scheduled generation has run; it
// never moves backward.
type AGPreference struct {
	DoctorID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"doctor_id"`
	Mode            AGMode     `gorm:"type:varchar(20);not null;default:'AUTO'" json:"mode"`
	DaysAhead       int        `gorm:"not null;default:5" json:"days_ahead"`
	StartDate       *time.Time `gorm:"type:date" json:"start_date,omitempty"`
	EndDate         *time.Time `gorm:"type:date" json:"end_date,omitempty"`
	LastGeneratedOn *time.Time `gorm:"type:date" json:"last_generated_on,omitempty"`
	// No default tag: gorm drops a false value on insert when one is set,
	// which would silently re-activate an opted-out doctor.
	IsActive        bool       `gorm:"not null" json:"is_active"`
	SkipHoliday     bool       `gorm:"not null;default:false" json:"skip_holiday"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor     DoctorProfile `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	SlotInputs []SlotInput   `gorm:"many2many:ag_preference_slot_inputs" json:"slot_inputs,omitempty"`
}

func (AGPreference) TableName() string {
	return "ag_preferences"
}
