package entity

import "github.com/google/uuid"

// DoctorProfile represents doctor-specific profile data
type DoctorProfile struct {
	UserID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Specialization  string    `gorm:"type:varchar(100);index" json:"specialization"`
	Phone           string    `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Biography       string    `gorm:"type:text" json:"biography,omitempty"`
	ProfileComplete bool      `gorm:"not null;default:false" json:"profile_complete"`

	// Relationships
	User           User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Availabilities []Availability `gorm:"foreignKey:DoctorID" json:"availabilities,omitempty"`
	Preference     *AGPreference  `gorm:"foreignKey:DoctorID" json:"preference,omitempty"`
	Leaves         []DoctorLeave  `gorm:"foreignKey:DoctorID" json:"leaves,omitempty"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}
