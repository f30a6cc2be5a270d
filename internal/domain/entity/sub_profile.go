package entity

import (
	"time"

	"github.com/google/uuid"
)

// SubProfile is a dependent (family member) a patient can book for
type SubProfile struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Phone     string    `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Relation  string    `gorm:"type:varchar(50)" json:"relation,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (SubProfile) TableName() string {
	return "sub_profiles"
}
