package entity

import "time"

// Holiday is a globally blocked calendar date, independent of doctor
type Holiday struct {
	ID          int       `gorm:"primaryKey;autoIncrement" json:"id"`
	HolidayDate time.Time `gorm:"type:date;not null;uniqueIndex" json:"holiday_date"`
	Name        string    `gorm:"type:varchar(255)" json:"name,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Holiday) TableName() string {
	return "holidays"
}
