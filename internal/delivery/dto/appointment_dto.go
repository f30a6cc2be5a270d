package dto

import (
	"time"

	"smarthealth/internal/domain/entity"
)

// Request DTOs

type SubProfileInput struct {
	ID       *int   `json:"id" validate:"omitempty"`
	Name     string `json:"name" validate:"omitempty,min=2"`
	Phone    string `json:"phone" validate:"omitempty,min=10,max=20"`
	Relation string `json:"relation" validate:"omitempty"`
}

type BookAppointmentRequest struct {
	AvailabilityID int              `json:"availability_id" validate:"required"`
	DoctorID       string           `json:"doctor_id" validate:"required,uuid"`
	SubProfile     *SubProfileInput `json:"sub_profile" validate:"omitempty"`
	Note           string           `json:"note" validate:"omitempty,max=500"`
}

type ChangeAppointmentStatusRequest struct {
	Status entity.AppointmentStatus `json:"status" validate:"required"`
}

type ChangeSlotAppointmentStatusRequest struct {
	SlotID int                      `json:"slot_id" validate:"required"`
	Status entity.AppointmentStatus `json:"status" validate:"required"`
}

// Response DTOs

type AppointmentResponse struct {
	ID           int                      `json:"id"`
	Availability AvailabilityResponse     `json:"availability"`
	Status       entity.AppointmentStatus `json:"status"`
	Note         string                   `json:"note,omitempty"`
	SubProfileID *int                     `json:"sub_profile_id,omitempty"`
	CreatedAt    time.Time                `json:"created_at"`
	UpdatedAt    time.Time                `json:"updated_at"`
}

type StatusChangeResponse struct {
	Message string `json:"message"`
}
