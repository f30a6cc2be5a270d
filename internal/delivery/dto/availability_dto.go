package dto

import (
	"time"

	"smarthealth/internal/domain/entity"
)

// Request DTOs

type SlotInputRequest struct {
	StartTime  string `json:"start_time" validate:"required"` // Format: HH:MM
	EndTime    string `json:"end_time" validate:"required"`   // Format: HH:MM
	GapMinutes int    `json:"gap_minutes" validate:"required,min=5,max=240"`
}

type ManualSlotRequest struct {
	Date      string `json:"date" validate:"required"` // Format: YYYY-MM-DD
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

// GenerateSlotsRequest drives slot generation. Which fields are read depends
// on the mode: CUSTOM_ONE_TIME needs start_date and end_date,
// CUSTOM_CONTINUOUS needs start_date and days_ahead, MANUAL reads
// manual_slots (nil manual_slots means save the preference only).
type GenerateSlotsRequest struct {
	Mode        entity.AGMode       `json:"mode" validate:"required"`
	DaysAhead   int                 `json:"days_ahead" validate:"omitempty,min=1,max=90"`
	StartDate   string              `json:"start_date" validate:"omitempty"` // Format: YYYY-MM-DD
	EndDate     string              `json:"end_date" validate:"omitempty"`
	SkipHoliday bool                `json:"skip_holiday"`
	SlotInputs  []SlotInputRequest  `json:"slot_inputs" validate:"omitempty,dive"`
	ManualSlots []ManualSlotRequest `json:"manual_slots" validate:"omitempty,dive"`
}

type BulkDeleteSlotsRequest struct {
	StartDate string `json:"start_date" validate:"required"` // Format: YYYY-MM-DD
	EndDate   string `json:"end_date" validate:"required"`
	StartTime string `json:"start_time" validate:"required"` // Format: HH:MM
	EndTime   string `json:"end_time" validate:"required"`
}

// Response DTOs

type GenerateSlotsResponse struct {
	Mode    entity.AGMode `json:"mode"`
	Created int           `json:"created"`
}

type AvailabilityResponse struct {
	ID        int               `json:"id"`
	Date      string            `json:"date"`
	StartTime string            `json:"start_time"`
	EndTime   string            `json:"end_time"`
	Status    entity.SlotStatus `json:"status"`
	Mode      entity.AGMode     `json:"mode"`
}

type SlotInputResponse struct {
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	GapMinutes int    `json:"gap_minutes"`
}

type PreferenceResponse struct {
	Mode            entity.AGMode       `json:"mode"`
	DaysAhead       int                 `json:"days_ahead"`
	StartDate       *time.Time          `json:"start_date,omitempty"`
	EndDate         *time.Time          `json:"end_date,omitempty"`
	LastGeneratedOn *time.Time          `json:"last_generated_on,omitempty"`
	IsActive        bool                `json:"is_active"`
	SkipHoliday     bool                `json:"skip_holiday"`
	SlotInputs      []SlotInputResponse `json:"slot_inputs,omitempty"`
}
