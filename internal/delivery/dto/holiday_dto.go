package dto

// Request DTOs

type HolidayRequest struct {
	Date string `json:"date" validate:"required"` // Format: YYYY-MM-DD
	Name string `json:"name" validate:"omitempty,max=255"`
}

// Response DTOs

type HolidayResponse struct {
	ID   int    `json:"id"`
	Date string `json:"date"`
	Name string `json:"name,omitempty"`
}
