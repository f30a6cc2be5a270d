package dto

import (
	"time"

	"smarthealth/internal/domain/entity"
)

// Request DTOs

type ApplyLeaveRequest struct {
	FromDate string `json:"from_date" validate:"required"` // Format: YYYY-MM-DD
	ToDate   string `json:"to_date" validate:"required"`
	Reason   string `json:"reason" validate:"omitempty,max=500"`
}

type ChangeLeaveStatusRequest struct {
	Status entity.LeaveStatus `json:"status" validate:"required"`
}

// Response DTOs

type LeaveResponse struct {
	ID        int                `json:"id"`
	FromDate  string             `json:"from_date"`
	ToDate    string             `json:"to_date"`
	Status    entity.LeaveStatus `json:"status"`
	Days      int                `json:"days"`
	Reason    string             `json:"reason,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}
