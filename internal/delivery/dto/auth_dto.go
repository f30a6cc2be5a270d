package dto

import (
	"time"

	"smarthealth/internal/domain/entity"

	"github.com/google/uuid"
)

// Request DTOs

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RegisterPatientRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	FullName    string `json:"full_name" validate:"required,min=2"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,min=10,max=20"`
	DateOfBirth string `json:"date_of_birth" validate:"required"` // Format: YYYY-MM-DD
	Gender      string `json:"gender" validate:"required,oneof=M F"`
	Address     string `json:"address" validate:"omitempty"`
}

type RegisterDoctorRequest struct {
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=6"`
	FullName       string `json:"full_name" validate:"required,min=2"`
	Specialization string `json:"specialization" validate:"required"`
	Phone          string `json:"phone" validate:"omitempty,min=10,max=20"`
	Biography      string `json:"biography" validate:"omitempty"`
}

// Response DTOs

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type UserResponse struct {
	ID        uuid.UUID       `json:"id"`
	Email     string          `json:"email"`
	FullName  string          `json:"full_name"`
	Role      entity.RoleName `json:"role"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
