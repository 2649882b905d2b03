package dto

import (
	"time"

	"jobmatch_backend/internal/models"
)

// RegisterRequest carries a new account signup.
type RegisterRequest struct {
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=6"`
	Role     models.UserRole `json:"role" binding:"required,oneof=student employer"`

	// Student fields
	Name     string `json:"name,omitempty" binding:"required_if=Role student"`
	Location string `json:"location,omitempty"`

	// Employer fields
	CompanyName string `json:"company_name,omitempty" binding:"required_if=Role employer"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LoginResponse returns the token pair plus basic identity.
type LoginResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	ExpiresAt    time.Time       `json:"expires_at"`
	UserID       string          `json:"user_id"`
	Role         models.UserRole `json:"role"`
}
