package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type PasswordResetRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
}

type PasswordResetConfirmRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// Role-specific Registration Request DTOs

type RegisterClientRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=150"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	FullName    string `json:"full_name" validate:"required,min=2"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,min=10,max=20"`
	Bio         string `json:"bio" validate:"omitempty"`
}

type RegisterProviderRequest struct {
	Username       string          `json:"username" validate:"required,min=3,max=150"`
	Email          string          `json:"email" validate:"required,email"`
	Password       string          `json:"password" validate:"required,min=8"`
	FullName       string          `json:"full_name" validate:"required,min=2"`
	LicenseNumber  string          `json:"license_number" validate:"required"`
	Specialization string          `json:"specialization" validate:"required"`
	Bio            string          `json:"bio" validate:"omitempty"`
	PhoneNumber    string          `json:"phone_number" validate:"omitempty,min=10,max=20"`
	AddressLine1   string          `json:"address_line1" validate:"omitempty"`
	AddressLine2   string          `json:"address_line2" validate:"omitempty"`
	City           string          `json:"city" validate:"omitempty"`
	State          string          `json:"state" validate:"omitempty"`
	PostalCode     string          `json:"postal_code" validate:"omitempty,max=10"`
	SessionFee     decimal.Decimal `json:"session_fee" validate:"omitempty"`
}

// Response DTOs

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type AccountResponse struct {
	ID             uuid.UUID               `json:"id"`
	Username       string                  `json:"username"`
	Email          string                  `json:"email"`
	FullName       string                  `json:"full_name"`
	Role           string                  `json:"role"`
	IsActive       bool                    `json:"is_active"`
	ProviderDetail *ProviderDetailResponse `json:"provider_detail,omitempty"`
	ClientDetail   *ClientDetailResponse   `json:"client_detail,omitempty"`
	CreatedAt      time.Time               `json:"created_at"`
	UpdatedAt      time.Time               `json:"updated_at"`
}
