package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type UpdateClientProfileRequest struct {
	FullName    string `json:"full_name" validate:"omitempty,min=2"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,min=10,max=20"`
	Bio         string `json:"bio" validate:"omitempty"`
}

type UpdateProviderProfileRequest struct {
	FullName       string           `json:"full_name" validate:"omitempty,min=2"`
	Bio            string           `json:"bio" validate:"omitempty"`
	PhoneNumber    string           `json:"phone_number" validate:"omitempty,min=10,max=20"`
	Specialization string           `json:"specialization" validate:"omitempty"`
	AddressLine1   string           `json:"address_line1" validate:"omitempty"`
	AddressLine2   string           `json:"address_line2" validate:"omitempty"`
	City           string           `json:"city" validate:"omitempty"`
	State          string           `json:"state" validate:"omitempty"`
	PostalCode     string           `json:"postal_code" validate:"omitempty,max=10"`
	PictureURL     string           `json:"picture_url" validate:"omitempty,url"`
	SessionFee     *decimal.Decimal `json:"session_fee" validate:"omitempty"`
}

// Response DTOs

type ClientDetailResponse struct {
	UserID      uuid.UUID `json:"user_id"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	Bio         string    `json:"bio,omitempty"`
}

type ProviderDetailResponse struct {
	UserID         uuid.UUID       `json:"user_id"`
	FullName       string          `json:"full_name,omitempty"`
	Bio            string          `json:"bio,omitempty"`
	PhoneNumber    string          `json:"phone_number,omitempty"`
	LicenseNumber  string          `json:"license_number"`
	Specialization string          `json:"specialization"`
	IsActivated    bool            `json:"is_activated"`
	AddressLine1   string          `json:"address_line1,omitempty"`
	AddressLine2   string          `json:"address_line2,omitempty"`
	City           string          `json:"city,omitempty"`
	State          string          `json:"state,omitempty"`
	PostalCode     string          `json:"postal_code,omitempty"`
	PictureURL     string          `json:"picture_url,omitempty"`
	SessionFee     decimal.Decimal `json:"session_fee"`
}

// AccountSummaryResponse is the compact account shape used in lists
// (favorites, friends, group members).
type AccountSummaryResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	FullName string    `json:"full_name"`
	Role     string    `json:"role"`
}
