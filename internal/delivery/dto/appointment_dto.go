package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type BookAppointmentRequest struct {
	TimeSlotID      int    `json:"time_slot_id" validate:"required"`
	AppointmentType string `json:"appointment_type" validate:"required,oneof=Checkup Consultation Emergency"`
	Comments        string `json:"comments" validate:"omitempty"`
}

type RescheduleAppointmentRequest struct {
	NewTimeSlotID   int    `json:"new_time_slot_id" validate:"required"`
	AppointmentType string `json:"appointment_type" validate:"omitempty,oneof=Checkup Consultation Emergency"`
}

// Response DTOs

type AppointmentResponse struct {
	ID              int               `json:"id"`
	UserID          uuid.UUID         `json:"user_id"`
	UserName        string            `json:"user_name,omitempty"`
	AppointmentType string            `json:"appointment_type"`
	Comments        string            `json:"comments,omitempty"`
	BookedOn        time.Time         `json:"booked_on"`
	TimeSlot        *TimeSlotResponse `json:"time_slot,omitempty"`
}
