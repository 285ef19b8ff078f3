package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateSlotRequest struct {
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required"`
}

// CreateRecurringSlotsRequest publishes one slot per (week, weekday)
// pair for the next NumWeeks weeks, all at the same time of day.
// Weekdays use Go numbering: 0 = Sunday .. 6 = Saturday.
type CreateRecurringSlotsRequest struct {
	Weekdays  []int  `json:"weekdays" validate:"required,min=1,dive,min=0,max=6"`
	NumWeeks  int    `json:"num_weeks" validate:"required,min=1,max=12"`
	StartTime string `json:"start_time" validate:"required"` // Format: HH:MM
	EndTime   string `json:"end_time" validate:"required"`   // Format: HH:MM
}

// Response DTOs

type TimeSlotResponse struct {
	ID           int       `json:"id"`
	ProviderID   uuid.UUID `json:"provider_id"`
	ProviderName string    `json:"provider_name,omitempty"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	IsAvailable  bool      `json:"is_available"`
}
