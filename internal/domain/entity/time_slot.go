package entity

import (
	"time"

	"github.com/google/uuid"
)

// TimeSlot represents a provider-published bookable time window.
// Invariant: IsAvailable is true iff no appointment references the slot.
type TimeSlot struct {
	ID          int       `gorm:"primaryKey;autoIncrement" json:"id"`
	ProviderID  uuid.UUID `gorm:"type:uuid;not null;index" json:"provider_id"`
	StartTime   time.Time `gorm:"not null;index" json:"start_time"`
	EndTime     time.Time `gorm:"not null" json:"end_time"`
	IsAvailable bool      `gorm:"not null;default:true;index" json:"is_available"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Provider     Account       `gorm:"foreignKey:ProviderID" json:"provider,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:TimeSlotID;constraint:OnDelete:CASCADE" json:"appointments,omitempty"`
}

func (TimeSlot) TableName() string {
	return "time_slots"
}
