package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentType represents the kind of session being booked
type AppointmentType string

const (
	AppointmentTypeCheckup      AppointmentType = "Checkup"
	AppointmentTypeConsultation AppointmentType = "Consultation"
	AppointmentTypeEmergency    AppointmentType = "Emergency"
)

// IsValid reports whether t is one of the known appointment types.
func (t AppointmentType) IsValid() bool {
	switch t {
	case AppointmentTypeCheckup, AppointmentTypeConsultation, AppointmentTypeEmergency:
		return true
	}
	return false
}

// Appointment represents a client booking against a time slot
type Appointment struct {
	ID              int             `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	TimeSlotID      int             `gorm:"not null;index" json:"time_slot_id"`
	Comments        string          `gorm:"type:text" json:"comments,omitempty"`
	AppointmentType AppointmentType `gorm:"type:varchar(20);not null" json:"appointment_type"`
	BookedOn        time.Time       `gorm:"autoCreateTime" json:"booked_on"`

	// Relationships
	User     Account  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	TimeSlot TimeSlot `gorm:"foreignKey:TimeSlotID" json:"time_slot,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}
