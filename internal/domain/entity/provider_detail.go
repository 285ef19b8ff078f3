package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Specialization is a closed enum of mental-health service categories.
type Specialization string

const (
	SpecializationTherapist          Specialization = "Therapist"
	SpecializationPsychiatrist       Specialization = "Psychiatrist"
	SpecializationCounselor          Specialization = "Counselor"
	SpecializationPsychologist       Specialization = "Psychologist"
	SpecializationSocialWorker       Specialization = "Social Worker"
	SpecializationAddictionSpecialst Specialization = "Addiction Specialist"
)

// Specializations lists every valid specialization, in display order.
var Specializations = []Specialization{
	SpecializationTherapist,
	SpecializationPsychiatrist,
	SpecializationCounselor,
	SpecializationPsychologist,
	SpecializationSocialWorker,
	SpecializationAddictionSpecialst,
}

// IsValid reports whether s is one of the known specializations.
func (s Specialization) IsValid() bool {
	for _, known := range Specializations {
		if s == known {
			return true
		}
	}
	return false
}

// ProviderDetail represents provider-specific profile data
type ProviderDetail struct {
	UserID         uuid.UUID       `gorm:"type:uuid;primaryKey" json:"user_id"`
	Bio            string          `gorm:"type:text" json:"bio,omitempty"`
	PhoneNumber    string          `gorm:"type:varchar(20)" json:"phone_number,omitempty"`
	LicenseNumber  string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"license_number"`
	Specialization Specialization  `gorm:"type:varchar(50);not null;index" json:"specialization"`
	IsActivated    bool            `gorm:"not null;default:false" json:"is_activated"`
	AddressLine1   string          `gorm:"type:varchar(255)" json:"address_line1,omitempty"`
	AddressLine2   string          `gorm:"type:varchar(255)" json:"address_line2,omitempty"`
	City           string          `gorm:"type:varchar(100)" json:"city,omitempty"`
	State          string          `gorm:"type:varchar(100)" json:"state,omitempty"`
	PostalCode     string          `gorm:"type:varchar(10)" json:"postal_code,omitempty"`
	PictureURL     string          `gorm:"type:text" json:"picture_url,omitempty"`
	SessionFee     decimal.Decimal `gorm:"type:decimal(10,2)" json:"session_fee"`

	// Relationships
	User      Account    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	TimeSlots []TimeSlot `gorm:"foreignKey:ProviderID" json:"time_slots,omitempty"`
}

func (ProviderDetail) TableName() string {
	return "provider_details"
}
