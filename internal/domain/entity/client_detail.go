package entity

import "github.com/google/uuid"

// ClientDetail represents client-specific profile data
type ClientDetail struct {
	UserID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	PhoneNumber string    `gorm:"type:varchar(20)" json:"phone_number,omitempty"`
	Bio         string    `gorm:"type:text" json:"bio,omitempty"`

	// Relationships
	User Account `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

func (ClientDetail) TableName() string {
	return "client_details"
}
