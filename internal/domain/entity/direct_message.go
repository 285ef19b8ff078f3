package entity

import (
	"time"

	"github.com/google/uuid"
)

// DirectMessage is an immutable message between two accounts
type DirectMessage struct {
	ID         int       `gorm:"primaryKey;autoIncrement" json:"id"`
	SenderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"sender_id"`
	ReceiverID uuid.UUID `gorm:"type:uuid;not null;index" json:"receiver_id"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	Timestamp  time.Time `gorm:"autoCreateTime;index" json:"timestamp"`

	// Relationships
	Sender   Account `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Receiver Account `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
}

func (DirectMessage) TableName() string {
	return "direct_messages"
}
