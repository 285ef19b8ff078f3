package entity

import (
	"time"

	"github.com/google/uuid"
)

// Group is an ad-hoc discussion group created by an account
type Group struct {
	ID          int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	CreatedByID uuid.UUID `gorm:"type:uuid;not null;index" json:"created_by_id"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	CreatedBy Account   `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	Members   []Account `gorm:"many2many:group_members" json:"members,omitempty"`
}

func (Group) TableName() string {
	return "groups"
}

// GroupMessage is an immutable message posted to a group by a member
type GroupMessage struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	GroupID   int       `gorm:"not null;index" json:"group_id"`
	SenderID  uuid.UUID `gorm:"type:uuid;not null;index" json:"sender_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Timestamp time.Time `gorm:"autoCreateTime;index" json:"timestamp"`

	// Relationships
	Group  Group   `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE" json:"group,omitempty"`
	Sender Account `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
}

func (GroupMessage) TableName() string {
	return "group_messages"
}
