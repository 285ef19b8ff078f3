package entity

import "github.com/google/uuid"

// Contact is a directed edge between two accounts. IsFriend false marks
// a pending friend request from UserID to FriendID; once accepted both
// directions exist with IsFriend true.
type Contact struct {
	ID       int       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	FriendID uuid.UUID `gorm:"type:uuid;not null;index" json:"friend_id"`
	IsFriend bool      `gorm:"not null;default:false" json:"is_friend"`

	// Relationships
	User   Account `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Friend Account `gorm:"foreignKey:FriendID" json:"friend,omitempty"`
}

func (Contact) TableName() string {
	return "contacts"
}
