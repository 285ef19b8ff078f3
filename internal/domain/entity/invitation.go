package entity

import (
	"time"

	"github.com/google/uuid"
)

// InvitationStatus represents the status of a group invitation
type InvitationStatus string

const (
	InvitationStatusPending  InvitationStatus = "pending"
	InvitationStatusAccepted InvitationStatus = "accepted"
	InvitationStatusDeclined InvitationStatus = "declined"
)

// Invitation asks an account to join a group. Rows are never deleted:
// a declined invitation stays declined and a later re-invite creates a
// fresh pending row.
type Invitation struct {
	ID        int              `gorm:"primaryKey;autoIncrement" json:"id"`
	GroupID   int              `gorm:"not null;index" json:"group_id"`
	UserID    uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	Status    InvitationStatus `gorm:"type:varchar(10);not null;default:'pending';index" json:"status"`
	CreatedAt time.Time        `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Group Group   `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE" json:"group,omitempty"`
	User  Account `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Invitation) TableName() string {
	return "invitations"
}

// IsPending checks if the invitation is still awaiting a response
func (i *Invitation) IsPending() bool {
	return i.Status == InvitationStatusPending
}

// Accept marks the invitation accepted
func (i *Invitation) Accept() {
	i.Status = InvitationStatusAccepted
}

// Decline marks the invitation declined
func (i *Invitation) Decline() {
	i.Status = InvitationStatusDeclined
}
