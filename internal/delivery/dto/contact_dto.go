package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type FriendRequestRequest struct {
	FriendID uuid.UUID `json:"friend_id" validate:"required"`
}

type SendMessageRequest struct {
	ReceiverID uuid.UUID `json:"receiver_id" validate:"required"`
	Content    string    `json:"content" validate:"required"`
}

// Response DTOs

type ContactResponse struct {
	ID       int                     `json:"id"`
	UserID   uuid.UUID               `json:"user_id"`
	FriendID uuid.UUID               `json:"friend_id"`
	IsFriend bool                    `json:"is_friend"`
	Friend   *AccountSummaryResponse `json:"friend,omitempty"`
	User     *AccountSummaryResponse `json:"user,omitempty"`
}

type DirectMessageResponse struct {
	ID         int       `json:"id"`
	SenderID   uuid.UUID `json:"sender_id"`
	ReceiverID uuid.UUID `json:"receiver_id"`
	Content    string    `json:"content"`
	Timestamp  time.Time `json:"timestamp"`
}
