package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateGroupRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=255"`
	Description string `json:"description" validate:"omitempty"`
}

type InviteToGroupRequest struct {
	UserIDs []uuid.UUID `json:"user_ids" validate:"required,min=1"`
}

type RespondInvitationRequest struct {
	Response string `json:"response" validate:"required,oneof=accept decline"`
}

type PostGroupMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

// Response DTOs

type GroupResponse struct {
	ID          int                      `json:"id"`
	Name        string                   `json:"name"`
	Description string                   `json:"description,omitempty"`
	CreatedByID uuid.UUID                `json:"created_by_id"`
	CreatedAt   time.Time                `json:"created_at"`
	Members     []AccountSummaryResponse `json:"members,omitempty"`
}

type GroupMessageResponse struct {
	ID         int       `json:"id"`
	GroupID    int       `json:"group_id"`
	SenderID   uuid.UUID `json:"sender_id"`
	SenderName string    `json:"sender_name,omitempty"`
	Content    string    `json:"content"`
	Timestamp  time.Time `json:"timestamp"`
}

type InvitationResponse struct {
	ID        int       `json:"id"`
	GroupID   int       `json:"group_id"`
	GroupName string    `json:"group_name,omitempty"`
	UserID    uuid.UUID `json:"user_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
