package repository

import (
	"calmseek-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DirectMessageRepository interface {
	Create(db *gorm.DB, message *entity.DirectMessage) error
	FindConversation(db *gorm.DB, userID, partnerID uuid.UUID) ([]entity.DirectMessage, error)
}
