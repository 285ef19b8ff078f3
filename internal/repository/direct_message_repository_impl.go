package repository

import (
	"calmseek-backend/internal/domain/entity"
	domainRepo "calmseek-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type directMessageRepository struct{}

func NewDirectMessageRepository() domainRepo.DirectMessageRepository {
	return &directMessageRepository{}
}

func (r *directMessageRepository) Create(db *gorm.DB, message *entity.DirectMessage) error {
	return db.Create(message).Error
}

// FindConversation returns the full two-way message history between two
// accounts in timestamp order.
func (r *directMessageRepository) FindConversation(db *gorm.DB, userID, partnerID uuid.UUID) ([]entity.DirectMessage, error) {
	var messages []entity.DirectMessage
	err := db.Where(
		"(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
		userID, partnerID, partnerID, userID,
	).Order("timestamp ASC, id ASC").Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}
