package repository

import (
	"calmseek-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvitationRepository interface {
	// GetOrCreate returns the pending invitation for (groupID, userID),
	// creating it when absent. The bool reports whether a row was created.
	GetOrCreate(db *gorm.DB, groupID int, userID uuid.UUID) (*entity.Invitation, bool, error)
	FindByID(db *gorm.DB, id int) (*entity.Invitation, error)
	FindPendingForUser(db *gorm.DB, userID uuid.UUID) ([]entity.Invitation, error)
	Update(db *gorm.DB, invitation *entity.Invitation) error
	DeleteByGroupID(db *gorm.DB, groupID int) error
}
