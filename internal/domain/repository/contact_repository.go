package repository

import (
	"calmseek-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContactRepository interface {
	// GetOrCreate returns the edge matching (userID, friendID, isFriend),
	// creating it when absent. The bool reports whether a row was created.
	GetOrCreate(db *gorm.DB, userID, friendID uuid.UUID, isFriend bool) (*entity.Contact, bool, error)
	FindByID(db *gorm.DB, id int) (*entity.Contact, error)
	FindEdge(db *gorm.DB, userID, friendID uuid.UUID, isFriend bool) (*entity.Contact, error)
	FindFriends(db *gorm.DB, userID uuid.UUID) ([]entity.Contact, error)
	FindPendingForUser(db *gorm.DB, userID uuid.UUID) ([]entity.Contact, error)
	Update(db *gorm.DB, contact *entity.Contact) error
	Delete(db *gorm.DB, contact *entity.Contact) error
}
