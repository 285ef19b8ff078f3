package repository

import (
	"calmseek-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AccountRepository interface {
	Create(db *gorm.DB, account *entity.Account) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Account, error)
	FindByUsername(db *gorm.DB, username string) (*entity.Account, error)
	FindByUsernameAndEmail(db *gorm.DB, username, email string) (*entity.Account, error)
	Update(db *gorm.DB, account *entity.Account) error
	AddFavorite(db *gorm.DB, account *entity.Account, favorite *entity.Account) error
	RemoveFavorite(db *gorm.DB, account *entity.Account, favorite *entity.Account) error
	FindFavorites(db *gorm.DB, accountID uuid.UUID) ([]entity.Account, error)
	IsFavorite(db *gorm.DB, accountID, favoriteID uuid.UUID) (bool, error)
}
