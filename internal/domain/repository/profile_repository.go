package repository

import (
	"calmseek-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProviderDetailRepository interface {
	Create(db *gorm.DB, detail *entity.ProviderDetail) error
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.ProviderDetail, error)
	FindAll(db *gorm.DB, filter *entity.ProviderFilter) ([]entity.ProviderDetail, error)
	Update(db *gorm.DB, detail *entity.ProviderDetail) error
}

type ClientDetailRepository interface {
	Create(db *gorm.DB, detail *entity.ClientDetail) error
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.ClientDetail, error)
	Update(db *gorm.DB, detail *entity.ClientDetail) error
}
