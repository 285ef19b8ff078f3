package repository

import (
	"calmseek-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TimeSlotRepository interface {
	Create(db *gorm.DB, slot *entity.TimeSlot) error
	CreateBatch(db *gorm.DB, slots []entity.TimeSlot) error
	FindByID(db *gorm.DB, id int) (*entity.TimeSlot, error)
	FindByProviderID(db *gorm.DB, providerID uuid.UUID) ([]entity.TimeSlot, error)
	FindAvailable(db *gorm.DB, filter *entity.SlotFilter) ([]entity.TimeSlot, error)
	// MarkUnavailable flips is_available to false only when it is still
	// true. Returns affected rows: 1 = reserved, 0 = lost the race.
	MarkUnavailable(db *gorm.DB, id int) (int64, error)
	MarkAvailable(db *gorm.DB, id int) error
	Delete(db *gorm.DB, id int) (int64, error)
}
