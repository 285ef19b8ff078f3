package repository

import (
	"errors"
	"time"

	"calmseek-backend/internal/domain/entity"
	domainRepo "calmseek-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type timeSlotRepository struct{}

func NewTimeSlotRepository() domainRepo.TimeSlotRepository {
	return &timeSlotRepository{}
}

func (r *timeSlotRepository) Create(db *gorm.DB, slot *entity.TimeSlot) error {
	return db.Create(slot).Error
}

func (r *timeSlotRepository) CreateBatch(db *gorm.DB, slots []entity.TimeSlot) error {
	if len(slots) == 0 {
		return nil
	}
	return db.Create(&slots).Error
}

func (r *timeSlotRepository) FindByID(db *gorm.DB, id int) (*entity.TimeSlot, error) {
	var slot entity.TimeSlot
	err := db.Preload("Provider").Where("id = ?", id).First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &slot, nil
}

func (r *timeSlotRepository) FindByProviderID(db *gorm.DB, providerID uuid.UUID) ([]entity.TimeSlot, error) {
	var slots []entity.TimeSlot
	err := db.Where("provider_id = ?", providerID).
		Order("start_time ASC").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *timeSlotRepository) FindAvailable(db *gorm.DB, filter *entity.SlotFilter) ([]entity.TimeSlot, error) {
	var slots []entity.TimeSlot
	query := db.Where("is_available = ?", true)

	if filter != nil {
		if filter.ProviderID != nil {
			query = query.Where("provider_id = ?", *filter.ProviderID)
		}
		if filter.Date != "" {
			day, err := time.ParseInLocation("2006-01-02", filter.Date, time.Local)
			if err == nil {
				startOfDay := day
				endOfDay := day.Add(24*time.Hour - time.Nanosecond)
				query = query.Where("start_time BETWEEN ? AND ?", startOfDay, endOfDay)
			}
		}
	}

	err := query.Preload("Provider").Order("start_time ASC").Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

// MarkUnavailable atomically reserves a slot ONLY if it is still
// available. Returns affected rows: 1 = reserved, 0 = already taken
// (prevents the double-booking race).
func (r *timeSlotRepository) MarkUnavailable(db *gorm.DB, id int) (int64, error) {
	result := db.Model(&entity.TimeSlot{}).
		Where("id = ? AND is_available = ?", id, true).
		Update("is_available", false)
	return result.RowsAffected, result.Error
}

func (r *timeSlotRepository) MarkAvailable(db *gorm.DB, id int) error {
	return db.Model(&entity.TimeSlot{}).
		Where("id = ?", id).
		Update("is_available", true).Error
}

func (r *timeSlotRepository) Delete(db *gorm.DB, id int) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.TimeSlot{})
	return result.RowsAffected, result.Error
}
