package repository

import (
	"errors"

	"calmseek-backend/internal/domain/entity"
	domainRepo "calmseek-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Provider Detail Repository

type providerDetailRepository struct{}

func NewProviderDetailRepository() domainRepo.ProviderDetailRepository {
	return &providerDetailRepository{}
}

func (r *providerDetailRepository) Create(db *gorm.DB, detail *entity.ProviderDetail) error {
	return db.Create(detail).Error
}

func (r *providerDetailRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.ProviderDetail, error) {
	var detail entity.ProviderDetail
	err := db.Preload("User").Where("user_id = ?", userID).First(&detail).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &detail, nil
}

// FindAll returns provider details for active accounts only, optionally
// narrowed by specialization and a free-text address query.
func (r *providerDetailRepository) FindAll(db *gorm.DB, filter *entity.ProviderFilter) ([]entity.ProviderDetail, error) {
	var details []entity.ProviderDetail
	query := db.
		Joins("JOIN accounts ON accounts.id = provider_details.user_id").
		Where("accounts.is_active = ?", true)

	if filter != nil {
		if filter.Specialization != "" {
			query = query.Where("provider_details.specialization = ?", filter.Specialization)
		}
		if filter.Address != "" {
			pattern := "%" + filter.Address + "%"
			query = query.Where(
				"provider_details.address_line1 ILIKE ? OR provider_details.address_line2 ILIKE ? OR provider_details.city ILIKE ? OR provider_details.state ILIKE ? OR provider_details.postal_code ILIKE ?",
				pattern, pattern, pattern, pattern, pattern,
			)
		}
	}

	err := query.Preload("User").Order("provider_details.user_id").Find(&details).Error
	if err != nil {
		return nil, err
	}
	return details, nil
}

func (r *providerDetailRepository) Update(db *gorm.DB, detail *entity.ProviderDetail) error {
	return db.Omit("User", "TimeSlots").Save(detail).Error
}

// Client Detail Repository

type clientDetailRepository struct{}

func NewClientDetailRepository() domainRepo.ClientDetailRepository {
	return &clientDetailRepository{}
}

func (r *clientDetailRepository) Create(db *gorm.DB, detail *entity.ClientDetail) error {
	return db.Create(detail).Error
}

func (r *clientDetailRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.ClientDetail, error) {
	var detail entity.ClientDetail
	err := db.Where("user_id = ?", userID).First(&detail).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &detail, nil
}

func (r *clientDetailRepository) Update(db *gorm.DB, detail *entity.ClientDetail) error {
	return db.Omit("User").Save(detail).Error
}
