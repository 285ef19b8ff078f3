package repository

import (
	"errors"

	"calmseek-backend/internal/domain/entity"
	domainRepo "calmseek-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type accountRepository struct{}

func NewAccountRepository() domainRepo.AccountRepository {
	return &accountRepository{}
}

func (r *accountRepository) Create(db *gorm.DB, account *entity.Account) error {
	return db.Create(account).Error
}

func (r *accountRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Account, error) {
	var account entity.Account
	err := db.Where("id = ?", id).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) FindByUsername(db *gorm.DB, username string) (*entity.Account, error) {
	var account entity.Account
	err := db.Where("username = ?", username).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) FindByUsernameAndEmail(db *gorm.DB, username, email string) (*entity.Account, error) {
	var account entity.Account
	err := db.Where("username = ? AND email = ?", username, email).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) Update(db *gorm.DB, account *entity.Account) error {
	return db.Omit("Favorites", "ProviderDetail", "ClientDetail", "Role").Save(account).Error
}

func (r *accountRepository) AddFavorite(db *gorm.DB, account *entity.Account, favorite *entity.Account) error {
	return db.Model(account).Association("Favorites").Append(favorite)
}

func (r *accountRepository) RemoveFavorite(db *gorm.DB, account *entity.Account, favorite *entity.Account) error {
	return db.Model(account).Association("Favorites").Delete(favorite)
}

func (r *accountRepository) FindFavorites(db *gorm.DB, accountID uuid.UUID) ([]entity.Account, error) {
	account := entity.Account{ID: accountID}
	var favorites []entity.Account
	err := db.Model(&account).Preload("ProviderDetail").Association("Favorites").Find(&favorites)
	if err != nil {
		return nil, err
	}
	return favorites, nil
}

func (r *accountRepository) IsFavorite(db *gorm.DB, accountID, favoriteID uuid.UUID) (bool, error) {
	var count int64
	err := db.Table("account_favorites").
		Where("account_id = ? AND favorite_id = ?", accountID, favoriteID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
