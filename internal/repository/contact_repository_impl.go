package repository

import (
	"errors"

	"calmseek-backend/internal/domain/entity"
	domainRepo "calmseek-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type contactRepository struct{}

func NewContactRepository() domainRepo.ContactRepository {
	return &contactRepository{}
}

func (r *contactRepository) GetOrCreate(db *gorm.DB, userID, friendID uuid.UUID, isFriend bool) (*entity.Contact, bool, error) {
	var contact entity.Contact
	err := db.Where("user_id = ? AND friend_id = ? AND is_friend = ?", userID, friendID, isFriend).
		First(&contact).Error
	if err == nil {
		return &contact, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	contact = entity.Contact{UserID: userID, FriendID: friendID, IsFriend: isFriend}
	if err := db.Create(&contact).Error; err != nil {
		return nil, false, err
	}
	return &contact, true, nil
}

func (r *contactRepository) FindByID(db *gorm.DB, id int) (*entity.Contact, error) {
	var contact entity.Contact
	err := db.Preload("User").Preload("Friend").Where("id = ?", id).First(&contact).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &contact, nil
}

func (r *contactRepository) FindEdge(db *gorm.DB, userID, friendID uuid.UUID, isFriend bool) (*entity.Contact, error) {
	var contact entity.Contact
	err := db.Where("user_id = ? AND friend_id = ? AND is_friend = ?", userID, friendID, isFriend).
		First(&contact).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &contact, nil
}

func (r *contactRepository) FindFriends(db *gorm.DB, userID uuid.UUID) ([]entity.Contact, error) {
	var contacts []entity.Contact
	err := db.Preload("Friend").
		Where("user_id = ? AND is_friend = ?", userID, true).
		Find(&contacts).Error
	if err != nil {
		return nil, err
	}
	return contacts, nil
}

// FindPendingForUser returns friend requests waiting on the user's response.
func (r *contactRepository) FindPendingForUser(db *gorm.DB, userID uuid.UUID) ([]entity.Contact, error) {
	var contacts []entity.Contact
	err := db.Preload("User").
		Where("friend_id = ? AND is_friend = ?", userID, false).
		Find(&contacts).Error
	if err != nil {
		return nil, err
	}
	return contacts, nil
}

func (r *contactRepository) Update(db *gorm.DB, contact *entity.Contact) error {
	return db.Omit("User", "Friend").Save(contact).Error
}

func (r *contactRepository) Delete(db *gorm.DB, contact *entity.Contact) error {
	return db.Delete(contact).Error
}
