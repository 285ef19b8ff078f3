package repository

import (
	"errors"

	"calmseek-backend/internal/domain/entity"
	domainRepo "calmseek-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Group Repository

type groupRepository struct{}

func NewGroupRepository() domainRepo.GroupRepository {
	return &groupRepository{}
}

func (r *groupRepository) Create(db *gorm.DB, group *entity.Group) error {
	return db.Omit("Members", "CreatedBy").Create(group).Error
}

func (r *groupRepository) FindByID(db *gorm.DB, id int) (*entity.Group, error) {
	var group entity.Group
	err := db.Preload("Members").Preload("CreatedBy").Where("id = ?", id).First(&group).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &group, nil
}

func (r *groupRepository) FindByMember(db *gorm.DB, memberID uuid.UUID) ([]entity.Group, error) {
	var groups []entity.Group
	err := db.Preload("CreatedBy").
		Joins("JOIN group_members ON group_members.group_id = groups.id").
		Where("group_members.account_id = ?", memberID).
		Order("groups.created_at DESC").
		Find(&groups).Error
	if err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *groupRepository) AddMember(db *gorm.DB, group *entity.Group, member *entity.Account) error {
	return db.Model(group).Association("Members").Append(member)
}

func (r *groupRepository) RemoveMember(db *gorm.DB, group *entity.Group, member *entity.Account) error {
	return db.Model(group).Association("Members").Delete(member)
}

func (r *groupRepository) IsMember(db *gorm.DB, groupID int, accountID uuid.UUID) (bool, error) {
	var count int64
	err := db.Table("group_members").
		Where("group_id = ? AND account_id = ?", groupID, accountID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *groupRepository) Delete(db *gorm.DB, group *entity.Group) error {
	if err := db.Model(group).Association("Members").Clear(); err != nil {
		return err
	}
	return db.Delete(group).Error
}

// Group Message Repository

type groupMessageRepository struct{}

func NewGroupMessageRepository() domainRepo.GroupMessageRepository {
	return &groupMessageRepository{}
}

func (r *groupMessageRepository) Create(db *gorm.DB, message *entity.GroupMessage) error {
	return db.Create(message).Error
}

func (r *groupMessageRepository) FindByGroupID(db *gorm.DB, groupID int) ([]entity.GroupMessage, error) {
	var messages []entity.GroupMessage
	err := db.Preload("Sender").
		Where("group_id = ?", groupID).
		Order("timestamp ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *groupMessageRepository) DeleteByGroupID(db *gorm.DB, groupID int) error {
	return db.Where("group_id = ?", groupID).Delete(&entity.GroupMessage{}).Error
}
