package repository

import (
	"calmseek-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GroupRepository interface {
	Create(db *gorm.DB, group *entity.Group) error
	FindByID(db *gorm.DB, id int) (*entity.Group, error)
	FindByMember(db *gorm.DB, memberID uuid.UUID) ([]entity.Group, error)
	AddMember(db *gorm.DB, group *entity.Group, member *entity.Account) error
	RemoveMember(db *gorm.DB, group *entity.Group, member *entity.Account) error
	IsMember(db *gorm.DB, groupID int, accountID uuid.UUID) (bool, error)
	Delete(db *gorm.DB, group *entity.Group) error
}

type GroupMessageRepository interface {
	Create(db *gorm.DB, message *entity.GroupMessage) error
	FindByGroupID(db *gorm.DB, groupID int) ([]entity.GroupMessage, error)
	DeleteByGroupID(db *gorm.DB, groupID int) error
}
