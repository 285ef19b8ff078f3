package repository

import (
	"calmseek-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type RoleRepository interface {
	FindByID(db *gorm.DB, id int) (*entity.Role, error)
	FindByName(db *gorm.DB, name string) (*entity.Role, error)
}
