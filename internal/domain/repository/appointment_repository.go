package repository

import (
	"time"

	"calmseek-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id int) (*entity.Appointment, error)
	FindByUserID(db *gorm.DB, userID uuid.UUID, upcomingOnly bool) ([]entity.Appointment, error)
	FindByProviderID(db *gorm.DB, providerID uuid.UUID, upcomingOnly bool) ([]entity.Appointment, error)
	FindBySlotStartWindow(db *gorm.DB, from, to time.Time) ([]entity.Appointment, error)
	Update(db *gorm.DB, appointment *entity.Appointment) error
	Delete(db *gorm.DB, id int) error
	DeleteByTimeSlotID(db *gorm.DB, timeSlotID int) (int64, error)
}
