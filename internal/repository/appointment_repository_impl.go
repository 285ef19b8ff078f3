package repository

import (
	"errors"
	"time"

	"calmseek-backend/internal/domain/entity"
	domainRepo "calmseek-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id int) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("TimeSlot").Preload("User").Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByUserID(db *gorm.DB, userID uuid.UUID, upcomingOnly bool) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	query := db.Preload("TimeSlot.Provider").Where("appointments.user_id = ?", userID)
	if upcomingOnly {
		query = query.Joins("JOIN time_slots ON time_slots.id = appointments.time_slot_id").
			Where("time_slots.start_time >= ?", time.Now())
	}
	err := query.Order("appointments.booked_on DESC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// FindByProviderID returns appointments bound to slots the provider owns.
func (r *appointmentRepository) FindByProviderID(db *gorm.DB, providerID uuid.UUID, upcomingOnly bool) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	query := db.Preload("TimeSlot").Preload("User").
		Joins("JOIN time_slots ON time_slots.id = appointments.time_slot_id").
		Where("time_slots.provider_id = ?", providerID)
	if upcomingOnly {
		query = query.Where("time_slots.start_time >= ?", time.Now())
	}
	err := query.Order("appointments.booked_on DESC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindBySlotStartWindow(db *gorm.DB, from, to time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("TimeSlot.Provider").Preload("User").
		Joins("JOIN time_slots ON time_slots.id = appointments.time_slot_id").
		Where("time_slots.start_time BETWEEN ? AND ?", from, to).
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) Update(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Omit("TimeSlot", "User").Save(appointment).Error
}

func (r *appointmentRepository) Delete(db *gorm.DB, id int) error {
	return db.Where("id = ?", id).Delete(&entity.Appointment{}).Error
}

func (r *appointmentRepository) DeleteByTimeSlotID(db *gorm.DB, timeSlotID int) (int64, error) {
	result := db.Where("time_slot_id = ?", timeSlotID).Delete(&entity.Appointment{})
	return result.RowsAffected, result.Error
}
