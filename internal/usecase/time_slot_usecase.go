package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"calmseek-backend/internal/converter"
	"calmseek-backend/internal/delivery/dto"
	"calmseek-backend/internal/domain/entity"
	"calmseek-backend/internal/domain/repository"
	"calmseek-backend/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrSlotNotFound       = errors.New("time slot not found")
	ErrInvalidSlotWindow  = errors.New("slot end time must be after start time")
	ErrSlotInPast         = errors.New("slot start time must be in the future")
	ErrNotSlotOwner       = errors.New("slot belongs to another provider")
	ErrInvalidTimeOfDay   = errors.New("time of day must be in HH:MM format")
	ErrNoRecurringMatches = errors.New("no slot dates match the requested weekdays")
)

type TimeSlotUsecase interface {
	CreateSlot(ctx context.Context, providerID uuid.UUID, req *dto.CreateSlotRequest) (*dto.TimeSlotResponse, error)
	CreateRecurringSlots(ctx context.Context, providerID uuid.UUID, req *dto.CreateRecurringSlotsRequest) ([]dto.TimeSlotResponse, error)
	DeleteSlot(ctx context.Context, providerID uuid.UUID, slotID int) error
	ListProviderSlots(ctx context.Context, providerID uuid.UUID) ([]dto.TimeSlotResponse, error)
	ListAvailableSlots(ctx context.Context, filter *entity.SlotFilter) ([]dto.TimeSlotResponse, error)
}

type timeSlotUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	slotRepo        repository.TimeSlotRepository
	appointmentRepo repository.AppointmentRepository
	auditService    service.AuditService
}

func NewTimeSlotUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	slotRepo repository.TimeSlotRepository,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
) TimeSlotUsecase {
	return &timeSlotUsecase{
		db:              db,
		log:             log,
		slotRepo:        slotRepo,
		appointmentRepo: appointmentRepo,
		auditService:    auditService,
	}
}

func (u *timeSlotUsecase) CreateSlot(ctx context.Context, providerID uuid.UUID, req *dto.CreateSlotRequest) (*dto.TimeSlotResponse, error) {
	if !req.EndTime.After(req.StartTime) {
		return nil, ErrInvalidSlotWindow
	}
	if req.StartTime.Before(time.Now()) {
		return nil, ErrSlotInPast
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	slot := &entity.TimeSlot{
		ProviderID:  providerID,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		IsAvailable: true,
	}

	if err := u.slotRepo.Create(tx, slot); err != nil {
		u.log.Warnf("Failed to create time slot: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &providerID, entity.AuditActionSlotCreate, "time_slot", fmt.Sprintf("%d", slot.ID), slot); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.TimeSlotToResponse(slot), nil
}

func (u *timeSlotUsecase) CreateRecurringSlots(ctx context.Context, providerID uuid.UUID, req *dto.CreateRecurringSlotsRequest) ([]dto.TimeSlotResponse, error) {
	startHour, startMinute, err := parseTimeOfDay(req.StartTime)
	if err != nil {
		return nil, err
	}
	endHour, endMinute, err := parseTimeOfDay(req.EndTime)
	if err != nil {
		return nil, err
	}
	if endHour*60+endMinute <= startHour*60+startMinute {
		return nil, ErrInvalidSlotWindow
	}

	weekdays := make([]time.Weekday, len(req.Weekdays))
	for i, day := range req.Weekdays {
		weekdays[i] = time.Weekday(day)
	}

	dates := recurringSlotDates(time.Now(), weekdays, req.NumWeeks)
	if len(dates) == 0 {
		return nil, ErrNoRecurringMatches
	}

	slots := make([]entity.TimeSlot, 0, len(dates))
	for _, date := range dates {
		start := time.Date(date.Year(), date.Month(), date.Day(), startHour, startMinute, 0, 0, date.Location())
		end := time.Date(date.Year(), date.Month(), date.Day(), endHour, endMinute, 0, 0, date.Location())
		slots = append(slots, entity.TimeSlot{
			ProviderID:  providerID,
			StartTime:   start,
			EndTime:     end,
			IsAvailable: true,
		})
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.slotRepo.CreateBatch(tx, slots); err != nil {
		u.log.Warnf("Failed to create recurring slots: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &providerID, entity.AuditActionSlotCreate, "time_slot", "recurring", req); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.TimeSlotsToResponses(slots), nil
}

// DeleteSlot removes a slot owned by the acting provider along with any
// appointments booked against it.
func (u *timeSlotUsecase) DeleteSlot(ctx context.Context, providerID uuid.UUID, slotID int) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	slot, err := u.slotRepo.FindByID(tx, slotID)
	if err != nil {
		u.log.Warnf("Failed to find time slot: %+v", err)
		return err
	}
	if slot == nil {
		return ErrSlotNotFound
	}
	if slot.ProviderID != providerID {
		return ErrNotSlotOwner
	}

	if _, err := u.appointmentRepo.DeleteByTimeSlotID(tx, slotID); err != nil {
		u.log.Warnf("Failed to delete appointments for slot: %+v", err)
		return err
	}

	rows, err := u.slotRepo.Delete(tx, slotID)
	if err != nil {
		u.log.Warnf("Failed to delete time slot: %+v", err)
		return err
	}
	if rows == 0 {
		return ErrSlotNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, &providerID, entity.AuditActionSlotDelete, "time_slot", fmt.Sprintf("%d", slotID), slot); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return tx.Commit().Error
}

func (u *timeSlotUsecase) ListProviderSlots(ctx context.Context, providerID uuid.UUID) ([]dto.TimeSlotResponse, error) {
	slots, err := u.slotRepo.FindByProviderID(u.db.WithContext(ctx), providerID)
	if err != nil {
		u.log.Warnf("Failed to list provider slots: %+v", err)
		return nil, err
	}
	return converter.TimeSlotsToResponses(slots), nil
}

func (u *timeSlotUsecase) ListAvailableSlots(ctx context.Context, filter *entity.SlotFilter) ([]dto.TimeSlotResponse, error) {
	slots, err := u.slotRepo.FindAvailable(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list available slots: %+v", err)
		return nil, err
	}
	return converter.TimeSlotsToResponses(slots), nil
}

// recurringSlotDates returns one date per (week, weekday) pair over the
// next numWeeks weeks, starting from today. Today itself counts when it
// falls on a requested weekday. Dates are normalized to midnight and
// returned in chronological order.
func recurringSlotDates(today time.Time, weekdays []time.Weekday, numWeeks int) []time.Time {
	base := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())

	offsets := make([]int, 0, len(weekdays)*numWeeks)
	for week := 0; week < numWeeks; week++ {
		for _, weekday := range weekdays {
			daysUntil := (int(weekday) - int(base.Weekday()) + 7) % 7
			offsets = append(offsets, week*7+daysUntil)
		}
	}

	seen := make(map[int]bool, len(offsets))
	dates := make([]time.Time, 0, len(offsets))
	for _, offset := range offsets {
		if seen[offset] {
			continue
		}
		seen[offset] = true
		dates = append(dates, base.AddDate(0, 0, offset))
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

func parseTimeOfDay(value string) (hour, minute int, err error) {
	parsed, err := time.Parse("15:04", value)
	if err != nil {
		return 0, 0, ErrInvalidTimeOfDay
	}
	return parsed.Hour(), parsed.Minute(), nil
}
