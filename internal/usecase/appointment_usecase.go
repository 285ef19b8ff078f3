package usecase

import (
	"context"
	"errors"
	"fmt"

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
	ErrAppointmentNotFound    = errors.New("appointment not found")
	ErrSlotNotAvailable       = errors.New("time slot is no longer available")
	ErrInvalidAppointmentType = errors.New("unknown appointment type")
	ErrNotAppointmentOwner    = errors.New("appointment belongs to another account")
)

type AppointmentUsecase interface {
	Book(ctx context.Context, userID uuid.UUID, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error)
	Cancel(ctx context.Context, actorID uuid.UUID, appointmentID int) error
	Reschedule(ctx context.Context, userID uuid.UUID, appointmentID int, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error)
	ListForUser(ctx context.Context, userID uuid.UUID, upcomingOnly bool) ([]dto.AppointmentResponse, error)
	ListForProvider(ctx context.Context, providerID uuid.UUID, upcomingOnly bool) ([]dto.AppointmentResponse, error)
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	slotRepo        repository.TimeSlotRepository
	auditService    service.AuditService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	slotRepo repository.TimeSlotRepository,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		slotRepo:        slotRepo,
		auditService:    auditService,
	}
}

// Book reserves the slot and creates the appointment in one
// transaction. The conditional flip on is_available is what prevents a
// double booking: whichever transaction flips it first wins, the other
// sees zero affected rows.
func (u *appointmentUsecase) Book(ctx context.Context, userID uuid.UUID, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	appointmentType := entity.AppointmentType(req.AppointmentType)
	if !appointmentType.IsValid() {
		return nil, ErrInvalidAppointmentType
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	slot, err := u.slotRepo.FindByID(tx, req.TimeSlotID)
	if err != nil {
		u.log.Warnf("Failed to find time slot: %+v", err)
		return nil, err
	}
	if slot == nil {
		return nil, ErrSlotNotFound
	}

	rows, err := u.slotRepo.MarkUnavailable(tx, req.TimeSlotID)
	if err != nil {
		u.log.Warnf("Failed to reserve time slot: %+v", err)
		return nil, err
	}
	if rows == 0 {
		return nil, ErrSlotNotAvailable
	}

	appointment := &entity.Appointment{
		UserID:          userID,
		TimeSlotID:      req.TimeSlotID,
		Comments:        req.Comments,
		AppointmentType: appointmentType,
	}

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &userID, entity.AuditActionAppointmentBook, "appointment", fmt.Sprintf("%d", appointment.ID), appointment); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	slot.IsAvailable = false
	appointment.TimeSlot = *slot
	return converter.AppointmentToResponse(appointment), nil
}

// Cancel deletes the appointment and releases its slot. Allowed for the
// booking client and for the provider who owns the slot.
func (u *appointmentUsecase) Cancel(ctx context.Context, actorID uuid.UUID, appointmentID int) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(tx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}

	if appointment.UserID != actorID && appointment.TimeSlot.ProviderID != actorID {
		return ErrNotAppointmentOwner
	}

	if err := u.appointmentRepo.Delete(tx, appointmentID); err != nil {
		u.log.Warnf("Failed to delete appointment: %+v", err)
		return err
	}

	if err := u.slotRepo.MarkAvailable(tx, appointment.TimeSlotID); err != nil {
		u.log.Warnf("Failed to release time slot: %+v", err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, &actorID, entity.AuditActionAppointmentCancel, "appointment", fmt.Sprintf("%d", appointmentID), appointment); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return tx.Commit().Error
}

// Reschedule moves the appointment to a new slot, optionally changing
// its type. The new slot is reserved first; only then is the old slot
// released, so a failed reservation leaves the appointment untouched.
func (u *appointmentUsecase) Reschedule(ctx context.Context, userID uuid.UUID, appointmentID int, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error) {
	if req.AppointmentType != "" && !entity.AppointmentType(req.AppointmentType).IsValid() {
		return nil, ErrInvalidAppointmentType
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(tx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if appointment.UserID != userID {
		return nil, ErrNotAppointmentOwner
	}

	newSlot, err := u.slotRepo.FindByID(tx, req.NewTimeSlotID)
	if err != nil {
		u.log.Warnf("Failed to find new time slot: %+v", err)
		return nil, err
	}
	if newSlot == nil {
		return nil, ErrSlotNotFound
	}

	rows, err := u.slotRepo.MarkUnavailable(tx, req.NewTimeSlotID)
	if err != nil {
		u.log.Warnf("Failed to reserve new time slot: %+v", err)
		return nil, err
	}
	if rows == 0 {
		return nil, ErrSlotNotAvailable
	}

	oldSlotID := appointment.TimeSlotID
	if err := u.slotRepo.MarkAvailable(tx, oldSlotID); err != nil {
		u.log.Warnf("Failed to release old time slot: %+v", err)
		return nil, err
	}

	appointment.TimeSlotID = req.NewTimeSlotID
	if req.AppointmentType != "" {
		appointment.AppointmentType = entity.AppointmentType(req.AppointmentType)
	}
	if err := u.appointmentRepo.Update(tx, appointment); err != nil {
		u.log.Warnf("Failed to update appointment: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionAppointmentReschedule, "appointment", fmt.Sprintf("%d", appointmentID), oldSlotID, req.NewTimeSlotID); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	newSlot.IsAvailable = false
	appointment.TimeSlot = *newSlot
	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) ListForUser(ctx context.Context, userID uuid.UUID, upcomingOnly bool) ([]dto.AppointmentResponse, error) {
	appointments, err := u.appointmentRepo.FindByUserID(u.db.WithContext(ctx), userID, upcomingOnly)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}
	return converter.AppointmentsToResponses(appointments), nil
}

func (u *appointmentUsecase) ListForProvider(ctx context.Context, providerID uuid.UUID, upcomingOnly bool) ([]dto.AppointmentResponse, error) {
	appointments, err := u.appointmentRepo.FindByProviderID(u.db.WithContext(ctx), providerID, upcomingOnly)
	if err != nil {
		u.log.Warnf("Failed to list provider appointments: %+v", err)
		return nil, err
	}
	return converter.AppointmentsToResponses(appointments), nil
}
