package usecase

import (
	"context"
	"testing"
	"time"

	"calmseek-backend/internal/delivery/dto"
	"calmseek-backend/internal/domain/entity"
	"calmseek-backend/internal/repository"
)

func newAppointmentUsecaseForTest(t *testing.T) (AppointmentUsecase, *testEnv) {
	t.Helper()

	db := newTestDB(t)
	env := &testEnv{db: db}
	uc := NewAppointmentUsecase(
		db,
		newTestLogger(),
		repository.NewAppointmentRepository(),
		repository.NewTimeSlotRepository(),
		newTestAuditService(db),
	)
	return uc, env
}

func slotAvailability(t *testing.T, env *testEnv, slotID int) bool {
	t.Helper()

	var slot entity.TimeSlot
	if err := env.db.First(&slot, slotID).Error; err != nil {
		t.Fatalf("failed to load slot: %v", err)
	}
	return slot.IsAvailable
}

func TestBookAppointment(t *testing.T) {
	uc, env := newAppointmentUsecaseForTest(t)
	provider := createProvider(t, env.db)
	client := createClient(t, env.db)
	ctx := context.Background()

	t.Run("booking reserves the slot", func(t *testing.T) {
		slot := createSlot(t, env.db, provider.ID, time.Now().Add(24*time.Hour), true)

		appointment, err := uc.Book(ctx, client.ID, &dto.BookAppointmentRequest{
			TimeSlotID:      slot.ID,
			AppointmentType: string(entity.AppointmentTypeConsultation),
			Comments:        "first session",
		})
		if err != nil {
			t.Fatalf("Book failed: %v", err)
		}
		if appointment.UserID != client.ID {
			t.Errorf("appointment user = %s, want %s", appointment.UserID, client.ID)
		}
		if slotAvailability(t, env, slot.ID) {
			t.Error("booked slot should no longer be available")
		}
	})

	t.Run("booking an unavailable slot fails", func(t *testing.T) {
		slot := createSlot(t, env.db, provider.ID, time.Now().Add(24*time.Hour), false)

		_, err := uc.Book(ctx, client.ID, &dto.BookAppointmentRequest{
			TimeSlotID:      slot.ID,
			AppointmentType: string(entity.AppointmentTypeCheckup),
		})
		if err != ErrSlotNotAvailable {
			t.Errorf("expected ErrSlotNotAvailable, got %v", err)
		}

		var count int64
		env.db.Model(&entity.Appointment{}).Where("time_slot_id = ?", slot.ID).Count(&count)
		if count != 0 {
			t.Error("no appointment should be created for an unavailable slot")
		}
	})

	t.Run("double booking the same slot fails", func(t *testing.T) {
		slot := createSlot(t, env.db, provider.ID, time.Now().Add(24*time.Hour), true)
		other := createClient(t, env.db)

		if _, err := uc.Book(ctx, client.ID, &dto.BookAppointmentRequest{
			TimeSlotID:      slot.ID,
			AppointmentType: string(entity.AppointmentTypeCheckup),
		}); err != nil {
			t.Fatalf("first booking failed: %v", err)
		}

		_, err := uc.Book(ctx, other.ID, &dto.BookAppointmentRequest{
			TimeSlotID:      slot.ID,
			AppointmentType: string(entity.AppointmentTypeCheckup),
		})
		if err != ErrSlotNotAvailable {
			t.Errorf("expected ErrSlotNotAvailable, got %v", err)
		}

		var count int64
		env.db.Model(&entity.Appointment{}).Where("time_slot_id = ?", slot.ID).Count(&count)
		if count != 1 {
			t.Errorf("expected exactly 1 appointment, got %d", count)
		}
	})

	t.Run("unknown appointment type", func(t *testing.T) {
		slot := createSlot(t, env.db, provider.ID, time.Now().Add(24*time.Hour), true)

		_, err := uc.Book(ctx, client.ID, &dto.BookAppointmentRequest{
			TimeSlotID:      slot.ID,
			AppointmentType: "Walk-in",
		})
		if err != ErrInvalidAppointmentType {
			t.Errorf("expected ErrInvalidAppointmentType, got %v", err)
		}
	})

	t.Run("missing slot", func(t *testing.T) {
		_, err := uc.Book(ctx, client.ID, &dto.BookAppointmentRequest{
			TimeSlotID:      99999,
			AppointmentType: string(entity.AppointmentTypeCheckup),
		})
		if err != ErrSlotNotFound {
			t.Errorf("expected ErrSlotNotFound, got %v", err)
		}
	})
}

func TestCancelAppointment(t *testing.T) {
	uc, env := newAppointmentUsecaseForTest(t)
	provider := createProvider(t, env.db)
	client := createClient(t, env.db)
	stranger := createClient(t, env.db)
	ctx := context.Background()

	book := func(t *testing.T) (*entity.TimeSlot, int) {
		t.Helper()
		slot := createSlot(t, env.db, provider.ID, time.Now().Add(24*time.Hour), true)
		appointment, err := uc.Book(ctx, client.ID, &dto.BookAppointmentRequest{
			TimeSlotID:      slot.ID,
			AppointmentType: string(entity.AppointmentTypeConsultation),
		})
		if err != nil {
			t.Fatalf("Book failed: %v", err)
		}
		return slot, appointment.ID
	}

	t.Run("booking client can cancel", func(t *testing.T) {
		slot, appointmentID := book(t)

		if err := uc.Cancel(ctx, client.ID, appointmentID); err != nil {
			t.Fatalf("Cancel failed: %v", err)
		}
		if !slotAvailability(t, env, slot.ID) {
			t.Error("cancelled slot should be available again")
		}
	})

	t.Run("slot provider can cancel", func(t *testing.T) {
		slot, appointmentID := book(t)

		if err := uc.Cancel(ctx, provider.ID, appointmentID); err != nil {
			t.Fatalf("Cancel by provider failed: %v", err)
		}
		if !slotAvailability(t, env, slot.ID) {
			t.Error("cancelled slot should be available again")
		}
	})

	t.Run("stranger cannot cancel", func(t *testing.T) {
		slot, appointmentID := book(t)

		err := uc.Cancel(ctx, stranger.ID, appointmentID)
		if err != ErrNotAppointmentOwner {
			t.Errorf("expected ErrNotAppointmentOwner, got %v", err)
		}
		if slotAvailability(t, env, slot.ID) {
			t.Error("slot should remain reserved after a rejected cancel")
		}
	})

	t.Run("missing appointment", func(t *testing.T) {
		if err := uc.Cancel(ctx, client.ID, 99999); err != ErrAppointmentNotFound {
			t.Errorf("expected ErrAppointmentNotFound, got %v", err)
		}
	})
}

func TestRescheduleAppointment(t *testing.T) {
	uc, env := newAppointmentUsecaseForTest(t)
	provider := createProvider(t, env.db)
	client := createClient(t, env.db)
	ctx := context.Background()

	t.Run("moves to the new slot and frees the old one", func(t *testing.T) {
		oldSlot := createSlot(t, env.db, provider.ID, time.Now().Add(24*time.Hour), true)
		newSlot := createSlot(t, env.db, provider.ID, time.Now().Add(48*time.Hour), true)

		appointment, err := uc.Book(ctx, client.ID, &dto.BookAppointmentRequest{
			TimeSlotID:      oldSlot.ID,
			AppointmentType: string(entity.AppointmentTypeConsultation),
		})
		if err != nil {
			t.Fatalf("Book failed: %v", err)
		}

		moved, err := uc.Reschedule(ctx, client.ID, appointment.ID, &dto.RescheduleAppointmentRequest{
			NewTimeSlotID: newSlot.ID,
		})
		if err != nil {
			t.Fatalf("Reschedule failed: %v", err)
		}
		if moved.TimeSlot == nil || moved.TimeSlot.ID != newSlot.ID {
			t.Error("appointment should reference the new slot")
		}
		if !slotAvailability(t, env, oldSlot.ID) {
			t.Error("old slot should be released")
		}
		if slotAvailability(t, env, newSlot.ID) {
			t.Error("new slot should be reserved")
		}
	})

	t.Run("can change the appointment type while rescheduling", func(t *testing.T) {
		oldSlot := createSlot(t, env.db, provider.ID, time.Now().Add(24*time.Hour), true)
		newSlot := createSlot(t, env.db, provider.ID, time.Now().Add(48*time.Hour), true)

		appointment, err := uc.Book(ctx, client.ID, &dto.BookAppointmentRequest{
			TimeSlotID:      oldSlot.ID,
			AppointmentType: string(entity.AppointmentTypeCheckup),
		})
		if err != nil {
			t.Fatalf("Book failed: %v", err)
		}

		moved, err := uc.Reschedule(ctx, client.ID, appointment.ID, &dto.RescheduleAppointmentRequest{
			NewTimeSlotID:   newSlot.ID,
			AppointmentType: string(entity.AppointmentTypeEmergency),
		})
		if err != nil {
			t.Fatalf("Reschedule failed: %v", err)
		}
		if moved.AppointmentType != string(entity.AppointmentTypeEmergency) {
			t.Errorf("appointment type = %q, want Emergency", moved.AppointmentType)
		}
	})

	t.Run("rescheduling to a taken slot leaves everything unchanged", func(t *testing.T) {
		oldSlot := createSlot(t, env.db, provider.ID, time.Now().Add(24*time.Hour), true)
		takenSlot := createSlot(t, env.db, provider.ID, time.Now().Add(48*time.Hour), false)

		appointment, err := uc.Book(ctx, client.ID, &dto.BookAppointmentRequest{
			TimeSlotID:      oldSlot.ID,
			AppointmentType: string(entity.AppointmentTypeConsultation),
		})
		if err != nil {
			t.Fatalf("Book failed: %v", err)
		}

		_, err = uc.Reschedule(ctx, client.ID, appointment.ID, &dto.RescheduleAppointmentRequest{
			NewTimeSlotID: takenSlot.ID,
		})
		if err != ErrSlotNotAvailable {
			t.Errorf("expected ErrSlotNotAvailable, got %v", err)
		}

		var stored entity.Appointment
		if err := env.db.First(&stored, appointment.ID).Error; err != nil {
			t.Fatalf("failed to load appointment: %v", err)
		}
		if stored.TimeSlotID != oldSlot.ID {
			t.Error("appointment should still reference the old slot")
		}
		if slotAvailability(t, env, oldSlot.ID) {
			t.Error("old slot should remain reserved")
		}
	})

	t.Run("only the booking client can reschedule", func(t *testing.T) {
		oldSlot := createSlot(t, env.db, provider.ID, time.Now().Add(24*time.Hour), true)
		newSlot := createSlot(t, env.db, provider.ID, time.Now().Add(48*time.Hour), true)
		other := createClient(t, env.db)

		appointment, err := uc.Book(ctx, client.ID, &dto.BookAppointmentRequest{
			TimeSlotID:      oldSlot.ID,
			AppointmentType: string(entity.AppointmentTypeConsultation),
		})
		if err != nil {
			t.Fatalf("Book failed: %v", err)
		}

		_, err = uc.Reschedule(ctx, other.ID, appointment.ID, &dto.RescheduleAppointmentRequest{
			NewTimeSlotID: newSlot.ID,
		})
		if err != ErrNotAppointmentOwner {
			t.Errorf("expected ErrNotAppointmentOwner, got %v", err)
		}
	})
}

func TestListAppointments(t *testing.T) {
	uc, env := newAppointmentUsecaseForTest(t)
	provider := createProvider(t, env.db)
	client := createClient(t, env.db)
	ctx := context.Background()

	past := createSlot(t, env.db, provider.ID, time.Now().Add(-48*time.Hour), true)
	future := createSlot(t, env.db, provider.ID, time.Now().Add(48*time.Hour), true)

	for _, slot := range []*entity.TimeSlot{past, future} {
		appointment := &entity.Appointment{
			UserID:          client.ID,
			TimeSlotID:      slot.ID,
			AppointmentType: entity.AppointmentTypeCheckup,
		}
		if err := env.db.Create(appointment).Error; err != nil {
			t.Fatalf("failed to create appointment: %v", err)
		}
	}

	t.Run("all for user", func(t *testing.T) {
		appointments, err := uc.ListForUser(ctx, client.ID, false)
		if err != nil {
			t.Fatalf("ListForUser failed: %v", err)
		}
		if len(appointments) != 2 {
			t.Errorf("expected 2 appointments, got %d", len(appointments))
		}
	})

	t.Run("upcoming only for user", func(t *testing.T) {
		appointments, err := uc.ListForUser(ctx, client.ID, true)
		if err != nil {
			t.Fatalf("ListForUser failed: %v", err)
		}
		if len(appointments) != 1 {
			t.Fatalf("expected 1 appointment, got %d", len(appointments))
		}
		if appointments[0].TimeSlot == nil || appointments[0].TimeSlot.ID != future.ID {
			t.Error("upcoming listing should contain the future slot")
		}
	})

	t.Run("provider sees bookings against own slots", func(t *testing.T) {
		appointments, err := uc.ListForProvider(ctx, provider.ID, false)
		if err != nil {
			t.Fatalf("ListForProvider failed: %v", err)
		}
		if len(appointments) != 2 {
			t.Errorf("expected 2 appointments, got %d", len(appointments))
		}
	})
}
