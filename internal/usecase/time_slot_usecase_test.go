package usecase

import (
	"context"
	"testing"
	"time"

	"calmseek-backend/internal/delivery/dto"
	"calmseek-backend/internal/domain/entity"
	"calmseek-backend/internal/repository"
)

func newSlotUsecaseForTest(t *testing.T) (TimeSlotUsecase, *testEnv) {
	t.Helper()

	db := newTestDB(t)
	env := &testEnv{db: db}
	uc := NewTimeSlotUsecase(
		db,
		newTestLogger(),
		repository.NewTimeSlotRepository(),
		repository.NewAppointmentRepository(),
		newTestAuditService(db),
	)
	return uc, env
}

func TestRecurringSlotDates(t *testing.T) {
	// Wednesday
	today := time.Date(2026, 3, 4, 10, 30, 0, 0, time.UTC)

	t.Run("two weeks of mondays and wednesdays", func(t *testing.T) {
		dates := recurringSlotDates(today, []time.Weekday{time.Monday, time.Wednesday}, 2)
		if len(dates) != 4 {
			t.Fatalf("expected 4 dates, got %d", len(dates))
		}

		want := []time.Time{
			time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),  // today counts
			time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),  // next Monday
			time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), // Wednesday week 2
			time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), // Monday week 2
		}
		for i, date := range dates {
			if !date.Equal(want[i]) {
				t.Errorf("date[%d] = %s, want %s", i, date, want[i])
			}
		}
	})

	t.Run("today matches requested weekday", func(t *testing.T) {
		dates := recurringSlotDates(today, []time.Weekday{time.Wednesday}, 1)
		if len(dates) != 1 {
			t.Fatalf("expected 1 date, got %d", len(dates))
		}
		if dates[0].Weekday() != time.Wednesday {
			t.Errorf("expected Wednesday, got %s", dates[0].Weekday())
		}
		if !dates[0].Equal(time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("expected today's date, got %s", dates[0])
		}
	})

	t.Run("dates are sorted and deduplicated", func(t *testing.T) {
		dates := recurringSlotDates(today, []time.Weekday{time.Friday, time.Monday, time.Monday}, 3)
		if len(dates) != 6 {
			t.Fatalf("expected 6 dates, got %d", len(dates))
		}
		for i := 1; i < len(dates); i++ {
			if !dates[i].After(dates[i-1]) {
				t.Errorf("dates not strictly ascending at index %d", i)
			}
		}
	})
}

func TestCreateSlot(t *testing.T) {
	uc, env := newSlotUsecaseForTest(t)
	provider := createProvider(t, env.db)
	ctx := context.Background()

	start := time.Now().Add(24 * time.Hour).Truncate(time.Second)

	t.Run("success", func(t *testing.T) {
		slot, err := uc.CreateSlot(ctx, provider.ID, &dto.CreateSlotRequest{
			StartTime: start,
			EndTime:   start.Add(time.Hour),
		})
		if err != nil {
			t.Fatalf("CreateSlot failed: %v", err)
		}
		if !slot.IsAvailable {
			t.Error("new slot should be available")
		}
		if slot.ProviderID != provider.ID {
			t.Errorf("slot provider = %s, want %s", slot.ProviderID, provider.ID)
		}
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := uc.CreateSlot(ctx, provider.ID, &dto.CreateSlotRequest{
			StartTime: start,
			EndTime:   start.Add(-time.Hour),
		})
		if err != ErrInvalidSlotWindow {
			t.Errorf("expected ErrInvalidSlotWindow, got %v", err)
		}
	})

	t.Run("start in the past", func(t *testing.T) {
		past := time.Now().Add(-time.Hour)
		_, err := uc.CreateSlot(ctx, provider.ID, &dto.CreateSlotRequest{
			StartTime: past,
			EndTime:   past.Add(time.Hour),
		})
		if err != ErrSlotInPast {
			t.Errorf("expected ErrSlotInPast, got %v", err)
		}
	})
}

func TestCreateRecurringSlots(t *testing.T) {
	uc, env := newSlotUsecaseForTest(t)
	provider := createProvider(t, env.db)
	ctx := context.Background()

	t.Run("creates one slot per weekday per week", func(t *testing.T) {
		slots, err := uc.CreateRecurringSlots(ctx, provider.ID, &dto.CreateRecurringSlotsRequest{
			Weekdays:  []int{int(time.Monday), int(time.Thursday)},
			NumWeeks:  2,
			StartTime: "09:00",
			EndTime:   "10:00",
		})
		if err != nil {
			t.Fatalf("CreateRecurringSlots failed: %v", err)
		}
		if len(slots) != 4 {
			t.Fatalf("expected 4 slots, got %d", len(slots))
		}
		for _, slot := range slots {
			if slot.StartTime.Hour() != 9 || slot.StartTime.Minute() != 0 {
				t.Errorf("slot start = %s, want 09:00", slot.StartTime.Format("15:04"))
			}
			if slot.EndTime.Hour() != 10 {
				t.Errorf("slot end = %s, want 10:00", slot.EndTime.Format("15:04"))
			}
			if !slot.IsAvailable {
				t.Error("recurring slot should be available")
			}
		}
	})

	t.Run("rejects bad time of day", func(t *testing.T) {
		_, err := uc.CreateRecurringSlots(ctx, provider.ID, &dto.CreateRecurringSlotsRequest{
			Weekdays:  []int{int(time.Monday)},
			NumWeeks:  1,
			StartTime: "morning",
			EndTime:   "10:00",
		})
		if err != ErrInvalidTimeOfDay {
			t.Errorf("expected ErrInvalidTimeOfDay, got %v", err)
		}
	})

	t.Run("rejects inverted window", func(t *testing.T) {
		_, err := uc.CreateRecurringSlots(ctx, provider.ID, &dto.CreateRecurringSlotsRequest{
			Weekdays:  []int{int(time.Monday)},
			NumWeeks:  1,
			StartTime: "10:00",
			EndTime:   "09:00",
		})
		if err != ErrInvalidSlotWindow {
			t.Errorf("expected ErrInvalidSlotWindow, got %v", err)
		}
	})
}

func TestDeleteSlot(t *testing.T) {
	uc, env := newSlotUsecaseForTest(t)
	provider := createProvider(t, env.db)
	other := createProvider(t, env.db)
	client := createClient(t, env.db)
	ctx := context.Background()

	t.Run("owner deletes slot and its booking", func(t *testing.T) {
		slot := createSlot(t, env.db, provider.ID, time.Now().Add(48*time.Hour), false)
		appointment := &entity.Appointment{
			UserID:          client.ID,
			TimeSlotID:      slot.ID,
			AppointmentType: entity.AppointmentTypeConsultation,
		}
		if err := env.db.Create(appointment).Error; err != nil {
			t.Fatalf("failed to create appointment: %v", err)
		}

		if err := uc.DeleteSlot(ctx, provider.ID, slot.ID); err != nil {
			t.Fatalf("DeleteSlot failed: %v", err)
		}

		var slotCount, appointmentCount int64
		env.db.Model(&entity.TimeSlot{}).Where("id = ?", slot.ID).Count(&slotCount)
		env.db.Model(&entity.Appointment{}).Where("time_slot_id = ?", slot.ID).Count(&appointmentCount)
		if slotCount != 0 {
			t.Error("slot should be deleted")
		}
		if appointmentCount != 0 {
			t.Error("appointments against the slot should be deleted")
		}
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		slot := createSlot(t, env.db, provider.ID, time.Now().Add(72*time.Hour), true)

		err := uc.DeleteSlot(ctx, other.ID, slot.ID)
		if err != ErrNotSlotOwner {
			t.Errorf("expected ErrNotSlotOwner, got %v", err)
		}

		var count int64
		env.db.Model(&entity.TimeSlot{}).Where("id = ?", slot.ID).Count(&count)
		if count != 1 {
			t.Error("slot should still exist")
		}
	})

	t.Run("missing slot", func(t *testing.T) {
		if err := uc.DeleteSlot(ctx, provider.ID, 99999); err != ErrSlotNotFound {
			t.Errorf("expected ErrSlotNotFound, got %v", err)
		}
	})
}

func TestListAvailableSlots(t *testing.T) {
	uc, env := newSlotUsecaseForTest(t)
	provider := createProvider(t, env.db)
	other := createProvider(t, env.db)
	ctx := context.Background()

	start := time.Now().Add(24 * time.Hour)
	createSlot(t, env.db, provider.ID, start, true)
	createSlot(t, env.db, provider.ID, start.Add(2*time.Hour), false) // booked
	createSlot(t, env.db, other.ID, start.Add(time.Hour), true)

	t.Run("only available slots", func(t *testing.T) {
		slots, err := uc.ListAvailableSlots(ctx, &entity.SlotFilter{})
		if err != nil {
			t.Fatalf("ListAvailableSlots failed: %v", err)
		}
		if len(slots) != 2 {
			t.Fatalf("expected 2 slots, got %d", len(slots))
		}
		for _, slot := range slots {
			if !slot.IsAvailable {
				t.Error("listing should only contain available slots")
			}
		}
	})

	t.Run("filter by provider", func(t *testing.T) {
		slots, err := uc.ListAvailableSlots(ctx, &entity.SlotFilter{ProviderID: &other.ID})
		if err != nil {
			t.Fatalf("ListAvailableSlots failed: %v", err)
		}
		if len(slots) != 1 {
			t.Fatalf("expected 1 slot, got %d", len(slots))
		}
		if slots[0].ProviderID != other.ID {
			t.Errorf("slot provider = %s, want %s", slots[0].ProviderID, other.ID)
		}
	})
}
