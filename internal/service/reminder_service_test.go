package service

import (
	"io"
	"strings"
	"testing"
	"time"

	"calmseek-backend/internal/domain/entity"
	"calmseek-backend/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type sentMail struct {
	to      string
	subject string
	body    string
}

type fakeMailer struct {
	sent []sentMail
}

func (m *fakeMailer) Send(to, subject, htmlBody string) error {
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: htmlBody})
	return nil
}

func newReminderTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access connection pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&entity.Role{},
		&entity.Account{},
		&entity.ProviderDetail{},
		&entity.TimeSlot{},
		&entity.Appointment{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	roles := []entity.Role{
		{ID: entity.RoleIDAdmin, RoleName: "admin"},
		{ID: entity.RoleIDProvider, RoleName: "provider"},
		{ID: entity.RoleIDClient, RoleName: "client"},
	}
	if err := db.Create(&roles).Error; err != nil {
		t.Fatalf("failed to seed roles: %v", err)
	}
	return db
}

func newSilentLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func seedAppointment(t *testing.T, db *gorm.DB, start time.Time) *entity.Account {
	t.Helper()

	provider := &entity.Account{
		RoleID:   entity.RoleIDProvider,
		Username: "dr-" + start.Format("150405.000000000"),
		Email:    "dr-" + start.Format("150405.000000000") + "@example.com",
		Password: "hashed",
		FullName: "Dr. Field",
		IsActive: true,
	}
	if err := db.Create(provider).Error; err != nil {
		t.Fatalf("failed to create provider: %v", err)
	}

	client := &entity.Account{
		RoleID:   entity.RoleIDClient,
		Username: "cl-" + start.Format("150405.000000000"),
		Email:    "cl-" + start.Format("150405.000000000") + "@example.com",
		Password: "hashed",
		FullName: "Quiet Client",
		IsActive: true,
	}
	if err := db.Create(client).Error; err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	slot := &entity.TimeSlot{
		ProviderID:  provider.ID,
		StartTime:   start,
		EndTime:     start.Add(time.Hour),
		IsAvailable: false,
	}
	if err := db.Create(slot).Error; err != nil {
		t.Fatalf("failed to create slot: %v", err)
	}

	appointment := &entity.Appointment{
		UserID:          client.ID,
		TimeSlotID:      slot.ID,
		AppointmentType: entity.AppointmentTypeConsultation,
	}
	if err := db.Create(appointment).Error; err != nil {
		t.Fatalf("failed to create appointment: %v", err)
	}
	return client
}

func TestSendUpcomingReminders(t *testing.T) {
	db := newReminderTestDB(t)
	mailer := &fakeMailer{}
	service := NewReminderService(db, newSilentLogger(), repository.NewAppointmentRepository(), mailer)

	// Inside the window, well before it, and already past.
	client := seedAppointment(t, db, time.Now().Add(time.Hour))
	seedAppointment(t, db, time.Now().Add(6*time.Hour))
	seedAppointment(t, db, time.Now().Add(-time.Hour))

	service.SendUpcomingReminders()

	if len(mailer.sent) != 1 {
		t.Fatalf("expected 1 reminder, got %d", len(mailer.sent))
	}
	mail := mailer.sent[0]
	if mail.to != client.Email {
		t.Errorf("reminder sent to %q, want %q", mail.to, client.Email)
	}
	if !strings.Contains(mail.body, "Quiet Client") {
		t.Error("reminder body should address the client by name")
	}
	if !strings.Contains(mail.body, "Dr. Field") {
		t.Error("reminder body should name the provider")
	}
}

func TestSendUpcomingRemindersEmptyWindow(t *testing.T) {
	db := newReminderTestDB(t)
	mailer := &fakeMailer{}
	service := NewReminderService(db, newSilentLogger(), repository.NewAppointmentRepository(), mailer)

	service.SendUpcomingReminders()

	if len(mailer.sent) != 0 {
		t.Errorf("expected no reminders, got %d", len(mailer.sent))
	}
}
