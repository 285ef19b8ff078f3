package usecase

import (
	"fmt"
	"io"
	"testing"
	"time"

	"calmseek-backend/internal/domain/entity"
	"calmseek-backend/internal/repository"
	"calmseek-backend/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	db *gorm.DB
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// A single connection keeps every query on the same in-memory database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get database instance: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&entity.Role{},
		&entity.Account{},
		&entity.ProviderDetail{},
		&entity.ClientDetail{},
		&entity.TimeSlot{},
		&entity.Appointment{},
		&entity.Contact{},
		&entity.DirectMessage{},
		&entity.Group{},
		&entity.GroupMessage{},
		&entity.Invitation{},
		&entity.AuditLog{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	roles := []entity.Role{
		{ID: entity.RoleIDAdmin, RoleName: entity.RoleAdmin},
		{ID: entity.RoleIDProvider, RoleName: entity.RoleProvider},
		{ID: entity.RoleIDClient, RoleName: entity.RoleClient},
	}
	if err := db.Create(&roles).Error; err != nil {
		t.Fatalf("failed to seed roles: %v", err)
	}

	return db
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestAuditService(db *gorm.DB) service.AuditService {
	return service.NewAuditService(db, newTestLogger(), repository.NewAuditLogRepository())
}

var accountSeq int

func createAccount(t *testing.T, db *gorm.DB, roleID int) *entity.Account {
	t.Helper()

	accountSeq++
	account := &entity.Account{
		RoleID:   roleID,
		Username: fmt.Sprintf("user%d", accountSeq),
		Email:    fmt.Sprintf("user%d@example.com", accountSeq),
		Password: "hashed",
		FullName: fmt.Sprintf("Test User %d", accountSeq),
		IsActive: true,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create account: %v", err)
	}
	return account
}

func createClient(t *testing.T, db *gorm.DB) *entity.Account {
	t.Helper()

	account := createAccount(t, db, entity.RoleIDClient)
	detail := &entity.ClientDetail{UserID: account.ID}
	if err := db.Create(detail).Error; err != nil {
		t.Fatalf("failed to create client detail: %v", err)
	}
	account.ClientDetail = detail
	return account
}

func createProvider(t *testing.T, db *gorm.DB) *entity.Account {
	t.Helper()

	account := createAccount(t, db, entity.RoleIDProvider)
	detail := &entity.ProviderDetail{
		UserID:         account.ID,
		LicenseNumber:  fmt.Sprintf("LIC-%d", accountSeq),
		Specialization: entity.SpecializationTherapist,
		IsActivated:    true,
	}
	if err := db.Create(detail).Error; err != nil {
		t.Fatalf("failed to create provider detail: %v", err)
	}
	account.ProviderDetail = detail
	return account
}

func createSlot(t *testing.T, db *gorm.DB, providerID uuid.UUID, start time.Time, available bool) *entity.TimeSlot {
	t.Helper()

	slot := &entity.TimeSlot{
		ProviderID:  providerID,
		StartTime:   start,
		EndTime:     start.Add(time.Hour),
		IsAvailable: available,
	}
	if err := db.Create(slot).Error; err != nil {
		t.Fatalf("failed to create time slot: %v", err)
	}
	return slot
}
