package usecase

import (
	"context"
	"testing"

	"calmseek-backend/internal/domain/entity"
	"calmseek-backend/internal/repository"

	"github.com/google/uuid"
)

func newProviderUsecaseForTest(t *testing.T) (ProviderUsecase, *testEnv) {
	t.Helper()

	db := newTestDB(t)
	env := &testEnv{db: db}
	uc := NewProviderUsecase(db, newTestLogger(), repository.NewProviderDetailRepository())
	return uc, env
}

func TestListProviders(t *testing.T) {
	uc, env := newProviderUsecaseForTest(t)
	first := createProvider(t, env.db)
	second := createProvider(t, env.db)
	createClient(t, env.db)
	ctx := context.Background()

	env.db.Model(&entity.ProviderDetail{}).
		Where("user_id = ?", second.ID).
		Update("specialization", entity.SpecializationPsychiatrist)

	t.Run("lists every provider without a filter", func(t *testing.T) {
		providers, err := uc.ListProviders(ctx, nil)
		if err != nil {
			t.Fatalf("ListProviders failed: %v", err)
		}
		if len(providers) != 2 {
			t.Errorf("expected 2 providers, got %d", len(providers))
		}
	})

	t.Run("filters by specialization", func(t *testing.T) {
		providers, err := uc.ListProviders(ctx, &entity.ProviderFilter{
			Specialization: string(entity.SpecializationPsychiatrist),
		})
		if err != nil {
			t.Fatalf("ListProviders failed: %v", err)
		}
		if len(providers) != 1 || providers[0].UserID != second.ID {
			t.Errorf("expected only the psychiatrist, got %+v", providers)
		}
	})

	t.Run("excludes deactivated accounts", func(t *testing.T) {
		env.db.Model(&entity.Account{}).Where("id = ?", first.ID).Update("is_active", false)
		defer env.db.Model(&entity.Account{}).Where("id = ?", first.ID).Update("is_active", true)

		providers, err := uc.ListProviders(ctx, nil)
		if err != nil {
			t.Fatalf("ListProviders failed: %v", err)
		}
		if len(providers) != 1 {
			t.Errorf("expected 1 provider after deactivation, got %d", len(providers))
		}
	})
}

func TestGetProvider(t *testing.T) {
	uc, env := newProviderUsecaseForTest(t)
	provider := createProvider(t, env.db)
	ctx := context.Background()

	detail, err := uc.GetProvider(ctx, provider.ID)
	if err != nil {
		t.Fatalf("GetProvider failed: %v", err)
	}
	if detail.UserID != provider.ID {
		t.Errorf("detail user = %s, want %s", detail.UserID, provider.ID)
	}
	if detail.Specialization != string(entity.SpecializationTherapist) {
		t.Errorf("specialization = %q", detail.Specialization)
	}

	t.Run("unknown provider", func(t *testing.T) {
		if _, err := uc.GetProvider(ctx, uuid.New()); err != ErrProviderNotFound {
			t.Errorf("expected ErrProviderNotFound, got %v", err)
		}
	})
}

func TestActivateProvider(t *testing.T) {
	uc, env := newProviderUsecaseForTest(t)
	provider := createProvider(t, env.db)
	ctx := context.Background()

	env.db.Model(&entity.ProviderDetail{}).
		Where("user_id = ?", provider.ID).
		Update("is_activated", false)

	if err := uc.ActivateProvider(ctx, provider.ID); err != nil {
		t.Fatalf("ActivateProvider failed: %v", err)
	}

	var detail entity.ProviderDetail
	if err := env.db.Where("user_id = ?", provider.ID).First(&detail).Error; err != nil {
		t.Fatalf("failed to load provider detail: %v", err)
	}
	if !detail.IsActivated {
		t.Error("provider should be activated")
	}

	t.Run("unknown provider", func(t *testing.T) {
		if err := uc.ActivateProvider(ctx, uuid.New()); err != ErrProviderNotFound {
			t.Errorf("expected ErrProviderNotFound, got %v", err)
		}
	})
}
