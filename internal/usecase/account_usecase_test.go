package usecase

import (
	"context"
	"testing"

	"calmseek-backend/internal/delivery/dto"
	"calmseek-backend/internal/domain/entity"
	"calmseek-backend/internal/repository"

	"github.com/shopspring/decimal"
)

func newAccountUsecaseForTest(t *testing.T) (AccountUsecase, *testEnv) {
	t.Helper()

	db := newTestDB(t)
	env := &testEnv{db: db}
	uc := NewAccountUsecase(
		db,
		newTestLogger(),
		repository.NewAccountRepository(),
		repository.NewProviderDetailRepository(),
		repository.NewClientDetailRepository(),
		newTestAuditService(db),
	)
	return uc, env
}

func TestUpdateClientProfile(t *testing.T) {
	uc, env := newAccountUsecaseForTest(t)
	client := createClient(t, env.db)
	ctx := context.Background()

	account, err := uc.UpdateClientProfile(ctx, client.ID, &dto.UpdateClientProfileRequest{
		FullName:    "Mira Chen",
		PhoneNumber: "15550001111",
		Bio:         "looking for weekly sessions",
	})
	if err != nil {
		t.Fatalf("UpdateClientProfile failed: %v", err)
	}
	if account.FullName != "Mira Chen" {
		t.Errorf("full name = %q", account.FullName)
	}

	var detail entity.ClientDetail
	if err := env.db.Where("user_id = ?", client.ID).First(&detail).Error; err != nil {
		t.Fatalf("failed to load client detail: %v", err)
	}
	if detail.PhoneNumber != "15550001111" || detail.Bio != "looking for weekly sessions" {
		t.Errorf("detail not updated: %+v", detail)
	}

	t.Run("empty fields keep their old values", func(t *testing.T) {
		if _, err := uc.UpdateClientProfile(ctx, client.ID, &dto.UpdateClientProfileRequest{
			Bio: "prefers evenings",
		}); err != nil {
			t.Fatalf("UpdateClientProfile failed: %v", err)
		}

		var account entity.Account
		if err := env.db.First(&account, "id = ?", client.ID).Error; err != nil {
			t.Fatalf("failed to load account: %v", err)
		}
		if account.FullName != "Mira Chen" {
			t.Errorf("full name should be unchanged, got %q", account.FullName)
		}
	})

	t.Run("provider accounts have no client profile", func(t *testing.T) {
		provider := createProvider(t, env.db)
		_, err := uc.UpdateClientProfile(ctx, provider.ID, &dto.UpdateClientProfileRequest{Bio: "x"})
		if err != ErrProfileNotFound {
			t.Errorf("expected ErrProfileNotFound, got %v", err)
		}
	})
}

func TestUpdateProviderProfile(t *testing.T) {
	uc, env := newAccountUsecaseForTest(t)
	provider := createProvider(t, env.db)
	ctx := context.Background()

	fee := decimal.NewFromInt(120)
	if _, err := uc.UpdateProviderProfile(ctx, provider.ID, &dto.UpdateProviderProfileRequest{
		Specialization: string(entity.SpecializationCounselor),
		City:           "Portland",
		SessionFee:     &fee,
	}); err != nil {
		t.Fatalf("UpdateProviderProfile failed: %v", err)
	}

	var detail entity.ProviderDetail
	if err := env.db.Where("user_id = ?", provider.ID).First(&detail).Error; err != nil {
		t.Fatalf("failed to load provider detail: %v", err)
	}
	if detail.Specialization != entity.SpecializationCounselor {
		t.Errorf("specialization = %q", detail.Specialization)
	}
	if detail.City != "Portland" {
		t.Errorf("city = %q", detail.City)
	}
	if !detail.SessionFee.Equal(fee) {
		t.Errorf("session fee = %s, want %s", detail.SessionFee, fee)
	}

	t.Run("unknown specialization is rejected", func(t *testing.T) {
		_, err := uc.UpdateProviderProfile(ctx, provider.ID, &dto.UpdateProviderProfileRequest{
			Specialization: "Astrologer",
		})
		if err != ErrInvalidSpecialization {
			t.Errorf("expected ErrInvalidSpecialization, got %v", err)
		}
	})
}

func TestFavorites(t *testing.T) {
	uc, env := newAccountUsecaseForTest(t)
	client := createClient(t, env.db)
	provider := createProvider(t, env.db)
	otherClient := createClient(t, env.db)
	ctx := context.Background()

	t.Run("clients can favorite providers", func(t *testing.T) {
		if err := uc.AddFavorite(ctx, client.ID, provider.ID); err != nil {
			t.Fatalf("AddFavorite failed: %v", err)
		}

		favorites, err := uc.ListFavorites(ctx, client.ID)
		if err != nil {
			t.Fatalf("ListFavorites failed: %v", err)
		}
		if len(favorites) != 1 || favorites[0].ID != provider.ID {
			t.Errorf("unexpected favorites: %+v", favorites)
		}
	})

	t.Run("only providers can be favorited", func(t *testing.T) {
		if err := uc.AddFavorite(ctx, client.ID, otherClient.ID); err != ErrNotAProvider {
			t.Errorf("expected ErrNotAProvider, got %v", err)
		}
	})

	t.Run("cannot favorite yourself", func(t *testing.T) {
		if err := uc.AddFavorite(ctx, provider.ID, provider.ID); err != ErrSelfFavorite {
			t.Errorf("expected ErrSelfFavorite, got %v", err)
		}
	})

	t.Run("removing a favorite empties the list", func(t *testing.T) {
		if err := uc.RemoveFavorite(ctx, client.ID, provider.ID); err != nil {
			t.Fatalf("RemoveFavorite failed: %v", err)
		}

		favorites, err := uc.ListFavorites(ctx, client.ID)
		if err != nil {
			t.Fatalf("ListFavorites failed: %v", err)
		}
		if len(favorites) != 0 {
			t.Errorf("expected no favorites, got %d", len(favorites))
		}
	})
}
