package usecase

import (
	"context"
	"errors"

	"calmseek-backend/internal/converter"
	"calmseek-backend/internal/delivery/dto"
	"calmseek-backend/internal/domain/entity"
	"calmseek-backend/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrProviderNotFound = errors.New("provider not found")

type ProviderUsecase interface {
	ListProviders(ctx context.Context, filter *entity.ProviderFilter) ([]dto.ProviderDetailResponse, error)
	GetProvider(ctx context.Context, providerID uuid.UUID) (*dto.ProviderDetailResponse, error)
	ActivateProvider(ctx context.Context, providerID uuid.UUID) error
}

type providerUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	providerRepo repository.ProviderDetailRepository
}

func NewProviderUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	providerRepo repository.ProviderDetailRepository,
) ProviderUsecase {
	return &providerUsecase{
		db:           db,
		log:          log,
		providerRepo: providerRepo,
	}
}

func (u *providerUsecase) ListProviders(ctx context.Context, filter *entity.ProviderFilter) ([]dto.ProviderDetailResponse, error) {
	details, err := u.providerRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list providers: %+v", err)
		return nil, err
	}
	return converter.ProviderDetailsToResponses(details), nil
}

func (u *providerUsecase) GetProvider(ctx context.Context, providerID uuid.UUID) (*dto.ProviderDetailResponse, error) {
	detail, err := u.providerRepo.FindByUserID(u.db.WithContext(ctx), providerID)
	if err != nil {
		u.log.Warnf("Failed to find provider: %+v", err)
		return nil, err
	}
	if detail == nil {
		return nil, ErrProviderNotFound
	}
	return converter.ProviderDetailToResponse(detail), nil
}

// ActivateProvider marks a provider's license as verified. Admin only;
// the role check lives in the middleware.
func (u *providerUsecase) ActivateProvider(ctx context.Context, providerID uuid.UUID) error {
	db := u.db.WithContext(ctx)

	detail, err := u.providerRepo.FindByUserID(db, providerID)
	if err != nil {
		u.log.Warnf("Failed to find provider: %+v", err)
		return err
	}
	if detail == nil {
		return ErrProviderNotFound
	}

	detail.IsActivated = true
	if err := u.providerRepo.Update(db, detail); err != nil {
		u.log.Warnf("Failed to activate provider: %+v", err)
		return err
	}
	return nil
}
