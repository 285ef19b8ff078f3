package usecase

import (
	"context"
	"errors"

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
	ErrProfileNotFound = errors.New("profile not found")
	ErrNotAProvider    = errors.New("account is not a provider")
	ErrSelfFavorite    = errors.New("cannot favorite yourself")
)

type AccountUsecase interface {
	UpdateClientProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateClientProfileRequest) (*dto.AccountResponse, error)
	UpdateProviderProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProviderProfileRequest) (*dto.AccountResponse, error)
	AddFavorite(ctx context.Context, userID, favoriteID uuid.UUID) error
	RemoveFavorite(ctx context.Context, userID, favoriteID uuid.UUID) error
	ListFavorites(ctx context.Context, userID uuid.UUID) ([]dto.AccountSummaryResponse, error)
}

type accountUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	accountRepo  repository.AccountRepository
	providerRepo repository.ProviderDetailRepository
	clientRepo   repository.ClientDetailRepository
	auditService service.AuditService
}

func NewAccountUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	accountRepo repository.AccountRepository,
	providerRepo repository.ProviderDetailRepository,
	clientRepo repository.ClientDetailRepository,
	auditService service.AuditService,
) AccountUsecase {
	return &accountUsecase{
		db:           db,
		log:          log,
		accountRepo:  accountRepo,
		providerRepo: providerRepo,
		clientRepo:   clientRepo,
		auditService: auditService,
	}
}

func (u *accountUsecase) UpdateClientProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateClientProfileRequest) (*dto.AccountResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	account, err := u.accountRepo.FindByID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find account: %+v", err)
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}

	detail, err := u.clientRepo.FindByUserID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find client detail: %+v", err)
		return nil, err
	}
	if detail == nil {
		return nil, ErrProfileNotFound
	}

	if req.FullName != "" {
		account.FullName = req.FullName
		if err := u.accountRepo.Update(tx, account); err != nil {
			u.log.Warnf("Failed to update account: %+v", err)
			return nil, err
		}
	}

	if req.PhoneNumber != "" {
		detail.PhoneNumber = req.PhoneNumber
	}
	if req.Bio != "" {
		detail.Bio = req.Bio
	}

	if err := u.clientRepo.Update(tx, detail); err != nil {
		u.log.Warnf("Failed to update client detail: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionProfileUpdate, "client_detail", userID.String(), nil, req); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	account.ClientDetail = detail
	return converter.AccountToResponse(account), nil
}

func (u *accountUsecase) UpdateProviderProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProviderProfileRequest) (*dto.AccountResponse, error) {
	if req.Specialization != "" && !entity.Specialization(req.Specialization).IsValid() {
		return nil, ErrInvalidSpecialization
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	account, err := u.accountRepo.FindByID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find account: %+v", err)
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}

	detail, err := u.providerRepo.FindByUserID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find provider detail: %+v", err)
		return nil, err
	}
	if detail == nil {
		return nil, ErrProfileNotFound
	}

	if req.FullName != "" {
		account.FullName = req.FullName
		if err := u.accountRepo.Update(tx, account); err != nil {
			u.log.Warnf("Failed to update account: %+v", err)
			return nil, err
		}
	}

	if req.Bio != "" {
		detail.Bio = req.Bio
	}
	if req.PhoneNumber != "" {
		detail.PhoneNumber = req.PhoneNumber
	}
	if req.Specialization != "" {
		detail.Specialization = entity.Specialization(req.Specialization)
	}
	if req.AddressLine1 != "" {
		detail.AddressLine1 = req.AddressLine1
	}
	if req.AddressLine2 != "" {
		detail.AddressLine2 = req.AddressLine2
	}
	if req.City != "" {
		detail.City = req.City
	}
	if req.State != "" {
		detail.State = req.State
	}
	if req.PostalCode != "" {
		detail.PostalCode = req.PostalCode
	}
	if req.PictureURL != "" {
		detail.PictureURL = req.PictureURL
	}
	if req.SessionFee != nil {
		detail.SessionFee = *req.SessionFee
	}

	if err := u.providerRepo.Update(tx, detail); err != nil {
		u.log.Warnf("Failed to update provider detail: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionProfileUpdate, "provider_detail", userID.String(), nil, req); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	account.ProviderDetail = detail
	return converter.AccountToResponse(account), nil
}

func (u *accountUsecase) AddFavorite(ctx context.Context, userID, favoriteID uuid.UUID) error {
	if userID == favoriteID {
		return ErrSelfFavorite
	}

	db := u.db.WithContext(ctx)

	account, err := u.accountRepo.FindByID(db, userID)
	if err != nil {
		return err
	}
	if account == nil {
		return ErrAccountNotFound
	}

	favorite, err := u.accountRepo.FindByID(db, favoriteID)
	if err != nil {
		return err
	}
	if favorite == nil {
		return ErrAccountNotFound
	}
	if !favorite.IsProvider() {
		return ErrNotAProvider
	}

	if err := u.accountRepo.AddFavorite(db, account, favorite); err != nil {
		u.log.Warnf("Failed to add favorite: %+v", err)
		return err
	}
	return nil
}

func (u *accountUsecase) RemoveFavorite(ctx context.Context, userID, favoriteID uuid.UUID) error {
	db := u.db.WithContext(ctx)

	account, err := u.accountRepo.FindByID(db, userID)
	if err != nil {
		return err
	}
	if account == nil {
		return ErrAccountNotFound
	}

	favorite, err := u.accountRepo.FindByID(db, favoriteID)
	if err != nil {
		return err
	}
	if favorite == nil {
		return ErrAccountNotFound
	}

	if err := u.accountRepo.RemoveFavorite(db, account, favorite); err != nil {
		u.log.Warnf("Failed to remove favorite: %+v", err)
		return err
	}
	return nil
}

func (u *accountUsecase) ListFavorites(ctx context.Context, userID uuid.UUID) ([]dto.AccountSummaryResponse, error) {
	favorites, err := u.accountRepo.FindFavorites(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to list favorites: %+v", err)
		return nil, err
	}
	return converter.AccountsToSummaries(favorites), nil
}
