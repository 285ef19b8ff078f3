package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"calmseek-backend/internal/converter"
	"calmseek-backend/internal/delivery/dto"
	"calmseek-backend/internal/domain/entity"
	"calmseek-backend/internal/domain/repository"
	"calmseek-backend/internal/service"
	"calmseek-backend/pkg/jwt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsernameAlreadyExists = errors.New("username already exists")
	ErrEmailAlreadyExists    = errors.New("email already exists")
	ErrLicenseAlreadyExists  = errors.New("license number already exists")
	ErrInvalidCredentials    = errors.New("invalid username or password")
	ErrInvalidToken          = errors.New("invalid or expired token")
	ErrTokenRevoked          = errors.New("token has been revoked")
	ErrAccountNotFound       = errors.New("account not found")
	ErrInvalidSpecialization = errors.New("unknown specialization")
	ErrInvalidResetToken     = errors.New("invalid or expired password reset token")
	ErrRoleNotConfigured     = errors.New("role is not configured")
)

const (
	passwordResetKeyPrefix = "password_reset:"
	passwordResetTTL       = time.Hour
)

type AuthUsecase interface {
	RegisterClient(ctx context.Context, req *dto.RegisterClientRequest) (*dto.AccountResponse, error)
	RegisterProvider(ctx context.Context, req *dto.RegisterProviderRequest) (*dto.AccountResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, accessTokenID, refreshTokenID string) error
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.AccountResponse, error)
	RequestPasswordReset(ctx context.Context, req *dto.PasswordResetRequest) error
	ResetPassword(ctx context.Context, req *dto.PasswordResetConfirmRequest) error
}

type authUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	accountRepo  repository.AccountRepository
	roleRepo     repository.RoleRepository
	providerRepo repository.ProviderDetailRepository
	clientRepo   repository.ClientDetailRepository
	jwtService   *jwt.JWTService
	redisClient  *redis.Client
	mailer       service.Mailer
	auditService service.AuditService
	baseURL      string
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	accountRepo repository.AccountRepository,
	roleRepo repository.RoleRepository,
	providerRepo repository.ProviderDetailRepository,
	clientRepo repository.ClientDetailRepository,
	jwtService *jwt.JWTService,
	redisClient *redis.Client,
	mailer service.Mailer,
	auditService service.AuditService,
	baseURL string,
) AuthUsecase {
	return &authUsecase{
		db:           db,
		log:          log,
		accountRepo:  accountRepo,
		roleRepo:     roleRepo,
		providerRepo: providerRepo,
		clientRepo:   clientRepo,
		jwtService:   jwtService,
		redisClient:  redisClient,
		mailer:       mailer,
		auditService: auditService,
		baseURL:      baseURL,
	}
}

func (u *authUsecase) RegisterClient(ctx context.Context, req *dto.RegisterClientRequest) (*dto.AccountResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	role, err := u.roleRepo.FindByID(tx, entity.RoleIDClient)
	if err != nil {
		u.log.Warnf("Failed to find role: %+v", err)
		return nil, err
	}
	if role == nil {
		return nil, ErrRoleNotConfigured
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	account := &entity.Account{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
		FullName: req.FullName,
		RoleID:   entity.RoleIDClient,
		IsActive: true,
	}

	if err := u.accountRepo.Create(tx, account); err != nil {
		if isDuplicateKeyError(err, "username") {
			return nil, ErrUsernameAlreadyExists
		}
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create account: %+v", err)
		return nil, err
	}

	clientDetail := &entity.ClientDetail{
		UserID:      account.ID,
		PhoneNumber: req.PhoneNumber,
		Bio:         req.Bio,
	}

	if err := u.clientRepo.Create(tx, clientDetail); err != nil {
		u.log.Warnf("Failed to create client detail: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &account.ID, entity.AuditActionUserRegister, "account", account.ID.String(), nil); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	account.ClientDetail = clientDetail
	return converter.AccountToResponse(account), nil
}

func (u *authUsecase) RegisterProvider(ctx context.Context, req *dto.RegisterProviderRequest) (*dto.AccountResponse, error) {
	if !entity.Specialization(req.Specialization).IsValid() {
		return nil, ErrInvalidSpecialization
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	role, err := u.roleRepo.FindByID(tx, entity.RoleIDProvider)
	if err != nil {
		u.log.Warnf("Failed to find role: %+v", err)
		return nil, err
	}
	if role == nil {
		return nil, ErrRoleNotConfigured
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	account := &entity.Account{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
		FullName: req.FullName,
		RoleID:   entity.RoleIDProvider,
		IsActive: true,
	}

	if err := u.accountRepo.Create(tx, account); err != nil {
		if isDuplicateKeyError(err, "username") {
			return nil, ErrUsernameAlreadyExists
		}
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create account: %+v", err)
		return nil, err
	}

	providerDetail := &entity.ProviderDetail{
		UserID:         account.ID,
		Bio:            req.Bio,
		PhoneNumber:    req.PhoneNumber,
		LicenseNumber:  req.LicenseNumber,
		Specialization: entity.Specialization(req.Specialization),
		AddressLine1:   req.AddressLine1,
		AddressLine2:   req.AddressLine2,
		City:           req.City,
		State:          req.State,
		PostalCode:     req.PostalCode,
		SessionFee:     req.SessionFee,
	}

	if err := u.providerRepo.Create(tx, providerDetail); err != nil {
		if isDuplicateKeyError(err, "license_number") {
			return nil, ErrLicenseAlreadyExists
		}
		u.log.Warnf("Failed to create provider detail: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &account.ID, entity.AuditActionUserRegister, "account", account.ID.String(), nil); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	account.ProviderDetail = providerDetail
	return converter.AccountToResponse(account), nil
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	account, err := u.accountRepo.FindByUsername(u.db.WithContext(ctx), req.Username)
	if err != nil {
		u.log.Warnf("Failed to find account by username: %+v", err)
		return nil, err
	}
	if account == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(account.ID, account.Username, account.RoleID)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(account.ID, account.Username, account.RoleID)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	accessKey := fmt.Sprintf("access_token:%s:%s", account.ID.String(), accessTokenID)
	refreshKey := fmt.Sprintf("refresh_token:%s:%s", account.ID.String(), refreshTokenID)

	if err := u.redisClient.Set(ctx, accessKey, "valid", u.jwtService.GetAccessExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store access token in Redis: %+v", err)
		return nil, err
	}

	if err := u.redisClient.Set(ctx, refreshKey, "valid", u.jwtService.GetRefreshExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store refresh token in Redis: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}

func (u *authUsecase) Logout(ctx context.Context, accessTokenID, refreshTokenID string) error {
	for _, pattern := range []string{
		fmt.Sprintf("access_token:*:%s", accessTokenID),
		fmt.Sprintf("refresh_token:*:%s", refreshTokenID),
	} {
		keys, err := u.redisClient.Keys(ctx, pattern).Result()
		if err != nil {
			u.log.Warnf("Failed to get token keys: %+v", err)
			return err
		}
		if len(keys) > 0 {
			if err := u.redisClient.Del(ctx, keys...).Err(); err != nil {
				u.log.Warnf("Failed to delete tokens: %+v", err)
				return err
			}
		}
	}
	return nil
}

func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidToken
	}

	refreshKey := fmt.Sprintf("refresh_token:%s:%s", claims.UserID.String(), claims.TokenID)
	exists, err := u.redisClient.Exists(ctx, refreshKey).Result()
	if err != nil {
		u.log.Warnf("Failed to check refresh token in Redis: %+v", err)
		return nil, err
	}
	if exists == 0 {
		return nil, ErrTokenRevoked
	}

	// Rotate: old refresh token is single use
	if err := u.redisClient.Del(ctx, refreshKey).Err(); err != nil {
		u.log.Warnf("Failed to delete old refresh token: %+v", err)
		return nil, err
	}

	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(claims.UserID, claims.Username, claims.RoleID)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(claims.UserID, claims.Username, claims.RoleID)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	accessKeyNew := fmt.Sprintf("access_token:%s:%s", claims.UserID.String(), accessTokenID)
	refreshKeyNew := fmt.Sprintf("refresh_token:%s:%s", claims.UserID.String(), refreshTokenID)

	if err := u.redisClient.Set(ctx, accessKeyNew, "valid", u.jwtService.GetAccessExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store access token in Redis: %+v", err)
		return nil, err
	}

	if err := u.redisClient.Set(ctx, refreshKeyNew, "valid", u.jwtService.GetRefreshExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store refresh token in Redis: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.AccountResponse, error) {
	account, err := u.accountRepo.FindByID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find account by ID: %+v", err)
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}

	switch account.RoleID {
	case entity.RoleIDProvider:
		detail, err := u.providerRepo.FindByUserID(u.db.WithContext(ctx), userID)
		if err == nil {
			account.ProviderDetail = detail
		}
	case entity.RoleIDClient:
		detail, err := u.clientRepo.FindByUserID(u.db.WithContext(ctx), userID)
		if err == nil {
			account.ClientDetail = detail
		}
	}

	return converter.AccountToResponse(account), nil
}

// RequestPasswordReset issues a one-hour single-use token and mails the
// reset link. A missing account is reported to the caller so the web
// layer can re-render the form, matching the original flow.
func (u *authUsecase) RequestPasswordReset(ctx context.Context, req *dto.PasswordResetRequest) error {
	account, err := u.accountRepo.FindByUsernameAndEmail(u.db.WithContext(ctx), req.Username, req.Email)
	if err != nil {
		u.log.Warnf("Failed to find account for password reset: %+v", err)
		return err
	}
	if account == nil {
		return ErrAccountNotFound
	}

	token := uuid.New().String()
	key := passwordResetKeyPrefix + token
	if err := u.redisClient.Set(ctx, key, account.ID.String(), passwordResetTTL).Err(); err != nil {
		u.log.Warnf("Failed to store password reset token: %+v", err)
		return err
	}

	resetURL := fmt.Sprintf("%s/password-reset/confirm?token=%s", u.baseURL, token)
	body := fmt.Sprintf("<p>Click the link to reset your password: <a href=%q>%s</a></p>", resetURL, resetURL)
	if err := u.mailer.Send(account.Email, "Password Reset Request", body); err != nil {
		return err
	}

	return nil
}

func (u *authUsecase) ResetPassword(ctx context.Context, req *dto.PasswordResetConfirmRequest) error {
	key := passwordResetKeyPrefix + req.Token
	userIDStr, err := u.redisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		return ErrInvalidResetToken
	}
	if err != nil {
		u.log.Warnf("Failed to read password reset token: %+v", err)
		return err
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return ErrInvalidResetToken
	}

	account, err := u.accountRepo.FindByID(u.db.WithContext(ctx), userID)
	if err != nil {
		return err
	}
	if account == nil {
		return ErrAccountNotFound
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return err
	}

	account.Password = string(hashedPassword)
	if err := u.accountRepo.Update(u.db.WithContext(ctx), account); err != nil {
		u.log.Warnf("Failed to update password: %+v", err)
		return err
	}

	if err := u.redisClient.Del(ctx, key).Err(); err != nil {
		u.log.Warnf("Failed to delete password reset token: %+v", err)
	}

	// Force re-login everywhere after a password change
	return u.revokeAllUserTokens(ctx, userID)
}

func (u *authUsecase) revokeAllUserTokens(ctx context.Context, userID uuid.UUID) error {
	for _, pattern := range []string{
		fmt.Sprintf("access_token:%s:*", userID.String()),
		fmt.Sprintf("refresh_token:%s:*", userID.String()),
	} {
		keys, err := u.redisClient.Keys(ctx, pattern).Result()
		if err != nil {
			u.log.Warnf("Failed to get token keys: %+v", err)
			return err
		}
		if len(keys) > 0 {
			if err := u.redisClient.Del(ctx, keys...).Err(); err != nil {
				u.log.Warnf("Failed to delete tokens: %+v", err)
				return err
			}
		}
	}
	return nil
}

// isDuplicateKeyError checks if the error is a PostgreSQL unique constraint violation
// containing the specified constraint name
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}
