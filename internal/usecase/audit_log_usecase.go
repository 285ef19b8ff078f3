package usecase

import (
	"context"
	"errors"

	"calmseek-backend/internal/converter"
	"calmseek-backend/internal/delivery/dto"
	"calmseek-backend/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrAuditLogNotFound = errors.New("audit log not found")

type AuditLogUsecase interface {
	List(ctx context.Context) ([]dto.AuditLogResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.AuditLogResponse, error)
}

type auditLogUsecase struct {
	db        *gorm.DB
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditLogUsecase(db *gorm.DB, log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditLogUsecase {
	return &auditLogUsecase{
		db:        db,
		log:       log,
		auditRepo: auditRepo,
	}
}

func (u *auditLogUsecase) List(ctx context.Context) ([]dto.AuditLogResponse, error) {
	logs, err := u.auditRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list audit logs: %+v", err)
		return nil, err
	}
	return converter.AuditLogsToResponses(logs), nil
}

func (u *auditLogUsecase) GetByID(ctx context.Context, id int64) (*dto.AuditLogResponse, error) {
	log, err := u.auditRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find audit log: %+v", err)
		return nil, err
	}
	if log == nil {
		return nil, ErrAuditLogNotFound
	}
	return converter.AuditLogToResponse(log), nil
}
