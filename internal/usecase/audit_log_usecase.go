package usecase

import (
	"context"

	"salon-booking/internal/converter"
	"salon-booking/internal/delivery/dto"
	"salon-booking/internal/delivery/http/middleware"
	"salon-booking/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	DefaultActivityLimit = 20
	MaxActivityLimit     = 100
)

type AuditLogUsecase interface {
	// GetMyActivity lists the newest audit entries of the signed-in user
	GetMyActivity(ctx context.Context, limit int) (*dto.AuditLogListResponse, error)
}

type auditLogUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	auditLogRepo repository.AuditLogRepository
}

func NewAuditLogUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	auditLogRepo repository.AuditLogRepository,
) AuditLogUsecase {
	return &auditLogUsecase{
		db:           db,
		log:          log,
		auditLogRepo: auditLogRepo,
	}
}

func (u *auditLogUsecase) GetMyActivity(ctx context.Context, limit int) (*dto.AuditLogListResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrAuthRequired
	}

	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	if limit > MaxActivityLimit {
		limit = MaxActivityLimit
	}

	logs, err := u.auditLogRepo.FindByUserID(ctx, u.db, userID, limit)
	if err != nil {
		u.log.Warnf("Failed to find audit logs of user %s: %+v", userID, err)
		return nil, err
	}

	return &dto.AuditLogListResponse{
		Logs:  converter.AuditLogsToResponses(logs),
		Total: len(logs),
	}, nil
}
