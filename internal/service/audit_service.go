package service

import (
	"context"

	"salon-booking/internal/domain/entity"
	"salon-booking/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AuditService interface {
	// Record writes an audit trail entry. tx may be nil to use the service's own connection.
	Record(ctx context.Context, tx *gorm.DB, userID, sessionID, action string, metadata entity.JSON) error
}

type auditService struct {
	db        *gorm.DB
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(db *gorm.DB, log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		db:        db,
		log:       log,
		auditRepo: auditRepo,
	}
}

func (s *auditService) Record(ctx context.Context, tx *gorm.DB, userID, sessionID, action string, metadata entity.JSON) error {
	if tx == nil {
		tx = s.db
	}

	auditLog := &entity.AuditLog{
		UserID:    userID,
		SessionID: sessionID,
		Action:    action,
		Metadata:  metadata,
	}

	if err := s.auditRepo.Create(ctx, tx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}
