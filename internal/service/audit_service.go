package service

import (
	"context"

	"smarthealth/internal/domain/entity"
	"smarthealth/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AuditService interface {
	// Log records an action in the audit trail. Failures are logged and
	// swallowed so audit problems never fail the business operation.
	Log(ctx context.Context, userID *uuid.UUID, action string, metadata entity.JSON)
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

func (s *auditService) Log(ctx context.Context, userID *uuid.UUID, action string, metadata entity.JSON) {
	auditLog := &entity.AuditLog{
		UserID:   userID,
		Action:   action,
		Metadata: metadata,
	}
	if err := s.auditRepo.Create(s.db.WithContext(ctx), auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
	}
}
