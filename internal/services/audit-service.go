package services

import (
	"context"

	"go.uber.org/zap"

	"rtub-system/internal/entities"
	"rtub-system/internal/repositories"
	"rtub-system/pkg/types"
)

type AuditServiceInterface interface {
	Record(ctx context.Context, record entities.AuditRecord) error
	GetAll(ctx context.Context, filter types.Filter) ([]*entities.AuditRecord, uint64, error)
	LogEmail(ctx context.Context, record entities.EmailRecord) error
	GetEmails(ctx context.Context, filter types.Filter) ([]*entities.EmailRecord, uint64, error)
}

type AuditService struct {
	auditRepo repositories.AuditRepositoryInterface
	logger    *zap.Logger
}

func NewAuditService(auditRepo repositories.AuditRepositoryInterface, logger *zap.Logger) AuditServiceInterface {
	return &AuditService{auditRepo: auditRepo, logger: logger}
}

func (s *AuditService) Record(ctx context.Context, record entities.AuditRecord) error {
	if err := s.auditRepo.Create(ctx, record); err != nil {
		// Audit writes never fail the operation they describe.
		s.logger.Error("audit write failed",
			zap.String("action", record.Action),
			zap.String("entity", record.Entity),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (s *AuditService) GetAll(ctx context.Context, filter types.Filter) ([]*entities.AuditRecord, uint64, error) {
	return s.auditRepo.GetAll(ctx, filter)
}

func (s *AuditService) LogEmail(ctx context.Context, record entities.EmailRecord) error {
	return s.auditRepo.CreateEmail(ctx, record)
}

func (s *AuditService) GetEmails(ctx context.Context, filter types.Filter) ([]*entities.EmailRecord, uint64, error) {
	return s.auditRepo.GetEmails(ctx, filter)
}
