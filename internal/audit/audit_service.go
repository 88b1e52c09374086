package audit

import (
	"context"
	"errors"

	"globalven/internal/events"

	"go.uber.org/zap"
)

//go:generate mockgen -source=audit_service.go -destination=mock/audit_service_mock.go -package=mock
type Service interface {
	Record(ctx context.Context, event events.TransferLifecycleEvent) error
	GetByTransfer(ctx context.Context, transferID int64) ([]TransferAuditEntry, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("audit.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Record(ctx context.Context, event events.TransferLifecycleEvent) error {
	if event.TransferID == 0 {
		return errors.New("transfer id is required on lifecycle event")
	}

	entry := &TransferAuditEntry{
		TransferID: event.TransferID,
		EventType:  event.EventType,
		Status:     event.Status,
		Actor:      event.Actor,
		RequestID:  event.RequestID,
		OccurredAt: event.OccurredAt,
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		s.logger.Error("record transfer audit entry failed",
			zap.Int64("transfer_id", event.TransferID),
			zap.String("event_type", event.EventType),
			zap.Error(err),
		)
		return err
	}

	return nil
}

func (s *service) GetByTransfer(ctx context.Context, transferID int64) ([]TransferAuditEntry, error) {
	return s.repo.FindByTransfer(ctx, transferID)
}
