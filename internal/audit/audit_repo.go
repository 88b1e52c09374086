package audit

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=audit_repo.go -destination=mock/audit_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, entry *TransferAuditEntry) error
	FindByTransfer(ctx context.Context, transferID int64) ([]TransferAuditEntry, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, entry *TransferAuditEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) FindByTransfer(ctx context.Context, transferID int64) ([]TransferAuditEntry, error) {
	var entries []TransferAuditEntry
	err := r.db.WithContext(ctx).
		Where("transfer_id = ?", transferID).
		Order("occurred_at ASC").
		Find(&entries).Error
	return entries, err
}
