package transfer

import (
	"context"
	"database/sql"
	"time"

	"globalven/internal/scope"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

//go:generate mockgen -source=transfer_repo.go -destination=mock/transfer_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, tr *Transfer) error
	// FindAll and FindByID deliberately skip the active-only scope: the
	// unfiltered read paths return soft-deleted rows too.
	FindAll(ctx context.Context) ([]Transfer, error)
	FindByID(ctx context.Context, id int64) (*Transfer, error)
	FindByEmployee(ctx context.Context, employeeID int64) ([]Transfer, error)
	FindByType(ctx context.Context, transactionType string) ([]Transfer, error)
	FindByStatus(ctx context.Context, status string) ([]Transfer, error)
	FindByDateRange(ctx context.Context, start, end time.Time) ([]Transfer, error)
	FindByAmountRange(ctx context.Context, min, max decimal.Decimal) ([]Transfer, error)
	FindByCurrency(ctx context.Context, currency string) ([]Transfer, error)
	SearchKeyword(ctx context.Context, keyword string) ([]Transfer, error)
	SearchDescription(ctx context.Context, keyword string) ([]Transfer, error)
	SearchReference(ctx context.Context, keyword string) ([]Transfer, error)
	FindByGlRefCode(ctx context.Context, code string) ([]Transfer, error)
	SearchGlRefCode(ctx context.Context, keyword string) ([]Transfer, error)
	FindPending(ctx context.Context) ([]Transfer, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, tr *Transfer) error
	// Purge physically removes the row. The lifecycle's own delete is a soft
	// delete through Update; this is the separate hard-delete path.
	Purge(ctx context.Context, id int64) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx rebinds the gorm session to the caller's transaction so the
// transfer write and the outbox insert commit or roll back together.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	// The non-nil session context forces a statement clone; the rebind must
	// not touch the shared pool session.
	session := r.db.Session(&gorm.Session{NewDB: true, Context: context.Background()})
	session.Statement.ConnPool = tx
	return &repository{db: session}
}

func (r *repository) list(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Rate").
		Scopes(scope.ActiveOnly).
		Order("transaction_date DESC, id DESC")
}

func (r *repository) Create(ctx context.Context, tr *Transfer) error {
	return r.db.WithContext(ctx).Create(tr).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Transfer, error) {
	var trs []Transfer
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Rate").
		Order("transaction_date DESC, id DESC").
		Find(&trs).Error
	return trs, err
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Transfer, error) {
	var tr Transfer
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Rate").
		First(&tr, "id = ?", id).Error
	return &tr, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID int64) ([]Transfer, error) {
	var trs []Transfer
	err := r.list(ctx).
		Where("employee_id = ?", employeeID).
		Find(&trs).Error
	return trs, err
}

func (r *repository) FindByType(ctx context.Context, transactionType string) ([]Transfer, error) {
	var trs []Transfer
	err := r.list(ctx).
		Where("transaction_type = ?", transactionType).
		Find(&trs).Error
	return trs, err
}

func (r *repository) FindByStatus(ctx context.Context, status string) ([]Transfer, error) {
	var trs []Transfer
	err := r.list(ctx).
		Where("status = ?", status).
		Find(&trs).Error
	return trs, err
}

func (r *repository) FindByDateRange(ctx context.Context, start, end time.Time) ([]Transfer, error) {
	var trs []Transfer
	err := r.list(ctx).
		Where("transaction_date BETWEEN ? AND ?", start, end).
		Find(&trs).Error
	return trs, err
}

func (r *repository) FindByAmountRange(ctx context.Context, min, max decimal.Decimal) ([]Transfer, error) {
	var trs []Transfer
	err := r.list(ctx).
		Where("amount BETWEEN ? AND ?", min, max).
		Find(&trs).Error
	return trs, err
}

func (r *repository) FindByCurrency(ctx context.Context, currency string) ([]Transfer, error) {
	var trs []Transfer
	err := r.list(ctx).
		Where("currency = ?", currency).
		Find(&trs).Error
	return trs, err
}

func (r *repository) SearchKeyword(ctx context.Context, keyword string) ([]Transfer, error) {
	var trs []Transfer
	pattern := "%" + keyword + "%"
	err := r.list(ctx).
		Where("description ILIKE ? OR reference_no ILIKE ?", pattern, pattern).
		Find(&trs).Error
	return trs, err
}

func (r *repository) SearchDescription(ctx context.Context, keyword string) ([]Transfer, error) {
	var trs []Transfer
	err := r.list(ctx).
		Where("description ILIKE ?", "%"+keyword+"%").
		Find(&trs).Error
	return trs, err
}

func (r *repository) SearchReference(ctx context.Context, keyword string) ([]Transfer, error) {
	var trs []Transfer
	err := r.list(ctx).
		Where("reference_no ILIKE ?", "%"+keyword+"%").
		Find(&trs).Error
	return trs, err
}

func (r *repository) FindByGlRefCode(ctx context.Context, code string) ([]Transfer, error) {
	var trs []Transfer
	err := r.list(ctx).
		Where("gl_ref_code = ?", code).
		Find(&trs).Error
	return trs, err
}

func (r *repository) SearchGlRefCode(ctx context.Context, keyword string) ([]Transfer, error) {
	var trs []Transfer
	err := r.list(ctx).
		Where("gl_ref_code ILIKE ?", "%"+keyword+"%").
		Find(&trs).Error
	return trs, err
}

func (r *repository) FindPending(ctx context.Context) ([]Transfer, error) {
	var trs []Transfer
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Rate").
		Scopes(scope.ActiveOnly).
		Where("status = ?", StatusPending).
		Order("transaction_date ASC, id ASC").
		Find(&trs).Error
	return trs, err
}

func (r *repository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Transfer{}).
		Scopes(scope.ActiveOnly).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Transfer{}).
		Scopes(scope.ActiveOnly).
		Count(&count).Error
	return count, err
}

func (r *repository) Update(ctx context.Context, tr *Transfer) error {
	return r.db.WithContext(ctx).Omit("Employee", "Rate").Save(tr).Error
}

func (r *repository) Purge(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&Transfer{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
