package rate

import (
	"context"
	"database/sql"
	"time"

	"globalven/internal/scope"

	"gorm.io/gorm"
)

//go:generate mockgen -source=rate_repo.go -destination=mock/rate_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, rt *Rate) error
	FindAll(ctx context.Context) ([]Rate, error)
	// FindFirst returns the first rate in default store order. Used as the
	// fallback when a transfer carries no explicit rate id.
	FindFirst(ctx context.Context) (*Rate, error)
	FindByID(ctx context.Context, id int64) (*Rate, error)
	FindEffective(ctx context.Context, now time.Time) ([]Rate, error)
	FindByCategory(ctx context.Context, category string) ([]Rate, error)
	Update(ctx context.Context, rt *Rate) error
	Statistics(ctx context.Context) (RateStatistics, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx rebinds the gorm session to the caller's transaction.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	session := r.db.Session(&gorm.Session{NewDB: true, Context: context.Background()})
	session.Statement.ConnPool = tx
	return &repository{db: session}
}

func (r *repository) Create(ctx context.Context, rt *Rate) error {
	return r.db.WithContext(ctx).Create(rt).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Rate, error) {
	var rates []Rate
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&rates).Error
	return rates, err
}

func (r *repository) FindFirst(ctx context.Context) (*Rate, error) {
	var rt Rate
	err := r.db.WithContext(ctx).
		Order("id ASC").
		First(&rt).Error
	return &rt, err
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Rate, error) {
	var rt Rate
	err := r.db.WithContext(ctx).
		First(&rt, "id = ?", id).Error
	return &rt, err
}

func (r *repository) FindEffective(ctx context.Context, now time.Time) ([]Rate, error) {
	var rates []Rate
	err := r.db.WithContext(ctx).
		Scopes(scope.ActiveOnly, scope.Effective(now)).
		Order("id ASC").
		Find(&rates).Error
	return rates, err
}

func (r *repository) FindByCategory(ctx context.Context, category string) ([]Rate, error) {
	var rates []Rate
	err := r.db.WithContext(ctx).
		Scopes(scope.ActiveOnly).
		Where("emp_category = ?", category).
		Order("id ASC").
		Find(&rates).Error
	return rates, err
}

func (r *repository) Update(ctx context.Context, rt *Rate) error {
	return r.db.WithContext(ctx).Save(rt).Error
}

func (r *repository) Statistics(ctx context.Context) (RateStatistics, error) {
	var row struct {
		TotalRates  int64
		ActiveRates int64
		MinAmount   sql.NullString
		MaxAmount   sql.NullString
		AvgAmount   sql.NullString
	}

	err := r.db.WithContext(ctx).
		Model(&Rate{}).
		Select(
			"COUNT(*) AS total_rates",
			"COUNT(*) FILTER (WHERE is_active) AS active_rates",
			"MIN(amount) AS min_amount",
			"MAX(amount) AS max_amount",
			"ROUND(AVG(amount), 4) AS avg_amount",
		).
		Scan(&row).Error
	if err != nil {
		return RateStatistics{}, err
	}

	stats := RateStatistics{
		TotalRates:  row.TotalRates,
		ActiveRates: row.ActiveRates,
		MinAmount:   row.MinAmount.String,
		MaxAmount:   row.MaxAmount.String,
		AvgAmount:   row.AvgAmount.String,
	}
	return stats, nil
}
