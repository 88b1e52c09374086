package rate

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"globalven/internal/cache"
	rateerrors "globalven/internal/rate/errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=rate_service.go -destination=mock/rate_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateRateRequest) (Rate, error)
	GetAll(ctx context.Context) ([]Rate, error)
	GetEffective(ctx context.Context) ([]Rate, error)
	GetByCategory(ctx context.Context, category string) ([]Rate, error)
	GetByID(ctx context.Context, id int64) (Rate, error)
	Update(ctx context.Context, id int64, req UpdateRateRequest) (Rate, error)
	ToggleStatus(ctx context.Context, id int64) (Rate, error)
	Statistics(ctx context.Context) (RateStatistics, error)
}

// Resolve selects the rate a transfer should bind to. An explicit id must
// exist; without one the first rate in default store order wins. The fallback
// is deliberately not category-aware: it reproduces the legacy behavior and
// callers depend on its exact error messages.
func Resolve(ctx context.Context, repo Repository, rateID *int64) (*Rate, error) {
	if rateID != nil {
		rt, err := repo.FindByID(ctx, *rateID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, rateerrors.ErrRateNotFoundWithID(*rateID)
			}
			return nil, err
		}
		return rt, nil
	}

	rt, err := repo.FindFirst(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, rateerrors.ErrNoRatesAvailable
		}
		return nil, err
	}
	return rt, nil
}

type service struct {
	db       *sql.DB
	repo     Repository
	statsTTL cache.Cache
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, statsTTL cache.Cache, logger ...*zap.Logger) Service {
	l := zap.L().Named("rate.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rate.service")
	}
	return &service{db: db, repo: repo, statsTTL: statsTTL, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateRateRequest) (Rate, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Rate{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	rt := &Rate{
		EmpCategory: req.EmpCategory,
		RateName:    req.RateName,
		Currency:    req.Currency,
		RateType:    req.RateType,
		IsActive:    true,
	}
	if rt.Currency == "" {
		rt.Currency = "USD"
	}
	if rt.RateType == "" {
		rt.RateType = RateTypeMonthly
	}

	if err := applyRateFields(rt, req.Amount, req.EffectiveDate, req.ExpiryDate); err != nil {
		return Rate{}, err
	}

	if err := qtx.Create(ctx, rt); err != nil {
		s.logger.Error("create rate persist failed", zap.Error(err))
		return Rate{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return Rate{}, err
	}

	s.statsTTL.Invalidate(cache.KeyRateStatistics)
	s.logger.Info("create rate success",
		zap.Int64("rate_id", rt.ID),
		zap.String("emp_category", rt.EmpCategory),
	)

	return *rt, nil
}

func (s *service) GetAll(ctx context.Context) ([]Rate, error) {
	rates, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return rates, nil
}

func (s *service) GetEffective(ctx context.Context) ([]Rate, error) {
	rates, err := s.repo.FindEffective(ctx, time.Now())
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return rates, nil
}

func (s *service) GetByCategory(ctx context.Context, category string) ([]Rate, error) {
	rates, err := s.repo.FindByCategory(ctx, category)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return rates, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (Rate, error) {
	rt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Rate{}, rateerrors.ErrRateNotFoundWithID(id)
		}
		return Rate{}, err
	}
	return *rt, nil
}

func (s *service) Update(ctx context.Context, id int64, req UpdateRateRequest) (Rate, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Rate{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	rt, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Rate{}, rateerrors.ErrRateNotFoundWithID(id)
		}
		return Rate{}, err
	}

	rt.EmpCategory = req.EmpCategory
	rt.RateName = req.RateName
	if req.Currency != "" {
		rt.Currency = req.Currency
	}
	if req.RateType != "" {
		rt.RateType = req.RateType
	}

	if err := applyRateFields(rt, req.Amount, req.EffectiveDate, req.ExpiryDate); err != nil {
		return Rate{}, err
	}

	now := time.Now()
	rt.UpdatedDate = &now

	if err := qtx.Update(ctx, rt); err != nil {
		return Rate{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return Rate{}, err
	}

	s.statsTTL.Invalidate(cache.KeyRateStatistics)

	return *rt, nil
}

func (s *service) ToggleStatus(ctx context.Context, id int64) (Rate, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Rate{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	rt, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Rate{}, rateerrors.ErrRateNotFoundWithID(id)
		}
		return Rate{}, err
	}

	now := time.Now()
	rt.IsActive = !rt.IsActive
	rt.UpdatedDate = &now

	if err := qtx.Update(ctx, rt); err != nil {
		return Rate{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return Rate{}, err
	}

	s.statsTTL.Invalidate(cache.KeyRateStatistics)
	s.logger.Info("rate status toggled",
		zap.Int64("rate_id", rt.ID),
		zap.Bool("is_active", rt.IsActive),
	)

	return *rt, nil
}

func (s *service) Statistics(ctx context.Context) (RateStatistics, error) {
	if cached, ok := s.statsTTL.Get(cache.KeyRateStatistics); ok {
		if stats, ok := cached.(RateStatistics); ok {
			return stats, nil
		}
	}

	stats, err := s.repo.Statistics(ctx)
	if err != nil {
		return RateStatistics{}, mapRepositoryError(err)
	}

	s.statsTTL.Put(cache.KeyRateStatistics, stats, cache.DefaultTTL)
	return stats, nil
}

func applyRateFields(rt *Rate, amount, effectiveDate, expiryDate string) error {
	amt, err := decimal.NewFromString(amount)
	if err != nil {
		return rateerrors.ErrInvalidAmount
	}
	rt.Amount = amt

	if effectiveDate != "" {
		t, err := time.Parse("2006-01-02", effectiveDate)
		if err != nil {
			return rateerrors.ErrInvalidDate
		}
		rt.EffectiveDate = &t
	}

	if expiryDate != "" {
		t, err := time.Parse("2006-01-02", expiryDate)
		if err != nil {
			return rateerrors.ErrInvalidDate
		}
		rt.ExpiryDate = &t
	}

	return nil
}
