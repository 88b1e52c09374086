package rate_test

import (
	"context"
	"database/sql"
	"testing"

	"globalven/internal/cache"
	"globalven/internal/rate"
	rateerrors "globalven/internal/rate/errors"

	rateMock "globalven/internal/rate/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service rate.Service
	repo    *rateMock.MockRepository
	stats   cache.Cache
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, _ := sqlmock.New()
	repo := rateMock.NewMockRepository(ctrl)
	statsCache := cache.NewTTLCache()

	svc := rate.NewService(db, repo, statsCache)

	return &serviceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: svc,
		repo:    repo,
		stats:   statsCache,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestRateResolve(t *testing.T) {
	ctx := context.Background()

	t.Run("explicit id found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := rateMock.NewMockRepository(ctrl)

		id := int64(9)
		repo.EXPECT().
			FindByID(ctx, id).
			Return(&rate.Rate{ID: 9, RateName: "Senior Monthly"}, nil)

		rt, err := rate.Resolve(ctx, repo, &id)

		assert.NoError(t, err)
		assert.Equal(t, int64(9), rt.ID)
	})

	t.Run("explicit id missing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := rateMock.NewMockRepository(ctrl)

		id := int64(404)
		repo.EXPECT().
			FindByID(ctx, id).
			Return(nil, gorm.ErrRecordNotFound)

		_, err := rate.Resolve(ctx, repo, &id)

		assert.EqualError(t, err, "Rate with ID 404 not found")
	})

	t.Run("fallback picks first rate in store order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := rateMock.NewMockRepository(ctrl)

		repo.EXPECT().
			FindFirst(ctx).
			Return(&rate.Rate{ID: 1, RateName: "Default"}, nil)

		rt, err := rate.Resolve(ctx, repo, nil)

		assert.NoError(t, err)
		assert.Equal(t, int64(1), rt.ID)
	})

	t.Run("fallback with empty store", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := rateMock.NewMockRepository(ctrl)

		repo.EXPECT().
			FindFirst(ctx).
			Return(nil, gorm.ErrRecordNotFound)

		_, err := rate.Resolve(ctx, repo, nil)

		assert.ErrorIs(t, err, rateerrors.ErrNoRatesAvailable)
	})
}

func TestRateService_Create(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()

	t.Run("success applies defaults", func(t *testing.T) {
		req := rate.CreateRateRequest{
			EmpCategory: "SENIOR",
			RateName:    "Senior Monthly",
			Amount:      "250000.00",
		}

		expectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().
			WithTx(gomock.Any()).
			Return(deps.repo)

		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, rt *rate.Rate) error {
				assert.Equal(t, "USD", rt.Currency)
				assert.Equal(t, rate.RateTypeMonthly, rt.RateType)
				assert.True(t, rt.IsActive)
				assert.True(t, rt.Amount.Equal(decimal.RequireFromString("250000.00")))
				rt.ID = 3
				return nil
			})

		resp, err := deps.service.Create(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, int64(3), resp.ID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("invalid amount", func(t *testing.T) {
		req := rate.CreateRateRequest{
			EmpCategory: "SENIOR",
			RateName:    "Senior Monthly",
			Amount:      "abc",
		}

		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().
			WithTx(gomock.Any()).
			Return(deps.repo)

		_, err := deps.service.Create(ctx, req)

		assert.ErrorIs(t, err, rateerrors.ErrInvalidAmount)
	})
}

func TestRateService_ToggleStatus(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()

	t.Run("flips active flag", func(t *testing.T) {
		expectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().
			WithTx(gomock.Any()).
			Return(deps.repo)

		deps.repo.EXPECT().
			FindByID(ctx, int64(3)).
			Return(&rate.Rate{ID: 3, IsActive: true}, nil)

		deps.repo.EXPECT().
			Update(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, rt *rate.Rate) error {
				assert.False(t, rt.IsActive)
				assert.NotNil(t, rt.UpdatedDate)
				return nil
			})

		resp, err := deps.service.ToggleStatus(ctx, 3)

		assert.NoError(t, err)
		assert.False(t, resp.IsActive)
	})

	t.Run("unknown id", func(t *testing.T) {
		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().
			WithTx(gomock.Any()).
			Return(deps.repo)

		deps.repo.EXPECT().
			FindByID(ctx, int64(99)).
			Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.ToggleStatus(ctx, 99)

		assert.EqualError(t, err, "Rate with ID 99 not found")
	})
}

func TestRateService_Statistics(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()

	t.Run("caches repository result", func(t *testing.T) {
		stats := rate.RateStatistics{
			TotalRates:  4,
			ActiveRates: 3,
			MinAmount:   "1000.0000",
			MaxAmount:   "250000.0000",
			AvgAmount:   "85250.0000",
		}

		// Only one repository hit for two calls.
		deps.repo.EXPECT().
			Statistics(ctx).
			Return(stats, nil).
			Times(1)

		first, err := deps.service.Statistics(ctx)
		assert.NoError(t, err)
		assert.Equal(t, stats, first)

		second, err := deps.service.Statistics(ctx)
		assert.NoError(t, err)
		assert.Equal(t, stats, second)
	})
}
