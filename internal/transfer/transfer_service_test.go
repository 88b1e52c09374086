package transfer_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"globalven/internal/cache"
	"globalven/internal/employee"
	"globalven/internal/events"
	"globalven/internal/messaging/kafka"
	"globalven/internal/rate"
	"globalven/internal/transfer"
	transfererrors "globalven/internal/transfer/errors"

	employeeMock "globalven/internal/employee/mock"
	kafkaMock "globalven/internal/messaging/kafka/mock"
	rateMock "globalven/internal/rate/mock"
	transferMock "globalven/internal/transfer/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db           *sql.DB
	sqlMock      sqlmock.Sqlmock
	service      transfer.Service
	repo         *transferMock.MockRepository
	employeeRepo *employeeMock.MockRepository
	rateRepo     *rateMock.MockRepository
	outbox       *kafkaMock.MockOutboxRepository
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, _ := sqlmock.New()
	repo := transferMock.NewMockRepository(ctrl)
	employeeRepo := employeeMock.NewMockRepository(ctrl)
	rateRepo := rateMock.NewMockRepository(ctrl)
	outboxRepo := kafkaMock.NewMockOutboxRepository(ctrl)

	svc := transfer.NewService(db, repo, employeeRepo, rateRepo, outboxRepo, cache.NewTTLCache())

	return &serviceDeps{
		db:           db,
		sqlMock:      sqlMock,
		service:      svc,
		repo:         repo,
		employeeRepo: employeeRepo,
		rateRepo:     rateRepo,
		outbox:       outboxRepo,
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

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestTransferService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success with fallback rate and defaults", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		amount := dec("1500.00")
		req := transfer.CreateTransferRequest{
			EmployeeID: 5,
			Amount:     &amount,
			Currency:   "EUR",
		}

		expectTx(t, deps.sqlMock, true)

		deps.employeeRepo.EXPECT().WithTx(gomock.Any()).Return(deps.employeeRepo)
		deps.employeeRepo.EXPECT().
			FindByID(ctx, int64(5)).
			Return(&employee.Employee{ID: 5, FirstName: "Nimal"}, nil)

		deps.rateRepo.EXPECT().WithTx(gomock.Any()).Return(deps.rateRepo)
		deps.rateRepo.EXPECT().
			FindFirst(ctx).
			Return(&rate.Rate{ID: 9, RateName: "Default"}, nil)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, tr *transfer.Transfer) error {
				assert.Equal(t, int64(5), tr.EmployeeID)
				assert.Equal(t, int64(9), tr.RateID)
				assert.Equal(t, transfer.StatusPending, tr.Status)
				assert.Equal(t, transfer.TypeOther, tr.TransactionType)
				assert.Equal(t, "EUR", tr.Currency)
				assert.True(t, tr.IsActive)
				assert.Nil(t, tr.AmountInBaseCurrency)
				assert.NotEmpty(t, tr.ReferenceNo)
				assert.False(t, tr.TransactionDate.IsZero())
				tr.ID = 77
				return nil
			})

		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, event kafka.OutboxEvent) error {
				assert.Equal(t, events.TransferCreated, event.EventType)
				assert.Equal(t, events.TransferLifecycleTopic, event.Topic)
				assert.Equal(t, "77", event.AggregateID)

				var payload events.TransferLifecycleEvent
				assert.NoError(t, json.Unmarshal(event.Payload, &payload))
				assert.Equal(t, int64(77), payload.TransferID)
				assert.Equal(t, transfer.StatusPending, payload.Status)
				return nil
			})

		resp, err := deps.service.Create(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, int64(77), resp.ID)
		assert.Equal(t, int64(9), resp.RateID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("computes base amount when exchange rate present", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		amount := dec("1000.00")
		fx := dec("1.25")
		rateID := int64(9)
		req := transfer.CreateTransferRequest{
			EmployeeID:   5,
			RateID:       &rateID,
			Amount:       &amount,
			ExchangeRate: &fx,
		}

		expectTx(t, deps.sqlMock, true)

		deps.employeeRepo.EXPECT().WithTx(gomock.Any()).Return(deps.employeeRepo)
		deps.employeeRepo.EXPECT().
			FindByID(ctx, int64(5)).
			Return(&employee.Employee{ID: 5}, nil)

		deps.rateRepo.EXPECT().WithTx(gomock.Any()).Return(deps.rateRepo)
		deps.rateRepo.EXPECT().
			FindByID(ctx, rateID).
			Return(&rate.Rate{ID: 9}, nil)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, tr *transfer.Transfer) error {
				if assert.NotNil(t, tr.AmountInBaseCurrency) {
					assert.True(t, tr.AmountInBaseCurrency.Equal(dec("1250.00")))
				}
				assert.Equal(t, "USD", tr.Currency)
				return nil
			})

		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(ctx, gomock.Any()).Return(nil)

		_, err := deps.service.Create(ctx, req)

		assert.NoError(t, err)
	})

	t.Run("unknown employee aborts before any write", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		amount := dec("100")
		req := transfer.CreateTransferRequest{EmployeeID: 99, Amount: &amount}

		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.employeeRepo.EXPECT().WithTx(gomock.Any()).Return(deps.employeeRepo)
		deps.employeeRepo.EXPECT().
			FindByID(ctx, int64(99)).
			Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Create(ctx, req)

		assert.EqualError(t, err, "Employee not found with ID: 99")
	})

	t.Run("unknown explicit rate", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		amount := dec("100")
		rateID := int64(404)
		req := transfer.CreateTransferRequest{EmployeeID: 5, RateID: &rateID, Amount: &amount}

		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.employeeRepo.EXPECT().WithTx(gomock.Any()).Return(deps.employeeRepo)
		deps.employeeRepo.EXPECT().
			FindByID(ctx, int64(5)).
			Return(&employee.Employee{ID: 5}, nil)

		deps.rateRepo.EXPECT().WithTx(gomock.Any()).Return(deps.rateRepo)
		deps.rateRepo.EXPECT().
			FindByID(ctx, rateID).
			Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Create(ctx, req)

		assert.EqualError(t, err, "Rate not found with ID: 404")
	})

	t.Run("empty rate store", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		amount := dec("100")
		req := transfer.CreateTransferRequest{EmployeeID: 5, Amount: &amount}

		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.employeeRepo.EXPECT().WithTx(gomock.Any()).Return(deps.employeeRepo)
		deps.employeeRepo.EXPECT().
			FindByID(ctx, int64(5)).
			Return(&employee.Employee{ID: 5}, nil)

		deps.rateRepo.EXPECT().WithTx(gomock.Any()).Return(deps.rateRepo)
		deps.rateRepo.EXPECT().
			FindFirst(ctx).
			Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Create(ctx, req)

		assert.EqualError(t, err, "No rates available in the system")
	})
}

func TestTransferService_Transitions(t *testing.T) {
	ctx := context.Background()

	t.Run("approve stamps approver pair", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		tr := &transfer.Transfer{ID: 7, Status: transfer.StatusPending, Amount: dec("100"), Currency: "USD"}

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, int64(7)).Return(tr, nil)
		deps.repo.EXPECT().Update(ctx, tr).Return(nil)

		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, event kafka.OutboxEvent) error {
				assert.Equal(t, events.TransferApproved, event.EventType)
				return nil
			})

		resp, err := deps.service.Approve(ctx, 7, "alice")

		assert.NoError(t, err)
		assert.Equal(t, transfer.StatusApproved, resp.Status)
		if assert.NotNil(t, resp.ApprovedBy) {
			assert.Equal(t, "alice", *resp.ApprovedBy)
		}
		assert.NotNil(t, resp.ApprovedDate)
		if assert.NotNil(t, resp.UpdatedBy) {
			assert.Equal(t, "alice", *resp.UpdatedBy)
		}
	})

	t.Run("reject after approve keeps sibling fields", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		alice := "alice"
		approvedAt := time.Now().Add(-time.Hour)
		tr := &transfer.Transfer{
			ID:           7,
			Status:       transfer.StatusApproved,
			Amount:       dec("100"),
			Currency:     "USD",
			ApprovedBy:   &alice,
			ApprovedDate: &approvedAt,
		}

		expectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, int64(7)).Return(tr, nil)
		deps.repo.EXPECT().Update(ctx, tr).Return(nil)

		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(ctx, gomock.Any()).Return(nil)

		resp, err := deps.service.Reject(ctx, 7, "bob")

		assert.NoError(t, err)
		assert.Equal(t, transfer.StatusRejected, resp.Status)
		// The prior approval pair is not rolled back.
		if assert.NotNil(t, resp.ApprovedBy) {
			assert.Equal(t, "alice", *resp.ApprovedBy)
		}
		if assert.NotNil(t, resp.UpdatedBy) {
			assert.Equal(t, "bob", *resp.UpdatedBy)
		}
	})

	t.Run("process unknown id", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, int64(99)).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Process(ctx, 99, "carol")

		assert.EqualError(t, err, "Transfer with ID 99 not found")
	})
}

func TestTransferService_Queries(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid status rejected before repository", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.GetByStatus(ctx, "SHIPPED")

		assert.ErrorIs(t, err, transfererrors.ErrInvalidStatus)
	})

	t.Run("unknown employee on employee read is not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.employeeRepo.EXPECT().
			FindByID(ctx, int64(999)).
			Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.GetByEmployee(ctx, 999)

		assert.EqualError(t, err, "Employee not found")
	})

	t.Run("known employee with no transfers returns empty set", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.employeeRepo.EXPECT().
			FindByID(ctx, int64(5)).
			Return(&employee.Employee{ID: 5}, nil)
		deps.repo.EXPECT().FindByEmployee(ctx, int64(5)).Return(nil, nil)

		trs, err := deps.service.GetByEmployee(ctx, 5)

		assert.NoError(t, err)
		assert.Empty(t, trs)
	})

	t.Run("date range expands to inclusive day bounds", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().
			FindByDateRange(ctx, gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, start, end time.Time) ([]transfer.Transfer, error) {
				assert.Equal(t, "2026-08-01 00:00:00", start.Format("2006-01-02 15:04:05"))
				assert.Equal(t, "2026-08-31 23:59:59", end.Format("2006-01-02 15:04:05"))
				return []transfer.Transfer{{ID: 1}}, nil
			})

		trs, err := deps.service.GetByDateRange(ctx, "2026-08-01", "2026-08-31")

		assert.NoError(t, err)
		assert.Len(t, trs, 1)
	})

	t.Run("inverted amount range", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.GetByAmountRange(ctx, "500", "100")

		assert.ErrorIs(t, err, transfererrors.ErrInvalidAmountRange)
	})

	t.Run("statistics memoized across calls", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().Count(ctx).Return(int64(10), nil).Times(1)
		deps.repo.EXPECT().CountByStatus(ctx, transfer.StatusPending).Return(int64(4), nil).Times(1)
		deps.repo.EXPECT().CountByStatus(ctx, transfer.StatusApproved).Return(int64(3), nil).Times(1)
		deps.repo.EXPECT().CountByStatus(ctx, transfer.StatusRejected).Return(int64(1), nil).Times(1)
		deps.repo.EXPECT().CountByStatus(ctx, transfer.StatusProcessed).Return(int64(2), nil).Times(1)

		want := transfer.TransferStatistics{
			TotalTransfers: 10,
			PendingCount:   4,
			ApprovedCount:  3,
			RejectedCount:  1,
			ProcessedCount: 2,
		}

		first, err := deps.service.Statistics(ctx)
		assert.NoError(t, err)
		assert.Equal(t, want, first)

		second, err := deps.service.Statistics(ctx)
		assert.NoError(t, err)
		assert.Equal(t, want, second)
	})
}

func TestTransferService_Deletes(t *testing.T) {
	ctx := context.Background()

	t.Run("deactivate flips active flag and stamps update pair", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		tr := &transfer.Transfer{ID: 7, Status: transfer.StatusApproved, IsActive: true, Amount: dec("100")}

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, int64(7)).Return(tr, nil)
		deps.repo.EXPECT().
			Update(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, got *transfer.Transfer) error {
				assert.False(t, got.IsActive)
				assert.NotNil(t, got.UpdatedDate)
				// Status untouched: soft delete is independent of the machine.
				assert.Equal(t, transfer.StatusApproved, got.Status)
				return nil
			})

		err := deps.service.Deactivate(ctx, 7)

		assert.NoError(t, err)
	})

	t.Run("purge unknown id", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().Purge(ctx, int64(99)).Return(gorm.ErrRecordNotFound)

		err := deps.service.Purge(ctx, 99)

		assert.EqualError(t, err, "Transfer with ID 99 not found")
	})
}
