package transfer

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"globalven/internal/cache"
	"globalven/internal/employee"
	employeeerrors "globalven/internal/employee/errors"
	"globalven/internal/events"
	"globalven/internal/messaging/kafka"
	"globalven/internal/rate"
	"globalven/internal/shared/apperror"
	"globalven/internal/shared/contextutil"
	transfererrors "globalven/internal/transfer/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

//go:generate mockgen -source=transfer_service.go -destination=mock/transfer_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateTransferRequest) (Transfer, error)
	Update(ctx context.Context, id int64, req UpdateTransferRequest) (Transfer, error)
	Approve(ctx context.Context, id int64, approver string) (Transfer, error)
	Reject(ctx context.Context, id int64, rejector string) (Transfer, error)
	Process(ctx context.Context, id int64, processor string) (Transfer, error)
	GetAll(ctx context.Context) ([]Transfer, error)
	GetByID(ctx context.Context, id int64) (Transfer, error)
	GetByEmployee(ctx context.Context, employeeID int64) ([]Transfer, error)
	GetByType(ctx context.Context, transactionType string) ([]Transfer, error)
	GetByStatus(ctx context.Context, status string) ([]Transfer, error)
	GetByDateRange(ctx context.Context, startDate, endDate string) ([]Transfer, error)
	GetByAmountRange(ctx context.Context, minAmount, maxAmount string) ([]Transfer, error)
	GetByCurrency(ctx context.Context, currency string) ([]Transfer, error)
	Search(ctx context.Context, keyword string) ([]Transfer, error)
	SearchByDescription(ctx context.Context, keyword string) ([]Transfer, error)
	SearchByReference(ctx context.Context, keyword string) ([]Transfer, error)
	GetByGlRefCode(ctx context.Context, code string) ([]Transfer, error)
	SearchGlRefCode(ctx context.Context, keyword string) ([]Transfer, error)
	GetPending(ctx context.Context) ([]Transfer, error)
	Statistics(ctx context.Context) (TransferStatistics, error)
	Deactivate(ctx context.Context, id int64) error
	Purge(ctx context.Context, id int64) error
}

type service struct {
	db           *sql.DB
	repo         Repository
	employeeRepo employee.Repository
	rateRepo     rate.Repository
	outbox       kafka.OutboxRepository
	statsTTL     cache.Cache
	statsGroup   singleflight.Group
	logger       *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employeeRepo employee.Repository,
	rateRepo rate.Repository,
	outbox kafka.OutboxRepository,
	statsTTL cache.Cache,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("transfer.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("transfer.service")
	}
	return &service{
		db:           db,
		repo:         repo,
		employeeRepo: employeeRepo,
		rateRepo:     rateRepo,
		outbox:       outbox,
		statsTTL:     statsTTL,
		logger:       l,
	}
}

func (s *service) Create(ctx context.Context, req CreateTransferRequest) (Transfer, error) {
	rid := contextutil.GetRequestID(ctx)
	actor := contextutil.GetActor(ctx)
	s.logger.Debug("create transfer requested",
		zap.String("request_id", rid),
		zap.Int64("employee_id", req.EmployeeID),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Transfer{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	// Foreign references are re-read inside the write transaction so the
	// stored keys point at committed rows, never at caller-supplied ids
	// taken on faith.
	empl, err := s.employeeRepo.WithTx(tx).FindByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Transfer{}, transfererrors.ErrEmployeeReference(req.EmployeeID)
		}
		return Transfer{}, err
	}

	rt, err := rate.Resolve(ctx, s.rateRepo.WithTx(tx), req.RateID)
	if err != nil {
		if req.RateID != nil {
			var appErr *apperror.AppError
			if errors.As(err, &appErr) && appErr.Code == apperror.CodeNotFound {
				return Transfer{}, transfererrors.ErrRateReference(*req.RateID)
			}
		}
		return Transfer{}, err
	}

	now := time.Now()
	tr := &Transfer{
		EmployeeID:      empl.ID,
		RateID:          rt.ID,
		TransactionType: req.TransactionType,
		Amount:          *req.Amount,
		Currency:        req.Currency,
		ExchangeRate:    req.ExchangeRate,
		HoursWorked:     req.HoursWorked,
		Status:          StatusPending,
		TransactionDate: now,
		Description:     req.Description,
		Notes:           req.Notes,
		ReferenceNo:     newReferenceNo(),
		GlRefCode:       req.GlRefCode,
		IsActive:        true,
		CreatedBy:       actor,
	}
	if tr.TransactionType == "" {
		tr.TransactionType = TypeOther
	}
	if tr.Currency == "" {
		tr.Currency = "USD"
	}
	tr.ComputeAmountInBaseCurrency()

	if err := qtx.Create(ctx, tr); err != nil {
		s.logger.Error("create transfer persist failed", zap.String("request_id", rid), zap.Error(err))
		return Transfer{}, mapRepositoryError(err)
	}

	if err := s.enqueueLifecycleEvent(ctx, tx, events.TransferCreated, tr, actor, rid); err != nil {
		return Transfer{}, err
	}

	if err := tx.Commit(); err != nil {
		return Transfer{}, err
	}

	s.statsTTL.Invalidate(cache.KeyTransferStatistics)
	s.logger.Info("create transfer success",
		zap.String("request_id", rid),
		zap.Int64("transfer_id", tr.ID),
		zap.Int64("employee_id", tr.EmployeeID),
		zap.Int64("rate_id", tr.RateID),
		zap.String("status", tr.Status),
	)

	tr.Employee = empl
	tr.Rate = rt
	return *tr, nil
}

func (s *service) Update(ctx context.Context, id int64, req UpdateTransferRequest) (Transfer, error) {
	actor := contextutil.GetActor(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Transfer{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	tr, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Transfer{}, transfererrors.ErrTransferNotFoundWithID(id)
		}
		return Transfer{}, err
	}

	if req.TransactionType != "" {
		tr.TransactionType = req.TransactionType
	}
	if req.Currency != "" {
		tr.Currency = req.Currency
	}
	tr.Amount = *req.Amount
	tr.ExchangeRate = req.ExchangeRate
	tr.HoursWorked = req.HoursWorked
	tr.Description = req.Description
	tr.Notes = req.Notes
	tr.GlRefCode = req.GlRefCode

	// The explicit update path is the one place the derived amount is
	// recomputed after creation.
	tr.AmountInBaseCurrency = nil
	tr.ComputeAmountInBaseCurrency()

	now := time.Now()
	tr.UpdatedBy = &actor
	tr.UpdatedDate = &now

	if err := qtx.Update(ctx, tr); err != nil {
		return Transfer{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return Transfer{}, err
	}

	s.statsTTL.Invalidate(cache.KeyTransferStatistics)
	return *tr, nil
}

func (s *service) Approve(ctx context.Context, id int64, approver string) (Transfer, error) {
	return s.transition(ctx, id, approver, events.TransferApproved, (*Transfer).Approve)
}

func (s *service) Reject(ctx context.Context, id int64, rejector string) (Transfer, error) {
	return s.transition(ctx, id, rejector, events.TransferRejected, (*Transfer).Reject)
}

func (s *service) Process(ctx context.Context, id int64, processor string) (Transfer, error) {
	return s.transition(ctx, id, processor, events.TransferProcessed, (*Transfer).Process)
}

// transition is the single chokepoint for all status changes. It is
// deliberately permissive: any status overwrites any other, matching the
// legacy behavior. A guard would slot in here.
func (s *service) transition(
	ctx context.Context,
	id int64,
	actor string,
	eventType string,
	apply func(*Transfer, string, time.Time),
) (Transfer, error) {
	rid := contextutil.GetRequestID(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Transfer{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	tr, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Transfer{}, transfererrors.ErrTransferNotFoundWithID(id)
		}
		return Transfer{}, err
	}

	apply(tr, actor, time.Now())

	if err := qtx.Update(ctx, tr); err != nil {
		return Transfer{}, mapRepositoryError(err)
	}

	if err := s.enqueueLifecycleEvent(ctx, tx, eventType, tr, actor, rid); err != nil {
		return Transfer{}, err
	}

	if err := tx.Commit(); err != nil {
		return Transfer{}, err
	}

	s.statsTTL.Invalidate(cache.KeyTransferStatistics)
	s.logger.Info("transfer transition",
		zap.String("request_id", rid),
		zap.Int64("transfer_id", tr.ID),
		zap.String("status", tr.Status),
		zap.String("actor", actor),
	)

	return *tr, nil
}

func (s *service) GetAll(ctx context.Context) ([]Transfer, error) {
	trs, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return trs, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (Transfer, error) {
	tr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Transfer{}, transfererrors.ErrTransferNotFoundWithID(id)
		}
		return Transfer{}, err
	}
	return *tr, nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID int64) ([]Transfer, error) {
	// The employee is a path entity: an unknown id is a 404, not an empty
	// result set.
	if _, err := s.employeeRepo.FindByID(ctx, employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, employeeerrors.ErrEmployeeNotFound
		}
		return nil, err
	}

	trs, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return trs, nil
}

func (s *service) GetByType(ctx context.Context, transactionType string) ([]Transfer, error) {
	if !IsValidTransactionType(transactionType) {
		return nil, transfererrors.ErrInvalidTransactionType
	}
	trs, err := s.repo.FindByType(ctx, transactionType)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return trs, nil
}

func (s *service) GetByStatus(ctx context.Context, status string) ([]Transfer, error) {
	if !IsValidStatus(status) {
		return nil, transfererrors.ErrInvalidStatus
	}
	trs, err := s.repo.FindByStatus(ctx, status)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return trs, nil
}

func (s *service) GetByDateRange(ctx context.Context, startDate, endDate string) ([]Transfer, error) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return nil, transfererrors.ErrInvalidDateRange
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return nil, transfererrors.ErrInvalidDateRange
	}

	// Inclusive day bounds: start expands to 00:00:00 and end to 23:59:59.
	end = end.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
	if end.Before(start) {
		return nil, transfererrors.ErrInvalidDateRange
	}

	trs, err := s.repo.FindByDateRange(ctx, start, end)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return trs, nil
}

func (s *service) GetByAmountRange(ctx context.Context, minAmount, maxAmount string) ([]Transfer, error) {
	min, err := decimal.NewFromString(minAmount)
	if err != nil {
		return nil, transfererrors.ErrInvalidAmountRange
	}
	max, err := decimal.NewFromString(maxAmount)
	if err != nil {
		return nil, transfererrors.ErrInvalidAmountRange
	}
	if max.LessThan(min) {
		return nil, transfererrors.ErrInvalidAmountRange
	}

	trs, err := s.repo.FindByAmountRange(ctx, min, max)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return trs, nil
}

func (s *service) GetByCurrency(ctx context.Context, currency string) ([]Transfer, error) {
	trs, err := s.repo.FindByCurrency(ctx, currency)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return trs, nil
}

func (s *service) Search(ctx context.Context, keyword string) ([]Transfer, error) {
	trs, err := s.repo.SearchKeyword(ctx, keyword)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return trs, nil
}

func (s *service) SearchByDescription(ctx context.Context, keyword string) ([]Transfer, error) {
	trs, err := s.repo.SearchDescription(ctx, keyword)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return trs, nil
}

func (s *service) SearchByReference(ctx context.Context, keyword string) ([]Transfer, error) {
	trs, err := s.repo.SearchReference(ctx, keyword)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return trs, nil
}

func (s *service) GetByGlRefCode(ctx context.Context, code string) ([]Transfer, error) {
	trs, err := s.repo.FindByGlRefCode(ctx, code)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return trs, nil
}

func (s *service) SearchGlRefCode(ctx context.Context, keyword string) ([]Transfer, error) {
	trs, err := s.repo.SearchGlRefCode(ctx, keyword)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return trs, nil
}

func (s *service) GetPending(ctx context.Context) ([]Transfer, error) {
	trs, err := s.repo.FindPending(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return trs, nil
}

func (s *service) Statistics(ctx context.Context) (TransferStatistics, error) {
	if cached, ok := s.statsTTL.Get(cache.KeyTransferStatistics); ok {
		if stats, ok := cached.(TransferStatistics); ok {
			return stats, nil
		}
	}

	// Concurrent cold-cache callers collapse into one repository pass.
	v, err, _ := s.statsGroup.Do(cache.KeyTransferStatistics, func() (any, error) {
		var stats TransferStatistics
		var err error

		if stats.TotalTransfers, err = s.repo.Count(ctx); err != nil {
			return nil, err
		}
		if stats.PendingCount, err = s.repo.CountByStatus(ctx, StatusPending); err != nil {
			return nil, err
		}
		if stats.ApprovedCount, err = s.repo.CountByStatus(ctx, StatusApproved); err != nil {
			return nil, err
		}
		if stats.RejectedCount, err = s.repo.CountByStatus(ctx, StatusRejected); err != nil {
			return nil, err
		}
		if stats.ProcessedCount, err = s.repo.CountByStatus(ctx, StatusProcessed); err != nil {
			return nil, err
		}

		s.statsTTL.Put(cache.KeyTransferStatistics, stats, cache.DefaultTTL)
		return stats, nil
	})
	if err != nil {
		return TransferStatistics{}, mapRepositoryError(err)
	}

	return v.(TransferStatistics), nil
}

// Deactivate is the lifecycle's own delete: it flips isActive and stamps the
// update pair, leaving the row in place.
func (s *service) Deactivate(ctx context.Context, id int64) error {
	actor := contextutil.GetActor(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	tr, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return transfererrors.ErrTransferNotFoundWithID(id)
		}
		return err
	}

	now := time.Now()
	tr.IsActive = false
	tr.UpdatedBy = &actor
	tr.UpdatedDate = &now

	if err := qtx.Update(ctx, tr); err != nil {
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.statsTTL.Invalidate(cache.KeyTransferStatistics)
	return nil
}

// Purge physically removes the row. Kept separate from Deactivate on purpose.
func (s *service) Purge(ctx context.Context, id int64) error {
	err := s.repo.Purge(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return transfererrors.ErrTransferNotFoundWithID(id)
		}
		return err
	}

	s.statsTTL.Invalidate(cache.KeyTransferStatistics)
	s.logger.Warn("transfer purged", zap.Int64("transfer_id", id))
	return nil
}

func (s *service) enqueueLifecycleEvent(
	ctx context.Context,
	tx *sql.Tx,
	eventType string,
	tr *Transfer,
	actor string,
	requestID string,
) error {
	payload, err := json.Marshal(events.TransferLifecycleEvent{
		EventType:  eventType,
		RequestID:  requestID,
		TransferID: tr.ID,
		EmployeeID: tr.EmployeeID,
		Status:     tr.Status,
		Actor:      actor,
		Amount:     tr.Amount.String(),
		Currency:   tr.Currency,
		OccurredAt: time.Now(),
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     requestID,
		AggregateType: "transfer",
		AggregateID:   strconv.FormatInt(tr.ID, 10),
		EventType:     eventType,
		Topic:         events.TransferLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func newReferenceNo() string {
	return "TRF-" + uuid.NewString()[:8]
}
