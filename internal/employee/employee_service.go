package employee

import (
	"context"
	"database/sql"
	"time"

	employeeerrors "globalven/internal/employee/errors"
	"globalven/internal/shared/contextutil"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (Employee, error)
	GetAll(ctx context.Context) ([]Employee, error)
	GetActive(ctx context.Context) ([]Employee, error)
	GetByID(ctx context.Context, id int64) (Employee, error)
	Update(ctx context.Context, id int64, req UpdateEmployeeRequest) (Employee, error)
	Deactivate(ctx context.Context, id int64) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (Employee, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("email", req.Email),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Employee{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl := &Employee{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Department:   req.Department,
		Position:     req.Position,
		Country:      req.Country,
		RateCategory: req.RateCategory,
		PhoneNumber:  req.PhoneNumber,
		IsActive:     true,
	}

	if err := applyOptionalFields(empl, req.Salary, req.HireDate, req.JoinDate); err != nil {
		return Employee{}, err
	}

	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.String("request_id", rid), zap.Error(err))
		return Employee{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return Employee{}, err
	}

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.Int64("employee_id", empl.ID),
	)

	return *empl, nil
}

func (s *service) GetAll(ctx context.Context) ([]Employee, error) {
	empls, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return empls, nil
}

func (s *service) GetActive(ctx context.Context) ([]Employee, error) {
	empls, err := s.repo.FindActive(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return empls, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (Employee, error) {
	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return Employee{}, mapRepositoryError(err)
	}
	return *empl, nil
}

func (s *service) Update(ctx context.Context, id int64, req UpdateEmployeeRequest) (Employee, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Employee{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		return Employee{}, mapRepositoryError(err)
	}

	empl.FirstName = req.FirstName
	empl.LastName = req.LastName
	empl.Email = req.Email
	empl.Department = req.Department
	empl.Position = req.Position
	empl.Country = req.Country
	empl.RateCategory = req.RateCategory
	empl.PhoneNumber = req.PhoneNumber

	if err := applyOptionalFields(empl, req.Salary, req.HireDate, req.JoinDate); err != nil {
		return Employee{}, err
	}

	now := time.Now()
	empl.UpdatedDate = &now

	if err := qtx.Update(ctx, empl); err != nil {
		return Employee{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return Employee{}, err
	}

	return *empl, nil
}

func (s *service) Deactivate(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}

	now := time.Now()
	empl.IsActive = false
	empl.UpdatedDate = &now

	if err := qtx.Update(ctx, empl); err != nil {
		return mapRepositoryError(err)
	}

	return tx.Commit()
}

func applyOptionalFields(empl *Employee, salary, hireDate, joinDate string) error {
	if salary != "" {
		sal, err := decimal.NewFromString(salary)
		if err != nil {
			return employeeerrors.ErrInvalidSalary
		}
		empl.Salary = &sal
	}

	if hireDate != "" {
		t, err := time.Parse("2006-01-02", hireDate)
		if err != nil {
			return employeeerrors.ErrInvalidDate
		}
		empl.HireDate = &t
	}

	if joinDate != "" {
		t, err := time.Parse("2006-01-02", joinDate)
		if err != nil {
			return employeeerrors.ErrInvalidDate
		}
		empl.JoinDate = &t
	}

	return nil
}
