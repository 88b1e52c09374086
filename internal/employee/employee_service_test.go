package employee_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"globalven/internal/employee"
	employeeerrors "globalven/internal/employee/errors"

	employeeMock "globalven/internal/employee/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service employee.Service
	repo    *employeeMock.MockRepository
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, _ := sqlmock.New()
	repo := employeeMock.NewMockRepository(ctrl)

	svc := employee.NewService(db, repo)

	return &serviceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: svc,
		repo:    repo,
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

func TestEmployeeService_Create(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		req := employee.CreateEmployeeRequest{
			FirstName:    "Nimal",
			LastName:     "Perera",
			Email:        "nimal.perera@example.com",
			Department:   "Finance",
			Salary:       "185000.50",
			Country:      "LK",
			RateCategory: "SENIOR",
			HireDate:     "2024-03-15",
		}

		expectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().
			WithTx(gomock.Any()).
			Return(deps.repo)

		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, e *employee.Employee) error {
				assert.Equal(t, req.FirstName, e.FirstName)
				assert.Equal(t, req.Email, e.Email)
				assert.True(t, e.IsActive)
				if assert.NotNil(t, e.Salary) {
					assert.Equal(t, "185000.5", e.Salary.String())
				}
				if assert.NotNil(t, e.HireDate) {
					assert.Equal(t, "2024-03-15", e.HireDate.Format("2006-01-02"))
				}
				e.ID = 42
				return nil
			})

		resp, err := deps.service.Create(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, int64(42), resp.ID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("invalid salary rejected before persisting", func(t *testing.T) {
		req := employee.CreateEmployeeRequest{
			FirstName: "Nimal",
			LastName:  "Perera",
			Email:     "nimal.perera@example.com",
			Salary:    "not-a-number",
		}

		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().
			WithTx(gomock.Any()).
			Return(deps.repo)

		_, err := deps.service.Create(ctx, req)

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidSalary)
	})

	t.Run("duplicate email maps to conflict", func(t *testing.T) {
		req := employee.CreateEmployeeRequest{
			FirstName: "Nimal",
			LastName:  "Perera",
			Email:     "nimal.perera@example.com",
		}

		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().
			WithTx(gomock.Any()).
			Return(deps.repo)

		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_employee_email"})

		_, err := deps.service.Create(ctx, req)

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeAlreadyExists)
	})
}

func TestEmployeeService_GetByID(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		deps.repo.EXPECT().
			FindByID(ctx, int64(7)).
			Return(&employee.Employee{ID: 7, FirstName: "Kamala", LastName: "Silva"}, nil)

		resp, err := deps.service.GetByID(ctx, 7)

		assert.NoError(t, err)
		assert.Equal(t, "Kamala Silva", resp.FullName())
	})

	t.Run("not found maps to 404", func(t *testing.T) {
		deps.repo.EXPECT().
			FindByID(ctx, int64(99)).
			Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.GetByID(ctx, 99)

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}

func TestEmployeeService_Update(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()

	t.Run("success stamps updated date", func(t *testing.T) {
		req := employee.UpdateEmployeeRequest{
			FirstName:  "Kamala",
			LastName:   "Silva",
			Email:      "kamala.silva@example.com",
			Department: "Engineering",
		}

		expectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().
			WithTx(gomock.Any()).
			Return(deps.repo)

		deps.repo.EXPECT().
			FindByID(ctx, int64(7)).
			Return(&employee.Employee{ID: 7, FirstName: "Kamala", CreatedDate: time.Now()}, nil)

		deps.repo.EXPECT().
			Update(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, e *employee.Employee) error {
				assert.Equal(t, "Engineering", e.Department)
				assert.NotNil(t, e.UpdatedDate)
				return nil
			})

		resp, err := deps.service.Update(ctx, 7, req)

		assert.NoError(t, err)
		assert.Equal(t, "kamala.silva@example.com", resp.Email)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("unknown id", func(t *testing.T) {
		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().
			WithTx(gomock.Any()).
			Return(deps.repo)

		deps.repo.EXPECT().
			FindByID(ctx, int64(99)).
			Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Update(ctx, 99, employee.UpdateEmployeeRequest{
			FirstName: "X", LastName: "Y", Email: "x@y.com",
		})

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}

func TestEmployeeService_Deactivate(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()

	t.Run("flips active flag instead of deleting", func(t *testing.T) {
		expectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().
			WithTx(gomock.Any()).
			Return(deps.repo)

		deps.repo.EXPECT().
			FindByID(ctx, int64(7)).
			Return(&employee.Employee{ID: 7, IsActive: true}, nil)

		deps.repo.EXPECT().
			Update(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, e *employee.Employee) error {
				assert.False(t, e.IsActive)
				return nil
			})

		err := deps.service.Deactivate(ctx, 7)

		assert.NoError(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("repo failure rolls back", func(t *testing.T) {
		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().
			WithTx(gomock.Any()).
			Return(deps.repo)

		deps.repo.EXPECT().
			FindByID(ctx, int64(7)).
			Return(nil, errors.New("connection reset"))

		err := deps.service.Deactivate(ctx, 7)

		assert.Error(t, err)
	})
}
