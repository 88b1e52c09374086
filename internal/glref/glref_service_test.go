package glref_test

import (
	"context"
	"database/sql"
	"testing"

	"globalven/internal/glref"
	glreferrors "globalven/internal/glref/errors"

	glrefMock "globalven/internal/glref/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

func setupServiceTest(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *glrefMock.MockRepository, glref.Service) {
	ctrl := gomock.NewController(t)
	db, sqlMock, _ := sqlmock.New()
	repo := glrefMock.NewMockRepository(ctrl)
	return db, sqlMock, repo, glref.NewService(db, repo)
}

func TestGlRefService_Create(t *testing.T) {
	db, sqlMock, repo, svc := setupServiceTest(t)
	defer db.Close()

	ctx := context.Background()

	t.Run("normalizes code to upper case", func(t *testing.T) {
		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		repo.EXPECT().WithTx(gomock.Any()).Return(repo)
		repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, code *glref.GlRefCode) error {
				assert.Equal(t, "SAL-4100", code.Code)
				assert.True(t, code.IsActive)
				code.ID = 1
				return nil
			})

		resp, err := svc.Create(ctx, glref.CreateGlRefCodeRequest{
			Code:        " sal-4100 ",
			Description: "Salary expense",
			Category:    "EXPENSE",
		})

		assert.NoError(t, err)
		assert.Equal(t, "SAL-4100", resp.Code)
	})

	t.Run("duplicate code maps to conflict", func(t *testing.T) {
		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()

		repo.EXPECT().WithTx(gomock.Any()).Return(repo)
		repo.EXPECT().
			Create(ctx, gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_glref_code"})

		_, err := svc.Create(ctx, glref.CreateGlRefCodeRequest{Code: "SAL-4100"})

		assert.ErrorIs(t, err, glreferrors.ErrGlRefCodeAlreadyExists)
	})
}

func TestGlRefService_GetByCode(t *testing.T) {
	db, _, repo, svc := setupServiceTest(t)
	defer db.Close()

	ctx := context.Background()

	t.Run("unknown code", func(t *testing.T) {
		repo.EXPECT().
			FindByCode(ctx, "MISSING").
			Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.GetByCode(ctx, "missing")

		assert.ErrorIs(t, err, glreferrors.ErrGlRefCodeNotFound)
	})
}
