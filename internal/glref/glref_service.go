package glref

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	glreferrors "globalven/internal/glref/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req CreateGlRefCodeRequest) (GlRefCode, error)
	GetAll(ctx context.Context) ([]GlRefCode, error)
	GetActive(ctx context.Context) ([]GlRefCode, error)
	GetByID(ctx context.Context, id int64) (GlRefCode, error)
	GetByCode(ctx context.Context, code string) (GlRefCode, error)
	Search(ctx context.Context, keyword string) ([]GlRefCode, error)
	Update(ctx context.Context, id int64, req UpdateGlRefCodeRequest) (GlRefCode, error)
	Deactivate(ctx context.Context, id int64) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("glref.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("glref.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateGlRefCodeRequest) (GlRefCode, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return GlRefCode{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	code := &GlRefCode{
		Code:        strings.ToUpper(strings.TrimSpace(req.Code)),
		Description: req.Description,
		Category:    req.Category,
		IsActive:    true,
	}

	if err := qtx.Create(ctx, code); err != nil {
		return GlRefCode{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return GlRefCode{}, err
	}

	s.logger.Info("gl ref code created", zap.String("code", code.Code))
	return *code, nil
}

func (s *service) GetAll(ctx context.Context) ([]GlRefCode, error) {
	codes, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return codes, nil
}

func (s *service) GetActive(ctx context.Context) ([]GlRefCode, error) {
	codes, err := s.repo.FindActive(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return codes, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (GlRefCode, error) {
	code, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return GlRefCode{}, mapRepositoryError(err)
	}
	return *code, nil
}

func (s *service) GetByCode(ctx context.Context, code string) (GlRefCode, error) {
	ref, err := s.repo.FindByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return GlRefCode{}, mapRepositoryError(err)
	}
	return *ref, nil
}

func (s *service) Search(ctx context.Context, keyword string) ([]GlRefCode, error) {
	codes, err := s.repo.Search(ctx, strings.TrimSpace(keyword))
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return codes, nil
}

func (s *service) Update(ctx context.Context, id int64, req UpdateGlRefCodeRequest) (GlRefCode, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return GlRefCode{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	code, err := qtx.FindByID(ctx, id)
	if err != nil {
		return GlRefCode{}, mapRepositoryError(err)
	}

	now := time.Now()
	code.Description = req.Description
	code.Category = req.Category
	code.UpdatedDate = &now

	if err := qtx.Update(ctx, code); err != nil {
		return GlRefCode{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return GlRefCode{}, err
	}

	return *code, nil
}

func (s *service) Deactivate(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	code, err := qtx.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}

	now := time.Now()
	code.IsActive = false
	code.UpdatedDate = &now

	if err := qtx.Update(ctx, code); err != nil {
		return mapRepositoryError(err)
	}

	return tx.Commit()
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return glreferrors.ErrGlRefCodeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_glref_code" {
			return glreferrors.ErrGlRefCodeAlreadyExists
		}
	}

	return err
}
