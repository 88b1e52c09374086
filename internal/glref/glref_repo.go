package glref

import (
	"context"
	"database/sql"

	"globalven/internal/scope"

	"gorm.io/gorm"
)

//go:generate mockgen -source=glref_repo.go -destination=mock/glref_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, code *GlRefCode) error
	FindAll(ctx context.Context) ([]GlRefCode, error)
	FindActive(ctx context.Context) ([]GlRefCode, error)
	FindByID(ctx context.Context, id int64) (*GlRefCode, error)
	FindByCode(ctx context.Context, code string) (*GlRefCode, error)
	Search(ctx context.Context, keyword string) ([]GlRefCode, error)
	Update(ctx context.Context, code *GlRefCode) error
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

func (r *repository) Create(ctx context.Context, code *GlRefCode) error {
	return r.db.WithContext(ctx).Create(code).Error
}

func (r *repository) FindAll(ctx context.Context) ([]GlRefCode, error) {
	var codes []GlRefCode
	err := r.db.WithContext(ctx).
		Order("code ASC").
		Find(&codes).Error
	return codes, err
}

func (r *repository) FindActive(ctx context.Context) ([]GlRefCode, error) {
	var codes []GlRefCode
	err := r.db.WithContext(ctx).
		Scopes(scope.ActiveOnly).
		Order("code ASC").
		Find(&codes).Error
	return codes, err
}

func (r *repository) FindByID(ctx context.Context, id int64) (*GlRefCode, error) {
	var code GlRefCode
	err := r.db.WithContext(ctx).
		First(&code, "id = ?", id).Error
	return &code, err
}

func (r *repository) FindByCode(ctx context.Context, code string) (*GlRefCode, error) {
	var ref GlRefCode
	err := r.db.WithContext(ctx).
		First(&ref, "code = ?", code).Error
	return &ref, err
}

func (r *repository) Search(ctx context.Context, keyword string) ([]GlRefCode, error) {
	var codes []GlRefCode
	pattern := "%" + keyword + "%"
	err := r.db.WithContext(ctx).
		Scopes(scope.ActiveOnly).
		Where("code ILIKE ? OR description ILIKE ?", pattern, pattern).
		Order("code ASC").
		Find(&codes).Error
	return codes, err
}

func (r *repository) Update(ctx context.Context, code *GlRefCode) error {
	return r.db.WithContext(ctx).Save(code).Error
}
