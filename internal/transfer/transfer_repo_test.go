package transfer

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupRepoTest(t *testing.T) (Repository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)

	return NewRepository(gormDB), mock, db
}

func TestTransferRepositoryFilteredReadsExcludeInactive(t *testing.T) {
	repo, mock, db := setupRepoTest(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT \* FROM "transfers_main" WHERE .*is_active = \$[0-9]+.* ORDER BY transaction_date DESC, id DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	trs, err := repo.FindByStatus(context.Background(), StatusPending)

	assert.NoError(t, err)
	assert.Empty(t, trs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferRepositoryUnfilteredReadsIncludeInactive(t *testing.T) {
	t.Run("find all carries no active filter", func(t *testing.T) {
		repo, mock, db := setupRepoTest(t)
		defer db.Close()

		// Anchored: an is_active condition sneaking in breaks the match.
		mock.ExpectQuery(`^SELECT \* FROM "transfers_main" ORDER BY transaction_date DESC, id DESC$`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.FindAll(context.Background())

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("find by id carries no active filter", func(t *testing.T) {
		repo, mock, db := setupRepoTest(t)
		defer db.Close()

		mock.ExpectQuery(`SELECT \* FROM "transfers_main" WHERE id = \$1 ORDER BY`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.FindByID(context.Background(), 7)

		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTransferRepositoryWithTxJoinsCallerTransaction(t *testing.T) {
	repo, mock, db := setupRepoTest(t)
	defer db.Close()

	mock.ExpectBegin()
	tx, err := db.Begin()
	assert.NoError(t, err)

	qtx := repo.WithTx(tx).(*repository)
	assert.Same(t, tx, qtx.db.Statement.ConnPool)

	// The insert rides the caller's transaction: no nested begin, and the
	// row only lands when the caller commits.
	mock.ExpectQuery(`INSERT INTO "transfers_main"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(77))
	mock.ExpectCommit()

	tr := &Transfer{EmployeeID: 5, RateID: 9, Status: StatusPending}
	assert.NoError(t, qtx.Create(context.Background(), tr))
	assert.Equal(t, int64(77), tr.ID)

	assert.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())

	// The shared pool session is left untouched by the rebind.
	assert.NotSame(t, tx, repo.(*repository).db.Statement.ConnPool)
}
