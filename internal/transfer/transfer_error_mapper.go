package transfer

import (
	"errors"
	"strings"

	transfererrors "globalven/internal/transfer/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return transfererrors.ErrTransferNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_transfer_reference_no" {
			return transfererrors.ErrDuplicateReference
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_transfer_reference_no") {
		return transfererrors.ErrDuplicateReference
	}

	return err
}
