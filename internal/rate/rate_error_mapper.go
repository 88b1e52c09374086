package rate

import (
	"errors"

	rateerrors "globalven/internal/rate/errors"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return rateerrors.ErrRateNotFound
	}

	return err
}
