package rateerrors

import (
	"fmt"
	"net/http"

	"globalven/internal/shared/apperror"
)

var (
	ErrRateNotFound = apperror.New(
		apperror.CodeNotFound,
		"Rate not found",
		http.StatusNotFound,
	)
	ErrNoRatesAvailable = apperror.New(
		apperror.CodeInvalidInput,
		"No rates available in the system",
		http.StatusBadRequest,
	)
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid rate amount",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date, expected format YYYY-MM-DD",
		http.StatusBadRequest,
	)
)

func ErrRateNotFoundWithID(id int64) *apperror.AppError {
	return apperror.New(
		apperror.CodeNotFound,
		fmt.Sprintf("Rate with ID %d not found", id),
		http.StatusNotFound,
	)
}
