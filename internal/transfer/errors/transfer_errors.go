package transfererrors

import (
	"fmt"
	"net/http"

	"globalven/internal/shared/apperror"
)

var (
	ErrTransferNotFound = apperror.New(
		apperror.CodeNotFound,
		"Transfer not found",
		http.StatusNotFound,
	)
	ErrDuplicateReference = apperror.New(
		apperror.CodeConflict,
		"Transfer with the same reference number already exists",
		http.StatusConflict,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid transfer status",
		http.StatusBadRequest,
	)
	ErrInvalidTransactionType = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid transaction type",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date range, expected format YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidAmountRange = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid amount range",
		http.StatusBadRequest,
	)
)

func ErrTransferNotFoundWithID(id int64) *apperror.AppError {
	return apperror.New(
		apperror.CodeNotFound,
		fmt.Sprintf("Transfer with ID %d not found", id),
		http.StatusNotFound,
	)
}

// The create endpoint reports unresolved references as 400s with the legacy
// message shape: entity name plus the offending id.
func ErrEmployeeReference(id int64) *apperror.AppError {
	return apperror.New(
		apperror.CodeInvalidInput,
		fmt.Sprintf("Employee not found with ID: %d", id),
		http.StatusBadRequest,
	)
}

func ErrRateReference(id int64) *apperror.AppError {
	return apperror.New(
		apperror.CodeInvalidInput,
		fmt.Sprintf("Rate not found with ID: %d", id),
		http.StatusBadRequest,
	)
}
