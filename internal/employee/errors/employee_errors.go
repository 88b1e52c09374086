package employeeerrors

import (
	"fmt"
	"net/http"

	"globalven/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee with the same email already exists",
		http.StatusConflict,
	)
	ErrInvalidSalary = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid salary amount",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date, expected format YYYY-MM-DD",
		http.StatusBadRequest,
	)
)

// ErrEmployeeNotFoundWithID keeps the caller-facing message of the legacy
// transfer create path: it names both the entity and the missing id.
func ErrEmployeeNotFoundWithID(id int64) *apperror.AppError {
	return apperror.New(
		apperror.CodeInvalidInput,
		fmt.Sprintf("Employee not found with ID: %d", id),
		http.StatusBadRequest,
	)
}
