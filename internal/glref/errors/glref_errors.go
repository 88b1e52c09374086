package glreferrors

import (
	"net/http"

	"globalven/internal/shared/apperror"
)

var (
	ErrGlRefCodeNotFound = apperror.New(
		apperror.CodeNotFound,
		"GL reference code not found",
		http.StatusNotFound,
	)
	ErrGlRefCodeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"GL reference code already exists",
		http.StatusConflict,
	)
)
