package payrollerrors

import (
	"net/http"

	"go-ems/internal/shared/apperror"
)

var (
	ErrLockNotObtained = apperror.New(
		apperror.CodeConflict,
		"Payroll generation already in progress",
		http.StatusConflict,
	)
	ErrListEmployees = apperror.New(
		apperror.CodeInternalError,
		"Failed to list employees for payroll",
		http.StatusInternalServerError,
	)
)
