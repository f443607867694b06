package leavebalanceerrors

import (
	"go-ems/internal/shared/apperror"
	"net/http"
)

var (
	ErrLeaveBalanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave balance not found",
		http.StatusNotFound,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrInvalidMonth = apperror.New(
		apperror.CodeInvalidInput,
		"Month must be an English month name",
		http.StatusBadRequest,
	)
	ErrInvalidYear = apperror.New(
		apperror.CodeInvalidInput,
		"Year is invalid",
		http.StatusBadRequest,
	)
	ErrNegativeUsage = apperror.New(
		apperror.CodeInvalidInput,
		"Leave usage cannot be negative",
		http.StatusBadRequest,
	)
	ErrDuplicateUsageEvent = apperror.New(
		apperror.CodeConflict,
		"Leave usage event already applied",
		http.StatusConflict,
	)
)
