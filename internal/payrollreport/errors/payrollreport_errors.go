package payrollreporterrors

import (
	"net/http"

	"go-ems/internal/shared/apperror"
)

var (
	ErrSalaryNotFound = apperror.New(
		apperror.CodeNotFound,
		"Salary not found",
		http.StatusNotFound,
	)
	ErrInvalidSalaryID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid salary ID",
		http.StatusBadRequest,
	)
	ErrPeriodRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Please provide at least month or a year",
		http.StatusBadRequest,
	)
	ErrInvalidYear = apperror.New(
		apperror.CodeInvalidInput,
		"Year is invalid",
		http.StatusBadRequest,
	)
	ErrInvalidFormat = apperror.New(
		apperror.CodeInvalidInput,
		"Format must be pdf or xlsx",
		http.StatusBadRequest,
	)
	ErrInvalidSort = apperror.New(
		apperror.CodeInvalidInput,
		"Unsupported sort field",
		http.StatusBadRequest,
	)
)
