package apperror

import (
	"fmt"
	"net/http"
)

var (
	ErrNotFound = New(
		CodeNotFound,
		"Resource not found",
		http.StatusNotFound,
	)

	ErrForbidden = New(
		CodeForbidden,
		"You do not have permission to access this resource",
		http.StatusForbidden,
	)

	ErrInternal = New(
		CodeInternalError,
		"Internal server error.",
		http.StatusInternalServerError,
	)

	ErrUnauthorized = New(
		CodeUnauthorized,
		"Authentication token not provided.",
		http.StatusUnauthorized,
	)

	ErrInvalidInput = New(
		CodeInvalidInput,
		"The provided input is invalid",
		http.StatusBadRequest,
	)
)

// Validation reports malformed or out-of-range input.
func Validation(message string) *AppError {
	return New(CodeInvalidInput, message, http.StatusBadRequest)
}

// Conflict reports a violated uniqueness rule.
func Conflict(message string) *AppError {
	return New(CodeConflict, message, http.StatusConflict)
}

// MissingResource reports a record or required artifact that does not exist.
func MissingResource(message string) *AppError {
	return New(CodeNotFound, message, http.StatusNotFound)
}

// Dependency wraps a failure of an external collaborator (mail, storage).
func Dependency(err error, message string) *AppError {
	return Wrap(err, CodeDependencyFailed, message, http.StatusBadGateway)
}

func RequiredField(field string) *AppError {
	return Validation(fmt.Sprintf("%s is required", field))
}

func InvalidField(field string) *AppError {
	return Validation(fmt.Sprintf("%s is invalid", field))
}
