package onboardingerrors

import (
	"go-ems/internal/shared/apperror"
	"net/http"
)

var (
	ErrInvalidStep = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid step",
		http.StatusBadRequest,
	)
	ErrEmployeeIDRequired = apperror.New(
		apperror.CodeInvalidInput,
		"employeeId is required for steps 2-4",
		http.StatusBadRequest,
	)
	ErrImageRequired = apperror.New(
		apperror.CodeNotFound,
		"Image is required",
		http.StatusNotFound,
	)
	ErrJoiningDateRequired = apperror.New(
		apperror.CodeInvalidInput,
		"joiningDate is required",
		http.StatusBadRequest,
	)
	ErrInvalidEmail = apperror.New(
		apperror.CodeInvalidInput,
		"email is invalid",
		http.StatusBadRequest,
	)
	ErrEmailImmutable = apperror.New(
		apperror.CodeInvalidInput,
		"Email cannot be changed",
		http.StatusBadRequest,
	)
	ErrNegativeSalary = apperror.New(
		apperror.CodeInvalidInput,
		"currentSalary cannot be negative",
		http.StatusBadRequest,
	)
	ErrInvalidRequest = apperror.New(
		apperror.CodeInvalidInput,
		"The provided input is invalid",
		http.StatusBadRequest,
	)
)
