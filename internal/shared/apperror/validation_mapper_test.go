package apperror

import (
	"errors"
	"reflect"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type usagePayload struct {
	Month      string `json:"month" validate:"required"`
	Year       int    `json:"year" validate:"gte=2000"`
	Format     string `json:"format" validate:"omitempty,oneof=pdf xlsx"`
	Email      string `json:"personalEmail" validate:"omitempty,email"`
	EmployeeID string `json:"employee_id" validate:"omitempty,uuid"`
}

func validate(t *testing.T, p usagePayload) error {
	t.Helper()
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string { return fld.Tag.Get("json") })
	return v.Struct(p)
}

func TestFormatFieldName(t *testing.T) {
	assert.Equal(t, "Current Salary", formatFieldName("current_salary"))
	assert.Equal(t, "Current Salary", formatFieldName("currentSalary"))
	assert.Equal(t, "Month", formatFieldName("month"))
}

func TestMapValidationError(t *testing.T) {
	valid := usagePayload{Month: "March", Year: 2025}

	tests := []struct {
		name    string
		mutate  func(p *usagePayload)
		message string
	}{
		{"required", func(p *usagePayload) { p.Month = "" }, "Month is required"},
		{"gte", func(p *usagePayload) { p.Year = 1999 }, "Year must be at least 2000"},
		{"oneof", func(p *usagePayload) { p.Format = "csv" }, "Format must be one of: pdf, xlsx"},
		{"email", func(p *usagePayload) { p.Email = "nope" }, "Personal Email must be a valid email address"},
		{"uuid", func(p *usagePayload) { p.EmployeeID = "42" }, "Employee Id must be a valid id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)

			err := MapValidationError(validate(t, p))

			var appErr *AppError
			assert.True(t, errors.As(err, &appErr))
			assert.Equal(t, CodeInvalidInput, appErr.Code)
			assert.Equal(t, tt.message, appErr.Message)
		})
	}

	t.Run("non validation error", func(t *testing.T) {
		err := MapValidationError(errors.New("unexpected EOF"))
		assert.ErrorIs(t, err, Validation("Invalid input"))
	})
}
