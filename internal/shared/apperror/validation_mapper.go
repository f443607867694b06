package apperror

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// formatFieldName turns "current_salary" or "currentSalary" into "Current Salary".
func formatFieldName(s string) string {
	var b strings.Builder
	for i, r := range s {
		switch {
		case r == '_' || r == '-':
			b.WriteRune(' ')
		case i > 0 && r >= 'A' && r <= 'Z':
			b.WriteRune(' ')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return cases.Title(language.English).String(b.String())
}

// MapValidationError turns binding errors into a single user-facing AppError
// describing the first failing field.
func MapValidationError(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return Validation("Invalid input")
	}

	e := errs[0]
	// Field() already carries the json name, see Init().
	field := formatFieldName(e.Field())

	switch e.Tag() {
	case "required", "required_with", "required_without":
		return RequiredField(field)
	case "email":
		return Validation(fmt.Sprintf("%s must be a valid email address", field))
	case "uuid", "uuid4":
		return Validation(fmt.Sprintf("%s must be a valid id", field))
	case "oneof":
		return Validation(fmt.Sprintf("%s must be one of: %s", field, strings.Join(strings.Fields(e.Param()), ", ")))
	case "gte", "min":
		return Validation(fmt.Sprintf("%s must be at least %s", field, e.Param()))
	case "lte", "max":
		return Validation(fmt.Sprintf("%s must be at most %s", field, e.Param()))
	default:
		return InvalidField(field)
	}
}
