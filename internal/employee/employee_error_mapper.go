package employee

import (
	"errors"

	employeeerrors "go-ems/internal/employee/errors"
	"go-ems/internal/shared/dberr"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	switch {
	case dberr.IsUniqueViolation(err, "uq_employee_email", "employees.email"):
		return employeeerrors.ErrEmployeeAlreadyExists
	case dberr.IsUniqueViolation(err, "uq_employee_code", "employees.employee_code"):
		return employeeerrors.ErrEmployeeCodeAlreadyExists
	case dberr.IsUniqueViolation(err, "uq_employee_detail_employee", "employee_details.employee_id"):
		return employeeerrors.ErrDetailAlreadyExists
	}

	return err
}

// MapRepositoryError exposes the mapping to packages that write employees
// through this repository.
func MapRepositoryError(err error) error {
	return mapRepositoryError(err)
}
