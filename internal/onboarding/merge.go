package onboarding

import (
	"strings"
	"time"

	"go-ems/internal/employee"
	"go-ems/internal/shared/optional"
)

// Sparse merges skip absent, null and blank values. Create steps use them.

func mergeSparse[T any](dst *T, f optional.Field[T]) {
	if v, ok := f.Sparse(); ok {
		*dst = v
	}
}

func mergeSparsePtr[T any](dst **T, f optional.Field[T]) {
	if v, ok := f.Sparse(); ok {
		*dst = &v
	}
}

func mergeSparseDate(dst **time.Time, f optional.Field[Date]) {
	if v, ok := f.Sparse(); ok {
		t := v.Time
		*dst = &t
	}
}

// Presence merges write whatever the caller sent; null clears. Update uses them.

func mergePresent[T any](dst *T, f optional.Field[T]) {
	if f.IsPresent() {
		*dst = f.Value()
	}
}

func mergePresentPtr[T any](dst **T, f optional.Field[T]) {
	if f.IsNull() {
		*dst = nil
		return
	}
	if v, ok := f.Presence(); ok {
		*dst = &v
	}
}

func mergePresentDate(dst **time.Time, f optional.Field[Date]) {
	if !f.IsPresent() {
		return
	}
	if f.IsNull() || f.Value().IsZero() {
		*dst = nil
		return
	}
	t := f.Value().Time
	*dst = &t
}

func mergeContactSparse(d *employee.EmployeeDetail, req StepRequest) {
	mergeSparse(&d.PhoneNumber, req.PhoneNumber)
	mergeSparse(&d.PersonalNumber, req.PersonalNumber)
	mergeSparsePtr(&d.CurrentAddress, req.CurrentAddress)
	mergeSparsePtr(&d.PermanentAddress, req.PermanentAddress)
	mergeSparseDate(&d.DateOfBirth, req.DateOfBirth)
	mergeSparse(&d.Gender, req.Gender)
}

func mergeContactPresent(d *employee.EmployeeDetail, req StepRequest) {
	mergePresent(&d.PhoneNumber, req.PhoneNumber)
	mergePresent(&d.PersonalNumber, req.PersonalNumber)
	mergePresentPtr(&d.CurrentAddress, req.CurrentAddress)
	mergePresentPtr(&d.PermanentAddress, req.PermanentAddress)
	mergePresentDate(&d.DateOfBirth, req.DateOfBirth)
	mergePresent(&d.Gender, req.Gender)
}

func mergeProfessionalSparse(d *employee.EmployeeDetail, req StepRequest) {
	mergeSparse(&d.ManagerID, req.ManagerID)
	mergeSparse(&d.DesignationID, req.DesignationID)
	mergeSparse(&d.TeamID, req.TeamID)
	mergeSparse(&d.DepartmentID, req.Department)
	mergeSparse(&d.PrimarySkills, req.PrimarySkills)
	mergeSparse(&d.SecondarySkills, req.SecondarySkills)
}

func mergeProfessionalPresent(d *employee.EmployeeDetail, req StepRequest) {
	mergePresent(&d.ManagerID, req.ManagerID)
	mergePresent(&d.DesignationID, req.DesignationID)
	mergePresent(&d.TeamID, req.TeamID)
	mergePresent(&d.DepartmentID, req.Department)
	mergePresent(&d.PrimarySkills, req.PrimarySkills)
	mergePresent(&d.SecondarySkills, req.SecondarySkills)
}

func mergeLegalSparse(d *employee.EmployeeDetail, req StepRequest) {
	mergeSparseDate(&d.JoiningDate, req.JoiningDate)
	mergeSparseDate(&d.ProbationDate, req.ProbationDate)
	mergeSparse(&d.PANNo, req.PANNo)
	mergeSparse(&d.AadhaarNo, req.AadhaarNo)
	mergeSparse(&d.PFNo, req.PFNo)
	mergeSparse(&d.UANDetail, req.UANDetail)
	mergeSparse(&d.PreviousExperience, req.PreviousExperience)
	mergeSparsePtr(&d.CurrentSalary, req.CurrentSalary)
}

func mergeLegalPresent(d *employee.EmployeeDetail, req StepRequest) {
	mergePresentDate(&d.JoiningDate, req.JoiningDate)
	mergePresentDate(&d.ProbationDate, req.ProbationDate)
	mergePresent(&d.PANNo, req.PANNo)
	mergePresent(&d.AadhaarNo, req.AadhaarNo)
	mergePresent(&d.PFNo, req.PFNo)
	mergePresent(&d.UANDetail, req.UANDetail)
	mergePresent(&d.PreviousExperience, req.PreviousExperience)
	mergePresentPtr(&d.CurrentSalary, req.CurrentSalary)
}

// mergeBankSparse keeps stored bank fields the request leaves blank.
func mergeBankSparse(current *employee.BankDetails, in employee.BankDetails) *employee.BankDetails {
	out := employee.BankDetails{}
	if current != nil {
		out = *current
	}
	set := func(dst *string, v string) {
		if strings.TrimSpace(v) != "" {
			*dst = v
		}
	}
	set(&out.AccountHolder, in.AccountHolder)
	set(&out.AccountNumber, in.AccountNumber)
	set(&out.BankName, in.BankName)
	set(&out.Branch, in.Branch)
	set(&out.IFSC, in.IFSC)
	return &out
}
