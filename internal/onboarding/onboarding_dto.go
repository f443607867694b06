package onboarding

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go-ems/internal/employee"
	"go-ems/internal/role"
	"go-ems/internal/shared/optional"

	"github.com/shopspring/decimal"
)

// StepNumber accepts 2 or "2".
type StepNumber int

func (n *StepNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}

	raw := string(data)
	if strings.HasPrefix(raw, `"`) {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
	}

	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		*n = 0
		return nil
	}
	*n = StepNumber(v)
	return nil
}

// Date accepts "2006-01-02" or RFC 3339; an empty string is the zero date.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("invalid date %q", s)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(d.Format("2006-01-02"))
}

// StepRequest carries the fields of every step; each step reads its own subset.
type StepRequest struct {
	Step       StepNumber `json:"step"`
	EmployeeID string     `json:"employeeId"`

	Email            optional.Field[string]           `json:"email"`
	PersonalEmail    optional.Field[string]           `json:"personalEmail"`
	FirstName        optional.Field[string]           `json:"firstName"`
	LastName         optional.Field[string]           `json:"lastName"`
	RoleID           optional.Field[string]           `json:"role"`
	Image            optional.Field[string]           `json:"image"`
	PhoneNumber      optional.Field[string]           `json:"phoneNumber"`
	PersonalNumber   optional.Field[string]           `json:"personalNumber"`
	CurrentAddress   optional.Field[employee.Address] `json:"currentAddress"`
	PermanentAddress optional.Field[employee.Address] `json:"permanentAddress"`
	DateOfBirth      optional.Field[Date]             `json:"dateOfBirth"`
	Gender           optional.Field[string]           `json:"gender"`

	ManagerID       optional.Field[string]   `json:"managerId"`
	DesignationID   optional.Field[string]   `json:"designationId"`
	TeamID          optional.Field[string]   `json:"teamId"`
	Department      optional.Field[string]   `json:"department"`
	PrimarySkills   optional.Field[[]string] `json:"primarySkills"`
	SecondarySkills optional.Field[[]string] `json:"secondarySkills"`

	JoiningDate        optional.Field[Date]            `json:"joiningDate"`
	ProbationDate      optional.Field[Date]            `json:"probationDate"`
	PANNo              optional.Field[string]          `json:"panNo"`
	AadhaarNo          optional.Field[string]          `json:"aadharNo"`
	PFNo               optional.Field[string]          `json:"pfNo"`
	UANDetail          optional.Field[string]          `json:"uanDetail"`
	PreviousExperience optional.Field[string]          `json:"previousExperience"`
	CurrentSalary      optional.Field[decimal.Decimal] `json:"currentSalary"`

	BankDetails optional.Field[employee.BankDetails] `json:"bankDetails"`
}

// File is an uploaded profile image.
type File struct {
	Name string
	Data []byte
}

type StepResult struct {
	Step         int                `json:"step"`
	EmployeeID   string             `json:"employeeId"`
	Email        string             `json:"email,omitempty"`
	EmployeeCode string             `json:"employeeCode,omitempty"`
	Role         *role.RoleResponse `json:"role,omitempty"`
}
