package employee

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ListParams struct {
	Search string
	// RoleID narrows the list to one role; a malformed id is ignored.
	RoleID string
	// IsActive defaults to true when nil.
	IsActive *bool
	// Unpaginated returns every match. Without a role filter it lists
	// project managers only, for assignment pickers.
	Unpaginated bool
	Page        int
	Limit       int
}

// ListRow is one employee joined with its role name and leave totals.
// TotalLeave and UsedLeave stay nil when the employee has no ledger.
type ListRow struct {
	ID           uuid.UUID
	EmployeeCode string
	Email        string
	FirstName    string
	LastName     string
	RoleID       *uuid.UUID
	RoleName     string
	ImageURL     string
	JoiningDate  *time.Time
	IsActive     bool
	CreatedAt    time.Time
	TotalLeave   *int
	UsedLeave    *int
}

type LeaveSummary struct {
	Leave           int `json:"leave"`
	ExtraLeave      int `json:"extraLeave"`
	PaidLeaveUsed   int `json:"paidLeaveUsed"`
	UnpaidLeaveUsed int `json:"unpaidLeaveUsed"`
	Remaining       int `json:"remaining"`
}

type DetailResponse struct {
	PhoneNumber        string           `json:"phoneNumber,omitempty"`
	PersonalNumber     string           `json:"personalNumber,omitempty"`
	CurrentAddress     *Address         `json:"currentAddress,omitempty"`
	PermanentAddress   *Address         `json:"permanentAddress,omitempty"`
	DateOfBirth        *time.Time       `json:"dateOfBirth,omitempty"`
	Gender             string           `json:"gender,omitempty"`
	ManagerID          string           `json:"managerId,omitempty"`
	DesignationID      string           `json:"designationId,omitempty"`
	TeamID             string           `json:"teamId,omitempty"`
	DepartmentID       string           `json:"departmentId,omitempty"`
	PrimarySkills      []string         `json:"primarySkills,omitempty"`
	SecondarySkills    []string         `json:"secondarySkills,omitempty"`
	JoiningDate        *time.Time       `json:"joiningDate,omitempty"`
	ProbationDate      *time.Time       `json:"probationDate,omitempty"`
	PANNo              string           `json:"panNo,omitempty"`
	AadhaarNo          string           `json:"aadharNo,omitempty"`
	PFNo               string           `json:"pfNo,omitempty"`
	UANDetail          string           `json:"uanDetail,omitempty"`
	PreviousExperience string           `json:"previousExperience,omitempty"`
	CurrentSalary      *decimal.Decimal `json:"currentSalary,omitempty"`
	BankDetails        *BankDetails     `json:"bankDetails,omitempty"`
}

type EmployeeResponse struct {
	ID            string          `json:"id"`
	EmployeeCode  string          `json:"employeeId"`
	Email         string          `json:"email"`
	PersonalEmail string          `json:"personalEmail,omitempty"`
	FirstName     string          `json:"firstName"`
	LastName      string          `json:"lastName"`
	FullName      string          `json:"fullName"`
	RoleID        string          `json:"roleId,omitempty"`
	Role          string          `json:"role,omitempty"`
	ImageURL      string          `json:"image,omitempty"`
	JoiningDate   *time.Time      `json:"joiningDate,omitempty"`
	IsActive      bool            `json:"isActive"`
	CreatedAt     time.Time       `json:"createdAt"`
	Detail        *DetailResponse `json:"detail,omitempty"`
	Leave         *LeaveSummary   `json:"leave,omitempty"`
	TotalLeave    *int            `json:"totalLeave,omitempty"`
	UsedLeave     *int            `json:"usedLeave,omitempty"`
}

func mapToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:            e.ID.String(),
		EmployeeCode:  e.EmployeeCode,
		Email:         e.Email,
		PersonalEmail: e.PersonalEmail,
		FirstName:     e.FirstName,
		LastName:      e.LastName,
		FullName:      e.FullName(),
		ImageURL:      e.ImageURL,
		JoiningDate:   e.JoiningDate,
		IsActive:      e.IsActive,
		CreatedAt:     e.CreatedAt,
	}
	if e.RoleID != nil {
		resp.RoleID = e.RoleID.String()
	}
	if e.Detail != nil {
		resp.Detail = mapToDetailResponse(*e.Detail)
	}
	return resp
}

func mapToDetailResponse(d EmployeeDetail) *DetailResponse {
	return &DetailResponse{
		PhoneNumber:        d.PhoneNumber,
		PersonalNumber:     d.PersonalNumber,
		CurrentAddress:     d.CurrentAddress,
		PermanentAddress:   d.PermanentAddress,
		DateOfBirth:        d.DateOfBirth,
		Gender:             d.Gender,
		ManagerID:          d.ManagerID,
		DesignationID:      d.DesignationID,
		TeamID:             d.TeamID,
		DepartmentID:       d.DepartmentID,
		PrimarySkills:      d.PrimarySkills,
		SecondarySkills:    d.SecondarySkills,
		JoiningDate:        d.JoiningDate,
		ProbationDate:      d.ProbationDate,
		PANNo:              d.PANNo,
		AadhaarNo:          d.AadhaarNo,
		PFNo:               d.PFNo,
		UANDetail:          d.UANDetail,
		PreviousExperience: d.PreviousExperience,
		CurrentSalary:      d.CurrentSalary,
		BankDetails:        d.BankDetails,
	}
}

func mapToListResponse(rows []ListRow) []EmployeeResponse {
	resp := make([]EmployeeResponse, 0, len(rows))
	for _, r := range rows {
		item := EmployeeResponse{
			ID:           r.ID.String(),
			EmployeeCode: r.EmployeeCode,
			Email:        r.Email,
			FirstName:    r.FirstName,
			LastName:     r.LastName,
			FullName:     strings.TrimSpace(r.FirstName + " " + r.LastName),
			Role:         r.RoleName,
			ImageURL:     r.ImageURL,
			JoiningDate:  r.JoiningDate,
			IsActive:     r.IsActive,
			CreatedAt:    r.CreatedAt,
			TotalLeave:   r.TotalLeave,
			UsedLeave:    r.UsedLeave,
		}
		if r.RoleID != nil {
			item.RoleID = r.RoleID.String()
		}
		resp = append(resp, item)
	}
	return resp
}
