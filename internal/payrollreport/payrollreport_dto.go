package payrollreport

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	FormatPDF  = "pdf"
	FormatXLSX = "xlsx"
)

// Viewer identifies the caller for record scoping.
type Viewer struct {
	EmployeeID string
	Role       string
}

type ListParams struct {
	Search string
	Month  string
	Sort   string
	Desc   bool
	Page   int
	Limit  int
}

// ListFilter is ListParams after scoping and sort resolution.
type ListFilter struct {
	EmployeeID string
	Search     string
	Month      string
	SortColumn string
	Desc       bool
	Page       int
	Limit      int
}

type ExportRequest struct {
	Month  string `json:"month"`
	Year   int    `json:"year"`
	Format string `json:"format"`
}

type ExportResponse struct {
	URL    string `json:"url"`
	Format string `json:"format"`
	Rows   int    `json:"rows"`
}

// SalaryView is a salary record joined with the employee it pays.
type SalaryView struct {
	ID               uuid.UUID
	EmployeeID       uuid.UUID
	EmployeeCode     string
	Email            string
	EmployeeFullName string
	Month            string
	Year             int
	BaseSalary       decimal.Decimal
	UnpaidLeaves     int
	LeaveDeduction   decimal.Decimal
	NetSalary        decimal.Decimal
	IsActive         bool
	GeneratedAt      time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type SalaryResponse struct {
	ID               string          `json:"id"`
	EmployeeID       string          `json:"employeeId"`
	EmployeeCode     string          `json:"employeeCode,omitempty"`
	Email            string          `json:"email,omitempty"`
	EmployeeFullName string          `json:"employeeFullName"`
	Month            string          `json:"month"`
	Year             int             `json:"year"`
	BaseSalary       decimal.Decimal `json:"baseSalary"`
	UnpaidLeaves     int             `json:"unpaidLeaves"`
	LeaveDeduction   decimal.Decimal `json:"leaveDeduction"`
	NetSalary        decimal.Decimal `json:"netSalary"`
	IsActive         bool            `json:"isActive"`
	GeneratedAt      time.Time       `json:"generatedAt"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}
