package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SalaryRecord is one employee's generated pay for a billing month. Only one
// live record exists per (employee, month, year).
type SalaryRecord struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	EmployeeID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_salary_employee_month,priority:1,where:is_deleted = false"`
	Month          string          `gorm:"type:varchar(12);not null;uniqueIndex:uq_salary_employee_month,priority:2"`
	Year           int             `gorm:"not null;uniqueIndex:uq_salary_employee_month,priority:3"`
	BaseSalary     decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	UnpaidLeaves   int             `gorm:"not null;default:0"`
	LeaveDeduction decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	NetSalary      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	GeneratedAt    time.Time       `gorm:"not null"`
	IsActive       bool            `gorm:"not null;default:true"`
	IsDeleted      bool            `gorm:"not null;default:false;index"`
	CreatedAt      time.Time       `gorm:"index"`
	UpdatedAt      time.Time
}

func (r *SalaryRecord) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
