package employee

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Employee struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EmployeeCode  string     `gorm:"type:varchar(20);not null;uniqueIndex:uq_employee_code"`
	Email         string     `gorm:"type:varchar(255);not null;uniqueIndex:uq_employee_email"`
	PersonalEmail string     `gorm:"type:varchar(255)"`
	FirstName     string     `gorm:"type:varchar(100);not null"`
	LastName      string     `gorm:"type:varchar(100);not null"`
	RoleID        *uuid.UUID `gorm:"type:uuid;index"`
	PasswordHash  string     `gorm:"type:varchar(255);not null" json:"-"`
	ImageURL      string     `gorm:"type:text"`
	JoiningDate   *time.Time
	IsActive      bool      `gorm:"not null;default:true"`
	IsDeleted     bool      `gorm:"not null;default:false;index"`
	CreatedAt     time.Time `gorm:"index"`
	UpdatedAt     time.Time

	Detail *EmployeeDetail `gorm:"foreignKey:EmployeeID"`
}

func (e *Employee) BeforeCreate(*gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

type Address struct {
	Line1      string `json:"line1,omitempty"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	Country    string `json:"country,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
}

type BankDetails struct {
	AccountHolder string `json:"accountHolder,omitempty"`
	AccountNumber string `json:"accountNumber,omitempty"`
	BankName      string `json:"bankName,omitempty"`
	Branch        string `json:"branch,omitempty"`
	IFSC          string `json:"ifsc,omitempty"`
}

// EmployeeDetail is the profile filled progressively by onboarding steps.
type EmployeeDetail struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_employee_detail_employee"`
	PhoneNumber        string    `gorm:"type:varchar(30)"`
	PersonalNumber     string    `gorm:"type:varchar(30)"`
	CurrentAddress     *Address  `gorm:"type:jsonb;serializer:json"`
	PermanentAddress   *Address  `gorm:"type:jsonb;serializer:json"`
	DateOfBirth        *time.Time
	Gender             string   `gorm:"type:varchar(20)"`
	ManagerID          string   `gorm:"type:varchar(64)"`
	DesignationID      string   `gorm:"type:varchar(64)"`
	TeamID             string   `gorm:"type:varchar(64)"`
	DepartmentID       string   `gorm:"type:varchar(64)"`
	PrimarySkills      []string `gorm:"type:jsonb;serializer:json"`
	SecondarySkills    []string `gorm:"type:jsonb;serializer:json"`
	JoiningDate        *time.Time
	ProbationDate      *time.Time
	PANNo              string           `gorm:"column:pan_no;type:varchar(20)"`
	AadhaarNo          string           `gorm:"column:aadhaar_no;type:varchar(20)"`
	PFNo               string           `gorm:"column:pf_no;type:varchar(30)"`
	UANDetail          string           `gorm:"column:uan_detail;type:varchar(30)"`
	PreviousExperience string           `gorm:"type:text"`
	CurrentSalary      *decimal.Decimal `gorm:"type:numeric(14,2)"`
	BankDetails        *BankDetails     `gorm:"type:jsonb;serializer:json"`
	IsDeleted          bool             `gorm:"not null;default:false"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (d *EmployeeDetail) BeforeCreate(*gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
