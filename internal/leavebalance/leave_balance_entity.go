package leavebalance

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LeaveBalance struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_leave_balance_employee"`
	Leave      int       `gorm:"not null;default:0"`
	ExtraLeave int       `gorm:"not null;default:0"`
	IsDeleted  bool      `gorm:"not null;default:false;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	History []LeaveHistoryEntry `gorm:"foreignKey:LeaveBalanceID"`
}

func (b *LeaveBalance) BeforeCreate(*gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// LeaveHistoryEntry holds usage for one calendar month; one row per
// (ledger, month, year).
type LeaveHistoryEntry struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	LeaveBalanceID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_leave_history_month,priority:1"`
	Month           string    `gorm:"type:varchar(12);not null;uniqueIndex:uq_leave_history_month,priority:2"`
	Year            int       `gorm:"not null;uniqueIndex:uq_leave_history_month,priority:3"`
	PaidLeaveUsed   int       `gorm:"not null"`
	UnpaidLeaveUsed int       `gorm:"not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (e *LeaveHistoryEntry) BeforeCreate(*gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// UsageReceipt remembers applied usage events so redelivered messages are not counted twice.
type UsageReceipt struct {
	EventID    string    `gorm:"type:varchar(64);primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt  time.Time
}

func (UsageReceipt) TableName() string {
	return "leave_usage_receipts"
}
