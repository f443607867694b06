package leavebalance

import (
	"context"
	"errors"

	"go-ems/internal/shared/scope"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=leave_balance_repo.go -destination=mock/leave_balance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateIfAbsent(ctx context.Context, balance *LeaveBalance) (bool, error)
	FindByEmployeeID(ctx context.Context, employeeID string) (*LeaveBalance, error)
	FindMonthEntry(ctx context.Context, balanceID uuid.UUID, month string, year int) (*LeaveHistoryEntry, error)
	AddMonthUsage(ctx context.Context, entry *LeaveHistoryEntry) error
	CreateReceipt(ctx context.Context, receipt *UsageReceipt) error
	SoftDeleteByEmployeeID(ctx context.Context, employeeID string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

// CreateIfAbsent relies on uq_leave_balance_employee; false means a ledger
// already existed and nothing was written.
func (r *repository) CreateIfAbsent(ctx context.Context, balance *LeaveBalance) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(balance)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) FindByEmployeeID(ctx context.Context, employeeID string) (*LeaveBalance, error) {
	var balance LeaveBalance
	err := r.db.WithContext(ctx).
		Scopes(scope.NotDeleted("")).
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("year ASC").Order("created_at ASC")
		}).
		First(&balance, "employee_id = ?", employeeID).Error
	if err != nil {
		return nil, err
	}
	return &balance, nil
}

// FindMonthEntry returns nil without error when the month has no entry.
func (r *repository) FindMonthEntry(ctx context.Context, balanceID uuid.UUID, month string, year int) (*LeaveHistoryEntry, error) {
	var entry LeaveHistoryEntry
	err := r.db.WithContext(ctx).
		Where("leave_balance_id = ?", balanceID).
		Where("month = ?", month).
		Where("year = ?", year).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// AddMonthUsage inserts the month or adds the counts onto the existing row.
func (r *repository) AddMonthUsage(ctx context.Context, entry *LeaveHistoryEntry) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "leave_balance_id"}, {Name: "month"}, {Name: "year"}},
			DoUpdates: clause.Assignments(map[string]any{
				"paid_leave_used":   gorm.Expr("leave_history_entries.paid_leave_used + excluded.paid_leave_used"),
				"unpaid_leave_used": gorm.Expr("leave_history_entries.unpaid_leave_used + excluded.unpaid_leave_used"),
				"updated_at":        gorm.Expr("excluded.updated_at"),
			}),
		}).
		Create(entry).Error
}

func (r *repository) CreateReceipt(ctx context.Context, receipt *UsageReceipt) error {
	return r.db.WithContext(ctx).Create(receipt).Error
}

func (r *repository) SoftDeleteByEmployeeID(ctx context.Context, employeeID string) error {
	return r.db.WithContext(ctx).
		Model(&LeaveBalance{}).
		Where("employee_id = ?", employeeID).
		Update("is_deleted", true).Error
}
