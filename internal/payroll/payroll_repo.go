package payroll

import (
	"context"

	"go-ems/internal/shared/scope"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	ExistsForMonth(ctx context.Context, employeeID uuid.UUID, month string, year int) (bool, error)
	InsertIfAbsent(ctx context.Context, record *SalaryRecord) (bool, error)
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

func (r *repository) ExistsForMonth(ctx context.Context, employeeID uuid.UUID, month string, year int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&SalaryRecord{}).
		Scopes(scope.NotDeleted("")).
		Where("employee_id = ? AND month = ? AND year = ?", employeeID, month, year).
		Count(&count).Error
	return count > 0, err
}

// InsertIfAbsent relies on uq_salary_employee_month; false means a concurrent
// run already wrote the record.
func (r *repository) InsertIfAbsent(ctx context.Context, record *SalaryRecord) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(record)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
