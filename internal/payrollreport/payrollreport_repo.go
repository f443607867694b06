package payrollreport

import (
	"context"
	"strings"

	"go-ems/internal/shared/scope"

	"gorm.io/gorm"
)

const salaryColumns = `s.id, s.employee_id, s.month, s.year, s.base_salary, s.unpaid_leaves,
	s.leave_deduction, s.net_salary, s.is_active, s.generated_at, s.created_at, s.updated_at,
	e.employee_code, e.email,
	TRIM(COALESCE(e.first_name, '') || ' ' || COALESCE(e.last_name, '')) AS employee_full_name`

//go:generate mockgen -source=payrollreport_repo.go -destination=mock/payrollreport_repo_mock.go -package=mock
type Repository interface {
	FindAll(ctx context.Context, filter ListFilter) ([]SalaryView, int64, error)
	FindByID(ctx context.Context, id, employeeID string) (*SalaryView, error)
	FindForExport(ctx context.Context, month string, year int) ([]SalaryView, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) base(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("salary_records AS s").
		Joins("LEFT JOIN employees AS e ON e.id = s.employee_id").
		Scopes(scope.NotDeleted("s"))
}

// FindAll counts with the same filters it lists with, search included.
func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]SalaryView, int64, error) {
	q := r.base(ctx)
	if filter.EmployeeID != "" {
		q = q.Where("s.employee_id = ?", filter.EmployeeID)
	}
	if filter.Month != "" {
		q = q.Where("LOWER(s.month) = ?", strings.ToLower(filter.Month))
	}
	if strings.TrimSpace(filter.Search) != "" {
		q = q.Where(`LOWER(COALESCE(e.first_name, '') || ' ' || COALESCE(e.last_name, '')) LIKE ? ESCAPE '\'`, scope.ContainsPattern(filter.Search))
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := filter.SortColumn + " ASC"
	if filter.Desc {
		order = filter.SortColumn + " DESC"
	}

	var views []SalaryView
	err := q.Select(salaryColumns).
		Order(order).
		Order("s.id ASC").
		Scopes(scope.Paginate(filter.Page, filter.Limit)).
		Scan(&views).Error
	return views, total, err
}

func (r *repository) FindByID(ctx context.Context, id, employeeID string) (*SalaryView, error) {
	q := r.base(ctx).Where("s.id = ?", id)
	if employeeID != "" {
		q = q.Where("s.employee_id = ?", employeeID)
	}

	var views []SalaryView
	if err := q.Select(salaryColumns).Limit(1).Scan(&views).Error; err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &views[0], nil
}

// FindForExport returns every live record of the period, zero values meaning "any".
func (r *repository) FindForExport(ctx context.Context, month string, year int) ([]SalaryView, error) {
	q := r.base(ctx)
	if month != "" {
		q = q.Where("LOWER(s.month) = ?", strings.ToLower(month))
	}
	if year != 0 {
		q = q.Where("s.year = ?", year)
	}

	var views []SalaryView
	err := q.Select(salaryColumns).
		Order("s.year ASC").
		Order("s.generated_at ASC").
		Order("employee_full_name ASC").
		Scan(&views).Error
	return views, err
}
