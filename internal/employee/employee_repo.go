package employee

import (
	"context"
	"errors"
	"strings"

	"go-ems/internal/role"
	"go-ems/internal/shared/scope"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, empl *Employee) error
	CreateDetail(ctx context.Context, detail *EmployeeDetail) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	FindLastCode(ctx context.Context) (string, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	FindAll(ctx context.Context, params ListParams) ([]ListRow, int64, error)
	FindActivePage(ctx context.Context, offset, limit int) ([]Employee, error)
	Update(ctx context.Context, empl *Employee) error
	SaveDetail(ctx context.Context, detail *EmployeeDetail) error
	SoftDelete(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(empl).Error
}

func (r *repository) CreateDetail(ctx context.Context, detail *EmployeeDetail) error {
	return r.db.WithContext(ctx).Create(detail).Error
}

// ExistsByEmail includes soft-deleted employees; an email is never reissued.
func (r *repository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&count).Error
	return count > 0, err
}

// FindLastCode returns the code of the most recently created employee, or "".
func (r *repository) FindLastCode(ctx context.Context) (string, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		Select("employee_code").
		Order("created_at DESC").
		Order("employee_code DESC").
		Take(&empl).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	return empl.EmployeeCode, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		Scopes(scope.NotDeleted("")).
		Preload("Detail").
		First(&empl, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

const listColumns = `e.id, e.employee_code, e.email, e.first_name, e.last_name, e.role_id,
	r.role AS role_name, e.image_url, e.joining_date, e.is_active, e.created_at,
	lb.leave AS total_leave,
	CASE WHEN lb.id IS NULL THEN NULL ELSE COALESCE(used.used_leave, 0) END AS used_leave`

// usedLeaveByLedger sums paid and unpaid usage over every month of a ledger.
const usedLeaveByLedger = `LEFT JOIN (
	SELECT leave_balance_id, SUM(paid_leave_used + unpaid_leave_used) AS used_leave
	FROM leave_history_entries
	GROUP BY leave_balance_id
) AS used ON used.leave_balance_id = lb.id`

// FindAll lists employees with role name and leave totals. Administrators are
// never listed; the count uses the same filters as the page.
func (r *repository) FindAll(ctx context.Context, params ListParams) ([]ListRow, int64, error) {
	active := true
	if params.IsActive != nil {
		active = *params.IsActive
	}

	q := r.db.WithContext(ctx).
		Table("employees AS e").
		Joins("LEFT JOIN roles AS r ON r.id = e.role_id").
		Joins("LEFT JOIN leave_balances AS lb ON lb.employee_id = e.id AND lb.is_deleted = ?", false).
		Joins(usedLeaveByLedger).
		Scopes(scope.NotDeleted("e")).
		Where("e.is_active = ?", active).
		Where("(r.role IS NULL OR r.role <> ?)", role.Admin)

	roleID, err := uuid.Parse(strings.TrimSpace(params.RoleID))
	hasRole := err == nil
	switch {
	case hasRole:
		q = q.Where("e.role_id = ?", roleID)
	case params.Unpaginated:
		q = q.Where("r.role = ?", role.ProjectManager)
	}

	if strings.TrimSpace(params.Search) != "" {
		like := scope.ContainsPattern(params.Search)
		q = q.Where(
			`(LOWER(e.first_name || ' ' || e.last_name) LIKE ? ESCAPE '\' OR LOWER(e.email) LIKE ? ESCAPE '\' OR LOWER(e.employee_code) LIKE ? ESCAPE '\')`,
			like, like, like,
		)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := q.Select(listColumns).Order("e.created_at DESC").Order("e.id ASC")
	if !params.Unpaginated {
		page = page.Scopes(scope.Paginate(params.Page, params.Limit))
	}

	var rows []ListRow
	err = page.Scan(&rows).Error
	return rows, total, err
}

// FindActivePage pages through non-deleted employees, oldest first, with details.
func (r *repository) FindActivePage(ctx context.Context, offset, limit int) ([]Employee, error) {
	var empls []Employee
	err := r.db.WithContext(ctx).
		Scopes(scope.NotDeleted("")).
		Preload("Detail").
		Order("created_at ASC").
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&empls).Error
	return empls, err
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(empl).Error
}

func (r *repository) SaveDetail(ctx context.Context, detail *EmployeeDetail) error {
	return r.db.WithContext(ctx).Save(detail).Error
}

// SoftDelete flags the employee and its detail; rows are never removed.
func (r *repository) SoftDelete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("id = ?", id).
		Scopes(scope.NotDeleted("")).
		Update("is_deleted", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return r.db.WithContext(ctx).
		Model(&EmployeeDetail{}).
		Where("employee_id = ?", id).
		Update("is_deleted", true).Error
}
