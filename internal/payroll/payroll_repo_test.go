package payroll_test

import (
	"context"
	"testing"
	"time"

	"go-ems/internal/payroll"
	"go-ems/internal/shared/testdb"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecord(employeeID uuid.UUID, month string, year int) *payroll.SalaryRecord {
	return &payroll.SalaryRecord{
		EmployeeID:     employeeID,
		Month:          month,
		Year:           year,
		BaseSalary:     decimal.NewFromInt(30000),
		LeaveDeduction: decimal.Zero,
		NetSalary:      decimal.NewFromInt(30000),
		GeneratedAt:    time.Now().UTC(),
		IsActive:       true,
	}
}

func TestRepository_InsertIfAbsent(t *testing.T) {
	db := testdb.Open(t, &payroll.SalaryRecord{})
	repo := payroll.NewRepository(db)
	ctx := context.Background()
	empID := uuid.New()

	inserted, err := repo.InsertIfAbsent(ctx, newRecord(empID, "March", 2025))
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = repo.InsertIfAbsent(ctx, newRecord(empID, "March", 2025))
	require.NoError(t, err)
	assert.False(t, inserted)

	inserted, err = repo.InsertIfAbsent(ctx, newRecord(empID, "March", 2026))
	require.NoError(t, err)
	assert.True(t, inserted, "same month of another year is a new record")

	var count int64
	require.NoError(t, db.Model(&payroll.SalaryRecord{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestRepository_ExistsForMonth(t *testing.T) {
	db := testdb.Open(t, &payroll.SalaryRecord{})
	repo := payroll.NewRepository(db)
	ctx := context.Background()
	empID := uuid.New()

	exists, err := repo.ExistsForMonth(ctx, empID, "March", 2025)
	require.NoError(t, err)
	assert.False(t, exists)

	rec := newRecord(empID, "March", 2025)
	_, err = repo.InsertIfAbsent(ctx, rec)
	require.NoError(t, err)

	exists, err = repo.ExistsForMonth(ctx, empID, "March", 2025)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsForMonth(ctx, empID, "April", 2025)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, db.Model(rec).Update("is_deleted", true).Error)
	exists, err = repo.ExistsForMonth(ctx, empID, "March", 2025)
	require.NoError(t, err)
	assert.False(t, exists, "deleted records free the month")

	inserted, err := repo.InsertIfAbsent(ctx, newRecord(empID, "March", 2025))
	require.NoError(t, err)
	assert.True(t, inserted)
}
