package payrollreport_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"go-ems/internal/employee"
	"go-ems/internal/payroll"
	"go-ems/internal/payrollreport"
	payrollreporterrors "go-ems/internal/payrollreport/errors"
	payrollreportMock "go-ems/internal/payrollreport/mock"
	"go-ems/internal/role"
	"go-ems/internal/shared/apperror"
	"go-ems/internal/shared/testdb"
	"go-ems/internal/storage"
	storageMock "go-ems/internal/storage/mock"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	admin = payrollreport.Viewer{Role: role.Admin}
	base  = time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
)

type fixture struct {
	db      *gorm.DB
	store   *storageMock.MockArtifactStore
	service payrollreport.Service
	asha    uuid.UUID
	vikram  uuid.UUID
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db := testdb.Open(t, &employee.Employee{}, &employee.EmployeeDetail{}, &payroll.SalaryRecord{})
	ctrl := gomock.NewController(t)

	f := &fixture{db: db, store: storageMock.NewMockArtifactStore(ctrl)}
	f.service = payrollreport.NewService(payrollreport.NewRepository(db), f.store, zap.NewNop())

	f.asha = f.seedEmployee(t, 1, "Asha", "Rao")
	f.vikram = f.seedEmployee(t, 2, "Vikram", "Shah")

	f.seedSalary(t, f.asha, "February", 2025, "30000", "28000", 0)
	f.seedSalary(t, f.asha, "March", 2025, "30000", "29000", 1)
	f.seedSalary(t, f.vikram, "March", 2025, "50000", "50000", 2)
	f.seedSalary(t, f.vikram, "March", 2024, "40000", "40000", 3)
	return f
}

func (f *fixture) seedEmployee(t *testing.T, n int, first, last string) uuid.UUID {
	t.Helper()
	empl := &employee.Employee{
		EmployeeCode: fmt.Sprintf("EMP%03d", n),
		Email:        strings.ToLower(first) + "@example.com",
		FirstName:    first,
		LastName:     last,
		PasswordHash: "hash",
	}
	require.NoError(t, employee.NewRepository(f.db).Create(context.Background(), empl))
	return empl.ID
}

func (f *fixture) seedSalary(t *testing.T, empID uuid.UUID, month string, year int, baseSalary, net string, order int) uuid.UUID {
	t.Helper()
	b := decimal.RequireFromString(baseSalary)
	n := decimal.RequireFromString(net)
	rec := &payroll.SalaryRecord{
		EmployeeID:     empID,
		Month:          month,
		Year:           year,
		BaseSalary:     b,
		LeaveDeduction: b.Sub(n),
		NetSalary:      n,
		GeneratedAt:    base.AddDate(0, 0, order),
		IsActive:       true,
		CreatedAt:      base.Add(time.Duration(order) * time.Hour),
	}
	inserted, err := payroll.NewRepository(f.db).InsertIfAbsent(context.Background(), rec)
	require.NoError(t, err)
	require.True(t, inserted)
	return rec.ID
}

func names(rows []payrollreport.SalaryResponse) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, fmt.Sprintf("%s/%s/%d", r.EmployeeFullName, r.Month, r.Year))
	}
	return out
}

func TestService_List(t *testing.T) {
	t.Run("admin sees every record newest first", func(t *testing.T) {
		f := setup(t)

		rows, total, err := f.service.List(context.Background(), admin, payrollreport.ListParams{})

		require.NoError(t, err)
		assert.EqualValues(t, 4, total)
		assert.Equal(t, []string{
			"Vikram Shah/March/2024",
			"Vikram Shah/March/2025",
			"Asha Rao/March/2025",
			"Asha Rao/February/2025",
		}, names(rows))
		assert.Equal(t, "EMP002", rows[0].EmployeeCode)
	})

	t.Run("employee sees only own records", func(t *testing.T) {
		f := setup(t)
		viewer := payrollreport.Viewer{EmployeeID: f.asha.String(), Role: role.Employee}

		rows, total, err := f.service.List(context.Background(), viewer, payrollreport.ListParams{})

		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		for _, r := range rows {
			assert.Equal(t, f.asha.String(), r.EmployeeID)
		}
	})

	t.Run("project manager without employee id is forbidden", func(t *testing.T) {
		f := setup(t)
		viewer := payrollreport.Viewer{Role: role.ProjectManager}

		_, _, err := f.service.List(context.Background(), viewer, payrollreport.ListParams{})

		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})

	t.Run("search matches full name and is counted", func(t *testing.T) {
		f := setup(t)

		rows, total, err := f.service.List(context.Background(), admin, payrollreport.ListParams{Search: "ha ra"})

		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		assert.Len(t, rows, 2)
		for _, r := range rows {
			assert.Equal(t, "Asha Rao", r.EmployeeFullName)
		}
	})

	t.Run("search wildcards match literally", func(t *testing.T) {
		f := setup(t)

		for _, search := range []string{"_", "%", "a%o"} {
			rows, total, err := f.service.List(context.Background(), admin, payrollreport.ListParams{Search: search})
			require.NoError(t, err)
			assert.Zero(t, total, search)
			assert.Empty(t, rows, search)
		}
	})

	t.Run("month filter is case-insensitive exact", func(t *testing.T) {
		f := setup(t)

		rows, total, err := f.service.List(context.Background(), admin, payrollreport.ListParams{Month: "mArCh"})

		require.NoError(t, err)
		assert.EqualValues(t, 3, total)
		assert.Len(t, rows, 3)

		_, total, err = f.service.List(context.Background(), admin, payrollreport.ListParams{Month: "Mar"})
		require.NoError(t, err)
		assert.Zero(t, total)
	})

	t.Run("sorts by net salary ascending and paginates", func(t *testing.T) {
		f := setup(t)

		rows, total, err := f.service.List(context.Background(), admin, payrollreport.ListParams{
			Sort:  "netSalary",
			Page:  2,
			Limit: 2,
		})

		require.NoError(t, err)
		assert.EqualValues(t, 4, total)
		require.Len(t, rows, 2)
		assert.True(t, decimal.NewFromInt(40000).Equal(rows[0].NetSalary))
		assert.True(t, decimal.NewFromInt(50000).Equal(rows[1].NetSalary))
	})

	t.Run("rejects unknown sort field", func(t *testing.T) {
		f := setup(t)

		_, _, err := f.service.List(context.Background(), admin, payrollreport.ListParams{Sort: "password_hash"})

		assert.ErrorIs(t, err, payrollreporterrors.ErrInvalidSort)
	})

	t.Run("soft-deleted records are hidden", func(t *testing.T) {
		f := setup(t)
		require.NoError(t, f.db.Model(&payroll.SalaryRecord{}).Where("year = ?", 2024).Update("is_deleted", true).Error)

		_, total, err := f.service.List(context.Background(), admin, payrollreport.ListParams{})

		require.NoError(t, err)
		assert.EqualValues(t, 3, total)
	})
}

func TestService_List_RepositoryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := payrollreportMock.NewMockRepository(ctrl)
	repo.EXPECT().
		FindAll(gomock.Any(), payrollreport.ListFilter{
			SortColumn: "s.created_at",
			Desc:       true,
			Page:       1,
			Limit:      100,
		}).
		Return(nil, int64(0), errors.New("db down"))

	svc := payrollreport.NewService(repo, nil, zap.NewNop())
	_, _, err := svc.List(context.Background(), admin, payrollreport.ListParams{Limit: 1000})

	assert.EqualError(t, err, "db down")
}

func TestService_GetByID(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	var rec payroll.SalaryRecord
	require.NoError(t, f.db.Where("employee_id = ? AND month = ?", f.vikram, "March").Where("year = ?", 2025).First(&rec).Error)

	t.Run("admin reads any record", func(t *testing.T) {
		got, err := f.service.GetByID(ctx, admin, rec.ID.String())

		require.NoError(t, err)
		assert.Equal(t, "Vikram Shah", got.EmployeeFullName)
		assert.Equal(t, "vikram@example.com", got.Email)
		assert.True(t, decimal.NewFromInt(50000).Equal(got.NetSalary))
	})

	t.Run("another employee's record is not found", func(t *testing.T) {
		viewer := payrollreport.Viewer{EmployeeID: f.asha.String(), Role: role.Employee}

		_, err := f.service.GetByID(ctx, viewer, rec.ID.String())

		assert.ErrorIs(t, err, payrollreporterrors.ErrSalaryNotFound)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := f.service.GetByID(ctx, admin, uuid.NewString())
		assert.ErrorIs(t, err, payrollreporterrors.ErrSalaryNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		_, err := f.service.GetByID(ctx, admin, "abc")
		assert.ErrorIs(t, err, payrollreporterrors.ErrInvalidSalaryID)
	})
}

func TestService_Export(t *testing.T) {
	ctx := context.Background()

	t.Run("pdf for a month is uploaded to the exports folder", func(t *testing.T) {
		f := setup(t)
		f.store.EXPECT().
			Upload(gomock.Any(), gomock.Any(), gomock.Any(), storage.FolderExports).
			DoAndReturn(func(_ context.Context, data []byte, name, _ string) (storage.Artifact, error) {
				assert.True(t, bytes.HasPrefix(data, []byte("%PDF-1.4")))
				assert.Contains(t, string(data), "Asha Rao")
				assert.Contains(t, string(data), "Vikram Shah")
				assert.True(t, strings.HasPrefix(name, "salary-report-march-"))
				assert.True(t, strings.HasSuffix(name, ".pdf"))
				return storage.Artifact{URL: "https://storage.googleapis.com/ems/emp/report.pdf", ObjectKey: "emp/report.pdf"}, nil
			})

		got, err := f.service.Export(ctx, payrollreport.ExportRequest{Month: "march"})

		require.NoError(t, err)
		assert.Equal(t, "https://storage.googleapis.com/ems/emp/report.pdf", got.URL)
		assert.Equal(t, payrollreport.FormatPDF, got.Format)
		assert.Equal(t, 3, got.Rows)
	})

	t.Run("xlsx for a year", func(t *testing.T) {
		f := setup(t)
		f.store.EXPECT().
			Upload(gomock.Any(), gomock.Any(), gomock.Any(), storage.FolderExports).
			DoAndReturn(func(_ context.Context, data []byte, name, _ string) (storage.Artifact, error) {
				assert.True(t, strings.HasPrefix(name, "salary-report-2024-"))
				book, err := excelize.OpenReader(bytes.NewReader(data))
				require.NoError(t, err)
				defer book.Close()
				rows, err := book.GetRows("Salaries")
				require.NoError(t, err)
				require.Len(t, rows, 4)
				assert.Equal(t, "Vikram Shah", rows[3][2])
				return storage.Artifact{URL: "https://example.test/r.xlsx"}, nil
			})

		got, err := f.service.Export(ctx, payrollreport.ExportRequest{Year: 2024, Format: "XLSX"})

		require.NoError(t, err)
		assert.Equal(t, payrollreport.FormatXLSX, got.Format)
		assert.Equal(t, 1, got.Rows)
	})

	t.Run("export outlives a cancelled caller", func(t *testing.T) {
		f := setup(t)
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		f.store.EXPECT().
			Upload(gomock.Any(), gomock.Any(), gomock.Any(), storage.FolderExports).
			DoAndReturn(func(uploadCtx context.Context, _ []byte, _, _ string) (storage.Artifact, error) {
				assert.NoError(t, uploadCtx.Err())
				return storage.Artifact{URL: "https://example.test/r.pdf"}, nil
			})

		got, err := f.service.Export(cancelled, payrollreport.ExportRequest{Month: "March"})

		require.NoError(t, err)
		assert.Equal(t, 3, got.Rows)
	})

	t.Run("no records", func(t *testing.T) {
		f := setup(t)

		_, err := f.service.Export(ctx, payrollreport.ExportRequest{Month: "July", Year: 2025})

		assert.True(t, apperror.Is(err, apperror.CodeNotFound))
		assert.EqualError(t, err, "No salary records found for July 2025")
	})

	t.Run("validation", func(t *testing.T) {
		f := setup(t)

		_, err := f.service.Export(ctx, payrollreport.ExportRequest{})
		assert.ErrorIs(t, err, payrollreporterrors.ErrPeriodRequired)

		_, err = f.service.Export(ctx, payrollreport.ExportRequest{Year: 12})
		assert.ErrorIs(t, err, payrollreporterrors.ErrInvalidYear)

		_, err = f.service.Export(ctx, payrollreport.ExportRequest{Month: "March", Format: "csv"})
		assert.ErrorIs(t, err, payrollreporterrors.ErrInvalidFormat)
	})

	t.Run("upload failure is returned", func(t *testing.T) {
		f := setup(t)
		uploadErr := apperror.Dependency(errors.New("bucket missing"), "Failed to upload file")
		f.store.EXPECT().
			Upload(gomock.Any(), gomock.Any(), gomock.Any(), storage.FolderExports).
			Return(storage.Artifact{}, uploadErr)

		_, err := f.service.Export(ctx, payrollreport.ExportRequest{Month: "February"})

		assert.True(t, apperror.Is(err, apperror.CodeDependencyFailed))
	})
}
