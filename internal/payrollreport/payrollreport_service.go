package payrollreport

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	payrollreporterrors "go-ems/internal/payrollreport/errors"
	"go-ems/internal/role"
	"go-ems/internal/shared/apperror"
	"go-ems/internal/shared/contextutil"
	"go-ems/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
	defaultSort  = "created_at"
)

var sortColumns = map[string]string{
	"created_at":         "s.created_at",
	"createdAt":          "s.created_at",
	"net_salary":         "s.net_salary",
	"netSalary":          "s.net_salary",
	"month":              "s.month",
	"employee_full_name": "employee_full_name",
	"employeeFullName":   "employee_full_name",
}

//go:generate mockgen -source=payrollreport_service.go -destination=mock/payrollreport_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, viewer Viewer, params ListParams) ([]SalaryResponse, int64, error)
	GetByID(ctx context.Context, viewer Viewer, id string) (SalaryResponse, error)
	Export(ctx context.Context, req ExportRequest) (ExportResponse, error)
}

type service struct {
	repo   Repository
	store  storage.ArtifactStore
	sf     *singleflight.Group
	logger *zap.Logger
	now    func() time.Time
}

func NewService(repo Repository, store storage.ArtifactStore, logger ...*zap.Logger) Service {
	l := zap.L().Named("payrollreport.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payrollreport.service")
	}
	return &service{
		repo:   repo,
		store:  store,
		sf:     &singleflight.Group{},
		logger: l,
		now:    time.Now,
	}
}

// scopedEmployee returns the employee id a viewer is restricted to, or "" for
// roles that see every record.
func scopedEmployee(viewer Viewer) (string, error) {
	if !role.SeesOnlyOwnRecords(viewer.Role) {
		return "", nil
	}
	if _, err := uuid.Parse(viewer.EmployeeID); err != nil {
		return "", apperror.ErrForbidden
	}
	return viewer.EmployeeID, nil
}

func (s *service) List(ctx context.Context, viewer Viewer, params ListParams) ([]SalaryResponse, int64, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	employeeID, err := scopedEmployee(viewer)
	if err != nil {
		return nil, 0, err
	}

	sortKey := strings.TrimSpace(params.Sort)
	if sortKey == "" {
		sortKey = defaultSort
		params.Desc = true
	}
	column, ok := sortColumns[sortKey]
	if !ok {
		return nil, 0, payrollreporterrors.ErrInvalidSort
	}

	if params.Page < 1 {
		params.Page = defaultPage
	}
	if params.Limit < 1 {
		params.Limit = defaultLimit
	}
	if params.Limit > maxLimit {
		params.Limit = maxLimit
	}

	views, total, err := s.repo.FindAll(ctx, ListFilter{
		EmployeeID: employeeID,
		Search:     strings.TrimSpace(params.Search),
		Month:      strings.TrimSpace(params.Month),
		SortColumn: column,
		Desc:       params.Desc,
		Page:       params.Page,
		Limit:      params.Limit,
	})
	if err != nil {
		log.Error("list salaries failed", zap.Error(err))
		return nil, 0, err
	}
	return mapToResponses(views), total, nil
}

func (s *service) GetByID(ctx context.Context, viewer Viewer, id string) (SalaryResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return SalaryResponse{}, payrollreporterrors.ErrInvalidSalaryID
	}
	employeeID, err := scopedEmployee(viewer)
	if err != nil {
		return SalaryResponse{}, err
	}

	view, err := s.repo.FindByID(ctx, id, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SalaryResponse{}, payrollreporterrors.ErrSalaryNotFound
		}
		contextutil.GetLogger(ctx, s.logger).Error("get salary failed", zap.String("salary_id", id), zap.Error(err))
		return SalaryResponse{}, err
	}
	return mapToResponse(*view), nil
}

// Export renders the period's records and uploads the artifact. Identical
// concurrent exports share one render and upload.
func (s *service) Export(ctx context.Context, req ExportRequest) (ExportResponse, error) {
	month := strings.TrimSpace(req.Month)
	if month == "" && req.Year == 0 {
		return ExportResponse{}, payrollreporterrors.ErrPeriodRequired
	}
	if req.Year != 0 && (req.Year < 1970 || req.Year > 9999) {
		return ExportResponse{}, payrollreporterrors.ErrInvalidYear
	}
	format := strings.ToLower(strings.TrimSpace(req.Format))
	if format == "" {
		format = FormatPDF
	}
	if format != FormatPDF && format != FormatXLSX {
		return ExportResponse{}, payrollreporterrors.ErrInvalidFormat
	}

	key := fmt.Sprintf("%s|%d|%s", strings.ToLower(month), req.Year, format)
	// the shared render must not die with whichever caller happened to start it
	detached := context.WithoutCancel(ctx)
	v, err, shared := s.sf.Do(key, func() (any, error) {
		return s.export(detached, month, req.Year, format)
	})
	if err != nil {
		return ExportResponse{}, err
	}
	if shared {
		contextutil.GetLogger(ctx, s.logger).Debug("salary export shared", zap.String("key", key))
	}
	return v.(ExportResponse), nil
}

func (s *service) export(ctx context.Context, month string, year int, format string) (ExportResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger).With(
		zap.String("month", month),
		zap.Int("year", year),
		zap.String("format", format),
	)

	views, err := s.repo.FindForExport(ctx, month, year)
	if err != nil {
		log.Error("load salaries for export failed", zap.Error(err))
		return ExportResponse{}, err
	}
	if len(views) == 0 {
		return ExportResponse{}, apperror.MissingResource(noRecordsMessage(month, year))
	}

	now := s.now()
	var data []byte
	switch format {
	case FormatXLSX:
		data, err = renderXLSX(views, month, year)
		if err != nil {
			log.Error("render xlsx failed", zap.Error(err))
			return ExportResponse{}, apperror.ErrInternal.WithCause(err)
		}
	default:
		data = renderPDF(views, month, year, now)
	}

	label := month
	if label == "" {
		label = fmt.Sprint(year)
	}
	name := fmt.Sprintf("salary-report-%s-%d.%s", label, now.UnixMilli(), format)

	artifact, err := s.store.Upload(ctx, data, name, storage.FolderExports)
	if err != nil {
		log.Error("upload salary report failed", zap.Error(err))
		return ExportResponse{}, err
	}

	log.Info("salary report exported", zap.Int("rows", len(views)), zap.String("object", artifact.ObjectKey))
	return ExportResponse{URL: artifact.URL, Format: format, Rows: len(views)}, nil
}

func noRecordsMessage(month string, year int) string {
	period := month
	if year != 0 {
		period = strings.TrimSpace(fmt.Sprintf("%s %d", month, year))
	}
	return "No salary records found for " + period
}
