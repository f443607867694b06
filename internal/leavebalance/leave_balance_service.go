package leavebalance

import (
	"context"
	"errors"
	"time"

	leavebalanceerrors "go-ems/internal/leavebalance/errors"
	"go-ems/internal/shared/contextutil"
	"go-ems/internal/shared/dberr"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_balance_service.go -destination=mock/leave_balance_service_mock.go -package=mock
type Service interface {
	WithTx(tx *gorm.DB) Service
	Initialize(ctx context.Context, employeeID string, entitlement int) (bool, error)
	RecordMonthlyUsage(ctx context.Context, req RecordUsageRequest) (MonthUsage, error)
	LookupMonthEntry(ctx context.Context, employeeID, month string, year int) (MonthUsage, error)
	GetByEmployee(ctx context.Context, employeeID string) (LeaveBalanceResponse, error)
	SoftDelete(ctx context.Context, employeeID string) error
}

type service struct {
	db     *gorm.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leavebalance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavebalance.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

// WithTx binds the ledger to an outer transaction owned by the caller.
func (s *service) WithTx(tx *gorm.DB) Service {
	return &service{db: tx, repo: s.repo.WithTx(tx), logger: s.logger}
}

// Initialize creates the ledger unless one exists; an existing ledger keeps
// its entitlement and is not an error.
func (s *service) Initialize(ctx context.Context, employeeID string, entitlement int) (bool, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	empID, err := uuid.Parse(employeeID)
	if err != nil {
		return false, leavebalanceerrors.ErrInvalidEmployeeID
	}

	created, err := s.repo.CreateIfAbsent(ctx, &LeaveBalance{
		EmployeeID: empID,
		Leave:      entitlement,
	})
	if err != nil {
		log.Error("initialize leave balance failed", zap.String("employee_id", employeeID), zap.Error(err))
		return false, err
	}

	if created {
		log.Info("leave balance initialized",
			zap.String("employee_id", employeeID),
			zap.Int("entitlement", entitlement),
		)
	} else {
		log.Debug("leave balance already exists", zap.String("employee_id", employeeID))
	}
	return created, nil
}

func (s *service) RecordMonthlyUsage(ctx context.Context, req RecordUsageRequest) (MonthUsage, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	month, ok := ParseMonth(req.Month)
	if !ok {
		return MonthUsage{}, leavebalanceerrors.ErrInvalidMonth
	}
	if req.Year < 1970 || req.Year > 9999 {
		return MonthUsage{}, leavebalanceerrors.ErrInvalidYear
	}
	if req.PaidLeaveUsed < 0 || req.UnpaidLeaveUsed < 0 {
		return MonthUsage{}, leavebalanceerrors.ErrNegativeUsage
	}

	var result MonthUsage
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		balance, err := qtx.FindByEmployeeID(ctx, req.EmployeeID)
		if err != nil {
			return mapRepositoryError(err)
		}

		if req.EventID != "" {
			if err := qtx.CreateReceipt(ctx, &UsageReceipt{
				EventID:    req.EventID,
				EmployeeID: balance.EmployeeID,
			}); err != nil {
				return mapRepositoryError(err)
			}
		}

		if err := qtx.AddMonthUsage(ctx, &LeaveHistoryEntry{
			LeaveBalanceID:  balance.ID,
			Month:           month.String(),
			Year:            req.Year,
			PaidLeaveUsed:   req.PaidLeaveUsed,
			UnpaidLeaveUsed: req.UnpaidLeaveUsed,
		}); err != nil {
			return err
		}

		entry, err := qtx.FindMonthEntry(ctx, balance.ID, month.String(), req.Year)
		if err != nil {
			return err
		}
		if entry != nil {
			result = mapToMonthUsage(*entry)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, leavebalanceerrors.ErrDuplicateUsageEvent) {
			log.Error("record monthly usage failed",
				zap.String("employee_id", req.EmployeeID),
				zap.String("month", req.Month),
				zap.Int("year", req.Year),
				zap.Error(err),
			)
		}
		return MonthUsage{}, err
	}

	log.Info("monthly usage recorded",
		zap.String("employee_id", req.EmployeeID),
		zap.String("month", result.Month),
		zap.Int("year", result.Year),
		zap.Int("paid", result.PaidLeaveUsed),
		zap.Int("unpaid", result.UnpaidLeaveUsed),
	)
	return result, nil
}

// LookupMonthEntry reports zero usage when the month has no entry.
func (s *service) LookupMonthEntry(ctx context.Context, employeeID, month string, year int) (MonthUsage, error) {
	balance, err := s.repo.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		return MonthUsage{}, mapRepositoryError(err)
	}

	entry, err := s.repo.FindMonthEntry(ctx, balance.ID, month, year)
	if err != nil {
		return MonthUsage{}, err
	}
	if entry == nil {
		return MonthUsage{Month: month, Year: year}, nil
	}
	return mapToMonthUsage(*entry), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) (LeaveBalanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return LeaveBalanceResponse{}, leavebalanceerrors.ErrInvalidEmployeeID
	}

	balance, err := s.repo.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		return LeaveBalanceResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*balance), nil
}

func (s *service) SoftDelete(ctx context.Context, employeeID string) error {
	if err := s.repo.SoftDeleteByEmployeeID(ctx, employeeID); err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("soft delete leave balance failed",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// CurrentMonth returns the English month name and year of t.
func CurrentMonth(t time.Time) (string, int) {
	return t.Month().String(), t.Year()
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leavebalanceerrors.ErrLeaveBalanceNotFound
	}
	if dberr.IsUniqueViolation(err, "leave_usage_receipts_pkey", "leave_usage_receipts.event_id") {
		return leavebalanceerrors.ErrDuplicateUsageEvent
	}
	return err
}
