package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-ems/internal/config"
	"go-ems/internal/employee"
	"go-ems/internal/events"
	"go-ems/internal/leavebalance"
	leavebalanceerrors "go-ems/internal/leavebalance/errors"
	"go-ems/internal/messaging/kafka"
	payrollerrors "go-ems/internal/payroll/errors"
	"go-ems/internal/shared/contextutil"

	"github.com/bsm/redislock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Locker is satisfied by *redislock.Client.
type Locker interface {
	Obtain(ctx context.Context, key string, ttl time.Duration, opt *redislock.Options) (*redislock.Lock, error)
}

// Summary reports what one run did; it is informational only.
type Summary struct {
	Month     string
	Year      int
	Processed int
	Generated int
	Skipped   int
	Failed    int
	// Err is set when the run stopped before visiting every employee.
	Err error
}

type Generator struct {
	db        *gorm.DB
	employees employee.Repository
	ledger    leavebalance.Service
	repo      Repository
	outbox    kafka.OutboxRepository
	locker    Locker
	cfg       config.Payroll
	logger    *zap.Logger
	now       func() time.Time
}

// NewGenerator builds a generator; a nil locker runs without the distributed lock.
func NewGenerator(
	db *gorm.DB,
	employees employee.Repository,
	ledger leavebalance.Service,
	repo Repository,
	outbox kafka.OutboxRepository,
	locker Locker,
	cfg config.Payroll,
	logger ...*zap.Logger,
) *Generator {
	l := zap.L().Named("payroll.generator")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.generator")
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 200
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = 10 * time.Minute
	}
	return &Generator{
		db:        db,
		employees: employees,
		ledger:    ledger,
		repo:      repo,
		outbox:    outbox,
		locker:    locker,
		cfg:       cfg,
		logger:    l,
		now:       time.Now,
	}
}

// WithClock replaces the generator's time source.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

func LockKey(month string, year int) string {
	return fmt.Sprintf("payroll:generate:%d-%s", year, month)
}

// Run generates salary records for the current billing month. Per-employee
// failures are logged and do not stop the run.
func (g *Generator) Run(ctx context.Context) Summary {
	started := time.Now()
	defer func() { metricsRunDuration.Observe(time.Since(started).Seconds()) }()

	now := g.now()
	if g.cfg.Location != nil {
		now = now.In(g.cfg.Location)
	}
	// the billing month follows the wall clock; only the stored timestamp is UTC
	month, year := leavebalance.CurrentMonth(now)
	generatedAt := now.UTC()
	summary := Summary{Month: month, Year: year}

	log := contextutil.GetLogger(ctx, g.logger).With(
		zap.String("month", month),
		zap.Int("year", year),
	)

	if g.locker != nil {
		lock, err := g.locker.Obtain(ctx, LockKey(month, year), g.cfg.LockTTL, nil)
		if errors.Is(err, redislock.ErrNotObtained) {
			log.Warn("payroll generation already running, skipping")
			summary.Err = payrollerrors.ErrLockNotObtained
			return summary
		}
		if err != nil {
			log.Error("obtain payroll lock failed", zap.Error(err))
			summary.Err = payrollerrors.ErrLockNotObtained.WithCause(err)
			return summary
		}
		defer func() {
			if err := lock.Release(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
				log.Warn("release payroll lock failed", zap.Error(err))
			}
		}()
	}

	log.Info("payroll generation started")

	for offset := 0; ; offset += g.cfg.PageSize {
		if ctx.Err() != nil {
			log.Warn("payroll generation cancelled", zap.Error(ctx.Err()))
			summary.Err = ctx.Err()
			break
		}

		page, err := g.employees.FindActivePage(ctx, offset, g.cfg.PageSize)
		if err != nil {
			log.Error("list employees failed", zap.Int("offset", offset), zap.Error(err))
			summary.Err = payrollerrors.ErrListEmployees.WithCause(err)
			break
		}

		for _, empl := range page {
			summary.Processed++
			outcome, err := g.generateFor(ctx, empl, month, year, generatedAt)
			metricsRecordsTotal.WithLabelValues(outcome).Inc()

			switch outcome {
			case outcomeGenerated:
				summary.Generated++
			case outcomeFailed:
				summary.Failed++
				log.Error("generate salary failed",
					zap.String("employee_id", empl.ID.String()),
					zap.Error(err),
				)
			default:
				summary.Skipped++
				log.Info("salary skipped",
					zap.String("employee_id", empl.ID.String()),
					zap.String("reason", outcome),
				)
			}
		}

		if len(page) < g.cfg.PageSize {
			break
		}
	}

	log.Info("payroll generation finished",
		zap.Int("processed", summary.Processed),
		zap.Int("generated", summary.Generated),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed", summary.Failed),
	)
	return summary
}

func (g *Generator) generateFor(ctx context.Context, empl employee.Employee, month string, year int, generatedAt time.Time) (string, error) {
	if empl.Detail == nil || empl.Detail.CurrentSalary == nil {
		return outcomeNoSalary, nil
	}
	base := *empl.Detail.CurrentSalary

	exists, err := g.repo.ExistsForMonth(ctx, empl.ID, month, year)
	if err != nil {
		return outcomeFailed, fmt.Errorf("check existing salary: %w", err)
	}
	if exists {
		return outcomeExists, nil
	}

	usage, err := g.ledger.LookupMonthEntry(ctx, empl.ID.String(), month, year)
	if errors.Is(err, leavebalanceerrors.ErrLeaveBalanceNotFound) {
		return outcomeNoLedger, nil
	}
	if err != nil {
		return outcomeFailed, fmt.Errorf("lookup leave usage: %w", err)
	}

	breakdown := Compute(base, usage.UnpaidLeaveUsed)
	record := &SalaryRecord{
		EmployeeID:     empl.ID,
		Month:          month,
		Year:           year,
		BaseSalary:     base,
		UnpaidLeaves:   usage.UnpaidLeaveUsed,
		LeaveDeduction: breakdown.Deduction,
		NetSalary:      breakdown.Net,
		GeneratedAt:    generatedAt,
		IsActive:       true,
	}

	inserted := false
	err = g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := g.repo.WithTx(tx).InsertIfAbsent(ctx, record)
		if err != nil {
			return fmt.Errorf("insert salary record: %w", err)
		}
		if !ok {
			return nil
		}
		inserted = true

		event, err := kafka.NewOutboxEvent(
			"salary_record",
			record.ID.String(),
			events.SalaryGeneratedType,
			events.SalaryGeneratedTopic,
			contextutil.GetRequestID(ctx),
			events.SalaryGeneratedEvent{
				EventType:      events.SalaryGeneratedType,
				SalaryRecordID: record.ID.String(),
				EmployeeID:     empl.ID.String(),
				Month:          month,
				Year:           year,
				NetSalary:      breakdown.Net.StringFixed(2),
				OccurredAt:     generatedAt,
			},
		)
		if err != nil {
			return err
		}
		return g.outbox.WithTx(tx).Create(ctx, event)
	})
	if err != nil {
		return outcomeFailed, err
	}
	if !inserted {
		return outcomeRaceConflict, nil
	}
	return outcomeGenerated, nil
}
