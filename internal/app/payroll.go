package app

import (
	"context"
	"time"

	"go-ems/internal/config"
	"go-ems/internal/employee"
	"go-ems/internal/leavebalance"
	"go-ems/internal/messaging/kafka"
	"go-ems/internal/payroll"
	"go-ems/internal/shared/connection"

	"github.com/bsm/redislock"
	"go.uber.org/zap"
)

// RunPayroll executes one monthly salary batch for the month containing at,
// or the current month when at is zero. Without Redis the run is unguarded
// and relies on the per-month unique index alone.
func RunPayroll(ctx context.Context, cfg *config.Config, logger *zap.Logger, at time.Time) (payroll.Summary, error) {
	log := logger.Named("app.payroll")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, logger)
	if err != nil {
		return payroll.Summary{}, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return payroll.Summary{}, err
	}
	defer sqlDB.Close()

	rdb, err := connection.ConnectRedisWithRetry(cfg.Redis.Addr, cfg.Database.MaxRetries, logger)
	if err != nil {
		return payroll.Summary{}, err
	}

	var locker payroll.Locker
	if rdb != nil {
		defer rdb.Close()
		locker = redislock.New(rdb)
	} else {
		log.Warn("payroll lock disabled, REDIS_ADDR not set")
	}

	generator := payroll.NewGenerator(
		gormDB,
		employee.NewRepository(gormDB),
		leavebalance.NewService(gormDB, leavebalance.NewRepository(gormDB), logger),
		payroll.NewRepository(gormDB),
		kafka.NewOutboxRepository(gormDB),
		locker,
		cfg.Payroll,
		logger,
	)

	if !at.IsZero() {
		generator.WithClock(func() time.Time { return at })
	}

	summary := generator.Run(ctx)
	return summary, summary.Err
}
