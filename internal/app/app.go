package app

import (
	"context"
	"net/http"
	"time"

	"go-ems/internal/config"
	"go-ems/internal/employee"
	"go-ems/internal/leavebalance"
	"go-ems/internal/messaging/kafka"
	"go-ems/internal/middleware"
	"go-ems/internal/payroll"
	"go-ems/internal/role"
	"go-ems/internal/shared/connection"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// models lists every table owned by this service, in dependency order.
var models = []any{
	&role.Role{},
	&employee.Employee{},
	&employee.EmployeeDetail{},
	&leavebalance.LeaveBalance{},
	&leavebalance.LeaveHistoryEntry{},
	&leavebalance.UsageReceipt{},
	&payroll.SalaryRecord{},
	&kafka.OutboxEvent{},
}

// Migrate creates or updates the schema and seeds the fixed role set.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(models...); err != nil {
		return err
	}
	return role.NewRepository(db).SeedDefaults(ctx)
}

// BuildApp connects infrastructure, registers every module on router and
// returns a cleanup func that releases what it opened.
func BuildApp(router *gin.Engine, cfg *config.Config, logger *zap.Logger) (func(), error) {
	log := logger.Named("app")

	db, err := connection.ConnectGORMWithRetry(cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	log.Info("database connection established")

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	closers := []func() error{sqlDB.Close}
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				log.Warn("cleanup failed", zap.Error(err))
			}
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := Migrate(ctx, db); err != nil {
		cleanup()
		return nil, err
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.Redis.Addr, cfg.Database.MaxRetries, logger)
	if err != nil {
		cleanup()
		return nil, err
	}
	if rdb != nil {
		closers = append(closers, rdb.Close)
	}

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization", "Idempotency-Key", "X-Request-ID")
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Idempotent-Replayed"}

	router.Use(
		middleware.RequestID(),
		middleware.Recovery(logger),
		cors.New(corsConfig),
		middleware.RateLimitByIP(20, 40),
	)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	closeStore, err := registerModules(context.Background(), router, cfg, db, rdb, logger)
	if err != nil {
		cleanup()
		return nil, err
	}
	closers = append(closers, closeStore)

	return cleanup, nil
}

// RunMigrate applies the schema without starting the HTTP server.
func RunMigrate(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	db, err := connection.ConnectGORMWithRetry(cfg.Database, logger)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := Migrate(ctx, db); err != nil {
		return err
	}
	logger.Named("app").Info("schema migrated")
	return nil
}
