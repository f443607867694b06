package app

import (
	"context"

	"go-ems/internal/config"
	"go-ems/internal/employee"
	"go-ems/internal/leavebalance"
	"go-ems/internal/messaging/kafka"
	"go-ems/internal/notification"
	"go-ems/internal/onboarding"
	"go-ems/internal/payrollreport"
	"go-ems/internal/rbac"
	"go-ems/internal/rbac/infra"
	"go-ems/internal/role"
	"go-ems/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newMailer(cfg config.SMTP, logger *zap.Logger) (notification.Sender, error) {
	if cfg.Host == "" {
		logger.Warn("SMTP_HOST not set, welcome emails are logged only")
		return notification.NewNopSender(logger), nil
	}
	return notification.NewSMTPSender(cfg, logger)
}

func registerModules(
	ctx context.Context,
	router *gin.Engine,
	cfg *config.Config,
	db *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) (func() error, error) {
	// --- Infrastructure adapters ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return nil, err
	}
	rbacService, err := rbac.NewService(enforcer, logger)
	if err != nil {
		return nil, err
	}

	mailer, err := newMailer(cfg.SMTP, logger)
	if err != nil {
		return nil, err
	}

	store, closeStore, err := storage.NewGCSStore(ctx, cfg.Storage, logger)
	if err != nil {
		return nil, err
	}

	// --- Repositories ---
	roleRepo := role.NewRepository(db)
	employeeRepo := employee.NewRepository(db)
	ledgerRepo := leavebalance.NewRepository(db)
	reportRepo := payrollreport.NewRepository(db)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	roleService := role.NewService(roleRepo, rdb, logger)
	ledgerService := leavebalance.NewService(db, ledgerRepo, logger)
	employeeService := employee.NewService(db, employeeRepo, roleService, ledgerService, outboxRepo, logger)
	onboardingService := onboarding.NewService(db, employeeRepo, ledgerService, roleService, store, mailer, outboxRepo, logger)
	reportService := payrollreport.NewService(reportRepo, store, logger)

	// --- Handlers ---
	rbacHandler := rbac.NewHandler(rbacService, logger)
	roleHandler := role.NewHandler(roleService, logger)
	ledgerHandler := leavebalance.NewHandler(ledgerService, logger)
	employeeHandler := employee.NewHandler(employeeService, logger)
	onboardingHandler := onboarding.NewHandler(onboardingService, logger)
	reportHandler := payrollreport.NewHandler(reportService, logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		rbac.RegisterRoutes(api, rbacHandler, cfg, logger)
		role.RegisterRoutes(api, roleHandler, rbacService, cfg, logger)
		employee.RegisterRoutes(api, employeeHandler, rbacService, cfg, logger)
		onboarding.RegisterRoutes(api, onboardingHandler, rbacService, rdb, cfg, logger)
		leavebalance.RegisterRoutes(api, ledgerHandler, rbacService, rdb, cfg, logger)
		payrollreport.RegisterRoutes(api, reportHandler, rbacService, cfg, logger)
	}

	return closeStore, nil
}
