package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-ems/internal/app"
	"go-ems/internal/config"
	"go-ems/internal/payroll"
	"go-ems/internal/shared/apperror"
	"go-ems/internal/shared/logging"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger, err := logging.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	apperror.Init()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd(commands{
		generate: func(ctx context.Context, at time.Time) (payroll.Summary, error) {
			return app.RunPayroll(ctx, cfg, logger, at)
		},
		migrate: func(ctx context.Context) error {
			return app.RunMigrate(ctx, cfg, logger)
		},
	})
	if err := root.ExecuteContext(ctx); err != nil {
		logger.Error("payroll command failed", zap.Error(err))
		stop()
		os.Exit(1)
	}
}
