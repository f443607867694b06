package logging

import (
	"go-ems/internal/config"

	"go.uber.org/zap"
)

// New builds the process logger: JSON in production, console otherwise.
// The result is installed as the zap global.
func New(cfg *config.Config) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.IsProduction() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	logger = logger.With(zap.String("env", cfg.AppEnv))
	zap.ReplaceGlobals(logger)
	return logger, nil
}
