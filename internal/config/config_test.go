package config_test

import (
	"testing"
	"time"

	"go-ems/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("APP_ENV", "")
		t.Setenv("PORT", "")
		t.Setenv("PAYROLL_LOCK_TTL", "")

		cfg, err := config.Load()

		assert.NoError(t, err)
		assert.Equal(t, "development", cfg.AppEnv)
		assert.Equal(t, "3000", cfg.Port)
		assert.Equal(t, 10*time.Minute, cfg.Payroll.LockTTL)
		assert.False(t, cfg.IsProduction())
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")

		_, err := config.Load()

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "JWTSecret")
	})

	t.Run("invalid app env", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("APP_ENV", "staging")

		_, err := config.Load()

		assert.Error(t, err)
	})

	t.Run("invalid duration falls back", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("APP_ENV", "production")
		t.Setenv("PAYROLL_LOCK_TTL", "soon")

		cfg, err := config.Load()

		assert.NoError(t, err)
		assert.True(t, cfg.IsProduction())
		assert.Equal(t, 10*time.Minute, cfg.Payroll.LockTTL)
	})
}

func TestLoad_PayrollTimezone(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("APP_ENV", "")

	t.Setenv("PAYROLL_TIMEZONE", "")
	cfg, err := config.Load()
	assert.NoError(t, err)
	assert.Nil(t, cfg.Payroll.Location)

	t.Setenv("PAYROLL_TIMEZONE", "UTC")
	cfg, err = config.Load()
	assert.NoError(t, err)
	assert.Equal(t, time.UTC, cfg.Payroll.Location)

	t.Setenv("PAYROLL_TIMEZONE", "Mars/Olympus")
	_, err = config.Load()
	assert.Error(t, err)
}

func TestDatabaseDSN(t *testing.T) {
	db := config.Database{Host: "db", User: "u", Password: "p", Name: "ems", Port: "5432", SSLMode: "disable"}
	assert.Equal(t, "host=db user=u password=p dbname=ems port=5432 sslmode=disable", db.DSN())
}
