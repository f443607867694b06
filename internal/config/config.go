package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config is loaded once at process start and handed to every component that needs it.
type Config struct {
	AppEnv string `validate:"oneof=development production test"`
	Port   string `validate:"required,numeric"`

	JWTSecret string `validate:"required"`

	Database Database
	Redis    Redis
	Kafka    Kafka
	SMTP     SMTP
	Storage  Storage
	Payroll  Payroll
}

type Database struct {
	Host       string `validate:"required"`
	User       string `validate:"required"`
	Password   string
	Name       string `validate:"required"`
	Port       string `validate:"required,numeric"`
	SSLMode    string `validate:"oneof=disable require verify-ca verify-full"`
	MaxRetries int    `validate:"gte=1"`
}

type Redis struct {
	Addr string
}

type Kafka struct {
	Broker        string
	ConsumerGroup string
}

type SMTP struct {
	Host     string
	Port     int `validate:"gte=0,lte=65535"`
	Username string
	Password string
	From     string `validate:"omitempty,email"`
}

type Storage struct {
	Bucket          string
	CredentialsJSON string
	PublicBaseURL   string `validate:"omitempty,url"`
}

type Payroll struct {
	LockTTL  time.Duration `validate:"gt=0"`
	PageSize int           `validate:"gte=1,lte=1000"`
	// Location fixes the zone the billing month is read in; nil uses the
	// clock's own zone (the host's local time).
	Location *time.Location
}

// Load reads the optional .env file and the process environment into a Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:    getEnv("APP_ENV", "development"),
		Port:      getEnv("PORT", "3000"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		Database: Database{
			Host:       getEnv("DB_HOST", "localhost"),
			User:       getEnv("DB_USER", "postgres"),
			Password:   os.Getenv("DB_PASSWORD"),
			Name:       getEnv("DB_NAME", "ems"),
			Port:       getEnv("DB_PORT", "5432"),
			SSLMode:    getEnv("DB_SSLMODE", "disable"),
			MaxRetries: getEnvInt("DB_MAX_RETRIES", 5),
		},
		Redis: Redis{
			Addr: os.Getenv("REDIS_ADDR"),
		},
		Kafka: Kafka{
			Broker:        os.Getenv("KAFKA_BROKER"),
			ConsumerGroup: getEnv("KAFKA_CONSUMER_GROUP", "go-ems-leave-usage"),
		},
		SMTP: SMTP{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     getEnvInt("SMTP_PORT", 465),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     os.Getenv("SMTP_FROM"),
		},
		Storage: Storage{
			Bucket:          os.Getenv("GCS_BUCKET"),
			CredentialsJSON: os.Getenv("GCS_CREDENTIALS_JSON"),
			PublicBaseURL:   getEnv("GCS_PUBLIC_BASE_URL", "https://storage.googleapis.com"),
		},
		Payroll: Payroll{
			LockTTL:  getEnvDuration("PAYROLL_LOCK_TTL", 10*time.Minute),
			PageSize: getEnvInt("PAYROLL_PAGE_SIZE", 200),
		},
	}

	if tz := strings.TrimSpace(os.Getenv("PAYROLL_TIMEZONE")); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("invalid config PAYROLL_TIMEZONE: %w", err)
		}
		cfg.Payroll.Location = loc
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks struct constraints and reports the first failing field.
func Validate(cfg *Config) error {
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			e := errs[0]
			return fmt.Errorf("invalid config %s: failed on %q", e.Namespace(), e.Tag())
		}
		return err
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func (d Database) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
