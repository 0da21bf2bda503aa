package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// DatabaseConfig is the part of Config the migrate command needs.
type DatabaseConfig struct {
	DBHost     string `envconfig:"DB_HOST" required:"true"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" required:"true"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME" required:"true"`
	DBSslMode  string `envconfig:"DB_SSLMODE" default:"disable"`
}

type Config struct {
	DatabaseConfig

	HTTPPort       string `envconfig:"HTTP_PORT" default:"8080"`
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`
	MigrateOnStart bool   `envconfig:"MIGRATE_ON_START" default:"true"`

	// PrinterWebhookSecret left empty opens the printer endpoints to anyone.
	PrinterWebhookSecret string `envconfig:"PRINTER_WEBHOOK_SECRET"`
	AdminAPIKey          string `envconfig:"ADMIN_API_KEY" required:"true"`
	PublicBaseURL        string `envconfig:"PUBLIC_BASE_URL" required:"true"`

	PrinterEmail string `envconfig:"PRINTER_EMAIL" required:"true"`
	AdminEmail   string `envconfig:"ADMIN_EMAIL" required:"true"`
	MailFrom     string `envconfig:"MAIL_FROM" default:"orders@localhost"`
	// SMTPHost left empty logs notifications instead of sending them.
	SMTPHost     string `envconfig:"SMTP_HOST"`
	SMTPPort     int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUsername string `envconfig:"SMTP_USERNAME"`
	SMTPPassword string `envconfig:"SMTP_PASSWORD"`

	RedisURL string `envconfig:"REDIS_URL"`

	SettlementBatchEnabled  bool   `envconfig:"SETTLEMENT_BATCH_ENABLED" default:"false"`
	SettlementBatchSchedule string `envconfig:"SETTLEMENT_BATCH_SCHEDULE" default:"0 0 6 * * MON"`

	NotificationDispatchSchedule string        `envconfig:"NOTIFICATION_DISPATCH_SCHEDULE" default:"*/30 * * * * *"`
	NotificationMaxAttempts      int           `envconfig:"NOTIFICATION_MAX_ATTEMPTS" default:"8"`
	NotificationRetryInterval    time.Duration `envconfig:"NOTIFICATION_RETRY_INTERVAL" default:"1m"`
	NotificationMaxRetryInterval time.Duration `envconfig:"NOTIFICATION_MAX_RETRY_INTERVAL" default:"6h"`

	DefaultPrinterFeeCents int64 `envconfig:"DEFAULT_PRINTER_FEE_CENTS" default:"500"`
}

func loadEnvFiles(envFiles []string) error {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", file, err)
		}
	}
	return nil
}

// LoadConfig reads an optional .env file and then the environment.
func LoadConfig(envFiles ...string) (Config, error) {
	if err := loadEnvFiles(envFiles); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.DefaultPrinterFeeCents < 0 {
		return Config{}, errors.New("DEFAULT_PRINTER_FEE_CENTS must not be negative")
	}
	if cfg.NotificationMaxAttempts < 1 {
		return Config{}, errors.New("NOTIFICATION_MAX_ATTEMPTS must be at least 1")
	}
	return cfg, nil
}

// LoadDatabaseConfig reads only the database settings.
func LoadDatabaseConfig(envFiles ...string) (DatabaseConfig, error) {
	if err := loadEnvFiles(envFiles); err != nil {
		return DatabaseConfig{}, err
	}

	var cfg DatabaseConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return DatabaseConfig{}, fmt.Errorf("parsing database config: %w", err)
	}
	return cfg, nil
}

// DSN is the postgres connection URL.
func (c DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": []string{c.DBSslMode}}.Encode(),
	}
	return u.String()
}
