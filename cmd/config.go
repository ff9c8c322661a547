package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"dispatch/internal/adapters/out/postgres"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Store selects the request store: postgres, or memory for a single process.
	Store        string        `env:"STORE" envDefault:"postgres"`
	StoreTimeout time.Duration `env:"STORE_TIMEOUT" envDefault:"2s"`
	DatabaseURL  string        `env:"DATABASE_URL"`
	DBHost       string        `env:"DB_HOST" envDefault:"localhost"`
	DBPort       string        `env:"DB_PORT" envDefault:"5432"`
	DBUser       string        `env:"DB_USER"`
	DBPassword   string        `env:"DB_PASSWORD"`
	DBName       string        `env:"DB_NAME"`
	DBSslMode    string        `env:"DB_SSLMODE" envDefault:"disable"`

	RequestTTL      time.Duration `env:"REQUEST_TTL" envDefault:"15m"`
	ExpiryInterval  time.Duration `env:"EXPIRY_INTERVAL" envDefault:"1m"`
	ExpiryBatchSize int           `env:"EXPIRY_BATCH_SIZE" envDefault:"100"`

	DirectoryRefresh time.Duration `env:"DIRECTORY_REFRESH" envDefault:"15s"`
	// DriversFile seeds the driver directory from a JSON file at startup.
	DriversFile string `env:"DRIVERS_FILE"`

	KafkaBrokers     []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaStatusTopic string   `env:"KAFKA_STATUS_TOPIC" envDefault:"delivery-request-status"`
}

// LoadConfig reads configuration in order: .env (if present), environment, then flags.
func LoadConfig(args []string) (Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load(".env")

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	flags := pflag.NewFlagSet("dispatch", pflag.ContinueOnError)
	flags.StringVarP(&cfg.HTTPPort, "port", "p", cfg.HTTPPort, "port to listen on")
	flags.StringVar(&cfg.Store, "store", cfg.Store, "request store: postgres or memory")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	flags.StringVar(&cfg.DriversFile, "drivers", cfg.DriversFile, "JSON file seeding the driver directory")
	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errList []error
	if c.Store != StorePostgres && c.Store != StoreMemory {
		errList = append(errList, fmt.Errorf("STORE must be %q or %q, got %q", StorePostgres, StoreMemory, c.Store))
	}
	if c.Store == StorePostgres && c.DatabaseURL == "" && (c.DBUser == "" || c.DBName == "") {
		errList = append(errList, errors.New("postgres store needs DATABASE_URL or DB_USER and DB_NAME"))
	}
	if _, err := c.SlogLevel(); err != nil {
		errList = append(errList, err)
	}
	for name, d := range map[string]time.Duration{
		"STORE_TIMEOUT":     c.StoreTimeout,
		"REQUEST_TTL":       c.RequestTTL,
		"EXPIRY_INTERVAL":   c.ExpiryInterval,
		"DIRECTORY_REFRESH": c.DirectoryRefresh,
	} {
		if d <= 0 {
			errList = append(errList, fmt.Errorf("%s must be positive, got %s", name, d))
		}
	}
	if c.ExpiryBatchSize <= 0 {
		errList = append(errList, fmt.Errorf("EXPIRY_BATCH_SIZE must be positive, got %d", c.ExpiryBatchSize))
	}
	return errors.Join(errList...)
}

func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return level, nil
}

func (c Config) ConnectionSettings() postgres.ConnectionSettings {
	return postgres.ConnectionSettings{
		URL:      c.DatabaseURL,
		Host:     c.DBHost,
		Port:     c.DBPort,
		User:     c.DBUser,
		Password: c.DBPassword,
		Name:     c.DBName,
		SSLMode:  c.DBSslMode,
	}
}

// KafkaEnabled reports whether status events go to Kafka instead of the no-op publisher.
func (c Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}
