// Package postgres wires GORM to PostgreSQL for the request store and the driver directory.
//
// The request store relies on PostgreSQL evaluating a single UPDATE ... WHERE atomically:
// every lifecycle change is one such statement, so no explicit transactions are needed and
// any number of service replicas can share the database.
package postgres

import (
	"fmt"
	"log/slog"
	"time"

	"dispatch/internal/adapters/out/postgres/driverrepo"
	"dispatch/internal/adapters/out/postgres/requestrepo"

	"github.com/lib/pq"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ConnectionSettings is either a URL or discrete connection fields. URL wins when set.
type ConnectionSettings struct {
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN returns a key/value connection string. postgres:// URLs are converted with pq.ParseURL.
func (s ConnectionSettings) DSN() (string, error) {
	if s.URL != "" {
		dsn, err := pq.ParseURL(s.URL)
		if err != nil {
			return "", fmt.Errorf("parse database url: %w", err)
		}
		return dsn, nil
	}

	sslMode := s.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		s.Host, s.Port, s.User, s.Password, s.Name, sslMode), nil
}

// Open connects and routes GORM's own logging through logger at warn level and above.
func Open(settings ConnectionSettings, logger *slog.Logger) (*gorm.DB, error) {
	dsn, err := settings.DSN()
	if err != nil {
		return nil, err
	}

	gormLog := gormlogger.New(
		slog.NewLogLogger(logger.With("component", "gorm").Handler(), slog.LevelWarn),
		gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{Logger: gormLog})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the tables owned by this service.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&requestrepo.RequestDTO{}, &driverrepo.DriverDTO{})
}
