package database

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"grota_financiamento/internal/infrastructure/logger"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var ErrEmptyDSN = errors.New("DATABASE_DSN is empty")

var kvPairRegex = regexp.MustCompile(`(?i)\b(host|user|password|dbname|port|sslmode)=`)

// NormalizeDSN trims quotes and whitespace from a postgres DSN. Key=value
// lists get sslmode=disable when they do not set it.
func NormalizeDSN(raw string) string {
	s := strings.Trim(strings.TrimSpace(raw), "\"'")
	lower := strings.ToLower(s)
	if s == "" || strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return s
	}
	if !kvPairRegex.MatchString(s) {
		return s
	}
	cleaned := strings.Join(strings.Fields(s), " ")
	if !strings.Contains(strings.ToLower(cleaned), "sslmode=") {
		cleaned += " sslmode=disable"
	}
	return cleaned
}

func dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "postgres":
		return postgres.Open(NormalizeDSN(dsn)), nil
	case "mysql":
		return mysql.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}
}

// OpenGorm connects to driver ("postgres", "mysql" or "sqlite") and installs
// the OpenTelemetry plugin. Duplicate-key errors are translated to
// gorm.ErrDuplicatedKey.
func OpenGorm(driver, dsn string) (*gorm.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, ErrEmptyDSN
	}
	d, err := dialector(driver, dsn)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(d, &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(logger.Get(), gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	if sqlDB, derr := db.DB(); derr == nil {
		if driver == "sqlite" {
			sqlDB.SetMaxOpenConns(1)
		} else {
			sqlDB.SetMaxOpenConns(50)
			sqlDB.SetMaxIdleConns(25)
			sqlDB.SetConnMaxLifetime(5 * time.Minute)
			sqlDB.SetConnMaxIdleTime(time.Minute)
		}
	}

	if pluginErr := db.Use(otelgorm.NewPlugin()); pluginErr != nil {
		logger.Get().WithError(pluginErr).Warn("[storage][sql] otelgorm plugin not installed")
	}
	logger.Get().WithField("driver", driver).Info("[storage][sql] connected")
	return db, nil
}
