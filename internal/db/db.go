package db

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/hashicorp/go-hclog"
	"gorm.io/gorm"

	"github.com/hashicorp-forge/hermes-oai/internal/config"
	"github.com/hashicorp-forge/hermes-oai/pkg/database"
	"github.com/hashicorp-forge/hermes-oai/pkg/models"
)

// connectFunc opens a database. Tests replace it.
var connectFunc = database.Connect

// NewDB connects to the configured database, retrying until the connect
// timeout elapses. SQLite databases are auto-migrated; PostgreSQL databases
// are expected to be migrated with hermes-migrate.
func NewDB(ctx context.Context, cfg *config.Database, log hclog.Logger) (*gorm.DB, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database configuration is missing")
	}
	if log == nil {
		log = hclog.NewNullLogger()
	}

	dbCfg := cfg.ToDatabaseConfig()

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 5 * time.Second
	b.MaxElapsedTime = cfg.ConnectTimeoutDuration()

	var db *gorm.DB
	operation := func() error {
		conn, err := connectFunc(dbCfg, log)
		if err != nil {
			return err
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to get underlying SQL DB: %w", err))
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			sqlDB.Close()
			return fmt.Errorf("failed to ping database: %w", err)
		}

		db = conn
		return nil
	}
	notify := func(err error, next time.Duration) {
		log.Warn("database not ready, retrying",
			"driver", dbCfg.Driver,
			"error", err,
			"retry_in", next,
		)
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(b, ctx), notify); err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if dbCfg.Driver == database.DriverSQLite {
		if err := db.AutoMigrate(models.ModelsToAutoMigrate()...); err != nil {
			return nil, fmt.Errorf("error migrating sqlite database: %w", err)
		}
	}

	return db, nil
}
