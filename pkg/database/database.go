package database

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	// DriverPostgres selects PostgreSQL.
	DriverPostgres = "postgres"

	// DriverSQLite selects an embedded SQLite database.
	DriverSQLite = "sqlite"
)

// Config holds configuration for database connection.
type Config struct {
	Driver string // "postgres" (default) or "sqlite"

	// PostgreSQL settings
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string

	// SQLite settings
	Path string // e.g., "hermes-oai.db" or ":memory:"

	// Connection pool settings
	MaxIdleConns    int           // Maximum idle connections in pool (default: 10)
	MaxOpenConns    int           // Maximum open connections (default: 25, 1 for sqlite)
	ConnMaxLifetime time.Duration // Maximum connection lifetime (default: 5 minutes)
	ConnMaxIdleTime time.Duration // Maximum connection idle time (default: 10 minutes)

	// SlowQueryThreshold is the duration after which queries are logged as
	// slow (default: 200ms).
	SlowQueryThreshold time.Duration
}

// DSN returns the PostgreSQL connection string.
func (cfg Config) DSN() string {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.DBName,
		sslMode,
	)
}

// Connect establishes a database connection using the provided
// configuration and applies connection pool settings.
func Connect(cfg Config, log hclog.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "", DriverPostgres:
		dialector = postgres.Open(cfg.DSN())
	case DriverSQLite:
		if cfg.Path == "" {
			return nil, fmt.Errorf("sqlite database path is required")
		}
		dialector = sqlite.Open(cfg.Path)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s (supported: postgres, sqlite)", cfg.Driver)
	}

	// Create GORM config with optional logger
	gormConfig := &gorm.Config{}
	if log != nil {
		gormConfig.Logger = NewGormLogger(log.Named("gorm"), cfg.SlowQueryThreshold)
	} else {
		gormConfig.Logger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	settings, err := configurePool(db, cfg)
	if err != nil {
		return nil, err
	}

	if log != nil {
		log.Info("connected to database",
			"driver", driverName(cfg.Driver),
			"host", cfg.Host,
			"database", cfg.DBName,
			"path", cfg.Path,
			"max_idle_conns", settings.maxIdleConns,
			"max_open_conns", settings.maxOpenConns,
			"conn_max_lifetime", settings.connMaxLifetime,
			"conn_max_idle_time", settings.connMaxIdleTime,
		)
	}

	return db, nil
}

// poolSettings are the effective pool settings after defaults.
type poolSettings struct {
	maxIdleConns    int
	maxOpenConns    int
	connMaxLifetime time.Duration
	connMaxIdleTime time.Duration
}

// configurePool applies connection pool settings with defaults.
func configurePool(db *gorm.DB, cfg Config) (poolSettings, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return poolSettings{}, fmt.Errorf("failed to get underlying SQL DB: %w", err)
	}

	s := poolSettings{
		maxIdleConns:    cfg.MaxIdleConns,
		maxOpenConns:    cfg.MaxOpenConns,
		connMaxLifetime: cfg.ConnMaxLifetime,
		connMaxIdleTime: cfg.ConnMaxIdleTime,
	}
	if s.maxIdleConns == 0 {
		s.maxIdleConns = 10
	}
	if s.maxOpenConns == 0 {
		s.maxOpenConns = 25
		// SQLite allows a single writer; an in-memory database also
		// disappears when its only connection closes.
		if cfg.Driver == DriverSQLite {
			s.maxOpenConns = 1
		}
	}
	// SQLite connections are kept open indefinitely unless configured.
	if s.connMaxLifetime == 0 && cfg.Driver != DriverSQLite {
		s.connMaxLifetime = 5 * time.Minute
	}
	if s.connMaxIdleTime == 0 && cfg.Driver != DriverSQLite {
		s.connMaxIdleTime = 10 * time.Minute
	}

	sqlDB.SetMaxIdleConns(s.maxIdleConns)
	sqlDB.SetMaxOpenConns(s.maxOpenConns)
	sqlDB.SetConnMaxLifetime(s.connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(s.connMaxIdleTime)

	return s, nil
}

func driverName(driver string) string {
	if driver == "" {
		return DriverPostgres
	}
	return driver
}

// PoolStats holds database connection pool statistics.
type PoolStats struct {
	MaxOpenConnections int           // Maximum number of open connections to the database
	OpenConnections    int           // The number of established connections both in use and idle
	InUse              int           // The number of connections currently in use
	Idle               int           // The number of idle connections
	WaitCount          int64         // The total number of connections waited for
	WaitDuration       time.Duration // The total time blocked waiting for a new connection
}

// GetPoolStats returns connection pool statistics from a GORM DB instance.
func GetPoolStats(db *gorm.DB) (*PoolStats, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying SQL DB: %w", err)
	}

	stats := sqlDB.Stats()
	return &PoolStats{
		MaxOpenConnections: stats.MaxOpenConnections,
		OpenConnections:    stats.OpenConnections,
		InUse:              stats.InUse,
		Idle:               stats.Idle,
		WaitCount:          stats.WaitCount,
		WaitDuration:       stats.WaitDuration,
	}, nil
}
