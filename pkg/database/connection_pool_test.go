package database

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestConnectSQLiteDefaults tests that sqlite connections get a single
// connection pool.
func TestConnectSQLiteDefaults(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Path: ":memory:"}, nil)
	require.NoError(t, err)

	stats, err := GetPoolStats(db)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.MaxOpenConnections, "sqlite should use a single connection")
}

// TestConnectCustomPool tests that custom connection pool settings are respected.
func TestConnectCustomPool(t *testing.T) {
	db, err := Connect(Config{
		Driver:       DriverSQLite,
		Path:         ":memory:",
		MaxOpenConns: 4,
		MaxIdleConns: 2,
	}, hclog.NewNullLogger())
	require.NoError(t, err)

	stats, err := GetPoolStats(db)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.MaxOpenConnections)
	assert.Equal(t, stats.OpenConnections, stats.InUse+stats.Idle, "open = in-use + idle")
}

func TestConnectErrors(t *testing.T) {
	t.Run("unsupported driver", func(t *testing.T) {
		_, err := Connect(Config{Driver: "oracle"}, nil)
		assert.ErrorContains(t, err, "unsupported database driver")
	})

	t.Run("sqlite without path", func(t *testing.T) {
		_, err := Connect(Config{Driver: DriverSQLite}, nil)
		assert.Error(t, err)
	})
}

func TestConfigDSN(t *testing.T) {
	cfg := Config{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "postgres",
		DBName:   "hermes_oai",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=postgres dbname=hermes_oai sslmode=disable",
		cfg.DSN())

	cfg.SSLMode = "require"
	assert.Contains(t, cfg.DSN(), "sslmode=require")
}

// TestConnectionPoolUnderLoad tests connection pool behavior under concurrent load.
func TestConnectionPoolUnderLoad(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping load test in short mode")
	}

	db, err := Connect(Config{Driver: DriverSQLite, Path: ":memory:"}, nil)
	require.NoError(t, err)

	const numQueries = 20
	done := make(chan bool, numQueries)

	for i := 0; i < numQueries; i++ {
		go func(id int) {
			var count int64
			err := db.Raw("SELECT COUNT(*) FROM sqlite_master").Scan(&count).Error
			if err != nil {
				t.Errorf("query %d failed: %v", id, err)
			}
			done <- true
		}(i)
	}

	for i := 0; i < numQueries; i++ {
		<-done
	}

	poolStats, err := GetPoolStats(db)
	require.NoError(t, err)
	assert.LessOrEqual(t, poolStats.OpenConnections, 1, "should not exceed max open connections")
	assert.GreaterOrEqual(t, poolStats.WaitCount, int64(0), "wait count should be non-negative")
}

func TestGormLogger(t *testing.T) {
	var buf bytes.Buffer
	log := hclog.New(&hclog.LoggerOptions{
		Output: &buf,
		Level:  hclog.Trace,
	})
	query := func() (string, int64) { return "SELECT 1", 1 }

	t.Run("errors are logged", func(t *testing.T) {
		buf.Reset()
		l := NewGormLogger(log, 0)
		l.Trace(context.Background(), time.Now(), query, errors.New("boom"))
		assert.Contains(t, buf.String(), "database query failed")
	})

	t.Run("record not found is not an error", func(t *testing.T) {
		buf.Reset()
		l := NewGormLogger(log, 0)
		l.Trace(context.Background(), time.Now(), query, gorm.ErrRecordNotFound)
		assert.NotContains(t, buf.String(), "database query failed")
	})

	t.Run("slow queries are warnings", func(t *testing.T) {
		buf.Reset()
		l := NewGormLogger(log, time.Millisecond)
		l.Trace(context.Background(), time.Now().Add(-time.Second), query, nil)
		assert.Contains(t, buf.String(), "slow database query")
	})

	t.Run("silent mode", func(t *testing.T) {
		buf.Reset()
		l := NewGormLogger(log, 0).LogMode(logger.Silent)
		l.Trace(context.Background(), time.Now(), query, errors.New("boom"))
		assert.Empty(t, buf.String())
	})

	t.Run("info mode logs queries at debug", func(t *testing.T) {
		buf.Reset()
		l := NewGormLogger(log, 0).LogMode(logger.Info)
		l.Trace(context.Background(), time.Now(), query, nil)
		assert.Contains(t, buf.String(), "database query")
	})
}
