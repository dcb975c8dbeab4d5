package migrate

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func TestRunMigrations_SQLite(t *testing.T) {
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "migrate.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, RunMigrations(db, "sqlite"))

	version, dirty, err := GetMigrationVersion(db, "sqlite")
	require.NoError(t, err)
	assert.Equal(t, uint(2), version)
	assert.False(t, dirty)

	for _, table := range []string{"communities", "collections", "handles"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table,
		).Scan(&name)
		require.NoError(t, err, table)
	}

	// Running again is a no-op.
	require.NoError(t, RunMigrations(db, "sqlite"))
}

func TestRunMigrations_UnsupportedDriver(t *testing.T) {
	err := RunMigrations(nil, "mysql")
	assert.ErrorContains(t, err, "unsupported database driver")
}
