package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLitePath(t *testing.T) {
	assert.Equal(t, "./data/contacts.db", sqlitePath("./data/contacts.db?_pragma=foreign_keys(1)"))
	assert.Equal(t, "/tmp/x.db", sqlitePath("file:/tmp/x.db?mode=rwc"))
	assert.Equal(t, "plain.db", sqlitePath("plain.db"))
}

func TestMigrations_UpAndDown(t *testing.T) {
	dir := t.TempDir()
	dsn := filepath.Join(dir, "nested", "contacts.db") + "?_pragma=foreign_keys(1)"

	database, err := Init(DriverSQLite, dsn)
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, RunMigrations(database.DB, DriverSQLite))

	version, err := Version(database.DB, DriverSQLite)
	require.NoError(t, err)
	assert.Equal(t, int64(3), version)

	_, err = database.Exec(`INSERT INTO categories (name) VALUES ($1)`, "Friends")
	require.NoError(t, err)

	require.NoError(t, MigrateDown(database.DB, DriverSQLite))

	version, err = Version(database.DB, DriverSQLite)
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)

	_, err = database.Exec(`SELECT id FROM contacts`)
	assert.Error(t, err, "contacts table is dropped by the last down migration")
}

func TestRunMigrations_UnknownDriver(t *testing.T) {
	err := RunMigrations(nil, "oracle")
	assert.ErrorContains(t, err, `no migrations for driver "oracle"`)
}

func TestInit_UnknownDriver(t *testing.T) {
	_, err := Init("oracle", "whatever")
	assert.ErrorContains(t, err, `unsupported database driver "oracle"`)
}
