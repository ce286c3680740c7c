package db

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

const pingTimeout = 5 * time.Second

// pool holds connection limits per driver. SQLite allows one writer at a time.
type pool struct {
	maxOpen     int
	maxIdle     int
	maxLifetime time.Duration
}

var pools = map[string]pool{
	DriverSQLite:   {maxOpen: 4, maxIdle: 4, maxLifetime: 0},
	DriverPostgres: {maxOpen: 25, maxIdle: 5, maxLifetime: 5 * time.Minute},
}

// Init opens and pings the database named by driver. For SQLite the directory
// holding the database file is created first.
func Init(driver, connection string) (*sqlx.DB, error) {
	p, ok := pools[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	if driver == DriverSQLite {
		err := os.MkdirAll(filepath.Dir(sqlitePath(connection)), 0o755)
		if err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sqlx.Open(driver, connection)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(p.maxOpen)
	db.SetMaxIdleConns(p.maxIdle)
	db.SetConnMaxLifetime(p.maxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	err = db.PingContext(ctx)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	slog.Info("database connected", "driver", driver)
	return db, nil
}

// sqlitePath strips the "file:" scheme and query options from a SQLite DSN.
func sqlitePath(connection string) string {
	path := strings.TrimPrefix(connection, "file:")
	if i := strings.Index(path, "?"); i >= 0 {
		path = path[:i]
	}
	return path
}
