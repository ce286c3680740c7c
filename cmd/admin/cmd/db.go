package cmd

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/templui/contacts/internal/config"
	"github.com/templui/contacts/internal/db"
	"github.com/templui/contacts/internal/logger"
)

// open loads the configuration and connects to the database. migrate
// brings the schema up to date first.
func open(migrate bool) (*config.Config, *sqlx.DB, error) {
	cfg := config.Load()

	logger.Init(logger.Options{
		Development: cfg.IsDevelopment(),
		Environment: cfg.AppEnv,
	})

	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if migrate {
		err = db.RunMigrations(database.DB, cfg.DBDriver)
		if err != nil {
			_ = database.Close()
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	return cfg, database, nil
}
