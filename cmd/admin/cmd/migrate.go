package cmd

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/templui/contacts/internal/db"
)

func MigrateCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	c.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, database, err := open(true)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()
			return printVersion(cmd, database.DB, cfg.DBDriver)
		},
	})

	c.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, database, err := open(false)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			err = db.MigrateDown(database.DB, cfg.DBDriver)
			if err != nil {
				return err
			}
			return printVersion(cmd, database.DB, cfg.DBDriver)
		},
	})

	c.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, database, err := open(false)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()
			return printVersion(cmd, database.DB, cfg.DBDriver)
		},
	})

	return c
}

func printVersion(cmd *cobra.Command, conn *sql.DB, driver string) error {
	version, err := db.Version(conn, driver)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", version)
	return nil
}
