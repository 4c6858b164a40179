package main

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/mytheresa/inventory-notes/app/obs"
	"github.com/mytheresa/inventory-notes/migrations"
	"github.com/mytheresa/inventory-notes/models"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the postgres tables for products and notes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.Storage.Driver != models.DriverPostgres {
				return fmt.Errorf("migrate needs STORAGE_DRIVER=postgres, got %q", cfg.Storage.Driver)
			}

			db, err := sql.Open("postgres", cfg.Storage.PostgresDSN())
			if err != nil {
				return err
			}
			defer db.Close()

			applied, err := migrations.Apply(cmd.Context(), db)
			if err != nil {
				return err
			}
			for _, name := range applied {
				obs.Logger.Info("migration_applied", "file", name)
			}
			return nil
		},
	}
}
