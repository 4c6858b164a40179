package main

import (
	"fmt"

	"github.com/mytheresa/inventory-notes/app/config"
	"github.com/mytheresa/inventory-notes/app/obs"
	"github.com/mytheresa/inventory-notes/models"
	"github.com/spf13/cobra"
)

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	files, err := cmd.Flags().GetStringSlice("env-file")
	if err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(files...)
	if err != nil {
		return config.Config{}, err
	}
	obs.InitLogger(cfg.LogLevel)
	return cfg, nil
}

// openTables connects the configured storage driver. The returned func
// releases the connection.
func openTables(cfg config.Storage) (models.Tables, func(), error) {
	if cfg.Driver == models.DriverMemory {
		obs.Logger.Warn("storage_in_memory", "detail", "data is lost on exit")
		return models.NewMemoryTables(), func() {}, nil
	}

	db, err := models.OpenDatabase(cfg.Driver, cfg.DSN())
	if err != nil {
		return models.Tables{}, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return models.Tables{}, nil, err
	}
	closeFn := func() {
		if err := sqlDB.Close(); err != nil {
			obs.Logger.Error("storage_close_failed", "error", err)
		}
	}

	// sqlite is for local runs; its schema is managed by gorm.
	if cfg.Driver == models.DriverSQLite {
		if err := models.AutoMigrateTables(db); err != nil {
			closeFn()
			return models.Tables{}, nil, fmt.Errorf("preparing sqlite schema: %w", err)
		}
	}

	obs.Logger.Info("storage_connected", "driver", cfg.Driver)
	return models.NewGormTables(db), closeFn, nil
}
