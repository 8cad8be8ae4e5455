package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edgard/charsheet/internal/config"
	"github.com/edgard/charsheet/internal/database"
	"github.com/edgard/charsheet/internal/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations and exit",
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load configuration from %s: %w", configPath, err)
		}

		logger.NewLogger(cfg.Logger.Level, cfg.Logger.JSON)

		db, err := database.NewDB(cfg.Database.Path)
		if err != nil {
			return fmt.Errorf("failed to migrate database %s: %w", cfg.Database.Path, err)
		}
		database.CloseDB(db)
		return nil
	},
}
