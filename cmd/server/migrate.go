package main

import (
	"github.com/Basith5/blog-page-api/internal/config"
	"github.com/Basith5/blog-page-api/internal/db"
	"github.com/Basith5/blog-page-api/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the page table and exit",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
		if err != nil {
			return err
		}
		defer logger.Sync()

		gdb, err := db.Open(cfg.Database, logger)
		if err != nil {
			logger.Error("Failed to open database", zap.Error(err))
			return err
		}
		defer func() {
			if err := db.Close(gdb); err != nil {
				logger.Error("Failed to close database", zap.Error(err))
			}
		}()

		if err := db.Migrate(gdb); err != nil {
			logger.Error("Failed to migrate database", zap.Error(err))
			return err
		}

		logger.Info("Migration finished", zap.String("driver", cfg.Database.Driver))
		cmd.Printf("page table is up to date (%s)\n", cfg.Database.Driver)
		return nil
	},
}
