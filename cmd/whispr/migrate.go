package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"whispr/internal/diary/db"
	"whispr/pkg/logger"
)

const (
	LogMigrationsDone = "diary migrations applied"
	ErrRunMigrations  = "failed to run migrations"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	RunE: func(*cobra.Command, []string) error {
		log := logger.Log(rootCtx)

		if err := db.Migrate(rootCtx, &appConfig.Postgres); err != nil {
			log.Error(rootCtx, ErrRunMigrations, zap.Error(err))
			return fmt.Errorf("%s: %w", ErrRunMigrations, err)
		}

		log.Info(rootCtx, LogMigrationsDone, zap.String("dir", appConfig.Postgres.MigrationsDir))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
