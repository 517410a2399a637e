package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"go-gin-gorm-todo/internal/app"
	"go-gin-gorm-todo/internal/core/database"
)

var migrateDown int

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or upgrade the schema",
	Long:  "postgres runs the embedded SQL migrations; other drivers use gorm AutoMigrate. --down N rolls back N versions (postgres only).",
	RunE: func(cmd *cobra.Command, _ []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		defer e.cleanup()

		if migrateDown > 0 {
			if e.cfg.DB.Driver != "postgres" {
				return errors.New("--down is only supported on postgres")
			}
			v, err := database.RollbackMigrations(e.cfg.DB.DSN, migrateDown)
			if err != nil {
				return err
			}
			e.log.Info("rollback done", zap.Uint("version", v))
			return nil
		}

		db, err := app.OpenDB(e.cfg, e.log)
		if err != nil {
			return err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}
		if err := database.Migrate(e.cfg.DB.Driver, e.cfg.DB.DSN, db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		e.log.Info("migrate done", zap.String("driver", e.cfg.DB.Driver))
		return nil
	},
}

func init() {
	migrateCmd.Flags().IntVar(&migrateDown, "down", 0, "roll back N versions (postgres)")
}
