package main

import (
	"context"
	"database/sql"
	"errors"

	pg "pet-adoption/internal/adapters/storage/postgres"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Aplica las migraciones pendientes (DB_DSN)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		if cfg.DBDSN == "" {
			return errors.New("DB_DSN is required")
		}

		db, err := pg.Open(cfg.DBDSN)
		if err != nil {
			return err
		}
		defer db.Close()

		return migrate(cmd.Context(), db, log.Info)
	},
}

func migrate(ctx context.Context, db *sql.DB, info func(string, map[string]any)) error {
	applied, err := pg.Migrate(ctx, db)
	if err != nil {
		return err
	}
	if len(applied) == 0 {
		info("migrations up to date", nil)
		return nil
	}
	info("migrations applied", map[string]any{"files": applied})
	return nil
}
