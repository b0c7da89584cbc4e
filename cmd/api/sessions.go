package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	pg "pet-adoption/internal/adapters/storage/postgres"
	rds "pet-adoption/internal/adapters/storage/redis"
	"pet-adoption/internal/domain/sessions"
	"pet-adoption/internal/platform/config"

	"github.com/spf13/cobra"
)

var clearUserID string

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Mantenimiento de sesiones",
}

var sessionsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Cierra todas las sesiones de un usuario",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if strings.TrimSpace(clearUserID) == "" {
			return errors.New("--user is required")
		}
		return withSessions(cmd.Context(), func(svc *sessions.Service) error {
			n, err := svc.EndAllForUser(cmd.Context(), clearUserID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d sesiones cerradas\n", n)
			return nil
		})
	},
}

var sessionsPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Borra sesiones expiradas",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withSessions(cmd.Context(), func(svc *sessions.Service) error {
			n, err := svc.Prune(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d sesiones expiradas borradas\n", n)
			return nil
		})
	},
}

func init() {
	sessionsClearCmd.Flags().StringVar(&clearUserID, "user", "", "user id")
	sessionsCmd.AddCommand(sessionsClearCmd, sessionsPruneCmd)
}

// withSessions abre el store configurado: Redis si hay REDIS_ADDR, si no Postgres.
func withSessions(ctx context.Context, fn func(*sessions.Service) error) error {
	cfg, _, err := bootstrap()
	if err != nil {
		return err
	}

	store, closeFn, err := openSessionStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	return fn(sessions.NewService(store, cfg.SessionLifetime))
}

func openSessionStore(ctx context.Context, cfg *config.Config) (sessions.Store, func(), error) {
	switch {
	case cfg.RedisAddr != "":
		rc, err := rds.Open(ctx, rds.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		if err != nil {
			return nil, nil, err
		}
		return rds.NewSessionStore(rc), func() { _ = rc.Close() }, nil
	case cfg.DBDSN != "":
		db, err := pg.Open(cfg.DBDSN)
		if err != nil {
			return nil, nil, err
		}
		return pg.NewSessionStore(db), func() { _ = db.Close() }, nil
	default:
		return nil, nil, errors.New("REDIS_ADDR or DB_DSN is required")
	}
}
