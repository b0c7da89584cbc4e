package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"pet-adoption/internal/adapters/media/cloudinary"
	"pet-adoption/internal/adapters/notify/amqp"
	pg "pet-adoption/internal/adapters/storage/postgres"
	rds "pet-adoption/internal/adapters/storage/redis"
	"pet-adoption/internal/platform/telemetry"
	"pet-adoption/internal/ports/media"
	"pet-adoption/internal/router"

	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var serveMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Levanta el API HTTP",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "aplicar migraciones antes de arrancar")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp, err := telemetry.NewProvider(ctx, telemetry.Config{
		Endpoint:       cfg.OTLPEndpoint,
		Insecure:       cfg.OTLPInsecure,
		ServiceName:    cfg.AppName,
		ServiceVersion: cfg.Version,
		Environment:    cfg.AppEnv,
		SamplingRate:   cfg.TraceSample,
	})
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = tp.Shutdown(sctx)
	}()

	opts := router.Options{Config: cfg, Logger: log}

	if cfg.DBDSN != "" {
		db, err := pg.Open(cfg.DBDSN)
		if err != nil {
			return err
		}
		defer db.Close()
		if serveMigrate {
			if err := migrate(ctx, db, log.Info); err != nil {
				return err
			}
		}
		opts.DB = db
	} else {
		log.Warn("DB_DSN vacío: repos in-memory", nil)
	}

	if cfg.RedisAddr != "" {
		rc, err := rds.Open(ctx, rds.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		if err != nil {
			return err
		}
		defer rc.Close()
		opts.Redis = rc
	}

	if cfg.CloudinaryURL != "" {
		up, err := cloudinary.New(cfg.CloudinaryURL)
		if err != nil {
			return err
		}
		opts.Uploader = up
	} else {
		opts.Uploader = media.Disabled{}
	}

	if cfg.RabbitURL != "" {
		pub, err := amqp.NewPublisher(cfg.RabbitURL, cfg.NotifyExchange)
		if err != nil {
			return err
		}
		defer pub.Close()
		opts.Notifier = pub
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router.NewRouter(opts),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting server", map[string]any{"addr": srv.Addr, "env": cfg.AppEnv, "storage": storageName(opts.DB, opts.Redis)})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down", nil)
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(sctx)
	})
	return g.Wait()
}

func storageName(db *sql.DB, rc goredis.UniversalClient) string {
	name := "memory"
	if db != nil {
		name = "postgres"
	}
	if rc != nil {
		name += "+redis-sessions"
	}
	return name
}
