package main

import (
	"errors"
	"os/signal"
	"syscall"

	"pet-adoption/internal/adapters/notify/smtp"
	"pet-adoption/internal/worker"

	"github.com/spf13/cobra"
)

var notifierCmd = &cobra.Command{
	Use:   "notifier",
	Short: "Consume la cola de notificaciones y envía los correos por SMTP",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		if cfg.RabbitURL == "" {
			return errors.New("RABBIT_URL is required")
		}

		mailer, err := smtp.New(cfg.SMTP)
		if err != nil {
			return err
		}

		c := worker.NewConsumer(worker.Config{
			RabbitURL:   cfg.RabbitURL,
			Exchange:    cfg.NotifyExchange,
			Queue:       cfg.NotifyQueue,
			ServiceName: cfg.AppName + "-notifier",
		}, mailer, log)
		if err := c.Connect(); err != nil {
			return err
		}
		defer c.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		log.Info("notifier started", map[string]any{"queue": cfg.NotifyQueue, "smtp_host": cfg.SMTP.Host})
		return c.Run(ctx)
	},
}
