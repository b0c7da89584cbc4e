// @title        Pet Adoption API
// @version      1.0
// @description  Adopción de mascotas: publicaciones, mascotas perdidas y solicitudes de adopción.
// @BasePath     /
package main

import (
	"context"
	"fmt"
	"os"

	"pet-adoption/internal/platform/config"
	"pet-adoption/internal/platform/logger"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "pet-adoption",
	Short:         "API de adopción de mascotas",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, sessionsCmd, notifierCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// bootstrap carga config del entorno y arma el logger.
func bootstrap() (*config.Config, logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})
	return cfg, log, nil
}
