package main

import (
	"context"
	"embed"
	"log/slog"
	"os"

	"github.com/magmaminds/admissions/pkg/config"
	"github.com/magmaminds/admissions/pkg/database"
	"github.com/magmaminds/admissions/pkg/logger"
	"github.com/magmaminds/admissions/pkg/migrator"
)

//go:embed *.sql
var MigrationsFS embed.FS

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg)
	ctx := context.Background()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, 1, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := migrator.Up(ctx, pool.DB(), MigrationsFS, log); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1) //nolint:gocritic
	}
}
