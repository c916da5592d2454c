// Package main provides the macro pack import tool. It loads YAML macro
// packs from a directory and upserts them into the configured database.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/dicebox/internal/config"
	"github.com/cory-johannsen/dicebox/internal/importer"
	"github.com/cory-johannsen/dicebox/internal/observability"
	"github.com/cory-johannsen/dicebox/internal/storage/postgres"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	packDir := flag.String("packs", "content/macros", "path to macro pack YAML directory")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("connecting to database", zap.Error(err))
	}
	defer pool.Close()

	macros := postgres.NewMacroRepository(pool.DB())
	imp := importer.New(macros, logger)
	if err := imp.Run(ctx, *packDir); err != nil {
		logger.Fatal("importing macro packs", zap.Error(err))
	}

	logger.Info("import finished",
		zap.String("packs", *packDir),
		zap.Duration("elapsed", time.Since(start)),
	)
}
