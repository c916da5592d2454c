// Package main provides the Telnet dice roll server. It serves a roll REPL
// over Telnet, persists macros in PostgreSQL, and runs sandboxed Lua roll
// scripts.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/dicebox/internal/config"
	"github.com/cory-johannsen/dicebox/internal/dice"
	"github.com/cory-johannsen/dicebox/internal/frontend/handlers"
	"github.com/cory-johannsen/dicebox/internal/frontend/telnet"
	"github.com/cory-johannsen/dicebox/internal/observability"
	"github.com/cory-johannsen/dicebox/internal/scripting"
	"github.com/cory-johannsen/dicebox/internal/server"
	"github.com/cory-johannsen/dicebox/internal/storage/postgres"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
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

	logger.Info("starting dicebox roll server",
		zap.String("telnet_addr", cfg.Telnet.Addr()),
		zap.String("roller_source", cfg.Roller.Source),
	)

	// Connect to PostgreSQL
	ctx := context.Background()
	dbStart := time.Now()
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("connecting to database", zap.Error(err))
	}
	logger.Info("database connected",
		zap.String("host", cfg.Database.Host),
		zap.Int("port", cfg.Database.Port),
		zap.String("database", cfg.Database.Name),
		zap.Duration("elapsed", time.Since(dbStart)),
	)

	var src dice.Source
	if cfg.Roller.Source == "seeded" {
		src = dice.NewSeededSource(cfg.Roller.Seed)
	} else {
		src = dice.NewCryptoSource()
	}
	roller := dice.NewRoller(src, logger)

	// Build services
	macros := postgres.NewMacroRepository(pool.DB())
	rollHandler := handlers.NewRollHandler(roller, macros, logger, cfg.Roller.MaxNotationLen)
	telnetAcceptor := telnet.NewAcceptor(cfg.Telnet, rollHandler, logger)

	scripts := scripting.NewManager(roller, logger)
	if cfg.Scripting.ScriptDir != "" {
		if err := scripts.Load(cfg.Scripting.ScriptDir, cfg.Scripting.InstructionLimit); err != nil {
			logger.Fatal("loading roll scripts", zap.Error(err))
		}
	}

	// Wire lifecycle
	lifecycle := server.NewLifecycle(logger)

	lifecycle.Add("postgres", &server.FuncService{
		StartFn: func() error {
			for {
				time.Sleep(30 * time.Second)
				if err := pool.Health(ctx, 5*time.Second); err != nil {
					logger.Warn("database health check failed", zap.Error(err))
				}
			}
		},
		StopFn: func() {
			pool.Close()
		},
	})

	lifecycle.Add("scripting", &server.FuncService{
		StartFn: func() error {
			select {} // nothing to serve; scripts run on demand
		},
		StopFn: func() {
			scripts.Close()
		},
	})

	lifecycle.Add("telnet", &server.FuncService{
		StartFn: func() error {
			return telnetAcceptor.ListenAndServe()
		},
		StopFn: func() {
			telnetAcceptor.Stop()
		},
	})

	logger.Info("roll server initialized",
		zap.Duration("startup", time.Since(start)),
		zap.String("telnet_addr", cfg.Telnet.Addr()),
	)

	if err := lifecycle.Run(ctx); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
