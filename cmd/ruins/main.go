// Package main runs a headless simulation: it builds a world from the content
// directory and lets the automatic player explore it for a bounded number of turns.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/ruins/internal/config"
	"github.com/cory-johannsen/ruins/internal/game"
	"github.com/cory-johannsen/ruins/internal/game/catalog"
	"github.com/cory-johannsen/ruins/internal/game/dice"
	"github.com/cory-johannsen/ruins/internal/game/gamelog"
	"github.com/cory-johannsen/ruins/internal/game/present"
	"github.com/cory-johannsen/ruins/internal/game/rules"
	"github.com/cory-johannsen/ruins/internal/game/sim"
	"github.com/cory-johannsen/ruins/internal/observability"
	"github.com/cory-johannsen/ruins/internal/scripting"
	"github.com/cory-johannsen/ruins/internal/storage/postgres"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	regionName := flag.String("region", "wilds", "name of the starting region")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	baseLogger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer baseLogger.Sync()

	seed := cfg.Game.Seed
	if seed == 0 {
		seed = dice.RandomSeed()
	}
	session := uuid.New()
	logger := observability.WithSession(baseLogger, session, seed)
	src := dice.NewSeededSource(seed)

	// Load content
	contentStart := time.Now()
	r, err := rules.Load(filepath.Join(cfg.Game.ContentDir, cfg.Game.RulesFile))
	if err != nil {
		logger.Fatal("loading rules", zap.Error(err))
	}
	cat, err := catalog.Load(filepath.Join(cfg.Game.ContentDir, cfg.Game.CatalogDir))
	if err != nil {
		logger.Fatal("loading catalog", zap.Error(err))
	}
	logger.Info("content loaded",
		zap.Int("tiles", cat.Tiles.Len()),
		zap.Int("items", cat.Items.Len()),
		zap.Int("charas", cat.Charas.Len()),
		zap.Duration("elapsed", time.Since(contentStart)),
	)

	ledger, closeLedger := openLedger(ctx, cfg, logger)
	defer closeLedger()

	queue := present.NewQueue(cfg.Game.QueueSize, logger)
	defer queue.Close()

	deps := game.Deps{
		Rules:   r,
		Catalog: cat,
		Src:     src,
		Log:     gamelog.New(cfg.Game.LogCapacity, logger),
		Queue:   queue,
		Ledger:  ledger,
		Session: session,
		Logger:  logger,
	}

	var scripts *scripting.Manager
	if cfg.Game.ScriptDir != "" {
		scripts = scripting.NewManager(dice.NewLoggedRoller(src, logger), logger)
		defer scripts.Close()
		dir := filepath.Join(cfg.Game.ContentDir, cfg.Game.ScriptDir)
		if err := scripts.LoadDir(dir, cfg.Game.ScriptInstructionLimit); err != nil {
			logger.Fatal("loading scripts", zap.String("dir", dir), zap.Error(err))
		}
		deps.Hooks = scripts
	}

	g, err := game.Start(ctx, *regionName, deps)
	if err != nil {
		logger.Fatal("starting game", zap.Error(err))
	}
	if scripts != nil {
		scripts.Methods = g.ScriptMethods()
	}

	go func() {
		for ev := range queue.Events() {
			logger.Debug("presentation event", zap.Any("event", ev))
		}
	}()

	turns, err := sim.NewRunner(g, sim.AutoPlayer{}, logger).Run(ctx, cfg.Game.MaxTurns)
	if err != nil {
		logger.Warn("simulation interrupted", zap.Int("turns", turns), zap.Error(err))
	}
	logger.Info("run complete",
		zap.Int("turns", turns),
		zap.Int("dropped_events", queue.Dropped()),
		zap.Duration("elapsed", time.Since(start)),
	)
}

// openLedger returns the configured floor ledger and a function releasing it.
func openLedger(ctx context.Context, cfg config.Config, logger *zap.Logger) (game.Ledger, func()) {
	if !cfg.Ledger.Enabled || cfg.Ledger.Backend == "memory" {
		return game.NewMemoryLedger(), func() {}
	}
	dbStart := time.Now()
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("connecting to database", zap.Error(err))
	}
	logger.Info("database connected",
		zap.String("host", cfg.Database.Host),
		zap.Duration("elapsed", time.Since(dbStart)),
	)
	return postgres.NewFloorLedger(pool.DB()), pool.Close
}
