package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/rpgcore/internal/config"
	"github.com/udisondev/rpgcore/internal/data"
	"github.com/udisondev/rpgcore/internal/db"
	"github.com/udisondev/rpgcore/internal/game/combat"
	"github.com/udisondev/rpgcore/internal/game/equip"
	"github.com/udisondev/rpgcore/internal/game/stat"
	"github.com/udisondev/rpgcore/internal/telemetry"
	"github.com/udisondev/rpgcore/internal/ticker"
	"github.com/udisondev/rpgcore/internal/world"
)

const (
	ConfigPath = "config/rpgcore.yaml"

	attackInterval = 500 * time.Millisecond
	leaveTimeout   = 5 * time.Second
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := flag.String("config", "", "path to rpgcore.yaml (env RPGCORE_CONFIG)")
	flag.Parse()

	path := ConfigPath
	if p := os.Getenv("RPGCORE_CONFIG"); p != "" {
		path = p
	}
	if *cfgPath != "" {
		path = *cfgPath
	}

	cfg, err := config.LoadRPGCore(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))
	slog.Info("rpgcore starting", "log_level", cfg.LogLevel, "config", path)

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("setting up telemetry: %w", err)
	}
	defer func() {
		sctx, scancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer scancel()
		if err := shutdownTracing(sctx); err != nil {
			slog.Warn("telemetry shutdown", "err", err)
		}
	}()

	ids := world.NewObjectIDGenerator()

	var tables *data.Tables
	if cfg.DataDir != "" {
		tables, err = data.LoadDir(cfg.DataDir, ids.NextItemID)
	} else {
		tables, err = data.LoadDefaults(ids.NextItemID)
	}
	if err != nil {
		return fmt.Errorf("loading data tables: %w", err)
	}

	var store *db.Store
	if cfg.Database.Enabled {
		if _, err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}

		database, err := db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()

		store = db.NewStore(database)
		if err := store.Seed(ctx, tables); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
		if err := store.LoadInto(ctx, tables); err != nil {
			return fmt.Errorf("loading tables from database: %w", err)
		}
	}

	statCfg := stat.Config{
		MaxHealthBaseline: cfg.Stats.MaxHealthBaseline,
		MoveSpeedBaseline: cfg.Stats.MoveSpeedBaseline,
	}
	reg := world.NewRegistry(ids, statCfg.MoveSpeedBaseline)
	accessories := data.NewAccessoryContainer(cfg.Stats.AccessorySlots, reg.Invalidate)
	reg.SetAccessories(accessories)
	tables.Items.SetOnChange(reg.InvalidateItem)
	quals := data.NewQualifications(reg.Invalidate)
	resolver := equip.NewResolver(tables.Items, quals, tables.Classes, accessories)
	engine := stat.NewEngine(resolver, tables.Sets, tables.Races, tables.Mobs, statCfg)
	combatResolver := combat.NewResolver(engine, tables.Reactions, combat.WithGate(alive))

	loop := ticker.New(reg, engine, cfg.Ticker)

	d := &duel{
		reg:         reg,
		tables:      tables,
		accessories: accessories,
		quals:       quals,
		engine:      engine,
		combat:      combatResolver,
		store:       store,
		maxAttacks:  cfg.Demo.Attacks,
		done:        make(chan struct{}),
	}

	if err := d.setup(ctx); err != nil {
		return fmt.Errorf("duel setup: %w", err)
	}

	attackEvery := max(1, int(attackInterval/cfg.Ticker.TickRate))
	var tick int
	loop.OnTick(func(time.Time) {
		tick++
		if tick%attackEvery == 0 {
			d.step(ctx)
		}
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if cfg.Demo.Duration > 0 {
		ctx, cancel = context.WithTimeout(ctx, cfg.Demo.Duration)
		defer cancel()
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting tick loop", "attack_every_ticks", attackEvery)
		if err := loop.Run(gctx); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("tick loop: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		select {
		case <-gctx.Done():
		case <-d.done:
		}
		// Final report runs on the loop goroutine while it is still alive.
		if err := loop.Do(gctx, d.report); err != nil {
			slog.Debug("final report skipped", "err", err)
		}
		cancel()
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	leaveCtx, leaveCancel := context.WithTimeout(context.Background(), leaveTimeout)
	defer leaveCancel()
	if err := d.leave(leaveCtx); err != nil {
		return fmt.Errorf("leaving duel: %w", err)
	}

	slog.Info("rpgcore stopped")
	return nil
}

// alive rejects attacks from or on actors with no health left.
func alive(attacker, victim *world.Actor) bool {
	return attacker.Health() > 0 && victim.Health() > 0
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
