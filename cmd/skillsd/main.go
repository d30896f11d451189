package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/l1jgo/skills/internal/config"
	"github.com/l1jgo/skills/internal/core/ecs"
	"github.com/l1jgo/skills/internal/core/event"
	coresys "github.com/l1jgo/skills/internal/core/system"
	"github.com/l1jgo/skills/internal/data"
	"github.com/l1jgo/skills/internal/handler"
	"github.com/l1jgo/skills/internal/persist"
	"github.com/l1jgo/skills/internal/scripting"
	"github.com/l1jgo/skills/internal/skills"
	"github.com/l1jgo/skills/internal/system"
	"github.com/l1jgo/skills/internal/tracker"
	"github.com/l1jgo/skills/internal/world"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// profileStore loads and saves skill profiles. Both the Postgres repo and the
// in-memory store satisfy it.
type profileStore interface {
	system.ProfileStore
	LoadProfile(ctx context.Context, name string) (*skills.Profile, error)
}

func run() error {
	// 1. Load config
	cfgPath := "config/server.toml"
	if p := os.Getenv("SKILLS_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	lang, err := language.Parse(cfg.Server.Language)
	if err != nil {
		return fmt.Errorf("server.language %q: %w", cfg.Server.Language, err)
	}

	// 3. Profile storage
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var store profileStore
	if cfg.Database.DSN != "" {
		db, err := persist.Open(ctx, cfg.Database, log)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()
		store = persist.NewSkillRepo(db)
	} else {
		log.Warn("no database configured, skill profiles are kept in memory")
		store = persist.NewMemoryStore()
	}

	// 4. Load skill table and formula scripts
	table, err := data.LoadSkillTable(cfg.Data.SkillTable)
	if err != nil {
		return fmt.Errorf("skill table: %w", err)
	}
	engine, err := scripting.NewEngine(cfg.Data.ScriptsDir, log)
	if err != nil {
		return fmt.Errorf("scripting: %w", err)
	}
	defer engine.Close()
	log.Info("skill data loaded",
		zap.String("table", cfg.Data.SkillTable),
		zap.Bool("lua_dodge", engine.Defines("calc_dodge_damage")),
		zap.Bool("lua_roll", engine.Defines("calc_roll_damage")),
		zap.Bool("lua_level_curve", engine.Defines("xp_to_level")))

	// 5. World, scheduler, and tracker
	ecsWorld := ecs.NewWorld()
	bus := event.NewBus()
	worldState := world.NewState(ecsWorld, bus, world.LogNotifier{Log: log}, log)
	scheduler := coresys.NewScheduler()
	arrows := tracker.NewRegistry(scheduler, worldState, cfg.Skills.TrackerPollTicks, log)

	deps := &handler.Deps{
		Config: cfg,
		Log:    log,
		World:  worldState,
		Skills: &skills.Deps{
			Config:   cfg,
			Table:    table,
			Formulas: engine,
			Combat:   worldState,
			Rewards:  skills.NewProgression(worldState, engine, cfg.Rates.XPRate, log),
			Arrows:   arrows,
			Log:      log,
		},
		Tracker: arrows,
	}
	handler.RegisterAll(bus, deps)

	// 6. Create systems and register with runner
	persistSys := system.NewPersistenceSystem(worldState, store, log, cfg.Database.SaveIntervalTicks)
	runner := coresys.NewRunner()
	runner.Register(system.NewDispatchSystem(bus))
	runner.Register(scheduler)
	runner.Register(system.NewLifetimeSystem(ecsWorld))
	runner.Register(persistSys)
	runner.Register(system.NewCleanupSystem(ecsWorld, log))

	var demo *demoDriver
	if cfg.Server.Demo {
		demo, err = newDemoDriver(ctx, deps, store, bus, lang)
		if err != nil {
			return fmt.Errorf("demo: %w", err)
		}
	}

	// 7. Run the game loop until a shutdown signal
	g, gctx := errgroup.WithContext(context.Background())
	errShutdown := errors.New("shutdown")

	g.Go(func() error {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigCh)
		select {
		case sig := <-sigCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			return errShutdown
		case <-gctx.Done():
			return nil
		}
	})

	g.Go(func() error {
		ticker := time.NewTicker(cfg.Network.TickRate)
		defer ticker.Stop()
		log.Info("game loop started",
			zap.String("server", cfg.Server.Name),
			zap.Duration("tick", cfg.Network.TickRate))
		for {
			select {
			case <-ticker.C:
				if demo != nil {
					demo.step(scheduler.CurrentTick())
				}
				runner.Tick(cfg.Network.TickRate)
			case <-gctx.Done():
				n := persistSys.SaveAllPlayers()
				log.Info("server stopped",
					zap.Int("profiles_saved", n),
					zap.Int("tracked_entities", arrows.Len()))
				return nil
			}
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errShutdown) {
		return err
	}
	return nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
