// Command arena runs the combat simulation, either in a top-down ebiten
// window or headless with a scripted player.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/automoto/ashfall/assets"
	"github.com/automoto/ashfall/config"
	"github.com/automoto/ashfall/core"
	"github.com/automoto/ashfall/observability"
	"github.com/automoto/ashfall/shared/chance"
	"github.com/automoto/ashfall/shared/leveldata"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "Engine config file (yaml, json or toml)")
	headless := flag.Bool("headless", false, "Run without a window, driven by a scripted player")
	frames := flag.Int("frames", -1, "Frames to run headless (0 = until interrupted; default from config)")
	wave := flag.Int("wave", -1, "Wave to start on (default from config)")
	arenaName := flag.String("arena", "", "Embedded arena to fight in (default from config)")
	flag.Parse()

	cfg, err := config.LoadEngine(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *frames >= 0 {
		cfg.Simulation.Frames = *frames
	}
	if *wave >= 0 {
		cfg.Simulation.StartWave = *wave
	}
	if *arenaName != "" {
		cfg.Assets.Arena = *arenaName
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, *headless, logger); err != nil {
		logger.Fatal("arena stopped", zap.Error(err))
	}
}

func run(cfg config.EngineConfig, headless bool, logger *zap.Logger) error {
	rules := config.Default()
	if cfg.Assets.KindsPath != "" {
		kinds, err := config.LoadKindsFile(cfg.Assets.KindsPath)
		if err != nil {
			return err
		}
		rules.Kinds = kinds
	}

	arena, err := loadArena(cfg.Assets, rules.Arena.PixelsPerUnit)
	if err != nil {
		return err
	}
	logger.Info("arena loaded",
		zap.String("arena", cfg.Assets.Arena),
		zap.String("level_path", cfg.Assets.LevelPath),
		zap.Int("obstacles", len(arena.Obstacles)),
		zap.Int("enemy_spawns", len(arena.EnemySpawns)),
	)

	src := chance.NewSeeded(cfg.Simulation.Seed)
	score := &tally{Presenter: core.NopPresenter{}}
	var view *viewer
	if !headless {
		view = newViewer(cfg.Viewer.Width, cfg.Viewer.Height, cfg.Viewer.PixelsPerUnit,
			cfg.Simulation.TickRate, logger, chance.NewSeeded(time.Now().UnixNano()))
		score.Presenter = view
	}

	world := core.NewWorld(rules,
		core.WithPresenter(score),
		core.WithLogger(logger),
		core.WithSource(src),
		core.WithParallelPerception(cfg.Simulation.ParallelPerception),
	)
	s := newSession(world, arena, score, logger)

	if cfg.Assets.WatchKinds && cfg.Assets.KindsPath != "" {
		kw, err := config.WatchKinds(cfg.Assets.KindsPath)
		if err != nil {
			return fmt.Errorf("watch kinds: %w", err)
		}
		defer kw.Close()
		s.kinds = kw
		logger.Info("watching kind table", zap.String("path", cfg.Assets.KindsPath))
	}

	if err := s.start(cfg.Simulation.StartWave); err != nil {
		return err
	}
	defer world.Teardown()

	if headless {
		return runHeadless(cfg.Simulation, s, logger)
	}

	records, err := openRecords(cfg.Viewer.RecordsApp)
	if err != nil {
		logger.Warn("records unavailable", zap.Error(err))
	}
	s.records = records
	view.s = s

	ebiten.SetWindowSize(cfg.Viewer.Width, cfg.Viewer.Height)
	ebiten.SetWindowTitle("ashfall")
	ebiten.SetTPS(cfg.Simulation.TickRate)
	return ebiten.RunGame(view)
}

// loadArena reads the level file at LevelPath when set, otherwise the
// embedded arena named by Arena.
func loadArena(cfg config.AssetsConfig, pixelsPerUnit float64) (*leveldata.Arena, error) {
	if cfg.LevelPath == "" {
		return assets.LoadArena(cfg.Arena, pixelsPerUnit)
	}
	path := cfg.LevelPath
	return leveldata.LoadArena(os.DirFS(filepath.Dir(path)), filepath.Base(path), pixelsPerUnit)
}

func runHeadless(sim config.SimulationConfig, s *session, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dt := 1 / float64(sim.TickRate)
	ok := true
	loop := core.NewGameLoop(s.world, scriptedPlayer{}, sim.TickRate,
		core.MaxFrames(uint64(sim.Frames)),
		core.LoopLogger(logger),
		core.OnFrame(func(uint64, core.State) bool {
			ok = s.afterFrame(dt)
			return ok
		}),
	)

	err := loop.Run(ctx)
	logger.Info("headless run finished",
		zap.Uint64("frames", loop.Frames()),
		zap.Int("wave", s.world.Wave()),
		zap.Int("best_wave", s.bestWave),
		zap.Int("defeats", s.score.defeats),
		zap.Int("reward", s.score.reward),
		zap.Int("deaths", s.deaths),
	)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if !ok {
		return fmt.Errorf("session stopped at wave %d", s.world.Wave())
	}
	return nil
}
