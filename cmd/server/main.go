package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	rgs "github.com/Ashenafi-pixel/gamecrafter-prize-wheel"
	"github.com/Ashenafi-pixel/gamecrafter-prize-wheel/config"
	"github.com/Ashenafi-pixel/gamecrafter-prize-wheel/rewards"
	"github.com/Ashenafi-pixel/gamecrafter-prize-wheel/round"
	"github.com/Ashenafi-pixel/gamecrafter-prize-wheel/server"
	"github.com/Ashenafi-pixel/gamecrafter-prize-wheel/session"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	// Load .env so DATABASE_URL and WHEEL_* are set: cwd .env or project root .env/.env.local
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")
	_ = godotenv.Load("../.env.local")
	cfg := config.Load()
	logger := newLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("prize wheel server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	file, err := rewards.Load(cfg.WheelConfig)
	if err != nil {
		return err
	}
	game, err := session.NewGame(file)
	if err != nil {
		return err
	}
	results, err := openResults(ctx, cfg)
	if err != nil {
		return err
	}
	logger.Info().
		Str("wheel_config", cfg.WheelConfig).
		Str("results", cfg.Results).
		Bool("seeded", cfg.HasSeed).
		Int("free_spins", file.FreeSpins).
		Msg("wheel loaded")
	return server.New(cfg, game, results, logger).Run(ctx)
}

func openResults(ctx context.Context, cfg *config.Config) (round.Recorder, error) {
	switch cfg.Results {
	case "none":
		return round.Discard{}, nil
	case "json":
		return round.NewResultsStore(cfg.DataDir), nil
	case "postgres":
		db, err := rgs.GetDB()
		if err != nil {
			return nil, fmt.Errorf("connect db: %w", err)
		}
		if db == nil {
			return nil, fmt.Errorf("WHEEL_RESULTS=postgres but DATABASE_URL is not set")
		}
		if err := rgs.Migrate(ctx, db); err != nil {
			return nil, err
		}
		return round.NewPGStore(db), nil
	default:
		return nil, fmt.Errorf("unknown WHEEL_RESULTS %q (want json, postgres or none)", cfg.Results)
	}
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.TimeFieldFormat = time.RFC3339
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}
