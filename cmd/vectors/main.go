package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/OCharnyshevich/kvant/internal/config"
	"github.com/OCharnyshevich/kvant/internal/storage"
	"github.com/OCharnyshevich/kvant/internal/vectors"
)

func main() {
	cfg := config.DefaultConfig()

	configPath := flag.String("config", "", "JSON config file (default: <dir>/kvant.json)")
	dir := flag.String("dir", ".", "output directory")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.StringVar(&cfg.Vectors.Output, "out", cfg.Vectors.Output, "output JSON file, relative to -dir")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, *dir, *configPath, log); err != nil {
		log.Error("vectors failed", "error", err)
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, dir, configPath string, log *slog.Logger) error {
	store := storage.New(dir, log)

	fromFile := config.DefaultConfig()
	if err := store.LoadConfig(configPath, fromFile); err != nil {
		return err
	}
	config.Merge(cfg, fromFile, config.ExplicitFlags(flag.CommandLine))

	vs := vectors.Generate()
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := store.SaveJSON(cfg.Vectors.Output, vs); err != nil {
		return err
	}
	log.Info("generated reference vectors", "count", len(vs), "path", cfg.Vectors.Output)
	return nil
}
