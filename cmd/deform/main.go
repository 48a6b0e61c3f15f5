package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/OCharnyshevich/kvant/internal/config"
	"github.com/OCharnyshevich/kvant/internal/fetch"
	"github.com/OCharnyshevich/kvant/internal/storage"
	"github.com/OCharnyshevich/kvant/pkg/deform"
	"github.com/OCharnyshevich/kvant/pkg/mesh"
)

func main() {
	cfg := config.DefaultConfig()
	d := &cfg.Deform
	fs := flag.CommandLine

	configPath := flag.String("config", "", "JSON config file (default: <out-dir>/kvant.json)")
	verbose := flag.Bool("v", false, "enable debug logging")

	flag.StringVar(&d.Mesh, "mesh", d.Mesh, "OBJ source: path, URL or go-getter address")
	config.Float32Var(fs, &d.Params.Amplitude, "amplitude", d.Params.Amplitude, "displacement per unit of noise")
	config.Float32Var(fs, &d.Params.Scale, "scale", d.Params.Scale, "noise frequency")
	config.Float32Var(fs, &d.Params.Speed, "speed", d.Params.Speed, "scroll speed along +Z")
	flag.BoolVar(&d.Params.Smooth, "smooth", d.Params.Smooth, "keep shared vertices instead of flat shading")
	config.WeightsVar(fs, &d.Params.Weights, "weights", "octave weights, e.g. 1,2,4,8")
	config.Float32Var(fs, &d.Start, "start", d.Start, "animation time of the first frame")
	flag.IntVar(&d.Frames, "frames", d.Frames, "number of frames to write")
	config.Float32Var(fs, &d.FPS, "fps", d.FPS, "frames per second of animation time")
	flag.StringVar(&d.OutDir, "out-dir", d.OutDir, "output directory")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, *configPath, log); err != nil {
		log.Error("deform failed", "error", err)
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, configPath string, log *slog.Logger) error {
	d := &cfg.Deform
	store := storage.New(d.OutDir, log)

	fromFile := config.DefaultConfig()
	if err := store.LoadConfig(configPath, fromFile); err != nil {
		return err
	}
	config.Merge(cfg, fromFile, config.ExplicitFlags(flag.CommandLine))
	if err := d.Validate(); err != nil {
		return fmt.Errorf("invalid deform settings: %w", err)
	}
	if d.OutDir != store.Dir() {
		store = storage.New(d.OutDir, log)
	}

	path, err := fetch.Mesh(ctx, d.Mesh, filepath.Join(store.Dir(), "source"), log)
	if err != nil {
		return err
	}
	src, err := loadMesh(path)
	if err != nil {
		return err
	}
	lo, hi := src.Bounds()
	log.Info("loaded mesh", "vertices", len(src.Vertices), "triangles", len(src.Indices)/3, "min", lo, "max", hi)

	def, err := deform.New(src, d.Params)
	if err != nil {
		return err
	}
	def.SetTime(d.Start)
	if err := store.SaveConfig(filepath.Join("frames", storage.ConfigFile), cfg); err != nil {
		return fmt.Errorf("save run config: %w", err)
	}

	dt := 1 / d.FPS
	for i := 0; i < d.Frames; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		frame := def.Step(dt)
		name := storage.FrameName(i)
		err := store.WriteFile(name, func(w io.Writer) error {
			return mesh.EncodeOBJ(w, frame)
		})
		if err != nil {
			return fmt.Errorf("write frame %d: %w", i, err)
		}
		lo, hi := frame.Bounds()
		log.Debug("frame written", "frame", i, "time", def.Time(), "min", lo, "max", hi)
	}
	p := def.Params()
	log.Info("done",
		"frames", d.Frames,
		"start", d.Start,
		"end", def.Time(),
		"amplitude", p.Amplitude,
		"scale", p.Scale,
		"weights", p.Weights,
		"dir", filepath.Join(store.Dir(), "frames"),
	)
	return nil
}

func loadMesh(path string) (*mesh.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mesh: %w", err)
	}
	defer f.Close()

	m, err := mesh.DecodeOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return m, nil
}
