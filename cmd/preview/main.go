package main

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/OCharnyshevich/kvant/internal/config"
	"github.com/OCharnyshevich/kvant/internal/preview"
	"github.com/OCharnyshevich/kvant/internal/storage"
)

func main() {
	cfg := config.DefaultConfig()
	p := &cfg.Preview
	fs := flag.CommandLine

	configPath := flag.String("config", "", "JSON config file (default: <dir>/kvant.json)")
	dir := flag.String("dir", ".", "output directory")
	verbose := flag.Bool("v", false, "enable debug logging")

	flag.IntVar(&p.Dims, "dims", p.Dims, "noise dimensions: 1, 2 or 3")
	flag.StringVar(&p.Mode, "mode", p.Mode, "noise, fbm or fractal4")
	flag.IntVar(&p.Width, "width", p.Width, "image width in pixels")
	flag.IntVar(&p.Height, "height", p.Height, "image height in pixels")
	config.Float32Var(fs, &p.Frequency, "frequency", p.Frequency, "lattice units per pixel")
	config.Float32Var(fs, &p.OffsetX, "offset-x", p.OffsetX, "x offset in pixels")
	config.Float32Var(fs, &p.OffsetY, "offset-y", p.OffsetY, "y offset in pixels")
	config.Float32Var(fs, &p.Z, "z", p.Z, "slice depth for 3D noise")
	flag.IntVar(&p.Octaves, "octaves", p.Octaves, "octave count for fbm")
	config.WeightsVar(fs, &p.Weights, "weights", "fractal4 weights, e.g. 1,2,4,8")
	flag.StringVar(&p.Format, "format", p.Format, "png, bmp or tiff")
	flag.IntVar(&p.Upscale, "upscale", p.Upscale, "integer scale factor")
	flag.BoolVar(&p.Smooth, "smooth-upscale", p.Smooth, "use Catmull-Rom when upscaling")
	flag.StringVar(&p.Output, "out", p.Output, "output file, relative to -dir")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store := storage.New(*dir, log)

	fromFile := config.DefaultConfig()
	if err := store.LoadConfig(*configPath, fromFile); err != nil {
		log.Error("load config", "error", err)
		cancel()
		os.Exit(1)
	}
	config.Merge(cfg, fromFile, config.ExplicitFlags(fs))

	if err := p.Validate(); err != nil {
		log.Error("invalid preview settings", "error", err)
		cancel()
		os.Exit(1)
	}

	img, st := preview.Render(*p)
	log.Info("rendered noise",
		"dims", p.Dims,
		"mode", p.Mode,
		"size", img.Bounds().Size(),
		"min", st.Min,
		"max", st.Max,
		"mean", st.Mean,
	)

	out := preview.Upscale(img, p.Upscale, p.Smooth)
	if err := ctx.Err(); err != nil {
		log.Error("interrupted before write", "error", err)
		cancel()
		os.Exit(1)
	}
	err := store.WriteFile(p.Output, func(w io.Writer) error {
		return preview.Encode(w, out, p.Format)
	})
	if err != nil {
		log.Error("write image", "error", err)
		cancel()
		os.Exit(1)
	}
	log.Info("wrote image", "path", p.Output, "format", p.Format)
}
