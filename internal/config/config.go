package config

import (
	"fmt"

	"github.com/OCharnyshevich/kvant/pkg/deform"
)

// Config holds settings for the kvant command-line tools. Each command reads
// the section it needs.
type Config struct {
	Preview Preview `json:"preview"`
	Deform  Deform  `json:"deform"`
	Vectors Vectors `json:"vectors"`
}

// Preview describes a sampled noise image.
type Preview struct {
	Dims      int        `json:"dims"` // 1, 2 or 3
	Mode      string     `json:"mode"` // "noise", "fbm" or "fractal4"
	Width     int        `json:"width"`
	Height    int        `json:"height"`
	Frequency float32    `json:"frequency"` // lattice units per pixel
	OffsetX   float32    `json:"offset_x"`
	OffsetY   float32    `json:"offset_y"`
	Z         float32    `json:"z"` // slice depth for dims=3
	Octaves   int        `json:"octaves"`
	Weights   [4]float32 `json:"weights"` // fractal4 only
	Format    string     `json:"format"`  // "png", "bmp" or "tiff"
	Upscale   int        `json:"upscale"`
	Smooth    bool       `json:"smooth_upscale"`
	Output    string     `json:"output"`
}

// Deform describes a normal-deformer animation run.
type Deform struct {
	Mesh   string        `json:"mesh"` // go-getter source of the OBJ file
	Params deform.Params `json:"params"`
	Start  float32       `json:"start"` // animation time of the first frame
	Frames int           `json:"frames"`
	FPS    float32       `json:"fps"`
	OutDir string        `json:"out_dir"`
}

// Vectors describes the reference vector dump.
type Vectors struct {
	Output string `json:"output"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Preview: Preview{
			Dims:      2,
			Mode:      "noise",
			Width:     256,
			Height:    256,
			Frequency: 1.0 / 32,
			Octaves:   4,
			Weights:   [4]float32{0.5, 0.25, 0.125, 0.0625},
			Format:    "png",
			Upscale:   1,
			Output:    "noise.png",
		},
		Deform: Deform{
			Params: deform.DefaultParams(),
			Frames: 30,
			FPS:    30,
			OutDir: "out",
		},
		Vectors: Vectors{
			Output: "vectors.json",
		},
	}
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. explicitFlags contains the
// flag names that were explicitly provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	p, fp := &cfg.Preview, &fromFile.Preview
	mergeField(&p.Dims, fp.Dims, explicitFlags["dims"])
	mergeField(&p.Mode, fp.Mode, explicitFlags["mode"])
	mergeField(&p.Width, fp.Width, explicitFlags["width"])
	mergeField(&p.Height, fp.Height, explicitFlags["height"])
	mergeField(&p.Frequency, fp.Frequency, explicitFlags["frequency"])
	mergeField(&p.OffsetX, fp.OffsetX, explicitFlags["offset-x"])
	mergeField(&p.OffsetY, fp.OffsetY, explicitFlags["offset-y"])
	mergeField(&p.Z, fp.Z, explicitFlags["z"])
	mergeField(&p.Octaves, fp.Octaves, explicitFlags["octaves"])
	mergeField(&p.Weights, fp.Weights, explicitFlags["weights"])
	mergeField(&p.Format, fp.Format, explicitFlags["format"])
	mergeField(&p.Upscale, fp.Upscale, explicitFlags["upscale"])
	mergeField(&p.Smooth, fp.Smooth, explicitFlags["smooth-upscale"])
	mergeField(&p.Output, fp.Output, explicitFlags["out"])

	d, fd := &cfg.Deform, &fromFile.Deform
	mergeField(&d.Mesh, fd.Mesh, explicitFlags["mesh"])
	mergeField(&d.Params.Amplitude, fd.Params.Amplitude, explicitFlags["amplitude"])
	mergeField(&d.Params.Scale, fd.Params.Scale, explicitFlags["scale"])
	mergeField(&d.Params.Speed, fd.Params.Speed, explicitFlags["speed"])
	mergeField(&d.Params.Smooth, fd.Params.Smooth, explicitFlags["smooth"])
	mergeField(&d.Params.Weights, fd.Params.Weights, explicitFlags["weights"])
	mergeField(&d.Start, fd.Start, explicitFlags["start"])
	mergeField(&d.Frames, fd.Frames, explicitFlags["frames"])
	mergeField(&d.FPS, fd.FPS, explicitFlags["fps"])
	mergeField(&d.OutDir, fd.OutDir, explicitFlags["out-dir"])

	mergeField(&cfg.Vectors.Output, fromFile.Vectors.Output, explicitFlags["out"])
}

func mergeField[T any](dst *T, fromFile T, explicit bool) {
	if !explicit {
		*dst = fromFile
	}
}

// Validate reports the first preview setting that cannot be rendered.
func (p Preview) Validate() error {
	switch {
	case p.Dims < 1 || p.Dims > 3:
		return fmt.Errorf("dims must be 1, 2 or 3, got %d", p.Dims)
	case p.Mode != "noise" && p.Mode != "fbm" && p.Mode != "fractal4":
		return fmt.Errorf("unknown mode %q", p.Mode)
	case p.Mode == "fractal4" && p.Dims != 3:
		return fmt.Errorf("mode fractal4 needs dims 3, got %d", p.Dims)
	case p.Width <= 0 || p.Height <= 0:
		return fmt.Errorf("image size must be positive, got %dx%d", p.Width, p.Height)
	case p.Upscale < 1:
		return fmt.Errorf("upscale must be at least 1, got %d", p.Upscale)
	}
	return nil
}

// Validate reports the first deform setting that cannot be run.
func (d Deform) Validate() error {
	switch {
	case d.Mesh == "":
		return fmt.Errorf("mesh source required")
	case d.Frames <= 0:
		return fmt.Errorf("frames must be positive, got %d", d.Frames)
	case d.FPS <= 0:
		return fmt.Errorf("fps must be positive, got %v", d.FPS)
	}
	return nil
}
