// Package preview samples the noise functions onto a grayscale image so a
// parameter set can be inspected by eye.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/tiff"

	"github.com/OCharnyshevich/kvant/internal/config"
	"github.com/OCharnyshevich/kvant/pkg/noise"
)

// Stats summarises the sampled values.
type Stats struct {
	Min, Max, Mean float32
}

// sampler evaluates the configured function at lattice coordinates (x, y).
type sampler func(x, y float32) float32

func newSampler(p config.Preview) sampler {
	switch p.Dims {
	case 1:
		if p.Mode == "fbm" {
			return func(x, _ float32) float32 { return noise.FBM1D(x, p.Octaves) }
		}
		return func(x, _ float32) float32 { return noise.Noise1D(x) }
	case 2:
		if p.Mode == "fbm" {
			return func(x, y float32) float32 { return noise.FBM2D(x, y, p.Octaves) }
		}
		return noise.Noise2D
	default:
		z := p.Z
		switch p.Mode {
		case "fbm":
			return func(x, y float32) float32 { return noise.FBM3D(x, y, z, p.Octaves) }
		case "fractal4":
			w := p.Weights
			return func(x, y float32) float32 { return noise.Fractal4Coeffs(x, y, z, w[0], w[1], w[2], w[3]) }
		}
		return func(x, y float32) float32 { return noise.Noise3D(x, y, z) }
	}
}

// Render samples p onto a Width×Height image. Pixel (i, j) samples
// ((OffsetX+i)*Frequency, (OffsetY+j)*Frequency). Two and three dimensional
// fields map [-1, 1] to black..white; one dimensional noise is drawn as a
// white curve on black. p must pass Validate.
func Render(p config.Preview) (*image.Gray, Stats) {
	img := image.NewGray(image.Rect(0, 0, p.Width, p.Height))
	sample := newSampler(p)

	st := Stats{Min: float32(math.Inf(1)), Max: float32(math.Inf(-1))}
	var sum float64
	record := func(v float32) {
		st.Min = min(st.Min, v)
		st.Max = max(st.Max, v)
		sum += float64(v)
	}

	if p.Dims == 1 {
		for i := 0; i < p.Width; i++ {
			v := sample((p.OffsetX+float32(i))*p.Frequency, 0)
			record(v)
			row := int(math.Round(float64(1-(v+1)/2) * float64(p.Height-1)))
			row = min(max(row, 0), p.Height-1)
			img.SetGray(i, row, color.Gray{Y: 255})
		}
		st.Mean = float32(sum / float64(p.Width))
		return img, st
	}

	for j := 0; j < p.Height; j++ {
		y := (p.OffsetY + float32(j)) * p.Frequency
		for i := 0; i < p.Width; i++ {
			v := sample((p.OffsetX+float32(i))*p.Frequency, y)
			record(v)
			img.SetGray(i, j, color.Gray{Y: toGray(v)})
		}
	}
	st.Mean = float32(sum / float64(p.Width*p.Height))
	return img, st
}

func toGray(v float32) uint8 {
	g := math.Round(float64(v+1) * 0.5 * 255)
	return uint8(min(max(g, 0), 255))
}

// Upscale enlarges img by factor. smooth selects Catmull-Rom filtering;
// otherwise pixels are repeated.
func Upscale(img image.Image, factor int, smooth bool) image.Image {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	var interp xdraw.Interpolator = xdraw.NearestNeighbor
	if smooth {
		interp = xdraw.CatmullRom
	}
	interp.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

// Encode writes img in the named format: png, bmp or tiff.
func Encode(w io.Writer, img image.Image, format string) error {
	var err error
	switch format {
	case "png":
		err = png.Encode(w, img)
	case "bmp":
		err = bmp.Encode(w, img)
	case "tiff":
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("unknown image format %q", format)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}
	return nil
}
