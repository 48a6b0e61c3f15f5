// Package vectors produces input/output pairs for every exported noise
// function so other implementations can be checked against this one.
package vectors

import (
	"fmt"
	"math"

	"github.com/OCharnyshevich/kvant/pkg/noise"
)

// Vector is one evaluated sample. Bits is the IEEE-754 single-precision
// encoding of Value as eight hex digits.
type Vector struct {
	Func  string    `json:"func"`
	Args  []float32 `json:"args"`
	Value float32   `json:"value"`
	Bits  string    `json:"bits"`
}

var points = [][3]float32{
	{0.5, 0.5, 0.5},
	{0.25, 0.5, 0.75},
	{-1.3, 2.7, 0.4},
	{12.34, -56.78, 9.1},
	{1.1, 2.2, 3.3},
	{255.9, -0.001, 128.5},
}

var octaves = []int{0, 1, 4}

func newVector(fn string, v float32, args ...float32) Vector {
	return Vector{
		Func:  fn,
		Args:  args,
		Value: v,
		Bits:  fmt.Sprintf("%08x", math.Float32bits(v)),
	}
}

// Generate evaluates the fixed sample set.
func Generate() []Vector {
	var out []Vector
	for _, p := range points {
		x, y, z := p[0], p[1], p[2]
		out = append(out,
			newVector("Noise1D", noise.Noise1D(x), x),
			newVector("Noise2D", noise.Noise2D(x, y), x, y),
			newVector("Noise3D", noise.Noise3D(x, y, z), x, y, z),
		)
		for _, o := range octaves {
			of := float32(o)
			out = append(out,
				newVector("FBM1D", noise.FBM1D(x, o), x, of),
				newVector("FBM2D", noise.FBM2D(x, y, o), x, y, of),
				newVector("FBM3D", noise.FBM3D(x, y, z, o), x, y, z, of),
			)
		}
		out = append(out,
			newVector("Fractal4Coeffs", noise.Fractal4Coeffs(x, y, z, 1, 2, 4, 8), x, y, z, 1, 2, 4, 8),
			newVector("Fractal4Coeffs", noise.Fractal4Coeffs(x, y, z, 0.5, 0.25, 0.125, 0.0625), x, y, z, 0.5, 0.25, 0.125, 0.0625),
		)
	}
	return out
}
