// Package deform animates a mesh by pushing each vertex along its normal by
// fractal Perlin noise sampled around the vertex position.
package deform

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/OCharnyshevich/kvant/pkg/mesh"
	"github.com/OCharnyshevich/kvant/pkg/noise"
)

// ErrNoNormals is returned by New when the source mesh lacks normals.
var ErrNoNormals = errors.New("source mesh has no normals")

// forward is the direction the noise field scrolls through over time.
var forward = mgl32.Vec3{0, 0, 1}

// Params controls the displacement.
type Params struct {
	Amplitude float32    `json:"amplitude"` // displacement per unit of noise
	Scale     float32    `json:"scale"`     // spatial frequency of the noise
	Speed     float32    `json:"speed"`     // scroll speed along +Z
	Smooth    bool       `json:"smooth"`    // keep shared vertices; false unwelds for flat shading
	Weights   [4]float32 `json:"weights"`   // Fractal4Coeffs octave weights
}

// DefaultParams mirrors the stock deformer settings.
func DefaultParams() Params {
	return Params{
		Amplitude: 0.5,
		Scale:     0.5,
		Speed:     0.5,
		Weights:   [4]float32{1, 2, 4, 8},
	}
}

// Deformer holds the source mesh and the animation clock.
type Deformer struct {
	src    *mesh.Mesh
	params Params
	time   float32

	displaced []mgl32.Vec3
}

// New validates src and prepares a deformer. The source must carry one
// normal per vertex; it is copied, so later changes to src have no effect.
func New(src *mesh.Mesh, p Params) (*Deformer, error) {
	if err := src.Validate(); err != nil {
		return nil, fmt.Errorf("source mesh: %w", err)
	}
	if len(src.Normals) != len(src.Vertices) {
		return nil, ErrNoNormals
	}
	return &Deformer{
		src:       src.Clone(),
		params:    p,
		displaced: make([]mgl32.Vec3, len(src.Vertices)),
	}, nil
}

// Time returns the animation clock.
func (d *Deformer) Time() float32 { return d.time }

// SetTime moves the animation clock to t.
func (d *Deformer) SetTime(t float32) { d.time = t }

// Params returns the displacement settings.
func (d *Deformer) Params() Params { return d.params }

// Displacement returns the signed noise offset, before Amplitude, for a
// source position at the current time.
func (d *Deformer) Displacement(v mgl32.Vec3) float32 {
	p := d.params
	crd := v.Add(forward.Mul(d.time)).Mul(p.Scale)
	return noise.Fractal4Coeffs(crd[0], crd[1], crd[2], p.Weights[0], p.Weights[1], p.Weights[2], p.Weights[3])
}

// Step advances the clock by Speed*dt and returns a freshly displaced mesh
// with recalculated normals. The returned mesh is owned by the caller.
func (d *Deformer) Step(dt float32) *mesh.Mesh {
	d.time += d.params.Speed * dt

	for i, v := range d.src.Vertices {
		disp := d.Displacement(v) * d.params.Amplitude
		d.displaced[i] = v.Add(d.src.Normals[i].Mul(disp))
	}

	out := &mesh.Mesh{
		Vertices: append([]mgl32.Vec3(nil), d.displaced...),
		Indices:  append([]int(nil), d.src.Indices...),
	}
	if len(d.src.UV) > 0 {
		out.UV = append([]mgl32.Vec2(nil), d.src.UV...)
	}
	if !d.params.Smooth {
		out = out.Unweld()
	}
	out.RecalculateNormals()
	return out
}
