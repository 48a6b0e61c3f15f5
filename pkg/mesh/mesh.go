// Package mesh holds an indexed triangle mesh and the geometry helpers the
// deformer needs: validation, unwelding, normal recalculation and bounds.
package mesh

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	ErrNormalCount = errors.New("normal count does not match vertex count")
	ErrUVCount     = errors.New("uv count does not match vertex count")
	ErrIndexCount  = errors.New("index count is not a multiple of 3")
	ErrIndexRange  = errors.New("index out of range")
)

// Mesh is a triangle list. Normals and UV are optional; when present they
// are per-vertex and parallel to Vertices.
type Mesh struct {
	Vertices []mgl32.Vec3
	Normals  []mgl32.Vec3
	UV       []mgl32.Vec2
	Indices  []int
}

// Validate checks attribute lengths and that every index refers to a vertex.
func (m *Mesh) Validate() error {
	if len(m.Normals) != 0 && len(m.Normals) != len(m.Vertices) {
		return fmt.Errorf("%w: %d normals, %d vertices", ErrNormalCount, len(m.Normals), len(m.Vertices))
	}
	if len(m.UV) != 0 && len(m.UV) != len(m.Vertices) {
		return fmt.Errorf("%w: %d uvs, %d vertices", ErrUVCount, len(m.UV), len(m.Vertices))
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: %d", ErrIndexCount, len(m.Indices))
	}
	for i, idx := range m.Indices {
		if idx < 0 || idx >= len(m.Vertices) {
			return fmt.Errorf("%w: indices[%d] = %d, %d vertices", ErrIndexRange, i, idx, len(m.Vertices))
		}
	}
	return nil
}

// Clone returns a deep copy.
func (m *Mesh) Clone() *Mesh {
	c := &Mesh{
		Vertices: append([]mgl32.Vec3(nil), m.Vertices...),
		Indices:  append([]int(nil), m.Indices...),
	}
	if m.Normals != nil {
		c.Normals = append([]mgl32.Vec3(nil), m.Normals...)
	}
	if m.UV != nil {
		c.UV = append([]mgl32.Vec2(nil), m.UV...)
	}
	return c
}

// Unweld gives every index its own vertex, so each triangle can carry a flat
// normal. The result has indices 0..len(Indices)-1.
func (m *Mesh) Unweld() *Mesh {
	n := len(m.Indices)
	out := &Mesh{
		Vertices: make([]mgl32.Vec3, n),
		Indices:  make([]int, n),
	}
	if len(m.Normals) > 0 {
		out.Normals = make([]mgl32.Vec3, n)
	}
	if len(m.UV) > 0 {
		out.UV = make([]mgl32.Vec2, n)
	}
	for i, idx := range m.Indices {
		out.Indices[i] = i
		out.Vertices[i] = m.Vertices[idx]
		if out.Normals != nil {
			out.Normals[i] = m.Normals[idx]
		}
		if out.UV != nil {
			out.UV[i] = m.UV[idx]
		}
	}
	return out
}

// RecalculateNormals replaces Normals with area-weighted averages of the
// adjacent face normals. Vertices that only touch degenerate triangles get a
// zero normal.
func (m *Mesh) RecalculateNormals() {
	if len(m.Normals) != len(m.Vertices) {
		m.Normals = make([]mgl32.Vec3, len(m.Vertices))
	} else {
		clear(m.Normals)
	}

	for i := 0; i+2 < len(m.Indices); i += 3 {
		ia, ib, ic := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		a, b, c := m.Vertices[ia], m.Vertices[ib], m.Vertices[ic]
		// Cross product length is twice the triangle area.
		fn := b.Sub(a).Cross(c.Sub(a))
		m.Normals[ia] = m.Normals[ia].Add(fn)
		m.Normals[ib] = m.Normals[ib].Add(fn)
		m.Normals[ic] = m.Normals[ic].Add(fn)
	}

	for i, n := range m.Normals {
		if l := n.Len(); l > 0 {
			m.Normals[i] = n.Mul(1 / l)
		}
	}
}

// Bounds returns the axis-aligned bounding box of the vertices. An empty
// mesh yields two zero vectors.
func (m *Mesh) Bounds() (lo, hi mgl32.Vec3) {
	if len(m.Vertices) == 0 {
		return lo, hi
	}
	lo, hi = m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		for k := 0; k < 3; k++ {
			lo[k] = min(lo[k], v[k])
			hi[k] = max(hi[k], v[k])
		}
	}
	return lo, hi
}
