package mesh

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// quad returns a unit square in the XY plane made of two triangles, facing +Z.
func quad() *Mesh {
	return &Mesh{
		Vertices: []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}},
		UV:       []mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
		Indices:  []int{0, 1, 2, 0, 2, 3},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(m *Mesh)
		want   error
	}{
		{"ok", func(m *Mesh) {}, nil},
		{"normal_count", func(m *Mesh) { m.Normals = make([]mgl32.Vec3, 2) }, ErrNormalCount},
		{"uv_count", func(m *Mesh) { m.UV = m.UV[:3] }, ErrUVCount},
		{"index_count", func(m *Mesh) { m.Indices = m.Indices[:4] }, ErrIndexCount},
		{"index_high", func(m *Mesh) { m.Indices[5] = 4 }, ErrIndexRange},
		{"index_negative", func(m *Mesh) { m.Indices[0] = -1 }, ErrIndexRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := quad()
			tt.modify(m)
			err := m.Validate()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRecalculateNormals(t *testing.T) {
	m := quad()
	m.RecalculateNormals()

	if len(m.Normals) != len(m.Vertices) {
		t.Fatalf("got %d normals, want %d", len(m.Normals), len(m.Vertices))
	}
	want := mgl32.Vec3{0, 0, 1}
	for i, n := range m.Normals {
		if !n.ApproxEqual(want) {
			t.Errorf("normal %d = %v, want %v", i, n, want)
		}
	}
}

func TestRecalculateNormalsDegenerate(t *testing.T) {
	m := &Mesh{
		Vertices: []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}},
		Indices:  []int{0, 1, 2},
	}
	m.RecalculateNormals()
	for i, n := range m.Normals {
		if n != (mgl32.Vec3{}) {
			t.Errorf("normal %d = %v, want zero", i, n)
		}
	}
}

func TestUnweld(t *testing.T) {
	m := quad()
	m.RecalculateNormals()
	u := m.Unweld()

	if len(u.Vertices) != 6 || len(u.Normals) != 6 || len(u.UV) != 6 {
		t.Fatalf("unwelded sizes v=%d n=%d uv=%d, want 6 each", len(u.Vertices), len(u.Normals), len(u.UV))
	}
	for i, idx := range u.Indices {
		if idx != i {
			t.Errorf("indices[%d] = %d, want %d", i, idx, i)
		}
		src := m.Indices[i]
		if u.Vertices[i] != m.Vertices[src] {
			t.Errorf("vertex %d = %v, want %v", i, u.Vertices[i], m.Vertices[src])
		}
		if u.UV[i] != m.UV[src] {
			t.Errorf("uv %d = %v, want %v", i, u.UV[i], m.UV[src])
		}
	}
	if err := u.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestClone(t *testing.T) {
	m := quad()
	c := m.Clone()
	c.Vertices[0] = mgl32.Vec3{9, 9, 9}
	c.Indices[0] = 3
	c.UV[0] = mgl32.Vec2{5, 5}

	if m.Vertices[0] != (mgl32.Vec3{}) || m.Indices[0] != 0 || m.UV[0] != (mgl32.Vec2{}) {
		t.Error("Clone shares storage with the source")
	}
	if c.Normals != nil {
		t.Error("Clone invented normals")
	}
}

func TestBounds(t *testing.T) {
	m := &Mesh{Vertices: []mgl32.Vec3{{1, -2, 3}, {-4, 5, 0}, {2, 0, -6}}}
	lo, hi := m.Bounds()
	if want := (mgl32.Vec3{-4, -2, -6}); lo != want {
		t.Errorf("lo = %v, want %v", lo, want)
	}
	if want := (mgl32.Vec3{2, 5, 3}); hi != want {
		t.Errorf("hi = %v, want %v", hi, want)
	}

	lo, hi = (&Mesh{}).Bounds()
	if lo != (mgl32.Vec3{}) || hi != (mgl32.Vec3{}) {
		t.Errorf("empty bounds = %v %v, want zero", lo, hi)
	}
}
