package mesh

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// objRef is one corner of an OBJ face, 0-based; -1 marks a missing attribute.
type objRef struct {
	v, vt, vn int
}

// DecodeOBJ reads the geometry subset of a Wavefront OBJ file: v, vt, vn and
// f statements. Polygons are fan-triangulated and each distinct v/vt/vn
// combination becomes one vertex. Texture coordinates and normals are kept
// only if every face corner references them; missing normals are computed
// from the faces. Other statements are ignored.
func DecodeOBJ(r io.Reader) (*Mesh, error) {
	var (
		positions []mgl32.Vec3
		uvs       []mgl32.Vec2
		normals   []mgl32.Vec3
		m         = &Mesh{}
		seen      = make(map[objRef]int)
		allUV     = true
		allNormal = true
	)

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex: %w", line, err)
			}
			positions = append(positions, mgl32.Vec3{v[0], v[1], v[2]})
		case "vt":
			v, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("line %d: texture coordinate: %w", line, err)
			}
			uvs = append(uvs, mgl32.Vec2{v[0], v[1]})
		case "vn":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: normal: %w", line, err)
			}
			normals = append(normals, mgl32.Vec3{v[0], v[1], v[2]})
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices, got %d", line, len(fields)-1)
			}
			corners := make([]int, 0, len(fields)-1)
			for _, f := range fields[1:] {
				ref, err := parseRef(f, len(positions), len(uvs), len(normals))
				if err != nil {
					return nil, fmt.Errorf("line %d: face: %w", line, err)
				}
				if ref.vt < 0 {
					allUV = false
				}
				if ref.vn < 0 {
					allNormal = false
				}
				idx, ok := seen[ref]
				if !ok {
					idx = len(m.Vertices)
					seen[ref] = idx
					m.Vertices = append(m.Vertices, positions[ref.v])
					var uv mgl32.Vec2
					if ref.vt >= 0 {
						uv = uvs[ref.vt]
					}
					m.UV = append(m.UV, uv)
					var n mgl32.Vec3
					if ref.vn >= 0 {
						n = normals[ref.vn]
					}
					m.Normals = append(m.Normals, n)
				}
				corners = append(corners, idx)
			}
			for i := 1; i+1 < len(corners); i++ {
				m.Indices = append(m.Indices, corners[0], corners[i], corners[i+1])
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}

	if !allUV || len(m.Vertices) == 0 {
		m.UV = nil
	}
	if !allNormal || len(m.Vertices) == 0 {
		m.RecalculateNormals()
	}
	return m, nil
}

func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("want %d components, got %d", n, len(fields))
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(f)
	}
	return out, nil
}

// parseRef parses "v", "v/vt", "v//vn" or "v/vt/vn". Negative indices count
// back from the most recent element.
func parseRef(s string, nv, nvt, nvn int) (objRef, error) {
	parts := strings.Split(s, "/")
	if len(parts) > 3 {
		return objRef{}, fmt.Errorf("bad reference %q", s)
	}
	ref := objRef{v: -1, vt: -1, vn: -1}
	targets := []*int{&ref.v, &ref.vt, &ref.vn}
	counts := []int{nv, nvt, nvn}
	for i, p := range parts {
		if p == "" {
			if i == 0 {
				return objRef{}, fmt.Errorf("bad reference %q", s)
			}
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return objRef{}, fmt.Errorf("bad reference %q: %w", s, err)
		}
		switch {
		case n > 0:
			n--
		case n < 0:
			n += counts[i]
		default:
			return objRef{}, fmt.Errorf("bad reference %q: index 0", s)
		}
		if n < 0 || n >= counts[i] {
			return objRef{}, fmt.Errorf("reference %q out of range", s)
		}
		*targets[i] = n
	}
	return ref, nil
}

// EncodeOBJ writes m as OBJ text. Texture coordinates and normals are written
// when present, and faces reference them with the same index as the vertex.
func EncodeOBJ(w io.Writer, m *Mesh) error {
	bw := bufio.NewWriter(w)
	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "v %s %s %s\n", ftoa(v[0]), ftoa(v[1]), ftoa(v[2]))
	}
	for _, uv := range m.UV {
		fmt.Fprintf(bw, "vt %s %s\n", ftoa(uv[0]), ftoa(uv[1]))
	}
	for _, n := range m.Normals {
		fmt.Fprintf(bw, "vn %s %s %s\n", ftoa(n[0]), ftoa(n[1]), ftoa(n[2]))
	}

	hasUV, hasNormal := len(m.UV) > 0, len(m.Normals) > 0
	for i := 0; i+2 < len(m.Indices); i += 3 {
		bw.WriteString("f")
		for _, idx := range m.Indices[i : i+3] {
			n := idx + 1
			switch {
			case hasUV && hasNormal:
				fmt.Fprintf(bw, " %d/%d/%d", n, n, n)
			case hasUV:
				fmt.Fprintf(bw, " %d/%d", n, n)
			case hasNormal:
				fmt.Fprintf(bw, " %d//%d", n, n)
			default:
				fmt.Fprintf(bw, " %d", n)
			}
		}
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write obj: %w", err)
	}
	return nil
}

func ftoa(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}
