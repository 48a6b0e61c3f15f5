package vectors

import (
	"math"
	"strconv"
	"testing"
)

func TestGenerate(t *testing.T) {
	vs := Generate()
	// Per point: 3 noise + 3 fbm per octave count + 2 fractal4.
	if want := len(points) * (3 + 3*len(octaves) + 2); len(vs) != want {
		t.Fatalf("got %d vectors, want %d", len(vs), want)
	}

	for i, v := range vs {
		bits, err := strconv.ParseUint(v.Bits, 16, 32)
		if err != nil {
			t.Fatalf("vector %d: bad bits %q: %v", i, v.Bits, err)
		}
		if math.Float32frombits(uint32(bits)) != v.Value {
			t.Errorf("vector %d: bits %s do not encode %v", i, v.Bits, v.Value)
		}
	}
}

func TestGenerateKnownValues(t *testing.T) {
	vs := Generate()
	want := map[string]string{
		"Noise1D": "3f000000", // 0.5
		"Noise2D": "00000000", // 0
		"Noise3D": "3e800000", // 0.25
	}
	// The first point is (0.5, 0.5, 0.5).
	for _, v := range vs[:3] {
		if v.Bits != want[v.Func] {
			t.Errorf("%s(0.5...) bits = %s, want %s", v.Func, v.Bits, want[v.Func])
		}
	}
}

func TestGenerateZeroOctaves(t *testing.T) {
	for _, v := range Generate() {
		if (v.Func == "FBM1D" || v.Func == "FBM2D" || v.Func == "FBM3D") && v.Args[len(v.Args)-1] == 0 {
			if v.Value != 0 {
				t.Errorf("%s%v = %v, want 0", v.Func, v.Args, v.Value)
			}
		}
	}
}
