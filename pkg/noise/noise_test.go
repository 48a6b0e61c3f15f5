package noise

import (
	"math"
	"math/rand"
	"sync"
	"testing"
)

// Expected values come from the Kvant native plugin, evaluated in IEEE-754
// single precision.
func TestNoiseReferenceVectors(t *testing.T) {
	tests := []struct {
		name string
		got  float32
		want float32
	}{
		{"1d_0.5", Noise1D(0.5), 0.5},
		{"1d_0.25", Noise1D(0.25), 0.3017578125},
		{"1d_1.75", Noise1D(1.75), -0.3017578125},
		{"1d_-0.3", Noise1D(-0.3), -0.365231990814209},
		{"1d_3.14159", Noise1D(3.14159), 0.15786078572273254},
		{"1d_-7.6", Noise1D(-7.6), -0.46348807215690613},
		{"1d_100.1", Noise1D(100.1), 0.10684620589017868},
		{"1d_255.9", Noise1D(255.9), -0.10685527324676514},
		{"2d_0.5_0.5", Noise2D(0.5, 0.5), 0},
		{"2d_0.25_0.75", Noise2D(0.25, 0.75), -0.3554420471191406},
		{"2d_-1.3_2.7", Noise2D(-1.3, 2.7), 0.08189085125923157},
		{"2d_12.34_-56.78", Noise2D(12.34, -56.78), 0.15829434990882874},
		{"2d_3.5_0.1", Noise2D(3.5, 0.1), -0.587160050868988},
		{"3d_0.5_0.5_0.5", Noise3D(0.5, 0.5, 0.5), 0.25},
		{"3d_0.25_0.5_0.75", Noise3D(0.25, 0.5, 0.75), 0.2697153091430664},
		{"3d_-1.3_2.7_0.4", Noise3D(-1.3, 2.7, 0.4), 0.1462196260690689},
		{"3d_12.34_-56.78_9.1", Noise3D(12.34, -56.78, 9.1), 0.41189777851104736},
		{"3d_1.1_2.2_3.3", Noise3D(1.1, 2.2, 3.3), -0.028381116688251495},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := math.Abs(float64(tt.got - tt.want)); diff > 1e-6 {
				t.Errorf("got %v, want %v (diff %g)", tt.got, tt.want, diff)
			}
		})
	}
}

func TestNoiseDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		x := rng.Float32()*512 - 256
		y := rng.Float32()*512 - 256
		z := rng.Float32()*512 - 256

		if a, b := Noise1D(x), Noise1D(x); math.Float32bits(a) != math.Float32bits(b) {
			t.Fatalf("Noise1D(%v) not deterministic: %v vs %v", x, a, b)
		}
		if a, b := Noise2D(x, y), Noise2D(x, y); math.Float32bits(a) != math.Float32bits(b) {
			t.Fatalf("Noise2D(%v, %v) not deterministic: %v vs %v", x, y, a, b)
		}
		if a, b := Noise3D(x, y, z), Noise3D(x, y, z); math.Float32bits(a) != math.Float32bits(b) {
			t.Fatalf("Noise3D(%v, %v, %v) not deterministic: %v vs %v", x, y, z, a, b)
		}
	}
}

func TestNoisePeriodic(t *testing.T) {
	// Multiples of 1/64 keep x+256 exact in float32, so the fractional part
	// is identical on both sides of the period.
	for i := -300; i < 300; i++ {
		x := float32(i) / 64
		y := float32(i*7%97) / 64
		z := float32(i*13%89) / 64

		if a, b := Noise1D(x), Noise1D(x+256); a != b {
			t.Fatalf("Noise1D(%v) = %v, Noise1D(%v) = %v", x, a, x+256, b)
		}
		if a, b := Noise2D(x, y), Noise2D(x+256, y); a != b {
			t.Fatalf("Noise2D x period at (%v, %v): %v vs %v", x, y, a, b)
		}
		if a, b := Noise2D(x, y), Noise2D(x, y-256); a != b {
			t.Fatalf("Noise2D y period at (%v, %v): %v vs %v", x, y, a, b)
		}
		if a, b := Noise3D(x, y, z), Noise3D(x+256, y, z); a != b {
			t.Fatalf("Noise3D x period at (%v, %v, %v): %v vs %v", x, y, z, a, b)
		}
		if a, b := Noise3D(x, y, z), Noise3D(x, y+256, z); a != b {
			t.Fatalf("Noise3D y period at (%v, %v, %v): %v vs %v", x, y, z, a, b)
		}
		if a, b := Noise3D(x, y, z), Noise3D(x, y, z+512); a != b {
			t.Fatalf("Noise3D z period at (%v, %v, %v): %v vs %v", x, y, z, a, b)
		}
	}
}

func TestNoiseConcurrent(t *testing.T) {
	const n = 2000
	type sample struct{ n1, n2, n3, f3, f4 float32 }
	at := func(i int) sample {
		x := float32(i)*0.173 - 150
		y := float32(i)*0.291 + 7
		z := float32(i)*-0.057 + 3
		return sample{
			Noise1D(x),
			Noise2D(x, y),
			Noise3D(x, y, z),
			FBM3D(x, y, z, 5),
			Fractal4Coeffs(x, y, z, 1, 2, 4, 8),
		}
	}

	want := make([]sample, n)
	for i := range want {
		want[i] = at(i)
	}

	var wg sync.WaitGroup
	errs := make(chan int, 16*n)
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for k := 0; k < n; k++ {
				i := (k + g*131) % n
				if at(i) != want[i] {
					errs <- i
				}
			}
		}(g)
	}
	wg.Wait()
	close(errs)
	for i := range errs {
		t.Errorf("sample %d differs under concurrent use", i)
	}
}

func TestNoiseZeroAtLattice(t *testing.T) {
	for n := -300; n <= 300; n += 7 {
		x := float32(n)
		y := float32(n * 3 % 101)
		z := float32(-n * 5 % 67)
		if v := Noise1D(x); v != 0 {
			t.Errorf("Noise1D(%v) = %v, want 0", x, v)
		}
		if v := Noise2D(x, y); v != 0 {
			t.Errorf("Noise2D(%v, %v) = %v, want 0", x, y, v)
		}
		if v := Noise3D(x, y, z); v != 0 {
			t.Errorf("Noise3D(%v, %v, %v) = %v, want 0", x, y, z, v)
		}
	}
}

func TestNoiseRange(t *testing.T) {
	rng := rand.New(rand.NewSource(12345))
	var max1, max2, max3 float64
	for i := 0; i < 100000; i++ {
		x := rng.Float32()*600 - 300
		y := rng.Float32()*600 - 300
		z := rng.Float32()*600 - 300
		max1 = math.Max(max1, math.Abs(float64(Noise1D(x))))
		max2 = math.Max(max2, math.Abs(float64(Noise2D(x, y))))
		max3 = math.Max(max3, math.Abs(float64(Noise3D(x, y, z))))
	}

	const eps = 1e-6
	if max1 > 0.5+eps {
		t.Errorf("max |Noise1D| = %f, want <= 0.5", max1)
	}
	if max2 > 1.0+eps {
		t.Errorf("max |Noise2D| = %f, want <= 1.0", max2)
	}
	if max3 >= 1.25 {
		t.Errorf("max |Noise3D| = %f, want < 1.25", max3)
	}
	// A broken hash tends to flatten the field; make sure it actually varies.
	if max1 < 0.3 || max2 < 0.5 || max3 < 0.5 {
		t.Errorf("noise suspiciously flat: max1=%f max2=%f max3=%f", max1, max2, max3)
	}
}

func TestNoiseContinuousAcrossZero(t *testing.T) {
	const eps = 1e-4
	if d := math.Abs(float64(Noise1D(-eps) - Noise1D(eps))); d > 1e-3 {
		t.Errorf("Noise1D jumps across 0: diff=%f", d)
	}
	if d := math.Abs(float64(Noise2D(-eps, 0.3) - Noise2D(eps, 0.3))); d > 1e-3 {
		t.Errorf("Noise2D jumps across x=0: diff=%f", d)
	}
	if d := math.Abs(float64(Noise3D(0.3, 0.6, -eps) - Noise3D(0.3, 0.6, eps))); d > 1e-3 {
		t.Errorf("Noise3D jumps across z=0: diff=%f", d)
	}
}

func TestNoiseSmoothness(t *testing.T) {
	// Gradient magnitude is bounded, so neighbouring samples cannot differ
	// by more than a few times the step.
	const step = 0.01
	prev := Noise3D(0, 0.37, 0.71)
	for i := 1; i < 2000; i++ {
		x := float32(i) * step
		curr := Noise3D(x, 0.37, 0.71)
		if d := math.Abs(float64(curr - prev)); d > 0.05 {
			t.Fatalf("Noise3D changed too rapidly at x=%f: diff=%f", x, d)
		}
		prev = curr
	}
}

func BenchmarkNoise1D(b *testing.B) {
	var sink float32
	for i := 0; i < b.N; i++ {
		sink += Noise1D(float32(i) * 0.013)
	}
	_ = sink
}

func BenchmarkNoise2D(b *testing.B) {
	var sink float32
	for i := 0; i < b.N; i++ {
		sink += Noise2D(float32(i)*0.013, 0.7)
	}
	_ = sink
}

func BenchmarkNoise3D(b *testing.B) {
	var sink float32
	for i := 0; i < b.N; i++ {
		sink += Noise3D(float32(i)*0.013, 0.7, 1.9)
	}
	_ = sink
}
