package noise

import "math"

// The explicit float32 conversions below stop the compiler from fusing a
// multiply and an add into one FMA instruction. Every product has to be
// rounded on its own for the output to match the reference bit for bit.

// fade is the quintic 6t^5 - 15t^4 + 10t^3.
func fade(t float32) float32 {
	return t * t * t * (float32(t*(float32(t*6)-15)) + 10)
}

func lerp(t, a, b float32) float32 {
	return a + float32(t*(b-a))
}

// floor rounds toward negative infinity, so lattice cells stay continuous
// across zero.
func floor(x float32) int {
	return int(math.Floor(float64(x)))
}

// grad1 picks a +x or -x slope from the low bit of h.
func grad1(h int, x float32) float32 {
	if h&1 != 0 {
		return x
	}
	return -x
}

func grad2(h int, x, y float32) float32 {
	if h&1 == 0 {
		x = -x
	}
	if h&2 == 0 {
		y = -y
	}
	return x + y
}

// grad3 chooses one of Perlin's 12 cube-edge directions (plus 4 repeats)
// from the low four bits of h.
func grad3(h int, x, y, z float32) float32 {
	h &= 15
	u := y
	if h < 8 {
		u = x
	}
	var v float32
	switch {
	case h < 4:
		v = y
	case h == 12 || h == 14:
		v = x
	default:
		v = z
	}
	if h&1 == 0 {
		u = -u
	}
	if h&2 == 0 {
		v = -v
	}
	return u + v
}
