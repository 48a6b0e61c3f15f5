package noise

// FBM1D sums octave layers of Noise1D. Each layer doubles the frequency and
// halves the weight, starting from weight 0.5. octave <= 0 returns 0.
func FBM1D(x float32, octave int) float32 {
	var f float32
	w := float32(0.5)
	for i := 0; i < octave; i++ {
		f += float32(w * Noise1D(x))
		x *= 2
		w *= 0.5
	}
	return f
}

// FBM2D is the two-dimensional form of FBM1D.
func FBM2D(x, y float32, octave int) float32 {
	var f float32
	w := float32(0.5)
	for i := 0; i < octave; i++ {
		f += float32(w * Noise2D(x, y))
		x *= 2
		y *= 2
		w *= 0.5
	}
	return f
}

// FBM3D is the three-dimensional form of FBM1D.
func FBM3D(x, y, z float32, octave int) float32 {
	var f float32
	w := float32(0.5)
	for i := 0; i < octave; i++ {
		f += float32(w * Noise3D(x, y, z))
		x *= 2
		y *= 2
		z *= 2
		w *= 0.5
	}
	return f
}

// Fractal4Coeffs sums four octaves of Noise3D at frequencies 1, 2, 4 and 8
// with caller-chosen weights w0..w3.
//
// Fractal4Coeffs(x, y, z, 0.5, 0.25, 0.125, 0.0625) equals FBM3D(x, y, z, 4).
func Fractal4Coeffs(x, y, z, w0, w1, w2, w3 float32) float32 {
	f := w0 * Noise3D(x, y, z)
	x, y, z = x*2, y*2, z*2
	f += float32(w1 * Noise3D(x, y, z))
	x, y, z = x*2, y*2, z*2
	f += float32(w2 * Noise3D(x, y, z))
	x, y, z = x*2, y*2, z*2
	return f + float32(w3*Noise3D(x, y, z))
}
