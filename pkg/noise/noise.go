// Package noise implements classic Perlin gradient noise in one, two and three
// dimensions, plus fractal sums of it.
//
// Output is bit-compatible with the Kvant native plugin, which in turn follows
// Ken Perlin's reference Java implementation. All functions are pure and safe
// for concurrent use. Noise repeats every 256 units along each axis and is zero
// at every integer lattice point.
//
// Gradient selection follows the plugin: a set low bit of the hashed corner
// picks +x, a clear one -x, and likewise bit 1 for the second component.
package noise

// Noise1D returns 1D Perlin noise at x, in [-0.5, 0.5].
func Noise1D(x float32) float32 {
	X := floor(x)
	x -= float32(X)
	X &= 0xff
	return lerp(fade(x), grad1(lookup(X), x), grad1(lookup(X+1), x-1))
}

// Noise2D returns 2D Perlin noise at (x, y), roughly in [-1, 1].
func Noise2D(x, y float32) float32 {
	X := floor(x)
	Y := floor(y)
	x -= float32(X)
	y -= float32(Y)
	X &= 0xff
	Y &= 0xff
	u := fade(x)
	v := fade(y)
	A := (lookup(X) + Y) & 0xff
	B := (lookup(X+1) + Y) & 0xff
	return lerp(v,
		lerp(u, grad2(lookup(A), x, y), grad2(lookup(B), x-1, y)),
		lerp(u, grad2(lookup(A+1), x, y-1), grad2(lookup(B+1), x-1, y-1)))
}

// Noise3D returns 3D Perlin noise at (x, y, z). Samples stay within about
// ±1.2 and are usually inside [-1, 1].
func Noise3D(x, y, z float32) float32 {
	X := floor(x)
	Y := floor(y)
	Z := floor(z)
	x -= float32(X)
	y -= float32(Y)
	z -= float32(Z)
	X &= 0xff
	Y &= 0xff
	Z &= 0xff
	u := fade(x)
	v := fade(y)
	w := fade(z)

	A := (lookup(X) + Y) & 0xff
	B := (lookup(X+1) + Y) & 0xff
	AA := (lookup(A) + Z) & 0xff
	BA := (lookup(B) + Z) & 0xff
	AB := (lookup(A+1) + Z) & 0xff
	BB := (lookup(B+1) + Z) & 0xff

	return lerp(w,
		lerp(v,
			lerp(u, grad3(lookup(AA), x, y, z), grad3(lookup(BA), x-1, y, z)),
			lerp(u, grad3(lookup(AB), x, y-1, z), grad3(lookup(BB), x-1, y-1, z))),
		lerp(v,
			lerp(u, grad3(lookup(AA+1), x, y, z-1), grad3(lookup(BA+1), x-1, y, z-1)),
			lerp(u, grad3(lookup(AB+1), x, y-1, z-1), grad3(lookup(BB+1), x-1, y-1, z-1))))
}
