// Package distance provides vector math for instance comparison.
// Vectors are short (tens to hundreds of float32s), so plain scalar
// loops are used throughout.
package distance

import "math"

// Dot calculates the dot product of two vectors.
// Assumes vectors are the same length (caller's responsibility).
func Dot(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// SquaredL2 calculates the squared L2 (Euclidean) distance between two
// vectors. Assumes vectors are the same length (caller's responsibility).
func SquaredL2(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// NormalizeL2InPlace L2-normalizes v in place.
// Returns false if v has zero L2 norm.
func NormalizeL2InPlace(v []float32) bool {
	if len(v) == 0 {
		return false
	}
	norm2 := Dot(v, v)
	if norm2 == 0 {
		return false
	}
	inv := 1 / float32(math.Sqrt(float64(norm2)))
	for i := range v {
		v[i] *= inv
	}
	return true
}

// OptimalCosine calculates the angular distance between two
// L2-normalized point sequences after cancelling the planar rotation
// that best aligns them, estimated from their cross-correlation. The
// compensating rotation is limited to a quarter turn either way, so
// small tilts are forgiven while opposite-direction sequences stay
// distant. Vectors are interleaved (x0, y0, x1, y1, ...) and must be
// the same length. The result is in radians; identical sequences give 0.
func OptimalCosine(a, b []float32) float32 {
	var dot, cross float64
	for i := 0; i < len(a); i += 2 {
		x1, y1 := float64(a[i]), float64(a[i+1])
		x2, y2 := float64(b[i]), float64(b[i+1])
		dot += x1*x2 + y1*y2
		cross += x1*y2 - y1*x2
	}
	var angle float64
	switch {
	case dot != 0:
		angle = math.Atan(cross / dot)
	case cross > 0:
		angle = math.Pi / 2
	case cross < 0:
		angle = -math.Pi / 2
	}
	cos := dot*math.Cos(angle) + cross*math.Sin(angle)
	// Guard against rounding slightly outside acos' domain.
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return float32(math.Acos(cos))
}
