// Package testutil provides deterministic helpers for tests: a seeded
// RNG and synthetic gesture generators.
package testutil

import (
	"math"
	"math/rand"
	"sync"

	"github.com/hupe1980/gesturestore/model"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Float32 returns, as a float32, a pseudo-random number in [0.0,1.0).
func (r *RNG) Float32() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float32()
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Jitter returns a copy of the stroke with every coordinate perturbed
// by uniform noise in [-amount, amount). Timestamps are preserved.
func (r *RNG) Jitter(s model.Stroke, amount float32) model.Stroke {
	points := make([]model.Point, len(s.Points))
	for i, p := range s.Points {
		points[i] = model.Point{
			X: p.X + (r.Float32()*2-1)*amount,
			Y: p.Y + (r.Float32()*2-1)*amount,
			T: p.T,
		}
	}
	return model.Stroke{Points: points}
}

// LineStroke returns a stroke of n points evenly spaced between
// (x0, y0) and (x1, y1), with timestamps 10ms apart.
func LineStroke(n int, x0, y0, x1, y1 float32) model.Stroke {
	points := make([]model.Point, n)
	for i := range points {
		f := float32(i) / float32(n-1)
		points[i] = model.Point{
			X: x0 + f*(x1-x0),
			Y: y0 + f*(y1-y0),
			T: int64(i) * 10,
		}
	}
	return model.Stroke{Points: points}
}

// CircleStroke returns a stroke of n points tracing a full circle of
// the given radius around (cx, cy), with timestamps 10ms apart.
func CircleStroke(n int, cx, cy, radius float32) model.Stroke {
	points := make([]model.Point, n)
	for i := range points {
		angle := 2 * math.Pi * float64(i) / float64(n)
		points[i] = model.Point{
			X: cx + radius*float32(math.Cos(angle)),
			Y: cy + radius*float32(math.Sin(angle)),
			T: int64(i) * 10,
		}
	}
	return model.Stroke{Points: points}
}

// RotatedStroke returns a copy of the stroke rotated by angle radians
// around the stroke's centroid.
func RotatedStroke(s model.Stroke, angle float64) model.Stroke {
	var cx, cy float64
	for _, p := range s.Points {
		cx += float64(p.X)
		cy += float64(p.Y)
	}
	cx /= float64(len(s.Points))
	cy /= float64(len(s.Points))

	sin, cos := math.Sincos(angle)
	points := make([]model.Point, len(s.Points))
	for i, p := range s.Points {
		x := float64(p.X) - cx
		y := float64(p.Y) - cy
		points[i] = model.Point{
			X: float32(cx + x*cos - y*sin),
			Y: float32(cy + x*sin + y*cos),
			T: p.T,
		}
	}
	return model.Stroke{Points: points}
}
