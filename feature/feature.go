// Package feature turns gesture geometry into fixed-length float32
// feature vectors ("instances") under a pair of extraction policies.
//
// The sequence type decides the vector form: sequence-sensitive
// extraction resamples a single stroke along its arc length and keeps
// point order, while sequence-invariant extraction reduces the point
// multiset to aggregate moment statistics so stroke order and stroke
// count do not matter. The orientation style only applies to
// sequence-sensitive extraction and decides whether absolute rotation
// survives into the vector.
//
// Extraction is deterministic: the same gesture under the same policy
// pair always yields the same bits.
package feature

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/hupe1980/gesturestore/distance"
	"github.com/hupe1980/gesturestore/model"
)

// SequenceType selects how stroke and point ordering affect extraction.
type SequenceType int

const (
	// SequenceInvariant produces vectors insensitive to stroke order
	// and stroke count. Multi-stroke gestures are accepted.
	SequenceInvariant SequenceType = iota + 1
	// SequenceSensitive produces vectors sensitive to point order.
	// Only single-stroke gestures are accepted.
	SequenceSensitive
)

func (t SequenceType) String() string {
	switch t {
	case SequenceInvariant:
		return "SequenceInvariant"
	case SequenceSensitive:
		return "SequenceSensitive"
	default:
		return fmt.Sprintf("Unknown(%d)", int(t))
	}
}

// OrientationStyle selects whether absolute rotation affects the
// extracted vector. It is meaningful only under SequenceSensitive.
type OrientationStyle int

const (
	// OrientationInvariant normalizes the resampled stroke against its
	// estimated rotation before producing features.
	OrientationInvariant OrientationStyle = iota + 1
	// OrientationSensitive preserves absolute angle information.
	OrientationSensitive
)

func (o OrientationStyle) String() string {
	switch o {
	case OrientationInvariant:
		return "OrientationInvariant"
	case OrientationSensitive:
		return "OrientationSensitive"
	default:
		return fmt.Sprintf("Unknown(%d)", int(o))
	}
}

const (
	// sampleSize is the number of equidistant points a stroke is
	// resampled to under SequenceSensitive.
	sampleSize = 16

	// SequenceSensitiveDimension is the vector length under
	// SequenceSensitive: interleaved (x, y) per sampled point.
	SequenceSensitiveDimension = 2 * sampleSize

	// SequenceInvariantDimension is the vector length under
	// SequenceInvariant: the moment statistics listed in moments().
	SequenceInvariantDimension = 12
)

// Dimension returns the vector length produced under the given
// sequence type. It is fixed per policy and known ahead of extraction.
func Dimension(t SequenceType) int {
	if t == SequenceSensitive {
		return SequenceSensitiveDimension
	}
	return SequenceInvariantDimension
}

// InvalidInputError indicates a gesture shape the active policy cannot
// handle, such as a multi-stroke gesture under SequenceSensitive.
type InvalidInputError struct {
	Strokes int
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("sequence-sensitive extraction requires a single stroke, got %d", e.Strokes)
}

// Instance is the feature vector derived from a gesture under a fixed
// policy pair. Label is empty when the instance represents an unlabeled
// query. ID is the originating gesture's identifier, kept so the
// instance can be removed when its gesture is.
type Instance struct {
	ID     int64
	Label  string
	Vector []float32
}

// Extract computes the instance for a gesture under the given policies.
// Pass an empty label for query instances.
func Extract(g *model.Gesture, t SequenceType, o OrientationStyle, label string) (*Instance, error) {
	var vec []float32
	switch t {
	case SequenceSensitive:
		if g.StrokeCount() != 1 {
			return nil, &InvalidInputError{Strokes: g.StrokeCount()}
		}
		vec = extractSensitive(g.Strokes()[0], o)
	default:
		vec = extractInvariant(g)
	}
	return &Instance{ID: g.ID(), Label: label, Vector: vec}, nil
}

// extractSensitive resamples the stroke to sampleSize equidistant
// points, centers them on their centroid, optionally cancels the
// stroke's estimated rotation, and L2-normalizes the result.
func extractSensitive(s model.Stroke, o OrientationStyle) []float32 {
	vec := temporalSampling(s, sampleSize)

	var cx, cy float64
	for i := 0; i < len(vec); i += 2 {
		cx += float64(vec[i])
		cy += float64(vec[i+1])
	}
	cx /= sampleSize
	cy /= sampleSize

	for i := 0; i < len(vec); i += 2 {
		vec[i] = float32(float64(vec[i]) - cx)
		vec[i+1] = float32(float64(vec[i+1]) - cy)
	}

	if o == OrientationInvariant {
		// Estimated rotation: angle from the centroid to the first
		// sampled point. Rotating by its negation aligns that point
		// with the positive x axis.
		angle := math.Atan2(float64(vec[1]), float64(vec[0]))
		sin, cos := math.Sincos(-angle)
		for i := 0; i < len(vec); i += 2 {
			x, y := float64(vec[i]), float64(vec[i+1])
			vec[i] = float32(x*cos - y*sin)
			vec[i+1] = float32(x*sin + y*cos)
		}
	}

	// A stroke whose points all coincide has zero norm; its vector
	// stays all-zero, which is still deterministic and comparable.
	distance.NormalizeL2InPlace(vec)
	return vec
}

// temporalSampling resamples the stroke to size points spaced equally
// along its arc length. A stroke with zero length collapses to its
// first point repeated.
func temporalSampling(s model.Stroke, size int) []float32 {
	vec := make([]float32, 0, 2*size)
	pts := s.Points

	total := float64(s.Length())
	lx, ly := float64(pts[0].X), float64(pts[0].Y)
	vec = append(vec, float32(lx), float32(ly))

	if total == 0 {
		for len(vec) < 2*size {
			vec = append(vec, float32(lx), float32(ly))
		}
		return vec
	}

	increment := total / float64(size-1)
	distanceSoFar := 0.0
	i := 1
	for i < len(pts) && len(vec) < 2*size {
		px, py := float64(pts[i].X), float64(pts[i].Y)
		dx, dy := px-lx, py-ly
		d := math.Hypot(dx, dy)
		if distanceSoFar+d >= increment && d > 0 {
			// Interpolate within the current segment and stay on it;
			// the next sample may land on the same segment again.
			ratio := (increment - distanceSoFar) / d
			lx += ratio * dx
			ly += ratio * dy
			vec = append(vec, float32(lx), float32(ly))
			distanceSoFar = 0
		} else {
			distanceSoFar += d
			lx, ly = px, py
			i++
		}
	}

	// Accumulated rounding can leave the tail short; pad with the last
	// position reached.
	for len(vec) < 2*size {
		vec = append(vec, float32(lx), float32(ly))
	}
	return vec
}

// extractInvariant reduces the point multiset to aggregate moment
// statistics, scale-normalized by the bounding-box diagonal. Points are
// sorted first so the result is bit-identical no matter how the points
// were distributed across strokes.
func extractInvariant(g *model.Gesture) []float32 {
	n := g.PointCount()
	xs := make([]float64, 0, n)
	ys := make([]float64, 0, n)
	type pt struct{ x, y float64 }
	pts := make([]pt, 0, n)
	for _, s := range g.Strokes() {
		for _, p := range s.Points {
			pts = append(pts, pt{float64(p.X), float64(p.Y)})
		}
	}
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].x != pts[j].x {
			return pts[i].x < pts[j].x
		}
		return pts[i].y < pts[j].y
	})
	for _, p := range pts {
		xs = append(xs, p.x)
		ys = append(ys, p.y)
	}

	minX, maxX := xs[0], xs[0]
	minY, maxY := ys[0], ys[0]
	for i := range xs {
		minX = math.Min(minX, xs[i])
		maxX = math.Max(maxX, xs[i])
		minY = math.Min(minY, ys[i])
		maxY = math.Max(maxY, ys[i])
	}
	width := maxX - minX
	height := maxY - minY
	diag := math.Hypot(width, height)
	if diag == 0 {
		// All points coincide; keep the offsets meaningful as zeros.
		diag = 1
	}

	meanX := stat.Mean(xs, nil)
	meanY := stat.Mean(ys, nil)

	var meanR, rmsR float64
	for i := range xs {
		r := math.Hypot(xs[i]-meanX, ys[i]-meanY)
		meanR += r
		rmsR += r * r
	}
	meanR /= float64(n)
	rmsR = math.Sqrt(rmsR / float64(n))

	vec := []float64{
		(meanX - (minX + width/2)) / diag,
		(meanY - (minY + height/2)) / diag,
		finite(stat.StdDev(xs, nil)) / diag,
		finite(stat.StdDev(ys, nil)) / diag,
		finite(stat.Correlation(xs, ys, nil)),
		finite(stat.Skew(xs, nil)),
		finite(stat.Skew(ys, nil)),
		finite(stat.ExKurtosis(xs, nil)),
		finite(stat.ExKurtosis(ys, nil)),
		width / diag,
		meanR / diag,
		rmsR / diag,
	}

	out := make([]float32, SequenceInvariantDimension)
	for i, v := range vec {
		out[i] = float32(v)
	}
	return out
}

// finite maps the NaNs gonum produces for degenerate samples (single
// point, zero variance) to zero so vectors stay comparable.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
