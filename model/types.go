package model

import (
	"math"
	"sync/atomic"
	"time"
)

// Point is a single timestamped sample of an input trace.
// Immutable once recorded.
type Point struct {
	X float32
	Y float32
	// T is the capture timestamp in milliseconds since the epoch.
	T int64
}

// Stroke is one continuous input path. Point order is temporally and
// spatially significant and must not be reordered.
type Stroke struct {
	Points []Point
}

// NewStroke creates a stroke from points. The points slice is copied so
// later caller mutation cannot affect the stroke.
func NewStroke(points []Point) Stroke {
	cp := make([]Point, len(points))
	copy(cp, points)
	return Stroke{Points: cp}
}

// Length returns the arc length of the stroke.
func (s Stroke) Length() float32 {
	var sum float64
	for i := 1; i < len(s.Points); i++ {
		dx := float64(s.Points[i].X - s.Points[i-1].X)
		dy := float64(s.Points[i].Y - s.Points[i-1].Y)
		sum += math.Sqrt(dx*dx + dy*dy)
	}
	return float32(sum)
}

// gestureIDBase seeds gesture identifiers with the process start time so
// IDs from separate runs are unlikely to collide. The counter guarantees
// uniqueness within a run; IDs are never reused.
var (
	gestureIDBase  = time.Now().UnixMilli() << 20
	gestureCounter atomic.Int64
)

// NextID allocates a fresh gesture identifier.
func NextID() int64 {
	return gestureIDBase + gestureCounter.Add(1)
}

// Gesture is a finished input trace: one or more strokes plus a unique
// identifier assigned at creation.
type Gesture struct {
	id      int64
	strokes []Stroke
}

// NewGesture creates a gesture with a freshly allocated identifier.
func NewGesture(strokes ...Stroke) *Gesture {
	return NewGestureWithID(NextID(), strokes)
}

// NewGestureWithID creates a gesture with an explicit identifier. It is
// intended for decoding persisted gestures, where the identifier must
// survive the round trip.
func NewGestureWithID(id int64, strokes []Stroke) *Gesture {
	cp := make([]Stroke, len(strokes))
	copy(cp, strokes)
	return &Gesture{id: id, strokes: cp}
}

// ID returns the gesture identifier.
func (g *Gesture) ID() int64 { return g.id }

// Strokes returns the ordered strokes of the gesture.
// Callers must treat the returned slice as read-only.
func (g *Gesture) Strokes() []Stroke { return g.strokes }

// StrokeCount returns the number of strokes.
func (g *Gesture) StrokeCount() int { return len(g.strokes) }

// PointCount returns the total number of points across all strokes.
func (g *Gesture) PointCount() int {
	n := 0
	for _, s := range g.strokes {
		n += len(s.Points)
	}
	return n
}
