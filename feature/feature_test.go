package feature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/gesturestore/model"
	"github.com/hupe1980/gesturestore/testutil"
)

func TestDimension(t *testing.T) {
	assert.Equal(t, SequenceSensitiveDimension, Dimension(SequenceSensitive))
	assert.Equal(t, SequenceInvariantDimension, Dimension(SequenceInvariant))
}

func TestExtractSequenceSensitive(t *testing.T) {
	t.Run("FixedDimension", func(t *testing.T) {
		g := model.NewGesture(testutil.CircleStroke(40, 100, 100, 50))
		inst, err := Extract(g, SequenceSensitive, OrientationSensitive, "circle")
		require.NoError(t, err)
		assert.Len(t, inst.Vector, SequenceSensitiveDimension)
		assert.Equal(t, g.ID(), inst.ID)
		assert.Equal(t, "circle", inst.Label)
	})

	t.Run("MultiStrokeRejected", func(t *testing.T) {
		g := model.NewGesture(
			testutil.LineStroke(5, 0, 0, 10, 0),
			testutil.LineStroke(5, 0, 5, 10, 5),
		)
		_, err := Extract(g, SequenceSensitive, OrientationSensitive, "x")
		var iie *InvalidInputError
		require.ErrorAs(t, err, &iie)
		assert.Equal(t, 2, iie.Strokes)
	})

	t.Run("Deterministic", func(t *testing.T) {
		g := model.NewGesture(testutil.CircleStroke(25, 50, 50, 20))
		a, err := Extract(g, SequenceSensitive, OrientationInvariant, "")
		require.NoError(t, err)
		b, err := Extract(g, SequenceSensitive, OrientationInvariant, "")
		require.NoError(t, err)
		assert.Equal(t, a.Vector, b.Vector)
	})

	t.Run("OrientationInvariantCancelsRotation", func(t *testing.T) {
		stroke := testutil.LineStroke(20, 0, 0, 100, 30)
		rotated := testutil.RotatedStroke(stroke, 0.7)

		a, err := Extract(model.NewGesture(stroke), SequenceSensitive, OrientationInvariant, "")
		require.NoError(t, err)
		b, err := Extract(model.NewGesture(rotated), SequenceSensitive, OrientationInvariant, "")
		require.NoError(t, err)
		for i := range a.Vector {
			assert.InDelta(t, float64(a.Vector[i]), float64(b.Vector[i]), 1e-3)
		}
	})

	t.Run("OrientationSensitiveKeepsRotation", func(t *testing.T) {
		stroke := testutil.LineStroke(20, 0, 0, 100, 0)
		rotated := testutil.RotatedStroke(stroke, 1.2)

		a, err := Extract(model.NewGesture(stroke), SequenceSensitive, OrientationSensitive, "")
		require.NoError(t, err)
		b, err := Extract(model.NewGesture(rotated), SequenceSensitive, OrientationSensitive, "")
		require.NoError(t, err)
		assert.NotEqual(t, a.Vector, b.Vector)
	})

	t.Run("SinglePointStroke", func(t *testing.T) {
		g := model.NewGesture(model.NewStroke([]model.Point{{X: 5, Y: 5, T: 0}}))
		inst, err := Extract(g, SequenceSensitive, OrientationInvariant, "")
		require.NoError(t, err)
		require.Len(t, inst.Vector, SequenceSensitiveDimension)
		for _, v := range inst.Vector {
			assert.Equal(t, float32(0), v)
		}
	})
}

func TestExtractSequenceInvariant(t *testing.T) {
	t.Run("AcceptsMultiStroke", func(t *testing.T) {
		g := model.NewGesture(
			testutil.LineStroke(10, 0, 0, 50, 0),
			testutil.LineStroke(10, 25, -25, 25, 25),
		)
		inst, err := Extract(g, SequenceInvariant, OrientationSensitive, "cross")
		require.NoError(t, err)
		assert.Len(t, inst.Vector, SequenceInvariantDimension)
	})

	t.Run("StrokeOrderDoesNotMatter", func(t *testing.T) {
		s1 := testutil.LineStroke(10, 0, 0, 50, 0)
		s2 := testutil.LineStroke(10, 25, -25, 25, 25)

		a, err := Extract(model.NewGesture(s1, s2), SequenceInvariant, OrientationSensitive, "")
		require.NoError(t, err)
		b, err := Extract(model.NewGesture(s2, s1), SequenceInvariant, OrientationSensitive, "")
		require.NoError(t, err)
		assert.Equal(t, a.Vector, b.Vector)
	})

	t.Run("AllVectorValuesFinite", func(t *testing.T) {
		// Degenerate gesture: a single repeated point would divide by
		// zero everywhere without the guards.
		g := model.NewGesture(model.NewStroke([]model.Point{{X: 3, Y: 3, T: 0}}))
		inst, err := Extract(g, SequenceInvariant, OrientationSensitive, "")
		require.NoError(t, err)
		for i, v := range inst.Vector {
			assert.False(t, v != v, "vector[%d] is NaN", i)
		}
	})

	t.Run("DiscriminatesShapes", func(t *testing.T) {
		line, err := Extract(model.NewGesture(testutil.LineStroke(30, 0, 0, 100, 0)), SequenceInvariant, OrientationSensitive, "")
		require.NoError(t, err)
		circle, err := Extract(model.NewGesture(testutil.CircleStroke(30, 50, 50, 40)), SequenceInvariant, OrientationSensitive, "")
		require.NoError(t, err)
		assert.NotEqual(t, line.Vector, circle.Vector)
	})
}
