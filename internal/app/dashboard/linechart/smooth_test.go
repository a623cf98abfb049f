package linechart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmooth_KeepsInputPoints(t *testing.T) {
	xs := []float64{0, 1, 2, 3}
	ys := []float64{1, 5, 2, 8}

	sx, sy := Smooth(xs, ys, 0.4, 4)
	require.Len(t, sx, 13)
	require.Len(t, sy, 13)

	for i := range xs {
		assert.InDelta(t, xs[i], sx[i*4], 1e-9)
		assert.InDelta(t, ys[i], sy[i*4], 1e-9)
	}
	for i := 1; i < len(sx); i++ {
		assert.Greater(t, sx[i], sx[i-1], "x must increase")
	}
}

func TestSmooth_StraightLineStaysStraight(t *testing.T) {
	xs := []float64{0, 1, 2}
	ys := []float64{0, 2, 4}

	sx, sy := Smooth(xs, ys, 0.4, 8)
	for i := range sx {
		assert.InDelta(t, 2*sx[i], sy[i], 1e-9)
	}
}

func TestSmooth_Passthrough(t *testing.T) {
	xs := []float64{0, 1}
	ys := []float64{3, 4}

	sx, sy := Smooth(xs, ys, 0.4, 8)
	assert.Equal(t, xs, sx)
	assert.Equal(t, ys, sy)

	sx, sy = Smooth([]float64{0, 1, 2}, []float64{1, 2, 1}, 0, 8)
	assert.Equal(t, []float64{0, 1, 2}, sx)
	assert.Equal(t, []float64{1, 2, 1}, sy)
}

func TestControlPoints_FlatNeighbours(t *testing.T) {
	p := point{x: 1, y: 1}
	before, after := controlPoints(p, p, p, 0.4)
	assert.Equal(t, p, before)
	assert.Equal(t, p, after)
}
