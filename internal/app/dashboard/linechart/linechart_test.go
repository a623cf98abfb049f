package linechart

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/Hobrus/netpulse/internal/app/dashboard/chart"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

type memCanvas struct {
	name   string
	frames [][]byte
}

func (c *memCanvas) Name() string { return c.name }

func (c *memCanvas) Draw(img []byte) error {
	c.frames = append(c.frames, append([]byte(nil), img...))
	return nil
}

func lineConfig(values []float64) chart.Config {
	labels := make([]int, len(values))
	for i := range labels {
		labels[i] = i
	}
	return chart.Config{
		Type: chart.Line,
		Data: chart.Data{
			Labels: labels,
			Datasets: []chart.Dataset{{
				Label:           "RTT (ms)",
				Data:            values,
				BorderColor:     "#3b82f6",
				BackgroundColor: "#3b82f622",
				BorderWidth:     2,
				Fill:            true,
				Tension:         0.4,
			}},
		},
		Options: chart.Options{Y: chart.Scale{BeginAtZero: true}},
	}
}

func TestFactory_NewDrawsFirstFrame(t *testing.T) {
	canvas := &memCanvas{name: "rttChart"}
	c, err := NewFactory(0, 0).New(canvas, lineConfig([]float64{1, 2, 3}))
	require.NoError(t, err)

	require.Len(t, canvas.frames, 1)
	assert.True(t, bytes.HasPrefix(canvas.frames[0], pngMagic))

	lc := c.(*LineChart)
	assert.Equal(t, 1, lc.Frames())
	assert.Equal(t, chart.UpdateDefault, lc.LastMode())
}

func TestLineChart_UpdateInPlace(t *testing.T) {
	canvas := &memCanvas{name: "lossChart"}
	c, err := NewFactory(320, 200).New(canvas, lineConfig([]float64{0, 0, 1}))
	require.NoError(t, err)

	d := c.Data()
	d.Labels = []int{0, 1, 2, 3, 4}
	d.Datasets[0].Data = []float64{5, 4, 3, 2, 1}
	require.NoError(t, c.Update(chart.UpdateNone))

	lc := c.(*LineChart)
	assert.Equal(t, 2, lc.Frames())
	assert.Equal(t, chart.UpdateNone, lc.LastMode())
	assert.Len(t, canvas.frames, 2)
	assert.Equal(t, []float64{5, 4, 3, 2, 1}, c.Data().Datasets[0].Data)
}

func TestFactory_ConfigIsCopied(t *testing.T) {
	cfg := lineConfig([]float64{1, 2})
	c, err := NewFactory(0, 0).New(&memCanvas{name: "x"}, cfg)
	require.NoError(t, err)

	cfg.Data.Datasets[0].Data[0] = 42
	assert.Equal(t, []float64{1, 2}, c.Data().Datasets[0].Data)
}

func TestFactory_ShortSeries(t *testing.T) {
	for _, values := range [][]float64{{}, {64}, {0, 0}, {7, 7, 7}} {
		canvas := &memCanvas{name: "ttlChart"}
		_, err := NewFactory(0, 0).New(canvas, lineConfig(values))
		require.NoError(t, err, "values %v", values)
		require.Len(t, canvas.frames, 1)
	}
}

func TestFactory_Errors(t *testing.T) {
	f := NewFactory(0, 0)

	cfg := lineConfig([]float64{1, 2})
	cfg.Type = "bar"
	_, err := f.New(&memCanvas{}, cfg)
	assert.Error(t, err)

	cfg = lineConfig([]float64{1, 2})
	cfg.Data.Datasets[0].BorderColor = "blue"
	canvas := &memCanvas{}
	_, err = f.New(canvas, cfg)
	assert.Error(t, err)
	assert.Empty(t, canvas.frames)

	_, err = f.New(nil, lineConfig([]float64{1}))
	assert.Error(t, err)
}

func TestBuild_Styles(t *testing.T) {
	c, err := NewFactory(0, 0).New(&memCanvas{name: "rttChart"}, lineConfig([]float64{1, 2, 3}))
	require.NoError(t, err)

	g, err := c.(*LineChart).build()
	require.NoError(t, err)
	assert.Equal(t, "RTT (ms)", g.Title)
	require.Len(t, g.Series, 1)

	s, ok := g.Series[0].(gochart.ContinuousSeries)
	require.True(t, ok)
	assert.Equal(t, 2.0, s.Style.StrokeWidth)
	assert.Zero(t, s.Style.DotWidth)
	assert.Equal(t, drawing.Color{R: 0x3b, G: 0x82, B: 0xf6, A: 0x22}, s.Style.FillColor)
	assert.Greater(t, len(s.XValues), 3, "tension adds interpolated points")

	yr, ok := g.YAxis.Range.(*gochart.ContinuousRange)
	require.True(t, ok)
	assert.Zero(t, yr.Min)
	assert.InDelta(t, 3.3, yr.Max, 1e-9)
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#10b981")
	require.NoError(t, err)
	assert.Equal(t, drawing.Color{R: 0x10, G: 0xb9, B: 0x81, A: 0xff}, c)

	c, err = ParseColor("#f59e0b22")
	require.NoError(t, err)
	assert.Equal(t, drawing.Color{R: 0xf5, G: 0x9e, B: 0x0b, A: 0x22}, c)

	c, err = ParseColor("fff")
	require.NoError(t, err)
	assert.Equal(t, drawing.Color{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, c)

	_, err = ParseColor("#12345")
	assert.Error(t, err)
	_, err = ParseColor("#zzzzzz")
	assert.Error(t, err)
}

func TestYRange(t *testing.T) {
	tests := []struct {
		name        string
		lo, hi      float64
		beginAtZero bool
		wantLo      float64
		wantHi      float64
	}{
		{name: "zero based", lo: 1, hi: 3, beginAtZero: true, wantLo: 0, wantHi: 3.3},
		{name: "all zero", lo: 0, hi: 0, beginAtZero: true, wantLo: 0, wantHi: 1},
		{name: "single value", lo: 64, hi: 64, beginAtZero: true, wantLo: 0, wantHi: 70.4},
		{name: "negative values extend below zero", lo: -2, hi: 5, beginAtZero: true, wantLo: -2.7, wantHi: 5.7},
		{name: "free constant", lo: 5, hi: 5, wantLo: 2.5, wantHi: 7.5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			lo, hi := yRange(tc.lo, tc.hi, tc.beginAtZero)
			assert.InDelta(t, tc.wantLo, lo, 1e-9)
			assert.InDelta(t, tc.wantHi, hi, 1e-9)
		})
	}
}

func TestIndexTicks(t *testing.T) {
	ticks := indexTicks([]int{0, 1, 2}, 10)
	require.Len(t, ticks, 3)
	assert.Equal(t, "2", ticks[2].Label)

	labels := make([]int, 50)
	for i := range labels {
		labels[i] = i
	}
	ticks = indexTicks(labels, 10)
	assert.LessOrEqual(t, len(ticks), 10)
	assert.Equal(t, "0", ticks[0].Label)

	assert.Len(t, indexTicks([]int{0}, 10), 2)
	assert.Len(t, indexTicks(nil, 10), 2)
}
