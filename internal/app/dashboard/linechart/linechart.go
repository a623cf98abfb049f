// Package linechart draws dashboard charts as PNG images with go-chart.
package linechart

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/Hobrus/netpulse/internal/app/dashboard/chart"
)

const (
	DefaultWidth  = 640
	DefaultHeight = 260

	maxTickLabels  = 10
	segmentSamples = 8
)

// Factory builds go-chart backed line charts.
type Factory struct {
	Width  int
	Height int
}

func NewFactory(width, height int) *Factory {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &Factory{Width: width, Height: height}
}

// New draws the first frame of a chart on ctx and returns the instance.
func (f *Factory) New(ctx chart.Canvas, cfg chart.Config) (chart.Chart, error) {
	if cfg.Type != chart.Line {
		return nil, fmt.Errorf("unsupported chart type %q", cfg.Type)
	}
	if ctx == nil {
		return nil, fmt.Errorf("nil drawing context")
	}
	c := &LineChart{
		canvas: ctx,
		data:   cloneData(cfg.Data),
		opts:   cfg.Options,
		width:  f.Width,
		height: f.Height,
	}
	if err := c.draw(); err != nil {
		return nil, err
	}
	return c, nil
}

// LineChart is one chart bound to a canvas.
type LineChart struct {
	mu       sync.Mutex
	canvas   chart.Canvas
	data     chart.Data
	opts     chart.Options
	width    int
	height   int
	frames   int
	lastMode chart.UpdateMode
}

func (c *LineChart) Data() *chart.Data {
	return &c.data
}

func (c *LineChart) Options() chart.Options {
	return c.opts
}

// Update redraws the chart from its current data. A raster frame has no
// transition, so every mode draws one frame; the mode is kept for
// inspection.
func (c *LineChart) Update(mode chart.UpdateMode) error {
	c.mu.Lock()
	c.lastMode = mode
	c.mu.Unlock()
	return c.draw()
}

// Frames returns how many frames have been drawn.
func (c *LineChart) Frames() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frames
}

func (c *LineChart) LastMode() chart.UpdateMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastMode
}

func (c *LineChart) draw() error {
	g, err := c.build()
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := g.Render(gochart.PNG, &buf); err != nil {
		return fmt.Errorf("failed to render %s: %w", c.canvas.Name(), err)
	}

	c.mu.Lock()
	c.frames++
	c.mu.Unlock()

	return c.canvas.Draw(buf.Bytes())
}

func (c *LineChart) build() (gochart.Chart, error) {
	var (
		series []gochart.Series
		title  string
		lo, hi = math.Inf(1), math.Inf(-1)
		maxLen int
	)

	for _, ds := range c.data.Datasets {
		if title == "" {
			title = ds.Label
		}
		if len(ds.Data) > maxLen {
			maxLen = len(ds.Data)
		}
		for _, v := range ds.Data {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if math.IsInf(lo, 1) {
		lo, hi = 0, 0
	}
	yMin, yMax := yRange(lo, hi, c.opts.Y.BeginAtZero)

	for _, ds := range c.data.Datasets {
		s, err := datasetSeries(ds, yMin, yMax)
		if err != nil {
			return gochart.Chart{}, err
		}
		series = append(series, s)
	}
	if len(series) == 0 || maxLen == 0 {
		series = append(series, gochart.ContinuousSeries{
			Style:   gochart.Style{Hidden: true},
			XValues: []float64{0, 1},
			YValues: []float64{0, 0},
		})
	}

	xMax := float64(maxLen - 1)
	if xMax < 1 {
		xMax = 1
	}

	g := gochart.Chart{
		Title:      title,
		Width:      c.width,
		Height:     c.height,
		Background: gochart.Style{Padding: gochart.Box{Top: 24, Left: 16, Right: 16, Bottom: 16}},
		XAxis: gochart.XAxis{
			Range: &gochart.ContinuousRange{Min: 0, Max: xMax},
			Ticks: indexTicks(c.data.Labels, maxTickLabels),
		},
		YAxis: gochart.YAxis{
			Range: &gochart.ContinuousRange{Min: yMin, Max: yMax},
		},
		Series: series,
	}
	g.Elements = []gochart.Renderable{gochart.Legend(&g)}
	return g, nil
}

func datasetSeries(ds chart.Dataset, yMin, yMax float64) (gochart.Series, error) {
	stroke, err := ParseColor(ds.BorderColor)
	if err != nil {
		return nil, fmt.Errorf("dataset %q border: %w", ds.Label, err)
	}
	style := gochart.Style{
		StrokeColor: stroke,
		StrokeWidth: ds.BorderWidth,
		DotWidth:    ds.PointRadius,
		DotColor:    stroke,
	}
	if ds.Fill {
		fill, err := ParseColor(ds.BackgroundColor)
		if err != nil {
			return nil, fmt.Errorf("dataset %q background: %w", ds.Label, err)
		}
		style.FillColor = fill
	}

	xs := make([]float64, len(ds.Data))
	for i := range xs {
		xs[i] = float64(i)
	}
	ys := append([]float64(nil), ds.Data...)

	switch len(ys) {
	case 0:
		style.Hidden = true
		xs, ys = []float64{0, 1}, []float64{0, 0}
	case 1:
		// go-chart needs two points to draw a line
		xs, ys = []float64{0, 1}, []float64{ys[0], ys[0]}
	default:
		if ds.Tension > 0 {
			xs, ys = Smooth(xs, ys, ds.Tension, segmentSamples)
			for i := range ys {
				ys[i] = math.Min(math.Max(ys[i], yMin), yMax)
			}
		}
	}

	return gochart.ContinuousSeries{
		Name:    ds.Label,
		Style:   style,
		XValues: xs,
		YValues: ys,
	}, nil
}

// yRange pads the data range and, when asked, pins it to zero. The range
// is never empty.
func yRange(lo, hi float64, beginAtZero bool) (float64, float64) {
	if beginAtZero {
		lo = math.Min(lo, 0)
		hi = math.Max(hi, 0)
	}
	span := hi - lo
	if span <= 0 {
		span = math.Max(math.Abs(hi), 1)
		if beginAtZero {
			return lo, hi + span
		}
		return lo - span/2, hi + span/2
	}
	hi += span * 0.1
	if !beginAtZero || lo < 0 {
		lo -= span * 0.1
	}
	return lo, hi
}

func indexTicks(labels []int, max int) []gochart.Tick {
	if len(labels) == 0 {
		return []gochart.Tick{{Value: 0, Label: "0"}, {Value: 1, Label: ""}}
	}
	step := 1
	if len(labels) > max {
		step = int(math.Ceil(float64(len(labels)) / float64(max)))
	}
	ticks := make([]gochart.Tick, 0, len(labels)/step+1)
	for i := 0; i < len(labels); i += step {
		ticks = append(ticks, gochart.Tick{Value: float64(i), Label: strconv.Itoa(labels[i])})
	}
	if len(ticks) == 1 {
		ticks = append(ticks, gochart.Tick{Value: 1, Label: ""})
	}
	return ticks
}

// ParseColor reads #rgb, #rrggbb or #rrggbbaa.
func ParseColor(s string) (drawing.Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 && len(hex) != 8 {
		return drawing.Color{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return drawing.Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return drawing.Color{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

func cloneData(d chart.Data) chart.Data {
	out := chart.Data{Labels: append([]int(nil), d.Labels...)}
	for _, ds := range d.Datasets {
		ds.Data = append([]float64(nil), ds.Data...)
		out.Datasets = append(out.Datasets, ds)
	}
	return out
}
