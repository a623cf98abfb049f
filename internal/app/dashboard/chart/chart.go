// Package chart defines the contract between the renderer and a charting
// backend: a factory that binds a chart to a drawing context, and chart
// instances whose data is mutated in place and then redrawn.
package chart

// Type is the kind of chart a factory should build.
type Type string

const Line Type = "line"

// UpdateMode is a redraw hint passed to Chart.Update.
type UpdateMode string

const (
	// UpdateDefault lets the chart use its configured transition.
	UpdateDefault UpdateMode = ""
	// UpdateNone redraws without any transition animation.
	UpdateNone UpdateMode = "none"
)

// Dataset is one plotted line.
type Dataset struct {
	Label           string
	Data            []float64
	BorderColor     string
	BackgroundColor string
	BorderWidth     float64
	PointRadius     float64
	Fill            bool
	Tension         float64
}

// Data is the mutable part of a chart.
type Data struct {
	Labels   []int
	Datasets []Dataset
}

type Scale struct {
	BeginAtZero bool
}

type Options struct {
	Responsive bool
	Animation  bool
	Y          Scale
}

// Config is everything a factory needs to construct a chart.
type Config struct {
	Type    Type
	Data    Data
	Options Options
}

// Canvas is the drawing context a chart renders onto.
type Canvas interface {
	Name() string
	Draw(img []byte) error
}

// Chart is a live chart instance. Data returns the instance's own data so
// callers can replace labels and values before calling Update.
type Chart interface {
	Data() *Data
	Options() Options
	Update(mode UpdateMode) error
}

// Factory constructs charts.
type Factory interface {
	New(ctx Canvas, cfg Config) (Chart, error)
}
