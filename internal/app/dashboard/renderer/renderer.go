package renderer

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/Hobrus/netpulse/internal/app/dashboard/chart"
	"github.com/Hobrus/netpulse/internal/app/dashboard/models"
)

// Named targets written by the renderer.
const (
	TargetDownload = "downloadSpeed"
	TargetUpload   = "uploadSpeed"
	TargetStatus   = "statusBox"
	TargetTTL      = "ttlBox"
)

const (
	ttlNormalText = "TTL Status: Normal"
	ttlAlertText  = models.MarkerWarning + " TTL Alert: "

	fillAlpha   = "22"
	borderWidth = 2
	tension     = 0.4
)

// ErrStale is returned by Apply when ordering is enforced and a snapshot
// older than the last applied one arrives.
var ErrStale = errors.New("snapshot older than last applied")

// Surface is the set of named targets the renderer writes to.
type Surface interface {
	SetText(target, text string) error
	SetBanner(target, text, class string) error
	Canvas(target string) (chart.Canvas, error)
}

// SeriesView is a copy of one chart's displayed series.
type SeriesView struct {
	ID     models.SeriesID
	Label  string
	Color  string
	Labels []int
	Values []float64
}

// Renderer owns the chart registry and keeps every widget current. All
// rendering is serialized, so concurrent ticks never interleave their
// writes.
type Renderer struct {
	// Ordered drops snapshots that arrive after a newer one was applied.
	Ordered bool
	// AfterRender, when set, runs after every snapshot Apply rendered, before
	// the next render can start.
	AfterRender func(s models.MetricsSnapshot, series []SeriesView)

	mu       sync.Mutex
	surface  Surface
	charts   chart.Factory
	registry *Registry
	specs    []models.SeriesSpec
	lastSeq  uint64
	applied  bool
}

func NewRenderer(surface Surface, charts chart.Factory) *Renderer {
	return &Renderer{
		surface:  surface,
		charts:   charts,
		registry: NewRegistry(),
		specs:    models.AllSeries(),
	}
}

// Apply renders the snapshot fetched by tick seq.
func (r *Renderer) Apply(seq uint64, s models.MetricsSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Ordered && r.applied && seq <= r.lastSeq {
		return fmt.Errorf("%w: got %d, last %d", ErrStale, seq, r.lastSeq)
	}
	if err := r.render(s); err != nil {
		return err
	}
	if !r.applied || seq > r.lastSeq {
		r.lastSeq = seq
	}
	r.applied = true
	if r.AfterRender != nil {
		r.AfterRender(s, r.series())
	}
	return nil
}

// RenderSnapshot writes readouts, banners and all four charts.
func (r *Renderer) RenderSnapshot(s models.MetricsSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.render(s)
}

func (r *Renderer) render(s models.MetricsSnapshot) error {
	if err := r.surface.SetText(TargetDownload, formatSpeed(s.Download)); err != nil {
		return err
	}
	if err := r.surface.SetText(TargetUpload, formatSpeed(s.Upload)); err != nil {
		return err
	}
	if err := r.surface.SetBanner(TargetStatus, s.NetworkStatus, StatusClass(s.NetworkStatus)); err != nil {
		return err
	}
	text, class := ttlBanner(s.TTLAlert, s.TTLReason)
	if err := r.surface.SetBanner(TargetTTL, text, class); err != nil {
		return err
	}

	for _, spec := range r.specs {
		if err := r.upsert(spec.ID, spec.Label, s.Series(spec.ID), spec.Color); err != nil {
			return err
		}
	}
	return nil
}

// UpsertSeries creates the chart for id on first call and updates it in
// place afterwards.
func (r *Renderer) UpsertSeries(id models.SeriesID, label string, values []float64, color string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.upsert(id, label, values, color)
}

func (r *Renderer) upsert(id models.SeriesID, label string, values []float64, color string) error {
	labels := indexLabels(len(values))
	data := append([]float64(nil), values...)

	st, ok := r.registry.Lookup(id)
	if !ok {
		canvas, err := r.surface.Canvas(string(id))
		if err != nil {
			return fmt.Errorf("chart %s: %w", id, err)
		}
		c, err := r.charts.New(canvas, lineConfig(label, labels, data, color))
		if err != nil {
			return fmt.Errorf("failed to create chart %s: %w", id, err)
		}
		_, err = r.registry.Add(id, c)
		return err
	}

	d := st.Chart.Data()
	prevLabels, prevDatasets := d.Labels, d.Datasets
	if len(d.Datasets) == 0 {
		d.Datasets = []chart.Dataset{{Label: label}}
	} else {
		d.Datasets = append([]chart.Dataset(nil), d.Datasets...)
	}
	d.Labels = labels
	d.Datasets[0].Data = data
	if err := st.Chart.Update(chart.UpdateNone); err != nil {
		// the canvas still shows the previous frame
		d.Labels, d.Datasets = prevLabels, prevDatasets
		return fmt.Errorf("failed to redraw chart %s: %w", id, err)
	}
	st.Redraws++
	return nil
}

// ChartCount returns how many charts have been created.
func (r *Renderer) ChartCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.registry.Len()
}

// Series returns a copy of every chart's displayed data in creation order.
func (r *Renderer) Series() []SeriesView {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.series()
}

func (r *Renderer) series() []SeriesView {
	out := make([]SeriesView, 0, r.registry.Len())
	for _, id := range r.registry.IDs() {
		st, _ := r.registry.Lookup(id)
		v := SeriesView{
			ID:     id,
			Labels: append([]int(nil), st.Labels()...),
			Values: append([]float64(nil), st.Values()...),
		}
		for _, spec := range r.specs {
			if spec.ID == id {
				v.Label, v.Color = spec.Label, spec.Color
			}
		}
		out = append(out, v)
	}
	return out
}

// StatusClass is the banner class for a network status string.
func StatusClass(status string) string {
	return "alert-box " + string(models.ClassifyStatus(status))
}

func ttlBanner(alert bool, reason string) (text, class string) {
	if alert {
		return ttlAlertText + reason, "ttl-box " + string(models.SeverityWarning)
	}
	return ttlNormalText, "ttl-box " + string(models.SeveritySuccess)
}

func formatSpeed(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func indexLabels(n int) []int {
	labels := make([]int, n)
	for i := range labels {
		labels[i] = i
	}
	return labels
}

func lineConfig(label string, labels []int, values []float64, color string) chart.Config {
	return chart.Config{
		Type: chart.Line,
		Data: chart.Data{
			Labels: labels,
			Datasets: []chart.Dataset{{
				Label:           label,
				Data:            values,
				BorderColor:     color,
				BackgroundColor: color + fillAlpha,
				BorderWidth:     borderWidth,
				PointRadius:     0,
				Fill:            true,
				Tension:         tension,
			}},
		},
		Options: chart.Options{
			Responsive: true,
			Animation:  false,
			Y:          chart.Scale{BeginAtZero: true},
		},
	}
}
