package renderer

import (
	"fmt"

	"github.com/Hobrus/netpulse/internal/app/dashboard/chart"
	"github.com/Hobrus/netpulse/internal/app/dashboard/models"
)

// ChartState is the registry entry of one series.
type ChartState struct {
	ID    models.SeriesID
	Chart chart.Chart
	// Redraws counts in-place updates since creation.
	Redraws int
}

// Labels returns the x labels currently displayed.
func (s *ChartState) Labels() []int {
	return s.Chart.Data().Labels
}

// Values returns the series currently displayed.
func (s *ChartState) Values() []float64 {
	ds := s.Chart.Data().Datasets
	if len(ds) == 0 {
		return nil
	}
	return ds[0].Data
}

// Registry maps series to their chart. It starts empty, gains entries on
// first sight of a series and never drops them. It is not safe for
// concurrent use; the Renderer serializes access.
type Registry struct {
	states map[models.SeriesID]*ChartState
	order  []models.SeriesID
}

func NewRegistry() *Registry {
	return &Registry{
		states: make(map[models.SeriesID]*ChartState),
	}
}

func (r *Registry) Lookup(id models.SeriesID) (*ChartState, bool) {
	st, ok := r.states[id]
	return st, ok
}

// Add stores the chart for id. Registering an id twice is an error.
func (r *Registry) Add(id models.SeriesID, c chart.Chart) (*ChartState, error) {
	if _, exists := r.states[id]; exists {
		return nil, fmt.Errorf("chart %q already registered", id)
	}
	st := &ChartState{ID: id, Chart: c}
	r.states[id] = st
	r.order = append(r.order, id)
	return st, nil
}

func (r *Registry) Len() int {
	return len(r.states)
}

// IDs returns the registered ids in creation order.
func (r *Registry) IDs() []models.SeriesID {
	out := make([]models.SeriesID, len(r.order))
	copy(out, r.order)
	return out
}
