// Package telemetry counts poll outcomes for the /metrics endpoint.
package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Tick outcomes.
const (
	OutcomeRendered       = "rendered"
	OutcomeTransportError = "transport_error"
	OutcomeServerError    = "server_error"
	OutcomeContractError  = "contract_error"
	OutcomeRenderError    = "render_error"
	OutcomeStale          = "stale"
)

type Collector struct {
	registry   *prometheus.Registry
	ticks      *prometheus.CounterVec
	fetch      prometheus.Histogram
	lastRender prometheus.Gauge
}

// NewCollector registers the poll metrics on a private registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		ticks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "netpulse",
			Name:      "ticks_total",
			Help:      "Poll ticks by outcome.",
		}, []string{"outcome"}),
		fetch: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "netpulse",
			Name:      "fetch_duration_seconds",
			Help:      "Time spent fetching the metrics endpoint.",
			Buckets:   prometheus.DefBuckets,
		}),
		lastRender: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "netpulse",
			Name:      "last_render_timestamp_seconds",
			Help:      "Unix time of the last rendered snapshot.",
		}),
	}
	c.registry.MustRegister(c.ticks, c.fetch, c.lastRender)
	for _, o := range []string{
		OutcomeRendered, OutcomeTransportError, OutcomeServerError,
		OutcomeContractError, OutcomeRenderError, OutcomeStale,
	} {
		c.ticks.WithLabelValues(o)
	}
	return c
}

func (c *Collector) ObserveTick(outcome string) {
	c.ticks.WithLabelValues(outcome).Inc()
}

// TickCounter returns the counter of one outcome.
func (c *Collector) TickCounter(outcome string) prometheus.Counter {
	return c.ticks.WithLabelValues(outcome)
}

func (c *Collector) ObserveFetch(d time.Duration) {
	c.fetch.Observe(d.Seconds())
}

func (c *Collector) MarkRendered(at time.Time) {
	c.lastRender.Set(float64(at.UnixNano()) / 1e9)
}

// Registry exposes the underlying registry for tests and extra collectors.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
