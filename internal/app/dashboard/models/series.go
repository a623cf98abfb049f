package models

import "strings"

// SeriesID names a chart and the canvas target it is drawn on.
type SeriesID string

const (
	RTTChart  SeriesID = "rttChart"
	LossChart SeriesID = "lossChart"
	RateChart SeriesID = "rateChart"
	TTLChart  SeriesID = "ttlChart"
)

// SeriesSpec binds a series to its display label and color.
type SeriesSpec struct {
	ID    SeriesID
	Field string
	Label string
	Color string
}

var seriesSpecs = []SeriesSpec{
	{ID: RTTChart, Field: "rtt", Label: "RTT (ms)", Color: "#3b82f6"},
	{ID: LossChart, Field: "packet_loss", Label: "Packet Loss (%)", Color: "#ef4444"},
	{ID: RateChart, Field: "icmp_rate", Label: "ICMP Rate", Color: "#10b981"},
	{ID: TTLChart, Field: "ttl", Label: "TTL Value", Color: "#f59e0b"},
}

// AllSeries returns the fixed series table in display order.
func AllSeries() []SeriesSpec {
	out := make([]SeriesSpec, len(seriesSpecs))
	copy(out, seriesSpecs)
	return out
}

// Severity is the styling class derived from a network status string.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

// Status markers emitted by the backend.
const (
	MarkerCritical = "\U0001F6A8" // 🚨
	MarkerWarning  = "\u26a0\ufe0f" // ⚠️
	MarkerSuspect  = "\U0001F7E0" // 🟠
)

// ClassifyStatus maps a status string to a severity. Critical wins over
// warning; anything without a known marker is success.
func ClassifyStatus(status string) Severity {
	switch {
	case strings.Contains(status, MarkerCritical):
		return SeverityDanger
	case strings.Contains(status, MarkerWarning), strings.Contains(status, MarkerSuspect):
		return SeverityWarning
	default:
		return SeveritySuccess
	}
}
