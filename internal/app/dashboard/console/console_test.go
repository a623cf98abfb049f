package console

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hobrus/netpulse/internal/app/dashboard/models"
	"github.com/Hobrus/netpulse/internal/app/dashboard/renderer"
	"github.com/Hobrus/netpulse/internal/app/dashboard/widgets"
)

type staticWidgets map[string]widgets.Widget

func (s staticWidgets) Widgets() map[string]widgets.Widget { return s }

func TestPrinter_Print(t *testing.T) {
	var buf bytes.Buffer
	w := staticWidgets{
		"downloadSpeed": {Text: "12.35"},
		"uploadSpeed":   {Text: "3.10"},
		"statusBox":     {Text: "🚨 high loss", Class: "alert-box danger"},
		"ttlBox":        {Text: "TTL Status: Normal", Class: "ttl-box success"},
	}
	s := []renderer.SeriesView{
		{ID: models.RTTChart, Label: "RTT (ms)", Values: []float64{1, 2, 3}},
		{ID: models.TTLChart, Label: "TTL Value", Values: nil},
	}

	p := NewPrinter(&buf, w)
	require.NoError(t, p.Print(models.MetricsSnapshot{Anomalies: 7}, s))

	out := buf.String()
	assert.Contains(t, out, "netpulse")
	assert.Contains(t, out, "down 12.35 Mbps")
	assert.Contains(t, out, "up 3.10 Mbps")
	assert.Contains(t, out, "anomalies 7")
	assert.Contains(t, out, "🚨 high loss")
	assert.Contains(t, out, "TTL Status: Normal")
	assert.Contains(t, out, "RTT (ms)")
	assert.Contains(t, out, "3.00")
	assert.Contains(t, out, "TTL Value")
	assert.Contains(t, out, " -")
}

func TestSparkline(t *testing.T) {
	assert.Equal(t, "▁▅█", Sparkline([]float64{0, 4, 8}, 10))
	assert.Equal(t, "▁▁", Sparkline([]float64{0, 0}, 10))
	assert.Equal(t, "", Sparkline(nil, 10))
	assert.Equal(t, "▁█", Sparkline([]float64{9, 1, 0, 8}, 2))
	assert.Equal(t, "▁", Sparkline([]float64{-3}, 10))
}
