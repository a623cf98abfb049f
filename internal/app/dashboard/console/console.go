// Package console prints a styled text frame of the dashboard after every
// rendered snapshot.
package console

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/Hobrus/netpulse/internal/app/dashboard/models"
	"github.com/Hobrus/netpulse/internal/app/dashboard/renderer"
	"github.com/Hobrus/netpulse/internal/app/dashboard/widgets"
)

const sparkWidth = 40

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// WidgetSource is the displayed widget state.
type WidgetSource interface {
	Widgets() map[string]widgets.Widget
}

type styles struct {
	title  lipgloss.Style
	label  lipgloss.Style
	dim    lipgloss.Style
	ok     lipgloss.Style
	warn   lipgloss.Style
	danger lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title:  r.NewStyle().Bold(true),
		label:  r.NewStyle().Width(18),
		dim:    r.NewStyle().Foreground(lipgloss.Color("245")),
		ok:     r.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		warn:   r.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		danger: r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	}
}

type Printer struct {
	mu      sync.Mutex
	out     io.Writer
	widgets WidgetSource
	st      styles
}

func NewPrinter(out io.Writer, w WidgetSource) *Printer {
	return &Printer{
		out:     out,
		widgets: w,
		st:      newStyles(lipgloss.NewRenderer(out)),
	}
}

// Print writes one frame for the snapshot that was just rendered and the
// chart series it produced.
func (p *Printer) Print(s models.MetricsSnapshot, series []renderer.SeriesView) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, err := io.WriteString(p.out, p.frame(s, series)+"\n")
	return err
}

func (p *Printer) frame(s models.MetricsSnapshot, series []renderer.SeriesView) string {
	w := p.widgets.Widgets()
	var sb strings.Builder

	sb.WriteString(p.st.title.Render("netpulse"))
	fmt.Fprintf(&sb, "  down %s Mbps  up %s Mbps", w[renderer.TargetDownload].Text, w[renderer.TargetUpload].Text)
	sb.WriteString(p.st.dim.Render(fmt.Sprintf("  anomalies %d", s.Anomalies)))
	sb.WriteString("\n")

	sb.WriteString(p.banner(w[renderer.TargetStatus]))
	sb.WriteString("\n")
	sb.WriteString(p.banner(w[renderer.TargetTTL]))
	sb.WriteString("\n")

	for _, v := range series {
		last := "-"
		if n := len(v.Values); n > 0 {
			last = strconv.FormatFloat(v.Values[n-1], 'f', 2, 64)
		}
		sb.WriteString(p.st.label.Render(v.Label))
		sb.WriteString(Sparkline(v.Values, sparkWidth))
		sb.WriteString(" ")
		sb.WriteString(last)
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (p *Printer) banner(w widgets.Widget) string {
	style := p.st.ok
	switch {
	case strings.HasSuffix(w.Class, string(models.SeverityDanger)):
		style = p.st.danger
	case strings.HasSuffix(w.Class, string(models.SeverityWarning)):
		style = p.st.warn
	}
	return style.Render(w.Text)
}

// Sparkline draws the last width values scaled from zero to their maximum.
func Sparkline(values []float64, width int) string {
	if len(values) > width {
		values = values[len(values)-width:]
	}
	hi := 0.0
	for _, v := range values {
		hi = math.Max(hi, v)
	}
	var sb strings.Builder
	for _, v := range values {
		idx := 0
		if hi > 0 && v > 0 {
			idx = int(math.Round(v / hi * float64(len(sparkRunes)-1)))
		}
		sb.WriteRune(sparkRunes[idx])
	}
	return sb.String()
}
