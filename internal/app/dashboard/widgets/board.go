// Package widgets holds the named display targets the dashboard renders
// into. Views read them concurrently with the renderer writing them.
package widgets

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/Hobrus/netpulse/internal/app/dashboard/chart"
)

var ErrUnknownTarget = errors.New("unknown target")

type kind int

const (
	kindText kind = iota
	kindBanner
	kindCanvas
)

// Widget is the displayed state of a text or banner target.
type Widget struct {
	Text  string `json:"text"`
	Class string `json:"class,omitempty"`
}

// Exporter receives every image drawn on a canvas.
type Exporter interface {
	Export(name string, img []byte) error
}

type image struct {
	data    []byte
	version int
}

// Board is the in-memory target surface.
type Board struct {
	mu       sync.RWMutex
	kinds    map[string]kind
	classes  map[string]map[string]bool
	widgets  map[string]Widget
	images   map[string]image
	exporter Exporter
	logger   logrus.FieldLogger
}

// NewBoard returns a board with the dashboard's fixed targets.
func NewBoard() *Board {
	b := &Board{
		kinds:   make(map[string]kind),
		classes: make(map[string]map[string]bool),
		widgets: make(map[string]Widget),
		images:  make(map[string]image),
	}
	b.addText("downloadSpeed")
	b.addText("uploadSpeed")
	b.addBanner("statusBox", "alert-box danger", "alert-box warning", "alert-box success")
	b.addBanner("ttlBox", "ttl-box warning", "ttl-box success")
	for _, name := range []string{"rttChart", "lossChart", "rateChart", "ttlChart"} {
		b.kinds[name] = kindCanvas
	}
	return b
}

func (b *Board) addText(name string) {
	b.kinds[name] = kindText
	b.widgets[name] = Widget{}
}

func (b *Board) addBanner(name string, classes ...string) {
	b.kinds[name] = kindBanner
	b.widgets[name] = Widget{}
	set := make(map[string]bool, len(classes))
	for _, c := range classes {
		set[c] = true
	}
	b.classes[name] = set
}

// SetExporter installs e to receive every drawn chart image. Export
// failures are logged to logger and never fail the draw.
func (b *Board) SetExporter(e Exporter, logger logrus.FieldLogger) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.exporter = e
	b.logger = logger
}

func (b *Board) SetText(target, text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if k, ok := b.kinds[target]; !ok || k != kindText {
		return fmt.Errorf("%w: text %q", ErrUnknownTarget, target)
	}
	b.widgets[target] = Widget{Text: text}
	return nil
}

func (b *Board) SetBanner(target, text, class string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if k, ok := b.kinds[target]; !ok || k != kindBanner {
		return fmt.Errorf("%w: banner %q", ErrUnknownTarget, target)
	}
	if !b.classes[target][class] {
		return fmt.Errorf("class %q not allowed on %s", class, target)
	}
	b.widgets[target] = Widget{Text: text, Class: class}
	return nil
}

// Canvas returns the drawing context of a canvas target.
func (b *Board) Canvas(target string) (chart.Canvas, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if k, ok := b.kinds[target]; !ok || k != kindCanvas {
		return nil, fmt.Errorf("%w: canvas %q", ErrUnknownTarget, target)
	}
	return &canvas{board: b, name: target}, nil
}

// Widget returns the state of a text or banner target.
func (b *Board) Widget(target string) (Widget, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	w, ok := b.widgets[target]
	return w, ok
}

// Widgets returns a copy of every text and banner target.
func (b *Board) Widgets() map[string]Widget {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make(map[string]Widget, len(b.widgets))
	for k, v := range b.widgets {
		out[k] = v
	}
	return out
}

// Image returns the last image drawn on a canvas and how many draws it
// has seen. ok is false before the first draw.
func (b *Board) Image(target string) (img []byte, version int, ok bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	im, ok := b.images[target]
	if !ok {
		return nil, 0, false
	}
	return im.data, im.version, true
}

// Canvases lists canvas target names in sorted order.
func (b *Board) Canvases() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	var names []string
	for name, k := range b.kinds {
		if k == kindCanvas {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func (b *Board) draw(name string, img []byte) {
	b.mu.Lock()
	prev := b.images[name]
	b.images[name] = image{data: append([]byte(nil), img...), version: prev.version + 1}
	exporter, logger := b.exporter, b.logger
	b.mu.Unlock()

	if exporter == nil {
		return
	}
	if err := exporter.Export(name, img); err != nil && logger != nil {
		logger.WithError(err).WithField("chart", name).Warn("Failed to export chart image")
	}
}

type canvas struct {
	board *Board
	name  string
}

func (c *canvas) Name() string { return c.name }

func (c *canvas) Draw(img []byte) error {
	c.board.draw(c.name, img)
	return nil
}
