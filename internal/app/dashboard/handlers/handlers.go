package handlers

import (
	"embed"
	"html/template"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/Hobrus/netpulse/internal/app/dashboard/models"
	"github.com/Hobrus/netpulse/internal/app/dashboard/renderer"
	"github.com/Hobrus/netpulse/internal/app/dashboard/widgets"
)

// Встроенные html-шаблоны
//
//go:embed template/*.html
var templatesFS embed.FS

type Handler struct {
	board   *widgets.Board
	metrics http.Handler
}

// NewHandler serves the board. metrics may be nil.
func NewHandler(board *widgets.Board, metrics http.Handler) *Handler {
	return &Handler{board: board, metrics: metrics}
}

func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.GET("/", h.dashboardHandler)
	router.GET("/api/widgets", h.widgetsHandler)
	router.GET("/charts/:id", h.chartHandler)
	if h.metrics != nil {
		router.GET("/metrics", gin.WrapH(h.metrics))
	}
}

type chartView struct {
	ID      string
	Drawn   bool
	Version int
}

type pageView struct {
	Download widgets.Widget
	Upload   widgets.Widget
	Status   widgets.Widget
	TTL      widgets.Widget
	Charts   []chartView
}

func (h *Handler) dashboardHandler(c *gin.Context) {
	w := h.board.Widgets()
	view := pageView{
		Download: w[renderer.TargetDownload],
		Upload:   w[renderer.TargetUpload],
		Status:   w[renderer.TargetStatus],
		TTL:      w[renderer.TargetTTL],
	}
	for _, spec := range models.AllSeries() {
		_, version, ok := h.board.Image(string(spec.ID))
		view.Charts = append(view.Charts, chartView{ID: string(spec.ID), Drawn: ok, Version: version})
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := getTemplate().Execute(c.Writer, view); err != nil {
		_ = c.Error(err)
	}
}

func (h *Handler) widgetsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.board.Widgets())
}

func (h *Handler) chartHandler(c *gin.Context) {
	img, _, ok := h.board.Image(c.Param("id"))
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", img)
}

var (
	tmplOnce     sync.Once
	tmplCompiled *template.Template
)

func getTemplate() *template.Template {
	tmplOnce.Do(func() {
		tmplCompiled = template.Must(template.ParseFS(templatesFS, "template/dashboard.html"))
	})
	return tmplCompiled
}
