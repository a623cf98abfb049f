// Package dashboard wires the poller, renderer, widget board and view
// server into one process.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Hobrus/netpulse/internal/app/dashboard/config"
	consoleview "github.com/Hobrus/netpulse/internal/app/dashboard/console"
	"github.com/Hobrus/netpulse/internal/app/dashboard/export"
	"github.com/Hobrus/netpulse/internal/app/dashboard/handlers"
	"github.com/Hobrus/netpulse/internal/app/dashboard/linechart"
	"github.com/Hobrus/netpulse/internal/app/dashboard/middleware"
	"github.com/Hobrus/netpulse/internal/app/dashboard/models"
	"github.com/Hobrus/netpulse/internal/app/dashboard/poller"
	"github.com/Hobrus/netpulse/internal/app/dashboard/renderer"
	"github.com/Hobrus/netpulse/internal/app/dashboard/telemetry"
	"github.com/Hobrus/netpulse/internal/app/dashboard/widgets"
)

const shutdownTimeout = 5 * time.Second

type Dashboard struct {
	Config    *config.Config
	Board     *widgets.Board
	Renderer  *renderer.Renderer
	Poller    *poller.Poller
	Telemetry *telemetry.Collector
	Server    *http.Server

	logger *logrus.Logger
}

// NewDashboard builds every component; console frames go to console when
// the console view is enabled.
func NewDashboard(cfg *config.Config, logger *logrus.Logger, console io.Writer) (*Dashboard, error) {
	board := widgets.NewBoard()
	if cfg.ExportDir != "" {
		exporter, err := export.NewDirExporter(cfg.ExportDir)
		if err != nil {
			return nil, err
		}
		board.SetExporter(exporter, logger)
	}

	r := renderer.NewRenderer(board, linechart.NewFactory(cfg.ChartWidth, cfg.ChartHeight))
	r.Ordered = cfg.Ordered

	if cfg.Console {
		printer := consoleview.NewPrinter(console, board)
		r.AfterRender = func(s models.MetricsSnapshot, series []renderer.SeriesView) {
			if err := printer.Print(s, series); err != nil {
				logger.WithError(err).Warn("Failed to print console frame")
			}
		}
	}

	collector := telemetry.NewCollector()
	p := poller.NewPoller(cfg.MetricsURL, r, logger)
	p.Timeout = cfg.FetchTimeout
	p.Telemetry = collector

	router := gin.New()
	router.Use(middleware.GzipMiddleware(), gin.Recovery(), middleware.LoggingMiddleware(logger))
	handlers.NewHandler(board, collector.Handler()).SetupRoutes(router)

	return &Dashboard{
		Config:    cfg,
		Board:     board,
		Renderer:  r,
		Poller:    p,
		Telemetry: collector,
		Server: &http.Server{
			Addr:              cfg.ServerAddress,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}, nil
}

// Run polls and serves until ctx is cancelled or the server fails.
func (d *Dashboard) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return d.Poller.Run(gctx)
	})

	g.Go(func() error {
		d.logger.WithField("address", d.Server.Addr).Info("Dashboard server started")
		if err := d.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := d.Server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		d.logger.Info("Dashboard stopped gracefully")
		return nil
	})

	return g.Wait()
}
