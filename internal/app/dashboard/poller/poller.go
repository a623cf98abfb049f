package poller

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"

	"github.com/Hobrus/netpulse/internal/app/dashboard/models"
	"github.com/Hobrus/netpulse/internal/app/dashboard/renderer"
	"github.com/Hobrus/netpulse/internal/app/dashboard/telemetry"
)

// RefreshInterval is the fixed tick period.
const RefreshInterval = 2 * time.Second

var (
	ErrTransport      = errors.New("metrics fetch failed")
	ErrServerReported = errors.New("metrics endpoint reported an error")
	ErrContract       = errors.New("metrics snapshot violates contract")
	ErrRender         = errors.New("failed to render snapshot")
)

// Sink receives every successfully decoded snapshot together with the
// sequence number of the tick that fetched it.
type Sink interface {
	Apply(seq uint64, s models.MetricsSnapshot) error
}

type Poller struct {
	URL string
	// Timeout bounds one fetch; zero leaves it unbounded.
	Timeout   time.Duration
	Client    *fasthttp.Client
	Sink      Sink
	Logger    *logrus.Logger
	Telemetry *telemetry.Collector

	interval time.Duration
	seq      atomic.Uint64
}

func NewPoller(url string, sink Sink, logger *logrus.Logger) *Poller {
	return &Poller{
		URL:      url,
		Client:   &fasthttp.Client{Name: "netpulse"},
		Sink:     sink,
		Logger:   logger,
		interval: RefreshInterval,
	}
}

// Run ticks immediately and then every RefreshInterval until ctx is done.
// Ticks run on their own goroutines and may overlap.
func (p *Poller) Run(ctx context.Context) error {
	c := cron.New(cron.WithLogger(cron.PrintfLogger(p.Logger)))
	c.Schedule(cron.Every(p.interval), cron.FuncJob(func() {
		_ = p.Tick(ctx)
	}))

	go func() { _ = p.Tick(ctx) }()
	c.Start()
	p.Logger.WithFields(logrus.Fields{
		"url":      p.URL,
		"interval": p.interval,
	}).Info("Poller started")

	<-ctx.Done()
	// in-flight fetches are not waited for
	c.Stop()
	p.Logger.Info("Poller stopped")
	return nil
}

// Tick performs one fetch and hands a clean snapshot to the sink. Every
// failure is logged here; the returned error only reports what happened.
func (p *Poller) Tick(ctx context.Context) error {
	seq := p.seq.Add(1)
	log := p.Logger.WithField("seq", seq)

	snapshot, err := p.fetch(ctx)
	if err != nil {
		switch {
		case errors.Is(err, ErrServerReported):
			log.WithError(err).Error("Metrics endpoint reported an error")
			p.observe(telemetry.OutcomeServerError)
		case errors.Is(err, ErrContract):
			log.WithError(err).Error("Metrics snapshot is incomplete")
			p.observe(telemetry.OutcomeContractError)
		default:
			log.WithError(err).Info("Waiting for data sync...")
			p.observe(telemetry.OutcomeTransportError)
		}
		return err
	}

	if err := p.Sink.Apply(seq, snapshot); err != nil {
		if errors.Is(err, renderer.ErrStale) {
			log.WithError(err).Debug("Dropped stale snapshot")
			p.observe(telemetry.OutcomeStale)
			return err
		}
		log.WithError(err).Error("Failed to render snapshot")
		p.observe(telemetry.OutcomeRenderError)
		return fmt.Errorf("%w: %w", ErrRender, err)
	}

	p.observe(telemetry.OutcomeRendered)
	if p.Telemetry != nil {
		p.Telemetry.MarkRendered(time.Now())
	}
	return nil
}

func (p *Poller) fetch(ctx context.Context) (models.MetricsSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return models.MetricsSnapshot{}, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(p.URL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")
	req.Header.Set(fasthttp.HeaderAcceptEncoding, "gzip")

	start := time.Now()
	var err error
	if p.Timeout > 0 {
		err = p.Client.DoTimeout(req, resp, p.Timeout)
	} else {
		err = p.Client.Do(req, resp)
	}
	if p.Telemetry != nil {
		p.Telemetry.ObserveFetch(time.Since(start))
	}
	if err != nil {
		return models.MetricsSnapshot{}, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	body, err := resp.BodyUncompressed()
	if err != nil {
		return models.MetricsSnapshot{}, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	// The status code is ignored: the backend answers 404 and 500 with an
	// error body, which DecodeSnapshot reports.
	snapshot, err := models.DecodeSnapshot(body)
	if err != nil {
		var se *models.ServerError
		switch {
		case errors.As(err, &se):
			return models.MetricsSnapshot{}, fmt.Errorf("%w: %s", ErrServerReported, se.Message)
		case errors.Is(err, models.ErrMissingField):
			return models.MetricsSnapshot{}, fmt.Errorf("%w: %w", ErrContract, err)
		default:
			return models.MetricsSnapshot{}, fmt.Errorf("%w: %w", ErrTransport, err)
		}
	}
	return snapshot, nil
}

func (p *Poller) observe(outcome string) {
	if p.Telemetry != nil {
		p.Telemetry.ObserveTick(outcome)
	}
}
