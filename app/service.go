package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/kilianp07/routeeta/config"
	"github.com/kilianp07/routeeta/core/journal"
	coremetrics "github.com/kilianp07/routeeta/core/metrics"
	"github.com/kilianp07/routeeta/core/model"
	"github.com/kilianp07/routeeta/core/prediction"
	"github.com/kilianp07/routeeta/core/registry"
	"github.com/kilianp07/routeeta/infra/history"
	"github.com/kilianp07/routeeta/infra/logger"
	"github.com/kilianp07/routeeta/infra/metrics"
	"github.com/kilianp07/routeeta/infra/render"
)

var (
	// ErrNoHistory is returned by TrainFromHistory when no source is configured.
	ErrNoHistory = errors.New("no history source configured")
	// ErrNoJournal is returned by QueryJournal when the journal is disabled.
	ErrNoJournal = errors.New("no prediction journal configured")
)

// Service wires the route registry, the delay predictor and their
// collaborators.
type Service struct {
	Routes    *registry.Registry
	Predictor *prediction.Predictor
	Renderer  *render.Renderer
	History   history.Source
	Journal   journal.Store

	sink        coremetrics.MetricsSink
	log         logger.Logger
	metricsAddr string
}

// New creates a Service from the configuration and seeds the configured
// routes. The model stays untrained until Train or TrainFromHistory is called.
func New(cfg *config.Config) (*Service, error) {
	if err := logger.SetLevel(cfg.Logging.Level); err != nil {
		return nil, err
	}
	logg := logger.New("service")

	sink, store, err := newSink(cfg)
	if err != nil {
		return nil, err
	}
	fitter, err := prediction.NewFitter(cfg.Model.Fitter)
	if err != nil {
		closeSink(sink)
		return nil, fmt.Errorf("fitter: %w", err)
	}

	routes := registry.New(
		registry.WithAverageSpeed(cfg.Registry.AverageSpeedKmh),
		registry.WithLogger(logger.New("registry")),
	)
	pred := prediction.NewPredictor(routes,
		prediction.WithFitter(fitter),
		prediction.WithConfig(cfg.Model.Predictor()),
		prediction.WithMetrics(sink),
		prediction.WithLogger(logger.New("predictor")),
	)
	svc := &Service{
		Routes:      routes,
		Predictor:   pred,
		Renderer:    render.New(cfg.Render.OutputDir, cfg.Render.Locations),
		Journal:     store,
		sink:        sink,
		log:         logg,
		metricsAddr: cfg.Metrics.Addr,
	}
	if cfg.History.Type != "" {
		src, err := history.New(cfg.History)
		if err != nil {
			closeSink(sink)
			return nil, fmt.Errorf("history source: %w", err)
		}
		svc.History = src
	}
	for _, r := range cfg.Routes {
		if _, err := routes.Add(r.ID, r.Start, r.End, r.DistanceKm); err != nil {
			closeSink(sink)
			return nil, fmt.Errorf("seed route %s: %w", r.ID, err)
		}
	}
	return svc, nil
}

// newSink builds the configured sinks and, when enabled, the journal store
// appended to them.
func newSink(cfg *config.Config) (coremetrics.MetricsSink, journal.Store, error) {
	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, nil, fmt.Errorf("metrics sink: %w", err)
	}
	if cfg.Journal.Path == "" {
		return sink, nil, nil
	}
	store, err := journal.Open(cfg.Journal.Backend, cfg.Journal.Path)
	if err != nil {
		closeSink(sink)
		return nil, nil, fmt.Errorf("journal: %w", err)
	}
	return coremetrics.NewMultiSink(sink, journal.NewSink(store)), store, nil
}

func closeSink(s coremetrics.MetricsSink) {
	if c, ok := s.(interface{ Close() error }); ok {
		_ = c.Close()
	}
}

// SetMetricsAddr overrides the Prometheus listen address.
func (s *Service) SetMetricsAddr(addr string) {
	if addr != "" {
		s.metricsAddr = addr
	}
}

// StartMetrics serves Prometheus metrics in the background until ctx is
// cancelled. It is a no-op without a listen address.
func (s *Service) StartMetrics(ctx context.Context) {
	if s.metricsAddr == "" {
		return
	}
	go func() {
		if err := metrics.StartPromServer(ctx, s.metricsAddr); err != nil {
			s.log.Errorf("prom server: %v", err)
		}
	}()
}

// AddRoute registers or replaces a route.
func (s *Service) AddRoute(id, start, end string, distanceKm float64) (model.Route, error) {
	return s.Routes.Add(id, start, end, distanceKm)
}

// TrainFromHistory loads the configured history source and trains on it.
func (s *Service) TrainFromHistory(ctx context.Context) (prediction.TrainingReport, error) {
	if s.History == nil {
		return prediction.TrainingReport{}, ErrNoHistory
	}
	return s.TrainFrom(ctx, s.History)
}

// TrainFrom trains the predictor on the samples of src.
func (s *Service) TrainFrom(ctx context.Context, src history.Source) (prediction.TrainingReport, error) {
	samples, err := src.Load(ctx)
	if err != nil {
		return prediction.TrainingReport{}, fmt.Errorf("load history: %w", err)
	}
	return s.Predictor.Train(ctx, samples)
}

// QueryJournal returns the journaled predictions matching q.
func (s *Service) QueryJournal(ctx context.Context, q journal.Query) ([]journal.Record, error) {
	if s.Journal == nil {
		return nil, ErrNoJournal
	}
	return s.Journal.Query(ctx, q)
}

// Visualize writes the map of a registered route and returns its path.
func (s *Service) Visualize(routeID string) (string, error) {
	r, ok := s.Routes.Get(routeID)
	if !ok {
		return "", fmt.Errorf("route %s: %w", routeID, prediction.ErrRouteNotFound)
	}
	start, end := s.Renderer.Resolve(r.Start, r.End)
	return s.Renderer.Render(r.ID, start, end, fmt.Sprintf("%s to %s", r.Start, r.End))
}

// Close releases the sinks held by the service.
func (s *Service) Close() error {
	if c, ok := s.sink.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
