package journal

import (
	"context"
	"time"

	"github.com/kilianp07/routeeta/core/metrics"
)

// Sink adapts a Store to metrics.MetricsSink so every prediction is journaled.
type Sink struct {
	Store   Store
	Timeout time.Duration
}

// NewSink wraps store with a default write timeout.
func NewSink(store Store) *Sink {
	return &Sink{Store: store, Timeout: 5 * time.Second}
}

// RecordPrediction appends the event to the store.
func (s *Sink) RecordPrediction(ev metrics.PredictionEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.Timeout)
	defer cancel()
	return s.Store.Append(ctx, FromEvent(ev))
}

// Close closes the underlying store.
func (s *Sink) Close() error { return s.Store.Close() }
