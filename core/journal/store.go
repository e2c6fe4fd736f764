// Package journal keeps an append-only audit trail of ETA predictions. It
// stores prediction outputs only; routes and models are never reloaded from
// it.
package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/kilianp07/routeeta/core/metrics"
)

// Record captures one prediction request and its result.
type Record struct {
	Timestamp     time.Time     `json:"timestamp"`
	PredictionID  string        `json:"prediction_id"`
	RouteID       string        `json:"route_id"`
	Outcome       string        `json:"outcome"`
	DistanceKm    float64       `json:"distance_km"`
	WeatherFactor float64       `json:"weather_factor"`
	TrafficFactor float64       `json:"traffic_factor"`
	DelayMinutes  float64       `json:"delay_minutes"`
	Baseline      time.Duration `json:"baseline"`
	ETA           time.Duration `json:"eta"`
}

// Query defines filters for retrieving records. Zero values match everything.
type Query struct {
	Start   time.Time
	End     time.Time
	RouteID string
	Outcome string
}

func (q Query) match(r Record) bool {
	if !q.Start.IsZero() && r.Timestamp.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && r.Timestamp.After(q.End) {
		return false
	}
	if q.RouteID != "" && r.RouteID != q.RouteID {
		return false
	}
	if q.Outcome != "" && r.Outcome != q.Outcome {
		return false
	}
	return true
}

// Store persists Records and supports querying.
type Store interface {
	Append(ctx context.Context, rec Record) error
	Query(ctx context.Context, q Query) ([]Record, error)
	Close() error
}

// Open returns the store for backend ("jsonl" or "sqlite") located at path.
func Open(backend, path string) (Store, error) {
	switch backend {
	case "", "jsonl":
		return NewJSONLStore(path)
	case "sqlite":
		return NewSQLiteStore(path)
	default:
		return nil, fmt.Errorf("unknown journal backend %s", backend)
	}
}

// FromEvent converts a metrics event into a journal record.
func FromEvent(ev metrics.PredictionEvent) Record {
	return Record{
		Timestamp:     ev.Time,
		PredictionID:  ev.PredictionID,
		RouteID:       ev.RouteID,
		Outcome:       ev.Outcome,
		DistanceKm:    ev.DistanceKm,
		WeatherFactor: ev.WeatherFactor,
		TrafficFactor: ev.TrafficFactor,
		DelayMinutes:  ev.DelayMinutes,
		Baseline:      ev.Baseline,
		ETA:           ev.ETA,
	}
}
