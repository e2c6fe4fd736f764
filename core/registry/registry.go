// Package registry stores the route records that delay predictions are made
// against. Records are keyed by caller-assigned id and listed in insertion
// order.
package registry

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/kilianp07/routeeta/core/logger"
	"github.com/kilianp07/routeeta/core/model"
)

var (
	// ErrEmptyID is returned when a route is added without an identifier.
	ErrEmptyID = errors.New("route id is required")
	// ErrInvalidDistance is returned for negative or non-finite distances.
	ErrInvalidDistance = errors.New("route distance must be a finite non-negative number")
)

// Reader gives read-only access to routes.
type Reader interface {
	Get(id string) (model.Route, bool)
	List() []model.Route
}

// Registry is an in-memory route store safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	routes   map[string]model.Route
	order    []string
	speedKmh float64
	log      logger.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithAverageSpeed overrides the speed used to derive baseline durations.
func WithAverageSpeed(kmh float64) Option {
	return func(r *Registry) {
		if kmh > 0 {
			r.speedKmh = kmh
		}
	}
}

// WithLogger sets the logger used for confirmation events.
func WithLogger(l logger.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.log = l
		}
	}
}

// New returns an empty Registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		routes:   make(map[string]model.Route),
		speedKmh: model.DefaultAverageSpeedKmh,
		log:      logger.NopLogger{},
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Add inserts the route or overwrites the record stored under id. An
// overwritten route keeps its position in the listing order.
func (r *Registry) Add(id, start, end string, distanceKm float64) (model.Route, error) {
	if id == "" {
		return model.Route{}, ErrEmptyID
	}
	if distanceKm < 0 || math.IsNaN(distanceKm) || math.IsInf(distanceKm, 0) {
		return model.Route{}, fmt.Errorf("route %s: %w (got %v)", id, ErrInvalidDistance, distanceKm)
	}
	route, err := model.NewRoute(id, start, end, distanceKm, r.speedKmh)
	if err != nil {
		return model.Route{}, fmt.Errorf("route %s: %w: %w", id, ErrInvalidDistance, err)
	}

	r.mu.Lock()
	if _, exists := r.routes[id]; !exists {
		r.order = append(r.order, id)
	}
	r.routes[id] = route
	r.mu.Unlock()

	r.log.Infow("route added", map[string]any{
		"route_id":    id,
		"start":       start,
		"end":         end,
		"distance_km": distanceKm,
		"baseline":    route.Baseline.String(),
	})
	return route, nil
}

// Get returns the route stored under id.
func (r *Registry) Get(id string) (model.Route, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	route, ok := r.routes[id]
	return route, ok
}

// List returns a snapshot of all routes in insertion order.
func (r *Registry) List() []model.Route {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Route, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.routes[id])
	}
	return out
}

// Len returns the number of stored routes.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.routes)
}
