package model

import (
	"fmt"
	"time"
)

// DefaultAverageSpeedKmh is the cruising speed used to derive baseline durations.
const DefaultAverageSpeedKmh = 60.0

// Route is a named point-to-point travel record.
type Route struct {
	ID         string        `json:"id"`
	Start      string        `json:"start"`
	End        string        `json:"end"`
	DistanceKm float64       `json:"distance_km"`
	Baseline   time.Duration `json:"baseline"` // travel time at the average speed, ignoring conditions
}

// NewRoute builds a Route and derives its baseline duration from speedKmh.
// A non-positive speed falls back to DefaultAverageSpeedKmh.
func NewRoute(id, start, end string, distanceKm, speedKmh float64) (Route, error) {
	baseline, err := BaselineDuration(distanceKm, speedKmh)
	if err != nil {
		return Route{}, err
	}
	return Route{
		ID:         id,
		Start:      start,
		End:        end,
		DistanceKm: distanceKm,
		Baseline:   baseline,
	}, nil
}

// BaselineDuration converts a distance into travel time at speedKmh.
func BaselineDuration(distanceKm, speedKmh float64) (time.Duration, error) {
	if speedKmh <= 0 {
		speedKmh = DefaultAverageSpeedKmh
	}
	return toDuration(distanceKm / speedKmh * float64(time.Hour))
}

// IsDegenerate reports whether the route starts and ends at the same place.
func (r Route) IsDegenerate() bool { return r.DistanceKm == 0 }

func (r Route) String() string {
	return fmt.Sprintf("Route %s: %s -> %s, Distance: %g km, Estimated Time: %s",
		r.ID, r.Start, r.End, r.DistanceKm, r.Baseline)
}
