package model

import "time"

// NeutralFactor is the weather/traffic multiplier meaning "normal conditions".
const NeutralFactor = 1.0

// Prediction is the delay-adjusted arrival estimate for one route.
type Prediction struct {
	ID            string        `json:"id"`
	RouteID       string        `json:"route_id"`
	WeatherFactor float64       `json:"weather_factor"`
	TrafficFactor float64       `json:"traffic_factor"`
	DelayMinutes  float64       `json:"delay_minutes"`
	Delay         time.Duration `json:"delay"`
	Baseline      time.Duration `json:"baseline"`
	ETA           time.Duration `json:"eta"`
	Timestamp     time.Time     `json:"timestamp"`
}

// OptimizedRoute compares the predicted ETA with the ETA after the
// optimization reduction is applied to the delay.
type OptimizedRoute struct {
	RouteID        string        `json:"route_id"`
	PredictedDelay time.Duration `json:"predicted_delay"`
	OptimizedDelay time.Duration `json:"optimized_delay"`
	OriginalETA    time.Duration `json:"original_eta"`
	OptimizedETA   time.Duration `json:"optimized_eta"`
}
