package metrics

import "time"

// Prediction outcomes.
const (
	OutcomeOK           = "ok"
	OutcomeZeroDistance = "zero_distance"
	OutcomeNotFound     = "not_found"
	OutcomeNotReady     = "not_ready"
	OutcomeInvalid      = "invalid_input"
)

// PredictionEvent describes one ETA prediction request.
type PredictionEvent struct {
	PredictionID  string
	RouteID       string
	Outcome       string
	DistanceKm    float64
	WeatherFactor float64
	TrafficFactor float64
	DelayMinutes  float64
	Baseline      time.Duration
	ETA           time.Duration
	Time          time.Time
}

// MetricsSink records prediction events for observability purposes.
type MetricsSink interface {
	RecordPrediction(ev PredictionEvent) error
}

// TrainingEvent captures the outcome of a model fit.
type TrainingEvent struct {
	Fitter    string
	Samples   int
	FitSize   int
	EvalSize  int
	R2        float64
	Intercept float64
	Distance  float64
	Weather   float64
	Traffic   float64
	Time      time.Time
}

// TrainingRecorder records model fits.
type TrainingRecorder interface {
	RecordTraining(ev TrainingEvent) error
}

// OptimizationEvent summarises one optimization pass over the registry.
type OptimizationEvent struct {
	Routes         int
	TotalOriginal  time.Duration
	TotalOptimized time.Duration
	Time           time.Time
}

// OptimizationRecorder records optimization passes.
type OptimizationRecorder interface {
	RecordOptimization(ev OptimizationEvent) error
}

// NopSink implements every recorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordPrediction(PredictionEvent) error     { return nil }
func (NopSink) RecordTraining(TrainingEvent) error         { return nil }
func (NopSink) RecordOptimization(OptimizationEvent) error { return nil }
