package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/routeeta/core/metrics"
)

// PromSink records prediction events in Prometheus metrics.
type PromSink struct {
	predictions   *prometheus.CounterVec
	delay         *prometheus.HistogramVec
	trainings     prometheus.Counter
	r2            prometheus.Gauge
	samples       prometheus.Gauge
	coefficients  *prometheus.GaugeVec
	optimized     prometheus.Gauge
	savedDuration prometheus.Gauge
}

// NewPromSink registers prediction metrics on the default Prometheus registerer.
// The HTTP endpoint should be started separately using StartPromServer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PromSink{}
	var err error
	if s.predictions, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "eta_predictions_total",
		Help: "Total number of ETA prediction requests",
	}, []string{"route_id", "outcome"})); err != nil {
		return nil, err
	}
	if s.delay, err = register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "eta_predicted_delay_minutes",
		Help:    "Predicted delay per route in minutes",
		Buckets: prometheus.LinearBuckets(-30, 15, 11),
	}, []string{"route_id"})); err != nil {
		return nil, err
	}
	if s.trainings, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "eta_model_trainings_total",
		Help: "Number of successful model fits",
	})); err != nil {
		return nil, err
	}
	if s.r2, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "eta_model_r2",
		Help: "Coefficient of determination of the last fit on held-out samples",
	})); err != nil {
		return nil, err
	}
	if s.samples, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "eta_model_training_samples",
		Help: "Number of samples used by the last fit",
	})); err != nil {
		return nil, err
	}
	if s.coefficients, err = register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "eta_model_coefficient",
		Help: "Coefficients of the installed delay model",
	}, []string{"term"})); err != nil {
		return nil, err
	}
	if s.optimized, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "eta_optimization_routes",
		Help: "Number of routes covered by the last optimization pass",
	})); err != nil {
		return nil, err
	}
	if s.savedDuration, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "eta_optimization_saved_seconds",
		Help: "Total ETA reduction of the last optimization pass",
	})); err != nil {
		return nil, err
	}
	return s, nil
}

// register adds c to reg, reusing an identical collector that is already registered.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		var zero T
		return zero, err
	}
	return c, nil
}

// RecordPrediction counts the request and observes the delay of successful predictions.
func (s *PromSink) RecordPrediction(ev coremetrics.PredictionEvent) error {
	s.predictions.WithLabelValues(ev.RouteID, ev.Outcome).Inc()
	if ev.Outcome == coremetrics.OutcomeOK || ev.Outcome == coremetrics.OutcomeZeroDistance {
		s.delay.WithLabelValues(ev.RouteID).Observe(ev.DelayMinutes)
	}
	return nil
}

// RecordTraining exposes the fit quality and coefficients of the new model.
func (s *PromSink) RecordTraining(ev coremetrics.TrainingEvent) error {
	s.trainings.Inc()
	s.r2.Set(ev.R2)
	s.samples.Set(float64(ev.Samples))
	s.coefficients.WithLabelValues("intercept").Set(ev.Intercept)
	s.coefficients.WithLabelValues("distance_km").Set(ev.Distance)
	s.coefficients.WithLabelValues("weather_factor").Set(ev.Weather)
	s.coefficients.WithLabelValues("traffic_factor").Set(ev.Traffic)
	return nil
}

// RecordOptimization records the size and gain of an optimization pass.
func (s *PromSink) RecordOptimization(ev coremetrics.OptimizationEvent) error {
	s.optimized.Set(float64(ev.Routes))
	s.savedDuration.Set((ev.TotalOriginal - ev.TotalOptimized).Seconds())
	return nil
}
