package prediction

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"github.com/kilianp07/routeeta/core/logger"
	"github.com/kilianp07/routeeta/core/metrics"
	"github.com/kilianp07/routeeta/core/model"
	"github.com/kilianp07/routeeta/core/registry"
)

// DefaultOptimizationFactor is the share of the predicted delay kept after
// optimization.
const DefaultOptimizationFactor = 0.9

// TrainingReport summarises a successful Train call.
type TrainingReport struct {
	Fitter       string       `json:"fitter"`
	Samples      int          `json:"samples"`
	FitSize      int          `json:"fit_size"`
	EvalSize     int          `json:"eval_size"`
	R2           float64      `json:"r2"`
	Coefficients Coefficients `json:"coefficients"`
}

// Config tunes the split and the optimization policy.
type Config struct {
	Seed               uint64  `json:"seed"`
	EvalRatio          float64 `json:"eval_ratio"`
	OptimizationFactor float64 `json:"optimization_factor"`
}

// DefaultConfig returns the split and optimization defaults.
func DefaultConfig() Config {
	return Config{
		Seed:               DefaultSeed,
		EvalRatio:          DefaultEvalRatio,
		OptimizationFactor: DefaultOptimizationFactor,
	}
}

// Predictor owns the delay model and evaluates it against registered routes.
type Predictor struct {
	routes registry.Reader
	fitter Fitter
	cfg    Config
	sink   metrics.MetricsSink
	log    logger.Logger
	now    func() time.Time

	mu   sync.RWMutex
	coef *Coefficients
}

// Option configures a Predictor.
type Option func(*Predictor)

// WithFitter selects the fitting strategy. Defaults to OLSFitter.
func WithFitter(f Fitter) Option {
	return func(p *Predictor) {
		if f != nil {
			p.fitter = f
		}
	}
}

// WithConfig overrides the split and optimization settings.
func WithConfig(c Config) Option {
	return func(p *Predictor) { p.cfg = c }
}

// WithMetrics sets the sink receiving prediction events.
func WithMetrics(s metrics.MetricsSink) Option {
	return func(p *Predictor) {
		if s != nil {
			p.sink = s
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(p *Predictor) {
		if l != nil {
			p.log = l
		}
	}
}

// WithClock overrides the time source used for event timestamps.
func WithClock(now func() time.Time) Option {
	return func(p *Predictor) {
		if now != nil {
			p.now = now
		}
	}
}

// NewPredictor returns an untrained Predictor reading routes from routes.
func NewPredictor(routes registry.Reader, opts ...Option) *Predictor {
	p := &Predictor{
		routes: routes,
		fitter: OLSFitter{},
		cfg:    DefaultConfig(),
		sink:   metrics.NopSink{},
		log:    logger.NopLogger{},
		now:    time.Now,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Trained reports whether a model is installed.
func (p *Predictor) Trained() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.coef != nil
}

// Coefficients returns the installed model parameters.
func (p *Predictor) Coefficients() (Coefficients, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.coef == nil {
		return Coefficients{}, false
	}
	return *p.coef, true
}

// Train fits a new model and replaces the current one. On error the current
// model, if any, is left untouched.
func (p *Predictor) Train(ctx context.Context, samples []model.TrainingSample) (TrainingReport, error) {
	if err := ctx.Err(); err != nil {
		return TrainingReport{}, err
	}
	if err := validateSamples(samples); err != nil {
		return TrainingReport{}, err
	}
	fitIdx, evalIdx, err := splitIndices(len(samples), p.cfg.EvalRatio, p.cfg.Seed)
	if err != nil {
		return TrainingReport{}, err
	}
	fitSet := pick(samples, fitIdx)
	coef, err := p.fitter.Fit(fitSet)
	if err != nil {
		return TrainingReport{}, fmt.Errorf("fit %s: %w", p.fitter.Name(), err)
	}
	if !coef.Valid() {
		return TrainingReport{}, fmt.Errorf("fit %s: %w: non-finite coefficients", p.fitter.Name(), ErrInvalidTrainingData)
	}

	report := TrainingReport{
		Fitter:       p.fitter.Name(),
		Samples:      len(samples),
		FitSize:      len(fitIdx),
		EvalSize:     len(evalIdx),
		R2:           score(coef, pick(samples, evalIdx)),
		Coefficients: coef,
	}

	p.mu.Lock()
	p.coef = &coef
	p.mu.Unlock()

	p.log.Infof("Model trained with R^2 score: %.2f", report.R2)
	p.log.Debugw("model coefficients", map[string]any{
		"fitter":    report.Fitter,
		"intercept": coef.Intercept,
		"distance":  coef.Distance,
		"weather":   coef.Weather,
		"traffic":   coef.Traffic,
	})
	if rec, ok := p.sink.(metrics.TrainingRecorder); ok {
		if err := rec.RecordTraining(metrics.TrainingEvent{
			Fitter:    report.Fitter,
			Samples:   report.Samples,
			FitSize:   report.FitSize,
			EvalSize:  report.EvalSize,
			R2:        report.R2,
			Intercept: coef.Intercept,
			Distance:  coef.Distance,
			Weather:   coef.Weather,
			Traffic:   coef.Traffic,
			Time:      p.now(),
		}); err != nil {
			p.log.Warnf("record training: %v", err)
		}
	}
	return report, nil
}

// PredictETA predicts the delay for routeID under the given condition
// factors and returns the adjusted ETA. Zero-distance routes bypass the model
// and always yield a zero delay.
func (p *Predictor) PredictETA(ctx context.Context, routeID string, weather, traffic float64) (model.Prediction, error) {
	if err := ctx.Err(); err != nil {
		return model.Prediction{}, err
	}
	ev := metrics.PredictionEvent{
		PredictionID:  uuid.NewString(),
		RouteID:       routeID,
		WeatherFactor: eventValue(weather),
		TrafficFactor: eventValue(traffic),
		Time:          p.now(),
	}
	coef, ok := p.Coefficients()
	if !ok {
		ev.Outcome = metrics.OutcomeNotReady
		p.record(ev)
		return model.Prediction{}, ErrModelNotReady
	}
	if !finite(weather) || !finite(traffic) {
		ev.Outcome = metrics.OutcomeInvalid
		p.record(ev)
		return model.Prediction{}, fmt.Errorf("%w: weather=%v traffic=%v", ErrInvalidFactor, weather, traffic)
	}
	route, ok := p.routes.Get(routeID)
	if !ok {
		ev.Outcome = metrics.OutcomeNotFound
		p.record(ev)
		return model.Prediction{}, fmt.Errorf("route %s: %w", routeID, ErrRouteNotFound)
	}

	pred := model.Prediction{
		ID:            ev.PredictionID,
		RouteID:       routeID,
		WeatherFactor: weather,
		TrafficFactor: traffic,
		Baseline:      route.Baseline,
		ETA:           route.Baseline,
		Timestamp:     ev.Time,
	}
	ev.DistanceKm = route.DistanceKm
	ev.Baseline = route.Baseline
	if route.IsDegenerate() {
		ev.Outcome = metrics.OutcomeZeroDistance
		ev.ETA = pred.ETA
		p.record(ev)
		p.log.Infof("Route %s has zero distance. No delay expected.", routeID)
		return pred, nil
	}

	pred.DelayMinutes = coef.Eval(route.DistanceKm, weather, traffic)
	delay, eta, err := adjust(route.Baseline, pred.DelayMinutes)
	if err != nil {
		ev.Outcome = metrics.OutcomeInvalid
		p.record(ev)
		return model.Prediction{}, fmt.Errorf("route %s: %w", routeID, err)
	}
	pred.Delay = delay
	pred.ETA = eta

	ev.Outcome = metrics.OutcomeOK
	ev.DelayMinutes = pred.DelayMinutes
	ev.ETA = pred.ETA
	p.record(ev)
	p.log.Debugw("delay predicted", map[string]any{
		"route_id":      routeID,
		"delay_minutes": pred.DelayMinutes,
		"eta":           pred.ETA.String(),
	})
	return pred, nil
}

// OptimizeAll predicts every route's delay under neutral conditions and
// applies the optimization factor to it. Results follow registry order.
// Zero-distance routes keep a zero delay, consistent with PredictETA.
func (p *Predictor) OptimizeAll(ctx context.Context) ([]model.OptimizedRoute, error) {
	coef, ok := p.Coefficients()
	if !ok {
		return nil, ErrModelNotReady
	}
	routes := p.routes.List()
	out := make([]model.OptimizedRoute, 0, len(routes))
	ev := metrics.OptimizationEvent{Routes: len(routes), Time: p.now()}
	for _, r := range routes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var delay float64
		if !r.IsDegenerate() {
			delay = coef.Eval(r.DistanceKm, model.NeutralFactor, model.NeutralFactor)
		}
		opt := model.OptimizedRoute{RouteID: r.ID}
		var err error
		if opt.PredictedDelay, opt.OriginalETA, err = adjust(r.Baseline, delay); err != nil {
			return nil, fmt.Errorf("route %s: %w", r.ID, err)
		}
		if opt.OptimizedDelay, opt.OptimizedETA, err = adjust(r.Baseline, delay*p.cfg.OptimizationFactor); err != nil {
			return nil, fmt.Errorf("route %s: %w", r.ID, err)
		}
		ev.TotalOriginal += opt.OriginalETA
		ev.TotalOptimized += opt.OptimizedETA
		out = append(out, opt)
	}
	if rec, ok := p.sink.(metrics.OptimizationRecorder); ok {
		if err := rec.RecordOptimization(ev); err != nil {
			p.log.Warnf("record optimization: %v", err)
		}
	}
	p.log.Infof("optimized %d routes", len(out))
	return out, nil
}

func (p *Predictor) record(ev metrics.PredictionEvent) {
	if err := p.sink.RecordPrediction(ev); err != nil {
		p.log.Warnf("record prediction %s: %v", ev.PredictionID, err)
	}
}

// adjust converts a delay in minutes and adds it to baseline.
func adjust(baseline time.Duration, delayMinutes float64) (time.Duration, time.Duration, error) {
	delay, err := model.MinutesToDuration(delayMinutes)
	if err != nil {
		return 0, 0, err
	}
	eta, err := model.AddDurations(baseline, delay)
	if err != nil {
		return 0, 0, err
	}
	return delay, eta, nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// eventValue zeroes non-finite inputs; sinks such as the JSONL journal cannot
// encode them.
func eventValue(v float64) float64 {
	if !finite(v) {
		return 0
	}
	return v
}

func validateSamples(samples []model.TrainingSample) error {
	for i, s := range samples {
		for j, v := range []float64{s.DistanceKm, s.WeatherFactor, s.TrafficFactor, s.DelayMinutes} {
			if !finite(v) {
				return fmt.Errorf("%w: row %d column %s is not a finite number", ErrInvalidTrainingData, i, model.RequiredColumns[j])
			}
		}
	}
	return nil
}

func pick(samples []model.TrainingSample, idx []int) []model.TrainingSample {
	out := make([]model.TrainingSample, len(idx))
	for i, j := range idx {
		out[i] = samples[j]
	}
	return out
}

// score returns the coefficient of determination of coef on samples. It is
// NaN when there are no samples or the targets have no variance.
func score(coef Coefficients, samples []model.TrainingSample) float64 {
	if len(samples) == 0 {
		return math.NaN()
	}
	est := make([]float64, len(samples))
	vals := make([]float64, len(samples))
	for i, s := range samples {
		est[i] = coef.Eval(s.DistanceKm, s.WeatherFactor, s.TrafficFactor)
		vals[i] = s.DelayMinutes
	}
	return stat.RSquaredFrom(est, vals, nil)
}
