package prediction

import (
	"math"
	"testing"

	"github.com/kilianp07/routeeta/core/factory"
	"github.com/kilianp07/routeeta/core/model"
)

func TestOLSFitterUnderdetermined(t *testing.T) {
	coef, err := OLSFitter{}.Fit(threeSamples()[:2])
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	if !coef.Valid() {
		t.Fatalf("expected finite coefficients, got %+v", coef)
	}
	// The minimum-norm solution still interpolates both points.
	for _, s := range threeSamples()[:2] {
		got := coef.Eval(s.DistanceKm, s.WeatherFactor, s.TrafficFactor)
		if math.Abs(got-s.DelayMinutes) > 1e-9 {
			t.Fatalf("expected %v got %v", s.DelayMinutes, got)
		}
	}
}

func TestOLSFitterConstantFeatures(t *testing.T) {
	samples := []model.TrainingSample{
		{DistanceKm: 10, WeatherFactor: 1, TrafficFactor: 1, DelayMinutes: 4},
		{DistanceKm: 10, WeatherFactor: 1, TrafficFactor: 1, DelayMinutes: 6},
	}
	coef, err := OLSFitter{}.Fit(samples)
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	if coef.Distance != 0 || coef.Weather != 0 || coef.Traffic != 0 {
		t.Fatalf("expected zero slopes, got %+v", coef)
	}
	if coef.Intercept != 5 {
		t.Fatalf("expected mean intercept 5, got %v", coef.Intercept)
	}
}

func TestOLSFitterEmpty(t *testing.T) {
	if _, err := (OLSFitter{}).Fit(nil); err == nil {
		t.Fatal("expected error on empty input")
	}
}

func TestRidgeShrinksSlopes(t *testing.T) {
	ols, err := OLSFitter{}.Fit(linearSamples())
	if err != nil {
		t.Fatalf("ols: %v", err)
	}
	ridge, err := RidgeFitter{Lambda: 50}.Fit(linearSamples())
	if err != nil {
		t.Fatalf("ridge: %v", err)
	}
	olsNorm := ols.Weather*ols.Weather + ols.Traffic*ols.Traffic + ols.Distance*ols.Distance
	ridgeNorm := ridge.Weather*ridge.Weather + ridge.Traffic*ridge.Traffic + ridge.Distance*ridge.Distance
	if ridgeNorm >= olsNorm {
		t.Fatalf("expected ridge to shrink slopes: %v >= %v", ridgeNorm, olsNorm)
	}
	if _, err := (RidgeFitter{}).Fit(linearSamples()); err == nil {
		t.Fatal("expected error for zero lambda")
	}
}

func TestNewFitter(t *testing.T) {
	f, err := NewFitter(factory.ModuleConfig{})
	if err != nil || f.Name() != "ols" {
		t.Fatalf("expected default ols, got %v %v", f, err)
	}
	f, err = NewFitter(factory.ModuleConfig{Type: "ridge", Conf: map[string]any{"lambda": 2.5}})
	if err != nil {
		t.Fatalf("ridge: %v", err)
	}
	if r, ok := f.(RidgeFitter); !ok || r.Lambda != 2.5 {
		t.Fatalf("unexpected fitter %#v", f)
	}
	if _, err := NewFitter(factory.ModuleConfig{Type: "ridge", Conf: map[string]any{"lambda": -1}}); err == nil {
		t.Fatal("expected error for negative lambda")
	}
	if _, err := NewFitter(factory.ModuleConfig{Type: "lasso"}); err == nil {
		t.Fatal("expected unknown fitter error")
	}
}

func TestCoefficientsEval(t *testing.T) {
	c := Coefficients{Intercept: 1, Distance: 0.5, Weather: 2, Traffic: 3}
	if got := c.Eval(10, 1, 1); got != 11 {
		t.Fatalf("expected 11, got %v", got)
	}
	if (Coefficients{Weather: math.Inf(1)}).Valid() {
		t.Fatal("expected infinite coefficient to be invalid")
	}
}
