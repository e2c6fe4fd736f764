package model

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestNewRouteBaseline(t *testing.T) {
	r, err := NewRoute("R1", "Chicago", "Detroit", 450, DefaultAverageSpeedKmh)
	if err != nil {
		t.Fatalf("new route: %v", err)
	}
	if r.Baseline != 7*time.Hour+30*time.Minute {
		t.Fatalf("expected 7h30m baseline, got %s", r.Baseline)
	}
	if r.IsDegenerate() {
		t.Fatalf("450 km route should not be degenerate")
	}
}

func TestNewRouteZeroDistance(t *testing.T) {
	r, err := NewRoute("R2", "Chicago", "Chicago", 0, DefaultAverageSpeedKmh)
	if err != nil {
		t.Fatalf("new route: %v", err)
	}
	if r.Baseline != 0 {
		t.Fatalf("expected zero baseline, got %s", r.Baseline)
	}
	if !r.IsDegenerate() {
		t.Fatalf("expected degenerate route")
	}
}

func TestNewRouteBaselineOverflow(t *testing.T) {
	if _, err := NewRoute("BIG", "A", "B", 1e12, DefaultAverageSpeedKmh); !errors.Is(err, ErrDurationOutOfRange) {
		t.Fatalf("expected ErrDurationOutOfRange, got %v", err)
	}
}

func TestBaselineDurationFallbackSpeed(t *testing.T) {
	if got, _ := BaselineDuration(120, 0); got != 2*time.Hour {
		t.Fatalf("expected default speed fallback, got %s", got)
	}
	if got, _ := BaselineDuration(120, 120); got != time.Hour {
		t.Fatalf("expected 1h at 120 km/h, got %s", got)
	}
}

func TestMinutesToDuration(t *testing.T) {
	if got, err := MinutesToDuration(1.5); err != nil || got != 90*time.Second {
		t.Fatalf("expected 90s, got %s (%v)", got, err)
	}
	if got, err := MinutesToDuration(-2); err != nil || got != -2*time.Minute {
		t.Fatalf("expected negative delay preserved, got %s (%v)", got, err)
	}
	for _, m := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), 1e12, -1e12} {
		if _, err := MinutesToDuration(m); !errors.Is(err, ErrDurationOutOfRange) {
			t.Errorf("%v minutes: expected ErrDurationOutOfRange, got %v", m, err)
		}
	}
}

func TestAddDurations(t *testing.T) {
	if got, err := AddDurations(time.Hour, -time.Minute); err != nil || got != 59*time.Minute {
		t.Fatalf("got %s (%v)", got, err)
	}
	if _, err := AddDurations(time.Duration(math.MaxInt64-10), time.Second); !errors.Is(err, ErrDurationOutOfRange) {
		t.Fatalf("expected overflow, got %v", err)
	}
	if _, err := AddDurations(time.Duration(math.MinInt64+10), -time.Second); !errors.Is(err, ErrDurationOutOfRange) {
		t.Fatalf("expected underflow, got %v", err)
	}
}
