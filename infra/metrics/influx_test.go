package metrics

import (
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/routeeta/core/metrics"
)

func captureServer(t *testing.T) (*httptest.Server, *[]string) {
	t.Helper()
	var bodies []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		bodies = append(bodies, strings.TrimSpace(string(data)))
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)
	return srv, &bodies
}

func TestInfluxSink_RecordPrediction(t *testing.T) {
	srv, bodies := captureServer(t)
	sink := NewInfluxSink(InfluxConfig{URL: srv.URL, Token: "token", Org: "org", Bucket: "bucket"})
	defer func() { _ = sink.Close() }()

	now := time.Now()
	ev := coremetrics.PredictionEvent{
		PredictionID:  "p1",
		RouteID:       "R1",
		Outcome:       coremetrics.OutcomeOK,
		DistanceKm:    450,
		WeatherFactor: 1.2,
		TrafficFactor: 1.1,
		DelayMinutes:  12.3456,
		ETA:           8 * time.Hour,
		Time:          now,
	}
	if err := sink.RecordPrediction(ev); err != nil {
		t.Fatalf("record error: %v", err)
	}
	p := write.NewPointWithMeasurement("eta_prediction").
		AddTag("route_id", "R1").
		AddTag("outcome", "ok").
		AddTag("prediction_id", "p1").
		AddField("distance_km", 450.0).
		AddField("weather_factor", 1.2).
		AddField("traffic_factor", 1.1).
		AddField("delay_minutes", 12.346).
		AddField("eta_seconds", 28800.0).
		SetTime(now)
	expected := strings.TrimSpace(write.PointToLineProtocol(p, time.Nanosecond))
	if len(*bodies) != 1 || (*bodies)[0] != expected {
		t.Errorf("unexpected body: %v", *bodies)
	}
}

func TestInfluxSink_RecordTrainingSkipsNaN(t *testing.T) {
	srv, bodies := captureServer(t)
	sink := NewInfluxSink(InfluxConfig{URL: srv.URL + "/api/v2/write", Token: "token", Org: "org", Bucket: "bucket"})
	defer func() { _ = sink.Close() }()

	if err := sink.RecordTraining(coremetrics.TrainingEvent{Fitter: "ols", Samples: 3, FitSize: 2, EvalSize: 1, R2: math.NaN(), Time: time.Now()}); err != nil {
		t.Fatalf("record error: %v", err)
	}
	if len(*bodies) != 1 {
		t.Fatalf("expected one write, got %d", len(*bodies))
	}
	if strings.Contains((*bodies)[0], "r2=") {
		t.Fatalf("NaN r2 should be omitted: %s", (*bodies)[0])
	}
	if !strings.HasPrefix((*bodies)[0], "eta_model_training,fitter=ols") {
		t.Fatalf("unexpected body: %s", (*bodies)[0])
	}
}

func TestNewInfluxSinkWithFallback(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			called = true
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}))
	defer srv.Close()

	sink := NewInfluxSinkWithFallback(InfluxConfig{
		URL:    srv.URL + "/api/v2/write",
		Token:  "tok",
		Org:    "org",
		Bucket: "bucket",
	})
	if _, ok := sink.(*InfluxSink); ok {
		t.Fatalf("expected NopSink on failing health check")
	}
	if !called {
		t.Fatalf("health endpoint not called")
	}
}
