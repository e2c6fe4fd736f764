package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/routeeta/config"
	"github.com/kilianp07/routeeta/core/factory"
	"github.com/kilianp07/routeeta/core/journal"
	"github.com/kilianp07/routeeta/core/prediction"
)

func writeHistory(t *testing.T, dir string) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("distance_km,weather_factor,traffic_factor,delay_minutes\n")
	for i := 0; i < 10; i++ {
		d := float64(50 * (i + 1))
		w := 1 + 0.1*float64(i%3)
		tr := 1 + 0.2*float64(i%4)
		delay := 2 + 0.1*d + 5*w + 3*tr
		fmt.Fprintf(&b, "%g,%g,%g,%g\n", d, w, tr, delay)
	}
	path := filepath.Join(dir, "history.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		History: factory.ModuleConfig{Type: "csv", Conf: map[string]any{"path": writeHistory(t, dir)}},
		Journal: config.JournalConfig{Path: filepath.Join(dir, "journal.jsonl")},
		Render:  config.RenderConfig{OutputDir: filepath.Join(dir, "maps")},
		Routes: []config.RouteConfig{
			{ID: "R1", Start: "Chicago", End: "Detroit", DistanceKm: 450},
			{ID: "R2", Start: "A", End: "A", DistanceKm: 0},
		},
	}
	cfg.SetDefaults()
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestNewSeedsRoutes(t *testing.T) {
	svc, err := New(testConfig(t))
	require.NoError(t, err)
	defer svc.Close()

	routes := svc.Routes.List()
	require.Len(t, routes, 2)
	assert.Equal(t, "R1", routes[0].ID)
	assert.Equal(t, 450*time.Minute, routes[0].Baseline)
	assert.False(t, svc.Predictor.Trained())
}

func TestTrainFromHistoryAndPredict(t *testing.T) {
	cfg := testConfig(t)
	svc, err := New(cfg)
	require.NoError(t, err)

	rep, err := svc.TrainFromHistory(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, rep.Samples)
	assert.InDelta(t, 0.1, rep.Coefficients.Distance, 1e-6)

	p, err := svc.Predictor.PredictETA(context.Background(), "R1", 1, 1)
	require.NoError(t, err)
	assert.InDelta(t, 55, p.DelayMinutes, 1e-6)
	assert.Equal(t, p.Baseline+p.Delay, p.ETA)

	p, err = svc.Predictor.PredictETA(context.Background(), "R2", 1, 1)
	require.NoError(t, err)
	assert.Zero(t, p.Delay)
	recs, err := svc.QueryJournal(context.Background(), journal.Query{Outcome: "zero_distance"})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "R2", recs[0].RouteID)
	require.NoError(t, svc.Close())

	store, err := journal.Open("jsonl", cfg.Journal.Path)
	require.NoError(t, err)
	defer store.Close()
	recs, err = store.Query(context.Background(), journal.Query{})
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestTrainFromHistoryWithoutSource(t *testing.T) {
	cfg := testConfig(t)
	cfg.History = factory.ModuleConfig{}
	svc, err := New(cfg)
	require.NoError(t, err)
	defer svc.Close()

	_, err = svc.TrainFromHistory(context.Background())
	assert.ErrorIs(t, err, ErrNoHistory)
}

func TestNewRejectsBadSeedRoute(t *testing.T) {
	cfg := testConfig(t)
	cfg.Routes = append(cfg.Routes, config.RouteConfig{ID: "bad", DistanceKm: -3})
	_, err := New(cfg)
	require.Error(t, err)
}

func TestNewUnknownFitter(t *testing.T) {
	cfg := testConfig(t)
	cfg.Model.Fitter.Type = "forest"
	_, err := New(cfg)
	require.Error(t, err)
}

func TestVisualize(t *testing.T) {
	svc, err := New(testConfig(t))
	require.NoError(t, err)
	defer svc.Close()

	path, err := svc.Visualize("R1")
	require.NoError(t, err)
	assert.Equal(t, "route_R1.html", filepath.Base(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Chicago to Detroit")

	_, err = svc.Visualize("missing")
	assert.True(t, errors.Is(err, prediction.ErrRouteNotFound))
}

func TestQueryJournalDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Journal = config.JournalConfig{}
	svc, err := New(cfg)
	require.NoError(t, err)
	defer svc.Close()

	_, err = svc.QueryJournal(context.Background(), journal.Query{})
	assert.ErrorIs(t, err, ErrNoJournal)
}
