package metrics

import (
	"errors"
	"testing"

	"github.com/kilianp07/routeeta/core/factory"
)

func TestNewMetricsSinkClosesBuiltSinksOnError(t *testing.T) {
	first := &recordSink{}
	if err := RegisterMetricsSink("test-closer", func(map[string]any) (MetricsSink, error) {
		return first, nil
	}); err != nil {
		t.Fatalf("register closer: %v", err)
	}
	if err := RegisterMetricsSink("test-broken", func(map[string]any) (MetricsSink, error) {
		return nil, errors.New("boom")
	}); err != nil {
		t.Fatalf("register broken: %v", err)
	}

	_, err := NewMetricsSink([]factory.ModuleConfig{{Type: "test-closer"}, {Type: "test-broken"}})
	if err == nil {
		t.Fatal("expected error")
	}
	if !first.closed {
		t.Fatal("expected the already built sink to be closed")
	}
}
