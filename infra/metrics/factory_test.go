package metrics

import (
	"path/filepath"
	"testing"

	"github.com/kilianp07/routeeta/core/factory"
	"github.com/kilianp07/routeeta/core/journal"
	coremetrics "github.com/kilianp07/routeeta/core/metrics"
)

func TestJournalSinkFromConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "predictions.jsonl")
	s, err := coremetrics.NewMetricsSink([]factory.ModuleConfig{{
		Type: "journal",
		Conf: map[string]any{"backend": "jsonl", "path": path},
	}})
	if err != nil {
		t.Fatalf("create journal sink: %v", err)
	}
	js, ok := s.(*journal.Sink)
	if !ok {
		t.Fatalf("expected *journal.Sink, got %T", s)
	}
	if err := js.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestUnknownJournalBackend(t *testing.T) {
	_, err := coremetrics.NewMetricsSink([]factory.ModuleConfig{{
		Type: "journal",
		Conf: map[string]any{"backend": "parquet", "path": filepath.Join(t.TempDir(), "x")},
	}})
	if err == nil {
		t.Fatal("expected error for unknown backend")
	}
}
