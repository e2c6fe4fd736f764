package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/routeeta/core/factory"
	"github.com/kilianp07/routeeta/core/journal"
	coremetrics "github.com/kilianp07/routeeta/core/metrics"
)

// init registers built-in metrics sinks.
func init() {
	_ = coremetrics.RegisterMetricsSink("nop", func(map[string]any) (coremetrics.MetricsSink, error) {
		return coremetrics.NopSink{}, nil
	})

	_ = coremetrics.RegisterMetricsSink("prometheus", func(map[string]any) (coremetrics.MetricsSink, error) {
		return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
	})

	_ = coremetrics.RegisterMetricsSink("influx", func(conf map[string]any) (coremetrics.MetricsSink, error) {
		var c InfluxConfig
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewInfluxSinkWithFallback(c), nil
	})

	_ = coremetrics.RegisterMetricsSink("journal", func(conf map[string]any) (coremetrics.MetricsSink, error) {
		c := struct {
			Backend string `json:"backend"`
			Path    string `json:"path"`
		}{Backend: "jsonl", Path: "predictions.jsonl"}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		store, err := journal.Open(c.Backend, c.Path)
		if err != nil {
			return nil, err
		}
		return journal.NewSink(store), nil
	})
}
