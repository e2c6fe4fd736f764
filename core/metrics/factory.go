package metrics

import (
	"fmt"

	"github.com/kilianp07/routeeta/core/factory"
)

var sinkRegistry = factory.NewRegistry[MetricsSink]()

// RegisterMetricsSink adds a metrics sink factory identified by name.
func RegisterMetricsSink(name string, f factory.Factory[MetricsSink]) error {
	return sinkRegistry.Register(name, f)
}

// NewMetricsSink builds one sink per config. No config yields a NopSink and
// several yield a MultiSink. If a sink fails to build, the ones already built
// are closed before the error is returned.
func NewMetricsSink(cfgs []factory.ModuleConfig) (MetricsSink, error) {
	switch len(cfgs) {
	case 0:
		return NopSink{}, nil
	case 1:
		return sinkRegistry.Create(cfgs[0])
	}
	built := NewMultiSink()
	for i, c := range cfgs {
		s, err := sinkRegistry.Create(c)
		if err != nil {
			_ = built.Close()
			return nil, fmt.Errorf("sink %d (%s): %w", i, c.Type, err)
		}
		built.Sinks = append(built.Sinks, s)
	}
	return built, nil
}
