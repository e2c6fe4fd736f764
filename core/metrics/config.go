package metrics

import "github.com/kilianp07/routeeta/core/factory"

// Config defines settings for metrics sinks.
type Config struct {
	Sinks []factory.ModuleConfig `json:"sinks"`
	// Addr is the listen address of the Prometheus endpoint. Empty disables it.
	Addr string `json:"addr"`
}
