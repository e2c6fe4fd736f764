package config

import "fmt"

// JournalConfig enables the prediction audit trail. An empty Path disables it.
type JournalConfig struct {
	Backend string `json:"backend"`
	Path    string `json:"path"`
}

func (c *JournalConfig) SetDefaults() {
	if c.Path != "" && c.Backend == "" {
		c.Backend = "jsonl"
	}
}

func (c JournalConfig) Validate() error {
	switch c.Backend {
	case "", "jsonl", "sqlite":
		return nil
	default:
		return fmt.Errorf("unknown backend %s", c.Backend)
	}
}
