// Package config loads the engine's runtime configuration: a typed
// struct with sane defaults, optionally overridden by a YAML file and
// then by environment variables, the way
// toffguy77-arbitr/internal/config/config.go layers its own settings.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the full set of knobs the coordinator, workers, and CLI
// need. Engine holds the pieces the search itself cares about; Logging,
// Metrics, and Network are purely ambient.
type Config struct {
	Engine struct {
		Vertices int    `yaml:"vertices"` // n, must match the graph input
		Workers  int    `yaml:"workers"`  // P-1
		Input    string `yaml:"input"`    // path to a DIMACS-style graph file
	} `yaml:"engine"`
	Logging struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"logging"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Addr    string `yaml:"addr"`
	} `yaml:"metrics"`
	Network struct {
		// Peers lists every process's "host:port" in rank order for
		// tcpnet mode; Peers[0] is the coordinator. Unused by local
		// (chanrpc) simulation.
		Peers []string `yaml:"peers"`
		Rank  int      `yaml:"rank"`
	} `yaml:"network"`
}

func defaultConfig() Config {
	var c Config
	c.Engine.Workers = 3
	c.Logging.Level = "info"
	c.Logging.Pretty = false
	c.Metrics.Enabled = false
	c.Metrics.Addr = ":9400"
	return c
}

// Load builds a Config from defaults, then path (if non-empty, a YAML
// file), then environment variables, in that priority order.
func Load(path string) (Config, error) {
	c := defaultConfig()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
		}
	}
	applyEnv(&c)
	return c, nil
}

func applyEnv(c *Config) {
	if v := os.Getenv("GRAPHCOLORING_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("GRAPHCOLORING_METRICS_ADDR"); v != "" {
		c.Metrics.Enabled = true
		c.Metrics.Addr = v
	}
	if v := os.Getenv("GRAPHCOLORING_WORKERS"); v != "" {
		var n int
		if _, err := fmt.Sscan(v, &n); err == nil && n > 0 {
			c.Engine.Workers = n
		}
	}
	if v := os.Getenv("GRAPHCOLORING_RANK"); v != "" {
		var r int
		if _, err := fmt.Sscan(v, &r); err == nil {
			c.Network.Rank = r
		}
	}
}
