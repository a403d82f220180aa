// Package config loads the pathstack configuration file used by the CLI
// and the bridge. The library itself takes explicit values; this file
// format exists so tooling can share one set of separators.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/pathstack-dev/pathstack/pkg/route"
)

// Configuration file names probed by Find, in order.
var fileNames = []string{"pathstack.json", "pathstack.yaml", "pathstack.yml"}

const (
	// DefaultHost is the default bridge host.
	DefaultHost = "localhost"

	// DefaultPort is the default bridge port.
	DefaultPort = 8990
)

// BridgeConfig configures the bridge server.
type BridgeConfig struct {
	Host string `json:"host,omitempty" yaml:"host,omitempty"`
	Port int    `json:"port,omitempty" yaml:"port,omitempty"`
}

// Addr returns the listen address.
func (b BridgeConfig) Addr() string {
	return fmt.Sprintf("%s:%d", b.Host, b.Port)
}

// Config is the complete file configuration.
type Config struct {
	// BlockSeparator overrides the block separator (default "~").
	BlockSeparator string `json:"blockSeparator,omitempty" yaml:"blockSeparator,omitempty"`

	// ParamSeparator overrides the parameter separator (default "=").
	ParamSeparator string `json:"paramSeparator,omitempty" yaml:"paramSeparator,omitempty"`

	// Bridge configures the bridge server.
	Bridge BridgeConfig `json:"bridge,omitempty" yaml:"bridge,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		BlockSeparator: route.DefaultBlockSeparator,
		ParamSeparator: route.DefaultParamSeparator,
		Bridge: BridgeConfig{
			Host: DefaultHost,
			Port: DefaultPort,
		},
	}
}

// Load reads a configuration file, JSON or YAML by extension, and fills
// unset fields with defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Find looks for a configuration file in dir and loads it, falling back
// to defaults when none exists.
func Find(dir string) (*Config, error) {
	for _, name := range fileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return Default(), nil
}

// RouteConfig validates the separators into a route.Config.
func (c *Config) RouteConfig() (route.Config, error) {
	return route.NewConfig(
		route.WithBlockSeparator(c.BlockSeparator),
		route.WithParamSeparator(c.ParamSeparator),
	)
}

// applyDefaults fills fields an explicit file left empty.
func (c *Config) applyDefaults() {
	if c.BlockSeparator == "" {
		c.BlockSeparator = route.DefaultBlockSeparator
	}
	if c.ParamSeparator == "" {
		c.ParamSeparator = route.DefaultParamSeparator
	}
	if c.Bridge.Host == "" {
		c.Bridge.Host = DefaultHost
	}
	if c.Bridge.Port == 0 {
		c.Bridge.Port = DefaultPort
	}
}
