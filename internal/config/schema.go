// Package config defines the configuration schema for shipping-agent.
//
// The configuration is a value object built once at startup from a JSON file
// (camelCase keys) and environment overrides, then injected into
// constructors. Business logic never reads the environment directly.
package config

import (
	"github.com/abureyko/shipping-agent/internal/config/provider"
	"github.com/abureyko/shipping-agent/internal/config/server"
	"github.com/abureyko/shipping-agent/internal/config/tracking"
)

type Config struct {
	Tracking tracking.TrackingConfig `json:"tracking"`
	LLM      provider.LLMConfig      `json:"llm"`
	Server   server.ServerConfig     `json:"server"`
}

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() Config {
	return Config{
		Tracking: tracking.DefaultTrackingConfig(),
		LLM:      provider.DefaultLLMConfig(),
		Server:   server.DefaultServerConfig(),
	}
}

// DemoMode reports whether tracking runs on synthetic data.
func (c *Config) DemoMode() bool { return !c.Tracking.Live() }
