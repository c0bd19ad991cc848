// Package config loads bridge configuration from TOML files with
// environment overrides. The resulting Config is built once at process start
// and passed into constructors; nothing reads environment state after load.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/wamcp/whatsapp-mcp/internal/common"
)

// ServerConfig holds MCP server settings.
type ServerConfig struct {
	Name string `toml:"name"`
	Port string `toml:"port"`
}

// BridgeConfig holds the backend REST API settings: where the WhatsApp
// bridge lives and how to authenticate against it.
type BridgeConfig struct {
	BaseURL string `toml:"base_url"`
	APIKey  string `toml:"api_key"`
	Timeout string `toml:"timeout"`
}

// GetTimeout parses and returns the HTTP client timeout. The bound is
// always finite.
func (c *BridgeConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return 60 * time.Second
	}
	return d
}

// Config holds all whatsapp-mcp configuration.
type Config struct {
	Server  ServerConfig         `toml:"server"`
	Bridge  BridgeConfig         `toml:"bridge"`
	Logging common.LoggingConfig `toml:"logging"`
}

// envOverrides is the environment surface, processed after the file merge so
// environment always wins. BRIDGE_API_URL and WHATSAPP_API_KEY match the
// names the backend documents.
type envOverrides struct {
	BridgeAPIURL string `envconfig:"BRIDGE_API_URL"`
	APIKey       string `envconfig:"WHATSAPP_API_KEY"`
	Port         string `envconfig:"WHATSAPP_MCP_PORT"`
	LogLevel     string `envconfig:"WHATSAPP_MCP_LOG_LEVEL"`
	Timeout      string `envconfig:"WHATSAPP_MCP_HTTP_TIMEOUT"`
}

// NewDefaultConfig returns a Config with sensible defaults.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Name: "WhatsApp-MCP",
			Port: "8082",
		},
		Bridge: BridgeConfig{
			BaseURL: "http://localhost:8080/api",
			Timeout: "60s",
		},
		Logging: common.LoggingConfig{
			Level:      "info",
			Outputs:    []string{"console", "file"},
			FilePath:   "logs/whatsapp-mcp.log",
			MaxSizeMB:  100,
			MaxBackups: 3,
		},
	}
}

// Load loads configuration from a TOML file (a missing file falls back to
// defaults) and applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := NewDefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
			// File not found — use defaults
		} else if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	var env envOverrides
	if err := envconfig.Process("", &env); err != nil {
		return nil, fmt.Errorf("failed to process environment overrides: %w", err)
	}
	if env.BridgeAPIURL != "" {
		cfg.Bridge.BaseURL = env.BridgeAPIURL
	}
	if env.APIKey != "" {
		cfg.Bridge.APIKey = env.APIKey
	}
	if env.Port != "" {
		cfg.Server.Port = env.Port
	}
	if env.LogLevel != "" {
		cfg.Logging.Level = env.LogLevel
	}
	if env.Timeout != "" {
		cfg.Bridge.Timeout = env.Timeout
	}

	return cfg, nil
}
