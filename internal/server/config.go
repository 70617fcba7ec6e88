package server

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the dashboard configuration, loadable from an HCL file.
type Config struct {
	Server Settings `hcl:"server,block"`
}

// Settings contains server-level configuration.
type Settings struct {
	Address     string `hcl:"address,optional"`
	Port        int    `hcl:"port,optional"`
	DataFile    string `hcl:"data_file,optional"`
	RecentHands int    `hcl:"recent_hands,optional"`
	LogLevel    string `hcl:"log_level,optional"`
}

// DefaultConfig returns the default dashboard configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: Settings{
			Address:     "localhost",
			Port:        8080,
			DataFile:    "poker_hands.csv",
			RecentHands: 10,
			LogLevel:    "info",
		},
	}
}

// LoadConfig loads configuration from an HCL file, falling back to
// defaults when the file does not exist.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing values
	defaults := DefaultConfig().Server
	if config.Server.Address == "" {
		config.Server.Address = defaults.Address
	}
	if config.Server.Port == 0 {
		config.Server.Port = defaults.Port
	}
	if config.Server.DataFile == "" {
		config.Server.DataFile = defaults.DataFile
	}
	if config.Server.RecentHands == 0 {
		config.Server.RecentHands = defaults.RecentHands
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = defaults.LogLevel
	}

	return &config, nil
}

// Validate validates the dashboard configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Server.DataFile == "" {
		return fmt.Errorf("data_file must not be empty")
	}
	if c.Server.RecentHands < 1 {
		return fmt.Errorf("recent_hands must be positive")
	}
	switch c.Server.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level: %s", c.Server.LogLevel)
	}
	return nil
}

// ListenAddress returns the full address the server binds to.
func (c *Config) ListenAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}
