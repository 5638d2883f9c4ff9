// Package config loads the process configuration exactly once at start.
// Precedence, lowest first: built-in defaults, YAML file, .env file,
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the variable that overrides the config file location.
const EnvConfigPath = "FATHOM_MCP_CONFIG"

// Config is immutable after Load returns.
type Config struct {
	Fathom  FathomConfig  `yaml:"fathom" envconfig:"FATHOM"`
	MCP     MCPConfig     `yaml:"mcp" envconfig:"FATHOM_MCP"`
	Log     LogConfig     `yaml:"log" envconfig:"FATHOM_MCP_LOG"`
	Metrics MetricsConfig `yaml:"metrics" envconfig:"FATHOM_MCP_METRICS"`
}

// Nested fields use split_words, not envconfig tags, so only the prefixed
// variable name is ever read.

type FathomConfig struct {
	BaseURL string        `yaml:"base_url" split_words:"true"`
	APIKey  string        `yaml:"api_key" split_words:"true"`
	Timeout time.Duration `yaml:"timeout" split_words:"true"`
}

type MCPConfig struct {
	ServerName string `yaml:"server_name" split_words:"true"`
}

type LogConfig struct {
	Level  string `yaml:"level" split_words:"true"`
	Format string `yaml:"format" split_words:"true"`
}

type MetricsConfig struct {
	// Addr enables the health and metrics listener when non-empty.
	Addr string `yaml:"addr" split_words:"true"`
}

// ErrMissingAPIKey is returned by Validate when no credential is configured.
var ErrMissingAPIKey = errors.New("FATHOM_API_KEY environment variable is required; get an API key from Fathom settings")

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Fathom: FathomConfig{
			BaseURL: "https://api.fathom.ai/external/v1",
			Timeout: 30 * time.Second,
		},
		MCP: MCPConfig{ServerName: "fathom-video-mcp"},
		Log: LogConfig{Level: "info", Format: "json"},
	}
}

// DefaultPath is ~/.fathom-mcp/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".fathom-mcp", "config.yaml")
}

// Load builds the configuration. An empty path means FATHOM_MCP_CONFIG or
// DefaultPath. A missing file is not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		path = DefaultPath()
	}
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	// .env never overrides variables already set in the environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}

	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("reading environment: %w", err)
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// Validate reports settings the server cannot start without.
func (c Config) Validate() error {
	if c.Fathom.APIKey == "" {
		return ErrMissingAPIKey
	}
	if c.Fathom.Timeout <= 0 {
		return fmt.Errorf("fathom.timeout must be positive, got %s", c.Fathom.Timeout)
	}
	if c.Fathom.BaseURL == "" {
		return errors.New("fathom.base_url must not be empty")
	}
	return nil
}
