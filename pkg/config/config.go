// Package config provides the dexora configuration file. It is stored in
// ~/.config/dexora/config.yaml and selects the model backend, the HTTP
// server limits and the query guard.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/natefinch/atomic"

	"github.com/dexora-ai/dexora/pkg/paths"
)

// CurrentVersion is the current version of the config format
const CurrentVersion = "v1"

type Backend string

const (
	BackendGroq     Backend = "groq"
	BackendCerebras Backend = "cerebras"
	BackendOffline  Backend = "offline"
)

func Backends() []Backend {
	return []Backend{BackendGroq, BackendCerebras, BackendOffline}
}

// BackendConfig describes an OpenAI compatible completion endpoint.
type BackendConfig struct {
	BaseURL   string `yaml:"base_url,omitempty"`
	Model     string `yaml:"model,omitempty"`
	APIKeyEnv string `yaml:"api_key_env,omitempty"`
	// Temperature is left to the backend when unset.
	Temperature *float64 `yaml:"temperature,omitempty"`
}

type ModelConfig struct {
	// Backend is picked from the environment when empty.
	Backend  Backend       `yaml:"backend,omitempty"`
	Groq     BackendConfig `yaml:"groq,omitempty"`
	Cerebras BackendConfig `yaml:"cerebras,omitempty"`
	// MaxHistory caps how many past messages are sent with each request.
	// Zero sends the whole conversation.
	MaxHistory int `yaml:"max_history,omitempty"`
}

type ServerConfig struct {
	Listen string `yaml:"listen,omitempty"`
	// RateLimit is the sustained number of requests per second per client.
	RateLimit float64 `yaml:"rate_limit,omitempty"`
	RateBurst int     `yaml:"rate_burst,omitempty"`
	// SessionTTL is how long an idle conversation is kept, e.g. "30m".
	SessionTTL string `yaml:"session_ttl,omitempty"`
}

type GuardConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Threshold float64 `yaml:"threshold,omitempty"`
}

type Config struct {
	Version string       `yaml:"version,omitempty"`
	Model   ModelConfig  `yaml:"model"`
	Server  ServerConfig `yaml:"server"`
	Guard   GuardConfig  `yaml:"guard"`
}

func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Model: ModelConfig{
			Groq: BackendConfig{
				BaseURL:   "https://api.groq.com/openai/v1",
				Model:     "gemma2-9b-it",
				APIKeyEnv: "GROQ_API_KEY",
			},
			Cerebras: BackendConfig{
				BaseURL:   "https://api.cerebras.ai/v1",
				Model:     "llama3.1-8b",
				APIKeyEnv: "CEREBRAS_API_KEY",
			},
		},
		Server: ServerConfig{
			Listen:     "127.0.0.1:8080",
			RateLimit:  5,
			RateBurst:  10,
			SessionTTL: "1h",
		},
		Guard: GuardConfig{
			Enabled:   false,
			Threshold: 0.8,
		},
	}
}

// Path returns the path to the config file
func Path() string {
	return paths.ConfigFile()
}

// Load reads the config file at path, or the default location when path is
// empty. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = Path()
	}
	return readConfig(path)
}

func readConfig(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if cfg.Version == "" {
		cfg.Version = CurrentVersion
	}
	if cfg.Version != CurrentVersion {
		return nil, fmt.Errorf("unsupported config version %q in %s", cfg.Version, path)
	}

	return cfg, nil
}

// Save writes the configuration to path, or to the default location when
// path is empty.
func (c *Config) Save(path string) error {
	if path == "" {
		path = Path()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	c.Version = CurrentVersion

	data, err := c.Marshal()
	if err != nil {
		return err
	}
	return atomic.WriteFile(path, bytes.NewReader(data))
}

func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// BackendConfig returns the endpoint settings of a hosted backend.
func (c *Config) BackendConfig(b Backend) (BackendConfig, bool) {
	switch b {
	case BackendGroq:
		return c.Model.Groq, true
	case BackendCerebras:
		return c.Model.Cerebras, true
	default:
		return BackendConfig{}, false
	}
}

// SessionTTL parses Server.SessionTTL. Validate has already rejected bad
// values, so errors collapse to zero (no expiry).
func (c *Config) SessionTTL() time.Duration {
	d, _ := time.ParseDuration(c.Server.SessionTTL)
	return d
}
