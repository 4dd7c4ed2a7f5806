package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dexora-ai/dexora/pkg/environment"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Zero(t, cfg.Model.MaxHistory)
	require.NoError(t, cfg.Validate())
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
version: v1
model:
  backend: cerebras
  cerebras:
    model: llama-3.3-70b
    temperature: 0.2
server:
  rate_limit: 2
guard:
  enabled: true
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BackendCerebras, cfg.Model.Backend)
	assert.Equal(t, "llama-3.3-70b", cfg.Model.Cerebras.Model)
	assert.Equal(t, "https://api.cerebras.ai/v1", cfg.Model.Cerebras.BaseURL)
	require.NotNil(t, cfg.Model.Cerebras.Temperature)
	assert.InDelta(t, 0.2, *cfg.Model.Cerebras.Temperature, 1e-9)
	assert.InDelta(t, 2.0, cfg.Server.RateLimit, 1e-9)
	assert.Equal(t, 10, cfg.Server.RateBurst)
	assert.True(t, cfg.Guard.Enabled)
	assert.InDelta(t, 0.8, cfg.Guard.Threshold, 1e-9)
}

func TestLoad_RejectsUnknownVersion(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: v9\n"), 0o644))

	_, err := Load(path)
	require.ErrorContains(t, err, "unsupported config version")
}

func TestSaveRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Version = ""
	cfg.Model.Backend = BackendOffline
	cfg.Server.Listen = "unix:///tmp/dexora.sock"
	require.NoError(t, cfg.Save(path))
	assert.Equal(t, CurrentVersion, cfg.Version)

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestApplyEnv(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		file Backend
		env  map[string]string
		want Backend
	}{
		{"default is groq", "", nil, BackendGroq},
		{"file wins without env", BackendOffline, nil, BackendOffline},
		{"use cerebras 1", "", map[string]string{"USE_CEREBRAS": "1"}, BackendCerebras},
		{"use cerebras true", BackendGroq, map[string]string{"USE_CEREBRAS": "TRUE"}, BackendCerebras},
		{"use cerebras false", "", map[string]string{"USE_CEREBRAS": "false"}, BackendGroq},
		{"forced backend", "", map[string]string{"DEXORA_BACKEND": "Offline", "USE_CEREBRAS": "1"}, BackendOffline},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			cfg.Model.Backend = tt.file
			cfg.ApplyEnv(t.Context(), environment.NewKeyValueProvider(tt.env))
			assert.Equal(t, tt.want, cfg.Model.Backend)
		})
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"unknown backend", func(c *Config) { c.Model.Backend = "openrouter" }, "unknown backend"},
		{"relative base url", func(c *Config) { c.Model.Groq.BaseURL = "api.groq.com" }, "absolute URL"},
		{"temperature", func(c *Config) { v := 3.0; c.Model.Groq.Temperature = &v }, "temperature"},
		{"max history", func(c *Config) { c.Model.MaxHistory = -1 }, "max_history"},
		{"rate limit", func(c *Config) { c.Server.RateLimit = 0 }, "rate_limit"},
		{"rate burst", func(c *Config) { c.Server.RateBurst = -1 }, "rate_burst"},
		{"session ttl", func(c *Config) { c.Server.SessionTTL = "soon" }, "session_ttl"},
		{"threshold", func(c *Config) { c.Guard.Threshold = 1.5 }, "threshold"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			tt.modify(cfg)
			require.ErrorContains(t, cfg.Validate(), tt.wantErr)
		})
	}
}

func TestSessionTTL(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.Equal(t, time.Hour, cfg.SessionTTL())

	cfg.Server.SessionTTL = ""
	assert.Zero(t, cfg.SessionTTL())
}
