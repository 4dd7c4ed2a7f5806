package config

import (
	"context"
	"log/slog"
	"strings"

	"github.com/dexora-ai/dexora/pkg/environment"
)

const (
	// EnvBackend forces a backend regardless of the config file.
	EnvBackend = "DEXORA_BACKEND"
	// EnvUseCerebras switches the hosted backend from Groq to Cerebras.
	EnvUseCerebras = "USE_CEREBRAS"
)

// ApplyEnv resolves the backend. DEXORA_BACKEND wins, then USE_CEREBRAS,
// then the config file, then Groq.
func (c *Config) ApplyEnv(ctx context.Context, env environment.Provider) {
	if forced, ok := environment.Lookup(ctx, env, EnvBackend); ok {
		c.Model.Backend = Backend(strings.ToLower(forced))
		slog.Debug("Backend forced from environment", "backend", c.Model.Backend)
		return
	}

	if environment.Truthy(ctx, env, EnvUseCerebras) {
		c.Model.Backend = BackendCerebras
		return
	}

	if c.Model.Backend == "" {
		c.Model.Backend = BackendGroq
	}
}
