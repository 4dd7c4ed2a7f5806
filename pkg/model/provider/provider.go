package provider

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dexora-ai/dexora/pkg/chat"
	"github.com/dexora-ai/dexora/pkg/config"
	"github.com/dexora-ai/dexora/pkg/environment"
	"github.com/dexora-ai/dexora/pkg/model/provider/openai"
	"github.com/dexora-ai/dexora/pkg/model/provider/rulebased"
	"github.com/dexora-ai/dexora/pkg/tools"
)

// Provider defines the interface for model backends
type Provider interface {
	// ID identifies the backend and model, e.g. "groq/gemma2-9b-it".
	ID() string
	// CreateChatCompletionStream creates a streaming chat completion request
	// It returns a stream that can be iterated over to get completion chunks
	CreateChatCompletionStream(
		ctx context.Context,
		messages []chat.Message,
		tools []tools.Tool,
	) (chat.MessageStream, error)
}

// New creates the backend selected by cfg. Call cfg.ApplyEnv first so that
// USE_CEREBRAS and DEXORA_BACKEND are honoured.
func New(ctx context.Context, cfg *config.Config, env environment.Provider) (Provider, error) {
	backend := cfg.Model.Backend
	slog.Debug("Creating model provider", "backend", backend)

	switch backend {
	case config.BackendOffline:
		return rulebased.NewClient()

	case config.BackendGroq, config.BackendCerebras:
		backendCfg, _ := cfg.BackendConfig(backend)
		return openai.NewClient(ctx, backend, backendCfg, env)

	default:
		slog.Error("Unknown model backend", "backend", backend)
		return nil, fmt.Errorf("unknown model backend: %q", backend)
	}
}
