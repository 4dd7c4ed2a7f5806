package root

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel"

	"github.com/dexora-ai/dexora/pkg/config"
	"github.com/dexora-ai/dexora/pkg/environment"
	"github.com/dexora-ai/dexora/pkg/guard"
	"github.com/dexora-ai/dexora/pkg/model/provider"
	"github.com/dexora-ai/dexora/pkg/runtime"
	"github.com/dexora-ai/dexora/pkg/tools/builtin"
)

// newRuntime wires the model backend, the enterprise tools and, when
// enabled, the query guard.
func newRuntime(ctx context.Context, cfg *config.Config, env environment.Provider, enableOtel bool) (*runtime.LocalRuntime, error) {
	p, err := provider.New(ctx, cfg, env)
	if err != nil {
		return nil, err
	}

	registry, err := builtin.NewRegistry()
	if err != nil {
		if c, ok := p.(io.Closer); ok {
			_ = c.Close()
		}
		return nil, err
	}

	opts := []runtime.Opt{
		runtime.WithSystemPrompt(builtin.SystemPrompt),
		runtime.WithMaxHistory(cfg.Model.MaxHistory),
	}
	if cfg.Guard.Enabled {
		opts = append(opts, runtime.WithGuard(guard.New(cfg.Guard.Threshold)))
	}
	if enableOtel {
		opts = append(opts, runtime.WithTracer(otel.Tracer(AppName)))
	}

	slog.Debug("Runtime ready", "model", p.ID(), "tools", registry.Len(), "guard", cfg.Guard.Enabled)
	return runtime.New(p, registry, opts...), nil
}

func closeRuntime(rt *runtime.LocalRuntime) {
	if err := rt.Close(); err != nil {
		slog.Warn("Failed to close the model backend", "error", err)
	}
}
