// Package openai talks to OpenAI compatible chat completion endpoints. Both
// hosted backends, Groq and Cerebras, are reached through it.
package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/dexora-ai/dexora/pkg/chat"
	"github.com/dexora-ai/dexora/pkg/config"
	"github.com/dexora-ai/dexora/pkg/environment"
	"github.com/dexora-ai/dexora/pkg/httpclient"
	"github.com/dexora-ai/dexora/pkg/tools"
)

type Client struct {
	backend config.Backend
	cfg     config.BackendConfig
	client  openai.Client
}

// NewClient resolves the backend's API key from env. A missing key is
// reported as an *environment.RequiredEnvError.
func NewClient(ctx context.Context, backend config.Backend, cfg config.BackendConfig, env environment.Provider, opts ...option.RequestOption) (*Client, error) {
	if cfg.BaseURL == "" || cfg.Model == "" {
		return nil, errors.New("backend configuration needs a base_url and a model")
	}

	apiKey, ok := environment.Lookup(ctx, env, cfg.APIKeyEnv)
	if !ok {
		return nil, &environment.RequiredEnvError{Missing: []string{cfg.APIKeyEnv}}
	}

	clientOptions := []option.RequestOption{
		option.WithBaseURL(cfg.BaseURL),
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(httpclient.NewHTTPClient(
			httpclient.WithBackend(string(backend)),
			httpclient.WithModel(cfg.Model),
		)),
		option.WithMiddleware(errorBodyMiddleware()),
		// A turn is a single attempt.
		option.WithMaxRetries(0),
	}
	clientOptions = append(clientOptions, opts...)

	slog.Debug("Model client created", "backend", backend, "model", cfg.Model, "base_url", cfg.BaseURL)

	return &Client{
		backend: backend,
		cfg:     cfg,
		client:  openai.NewClient(clientOptions...),
	}, nil
}

func (c *Client) ID() string {
	return string(c.backend) + "/" + c.cfg.Model
}

func (c *Client) CreateChatCompletionStream(ctx context.Context, messages []chat.Message, requestTools []tools.Tool) (chat.MessageStream, error) {
	params := openai.ChatCompletionNewParams{
		Model:    c.cfg.Model,
		Messages: convertMessages(messages),
		StreamOptions: openai.ChatCompletionStreamOptionsParam{
			IncludeUsage: openai.Bool(true),
		},
	}
	if c.cfg.Temperature != nil {
		params.Temperature = openai.Float(*c.cfg.Temperature)
	}

	if len(requestTools) > 0 {
		toolParams, err := convertTools(requestTools)
		if err != nil {
			return nil, err
		}
		params.Tools = toolParams
		params.ParallelToolCalls = openai.Bool(false)
	}

	slog.Debug("Creating chat completion stream", "model", c.ID(), "messages", len(messages), "tools", len(requestTools))

	stream := c.client.Chat.Completions.NewStreaming(ctx, params)
	if err := stream.Err(); err != nil {
		_ = stream.Close()
		return nil, fmt.Errorf("%s: %w", c.ID(), err)
	}

	return newStreamAdapter(stream), nil
}
