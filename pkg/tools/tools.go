package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

func NewHandler[T any](fn func(_ context.Context, params T) (*ToolCallResult, error)) ToolHandler {
	return func(ctx context.Context, toolCall ToolCall) (*ToolCallResult, error) {
		var params T
		if err := json.Unmarshal([]byte(normalizeArguments(toolCall.Function.Arguments)), &params); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidArguments, err)
		}

		return fn(ctx, params)
	}
}

// normalizeArguments maps the empty argument forms some models emit for
// parameterless tools onto "{}".
func normalizeArguments(arguments string) string {
	args := strings.TrimSpace(arguments)
	if args == "" || args == "null" {
		return "{}"
	}
	return args
}

func ResultSuccess(output string, data any) *ToolCallResult {
	return &ToolCallResult{
		Output: output,
		Data:   data,
	}
}
