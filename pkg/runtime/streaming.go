package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dexora-ai/dexora/pkg/tools"
)

var (
	errEmptyCompletion   = errors.New("model returned an empty completion")
	errMultipleToolCalls = errors.New("model requested more than one tool")
)

type reply struct {
	text      string
	toolCalls []tools.ToolCall
}

// complete sends the conversation to the model and drains the stream. Text
// increments are forwarded as they arrive; tool call deltas are merged.
func (t *turn) complete(ctx context.Context) (reply, error) {
	r := t.runtime
	messages := t.sess.Snapshot().ChatMessages(r.systemPrompt, r.maxHistory)

	stream, err := r.provider.CreateChatCompletionStream(ctx, messages, r.registry.Tools())
	if err != nil {
		return reply{}, fmt.Errorf("creating chat completion stream: %w", err)
	}
	defer stream.Close()

	var (
		text      strings.Builder
		toolCalls []tools.ToolCall
	)
	for {
		response, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return reply{}, fmt.Errorf("receiving from stream: %w", err)
		}

		if response.Usage != nil {
			t.emit(TokenUsage(response.Usage.InputTokens, response.Usage.OutputTokens))
		}

		for _, choice := range response.Choices {
			if choice.Delta.Content != "" {
				text.WriteString(choice.Delta.Content)
				t.emit(AgentChoice(choice.Delta.Content))
			}
			for _, delta := range choice.Delta.ToolCalls {
				toolCalls = mergeToolCall(toolCalls, delta)
			}
		}
	}

	return reply{text: text.String(), toolCalls: toolCalls}, nil
}

// mergeToolCall folds a streamed delta into the calls seen so far. Deltas
// are matched by index, then by ID. A delta with neither continues the last
// call.
func mergeToolCall(calls []tools.ToolCall, delta tools.ToolCall) []tools.ToolCall {
	pos := -1
	switch {
	case delta.Index != nil:
		for i := range calls {
			if calls[i].Index != nil && *calls[i].Index == *delta.Index {
				pos = i
				break
			}
		}
	case delta.ID != "":
		for i := range calls {
			if calls[i].ID == delta.ID {
				pos = i
				break
			}
		}
	default:
		pos = len(calls) - 1
	}

	if pos < 0 {
		calls = append(calls, tools.ToolCall{
			Index: delta.Index,
			Type:  tools.ToolTypeFunction,
		})
		pos = len(calls) - 1
	}

	call := &calls[pos]
	if call.ID == "" {
		call.ID = delta.ID
	}
	if delta.Function.Name != "" {
		call.Function.Name = delta.Function.Name
	}
	call.Function.Arguments += delta.Function.Arguments
	return calls
}
