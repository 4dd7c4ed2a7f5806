package openai

import (
	"io"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/packages/ssestream"

	"github.com/dexora-ai/dexora/pkg/chat"
	"github.com/dexora-ai/dexora/pkg/tools"
)

// streamAdapter turns the SDK's SSE stream into chat.MessageStream chunks.
type streamAdapter struct {
	stream *ssestream.Stream[openai.ChatCompletionChunk]
	// Only the first delta of a tool call carries its ID.
	toolCallIDs map[int64]string
}

func newStreamAdapter(stream *ssestream.Stream[openai.ChatCompletionChunk]) *streamAdapter {
	return &streamAdapter{
		stream:      stream,
		toolCallIDs: make(map[int64]string),
	}
}

func (a *streamAdapter) Recv() (chat.MessageStreamResponse, error) {
	if !a.stream.Next() {
		if err := a.stream.Err(); err != nil {
			return chat.MessageStreamResponse{}, err
		}
		return chat.MessageStreamResponse{}, io.EOF
	}

	chunk := a.stream.Current()
	response := chat.MessageStreamResponse{
		ID:      chunk.ID,
		Model:   chunk.Model,
		Choices: make([]chat.MessageStreamChoice, len(chunk.Choices)),
	}
	if chunk.Usage.PromptTokens > 0 || chunk.Usage.CompletionTokens > 0 {
		response.Usage = &chat.Usage{
			InputTokens:  chunk.Usage.PromptTokens,
			OutputTokens: chunk.Usage.CompletionTokens,
		}
	}

	for i, choice := range chunk.Choices {
		response.Choices[i] = chat.MessageStreamChoice{
			Index:        int(choice.Index),
			FinishReason: chat.FinishReason(choice.FinishReason),
			Delta: chat.MessageDelta{
				Role:    string(choice.Delta.Role),
				Content: choice.Delta.Content,
			},
		}

		for _, call := range choice.Delta.ToolCalls {
			id := call.ID
			if id != "" {
				a.toolCallIDs[call.Index] = id
			} else {
				id = a.toolCallIDs[call.Index]
			}

			index := int(call.Index)
			response.Choices[i].Delta.ToolCalls = append(response.Choices[i].Delta.ToolCalls, tools.ToolCall{
				Index: &index,
				ID:    id,
				Type:  tools.ToolTypeFunction,
				Function: tools.FunctionCall{
					Name:      call.Function.Name,
					Arguments: call.Function.Arguments,
				},
			})
		}
	}

	return response, nil
}

func (a *streamAdapter) Close() {
	_ = a.stream.Close()
}
