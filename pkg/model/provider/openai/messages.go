package openai

import (
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/shared"

	"github.com/dexora-ai/dexora/pkg/chat"
	"github.com/dexora-ai/dexora/pkg/tools"
)

func convertMessages(messages []chat.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for i := range messages {
		msg := &messages[i]

		switch msg.Role {
		case chat.MessageRoleSystem:
			out = append(out, openai.SystemMessage(msg.Content))

		case chat.MessageRoleUser:
			out = append(out, openai.UserMessage(msg.Content))

		case chat.MessageRoleAssistant:
			// Both backends reject assistant turns with neither text nor calls.
			if len(msg.ToolCalls) == 0 && strings.TrimSpace(msg.Content) == "" {
				continue
			}

			var assistant openai.ChatCompletionAssistantMessageParam
			if msg.Content != "" {
				assistant.Content.OfString = openai.String(msg.Content)
			}
			for _, call := range msg.ToolCalls {
				assistant.ToolCalls = append(assistant.ToolCalls, openai.ChatCompletionMessageToolCallUnionParam{
					OfFunction: &openai.ChatCompletionMessageFunctionToolCallParam{
						ID: call.ID,
						Function: openai.ChatCompletionMessageFunctionToolCallFunctionParam{
							Name:      call.Function.Name,
							Arguments: call.Function.Arguments,
						},
					},
				})
			}
			out = append(out, openai.ChatCompletionMessageParamUnion{OfAssistant: &assistant})

		case chat.MessageRoleTool:
			out = append(out, openai.ToolMessage(msg.Content, msg.ToolCallID))
		}
	}
	return out
}

func convertTools(requestTools []tools.Tool) ([]openai.ChatCompletionToolUnionParam, error) {
	out := make([]openai.ChatCompletionToolUnionParam, 0, len(requestTools))
	for _, tool := range requestTools {
		parameters, err := tools.SchemaToMap(tool.Parameters)
		if err != nil {
			return nil, fmt.Errorf("converting parameters of %s: %w", tool.Name, err)
		}
		// Backends only need the object shape.
		delete(parameters, "$schema")

		out = append(out, openai.ChatCompletionFunctionTool(shared.FunctionDefinitionParam{
			Name:        tool.Name.String(),
			Description: openai.String(tool.Description),
			Parameters:  shared.FunctionParameters(parameters),
		}))
	}
	return out, nil
}
