package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/dexora-ai/dexora/pkg/chat"
	"github.com/dexora-ai/dexora/pkg/tools"
)

// MessageKind tags the variant a Message holds.
type MessageKind string

const (
	KindUser       MessageKind = "user"
	KindAssistant  MessageKind = "assistant"
	KindToolCall   MessageKind = "tool_call"
	KindToolResult MessageKind = "tool_result"
)

// Message is one entry of a conversation. Text variants use Content, a tool
// call carries ToolCall and a tool result carries ToolResult.
type Message struct {
	ID         string          `json:"id"`
	Kind       MessageKind     `json:"kind"`
	CreatedAt  time.Time       `json:"created_at"`
	Content    string          `json:"content,omitempty"`
	ToolCall   *tools.ToolCall `json:"tool_call,omitempty"`
	ToolResult *ToolResult     `json:"tool_result,omitempty"`
}

type ToolResult struct {
	ToolCallID string     `json:"tool_call_id"`
	ToolName   tools.Name `json:"tool_name"`
	// Summary is the short text the model sees on later turns.
	Summary   string `json:"summary"`
	Component string `json:"component,omitempty"`
	Data      any    `json:"data,omitempty"`
}

func newMessage(kind MessageKind) Message {
	return Message{
		ID:        uuid.NewString(),
		Kind:      kind,
		CreatedAt: time.Now(),
	}
}

func UserMessage(content string) Message {
	m := newMessage(KindUser)
	m.Content = content
	return m
}

func AssistantMessage(content string) Message {
	m := newMessage(KindAssistant)
	m.Content = content
	return m
}

func ToolCallMessage(call tools.ToolCall) Message {
	m := newMessage(KindToolCall)
	m.ToolCall = &call
	return m
}

func ToolResultMessage(call tools.ToolCall, name tools.Name, result *tools.ToolCallResult) Message {
	m := newMessage(KindToolResult)
	m.ToolResult = &ToolResult{
		ToolCallID: call.ID,
		ToolName:   name,
		Summary:    result.Output,
		Component:  result.Component,
		Data:       result.Data,
	}
	return m
}

// Role is the chat role the message maps to when replayed to a model.
func (m Message) Role() chat.MessageRole {
	switch m.Kind {
	case KindUser:
		return chat.MessageRoleUser
	case KindToolResult:
		return chat.MessageRoleTool
	default:
		return chat.MessageRoleAssistant
	}
}

func (m Message) chatMessage() chat.Message {
	switch m.Kind {
	case KindToolCall:
		return chat.Message{
			Role:      chat.MessageRoleAssistant,
			ToolCalls: []tools.ToolCall{*m.ToolCall},
		}
	case KindToolResult:
		return chat.Message{
			Role:       chat.MessageRoleTool,
			Content:    m.ToolResult.Summary,
			ToolCallID: m.ToolResult.ToolCallID,
		}
	default:
		return chat.Message{
			Role:    m.Role(),
			Content: m.Content,
		}
	}
}
