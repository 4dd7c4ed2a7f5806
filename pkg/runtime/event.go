package runtime

import (
	"github.com/dexora-ai/dexora/pkg/session"
	"github.com/dexora-ai/dexora/pkg/tools"
)

type Event interface {
	isEvent()
	GetType() string
}

// UserMessageEvent is sent once the user's message is committed
type UserMessageEvent struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id"`
	MessageID string `json:"message_id"`
	Message   string `json:"message"`
}

func UserMessage(sessionID string, msg session.Message) Event {
	return &UserMessageEvent{
		Type:      "user_message",
		SessionID: sessionID,
		MessageID: msg.ID,
		Message:   msg.Content,
	}
}

func (e *UserMessageEvent) isEvent()        {}
func (e *UserMessageEvent) GetType() string { return e.Type }

type StreamStartedEvent struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id"`
	Model     string `json:"model,omitempty"`
}

func StreamStarted(sessionID, model string) Event {
	return &StreamStartedEvent{
		Type:      "stream_started",
		SessionID: sessionID,
		Model:     model,
	}
}

func (e *StreamStartedEvent) isEvent()        {}
func (e *StreamStartedEvent) GetType() string { return e.Type }

// AgentChoiceEvent carries one text increment of the assistant's reply
type AgentChoiceEvent struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

func AgentChoice(content string) Event {
	return &AgentChoiceEvent{
		Type:    "agent_choice",
		Content: content,
	}
}

func (e *AgentChoiceEvent) isEvent()        {}
func (e *AgentChoiceEvent) GetType() string { return e.Type }

// AssistantMessageEvent is sent when an assistant text message is committed.
// Content is the full text, which is the fallback text on failed turns.
type AssistantMessageEvent struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id"`
	MessageID string `json:"message_id"`
	Content   string `json:"content"`
}

func AssistantMessage(sessionID string, msg session.Message) Event {
	return &AssistantMessageEvent{
		Type:      "assistant_message",
		SessionID: sessionID,
		MessageID: msg.ID,
		Content:   msg.Content,
	}
}

func (e *AssistantMessageEvent) isEvent()        {}
func (e *AssistantMessageEvent) GetType() string { return e.Type }

type ToolCallEvent struct {
	Type     string         `json:"type"`
	ToolCall tools.ToolCall `json:"tool_call"`
}

func ToolCall(toolCall tools.ToolCall) Event {
	return &ToolCallEvent{
		Type:     "tool_call",
		ToolCall: toolCall,
	}
}

func (e *ToolCallEvent) isEvent()        {}
func (e *ToolCallEvent) GetType() string { return e.Type }

// ToolCallResponseEvent carries the handler's summary and render payload
type ToolCallResponseEvent struct {
	Type      string         `json:"type"`
	MessageID string         `json:"message_id"`
	ToolCall  tools.ToolCall `json:"tool_call"`
	ToolName  tools.Name     `json:"tool_name"`
	Response  string         `json:"response"`
	Component string         `json:"component,omitempty"`
	Data      any            `json:"data,omitempty"`
}

func ToolCallResponse(toolCall tools.ToolCall, msg session.Message) Event {
	result := msg.ToolResult
	return &ToolCallResponseEvent{
		Type:      "tool_call_response",
		MessageID: msg.ID,
		ToolCall:  toolCall,
		ToolName:  result.ToolName,
		Response:  result.Summary,
		Component: result.Component,
		Data:      result.Data,
	}
}

func (e *ToolCallResponseEvent) isEvent()        {}
func (e *ToolCallResponseEvent) GetType() string { return e.Type }

type ErrorEvent struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

func Error(msg string) Event {
	return &ErrorEvent{
		Type:  "error",
		Error: msg,
	}
}

func (e *ErrorEvent) isEvent()        {}
func (e *ErrorEvent) GetType() string { return e.Type }

// QueryBlockedEvent is sent when the query guard refuses a message
type QueryBlockedEvent struct {
	Type   string  `json:"type"`
	Reason string  `json:"reason"`
	Risk   float64 `json:"risk"`
}

func QueryBlocked(reason string, risk float64) Event {
	return &QueryBlockedEvent{
		Type:   "query_blocked",
		Reason: reason,
		Risk:   risk,
	}
}

func (e *QueryBlockedEvent) isEvent()        {}
func (e *QueryBlockedEvent) GetType() string { return e.Type }

type TokenUsageEvent struct {
	Type  string `json:"type"`
	Usage *Usage `json:"usage"`
}

type Usage struct {
	InputTokens  int64 `json:"input_tokens"`
	OutputTokens int64 `json:"output_tokens"`
}

func TokenUsage(inputTokens, outputTokens int64) Event {
	return &TokenUsageEvent{
		Type: "token_usage",
		Usage: &Usage{
			InputTokens:  inputTokens,
			OutputTokens: outputTokens,
		},
	}
}

func (e *TokenUsageEvent) isEvent()        {}
func (e *TokenUsageEvent) GetType() string { return e.Type }

type StreamStoppedEvent struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id"`
}

func StreamStopped(sessionID string) Event {
	return &StreamStoppedEvent{
		Type:      "stream_stopped",
		SessionID: sessionID,
	}
}

func (e *StreamStoppedEvent) isEvent()        {}
func (e *StreamStoppedEvent) GetType() string { return e.Type }
