package tools

import "context"

type ToolType string

const ToolTypeFunction ToolType = "function"

type ToolCall struct {
	Index    *int         `json:"index,omitempty"`
	ID       string       `json:"id,omitempty"`
	Type     ToolType     `json:"type"`
	Function FunctionCall `json:"function"`
}

type FunctionCall struct {
	Name      string `json:"name,omitempty"`
	Arguments string `json:"arguments,omitempty"`
}

// ToolCallResult is what a handler hands back to the orchestrator.
type ToolCallResult struct {
	// Output is the short textual summary stored in the conversation.
	Output string `json:"output"`
	// Component names the presentational component that renders Data.
	Component string `json:"component,omitempty"`
	// Data is the render payload passed to the presentational component.
	Data any `json:"data,omitempty"`
}

type ToolHandler func(ctx context.Context, toolCall ToolCall) (*ToolCallResult, error)

type Tool struct {
	Name        Name   `json:"name"`
	Description string `json:"description"`
	Parameters  any    `json:"parameters"`
	// Examples are phrases that should trigger the tool. They are never sent
	// to hosted models.
	Examples []string    `json:"-"`
	Handler  ToolHandler `json:"-"`
}
