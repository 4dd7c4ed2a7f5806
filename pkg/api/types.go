// Package api holds the request and response bodies of the HTTP API.
package api

import (
	"time"

	"github.com/dexora-ai/dexora/pkg/render"
	"github.com/dexora-ai/dexora/pkg/session"
	"github.com/dexora-ai/dexora/pkg/tools"
)

// SendMessageRequest is the body of POST /api/conversations/:id/messages
type SendMessageRequest struct {
	Content string `json:"content"`
}

// CreateConversationRequest is the optional body of POST /api/conversations
type CreateConversationRequest struct {
	Title string `json:"title,omitempty"`
}

// ConversationsResponse is one entry of the conversation list
type ConversationsResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	CreatedAt   time.Time `json:"created_at"`
	NumMessages int       `json:"num_messages"`
}

// ConversationResponse is a page of a conversation's messages, newest last
type ConversationResponse struct {
	ID         string              `json:"id"`
	Title      string              `json:"title"`
	CreatedAt  time.Time           `json:"created_at"`
	Messages   []session.Message   `json:"messages"`
	Pagination *PaginationMetadata `json:"pagination"`
}

type ToolResponse struct {
	Name        tools.Name `json:"name"`
	Description string     `json:"description"`
	Parameters  any        `json:"parameters"`
}

// DisplayUnitEvent is interleaved with runtime events on the message stream.
// It carries the display unit the preceding runtime event changed.
type DisplayUnitEvent struct {
	Type string             `json:"type"`
	Unit render.DisplayUnit `json:"unit"`
}

func DisplayUnit(unit render.DisplayUnit) *DisplayUnitEvent {
	return &DisplayUnitEvent{Type: "display_unit", Unit: unit}
}

type PaginationMetadata struct {
	TotalMessages int    `json:"total_messages"`
	Limit         int    `json:"limit"`
	PrevCursor    string `json:"prev_cursor,omitempty"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}
