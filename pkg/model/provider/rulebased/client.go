// Package rulebased is the offline model backend. It matches the latest user
// message against the tools' example phrases with a Bleve full-text index and
// answers with a synthetic tool call, or with a canned reply when nothing
// matches.
package rulebased

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/google/uuid"

	"github.com/dexora-ai/dexora/pkg/chat"
	"github.com/dexora-ai/dexora/pkg/tools"
)

const (
	ModelID = "offline/rulebased"

	// DefaultReply is streamed when no tool example matches.
	DefaultReply = "I'm running in offline mode, so I can only open Dexora's built-in views. " +
		"Try asking for the HR, sales, marketing, finance or engineering dashboard, " +
		"to search files, to schedule an appointment or to upload documents."
)

type Client struct {
	reply string

	mu    sync.Mutex
	index bleve.Index
	// routes[i] is the tool whose examples are indexed as r<i>_e<j>.
	routes  []tools.Tool
	indexed map[tools.Name]int
}

type Opt func(*Client)

func WithReply(reply string) Opt {
	return func(c *Client) {
		c.reply = reply
	}
}

func NewClient(opts ...Opt) (*Client, error) {
	index, err := createIndex()
	if err != nil {
		return nil, fmt.Errorf("creating bleve index: %w", err)
	}

	c := &Client{
		reply:   DefaultReply,
		index:   index,
		indexed: make(map[tools.Name]int),
	}
	for _, opt := range opts {
		opt(c)
	}

	slog.Debug("Offline backend created")
	return c, nil
}

func createIndex() (bleve.Index, error) {
	indexMapping := mapping.NewIndexMapping()

	docMapping := mapping.NewDocumentMapping()
	textField := mapping.NewTextFieldMapping()
	textField.Analyzer = "en"
	docMapping.AddFieldMappingsAt("text", textField)
	docMapping.AddFieldMappingsAt("route", mapping.NewNumericFieldMapping())
	indexMapping.DefaultMapping = docMapping

	return bleve.NewMemOnly(indexMapping)
}

func (c *Client) ID() string {
	return ModelID
}

func (c *Client) CreateChatCompletionStream(_ context.Context, messages []chat.Message, availableTools []tools.Tool) (chat.MessageStream, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.indexTools(availableTools); err != nil {
		return nil, err
	}

	userMessage := lastUserMessage(messages)
	offered := make(map[tools.Name]bool, len(availableTools))
	for _, t := range availableTools {
		offered[t.Name] = true
	}

	if tool, ok := c.match(userMessage, offered); ok {
		args, err := argumentsFor(tool, userMessage)
		if err != nil {
			return nil, err
		}
		slog.Debug("Offline backend matched tool", "tool", tool.Name)
		return toolCallStream(tool.Name, args), nil
	}

	return textStream(c.reply), nil
}

// indexTools adds the examples of tools not seen before.
func (c *Client) indexTools(availableTools []tools.Tool) error {
	for _, tool := range availableTools {
		if _, ok := c.indexed[tool.Name]; ok {
			continue
		}

		routeIndex := len(c.routes)
		c.routes = append(c.routes, tool)
		c.indexed[tool.Name] = routeIndex

		for j, example := range tool.Examples {
			docID := fmt.Sprintf("r%d_e%d", routeIndex, j)
			if err := c.index.Index(docID, map[string]any{"text": example, "route": routeIndex}); err != nil {
				return fmt.Errorf("indexing example of %s: %w", tool.Name, err)
			}
		}
	}
	return nil
}

// match returns the offered tool whose best example scores highest.
func (c *Client) match(userMessage string, offered map[tools.Name]bool) (tools.Tool, bool) {
	if strings.TrimSpace(userMessage) == "" {
		return tools.Tool{}, false
	}

	query := bleve.NewMatchQuery(userMessage)
	query.SetField("text")

	searchRequest := bleve.NewSearchRequest(query)
	searchRequest.Size = 10
	searchRequest.Fields = []string{"route"}

	results, err := c.index.Search(searchRequest)
	if err != nil {
		slog.Error("Bleve search failed", "error", err)
		return tools.Tool{}, false
	}

	bestRoute, bestScore := -1, 0.0
	for _, hit := range results.Hits {
		var routeIdx int
		if _, err := fmt.Sscanf(hit.ID, "r%d_e", &routeIdx); err != nil {
			continue
		}
		if routeIdx >= len(c.routes) || !offered[c.routes[routeIdx].Name] {
			continue
		}
		if hit.Score > bestScore {
			bestRoute, bestScore = routeIdx, hit.Score
		}
	}

	if bestRoute < 0 {
		return tools.Tool{}, false
	}
	return c.routes[bestRoute], true
}

// argumentsFor fills a "query" parameter with the user's message. Tools
// without one are called with an empty object.
func argumentsFor(tool tools.Tool, userMessage string) (string, error) {
	schema, err := tools.SchemaToMap(tool.Parameters)
	if err != nil {
		return "", err
	}
	properties, _ := schema["properties"].(map[string]any)
	if _, ok := properties["query"]; !ok {
		return "{}", nil
	}

	buf, err := json.Marshal(map[string]string{"query": strings.TrimSpace(userMessage)})
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

func lastUserMessage(messages []chat.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == chat.MessageRoleUser {
			return messages[i].Content
		}
	}
	return ""
}

func (c *Client) Close() error {
	return c.index.Close()
}

func toolCallStream(name tools.Name, arguments string) *scriptedStream {
	index := 0
	return &scriptedStream{responses: []chat.MessageStreamResponse{
		{
			ID:    uuid.NewString(),
			Model: ModelID,
			Choices: []chat.MessageStreamChoice{{
				Delta: chat.MessageDelta{
					Role: string(chat.MessageRoleAssistant),
					ToolCalls: []tools.ToolCall{{
						Index: &index,
						ID:    "call_" + uuid.NewString(),
						Type:  tools.ToolTypeFunction,
						Function: tools.FunctionCall{
							Name:      name.String(),
							Arguments: arguments,
						},
					}},
				},
			}},
		},
		{
			Model:   ModelID,
			Choices: []chat.MessageStreamChoice{{FinishReason: chat.FinishReasonToolCalls}},
		},
	}}
}

// textStream emits the reply one word at a time.
func textStream(reply string) *scriptedStream {
	id := uuid.NewString()
	var responses []chat.MessageStreamResponse
	for word := range strings.SplitAfterSeq(reply, " ") {
		responses = append(responses, chat.MessageStreamResponse{
			ID:      id,
			Model:   ModelID,
			Choices: []chat.MessageStreamChoice{{Delta: chat.MessageDelta{Content: word}}},
		})
	}
	responses = append(responses, chat.MessageStreamResponse{
		ID:      id,
		Model:   ModelID,
		Choices: []chat.MessageStreamChoice{{FinishReason: chat.FinishReasonStop}},
	})
	return &scriptedStream{responses: responses}
}
