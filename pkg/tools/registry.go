package tools

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"github.com/xeipuuv/gojsonschema"
)

type registeredTool struct {
	tool   Tool
	schema *gojsonschema.Schema
}

// Registry maps tool names to their definitions. Registration order is the
// order tools are offered to the model.
type Registry struct {
	tools *orderedmap.OrderedMap[Name, registeredTool]
}

func NewRegistry() *Registry {
	return &Registry{
		tools: orderedmap.New[Name, registeredTool](),
	}
}

// Register adds tools to the registry. Names must belong to the known set
// and may only be registered once.
func (r *Registry) Register(toolList ...Tool) error {
	for _, tool := range toolList {
		if !tool.Name.Valid() {
			return fmt.Errorf("%w: %q", ErrUnknownTool, tool.Name)
		}
		if _, exists := r.tools.Get(tool.Name); exists {
			return fmt.Errorf("%w: %s", ErrDuplicateTool, tool.Name)
		}
		if tool.Handler == nil {
			return fmt.Errorf("tool %s has no handler", tool.Name)
		}

		schema, err := compileSchema(tool.Parameters)
		if err != nil {
			return fmt.Errorf("compiling parameter schema for %s: %w", tool.Name, err)
		}

		r.tools.Set(tool.Name, registeredTool{tool: tool, schema: schema})
		slog.Debug("Registered tool", "tool", tool.Name)
	}
	return nil
}

// Lookup resolves a model-chosen name. Names outside the enum or not
// registered are rejected with ErrUnknownTool.
func (r *Registry) Lookup(name string) (Tool, error) {
	n, err := ParseName(name)
	if err != nil {
		return Tool{}, err
	}
	rt, ok := r.tools.Get(n)
	if !ok {
		return Tool{}, fmt.Errorf("%w: %q is not registered", ErrUnknownTool, name)
	}
	return rt.tool, nil
}

// Tools returns the registered tools in registration order.
func (r *Registry) Tools() []Tool {
	out := make([]Tool, 0, r.tools.Len())
	for pair := r.tools.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value.tool)
	}
	return out
}

func (r *Registry) Len() int {
	return r.tools.Len()
}

// Validate checks a tool call's name and arguments without running it.
func (r *Registry) Validate(toolCall ToolCall) (Tool, error) {
	tool, err := r.Lookup(toolCall.Function.Name)
	if err != nil {
		return Tool{}, err
	}

	rt, _ := r.tools.Get(tool.Name)
	if err := validateArguments(rt.schema, toolCall.Function.Arguments); err != nil {
		return Tool{}, fmt.Errorf("%s: %w", tool.Name, err)
	}
	return tool, nil
}

// Execute validates the call and runs the tool's handler.
func (r *Registry) Execute(ctx context.Context, toolCall ToolCall) (*ToolCallResult, error) {
	tool, err := r.Validate(toolCall)
	if err != nil {
		return nil, err
	}

	result, err := tool.Handler(ctx, toolCall)
	if err != nil {
		return nil, fmt.Errorf("running %s: %w", tool.Name, err)
	}
	if result == nil {
		return nil, fmt.Errorf("running %s: handler returned no result", tool.Name)
	}
	return result, nil
}

func compileSchema(params any) (*gojsonschema.Schema, error) {
	m, err := SchemaToMap(params)
	if err != nil {
		return nil, err
	}
	// gojsonschema only understands drafts up to 7.
	delete(m, "$schema")

	return gojsonschema.NewSchema(gojsonschema.NewGoLoader(m))
}

func validateArguments(schema *gojsonschema.Schema, arguments string) error {
	result, err := schema.Validate(gojsonschema.NewStringLoader(normalizeArguments(arguments)))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArguments, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("%w: %s", ErrInvalidArguments, strings.Join(msgs, "; "))
	}
	return nil
}
