package runtime

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dexora-ai/dexora/pkg/session"
	"github.com/dexora-ai/dexora/pkg/tools"
)

// runTool validates and runs the model's tool call, then commits the call and
// its result together. Text the model streamed before the call is not kept:
// the tool's output replaces it.
func (t *turn) runTool(ctx context.Context, toolCall tools.ToolCall) error {
	if toolCall.ID == "" {
		toolCall.ID = "call_" + uuid.NewString()
	}
	toolCall.Index = nil

	ctx, span := t.runtime.startSpan(ctx, "runtime.tool.call", trace.WithAttributes(
		attribute.String("tool.name", toolCall.Function.Name),
		attribute.String("tool.call_id", toolCall.ID),
		attribute.String("session.id", t.sess.ID),
	))
	defer span.End()

	slog.Debug("Running tool", "tool", toolCall.Function.Name, "session_id", t.sess.ID)

	result, err := t.execute(ctx, toolCall)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "tool call failed")
		return err
	}
	span.SetStatus(codes.Ok, "tool call processed")

	callMsg := session.ToolCallMessage(toolCall)
	resultMsg := session.ToolResultMessage(toolCall, tools.Name(toolCall.Function.Name), result)
	t.sess.Commit(callMsg, resultMsg)

	t.emit(ToolCall(toolCall))
	t.emit(ToolCallResponse(toolCall, resultMsg))
	return nil
}

// execute runs the handler through the registry, which rejects unknown names
// and arguments that do not match the tool's schema. A panicking handler is
// reported as an error.
func (t *turn) execute(ctx context.Context, toolCall tools.ToolCall) (result *tools.ToolCallResult, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("tool %s panicked: %v", toolCall.Function.Name, p)
		}
	}()

	return t.runtime.registry.Execute(ctx, toolCall)
}
