// Package runtime runs conversation turns. A turn commits the user's
// message, asks the model backend for a reply and either commits the reply
// text or runs the single tool the model picked. Failures never escape a
// turn: they become a fixed fallback assistant message.
package runtime

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dexora-ai/dexora/pkg/concurrent"
	"github.com/dexora-ai/dexora/pkg/guard"
	"github.com/dexora-ai/dexora/pkg/model/provider"
	"github.com/dexora-ai/dexora/pkg/session"
	"github.com/dexora-ai/dexora/pkg/tools"
)

// FallbackMessage is committed as the assistant's reply whenever a turn
// fails.
const FallbackMessage = "Sorry, something went wrong while processing your request. Please try again."

// ErrTurnInProgress is returned when a session already has a turn running.
var ErrTurnInProgress = errors.New("a turn is already in progress for this conversation")

const eventBufferSize = 128

// Runtime is what the HTTP server and the terminal client drive.
type Runtime interface {
	// RunStream starts a turn for input. Blank input yields an already
	// closed channel and leaves the session untouched.
	RunStream(ctx context.Context, sess *session.Session, input string) (<-chan Event, error)
	// Tools lists the tools offered to the model.
	Tools() []tools.Tool
	ModelID() string
}

type LocalRuntime struct {
	provider     provider.Provider
	registry     *tools.Registry
	systemPrompt string
	maxHistory   int
	guard        *guard.Guard
	tracer       trace.Tracer
	inFlight     *concurrent.Map[string, struct{}]
}

var _ Runtime = (*LocalRuntime)(nil)

type Opt func(*LocalRuntime)

func WithSystemPrompt(prompt string) Opt {
	return func(r *LocalRuntime) {
		r.systemPrompt = prompt
	}
}

// WithMaxHistory caps the past messages sent with each request. Zero, the
// default, sends the whole conversation.
func WithMaxHistory(n int) Opt {
	return func(r *LocalRuntime) {
		r.maxHistory = n
	}
}

// WithGuard screens every message before it reaches the model.
func WithGuard(g *guard.Guard) Opt {
	return func(r *LocalRuntime) {
		r.guard = g
	}
}

func WithTracer(t trace.Tracer) Opt {
	return func(r *LocalRuntime) {
		r.tracer = t
	}
}

func New(p provider.Provider, registry *tools.Registry, opts ...Opt) *LocalRuntime {
	r := &LocalRuntime{
		provider: p,
		registry: registry,
		inFlight: concurrent.NewMap[string, struct{}](),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *LocalRuntime) Tools() []tools.Tool {
	return r.registry.Tools()
}

func (r *LocalRuntime) ModelID() string {
	return r.provider.ID()
}

// InFlight lists the sessions that have a turn running.
func (r *LocalRuntime) InFlight() []string {
	var ids []string
	r.inFlight.Range(func(id string, _ struct{}) bool {
		ids = append(ids, id)
		return true
	})
	return ids
}

// Close releases the model backend when it holds resources. Running turns
// are not waited for; their next model call fails into the fallback reply.
func (r *LocalRuntime) Close() error {
	for _, id := range r.InFlight() {
		slog.Warn("Closing runtime with a turn in progress", "session_id", id)
	}

	if c, ok := r.provider.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// RunStream runs the turn in its own goroutine. The turn outlives ctx: once
// ctx is done events are dropped, but the session still receives the turn's
// messages.
func (r *LocalRuntime) RunStream(ctx context.Context, sess *session.Session, input string) (<-chan Event, error) {
	events := make(chan Event, eventBufferSize)

	input = strings.TrimSpace(input)
	if input == "" {
		close(events)
		return events, nil
	}

	if _, busy := r.inFlight.LoadOrStore(sess.ID, struct{}{}); busy {
		return nil, ErrTurnInProgress
	}

	t := &turn{
		runtime:      r,
		sess:         sess,
		events:       events,
		consumerDone: ctx.Done(),
	}

	go func() {
		defer close(events)
		defer r.inFlight.Delete(sess.ID)

		t.run(context.WithoutCancel(ctx), input)
	}()

	return events, nil
}

func (r *LocalRuntime) startSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	if r.tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return r.tracer.Start(ctx, name, opts...)
}

// turn is the single writer of its session for as long as it runs.
type turn struct {
	runtime      *LocalRuntime
	sess         *session.Session
	events       chan Event
	consumerDone <-chan struct{}
}

func (t *turn) emit(ev Event) {
	select {
	case t.events <- ev:
	case <-t.consumerDone:
	}
}

func (t *turn) run(ctx context.Context, input string) {
	r := t.runtime
	ctx, span := r.startSpan(ctx, "runtime.turn", trace.WithAttributes(
		attribute.String("session.id", t.sess.ID),
		attribute.String("model", r.provider.ID()),
	))
	defer span.End()

	userMsg := session.UserMessage(input)
	t.sess.Commit(userMsg)
	t.emit(UserMessage(t.sess.ID, userMsg))
	t.emit(StreamStarted(t.sess.ID, r.provider.ID()))
	defer t.emit(StreamStopped(t.sess.ID))

	slog.Debug("Turn started", "session_id", t.sess.ID, "model", r.provider.ID())

	if r.guard != nil {
		if verdict := r.guard.Check(input); verdict.Blocked {
			slog.Info("Query blocked", "session_id", t.sess.ID, "reason", verdict.Reason, "risk", verdict.Risk)
			span.SetAttributes(attribute.Bool("guard.blocked", true))
			t.emit(QueryBlocked(verdict.Reason, verdict.Risk))
			t.commitText(guard.Refusal)
			return
		}
	}

	reply, err := t.complete(ctx)
	if err != nil {
		t.fail(span, err)
		return
	}

	switch len(reply.toolCalls) {
	case 0:
		if strings.TrimSpace(reply.text) == "" {
			t.fail(span, errEmptyCompletion)
			return
		}
		t.commitText(reply.text)
		span.SetStatus(codes.Ok, "text reply")

	case 1:
		if err := t.runTool(ctx, reply.toolCalls[0]); err != nil {
			t.fail(span, err)
			return
		}
		span.SetStatus(codes.Ok, "tool reply")

	default:
		t.fail(span, errMultipleToolCalls)
	}
}

func (t *turn) commitText(text string) {
	msg := session.AssistantMessage(text)
	t.sess.Commit(msg)
	t.emit(AssistantMessage(t.sess.ID, msg))
}

// fail ends the turn with the fallback message. The user message committed
// at the start of the turn stays.
func (t *turn) fail(span trace.Span, err error) {
	slog.Error("Turn failed", "session_id", t.sess.ID, "error", err)
	span.RecordError(err)
	span.SetStatus(codes.Error, "turn failed")

	t.emit(Error(err.Error()))
	t.commitText(FallbackMessage)
}
