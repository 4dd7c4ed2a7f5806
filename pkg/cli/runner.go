package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/dexora-ai/dexora/pkg/input"
	"github.com/dexora-ai/dexora/pkg/render"
	"github.com/dexora-ai/dexora/pkg/runtime"
	"github.com/dexora-ai/dexora/pkg/session"
)

// RuntimeError wraps turn failures to distinguish them from usage errors
type RuntimeError struct {
	Err error
}

func (e RuntimeError) Error() string {
	return e.Err.Error()
}

func (e RuntimeError) Unwrap() error {
	return e.Err
}

var errExit = errors.New("exit")

// Config holds configuration for a terminal conversation
type Config struct {
	AppName       string
	HideToolCalls bool
	OutputJSON    bool
}

type usage struct {
	input, output int64
}

// Run drives one terminal conversation. With a message argument it runs a
// single turn ("-" reads the message from in); otherwise it reads lines
// from in until EOF or /exit.
func Run(ctx context.Context, out *Printer, cfg Config, rt runtime.Runtime, components *render.Components, in io.Reader, args []string) error {
	sess := session.New()
	var spent usage

	oneLoop := func(text string) error {
		userInput := strings.TrimSpace(text)
		if userInput == "" {
			return nil
		}

		if handled, err := runUserCommand(out, userInput, &sess, &spent, rt); handled || err != nil {
			return err
		}

		events, err := rt.RunStream(ctx, sess, userInput)
		if err != nil {
			return err
		}

		if cfg.OutputJSON {
			return printJSON(out, events)
		}
		return printTurn(out, cfg, components, events, &spent)
	}

	if len(args) > 0 {
		message := strings.Join(args, " ")
		if message == "-" {
			buf, err := io.ReadAll(in)
			if err != nil {
				return fmt.Errorf("failed to read from stdin: %w", err)
			}
			message = string(buf)
		}
		if err := oneLoop(message); !errors.Is(err, errExit) {
			return err
		}
		return nil
	}

	out.PrintWelcomeMessage(cfg.AppName, rt.ModelID())
	lines := input.NewReader(in)
	for {
		out.Print("> ")

		line, err := lines.ReadLine(ctx)
		if errors.Is(err, io.EOF) {
			out.Println()
			return nil
		}
		if err != nil {
			return err
		}

		err = oneLoop(line)
		if errors.Is(err, errExit) {
			return nil
		}
		var runtimeErr RuntimeError
		if errors.As(err, &runtimeErr) {
			// The fallback reply is already on screen.
			err = nil
		}
		if err != nil {
			return err
		}
		out.Println()
	}
}

// printTurn shows one turn: text as it streams, tool calls, and the
// rendered component of a tool result.
func printTurn(out *Printer, cfg Config, components *render.Components, events <-chan runtime.Event, spent *usage) error {
	adapter := render.NewAdapter()
	printed := make(map[string]int)
	lineOpen := false
	var lastErr error

	for event := range events {
		switch e := event.(type) {
		case *runtime.ToolCallEvent:
			if lineOpen {
				out.Println()
				lineOpen = false
			}
			if !cfg.HideToolCalls {
				out.PrintToolCall(e.ToolCall)
			}
		case *runtime.ToolCallResponseEvent:
			if !cfg.HideToolCalls {
				out.PrintToolCallResponse(e.ToolCall, e.Response)
			}
		case *runtime.QueryBlockedEvent:
			out.PrintBlocked(e.Reason, e.Risk)
		case *runtime.TokenUsageEvent:
			spent.input += e.Usage.InputTokens
			spent.output += e.Usage.OutputTokens
		case *runtime.ErrorEvent:
			lastErr = errors.New(e.Error)
			slog.Debug("Turn failed", "error", e.Error)
		}

		for _, unit := range adapter.Apply(event) {
			switch unit.Kind {
			case render.UnitText:
				// Text units only grow, so print what has not been shown yet.
				if n := printed[unit.ID]; n < len(unit.Text) && !unit.Discarded {
					out.Print(unit.Text[n:])
					printed[unit.ID] = len(unit.Text)
					lineOpen = true
				}
				if lineOpen && (unit.Done || unit.Discarded) {
					out.Println()
					lineOpen = false
				}
			case render.UnitComponent:
				rendered, err := components.Render(unit)
				if err != nil {
					out.PrintError(err)
					continue
				}
				out.PrintComponent(rendered)
			}
		}
	}

	if lastErr != nil {
		return RuntimeError{Err: lastErr}
	}
	return nil
}

func printJSON(out *Printer, events <-chan runtime.Event) error {
	var lastErr error
	for event := range events {
		if e, ok := event.(*runtime.ErrorEvent); ok {
			lastErr = errors.New(e.Error)
		}

		buf, err := json.Marshal(event)
		if err != nil {
			return err
		}
		out.Println(string(buf))
	}

	if lastErr != nil {
		return RuntimeError{Err: lastErr}
	}
	return nil
}

// runUserCommand handles the built-in slash commands
func runUserCommand(out *Printer, userInput string, sess **session.Session, spent *usage, rt runtime.Runtime) (bool, error) {
	switch userInput {
	case "/exit", "/quit":
		return true, errExit
	case "/help":
		out.Println("/tools  list the available tools")
		out.Println("/usage  show token usage")
		out.Println("/new    start a new conversation")
		out.Println("/exit   leave")
		return true, nil
	case "/tools":
		out.PrintTools(rt.Tools())
		return true, nil
	case "/usage":
		out.PrintUsage(spent.input, spent.output)
		return true, nil
	case "/new":
		*sess = session.New()
		*spent = usage{}
		out.Println("Started a new conversation")
		return true, nil
	}

	return false, nil
}
