package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/dexora-ai/dexora/pkg/tools"
)

var (
	bold   = color.New(color.Bold).SprintfFunc()
	faint  = color.New(color.Faint).SprintfFunc()
	yellow = color.New(color.FgYellow).SprintfFunc()
)

type Printer struct {
	out io.Writer
}

func NewPrinter(out io.Writer) *Printer {
	return &Printer{
		out: out,
	}
}

func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.out, a...)
}

func (p *Printer) Print(a ...any) {
	fmt.Fprint(p.out, a...)
}

func (p *Printer) Printf(format string, a ...any) {
	fmt.Fprintf(p.out, format, a...)
}

// PrintWelcomeMessage prints the welcome banner
func (p *Printer) PrintWelcomeMessage(appName, modelID string) {
	p.Printf("\n------- Welcome to %s! -------\n", bold(appName))
	p.Printf("%s\n", faint("model: %s, type /help for commands, Ctrl+C to exit", modelID))
	p.Println()
}

// PrintError prints an error message
func (p *Printer) PrintError(err error) {
	p.Printf("❌ %s\n", err)
}

// PrintBlocked prints the query guard's verdict
func (p *Printer) PrintBlocked(reason string, risk float64) {
	p.Printf("%s\n", yellow("⚠️  Query blocked (%s, risk %.2f)", reason, risk))
}

// PrintToolCall prints a tool call
func (p *Printer) PrintToolCall(toolCall tools.ToolCall) {
	p.Printf("\nCalling %s%s\n", bold(toolCall.Function.Name), formatToolCallArguments(toolCall.Function.Arguments))
}

// PrintToolCallResponse prints the summary a tool returned
func (p *Printer) PrintToolCallResponse(toolCall tools.ToolCall, response string) {
	p.Printf("%s response%s\n", bold(toolCall.Function.Name), formatToolCallResponse(response))
}

// PrintComponent prints a rendered tool component
func (p *Printer) PrintComponent(rendered string) {
	p.Printf("\n%s\n", strings.TrimRight(rendered, "\n"))
}

// PrintTools lists the tools offered to the model
func (p *Printer) PrintTools(toolList []tools.Tool) {
	for _, tool := range toolList {
		p.Printf("%s\n  %s\n", bold(tool.Name.String()), firstLine(tool.Description))
	}
}

// PrintUsage prints the tokens spent in this conversation
func (p *Printer) PrintUsage(inputTokens, outputTokens int64) {
	p.Println("Input tokens:", inputTokens)
	p.Println("Output tokens:", outputTokens)
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func formatToolCallArguments(arguments string) string {
	if arguments == "" {
		return "()"
	}

	kv := orderedmap.New[string, any]()
	if err := json.Unmarshal([]byte(arguments), &kv); err == nil {
		if kv.Len() == 0 {
			return "()"
		}

		parts := make([]string, 0, kv.Len())
		for key, value := range kv.FromOldest() {
			parts = append(parts, formatJSONValue(key, value))
		}
		return formatParts(parts)
	}

	var parsed any
	if err := json.Unmarshal([]byte(arguments), &parsed); err == nil {
		formatted, _ := json.MarshalIndent(parsed, "", "  ")
		return fmt.Sprintf("(%s)", formatted)
	}

	return fmt.Sprintf("(%s)", arguments)
}

// formatToolCallResponse shows a tool summary. Summaries are short plain
// text; JSON is still laid out field by field.
func formatToolCallResponse(response string) string {
	if response == "" {
		return " → ()"
	}

	kv := orderedmap.New[string, any]()
	if err := json.Unmarshal([]byte(response), &kv); err == nil {
		if kv.Len() == 0 {
			return " → ()"
		}

		parts := make([]string, 0, kv.Len())
		for key, value := range kv.FromOldest() {
			parts = append(parts, formatJSONValue(key, value))
		}
		return " → " + formatParts(parts)
	}

	if lines := strings.Split(strings.TrimSpace(response), "\n"); len(lines) > 3 {
		return fmt.Sprintf(" → (\n%s\n)", strings.Join(collapseBlankLines(lines), "\n"))
	}

	return fmt.Sprintf(" → %q", response)
}

func formatParts(parts []string) string {
	if len(parts) == 1 && !strings.Contains(parts[0], "\n") {
		return fmt.Sprintf("(%s)", parts[0])
	}
	return fmt.Sprintf("(\n  %s\n)", strings.Join(parts, "\n  "))
}

func collapseBlankLines(lines []string) []string {
	var (
		out       []string
		lastBlank bool
	)
	for _, line := range lines {
		blank := strings.TrimSpace(line) == ""
		if blank && lastBlank {
			continue
		}
		if blank {
			line = ""
		}
		out = append(out, line)
		lastBlank = blank
	}
	return out
}

func formatJSONValue(key string, value any) string {
	switch v := value.(type) {
	case string:
		return fmt.Sprintf("%s: %q", bold(key), v)

	case []any:
		if len(v) == 0 {
			return fmt.Sprintf("%s: []", bold(key))
		}
		if len(v) == 1 {
			jsonBytes, _ := json.Marshal(v)
			return fmt.Sprintf("%s: %s", bold(key), jsonBytes)
		}
		jsonBytes, _ := json.MarshalIndent(v, "", "  ")
		return fmt.Sprintf("%s: %s", bold(key), jsonBytes)

	case map[string]any:
		jsonBytes, _ := json.MarshalIndent(v, "", "  ")
		return fmt.Sprintf("%s: %s", bold(key), jsonBytes)

	default:
		jsonBytes, _ := json.Marshal(v)
		return fmt.Sprintf("%s: %s", bold(key), jsonBytes)
	}
}
