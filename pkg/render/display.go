// Package render turns runtime events into display units: streamed text
// bubbles and finalized tool components.
package render

import (
	"github.com/google/uuid"

	"github.com/dexora-ai/dexora/pkg/runtime"
	"github.com/dexora-ai/dexora/pkg/tools"
)

type UnitKind string

const (
	UnitText      UnitKind = "text"
	UnitComponent UnitKind = "component"
)

// DisplayUnit is one visible element of the conversation. A text unit grows
// while Done is false; a component unit is always final. A Discarded text
// unit was superseded by a tool result and should be removed.
type DisplayUnit struct {
	ID        string     `json:"id"`
	Kind      UnitKind   `json:"kind"`
	Text      string     `json:"text,omitempty"`
	ToolName  tools.Name `json:"toolName,omitempty"`
	Component string     `json:"component,omitempty"`
	Props     any        `json:"props,omitempty"`
	Done      bool       `json:"done"`
	Discarded bool       `json:"discarded,omitempty"`
}

// Adapter is the single reader of one runtime event stream. It keeps at most
// one text unit in flight.
type Adapter struct {
	current *DisplayUnit
}

func NewAdapter() *Adapter {
	return &Adapter{}
}

// Apply folds ev into the display and returns the units it changed, in
// order. Events with no visible effect return nil.
func (a *Adapter) Apply(ev runtime.Event) []DisplayUnit {
	switch e := ev.(type) {
	case *runtime.AgentChoiceEvent:
		if a.current == nil {
			a.current = &DisplayUnit{ID: uuid.NewString(), Kind: UnitText}
		}
		a.current.Text += e.Content
		return []DisplayUnit{*a.current}

	case *runtime.AssistantMessageEvent:
		if a.current != nil && a.current.Text == e.Content {
			a.current.Done = true
			unit := *a.current
			a.current = nil
			return []DisplayUnit{unit}
		}
		return append(a.close(), DisplayUnit{
			ID:   e.MessageID,
			Kind: UnitText,
			Text: e.Content,
			Done: true,
		})

	case *runtime.ToolCallResponseEvent:
		return append(a.discard(), DisplayUnit{
			ID:        e.MessageID,
			Kind:      UnitComponent,
			Text:      e.Response,
			ToolName:  e.ToolName,
			Component: e.Component,
			Props:     e.Data,
			Done:      true,
		})

	case *runtime.StreamStoppedEvent:
		return a.close()
	}
	return nil
}

// close finalizes the in-flight text unit, if any, as it stands.
func (a *Adapter) close() []DisplayUnit {
	if a.current == nil {
		return nil
	}
	a.current.Done = true
	unit := *a.current
	a.current = nil
	return []DisplayUnit{unit}
}

// discard drops the in-flight text unit without finalizing it.
func (a *Adapter) discard() []DisplayUnit {
	if a.current == nil {
		return nil
	}
	a.current.Discarded = true
	unit := *a.current
	a.current = nil
	return []DisplayUnit{unit}
}
