package render

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dexora-ai/dexora/pkg/tools"
	"github.com/dexora-ai/dexora/pkg/tools/builtin"
)

var ErrUnknownComponent = errors.New("unknown component")

// Renderer draws a component's props for a terminal.
type Renderer func(props any) (string, error)

// Component is the presentational half of a tool: the tool produces props,
// the component draws them.
type Component struct {
	Name   string
	Tool   tools.Name
	Render Renderer
}

type Components struct {
	byTool map[tools.Name]Component
}

func NewComponents(components ...Component) *Components {
	c := &Components{byTool: make(map[tools.Name]Component, len(components))}
	for _, comp := range components {
		c.byTool[comp.Tool] = comp
	}
	return c
}

// DefaultComponents knows how to draw every enterprise tool's output.
func DefaultComponents() *Components {
	return NewComponents(
		Component{Name: builtin.ComponentDropFiles, Tool: tools.NameUploadEnterpriseDocuments, Render: renderDropFiles},
		Component{Name: builtin.ComponentHRDashboard, Tool: tools.NameHRDashboard, Render: renderHR},
		Component{Name: builtin.ComponentSalesDashboard, Tool: tools.NameSalesDashboard, Render: renderSales},
		Component{Name: builtin.ComponentMarketingDashboard, Tool: tools.NameMarketingDashboard, Render: renderMarketing},
		Component{Name: builtin.ComponentFinanceDashboard, Tool: tools.NameFinanceDashboard, Render: renderFinance},
		Component{Name: builtin.ComponentEngineeringDashboard, Tool: tools.NameEngineeringDashboard, Render: renderEngineering},
		Component{Name: builtin.ComponentAppointmentScheduling, Tool: tools.NameAppointmentScheduling, Render: renderAppointment},
		Component{Name: builtin.ComponentFileSearch, Tool: tools.NameSearchFiles, Render: renderFileSearch},
	)
}

func (c *Components) ForTool(name tools.Name) (Component, bool) {
	comp, ok := c.byTool[name]
	return comp, ok
}

// Render draws a unit. Text units render as their text.
func (c *Components) Render(unit DisplayUnit) (string, error) {
	if unit.Kind == UnitText {
		return unit.Text, nil
	}

	comp, ok := c.ForTool(unit.ToolName)
	if !ok || (unit.Component != "" && unit.Component != comp.Name) {
		return "", fmt.Errorf("%w: %q for tool %q", ErrUnknownComponent, unit.Component, unit.ToolName)
	}
	return comp.Render(unit.Props)
}

// decodeProps accepts props as the tool produced them or as decoded JSON,
// which is what arrives over the HTTP API.
func decodeProps[T any](props any) (T, error) {
	switch v := props.(type) {
	case T:
		return v, nil
	case *T:
		if v != nil {
			return *v, nil
		}
	}

	var out T
	buf, err := json.Marshal(props)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(buf, &out); err != nil {
		return out, fmt.Errorf("decoding %T props: %w", out, err)
	}
	return out, nil
}
