// Package builtin declares the enterprise tools the assistant can invoke.
// Every handler returns a render payload for a presentational component
// plus a one-line summary that is kept in the conversation.
package builtin

import (
	"time"

	"github.com/dexora-ai/dexora/pkg/filesearch"
	"github.com/dexora-ai/dexora/pkg/tools"
)

// Component names, one per tool.
const (
	ComponentDropFiles             = "DropFilesView"
	ComponentHRDashboard           = "HRDashboard"
	ComponentSalesDashboard        = "SalesDashboard"
	ComponentMarketingDashboard    = "MarketingDashboard"
	ComponentFinanceDashboard      = "FinanceDashboard"
	ComponentEngineeringDashboard  = "EngineeringDashboard"
	ComponentAppointmentScheduling = "AppointmentScheduling"
	ComponentFileSearch            = "FileSearch"
)

// noArgs is the parameter set of tools that take no arguments.
type noArgs struct{}

type EnterpriseTools struct {
	searcher *filesearch.Searcher
	now      func() time.Time
}

type Option func(*EnterpriseTools)

func WithFileSearcher(s *filesearch.Searcher) Option {
	return func(t *EnterpriseTools) {
		t.searcher = s
	}
}

func WithClock(now func() time.Time) Option {
	return func(t *EnterpriseTools) {
		t.now = now
	}
}

func New(opts ...Option) *EnterpriseTools {
	t := &EnterpriseTools{now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	if t.searcher == nil {
		t.searcher = filesearch.New(filesearch.WithClock(t.now))
	}
	return t
}

// Tools returns the tools in the order they are offered to the model.
func (t *EnterpriseTools) Tools() []tools.Tool {
	return []tools.Tool{
		t.uploadDocumentsTool(),
		t.hrDashboardTool(),
		t.salesDashboardTool(),
		t.marketingDashboardTool(),
		t.financeDashboardTool(),
		t.engineeringDashboardTool(),
		t.appointmentTool(),
		t.searchFilesTool(),
	}
}

// NewRegistry registers every enterprise tool.
func NewRegistry(opts ...Option) (*tools.Registry, error) {
	reg := tools.NewRegistry()
	if err := reg.Register(New(opts...).Tools()...); err != nil {
		return nil, err
	}
	return reg, nil
}

func rendered(component, summary string, data any) *tools.ToolCallResult {
	result := tools.ResultSuccess(summary, data)
	result.Component = component
	return result
}
