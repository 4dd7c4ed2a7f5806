package builtin

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dexora-ai/dexora/pkg/appointment"
	"github.com/dexora-ai/dexora/pkg/dashboard"
	"github.com/dexora-ai/dexora/pkg/documents"
	"github.com/dexora-ai/dexora/pkg/filesearch"
	"github.com/dexora-ai/dexora/pkg/tools"
)

func newRegistry(t *testing.T) *tools.Registry {
	t.Helper()

	now := func() time.Time { return time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC) }
	reg, err := NewRegistry(
		WithClock(now),
		WithFileSearcher(filesearch.New(
			filesearch.WithRand(rand.New(rand.NewPCG(1, 2))),
			filesearch.WithClock(now),
		)),
	)
	require.NoError(t, err)
	return reg
}

func call(name tools.Name, args string) tools.ToolCall {
	return tools.ToolCall{
		ID:       "call_" + string(name),
		Type:     tools.ToolTypeFunction,
		Function: tools.FunctionCall{Name: string(name), Arguments: args},
	}
}

func TestRegistryOffersEveryKnownTool(t *testing.T) {
	reg := newRegistry(t)

	var names []tools.Name
	for _, tool := range reg.Tools() {
		names = append(names, tool.Name)
		assert.NotEmpty(t, tool.Description, tool.Name)
		assert.NotEmpty(t, tool.Examples, tool.Name)
	}
	assert.Equal(t, tools.KnownNames(), names)
}

func TestDashboardTools(t *testing.T) {
	reg := newRegistry(t)

	tests := []struct {
		name      tools.Name
		component string
		summary   string
		check     func(t *testing.T, data any)
	}{
		{tools.NameHRDashboard, ComponentHRDashboard, "Displaying HR dashboard with employee data and analytics", func(t *testing.T, data any) {
			assert.Len(t, data.(dashboard.HRView).Employees, 5)
		}},
		{tools.NameSalesDashboard, ComponentSalesDashboard, "Displaying sales dashboard with performance metrics and revenue data", func(t *testing.T, data any) {
			view := data.(dashboard.SalesView)
			assert.Len(t, view.Sales, 5)
			assert.Equal(t, int64(125000), view.Stats.TotalRevenue)
		}},
		{tools.NameMarketingDashboard, ComponentMarketingDashboard, "Displaying marketing dashboard with campaign performance and analytics", func(t *testing.T, data any) {
			assert.Len(t, data.(dashboard.MarketingView).Campaigns, 5)
		}},
		{tools.NameFinanceDashboard, ComponentFinanceDashboard, "Displaying finance dashboard with accounting data and financial analytics", func(t *testing.T, data any) {
			assert.Len(t, data.(dashboard.FinanceView).Records, 6)
		}},
		{tools.NameEngineeringDashboard, ComponentEngineeringDashboard, "Displaying engineering dashboard with code snippets and project data", func(t *testing.T, data any) {
			assert.Len(t, data.(dashboard.EngineeringView).Snippets, 4)
		}},
	}

	for _, tt := range tests {
		t.Run(string(tt.name), func(t *testing.T) {
			result, err := reg.Execute(t.Context(), call(tt.name, "{}"))
			require.NoError(t, err)
			assert.Equal(t, tt.component, result.Component)
			assert.Equal(t, tt.summary, result.Output)
			tt.check(t, result.Data)
		})
	}
}

func TestUploadDocumentsTool(t *testing.T) {
	result, err := newRegistry(t).Execute(t.Context(), call(tools.NameUploadEnterpriseDocuments, ""))
	require.NoError(t, err)
	assert.Equal(t, ComponentDropFiles, result.Component)
	assert.Equal(t, "Displaying a file upload interface for enterprise document analysis", result.Output)
	assert.Len(t, result.Data.(documents.Catalog).DocumentTypes, 4)
}

func TestAppointmentTool(t *testing.T) {
	result, err := newRegistry(t).Execute(t.Context(), call(tools.NameAppointmentScheduling, "{}"))
	require.NoError(t, err)
	assert.Equal(t, ComponentAppointmentScheduling, result.Component)
	assert.Equal(t, "Displaying appointment scheduling interface", result.Output)
	assert.Len(t, result.Data.(appointment.Form).TimeSlots, 18)
}

func TestSearchFilesTool(t *testing.T) {
	result, err := newRegistry(t).Execute(t.Context(), call(tools.NameSearchFiles, `{"query":"lab results"}`))
	require.NoError(t, err)
	assert.Equal(t, ComponentFileSearch, result.Component)

	data := result.Data.(filesearch.Result)
	assert.Equal(t, "lab results", data.Query)
	assert.GreaterOrEqual(t, len(data.Results), 3)
	assert.LessOrEqual(t, len(data.Results), 8)
	assert.Equal(t, data.Summary(), result.Output)
	assert.Contains(t, result.Output, `matching query: "lab results"`)
}

func TestSearchFilesToolRejectsBadArguments(t *testing.T) {
	reg := newRegistry(t)

	for _, args := range []string{``, `{}`, `{"query": 42}`, `{"query": "   "}`} {
		_, err := reg.Execute(t.Context(), call(tools.NameSearchFiles, args))
		require.ErrorIs(t, err, tools.ErrInvalidArguments, args)
	}
}

func TestSystemPrompt(t *testing.T) {
	assert.Contains(t, SystemPrompt, "You are Dexora")
}
