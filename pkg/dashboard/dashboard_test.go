package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	t.Parallel()

	k, err := ParseKind(" Sales ")
	require.NoError(t, err)
	assert.Equal(t, KindSales, k)

	_, err = ParseKind("legal")
	require.ErrorIs(t, err, ErrUnknownDashboard)
}

func TestBuildUnknown(t *testing.T) {
	t.Parallel()

	_, err := Build("legal", Query{})
	require.ErrorIs(t, err, ErrUnknownDashboard)
}

func TestBuildEveryKind(t *testing.T) {
	t.Parallel()

	for _, k := range Kinds() {
		view, err := Build(k, Query{})
		require.NoError(t, err, k)
		assert.NotNil(t, view, k)
	}
}

func TestHR(t *testing.T) {
	t.Parallel()

	view := HR(Query{})
	assert.Len(t, view.Employees, 5)
	assert.Equal(t, HRStats{TotalEmployees: 5, Active: 4, OnLeave: 1, Departments: 5}, view.Stats)

	view = HR(Query{Selects: map[string]string{"department": "Sales"}})
	require.Len(t, view.Employees, 1)
	assert.Equal(t, "Mike Chen", view.Employees[0].Name)
	assert.Equal(t, 5, view.Stats.TotalEmployees)

	view = HR(Query{Search: "ANALYST"})
	require.Len(t, view.Employees, 1)
	assert.Equal(t, "Robert Wilson", view.Employees[0].Name)
}

func TestSales(t *testing.T) {
	t.Parallel()

	view := Sales(Query{})
	assert.Len(t, view.Sales, 5)
	assert.Equal(t, SalesStats{TotalRevenue: 125000, TotalCommission: 12500, DealsWon: 2, WinRate: 40}, view.Stats)

	view = Sales(Query{Selects: map[string]string{"region": "West", "status": string(SaleClosedWon)}})
	assert.Len(t, view.Sales, 2)

	view = Sales(Query{Search: "enterprise license", Selects: map[string]string{"region": All}})
	assert.Len(t, view.Sales, 2)

	view = Sales(Query{Search: "nobody"})
	assert.Empty(t, view.Sales)
	assert.NotNil(t, view.Sales)
}

func TestMarketing(t *testing.T) {
	t.Parallel()

	view := Marketing(Query{})
	assert.Len(t, view.Campaigns, 5)
	assert.Equal(t, int64(43000), view.Stats.TotalBudget)
	assert.Equal(t, int64(24200), view.Stats.TotalSpent)
	assert.Equal(t, int64(427), view.Stats.TotalConversions)
	assert.InDelta(t, 2.7, view.Stats.AverageROI, 0.001)

	view = Marketing(Query{Selects: map[string]string{"status": string(CampaignActive)}})
	assert.Len(t, view.Campaigns, 3)
}

func TestFinance(t *testing.T) {
	t.Parallel()

	view := Finance(Query{})
	assert.Len(t, view.Records, 6)
	assert.Equal(t, FinanceStats{TotalIncome: 125000, TotalExpenses: 120500, NetIncome: 4500, PendingAmount: 45000}, view.Stats)

	view = Finance(Query{Selects: map[string]string{"type": string(RecordExpense)}})
	assert.Len(t, view.Records, 4)

	view = Finance(Query{Search: "inv-2024"})
	assert.Len(t, view.Records, 2)
}

func TestEngineering(t *testing.T) {
	t.Parallel()

	view := Engineering(Query{})
	assert.Len(t, view.Snippets, 4)
	assert.Len(t, view.Projects, 4)
	assert.Equal(t, EngineeringStats{Snippets: 4, ActiveProjects: 2, CompletedProjects: 1, AverageProgress: 58}, view.Stats)

	view = Engineering(Query{Search: "docker"})
	require.Len(t, view.Snippets, 1)
	assert.Equal(t, "Docker Multi-Stage Build", view.Snippets[0].Title)

	view = Engineering(Query{Selects: map[string]string{"category": string(CategoryUtility)}})
	assert.Empty(t, view.Snippets)
	assert.Len(t, view.Projects, 4)
}

func TestFiltersStartWithAll(t *testing.T) {
	t.Parallel()

	for _, filters := range [][]SelectFilter{
		HR(Query{}).Filters,
		Sales(Query{}).Filters,
		Marketing(Query{}).Filters,
		Finance(Query{}).Filters,
		Engineering(Query{}).Filters,
	} {
		require.NotEmpty(t, filters)
		for _, f := range filters {
			assert.Equal(t, All, f.Options[0], f.Name)
		}
	}
}
