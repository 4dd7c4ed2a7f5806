package builtin

import (
	"context"

	"github.com/dexora-ai/dexora/pkg/dashboard"
	"github.com/dexora-ai/dexora/pkg/tools"
)

func dashboardHandler(component, summary string, build func(dashboard.Query) any) tools.ToolHandler {
	return tools.NewHandler(func(context.Context, noArgs) (*tools.ToolCallResult, error) {
		return rendered(component, summary, build(dashboard.Query{})), nil
	})
}

func (t *EnterpriseTools) hrDashboardTool() tools.Tool {
	return tools.Tool{
		Name:        tools.NameHRDashboard,
		Description: "Activate this tool when users want to view HR data, employee information, staff directory, workforce analytics, or any HR-related requests. Responds to phrases like 'show HR dashboard', 'view employee data', 'staff information', 'HR analytics', 'employee directory', 'personnel records', or 'workforce management'.",
		Parameters:  tools.MustSchemaFor[noArgs](),
		Examples:    []string{"show HR dashboard", "view employee data", "staff information", "HR analytics", "employee directory", "personnel records", "workforce management"},
		Handler: dashboardHandler(ComponentHRDashboard, "Displaying HR dashboard with employee data and analytics",
			func(q dashboard.Query) any { return dashboard.HR(q) }),
	}
}

func (t *EnterpriseTools) salesDashboardTool() tools.Tool {
	return tools.Tool{
		Name:        tools.NameSalesDashboard,
		Description: "Activate this tool when users want to view sales performance, revenue data, sales analytics, sales metrics, team performance, or any sales-related requests. Responds to phrases like 'show sales dashboard', 'sales performance', 'revenue data', 'sales analytics', 'track sales', 'sales metrics', or 'sales reporting'.",
		Parameters:  tools.MustSchemaFor[noArgs](),
		Examples:    []string{"show sales dashboard", "sales performance", "revenue data", "sales analytics", "track sales", "sales metrics", "sales reporting"},
		Handler: dashboardHandler(ComponentSalesDashboard, "Displaying sales dashboard with performance metrics and revenue data",
			func(q dashboard.Query) any { return dashboard.Sales(q) }),
	}
}

func (t *EnterpriseTools) marketingDashboardTool() tools.Tool {
	return tools.Tool{
		Name:        tools.NameMarketingDashboard,
		Description: "Activate this tool when users want to view marketing performance, campaign analytics, marketing metrics, ROI data, or any marketing-related requests. Responds to phrases like 'show marketing dashboard', 'campaign performance', 'marketing analytics', 'track campaigns', 'marketing ROI', 'campaign data', or 'marketing metrics'.",
		Parameters:  tools.MustSchemaFor[noArgs](),
		Examples:    []string{"show marketing dashboard", "campaign performance", "marketing analytics", "track campaigns", "marketing ROI", "campaign data", "marketing metrics"},
		Handler: dashboardHandler(ComponentMarketingDashboard, "Displaying marketing dashboard with campaign performance and analytics",
			func(q dashboard.Query) any { return dashboard.Marketing(q) }),
	}
}

func (t *EnterpriseTools) financeDashboardTool() tools.Tool {
	return tools.Tool{
		Name:        tools.NameFinanceDashboard,
		Description: "Activate this tool when users want to view financial data, accounting records, budget analysis, income/expense tracking, or any finance-related requests. Responds to phrases like 'show finance dashboard', 'financial data', 'accounting overview', 'track expenses', 'financial analytics', 'accounting records', 'budget analysis', or 'financial reporting'.",
		Parameters:  tools.MustSchemaFor[noArgs](),
		Examples:    []string{"show finance dashboard", "financial data", "accounting overview", "track expenses", "financial analytics", "accounting records", "budget analysis", "financial reporting"},
		Handler: dashboardHandler(ComponentFinanceDashboard, "Displaying finance dashboard with accounting data and financial analytics",
			func(q dashboard.Query) any { return dashboard.Finance(q) }),
	}
}

func (t *EnterpriseTools) engineeringDashboardTool() tools.Tool {
	return tools.Tool{
		Name:        tools.NameEngineeringDashboard,
		Description: "Activate this tool when users want to view engineering data, code snippets, project management, development metrics, or any engineering/development-related requests. Responds to phrases like 'show engineering dashboard', 'code snippets', 'development projects', 'engineering metrics', 'code library', 'project tracking', 'development analytics', or 'engineering tools'.",
		Parameters:  tools.MustSchemaFor[noArgs](),
		Examples:    []string{"show engineering dashboard", "code snippets", "development projects", "engineering metrics", "code library", "project tracking", "development analytics", "engineering tools"},
		Handler: dashboardHandler(ComponentEngineeringDashboard, "Displaying engineering dashboard with code snippets and project data",
			func(q dashboard.Query) any { return dashboard.Engineering(q) }),
	}
}
