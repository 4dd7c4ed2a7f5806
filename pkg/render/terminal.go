package render

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/docker/go-units"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dexora-ai/dexora/pkg/appointment"
	"github.com/dexora-ai/dexora/pkg/dashboard"
	"github.com/dexora-ai/dexora/pkg/documents"
	"github.com/dexora-ai/dexora/pkg/filesearch"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	statStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#43BF6D"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)

	printer = message.NewPrinter(language.English)
)

func money(amount int64) string {
	if amount < 0 {
		return printer.Sprintf("-$%d", -amount)
	}
	return printer.Sprintf("$%d", amount)
}

func grid(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(mutedStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...).
		String()
}

func stats(pairs ...string) string {
	parts := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, pairs[i]+" "+statStyle.Render(pairs[i+1]))
	}
	return strings.Join(parts, mutedStyle.Render("  ·  "))
}

func section(title string, blocks ...string) string {
	return lipgloss.JoinVertical(lipgloss.Left, append([]string{titleStyle.Render(title)}, blocks...)...)
}

func renderHR(props any) (string, error) {
	view, err := decodeProps[dashboard.HRView](props)
	if err != nil {
		return "", err
	}

	rows := make([][]string, 0, len(view.Employees))
	for _, e := range view.Employees {
		rows = append(rows, []string{e.Name, e.Position, e.Department, e.Email, string(e.Status)})
	}
	return section("HR Dashboard",
		stats(
			"Employees", fmt.Sprint(view.Stats.TotalEmployees),
			"Active", fmt.Sprint(view.Stats.Active),
			"On leave", fmt.Sprint(view.Stats.OnLeave),
			"Departments", fmt.Sprint(view.Stats.Departments),
		),
		grid([]string{"Name", "Position", "Department", "Email", "Status"}, rows),
	), nil
}

func renderSales(props any) (string, error) {
	view, err := decodeProps[dashboard.SalesView](props)
	if err != nil {
		return "", err
	}

	rows := make([][]string, 0, len(view.Sales))
	for _, s := range view.Sales {
		rows = append(rows, []string{s.Salesperson, s.Customer, s.Product, money(s.Amount), string(s.Status), s.Region})
	}
	return section("Sales Dashboard",
		stats(
			"Revenue", money(view.Stats.TotalRevenue),
			"Commission", money(view.Stats.TotalCommission),
			"Deals won", fmt.Sprint(view.Stats.DealsWon),
			"Win rate", fmt.Sprintf("%.0f%%", view.Stats.WinRate),
		),
		grid([]string{"Salesperson", "Customer", "Product", "Amount", "Status", "Region"}, rows),
	), nil
}

func renderMarketing(props any) (string, error) {
	view, err := decodeProps[dashboard.MarketingView](props)
	if err != nil {
		return "", err
	}

	rows := make([][]string, 0, len(view.Campaigns))
	for _, c := range view.Campaigns {
		rows = append(rows, []string{c.Name, c.Channel, string(c.Status), money(c.Budget), money(c.Spent), fmt.Sprint(c.Conversions), fmt.Sprintf("%.1fx", c.ROI)})
	}
	return section("Marketing Dashboard",
		stats(
			"Budget", money(view.Stats.TotalBudget),
			"Spent", money(view.Stats.TotalSpent),
			"Conversions", printer.Sprintf("%d", view.Stats.TotalConversions),
			"Avg ROI", fmt.Sprintf("%.1fx", view.Stats.AverageROI),
		),
		grid([]string{"Campaign", "Channel", "Status", "Budget", "Spent", "Conversions", "ROI"}, rows),
	), nil
}

func renderFinance(props any) (string, error) {
	view, err := decodeProps[dashboard.FinanceView](props)
	if err != nil {
		return "", err
	}

	rows := make([][]string, 0, len(view.Records))
	for _, r := range view.Records {
		rows = append(rows, []string{r.Date, r.Description, r.Category, money(r.Amount), string(r.Status), r.Reference})
	}
	return section("Finance Dashboard",
		stats(
			"Income", money(view.Stats.TotalIncome),
			"Expenses", money(view.Stats.TotalExpenses),
			"Net", money(view.Stats.NetIncome),
			"Pending", money(view.Stats.PendingAmount),
		),
		grid([]string{"Date", "Description", "Category", "Amount", "Status", "Reference"}, rows),
	), nil
}

func renderEngineering(props any) (string, error) {
	view, err := decodeProps[dashboard.EngineeringView](props)
	if err != nil {
		return "", err
	}

	snippetRows := make([][]string, 0, len(view.Snippets))
	for _, s := range view.Snippets {
		snippetRows = append(snippetRows, []string{s.Title, s.Language, string(s.Category), s.Author, strings.Join(s.Tags, ", ")})
	}
	projectRows := make([][]string, 0, len(view.Projects))
	for _, p := range view.Projects {
		projectRows = append(projectRows, []string{p.Name, string(p.Status), fmt.Sprintf("%d%%", p.Progress), p.Deadline, p.Priority})
	}
	return section("Engineering Dashboard",
		stats(
			"Snippets", fmt.Sprint(view.Stats.Snippets),
			"Active projects", fmt.Sprint(view.Stats.ActiveProjects),
			"Completed", fmt.Sprint(view.Stats.CompletedProjects),
			"Avg progress", fmt.Sprintf("%d%%", view.Stats.AverageProgress),
		),
		grid([]string{"Snippet", "Language", "Category", "Author", "Tags"}, snippetRows),
		grid([]string{"Project", "Status", "Progress", "Deadline", "Priority"}, projectRows),
	), nil
}

func renderDropFiles(props any) (string, error) {
	catalog, err := decodeProps[documents.Catalog](props)
	if err != nil {
		return "", err
	}

	rows := make([][]string, 0, len(catalog.DocumentTypes))
	for _, dt := range catalog.DocumentTypes {
		rows = append(rows, []string{dt.Name, strings.Join(dt.Examples, ", ")})
	}
	return section("Upload Enterprise Documents",
		grid([]string{"Document type", "Examples"}, rows),
		mutedStyle.Render(fmt.Sprintf("Accepted: %s, up to %s per file",
			strings.Join(catalog.AcceptedExtensions, " "), units.HumanSize(float64(catalog.MaxUploadSize)))),
	), nil
}

func renderAppointment(props any) (string, error) {
	form, err := decodeProps[appointment.Form](props)
	if err != nil {
		return "", err
	}

	urgencies := make([]string, len(form.Urgencies))
	for i, u := range form.Urgencies {
		urgencies[i] = string(u)
	}
	contacts := make([]string, len(form.ContactMethods))
	for i, c := range form.ContactMethods {
		contacts[i] = string(c)
	}

	slots := "none"
	if n := len(form.TimeSlots); n > 0 {
		slots = form.TimeSlots[0] + " to " + form.TimeSlots[n-1] + ", every 30 minutes"
	}

	return section("Schedule an Appointment",
		grid([]string{"Field", "Options"}, [][]string{
			{"Doctor", strings.Join(form.DoctorTypes, ", ")},
			{"Time", slots},
			{"Urgency", strings.Join(urgencies, ", ") + " (default " + string(form.Defaults.Urgency) + ")"},
			{"Contact", strings.Join(contacts, ", ") + " (default " + string(form.Defaults.ContactMethod) + ")"},
		}),
	), nil
}

func renderFileSearch(props any) (string, error) {
	result, err := decodeProps[filesearch.Result](props)
	if err != nil {
		return "", err
	}

	rows := make([][]string, 0, len(result.Results))
	for _, f := range result.Results {
		rows = append(rows, []string{f.Name, f.Type, units.HumanSize(float64(f.Size)), f.Category, f.UploadDate, fmt.Sprintf("%d%%", f.RelevanceScore)})
	}

	blocks := []string{
		mutedStyle.Render(result.Summary()),
		grid([]string{"File", "Type", "Size", "Category", "Uploaded", "Relevance"}, rows),
	}
	if len(result.Results) > 0 {
		top := result.Results[0]
		blocks = append(blocks, "Top match citations:")
		for _, c := range top.Citations {
			blocks = append(blocks, mutedStyle.Render("  • "+c))
		}
	}
	return section("File Search", blocks...), nil
}
