package dashboard

type SaleStatus string

const (
	SaleClosedWon  SaleStatus = "Closed Won"
	SaleClosedLost SaleStatus = "Closed Lost"
	SaleInProgress SaleStatus = "In Progress"
	SaleQualified  SaleStatus = "Qualified"
)

type Sale struct {
	ID          int        `json:"id"`
	Salesperson string     `json:"salesperson"`
	Customer    string     `json:"customer"`
	Product     string     `json:"product"`
	Amount      int64      `json:"amount"`
	Status      SaleStatus `json:"status"`
	Date        string     `json:"date"`
	Region      string     `json:"region"`
	Commission  int64      `json:"commission"`
}

var sales = []Sale{
	{ID: 1, Salesperson: "Mike Chen", Customer: "Acme Corp", Product: "Enterprise License", Amount: 50000, Status: SaleClosedWon, Date: "2024-01-15", Region: "West", Commission: 5000},
	{ID: 2, Salesperson: "Lisa Wang", Customer: "Tech Solutions Inc", Product: "Professional Suite", Amount: 25000, Status: SaleInProgress, Date: "2024-01-20", Region: "East", Commission: 2500},
	{ID: 3, Salesperson: "David Rodriguez", Customer: "Global Industries", Product: "Basic Package", Amount: 10000, Status: SaleQualified, Date: "2024-01-22", Region: "South", Commission: 1000},
	{ID: 4, Salesperson: "Jenny Kim", Customer: "StartupXYZ", Product: "Starter Plan", Amount: 5000, Status: SaleClosedLost, Date: "2024-01-18", Region: "North", Commission: 0},
	{ID: 5, Salesperson: "Alex Thompson", Customer: "MegaCorp Ltd", Product: "Enterprise License", Amount: 75000, Status: SaleClosedWon, Date: "2024-01-25", Region: "West", Commission: 7500},
}

type SalesStats struct {
	// TotalRevenue and TotalCommission only count Closed Won deals.
	TotalRevenue    int64   `json:"totalRevenue"`
	TotalCommission int64   `json:"totalCommission"`
	DealsWon        int     `json:"dealsWon"`
	WinRate         float64 `json:"winRate"`
}

type SalesView struct {
	Sales   []Sale         `json:"sales"`
	Stats   SalesStats     `json:"stats"`
	Filters []SelectFilter `json:"filters"`
}

func Sales(q Query) SalesView {
	view := SalesView{
		Sales: []Sale{},
		Filters: []SelectFilter{
			{Name: "region", Label: "Region", Options: withAll("West", "East", "South", "North")},
			{Name: "status", Label: "Status", Options: withAll(string(SaleClosedWon), string(SaleClosedLost), string(SaleInProgress), string(SaleQualified))},
		},
	}

	for _, s := range sales {
		if s.Status == SaleClosedWon {
			view.Stats.TotalRevenue += s.Amount
			view.Stats.TotalCommission += s.Commission
			view.Stats.DealsWon++
		}

		if q.matchesSearch(s.Salesperson, s.Customer, s.Product) &&
			q.matchesSelect("region", s.Region) &&
			q.matchesSelect("status", string(s.Status)) {
			view.Sales = append(view.Sales, s)
		}
	}
	view.Stats.WinRate = round1(float64(view.Stats.DealsWon) / float64(len(sales)) * 100)

	return view
}
