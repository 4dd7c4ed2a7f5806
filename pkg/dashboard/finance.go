package dashboard

type RecordType string

const (
	RecordIncome  RecordType = "Income"
	RecordExpense RecordType = "Expense"
)

type RecordStatus string

const (
	RecordApproved RecordStatus = "Approved"
	RecordPending  RecordStatus = "Pending"
	RecordRejected RecordStatus = "Rejected"
)

// FinancialRecord amounts are signed: expenses are negative.
type FinancialRecord struct {
	ID          int          `json:"id"`
	Date        string       `json:"date"`
	Description string       `json:"description"`
	Category    string       `json:"category"`
	Type        RecordType   `json:"type"`
	Amount      int64        `json:"amount"`
	Account     string       `json:"account"`
	Status      RecordStatus `json:"status"`
	Reference   string       `json:"reference"`
}

var financialRecords = []FinancialRecord{
	{ID: 1, Date: "2024-01-15", Description: "Q1 Product Sales Revenue", Category: "Revenue", Type: RecordIncome, Amount: 125000, Account: "Sales Revenue", Status: RecordApproved, Reference: "INV-2024-001"},
	{ID: 2, Date: "2024-01-20", Description: "Office Rent Payment", Category: "Operational", Type: RecordExpense, Amount: -8500, Account: "Rent Expense", Status: RecordApproved, Reference: "EXP-2024-002"},
	{ID: 3, Date: "2024-01-22", Description: "Marketing Campaign Investment", Category: "Marketing", Type: RecordExpense, Amount: -15000, Account: "Marketing Expense", Status: RecordApproved, Reference: "EXP-2024-003"},
	{ID: 4, Date: "2024-01-25", Description: "Software Licensing Revenue", Category: "Revenue", Type: RecordIncome, Amount: 45000, Account: "License Revenue", Status: RecordPending, Reference: "INV-2024-004"},
	{ID: 5, Date: "2024-01-28", Description: "Employee Salaries", Category: "Payroll", Type: RecordExpense, Amount: -85000, Account: "Payroll Expense", Status: RecordApproved, Reference: "PAY-2024-005"},
	{ID: 6, Date: "2024-01-30", Description: "Equipment Purchase", Category: "Assets", Type: RecordExpense, Amount: -12000, Account: "Equipment", Status: RecordApproved, Reference: "EXP-2024-006"},
}

type FinanceStats struct {
	// Income and expenses only count approved records.
	TotalIncome   int64 `json:"totalIncome"`
	TotalExpenses int64 `json:"totalExpenses"`
	NetIncome     int64 `json:"netIncome"`
	PendingAmount int64 `json:"pendingAmount"`
}

type FinanceView struct {
	Records []FinancialRecord `json:"records"`
	Stats   FinanceStats      `json:"stats"`
	Filters []SelectFilter    `json:"filters"`
}

func Finance(q Query) FinanceView {
	view := FinanceView{
		Records: []FinancialRecord{},
		Filters: []SelectFilter{
			{Name: "type", Label: "Type", Options: withAll(string(RecordIncome), string(RecordExpense))},
			{Name: "category", Label: "Category", Options: withAll("Revenue", "Operational", "Marketing", "Payroll", "Assets")},
			{Name: "status", Label: "Status", Options: withAll(string(RecordApproved), string(RecordPending), string(RecordRejected))},
		},
	}

	for _, r := range financialRecords {
		switch {
		case r.Status == RecordApproved && r.Type == RecordIncome:
			view.Stats.TotalIncome += r.Amount
		case r.Status == RecordApproved && r.Type == RecordExpense:
			view.Stats.TotalExpenses += abs(r.Amount)
		case r.Status == RecordPending:
			view.Stats.PendingAmount += abs(r.Amount)
		}

		if q.matchesSearch(r.Description, r.Category, r.Reference) &&
			q.matchesSelect("type", string(r.Type)) &&
			q.matchesSelect("category", r.Category) &&
			q.matchesSelect("status", string(r.Status)) {
			view.Records = append(view.Records, r)
		}
	}
	view.Stats.NetIncome = view.Stats.TotalIncome - view.Stats.TotalExpenses

	return view
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
