package dashboard

type EmployeeStatus string

const (
	EmployeeActive   EmployeeStatus = "Active"
	EmployeeOnLeave  EmployeeStatus = "On Leave"
	EmployeeInactive EmployeeStatus = "Inactive"
)

type Employee struct {
	ID         int            `json:"id"`
	Name       string         `json:"name"`
	Position   string         `json:"position"`
	Department string         `json:"department"`
	Email      string         `json:"email"`
	Phone      string         `json:"phone"`
	HireDate   string         `json:"hireDate"`
	Status     EmployeeStatus `json:"status"`
	Salary     string         `json:"salary"`
}

var employees = []Employee{
	{ID: 1, Name: "John Smith", Position: "Software Engineer", Department: "Engineering", Email: "john.smith@company.com", Phone: "+1 (555) 0123", HireDate: "2023-01-15", Status: EmployeeActive, Salary: "$95,000"},
	{ID: 2, Name: "Sarah Johnson", Position: "HR Manager", Department: "Human Resources", Email: "sarah.johnson@company.com", Phone: "+1 (555) 0124", HireDate: "2022-06-10", Status: EmployeeActive, Salary: "$85,000"},
	{ID: 3, Name: "Mike Chen", Position: "Sales Representative", Department: "Sales", Email: "mike.chen@company.com", Phone: "+1 (555) 0125", HireDate: "2023-03-20", Status: EmployeeActive, Salary: "$75,000"},
	{ID: 4, Name: "Emma Davis", Position: "Marketing Specialist", Department: "Marketing", Email: "emma.davis@company.com", Phone: "+1 (555) 0126", HireDate: "2023-07-01", Status: EmployeeOnLeave, Salary: "$70,000"},
	{ID: 5, Name: "Robert Wilson", Position: "Financial Analyst", Department: "Finance", Email: "robert.wilson@company.com", Phone: "+1 (555) 0127", HireDate: "2022-11-05", Status: EmployeeActive, Salary: "$80,000"},
}

type HRStats struct {
	TotalEmployees int `json:"totalEmployees"`
	Active         int `json:"active"`
	OnLeave        int `json:"onLeave"`
	Departments    int `json:"departments"`
}

type HRView struct {
	Employees []Employee     `json:"employees"`
	Stats     HRStats        `json:"stats"`
	Filters   []SelectFilter `json:"filters"`
}

// HR builds the HR dashboard. Stats always describe the full dataset.
func HR(q Query) HRView {
	view := HRView{
		Employees: []Employee{},
		Filters: []SelectFilter{
			{Name: "department", Label: "Department", Options: withAll("Engineering", "Human Resources", "Sales", "Marketing", "Finance")},
		},
	}

	departments := map[string]struct{}{}
	for _, e := range employees {
		departments[e.Department] = struct{}{}
		switch e.Status {
		case EmployeeActive:
			view.Stats.Active++
		case EmployeeOnLeave:
			view.Stats.OnLeave++
		}

		if q.matchesSearch(e.Name, e.Position, e.Email) && q.matchesSelect("department", e.Department) {
			view.Employees = append(view.Employees, e)
		}
	}
	view.Stats.TotalEmployees = len(employees)
	view.Stats.Departments = len(departments)

	return view
}
