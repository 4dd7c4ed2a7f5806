package tools

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrUnknownTool      = errors.New("unknown tool")
	ErrInvalidArguments = errors.New("invalid tool arguments")
	ErrDuplicateTool    = errors.New("tool already registered")
)

// Name identifies one of the tools the assistant knows how to render.
type Name string

const (
	NameUploadEnterpriseDocuments Name = "uploadEnterpriseDocuments"
	NameHRDashboard               Name = "hrDashboard"
	NameSalesDashboard            Name = "salesDashboard"
	NameMarketingDashboard        Name = "marketingDashboard"
	NameFinanceDashboard          Name = "financeDashboard"
	NameEngineeringDashboard      Name = "engineeringDashboard"
	NameAppointmentScheduling     Name = "appointmentScheduling"
	NameSearchFiles               Name = "searchFiles"
)

var knownNames = []Name{
	NameUploadEnterpriseDocuments,
	NameHRDashboard,
	NameSalesDashboard,
	NameMarketingDashboard,
	NameFinanceDashboard,
	NameEngineeringDashboard,
	NameAppointmentScheduling,
	NameSearchFiles,
}

// KnownNames returns every tool name in declaration order.
func KnownNames() []Name {
	return slices.Clone(knownNames)
}

func (n Name) Valid() bool {
	return slices.Contains(knownNames, n)
}

func (n Name) String() string {
	return string(n)
}

// ParseName maps a model-chosen tool name onto the enum. Matching is exact.
func ParseName(s string) (Name, error) {
	n := Name(s)
	if !n.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownTool, s)
	}
	return n, nil
}
