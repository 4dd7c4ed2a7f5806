// Package dashboard holds the fixture datasets behind the department
// dashboards along with their filters and summary statistics.
package dashboard

import (
	"errors"
	"fmt"
	"strings"
)

// All is the filter value that disables a select filter.
const All = "All"

var ErrUnknownDashboard = errors.New("unknown dashboard")

// Kind names a dashboard.
type Kind string

const (
	KindHR          Kind = "hr"
	KindSales       Kind = "sales"
	KindMarketing   Kind = "marketing"
	KindFinance     Kind = "finance"
	KindEngineering Kind = "engineering"
)

var kinds = []Kind{KindHR, KindSales, KindMarketing, KindFinance, KindEngineering}

func Kinds() []Kind {
	return append([]Kind(nil), kinds...)
}

func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDashboard, s)
}

// SelectFilter describes one drop-down filter a dashboard offers.
type SelectFilter struct {
	Name    string   `json:"name"`
	Label   string   `json:"label"`
	Options []string `json:"options"`
}

// Query carries the search term and select filter values. Missing or "All"
// selections match everything.
type Query struct {
	Search  string            `json:"search,omitempty"`
	Selects map[string]string `json:"selects,omitempty"`
}

func (q Query) selected(name string) string {
	v := strings.TrimSpace(q.Selects[name])
	if v == "" {
		return All
	}
	return v
}

func (q Query) matchesSelect(name, value string) bool {
	sel := q.selected(name)
	return sel == All || sel == value
}

// matchesSearch reports whether any of fields contains the search term,
// ignoring case.
func (q Query) matchesSearch(fields ...string) bool {
	term := strings.ToLower(strings.TrimSpace(q.Search))
	if term == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// Build returns the view of the given dashboard with q applied.
func Build(kind Kind, q Query) (any, error) {
	switch kind {
	case KindHR:
		return HR(q), nil
	case KindSales:
		return Sales(q), nil
	case KindMarketing:
		return Marketing(q), nil
	case KindFinance:
		return Finance(q), nil
	case KindEngineering:
		return Engineering(q), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDashboard, kind)
	}
}

func withAll(options ...string) []string {
	return append([]string{All}, options...)
}

func round1(v float64) float64 {
	return float64(int64(v*10+0.5)) / 10
}
