package root

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dexora-ai/dexora/pkg/dashboard"
	"github.com/dexora-ai/dexora/pkg/render"
	"github.com/dexora-ai/dexora/pkg/tools"
)

var dashboardTools = map[dashboard.Kind]tools.Name{
	dashboard.KindHR:          tools.NameHRDashboard,
	dashboard.KindSales:       tools.NameSalesDashboard,
	dashboard.KindMarketing:   tools.NameMarketingDashboard,
	dashboard.KindFinance:     tools.NameFinanceDashboard,
	dashboard.KindEngineering: tools.NameEngineeringDashboard,
}

type dashboardFlags struct {
	search     string
	filters    []string
	outputJSON bool
}

func newDashboardCmd() *cobra.Command {
	var flags dashboardFlags

	kinds := make([]string, 0, len(dashboard.Kinds()))
	for _, k := range dashboard.Kinds() {
		kinds = append(kinds, string(k))
	}

	cmd := &cobra.Command{
		Use:       "dashboard <" + strings.Join(kinds, "|") + ">",
		Short:     "Render a department dashboard",
		Example:   "  dexora dashboard sales --filter region=West --filter status=\"Closed Won\"\n  dexora dashboard engineering --search docker",
		GroupID:   "advanced",
		Args:      cobra.ExactArgs(1),
		ValidArgs: kinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := dashboard.ParseKind(args[0])
			if err != nil {
				return err
			}

			q := dashboard.Query{Search: flags.search, Selects: map[string]string{}}
			for _, f := range flags.filters {
				name, value, ok := strings.Cut(f, "=")
				if !ok {
					return fmt.Errorf("invalid filter %q, expected name=value", f)
				}
				q.Selects[strings.TrimSpace(name)] = value
			}

			view, err := dashboard.Build(kind, q)
			if err != nil {
				return err
			}

			if flags.outputJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(view)
			}

			rendered, err := render.DefaultComponents().Render(render.DisplayUnit{
				Kind:     render.UnitComponent,
				ToolName: dashboardTools[kind],
				Props:    view,
				Done:     true,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.search, "search", "s", "", "Free-text search")
	cmd.Flags().StringArrayVarP(&flags.filters, "filter", "f", nil, "Select filter as name=value, repeatable")
	cmd.Flags().BoolVar(&flags.outputJSON, "json", false, "Print the view as JSON")

	return cmd
}
