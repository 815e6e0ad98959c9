package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"job-charts/internal/features/charts"

	"github.com/spf13/cobra"
)

var chartsCmd = &cobra.Command{
	Use:   "charts",
	Short: "List the charts this tool renders",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tKIND\tFIELDS\tTITLE")
		for _, spec := range charts.Specs() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", spec.Name, spec.Kind, strings.Join(spec.Fields(), ","), spec.Title)
		}
		return w.Flush()
	},
}
