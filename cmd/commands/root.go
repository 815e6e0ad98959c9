package commands

// Root command for the cobra CLI.
// Config flags are persistent so every subcommand accepts them.

import (
	"job-charts/internal/infra/config"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "job-charts",
	Short: "Render data analyst job market charts",
	Long: `job-charts turns job posting query results into PNG charts:
top paying jobs, most demanded skills, highest paying skills and optimal skills.
Data comes from a Postgres/libsql database, CSV/XLSX files, or built-in sample tables.`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// onlyCharts backs the --only flag of render and publish
var onlyCharts []string

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	config.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(publishCmd)
	rootCmd.AddCommand(chartsCmd)
}
