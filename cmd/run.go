package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pivolan/results_analyzer/analysis"
	"github.com/pivolan/results_analyzer/domain/models"
	"github.com/pivolan/results_analyzer/report"
)

var planFile string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run an analysis plan over the results file and write its figures",
	Long: `run prints the columns and row count of the results file, runs the analysis
plan (a YAML list of filters and steps, or the built-in line plot of MCC by
METHOD when no plan is configured) and writes every figure at the end.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), "running...")

		var plan *models.Plan
		path := cfg.PlanFile
		if cmd.Flags().Changed("plan") {
			path = planFile
		}
		if path != "" {
			p, err := analysis.LoadPlan(path)
			if err != nil {
				return err
			}
			plan = p
		} else {
			plan = analysis.DefaultPlan()
		}

		env, err := prepare(cmd, true)
		if err != nil {
			return err
		}
		if err := env.session.Run(plan); err != nil {
			return err
		}
		if err := env.finish(); err != nil {
			return err
		}
		fmt.Fprintln(env.out, "finished.")
		return nil
	},
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print the columns and row count of the (filtered) results file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := prepare(cmd, false)
		if err != nil {
			return err
		}
		report.Banner(env.out, env.session.Table())
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&planFile, "plan", "", "analysis plan file (overrides config)")
	rootCmd.AddCommand(runCmd, infoCmd)
}
