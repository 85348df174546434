package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/pivolan/results_analyzer/domain/models"
)

// stepCommand runs one analysis step built from the command line arguments.
func stepCommand(use, short string, args cobra.PositionalArgs, build func(cmd *cobra.Command, args []string) models.Step) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := prepare(cmd, false)
			if err != nil {
				return err
			}
			if err := env.session.RunStep(build(cmd, args)); err != nil {
				return err
			}
			return env.finish()
		},
	}
}

func splitColumns(arg string) []string {
	var columns []string
	for _, c := range strings.Split(arg, ",") {
		if c = strings.TrimSpace(c); c != "" {
			columns = append(columns, c)
		}
	}
	return columns
}

// groupedStep is a step over "<by> <output>" arguments, by being a
// comma separated column list.
func groupedStep(kind models.StepKind) func(cmd *cobra.Command, args []string) models.Step {
	return func(cmd *cobra.Command, args []string) models.Step {
		step := models.Step{Kind: kind, By: splitColumns(args[0]), Output: args[1]}
		if f := cmd.Flags().Lookup("ymin"); f != nil && f.Changed {
			v, _ := cmd.Flags().GetFloat64("ymin")
			step.YMin = &v
		}
		if f := cmd.Flags().Lookup("ymax"); f != nil && f.Changed {
			v, _ := cmd.Flags().GetFloat64("ymax")
			step.YMax = &v
		}
		return step
	}
}

func withLimits(cmd *cobra.Command) *cobra.Command {
	cmd.Flags().Float64("ymin", 0, "lower y limit")
	cmd.Flags().Float64("ymax", 0, "upper y limit")
	return cmd
}

func init() {
	grouped := cobra.ExactArgs(2)
	rootCmd.AddCommand(
		withLimits(stepCommand("boxes <by> <output>", "Box plot of output per group, ordered by mean", grouped, groupedStep(models.StepBoxes))),
		withLimits(stepCommand("lines <by> <output>", "Means and standard deviations per group, ordered by mean", grouped, groupedStep(models.StepLines))),
		withLimits(stepCommand(string(models.StepLinesNums)+" <by> <output>", "Means and standard deviations over a numeric group column", grouped, groupedStep(models.StepLinesNums))),
		withLimits(stepCommand("bars <by> <output>", "Bar plot of group means, ordered by mean", grouped, groupedStep(models.StepBars))),
		stepCommand("histograms <by> <output>", "One histogram of output per group", grouped, groupedStep(models.StepHistograms)),
		stepCommand("summary <by> <output>", "Table of group statistics", grouped, groupedStep(models.StepSummary)),
		stepCommand("kruskal <by> <output>", "Kruskal-Wallis test across groups", grouped, groupedStep(models.StepKruskal)),
		stepCommand("wilcoxon <by> <output>", "Pairwise Wilcoxon signed-rank tests between groups", grouped, groupedStep(models.StepWilcoxon)),
		stepCommand("scatter <x> <y>", "Scatter plot of two numeric columns", cobra.ExactArgs(2),
			func(cmd *cobra.Command, args []string) models.Step {
				return models.Step{Kind: models.StepScatter, X: args[0], Y: args[1]}
			}),
		stepCommand("heatmap <x> <y> <output>", "Mean of output for every pair of x and y values", cobra.ExactArgs(3),
			func(cmd *cobra.Command, args []string) models.Step {
				return models.Step{Kind: models.StepHeatmap, X: args[0], Y: args[1], Output: args[2]}
			}),
		stepCommand("averages <column>...", "Mean of each column", cobra.MinimumNArgs(1),
			func(cmd *cobra.Command, args []string) models.Step {
				return models.Step{Kind: models.StepAverages, Columns: args}
			}),
		stepCommand("correlations <column> <column>...", "Pearson correlation of every pair of columns", cobra.MinimumNArgs(2),
			func(cmd *cobra.Command, args []string) models.Step {
				return models.Step{Kind: models.StepCorrelations, Columns: args}
			}),
	)
}
