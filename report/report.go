// Package report prints analysis results to the console.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/pivolan/results_analyzer/domain/models"
	"github.com/pivolan/results_analyzer/results"
	"github.com/pivolan/results_analyzer/stats"
)

// Banner prints the column names and row count of t.
func Banner(w io.Writer, t *results.Table) {
	fmt.Fprintln(w, "COLUMNS:", t.Header())
	fmt.Fprintln(w, "#ROWS:", t.Len())
}

func Filter(w io.Writer, matches []models.Match) {
	fmt.Fprintf(w, "*** FILTER: %v ***\n", matches)
}

func Average(w io.Writer, column string, mean float64) {
	fmt.Fprintf(w, "%10s %.3f\n", column, mean)
}

func Correlation(w io.Writer, r float64, column1, column2 string) {
	fmt.Fprintf(w, "%5.2f %10s %10s\n", r, column1, column2)
}

// Kruskal prints a Kruskal-Wallis result and whether it is significant at alpha.
func Kruskal(w io.Writer, by []string, out string, result stats.TestResult, alpha float64) {
	fmt.Fprintln(w, strings.Join(by, ","), "vs", out)
	verdict := "=> Population means are different"
	if result.PValue > alpha {
		verdict = "=> No significant difference"
	}
	fmt.Fprintf(w, "Kruskal-Wallis p = %e %s\n", result.PValue, verdict)
}

// Wilcoxon prints one pairwise comparison, flagged with * when significant.
func Wilcoxon(w io.Writer, significant bool, name1, name2 string, p float64) {
	flag := " "
	if significant {
		flag = "*"
	}
	fmt.Fprintf(w, "%s %s - %s :   %e\n", flag, name1, name2, p)
}

// GenerateTable renders group summaries in the order given.
func GenerateTable(groups []stats.Ordered) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Group", "N", "Mean", "Std", "Median", "Min", "Max"})
	for _, g := range groups {
		t.AppendRow(table.Row{
			g.Label,
			g.Count,
			formatFloat(g.Mean),
			formatFloat(g.Std),
			formatFloat(g.Median),
			formatFloat(g.Min),
			formatFloat(g.Max),
		})
	}
	t.SetStyle(table.StyleDefault)
	return t.Render()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
