// Package analysis runs the plots, reports and tests over a loaded results
// table.
package analysis

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/pivolan/results_analyzer/domain/models"
	"github.com/pivolan/results_analyzer/plot"
	"github.com/pivolan/results_analyzer/report"
	"github.com/pivolan/results_analyzer/results"
	"github.com/pivolan/results_analyzer/stats"
)

// Limits are the y-limits of a plot.
type Limits struct {
	Min, Max float64
}

var (
	DefaultLimits = Limits{Min: 0.5, Max: 1}
	NumsLimits    = Limits{Min: 0, Max: 1}
)

// Session holds the current table and collects figures and console output.
// Filter replaces the current table with the filtered one.
type Session struct {
	table   *results.Table
	gallery *plot.Gallery
	out     io.Writer
	log     *zap.Logger
	alpha   float64
}

func NewSession(table *results.Table, gallery *plot.Gallery, out io.Writer, log *zap.Logger, alpha float64) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{table: table, gallery: gallery, out: out, log: log, alpha: alpha}
}

func (s *Session) Table() *results.Table { return s.table }

// Filter keeps the rows matching any of matches. Successive calls narrow
// the table further.
func (s *Session) Filter(matches ...models.Match) error {
	report.Filter(s.out, matches)
	filtered, err := s.table.Filter(matches...)
	if err != nil {
		return err
	}
	s.log.Info("filter applied",
		zap.Stringers("matches", matches),
		zap.Int("rowsBefore", s.table.Len()),
		zap.Int("rowsAfter", filtered.Len()))
	s.table = filtered
	return nil
}

func (s *Session) ordered(by []string, out string, statistic stats.Statistic) ([]stats.Ordered, error) {
	groups, err := s.table.Group(by, out)
	if err != nil {
		return nil, err
	}
	s.log.Debug("grouped",
		zap.Strings("by", by),
		zap.String("output", out),
		zap.Int("groups", groups.Len()))
	return stats.Order(groups, statistic), nil
}

func figureName(kind string, by []string, out string) string {
	return fmt.Sprintf("%s %s %s", kind, strings.Join(by, results.KeySeparator), out)
}

// Boxes plots one box per group, groups ordered by ascending mean.
func (s *Session) Boxes(by []string, out string, lim Limits) error {
	groups, err := s.ordered(by, out, stats.ByMean)
	if err != nil {
		return err
	}
	labels := make([]string, len(groups))
	boxes := make([]stats.Box, len(groups))
	means := make([]float64, len(groups))
	for i, g := range groups {
		box, err := stats.BoxOf(g.Values)
		if err != nil {
			return fmt.Errorf("group %s: %w", g.Label, err)
		}
		labels[i], boxes[i], means[i] = g.Label, box, g.Mean
	}
	return s.gallery.NewFigure(figureName("boxes", by, out)).
		SetYLabel(out).
		SetYLim(lim.Min, lim.Max).
		SetLabelRotation(90).
		Boxes(labels, boxes, means)
}

// Lines plots group means with std error bars, groups ordered by ascending mean.
func (s *Session) Lines(by []string, out string, lim Limits) error {
	groups, err := s.ordered(by, out, stats.ByMean)
	if err != nil {
		return err
	}
	labels, means, stds := columnsOf(groups)
	return s.gallery.NewFigure(figureName("lines", by, out)).
		SetTitle(strings.Join(by, results.KeySeparator)).
		SetYLabel(out).
		SetYLim(lim.Min, lim.Max).
		SetLabelRotation(45).
		ErrorBars(nil, labels, means, stds)
}

// LinesNums plots group means over the numeric value of their labels. Every
// label must parse as a number.
func (s *Session) LinesNums(by []string, out string, lim Limits) error {
	groups, err := s.ordered(by, out, stats.ByMean)
	if err != nil {
		return err
	}
	type point struct {
		x float64
		g stats.Ordered
	}
	points := make([]point, len(groups))
	for i, g := range groups {
		x, err := strconv.ParseFloat(strings.TrimSpace(g.Label), 64)
		if err != nil {
			return &results.NumericFormatError{Column: strings.Join(by, ","), Row: -1, Value: g.Label, Err: err}
		}
		points[i] = point{x: x, g: g}
	}
	sort.SliceStable(points, func(i, j int) bool { return points[i].x < points[j].x })

	xs := make([]float64, len(points))
	means := make([]float64, len(points))
	stds := make([]float64, len(points))
	for i, p := range points {
		xs[i], means[i], stds[i] = p.x, p.g.Mean, p.g.Std
	}
	return s.gallery.NewFigure(figureName(string(models.StepLinesNums), by, out)).
		SetXLabel(strings.Join(by, results.KeySeparator)).
		SetYLabel(out).
		SetYLim(lim.Min, lim.Max).
		ErrorBars(xs, nil, means, stds)
}

// Bars plots group means as bars with std error bars, ordered by ascending mean.
func (s *Session) Bars(by []string, out string, lim Limits) error {
	groups, err := s.ordered(by, out, stats.ByMean)
	if err != nil {
		return err
	}
	labels, means, stds := columnsOf(groups)
	return s.gallery.NewFigure(figureName("bars", by, out)).
		SetYLabel(out).
		SetYLim(lim.Min, lim.Max).
		SetLabelRotation(90).
		Bars(labels, means, stds)
}

func columnsOf(groups []stats.Ordered) (labels []string, means, stds []float64) {
	labels = make([]string, len(groups))
	means = make([]float64, len(groups))
	stds = make([]float64, len(groups))
	for i, g := range groups {
		labels[i], means[i], stds[i] = g.Label, g.Mean, g.Std
	}
	return labels, means, stds
}

// Scatter plots column1 against column2, titled with their Spearman correlation.
func (s *Session) Scatter(column1, column2 string) error {
	xs, err := s.table.Floats(column1)
	if err != nil {
		return err
	}
	ys, err := s.table.Floats(column2)
	if err != nil {
		return err
	}
	r, err := stats.Spearman(xs, ys)
	if err != nil {
		s.log.Warn("no correlation for scatter", zap.String("x", column1), zap.String("y", column2), zap.Error(err))
		r = math.NaN()
	}
	return s.gallery.NewFigure(fmt.Sprintf("scatter %s %s", column1, column2)).
		SetTitle(fmt.Sprintf("%s vs %s (r=%.2f)", column1, column2, r)).
		SetXLabel(column1).
		SetYLabel(column2).
		Scatter(xs, ys)
}

// Heatmap plots the mean of out for every pair of column1 and column2 values.
// Pairs that never occur are left blank.
func (s *Session) Heatmap(column1, column2, out string) error {
	c1, err := s.table.Column(column1)
	if err != nil {
		return err
	}
	c2, err := s.table.Column(column2)
	if err != nil {
		return err
	}
	values, err := s.table.Floats(out)
	if err != nil {
		return err
	}

	cells := make(map[[2]string][]float64)
	for i := range values {
		key := [2]string{c1[i], c2[i]}
		cells[key] = append(cells[key], values[i])
	}
	xs, ys := heatmapLabels(c1), heatmapLabels(c2)
	grid := make([][]float64, len(ys))
	for yi, y := range ys {
		grid[yi] = make([]float64, len(xs))
		for xi, x := range xs {
			if vs, ok := cells[[2]string{x, y}]; ok {
				grid[yi][xi] = stats.Mean(vs)
			} else {
				grid[yi][xi] = math.NaN()
			}
		}
	}
	return s.gallery.NewFigure(fmt.Sprintf("heatmap %s %s %s", column1, column2, out)).
		SetTitle(out).
		SetXLabel(column1).
		SetYLabel(column2).
		SetLabelRotation(90).
		Heatmap(xs, ys, grid)
}

// heatmapLabels returns the distinct values, integers first in numeric
// order, then the rest in string order.
func heatmapLabels(column []string) []string {
	seen := make(map[string]bool)
	var labels []string
	for _, v := range column {
		if !seen[v] {
			seen[v] = true
			labels = append(labels, v)
		}
	}
	sort.SliceStable(labels, func(i, j int) bool {
		a, aErr := strconv.Atoi(labels[i])
		b, bErr := strconv.Atoi(labels[j])
		switch {
		case aErr == nil && bErr == nil:
			if a != b {
				return a < b
			}
			return labels[i] < labels[j]
		case aErr == nil:
			return true
		case bErr == nil:
			return false
		default:
			return labels[i] < labels[j]
		}
	})
	return labels
}

// Histograms adds one histogram per group, groups ordered by ascending median.
func (s *Session) Histograms(by []string, out string) error {
	groups, err := s.ordered(by, out, stats.ByMedian)
	if err != nil {
		return err
	}
	for _, g := range groups {
		err := s.gallery.NewFigure(fmt.Sprintf("histogram %s %s", g.Label, out)).
			SetTitle(g.Label).
			SetXLabel(out).
			SetYLabel("frequency").
			Histogram(g.Values, plot.DefaultBins)
		if err != nil {
			return err
		}
	}
	return nil
}

// Averages prints the mean of every column.
func (s *Session) Averages(columns []string) error {
	for _, name := range columns {
		values, err := s.table.Floats(name)
		if err != nil {
			return err
		}
		report.Average(s.out, name, stats.Mean(values))
	}
	return nil
}

// Correlations prints the Pearson correlation of every pair of columns once.
func (s *Session) Correlations(columns []string) error {
	values := make([][]float64, len(columns))
	for i, name := range columns {
		v, err := s.table.Floats(name)
		if err != nil {
			return err
		}
		values[i] = v
	}
	for i := range columns {
		for j := 0; j < i; j++ {
			r, err := stats.Pearson(values[i], values[j])
			if err != nil {
				return fmt.Errorf("%s vs %s: %w", columns[i], columns[j], err)
			}
			report.Correlation(s.out, r, columns[i], columns[j])
		}
	}
	return nil
}

// Summary prints a table of group statistics ordered by ascending mean.
func (s *Session) Summary(by []string, out string) error {
	groups, err := s.ordered(by, out, stats.ByMean)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, report.GenerateTable(groups))
	return nil
}

// Kruskal tests whether the groups come from the same distribution.
func (s *Session) Kruskal(by []string, out string) error {
	groups, err := s.table.Group(by, out)
	if err != nil {
		return err
	}
	var samples [][]float64
	for _, b := range groups.Buckets() {
		samples = append(samples, b.Values)
	}
	result, err := stats.Kruskal(samples...)
	if err != nil {
		return fmt.Errorf("kruskal %s vs %s: %w", strings.Join(by, ","), out, err)
	}
	s.log.Debug("kruskal-wallis", zap.Float64("h", result.Statistic), zap.Float64("p", result.PValue))
	report.Kruskal(s.out, by, out, result, s.alpha)
	return nil
}

// Wilcoxon compares every pair of groups with the paired signed-rank test,
// flagging pairs below alpha after Bonferroni correction over the group count.
func (s *Session) Wilcoxon(by []string, out string) error {
	groups, err := s.table.Group(by, out)
	if err != nil {
		return err
	}
	buckets := groups.Buckets()
	sort.SliceStable(buckets, func(i, j int) bool { return buckets[i].Label() < buckets[j].Label() })

	for i := range buckets {
		for j := 0; j < i; j++ {
			result, err := stats.Wilcoxon(buckets[i].Values, buckets[j].Values)
			if err != nil {
				return fmt.Errorf("wilcoxon %s - %s: %w", buckets[i].Label(), buckets[j].Label(), err)
			}
			report.Wilcoxon(s.out, result.Significant(s.alpha, len(buckets)), buckets[i].Label(), buckets[j].Label(), result.PValue)
		}
	}
	return nil
}
