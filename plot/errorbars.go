package plot

import (
	"fmt"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/wcharczuk/go-chart/v2"
)

type errorBarContent struct {
	xs     []float64
	labels []string // nil for a numeric x axis
	means  []float64
	stds   []float64
}

// ErrorBars draws means with +/- std bars. With labels the points sit at
// x = 1..n under those labels; with nil labels xs are plotted as numbers.
func (f *Figure) ErrorBars(xs []float64, labels []string, means, stds []float64) error {
	if len(means) == 0 {
		return fmt.Errorf("%s: %w", f.Name, ErrEmptyFigure)
	}
	if labels != nil && len(labels) != len(means) {
		return fmt.Errorf("%s: %d labels for %d means", f.Name, len(labels), len(means))
	}
	if labels != nil && xs == nil {
		xs = sequence(len(labels), 1)
	}
	if len(xs) != len(means) || len(stds) != len(means) {
		return fmt.Errorf("%s: %d x values, %d means, %d stds", f.Name, len(xs), len(means), len(stds))
	}
	return f.set(errorBarContent{xs: xs, labels: labels, means: means, stds: stds})
}

func (e errorBarContent) bounds() (lows, highs []float64) {
	lows = make([]float64, len(e.means))
	highs = make([]float64, len(e.means))
	for i := range e.means {
		lows[i] = e.means[i] - e.stds[i]
		highs[i] = e.means[i] + e.stds[i]
	}
	return lows, highs
}

func (e errorBarContent) chart(f *Figure) (renderable, error) {
	yMin, yMax := f.yRange(e.bounds())

	var xMin, xMax float64
	var ticks []chart.Tick
	if e.labels != nil {
		xMin, xMax = 0.5, float64(len(e.labels))+0.5
		ticks = categoryTicks(e.labels, 1)
	} else {
		xMin, xMax = paddedRange(e.xs)
	}

	graph := f.baseChart(xMin, xMax, yMin, yMax, ticks)
	graph.Series = []chart.Series{chart.ContinuousSeries{
		XValues: e.xs,
		YValues: e.means,
		Style: chart.Style{
			StrokeColor: grayLight,
			StrokeWidth: 1.5,
			DotColor:    grayMid,
			DotWidth:    5,
		},
	}}
	graph.Elements = []chart.Renderable{func(r chart.Renderer, canvasBox chart.Box, defaults chart.Style) {
		c := canvas{box: canvasBox, xMin: xMin, xMax: xMax, yMin: yMin, yMax: yMax}
		for i := range e.means {
			errorBar(r, c, e.xs[i], e.means[i], e.stds[i], 4, grayMid)
		}
	}}
	return graph, nil
}

func (e errorBarContent) page(f *Figure) (page, error) {
	labels := e.labels
	if labels == nil {
		labels = make([]string, len(e.xs))
		for i, x := range e.xs {
			labels[i] = strconv.FormatFloat(x, 'g', -1, 64)
		}
	}
	means := make([]opts.LineData, len(e.means))
	lows := make([]opts.LineData, len(e.means))
	highs := make([]opts.LineData, len(e.means))
	for i := range e.means {
		means[i] = opts.LineData{Value: e.means[i]}
		lows[i] = opts.LineData{Value: e.means[i] - e.stds[i]}
		highs[i] = opts.LineData{Value: e.means[i] + e.stds[i]}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: f.Title}),
		charts.WithYAxisOpts(f.echartsYAxis()),
		charts.WithXAxisOpts(opts.XAxis{Name: f.XLabel}),
	)
	line.SetXAxis(labels).
		AddSeries("mean", means).
		AddSeries("mean - std", lows).
		AddSeries("mean + std", highs)
	return line, nil
}
