package plot

import (
	"fmt"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/wcharczuk/go-chart/v2"
)

type barContent struct {
	labels []string
	means  []float64
	stds   []float64
}

// Bars draws one bar per label rising from the bottom of the y range to the
// mean, with a std error bar on top.
func (f *Figure) Bars(labels []string, means, stds []float64) error {
	if len(labels) == 0 {
		return fmt.Errorf("%s: %w", f.Name, ErrEmptyFigure)
	}
	if len(means) != len(labels) || len(stds) != len(labels) {
		return fmt.Errorf("%s: %d labels, %d means, %d stds", f.Name, len(labels), len(means), len(stds))
	}
	return f.set(barContent{labels: labels, means: means, stds: stds})
}

func (b barContent) chart(f *Figure) (renderable, error) {
	highs := make([]float64, len(b.means))
	for i := range b.means {
		highs[i] = b.means[i] + b.stds[i]
	}
	yMin, yMax := f.yRange(highs, []float64{0})
	n := float64(len(b.labels))
	xs := sequence(len(b.labels), 1)

	graph := f.baseChart(0.5, n+0.5, yMin, yMax, categoryTicks(b.labels, 1))
	graph.Series = []chart.Series{anchorSeries(xs, b.means)}
	graph.Elements = []chart.Renderable{func(r chart.Renderer, canvasBox chart.Box, defaults chart.Style) {
		c := canvas{box: canvasBox, xMin: 0.5, xMax: n + 0.5, yMin: yMin, yMax: yMax}
		half := c.px(1.25) - c.px(1)
		base := c.py(math.Max(yMin, 0))
		for i, m := range b.means {
			cx := c.px(xs[i])
			fillRect(r, cx-half, c.py(m), cx+half, base, grayLight, grayLight)
			errorBar(r, c, xs[i], m, b.stds[i], half/3, grayDark)
		}
	}}
	return graph, nil
}

func (b barContent) page(f *Figure) (page, error) {
	data := make([]opts.BarData, len(b.means))
	for i, m := range b.means {
		data[i] = opts.BarData{Name: b.labels[i], Value: m}
	}
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: f.Title}),
		charts.WithYAxisOpts(f.echartsYAxis()),
		charts.WithXAxisOpts(opts.XAxis{Name: f.XLabel}),
	)
	bar.SetXAxis(b.labels).AddSeries(f.YLabel, data)
	return bar, nil
}
