package plot

import (
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/wcharczuk/go-chart/v2"
)

type scatterContent struct {
	xs, ys []float64
}

// Scatter plots paired values as unconnected points.
func (f *Figure) Scatter(xs, ys []float64) error {
	if len(xs) == 0 {
		return fmt.Errorf("%s: %w", f.Name, ErrEmptyFigure)
	}
	if len(xs) != len(ys) {
		return fmt.Errorf("%s: %d x values for %d y values", f.Name, len(xs), len(ys))
	}
	return f.set(scatterContent{xs: xs, ys: ys})
}

func (s scatterContent) chart(f *Figure) (renderable, error) {
	xMin, xMax := paddedRange(s.xs)
	yMin, yMax := f.yRange(s.ys)
	graph := f.baseChart(xMin, xMax, yMin, yMax, gridTicks(xMin, xMax))
	graph.Series = []chart.Series{chart.ContinuousSeries{
		XValues: s.xs,
		YValues: s.ys,
		Style: chart.Style{
			StrokeWidth: chart.Disabled,
			DotWidth:    3,
			DotColor:    pointColor,
		},
	}}
	return graph, nil
}

func (s scatterContent) page(f *Figure) (page, error) {
	data := make([]opts.ScatterData, len(s.xs))
	for i := range s.xs {
		data[i] = opts.ScatterData{Value: []float64{s.xs[i], s.ys[i]}}
	}
	sc := charts.NewScatter()
	sc.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: f.Title}),
		charts.WithYAxisOpts(f.echartsYAxis()),
		charts.WithXAxisOpts(opts.XAxis{Name: f.XLabel, Type: "value"}),
	)
	sc.AddSeries(f.YLabel, data)
	return sc, nil
}
