package plot

import (
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/wcharczuk/go-chart/v2"

	"github.com/pivolan/results_analyzer/stats"
)

type boxContent struct {
	labels []string
	boxes  []stats.Box
	means  []float64
}

// Boxes draws one box per label at x = 1..n with a line through the means.
// Outliers are not drawn.
func (f *Figure) Boxes(labels []string, boxes []stats.Box, means []float64) error {
	if len(labels) == 0 {
		return fmt.Errorf("%s: %w", f.Name, ErrEmptyFigure)
	}
	if len(boxes) != len(labels) || len(means) != len(labels) {
		return fmt.Errorf("%s: %d labels, %d boxes, %d means", f.Name, len(labels), len(boxes), len(means))
	}
	return f.set(boxContent{labels: labels, boxes: boxes, means: means})
}

func (b boxContent) chart(f *Figure) (renderable, error) {
	var lows, highs []float64
	for _, box := range b.boxes {
		lows = append(lows, box.LowWhisker)
		highs = append(highs, box.HighWhisker)
	}
	yMin, yMax := f.yRange(lows, highs)
	n := float64(len(b.labels))
	xs := sequence(len(b.labels), 1)

	graph := f.baseChart(0.5, n+0.5, yMin, yMax, categoryTicks(b.labels, 1))
	graph.Series = []chart.Series{anchorSeries(xs, b.means)}
	graph.Elements = []chart.Renderable{func(r chart.Renderer, canvasBox chart.Box, defaults chart.Style) {
		c := canvas{box: canvasBox, xMin: 0.5, xMax: n + 0.5, yMin: yMin, yMax: yMax}
		half := (c.px(1.25) - c.px(1))
		for i, box := range b.boxes {
			cx := c.px(xs[i])
			strokeLine(r, cx, c.py(box.LowWhisker), cx, c.py(box.Q1), grayMid, 1)
			strokeLine(r, cx, c.py(box.Q3), cx, c.py(box.HighWhisker), grayMid, 1)
			strokeLine(r, cx-half/2, c.py(box.LowWhisker), cx+half/2, c.py(box.LowWhisker), grayMid, 1)
			strokeLine(r, cx-half/2, c.py(box.HighWhisker), cx+half/2, c.py(box.HighWhisker), grayMid, 1)
			fillRect(r, cx-half, c.py(box.Q3), cx+half, c.py(box.Q1), grayBox, grayMid)
			strokeLine(r, cx-half, c.py(box.Median), cx+half, c.py(box.Median), grayDark, 2)
		}
		for i := 1; i < len(b.means); i++ {
			strokeLine(r, c.px(xs[i-1]), c.py(b.means[i-1]), c.px(xs[i]), c.py(b.means[i]), grayLight, 1.5)
		}
		for i, m := range b.means {
			r.SetFillColor(grayLight)
			r.SetStrokeColor(grayLight)
			r.Circle(3, c.px(xs[i]), c.py(m))
			r.FillStroke()
		}
	}}
	return graph, nil
}

func (b boxContent) page(f *Figure) (page, error) {
	data := make([]opts.BoxPlotData, len(b.boxes))
	for i, box := range b.boxes {
		data[i] = opts.BoxPlotData{
			Name:  b.labels[i],
			Value: []float64{box.LowWhisker, box.Q1, box.Median, box.Q3, box.HighWhisker},
		}
	}
	means := make([]opts.LineData, len(b.means))
	for i, m := range b.means {
		means[i] = opts.LineData{Value: m}
	}

	bp := charts.NewBoxPlot()
	bp.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: f.Title}),
		charts.WithYAxisOpts(f.echartsYAxis()),
		charts.WithXAxisOpts(opts.XAxis{Name: f.XLabel}),
	)
	bp.SetXAxis(b.labels).AddSeries(f.YLabel, data)

	line := charts.NewLine()
	line.SetXAxis(b.labels).AddSeries("mean", means)
	bp.Overlap(line)
	return bp, nil
}
