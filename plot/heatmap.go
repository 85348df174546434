package plot

import (
	"fmt"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/wcharczuk/go-chart/v2"
)

type heatmapContent struct {
	xLabels, yLabels []string
	cells            [][]float64 // cells[y][x], NaN for no data
}

// Heatmap colors a grid of cells indexed [y][x]. NaN cells stay blank.
func (f *Figure) Heatmap(xLabels, yLabels []string, cells [][]float64) error {
	if len(xLabels) == 0 || len(yLabels) == 0 {
		return fmt.Errorf("%s: %w", f.Name, ErrEmptyFigure)
	}
	if len(cells) != len(yLabels) {
		return fmt.Errorf("%s: %d rows for %d y labels", f.Name, len(cells), len(yLabels))
	}
	for i, row := range cells {
		if len(row) != len(xLabels) {
			return fmt.Errorf("%s: row %d has %d cells for %d x labels", f.Name, i, len(row), len(xLabels))
		}
	}
	return f.set(heatmapContent{xLabels: xLabels, yLabels: yLabels, cells: cells})
}

func (h heatmapContent) span() (float64, float64) {
	min, max := math.Inf(1), math.Inf(-1)
	for _, row := range h.cells {
		for _, v := range row {
			if math.IsNaN(v) {
				continue
			}
			min = math.Min(min, v)
			max = math.Max(max, v)
		}
	}
	if math.IsInf(min, 1) {
		return 0, 1
	}
	if min == max {
		return min - 0.5, max + 0.5
	}
	return min, max
}

func (h heatmapContent) chart(f *Figure) (renderable, error) {
	nx, ny := float64(len(h.xLabels)), float64(len(h.yLabels))
	vMin, vMax := h.span()

	graph := f.baseChart(0, nx, 0, ny, categoryTicks(h.xLabels, 0.5))
	graph.YAxis.Ticks = boundedTicks(categoryTicks(h.yLabels, 0.5), 0, ny)
	graph.YAxis.GridMajorStyle = chart.Style{Hidden: true}
	graph.Series = []chart.Series{anchorSeries([]float64{0, nx}, []float64{0, ny})}
	graph.Elements = []chart.Renderable{func(r chart.Renderer, canvasBox chart.Box, defaults chart.Style) {
		c := canvas{box: canvasBox, xMin: 0, xMax: nx, yMin: 0, yMax: ny}
		for y, row := range h.cells {
			for x, v := range row {
				if math.IsNaN(v) {
					continue
				}
				color := chart.Viridis(v, vMin, vMax)
				fillRect(r, c.px(float64(x)), c.py(float64(y+1)), c.px(float64(x+1)), c.py(float64(y)), color, color)
			}
		}
	}}
	return graph, nil
}

func (h heatmapContent) page(f *Figure) (page, error) {
	var data []opts.HeatMapData
	for y, row := range h.cells {
		for x, v := range row {
			if math.IsNaN(v) {
				continue
			}
			data = append(data, opts.HeatMapData{Value: [3]interface{}{x, y, v}})
		}
	}
	vMin, vMax := h.span()

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: f.Title}),
		charts.WithXAxisOpts(opts.XAxis{Name: f.XLabel, Type: "category", Data: h.xLabels}),
		charts.WithYAxisOpts(opts.YAxis{Name: f.YLabel, Type: "category", Data: h.yLabels}),
		charts.WithVisualMapOpts(opts.VisualMap{Min: float32(vMin), Max: float32(vMax)}),
	)
	hm.SetXAxis(h.xLabels).AddSeries(f.Title, data)
	return hm, nil
}
