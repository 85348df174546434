package plot

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const DefaultBins = 10

type dataForGraph interface {
	getYValues() []float64
	generateBarValues() []chart.Value
}

type histogramContent struct {
	dividers []float64
	counts   []float64
}

// Histogram counts values into bins of equal width spanning their range.
func (f *Figure) Histogram(values []float64, bins int) error {
	if len(values) == 0 {
		return fmt.Errorf("%s: %w", f.Name, ErrEmptyFigure)
	}
	if bins < 1 {
		bins = DefaultBins
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	for _, v := range sorted {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s: cannot bin %v", f.Name, v)
		}
	}

	min, max := sorted[0], sorted[len(sorted)-1]
	if min == max {
		min, max = min-0.5, max+0.5
	}
	dividers := make([]float64, bins+1)
	floats.Span(dividers, min, max)
	// the last bin is closed on the right
	dividers[bins] = math.Nextafter(dividers[bins], math.Inf(1))

	counts := make([]float64, bins)
	stat.Histogram(counts, dividers, sorted, nil)
	return f.set(histogramContent{dividers: dividers, counts: counts})
}

func (h histogramContent) getYValues() []float64 {
	return h.counts
}

func (h histogramContent) labels() []string {
	labels := make([]string, len(h.counts))
	for i := range h.counts {
		labels[i] = fmt.Sprintf("%.2f-%.2f", h.dividers[i], h.dividers[i+1])
	}
	return labels
}

func (h histogramContent) generateBarValues() []chart.Value {
	labels := h.labels()
	bars := make([]chart.Value, len(h.counts))
	for i, c := range h.counts {
		bars[i] = chart.Value{
			Value: c,
			Label: labels[i],
			Style: chart.Style{
				FillColor:   grayLight,
				StrokeColor: grayMid,
				StrokeWidth: 1,
			},
		}
	}
	return bars
}

func (h histogramContent) chart(f *Figure) (renderable, error) {
	return drawPlotBar(f, h), nil
}

// drawPlotBar lays bar values out on a go-chart bar chart sized to the figure.
func drawPlotBar(f *Figure, data dataForGraph) chart.BarChart {
	barValues := data.generateBarValues()
	paddingX := customizePaddingXBottom(barValues)
	yMax := findMaxValue(data.getYValues())
	if yMax <= 0 {
		yMax = 1
	}
	yMin := 0.0
	if f.yLim {
		yMin, yMax = f.yMin, f.yMax
	}

	barWidth := (f.width-150)/len(barValues) - 10
	if barWidth > 60 {
		barWidth = 60
	}
	if barWidth < 4 {
		barWidth = 4
	}

	bar := chart.BarChart{
		Title:  f.Title,
		Width:  f.width,
		Height: f.height,
		Background: chart.Style{
			FillColor:   chart.ColorWhite,
			StrokeColor: borderColor,
			StrokeWidth: 1,
			Padding: chart.Box{
				Top:    50,
				Left:   20,
				Right:  20,
				Bottom: paddingX,
			},
		},
		BarWidth: barWidth,
		Bars:     barValues,
		YAxis: chart.YAxis{
			Name:  f.YLabel,
			Range: &chart.ContinuousRange{Min: yMin, Max: yMax},
			Ticks: gridTicks(yMin, yMax),
			Style: chart.Style{
				StrokeWidth: 1,
				StrokeColor: chart.ColorBlack,
			},
			GridMajorStyle: chart.Style{
				StrokeColor:     chart.ColorBlack,
				StrokeWidth:     1,
				StrokeDashArray: []float64{5.0, 5.0},
			},
		},
		XAxis: chart.Style{
			StrokeWidth:         1,
			StrokeColor:         drawing.ColorBlack,
			TextRotationDegrees: 90,
		},
	}
	if f.Title == "" {
		bar.TitleStyle = chart.Style{Hidden: true}
	}
	return bar
}

func (h histogramContent) page(f *Figure) (page, error) {
	data := make([]opts.BarData, len(h.counts))
	for i, c := range h.counts {
		data[i] = opts.BarData{Value: c}
	}
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: f.Title}),
		charts.WithYAxisOpts(f.echartsYAxis()),
		charts.WithXAxisOpts(opts.XAxis{Name: f.XLabel}),
	)
	bar.SetXAxis(h.labels()).AddSeries(f.YLabel, data)
	return bar, nil
}
