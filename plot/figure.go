package plot

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/wcharczuk/go-chart/v2"
)

var (
	ErrEmptyFigure = errors.New("figure has nothing to draw")
	ErrFigureInUse = errors.New("figure already holds a plot")
)

const (
	DefaultWidth  = 1024
	DefaultHeight = 768
)

// renderable is satisfied by chart.Chart and chart.BarChart.
type renderable interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

// page is satisfied by every go-echarts chart.
type page interface {
	Render(w io.Writer) error
}

// content is what a drawing call puts on a figure.
type content interface {
	chart(f *Figure) (renderable, error)
	page(f *Figure) (page, error)
}

// Figure is one plot. Drawing calls and setters only affect the figure they
// are called on; a figure holds a single plot.
type Figure struct {
	Name   string
	Title  string
	XLabel string
	YLabel string

	yMin, yMax float64
	yLim       bool
	rotation   float64
	width      int
	height     int
	content    content
}

// NewFigure creates a detached figure. Gallery.NewFigure also queues it for Show.
func NewFigure(name string) *Figure {
	return &Figure{Name: name, width: DefaultWidth, height: DefaultHeight}
}

func (f *Figure) SetTitle(title string) *Figure  { f.Title = title; return f }
func (f *Figure) SetXLabel(label string) *Figure { f.XLabel = label; return f }
func (f *Figure) SetYLabel(label string) *Figure { f.YLabel = label; return f }

// SetYLim fixes the y axis to [min, max].
func (f *Figure) SetYLim(min, max float64) *Figure {
	f.yMin, f.yMax, f.yLim = min, max, true
	return f
}

// SetLabelRotation rotates the x tick labels by degrees.
func (f *Figure) SetLabelRotation(degrees float64) *Figure {
	f.rotation = degrees
	return f
}

// SetSize sets the pixel size of the PNG output.
func (f *Figure) SetSize(width, height int) *Figure {
	if width > 0 {
		f.width = width
	}
	if height > 0 {
		f.height = height
	}
	return f
}

// Empty reports whether no drawing call has been made yet.
func (f *Figure) Empty() bool { return f.content == nil }

func (f *Figure) set(c content) error {
	if f.content != nil {
		return fmt.Errorf("%s: %w", f.Name, ErrFigureInUse)
	}
	f.content = c
	return nil
}

// yRange is the fixed y-limits if set, otherwise the padded span of values.
func (f *Figure) yRange(values ...[]float64) (float64, float64) {
	if f.yLim {
		return f.yMin, f.yMax
	}
	return paddedRange(values...)
}

// PNG renders the figure with go-chart.
func (f *Figure) PNG() ([]byte, error) {
	if f.content == nil {
		return nil, fmt.Errorf("%s: %w", f.Name, ErrEmptyFigure)
	}
	graph, err := f.content.chart(f)
	if err != nil {
		return nil, err
	}
	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("error rendering chart %s: %w", f.Name, err)
	}
	return buffer.Bytes(), nil
}

// HTML renders the figure as an interactive go-echarts page.
func (f *Figure) HTML() ([]byte, error) {
	if f.content == nil {
		return nil, fmt.Errorf("%s: %w", f.Name, ErrEmptyFigure)
	}
	p, err := f.content.page(f)
	if err != nil {
		return nil, err
	}
	buffer := bytes.NewBuffer([]byte{})
	if err := p.Render(buffer); err != nil {
		return nil, fmt.Errorf("error rendering page %s: %w", f.Name, err)
	}
	return buffer.Bytes(), nil
}

// baseChart is the frame shared by every go-chart figure: size, title, axis
// names, the axis ranges and x tick labels. Ticks are bounded so the axes
// cover exactly [xMin, xMax] and [yMin, yMax].
func (f *Figure) baseChart(xMin, xMax, yMin, yMax float64, xTicks []chart.Tick) chart.Chart {
	labels := make([]string, len(xTicks))
	for i, t := range xTicks {
		labels[i] = t.Label
	}
	graph := chart.Chart{
		Title:  f.Title,
		Width:  f.width,
		Height: f.height,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   20,
				Right:  20,
				Bottom: labelPadding(labels, f.rotation),
			},
			FillColor:   chart.ColorWhite,
			StrokeWidth: 1,
			StrokeColor: borderColor,
		},
		XAxis: chart.XAxis{
			Name:  f.XLabel,
			Range: &chart.ContinuousRange{Min: xMin, Max: xMax},
			Ticks: boundedTicks(xTicks, xMin, xMax),
			Style: chart.Style{TextRotationDegrees: f.rotation},
		},
		YAxis: chart.YAxis{
			Name:  f.YLabel,
			Range: &chart.ContinuousRange{Min: yMin, Max: yMax},
			Ticks: boundedTicks(gridTicks(yMin, yMax), yMin, yMax),
			GridMajorStyle: chart.Style{
				StrokeColor:     chart.ColorBlack,
				StrokeWidth:     1,
				StrokeDashArray: []float64{5.0, 5.0},
			},
		},
	}
	if f.Title == "" {
		graph.TitleStyle = chart.Style{Hidden: true}
	}
	return graph
}

// echartsYAxis carries the y label and fixed limits over to go-echarts.
func (f *Figure) echartsYAxis() opts.YAxis {
	axis := opts.YAxis{Name: f.YLabel}
	if f.yLim {
		axis.Min = f.yMin
		axis.Max = f.yMax
	}
	return axis
}
