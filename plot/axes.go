package plot

import (
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	grayBox     = drawing.ColorFromHex("e6e6e6")
	grayLight   = drawing.ColorFromHex("b3b3b3")
	grayMid     = drawing.ColorFromHex("808080")
	grayDark    = drawing.ColorFromHex("4d4d4d")
	pointColor  = drawing.ColorBlue.WithAlpha(160)
	borderColor = drawing.ColorFromHex("efefef")
)

func calculateGridStep(span float64) float64 {
	if span <= 0 {
		return 0
	}

	if span < 1e-10 {
		return 1e-10
	}

	// order of magnitude of the span, then a 1/2/5 step inside it
	magnitude := math.Pow(10, math.Floor(math.Log10(span)))
	normalized := span / magnitude

	var step float64
	switch {
	case normalized <= 1:
		step = 0.2
	case normalized <= 2:
		step = 0.5
	case normalized <= 5:
		step = 1.0
	default:
		step = 2.0
	}

	finalStep := step * magnitude

	if finalStep >= 1000 {
		return math.Round(finalStep/100) * 100
	}
	if finalStep >= 100 {
		return math.Round(finalStep/10) * 10
	}

	return finalStep
}

// gridTicks places ticks every grid step between min and max inclusive.
func gridTicks(min, max float64) []chart.Tick {
	step := calculateGridStep(max - min)
	if step == 0 {
		return nil
	}
	format := "%.1f"
	if step < 0.1 {
		format = "%.2f"
	} else if step >= 1 {
		format = "%.0f"
	}
	var ticks []chart.Tick
	start := math.Ceil(min/step-1e-9) * step
	for i := 0; ; i++ {
		v := start + float64(i)*step
		if v > max+step*1e-6 {
			break
		}
		ticks = append(ticks, chart.Tick{Value: v, Label: fmt.Sprintf(format, v)})
	}
	return ticks
}

// categoryTicks puts labels[i] at x = i+offset.
func categoryTicks(labels []string, offset float64) []chart.Tick {
	ticks := make([]chart.Tick, len(labels))
	for i, label := range labels {
		ticks[i] = chart.Tick{Value: float64(i) + offset, Label: label}
	}
	return ticks
}

// boundedTicks keeps the ascending ticks inside [min, max] and adds
// unlabelled ticks at min and max. go-chart stretches an axis over its ticks,
// so this keeps the axis on the range glyphs are drawn in.
func boundedTicks(ticks []chart.Tick, min, max float64) []chart.Tick {
	if len(ticks) == 0 {
		return nil
	}
	out := make([]chart.Tick, 0, len(ticks)+2)
	for _, t := range ticks {
		if t.Value >= min && t.Value <= max {
			out = append(out, t)
		}
	}
	if len(out) == 0 || out[0].Value > min {
		out = append([]chart.Tick{{Value: min}}, out...)
	}
	if out[len(out)-1].Value < max {
		out = append(out, chart.Tick{Value: max})
	}
	return out
}

// paddedRange spans values with 5% slack on each side, or one unit when
// every value is equal.
func paddedRange(values ...[]float64) (float64, float64) {
	min, max := math.Inf(1), math.Inf(-1)
	for _, vs := range values {
		for _, v := range vs {
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
	pad := (max - min) * 0.05
	return min - pad, max + pad
}

func findMaxValue(y []float64) float64 {
	if len(y) == 0 {
		return 0
	}
	max := y[0]
	for _, v := range y {
		if v > max {
			max = v
		}
	}
	return max
}

// labelPadding estimates the room rotated tick labels need below the axis.
func labelPadding(labels []string, rotation float64) int {
	count := 0
	for _, l := range labels {
		if len(l) > count {
			count = len(l)
		}
	}
	if rotation == 0 {
		return 20
	}
	return int(float64(count*8)*math.Sin(rotation*math.Pi/180)) + 20
}

func customizePaddingXBottom(values []chart.Value) int {
	labels := make([]string, len(values))
	for i, v := range values {
		labels[i] = v.Label
	}
	return labelPadding(labels, 90)
}

// canvas maps data coordinates onto the plotting area handed to chart elements.
type canvas struct {
	box        chart.Box
	xMin, xMax float64
	yMin, yMax float64
}

func (c canvas) px(x float64) int {
	return c.box.Left + int(math.Round((x-c.xMin)/(c.xMax-c.xMin)*float64(c.box.Width())))
}

// py clamps to the plotting area so glyphs outside the y-limits are cut at the edge.
func (c canvas) py(y float64) int {
	y = math.Max(c.yMin, math.Min(c.yMax, y))
	return c.box.Bottom - int(math.Round((y-c.yMin)/(c.yMax-c.yMin)*float64(c.box.Height())))
}

func strokeLine(r chart.Renderer, x0, y0, x1, y1 int, color drawing.Color, width float64) {
	r.SetStrokeColor(color)
	r.SetStrokeWidth(width)
	r.MoveTo(x0, y0)
	r.LineTo(x1, y1)
	r.Stroke()
}

func fillRect(r chart.Renderer, x0, y0, x1, y1 int, fill, stroke drawing.Color) {
	r.SetFillColor(fill)
	r.SetStrokeColor(stroke)
	r.SetStrokeWidth(1)
	r.MoveTo(x0, y0)
	r.LineTo(x1, y0)
	r.LineTo(x1, y1)
	r.LineTo(x0, y1)
	r.LineTo(x0, y0)
	r.Close()
	r.FillStroke()
}

// errorBar draws a vertical bar from mean-std to mean+std with caps.
func errorBar(r chart.Renderer, c canvas, x, mean, std float64, halfCap int, color drawing.Color) {
	if std == 0 || math.IsNaN(std) {
		return
	}
	cx := c.px(x)
	lo, hi := c.py(mean-std), c.py(mean+std)
	strokeLine(r, cx, lo, cx, hi, color, 1)
	strokeLine(r, cx-halfCap, lo, cx+halfCap, lo, color, 1)
	strokeLine(r, cx-halfCap, hi, cx+halfCap, hi, color, 1)
}

// anchorSeries gives a chart the visible series it requires without drawing
// anything; the glyphs themselves are drawn by chart elements.
func anchorSeries(xs, ys []float64) chart.Series {
	return chart.ContinuousSeries{
		XValues: xs,
		YValues: ys,
		Style: chart.Style{
			StrokeWidth: chart.Disabled,
			DotWidth:    0,
		},
	}
}

func sequence(n int, start float64) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = start + float64(i)
	}
	return xs
}
