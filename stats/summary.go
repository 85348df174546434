package stats

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

var ErrEmpty = errors.New("no values")

// Summary holds population statistics of one value list.
type Summary struct {
	Label  string
	Count  int
	Mean   float64
	Std    float64
	Median float64
	Min    float64
	Max    float64
}

// Mean is the arithmetic mean, NaN for no values.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	return stat.Mean(values, nil)
}

// Std is the population standard deviation (divides by n, not n-1).
func Std(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	_, variance := stat.PopMeanVariance(values, nil)
	return math.Sqrt(variance)
}

// Median averages the two middle values of an even-length list.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sorted := sortedCopy(values)
	return median(sorted)
}

func median(sorted []float64) float64 {
	if len(sorted)%2 == 0 {
		return (sorted[len(sorted)/2-1] + sorted[len(sorted)/2]) / 2
	}
	return sorted[len(sorted)/2]
}

func sortedCopy(values []float64) []float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return sorted
}

// Summarize computes count, mean, std, median, min and max of values.
func Summarize(label string, values []float64) (Summary, error) {
	if len(values) == 0 {
		return Summary{Label: label}, ErrEmpty
	}
	sorted := sortedCopy(values)
	mean, variance := stat.PopMeanVariance(values, nil)
	return Summary{
		Label:  label,
		Count:  len(values),
		Mean:   mean,
		Std:    math.Sqrt(variance),
		Median: median(sorted),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
	}, nil
}

// Box holds the parts of a box-and-whisker glyph.
type Box struct {
	Q1, Median, Q3 float64
	IQR            float64
	// Whiskers reach the most extreme values within 1.5*IQR of the box.
	LowWhisker, HighWhisker float64
	Outliers                []float64
}

// Quantile interpolates linearly between the closest ranks of sorted.
func Quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}

	pos := p * float64(len(sorted)-1)
	floor := math.Floor(pos)
	ceil := math.Ceil(pos)

	if floor == ceil {
		return sorted[int(pos)]
	}

	lower := sorted[int(floor)]
	upper := sorted[int(ceil)]
	fraction := pos - floor

	return lower + fraction*(upper-lower)
}

// BoxOf computes quartiles, whiskers and outliers of values.
func BoxOf(values []float64) (Box, error) {
	if len(values) == 0 {
		return Box{}, ErrEmpty
	}
	sorted := sortedCopy(values)

	q1 := Quantile(sorted, 0.25)
	q3 := Quantile(sorted, 0.75)
	iqr := q3 - q1
	lowerBound := q1 - 1.5*iqr
	upperBound := q3 + 1.5*iqr

	box := Box{
		Q1:          q1,
		Median:      median(sorted),
		Q3:          q3,
		IQR:         iqr,
		LowWhisker:  q1,
		HighWhisker: q3,
		Outliers:    make([]float64, 0),
	}
	for _, v := range sorted {
		if v < lowerBound || v > upperBound {
			box.Outliers = append(box.Outliers, v)
			continue
		}
		if v < box.LowWhisker {
			box.LowWhisker = v
		}
		if v > box.HighWhisker {
			box.HighWhisker = v
		}
	}
	return box, nil
}
