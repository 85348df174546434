package stats

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

var (
	ErrLengthMismatch = errors.New("paired samples differ in length")
	ErrNoVariation    = errors.New("all values are identical")
	ErrTooFewGroups   = errors.New("need at least two groups")
)

// TestResult is the outcome of a significance test.
type TestResult struct {
	Statistic float64
	PValue    float64
}

// Significant reports whether p is below alpha divided by the correction factor.
func (r TestResult) Significant(alpha float64, correction int) bool {
	if correction < 1 {
		correction = 1
	}
	return r.PValue < alpha/float64(correction)
}

// Kruskal runs the Kruskal-Wallis H test, the rank-based analogue of one-way
// ANOVA for independent samples. H is corrected for ties and compared with a
// chi-squared distribution with len(samples)-1 degrees of freedom.
func Kruskal(samples ...[]float64) (TestResult, error) {
	if len(samples) < 2 {
		return TestResult{}, ErrTooFewGroups
	}
	var pooled []float64
	for i, s := range samples {
		if len(s) == 0 {
			return TestResult{}, fmt.Errorf("group %d: %w", i, ErrEmpty)
		}
		pooled = append(pooled, s...)
	}

	ranks, ties := Rank(pooled)
	n := float64(len(pooled))

	h := 0.0
	offset := 0
	for _, s := range samples {
		rankSum := 0.0
		for _, r := range ranks[offset : offset+len(s)] {
			rankSum += r
		}
		h += rankSum * rankSum / float64(len(s))
		offset += len(s)
	}
	h = 12/(n*(n+1))*h - 3*(n+1)

	correction := 1 - tieSum(ties)/(n*n*n-n)
	if correction == 0 {
		return TestResult{}, ErrNoVariation
	}
	h /= correction

	chi2 := distuv.ChiSquared{K: float64(len(samples) - 1)}
	return TestResult{Statistic: h, PValue: chi2.Survival(h)}, nil
}

// Wilcoxon runs the two-sided Wilcoxon signed-rank test on paired samples.
// Zero differences are discarded and the statistic min(W+, W-) is compared
// with its normal approximation, corrected for ties.
func Wilcoxon(x, y []float64) (TestResult, error) {
	if len(x) != len(y) {
		return TestResult{}, fmt.Errorf("%w: %d and %d", ErrLengthMismatch, len(x), len(y))
	}
	diffs := make([]float64, 0, len(x))
	for i := range x {
		if d := x[i] - y[i]; d != 0 {
			diffs = append(diffs, d)
		}
	}
	if len(diffs) == 0 {
		return TestResult{}, ErrNoVariation
	}

	abs := make([]float64, len(diffs))
	for i, d := range diffs {
		abs[i] = math.Abs(d)
	}
	ranks, ties := Rank(abs)

	var plus, minus float64
	for i, d := range diffs {
		if d > 0 {
			plus += ranks[i]
		} else {
			minus += ranks[i]
		}
	}
	t := math.Min(plus, minus)

	n := float64(len(diffs))
	mean := n * (n + 1) / 4
	variance := (n*(n+1)*(2*n+1) - tieSum(ties)/2) / 24
	z := (t - mean) / math.Sqrt(variance)

	return TestResult{Statistic: t, PValue: 2 * distuv.UnitNormal.Survival(math.Abs(z))}, nil
}
