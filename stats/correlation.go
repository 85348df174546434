package stats

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// Pearson is the product-moment correlation coefficient of x and y.
func Pearson(x, y []float64) (float64, error) {
	if len(x) != len(y) {
		return 0, fmt.Errorf("%w: %d and %d", ErrLengthMismatch, len(x), len(y))
	}
	if len(x) < 2 {
		return 0, ErrEmpty
	}
	return stat.Correlation(x, y, nil), nil
}

// Spearman is the Pearson correlation of the tie-averaged ranks of x and y.
func Spearman(x, y []float64) (float64, error) {
	if len(x) != len(y) {
		return 0, fmt.Errorf("%w: %d and %d", ErrLengthMismatch, len(x), len(y))
	}
	rx, _ := Rank(x)
	ry, _ := Rank(y)
	return Pearson(rx, ry)
}
