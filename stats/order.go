package stats

import (
	"sort"

	"github.com/pivolan/results_analyzer/results"
)

// Statistic selects the aggregate groups are ordered by.
type Statistic int

const (
	ByMean Statistic = iota
	ByMedian
)

func (s Statistic) of(sum Summary) float64 {
	if s == ByMedian {
		return sum.Median
	}
	return sum.Mean
}

// Ordered is a group's key and values with their summary. Summary.Label is
// the key's display label.
type Ordered struct {
	Key    results.Key
	Values []float64
	Summary
}

// Order summarizes every bucket of g and sorts them by ascending statistic.
// Ties keep the order in which the keys first appeared.
func Order(g *results.Groups, by Statistic) []Ordered {
	buckets := g.Buckets()
	ordered := make([]Ordered, 0, len(buckets))
	for _, b := range buckets {
		// Buckets always hold at least one value.
		sum, _ := Summarize(b.Label(), b.Values)
		ordered = append(ordered, Ordered{Key: b.Key, Values: b.Values, Summary: sum})
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return by.of(ordered[i].Summary) < by.of(ordered[j].Summary)
	})
	return ordered
}
