package stats

import "sort"

// Rank assigns 1-based ranks to values, giving tied values the average of the
// ranks they span. It also returns the sizes of every tie group larger than one.
func Rank(values []float64) (ranks []float64, ties []int) {
	n := len(values)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return values[order[a]] < values[order[b]] })

	ranks = make([]float64, n)
	for i := 0; i < n; {
		j := i + 1
		for j < n && values[order[j]] == values[order[i]] {
			j++
		}
		// positions i..j-1 hold equal values, ranks i+1..j
		avg := float64(i+1+j) / 2
		for k := i; k < j; k++ {
			ranks[order[k]] = avg
		}
		if j-i > 1 {
			ties = append(ties, j-i)
		}
		i = j
	}
	return ranks, ties
}

// tieSum is sum(t^3 - t) over tie group sizes.
func tieSum(ties []int) float64 {
	sum := 0.0
	for _, t := range ties {
		ft := float64(t)
		sum += ft*ft*ft - ft
	}
	return sum
}
