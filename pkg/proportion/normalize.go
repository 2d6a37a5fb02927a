package proportion

import (
	"cmp"
	"math"
	"slices"
)

// Normalize apportions the series into integer percentages using the
// largest-remainder method.
//
// Each item's exact share is floored, then the points missing from 100 are
// awarded one at a time to the items with the largest fractional remainders.
// Exact ties go to the earlier item, so the result is deterministic. For any
// series with a positive total the percentages sum to exactly 100 and each
// differs from its exact share by less than 1.
//
// If the series is empty or its total is not positive, every percentage is 0.
// NaN and infinite values count as 0. The returned slice has the same length
// and order as items and is never nil.
func Normalize(items Series) []NormalizedItem {
	out := make([]NormalizedItem, len(items))
	for i, it := range items {
		it.Value = Finite(it.Value)
		out[i] = NormalizedItem{Item: it}
	}

	scale := 1.0
	total := items.Total()
	if math.IsInf(total, 0) {
		// The sum of large finite values overflowed; compare shares on a
		// rescaled copy instead.
		scale = largestMagnitude(out)
		total = 0
		for _, n := range out {
			total += n.Value / scale
		}
	}
	if !(total > 0) {
		return out
	}

	type rank struct {
		index int
		frac  float64
	}
	ranks := make([]rank, len(out))
	base := 0
	for i := range out {
		exact := out[i].Value / scale / total * 100
		floor := math.Floor(exact)
		out[i].ExactPercent = exact
		out[i].Percent = int(floor)
		base += int(floor)
		ranks[i] = rank{index: i, frac: exact - floor}
	}

	remainder := 100 - base
	if remainder <= 0 {
		return out
	}

	slices.SortStableFunc(ranks, func(a, b rank) int {
		return cmp.Compare(b.frac, a.frac)
	})
	// Negative values can push the remainder past the item count; cycling
	// keeps the sum at 100 in that case.
	for k := range remainder {
		out[ranks[k%len(ranks)].index].Percent++
	}
	return out
}

// Percents returns just the integer shares of normalized items.
func Percents(items []NormalizedItem) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.Percent
	}
	return out
}

func largestMagnitude(items []NormalizedItem) float64 {
	m := 0.0
	for _, it := range items {
		m = max(m, math.Abs(it.Value))
	}
	if m == 0 {
		return 1
	}
	return m
}
