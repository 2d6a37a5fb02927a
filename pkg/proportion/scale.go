package proportion

import (
	"math"

	"github.com/matzehuels/sharechart/pkg/errors"
)

// ScaleFraction maps value onto a fixed maximum and returns the fill as a
// percentage: value/max*100.
//
// The result is not clamped. A value above max yields more than 100, and it
// is up to the renderer to clip it visually (see [ClampFraction]). A NaN or
// infinite value counts as 0. A max that is not a positive finite number is
// a configuration error, reported with errors.ErrCodeInvalidConfiguration.
func ScaleFraction(value, max float64) (float64, error) {
	if !(max > 0) || math.IsInf(max, 1) {
		return 0, errors.InvalidConfiguration("scale max must be a positive number, got %g", max)
	}
	return Finite(value) / max * 100, nil
}

// ClampFraction limits a fill percentage to the range 0–100.
func ClampFraction(f float64) float64 {
	if math.IsNaN(f) {
		return 0
	}
	return math.Min(100, math.Max(0, f))
}
