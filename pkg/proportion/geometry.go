package proportion

import (
	"math"

	"github.com/matzehuels/sharechart/pkg/errors"
)

// DefaultStartAngle puts the first slice at the top of the circle.
const DefaultStartAngle = -math.Pi / 2

// PieConfig controls slice placement and label anchoring.
//
// The zero StartAngle is a valid angle (the right side of the circle), so use
// [NewPieConfig] to get the conventional top-of-circle start.
type PieConfig struct {
	// InnerRadius is where leader lines leave the slice, usually the pie radius.
	InnerRadius float64
	// LabelRadius is where leader lines end and label text is anchored.
	LabelRadius float64
	// StartAngle is the angle of the first slice's leading edge, in radians.
	StartAngle float64
}

// NewPieConfig returns a config starting at [DefaultStartAngle].
func NewPieConfig(innerRadius, labelRadius float64) PieConfig {
	return PieConfig{
		InnerRadius: innerRadius,
		LabelRadius: labelRadius,
		StartAngle:  DefaultStartAngle,
	}
}

// Validate reports an invalid-configuration error for non-positive or
// non-finite radii and a non-finite start angle.
func (c PieConfig) Validate() error {
	if !(c.InnerRadius > 0) || math.IsInf(c.InnerRadius, 0) {
		return errors.InvalidConfiguration("inner radius must be a positive number, got %g", c.InnerRadius)
	}
	if !(c.LabelRadius > 0) || math.IsInf(c.LabelRadius, 0) {
		return errors.InvalidConfiguration("label radius must be a positive number, got %g", c.LabelRadius)
	}
	if math.IsNaN(c.StartAngle) || math.IsInf(c.StartAngle, 0) {
		return errors.InvalidConfiguration("start angle must be finite, got %g", c.StartAngle)
	}
	return nil
}

// BuildPieGeometry lays normalized items out as contiguous slices around a
// circle, in input order.
//
// Each slice sweeps Percent/100 of a full turn starting where the previous
// one ended. A slice spanning more than half the circle sets LargeArc. Labels
// sit on the slice's mid-angle: the leader line runs from InnerRadius to
// LabelRadius, and text on the left half of the circle anchors at its end so
// it never overlaps the pie.
//
// Zero-percent items keep a zero-width slice so output indices match input
// indices. When the percentages sum to 100, the last visible slice ends at
// exactly StartAngle+2π, so accumulated floating error never leaves a gap.
//
// A lone 100% item produces a single full-circle slice; see
// [SliceGeometry.IsFullCircle].
//
// BuildPieGeometry returns an invalid-configuration error if cfg fails
// [PieConfig.Validate]. An empty input yields an empty, non-nil result.
func BuildPieGeometry(items []NormalizedItem, cfg PieConfig) ([]Wedge, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	closeAt := -1
	sum := 0
	for i, it := range items {
		sum += it.Percent
		if it.Percent > 0 {
			closeAt = i
		}
	}
	if sum != 100 {
		closeAt = -1
	}

	out := make([]Wedge, len(items))
	cursor := cfg.StartAngle
	for i, it := range items {
		sweep := float64(it.Percent) / 100 * 2 * math.Pi
		end := cursor + sweep
		if i == closeAt {
			end = cfg.StartAngle + 2*math.Pi
		}
		slice := SliceGeometry{StartAngle: cursor, EndAngle: end}
		// The flag follows the nominal share; end-cursor drifts past π at 50%.
		if it.Percent > 50 {
			slice.LargeArc = 1
		}
		out[i] = Wedge{
			Item:  it,
			Slice: slice,
			Label: anchorLabel(slice.Mid(), cfg),
		}
		cursor = end
	}
	return out, nil
}

func anchorLabel(mid float64, cfg PieConfig) LabelAnchor {
	side := SideStart
	if math.Cos(mid) < 0 {
		side = SideEnd
	}
	return LabelAnchor{
		Edge:  Polar(cfg.InnerRadius, mid),
		Label: Polar(cfg.LabelRadius, mid),
		Side:  side,
	}
}
