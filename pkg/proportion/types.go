package proportion

import (
	"fmt"
	"math"
)

// Item is a single labeled value. Color is optional; an empty Color lets the
// presentation layer pick from its palette.
type Item struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Color string  `json:"color,omitempty"`
}

// Series is an ordered list of items. Order determines slice order and the
// tie-break order during apportionment.
type Series []Item

// Total returns the sum of all values, treating non-finite values as 0.
func (s Series) Total() float64 {
	var total float64
	for _, it := range s {
		total += Finite(it.Value)
	}
	return total
}

// NormalizedItem is an item together with its share of the series total.
type NormalizedItem struct {
	Item

	// ExactPercent is the unrounded share in the range 0–100.
	ExactPercent float64 `json:"exact_percent"`

	// Percent is the apportioned integer share. Percents of a series with a
	// positive total sum to exactly 100.
	Percent int `json:"percent"`
}

// Point is a position relative to the center of the pie.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt returns the point (x, y).
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Polar returns the point at the given radius and angle.
func Polar(radius, angle float64) Point {
	return Point{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)}
}

// Offset returns the point shifted by (dx, dy).
func (pt Point) Offset(dx, dy float64) Point {
	return Point{X: pt.X + dx, Y: pt.Y + dy}
}

// Add returns the vector sum of two points.
func (pt Point) Add(q Point) Point {
	return Point{X: pt.X + q.X, Y: pt.Y + q.Y}
}

func (pt Point) String() string {
	return fmt.Sprintf("(%g, %g)", pt.X, pt.Y)
}

// Side is the text-anchor side of a label.
type Side string

const (
	// SideStart anchors text left-to-right, used right of the circle.
	SideStart Side = "start"
	// SideEnd anchors text right-to-left, used left of the circle.
	SideEnd Side = "end"
)

// SliceGeometry is the angular extent of one pie slice.
type SliceGeometry struct {
	StartAngle float64 `json:"start_angle"`
	EndAngle   float64 `json:"end_angle"`
	LargeArc   int     `json:"large_arc"`
}

// fullCircleEpsilon absorbs floating drift when comparing sweeps against 2π.
const fullCircleEpsilon = 1e-9

// Sweep returns the angular extent of the slice.
func (s SliceGeometry) Sweep() float64 {
	return s.EndAngle - s.StartAngle
}

// Mid returns the angle halfway between start and end.
func (s SliceGeometry) Mid() float64 {
	return (s.StartAngle + s.EndAngle) / 2
}

// IsEmpty reports whether the slice has zero width and draws nothing.
func (s SliceGeometry) IsEmpty() bool {
	return s.Sweep() <= 0
}

// IsFullCircle reports whether the slice covers the whole circle. A single
// arc command whose endpoints coincide is degenerate, so path builders must
// draw such a slice as a closed circle instead.
func (s SliceGeometry) IsFullCircle() bool {
	return s.Sweep() >= 2*math.Pi-fullCircleEpsilon
}

// LabelAnchor places a slice label outside the circle. A leader line runs
// from Edge to Label.
type LabelAnchor struct {
	Edge  Point `json:"edge"`
	Label Point `json:"label"`
	Side  Side  `json:"side"`
}

// Wedge is the complete geometry for one item of a pie.
type Wedge struct {
	Item  NormalizedItem `json:"item"`
	Slice SliceGeometry  `json:"slice"`
	Label LabelAnchor    `json:"label"`
}

// Finite coerces NaN and ±Inf to 0, the rule every value in a series
// follows.
func Finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
