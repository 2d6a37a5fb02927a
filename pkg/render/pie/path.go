package pie

import (
	"fmt"
	"math"

	"github.com/matzehuels/sharechart/pkg/proportion"
	"github.com/matzehuels/sharechart/pkg/render/styles"
)

// ArcPath returns the SVG path data for a pie sector of radius r centered on
// the origin.
//
// Zero-width slices have no path and return "". A full circle cannot be
// drawn by one arc whose endpoints coincide, so it is emitted as two
// half-circle arcs through the opposite point.
func ArcPath(r float64, s proportion.SliceGeometry) string {
	switch {
	case s.IsEmpty():
		return ""
	case s.IsFullCircle():
		p0 := proportion.Polar(r, s.StartAngle)
		p1 := proportion.Polar(r, s.StartAngle+math.Pi)
		return fmt.Sprintf("M %s %s A %s %s 0 1 1 %s %s A %s %s 0 1 1 %s %s Z",
			f(p0.X), f(p0.Y),
			f(r), f(r), f(p1.X), f(p1.Y),
			f(r), f(r), f(p0.X), f(p0.Y))
	default:
		p0 := proportion.Polar(r, s.StartAngle)
		p1 := proportion.Polar(r, s.EndAngle)
		return fmt.Sprintf("M 0 0 L %s %s A %s %s 0 %d 1 %s %s Z",
			f(p0.X), f(p0.Y),
			f(r), f(r), s.LargeArc, f(p1.X), f(p1.Y))
	}
}

func f(v float64) string { return styles.Num(v, 2) }

func f1(v float64) string { return styles.Num(v, 1) }
