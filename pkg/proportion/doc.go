// Package proportion turns a series of labeled values into display shares and
// chart geometry.
//
// # Overview
//
// Every sharechart presentation (pie, bar, table, KPI) is a thin adapter over
// three pure functions in this package:
//
//   - [Normalize] converts raw values into integer percentages that sum to
//     exactly 100, using the largest-remainder (Hamilton) method.
//   - [BuildPieGeometry] turns normalized percentages into contiguous pie
//     slices and label anchors around a circle.
//   - [ScaleFraction] maps a raw value onto a fixed maximum for bar fills.
//
// The data flow is:
//
//	Series ──► Normalize ──► []NormalizedItem ──► BuildPieGeometry ──► []Wedge
//	   │
//	   └────► ScaleFraction (per item, bar charts)
//
// # Degenerate and Malformed Input
//
// An empty series, or a series whose values sum to zero, is not an error:
// every percentage is 0 and the geometry is empty or zero-width. NaN and
// infinite values are coerced to 0 so that one bad item does not abort the
// rest of the series. Negative values are not validated; sanitizing input
// is the caller's job.
//
// Invalid configuration (a non-positive scale maximum or radius) is returned
// as an error carrying [errors.ErrCodeInvalidConfiguration]. No default is
// substituted, since a wrong default would silently misstate magnitudes.
//
// # Coordinates
//
// Angles are in radians. The reference orientation starts at the top of the
// circle ([DefaultStartAngle], −π/2) and proceeds clockwise in screen
// coordinates, where Y grows downward. Points are relative to the circle's
// center.
//
// # Concurrency
//
// All functions are pure and keep no state; they are safe to call from any
// number of goroutines.
//
// [errors.ErrCodeInvalidConfiguration]: github.com/matzehuels/sharechart/pkg/errors
package proportion
