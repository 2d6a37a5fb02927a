// Package pie renders share-of-total data as a labelled pie chart.
//
// A chart is produced in two steps. [Build] normalizes a series into integer
// percentages and lays out one wedge per item, then a sink turns the
// [Layout] into an output format:
//
//	l, err := pie.Build(series, pie.WithTitle("Revenue"))
//	if err != nil {
//		return err // INVALID_CONFIGURATION for a bad radius
//	}
//	svg := pie.RenderSVG(l)
//	png, err := pie.RenderPNG(l, pie.WithScale(2))
//
// Labels sit outside the circle at the label radius, joined to the rim by a
// leader line, and are anchored on the side of the circle they fall on.
// A single item with a non-zero value becomes a full disc, which SVG cannot
// express with one arc command; [ArcPath] emits two half-circle arcs for it.
package pie
