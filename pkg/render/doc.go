// Package render groups the chart renderers.
//
// # Overview
//
// Each chart type lives in its own subpackage and follows the same shape: a
// Build function computes a Layout from the data, and RenderXXX functions
// serialize that layout.
//
//   - [pie]: pie chart with outside labels (SVG, PNG, JSON)
//   - [bar]: horizontal percentage bars with breakdowns (SVG, PNG, HTML, JSON)
//   - [table]: accessible data table (HTML, text)
//   - [kpi]: headline figures (HTML, text)
//
// Shared pieces:
//
//   - [styles]: palette, locale-aware number formatting, XML escaping
//   - [raster]: a small anti-aliased canvas for PNG output
//   - [widget]: the embeddable HTML shell with the chart/table toggle
//
// A typical call:
//
//	l, err := pie.Build(series, pie.WithTitle("Revenue"))
//	if err != nil {
//	    return err
//	}
//	svg := pie.RenderSVG(l)
//
// [pie]: https://pkg.go.dev/github.com/matzehuels/sharechart/pkg/render/pie
// [bar]: https://pkg.go.dev/github.com/matzehuels/sharechart/pkg/render/bar
// [table]: https://pkg.go.dev/github.com/matzehuels/sharechart/pkg/render/table
// [kpi]: https://pkg.go.dev/github.com/matzehuels/sharechart/pkg/render/kpi
// [styles]: https://pkg.go.dev/github.com/matzehuels/sharechart/pkg/render/styles
// [raster]: https://pkg.go.dev/github.com/matzehuels/sharechart/pkg/render/raster
// [widget]: https://pkg.go.dev/github.com/matzehuels/sharechart/pkg/render/widget
package render
