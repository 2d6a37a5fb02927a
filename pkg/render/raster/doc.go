// Package raster draws chart primitives into a PNG image without any
// external converter.
//
// Shapes are filled with the anti-aliasing rasterizer from
// golang.org/x/image/vector; curved outlines are approximated with short
// line segments. Text is set in the embedded Go Regular face. A [Canvas] maps
// chart coordinates (the same user space as the SVG viewBox) onto pixels,
// so renderers can share geometry between their SVG and PNG outputs:
//
//	c, err := raster.NewCanvas(raster.Rect{X: -380, Y: -220, W: 760, H: 440}, 2)
//	c.FillSector(proportion.Pt(0, 0), 180, start, end, raster.ParseColor("#1f77b4"))
//	c.Text(proportion.Pt(200, 0), "Parks 30%", raster.AlignStart, raster.ParseColor("#222"))
//	err = c.EncodePNG(w)
package raster
