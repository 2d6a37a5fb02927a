package bar

import (
	"bytes"

	"github.com/matzehuels/sharechart/pkg/proportion"
	"github.com/matzehuels/sharechart/pkg/render/raster"
)

// RenderPNG rasterizes the chart at the given pixel scale, with the same
// geometry as [RenderSVG].
func RenderPNG(l Layout, scale float64) ([]byte, error) {
	c, err := raster.NewCanvas(raster.Rect{W: Width, H: l.Height()}, scale)
	if err != nil {
		return nil, err
	}
	text := raster.ParseColor(TextFill)
	if len(l.Bars) == 0 {
		c.Text(proportion.Pt(Width/2, l.Height()/2), EmptyMessage, raster.AlignMiddle, text)
	}
	for i, b := range l.Bars {
		y := rowTop(i)
		w := b.Width() / 100 * PlotWidth
		c.Text(proportion.Pt(Padding, y+LabelHeight/2), b.Name, raster.AlignStart, text)
		c.FillRect(Padding, y+LabelHeight, w, RowHeight, raster.ParseColor(b.Color))
		c.Text(proportion.Pt(Padding+w+TextGap, y+LabelHeight+RowHeight/2), b.ValueText(), raster.AlignStart, text)
	}
	var buf bytes.Buffer
	if err := c.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
