package pie

import (
	"bytes"

	"github.com/matzehuels/sharechart/pkg/proportion"
	"github.com/matzehuels/sharechart/pkg/render/raster"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale    float64
	noLabels bool
}

// WithScale sets the pixels per user-space unit (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption { return func(r *pngRenderer) { r.scale = s } }

// WithoutPNGLabels omits leader lines and label text.
func WithoutPNGLabels() PNGOption { return func(r *pngRenderer) { r.noLabels = true } }

// RenderPNG rasterizes the layout. The image covers the same view box as
// [RenderSVG].
func RenderPNG(l Layout, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}
	c, err := raster.NewCanvas(l.ViewBox(), r.scale)
	if err != nil {
		return nil, err
	}

	origin := proportion.Pt(0, 0)
	text := raster.ParseColor(TextFill)
	if !l.Visible() {
		c.Text(origin, EmptyMessage, raster.AlignMiddle, text)
		return encode(c)
	}

	white := raster.ParseColor(SliceStroke)
	for i, w := range l.Wedges {
		if w.Slice.IsEmpty() {
			continue
		}
		c.FillSector(origin, l.Radius, w.Slice.StartAngle, w.Slice.EndAngle, raster.ParseColor(l.Colors[i]))
		c.StrokeSector(origin, l.Radius, w.Slice.StartAngle, w.Slice.EndAngle, 2, white)
	}
	if r.noLabels {
		return encode(c)
	}

	leader := raster.ParseColor(LeaderStroke)
	for _, w := range l.Wedges {
		if w.Slice.IsEmpty() {
			continue
		}
		c.Line(w.Label.Edge, w.Label.Label, 1.5, leader)
		c.Text(TextPoint(w), LabelText(w.Item), raster.AlignFor(w.Label.Side), text)
	}
	return encode(c)
}

func encode(c *raster.Canvas) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
