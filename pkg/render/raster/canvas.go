package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/matzehuels/sharechart/pkg/errors"
	"github.com/matzehuels/sharechart/pkg/proportion"
)

// DefaultFontSize is the label size in user-space units.
const DefaultFontSize = 14

// MaxPixels caps the size of a canvas (128 MiB of RGBA).
const MaxPixels = 1 << 25

// arcStep is the maximum angle covered by one segment of an approximated arc.
const arcStep = math.Pi / 90

// Rect is a region of user space, as in an SVG viewBox.
type Rect struct {
	X, Y, W, H float64
}

// Align selects which end of a text run sits on the anchor point.
type Align int

const (
	AlignStart Align = iota
	AlignMiddle
	AlignEnd
)

// AlignFor maps a label side onto a text alignment.
func AlignFor(s proportion.Side) Align {
	if s == proportion.SideEnd {
		return AlignEnd
	}
	return AlignStart
}

// Canvas is an RGBA image addressed in user-space coordinates.
type Canvas struct {
	img   *image.RGBA
	view  Rect
	scale float64
	face  font.Face
}

// NewCanvas allocates a white canvas covering view at the given pixel scale.
func NewCanvas(view Rect, scale float64) (*Canvas, error) {
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return nil, fmt.Errorf("invalid scale %g", scale)
	}
	fw, fh := math.Ceil(view.W*scale), math.Ceil(view.H*scale)
	if !(fw > 0 && fh > 0) {
		return nil, fmt.Errorf("invalid canvas size %gx%g", fw, fh)
	}
	if !(fw*fh <= MaxPixels) {
		return nil, errors.InvalidConfiguration("image of %gx%g pixels exceeds the limit of %d", fw, fh, MaxPixels)
	}
	w, h := int(fw), int(fh)
	face, err := newFace(DefaultFontSize * scale)
	if err != nil {
		return nil, err
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	return &Canvas{img: img, view: view, scale: scale, face: face}, nil
}

func newFace(size float64) (font.Face, error) {
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

// Image returns the underlying image.
func (c *Canvas) Image() *image.RGBA { return c.img }

func (c *Canvas) px(p proportion.Point) (float32, float32) {
	return float32((p.X - c.view.X) * c.scale), float32((p.Y - c.view.Y) * c.scale)
}

// FillPolygon fills the closed polygon through pts.
func (c *Canvas) FillPolygon(pts []proportion.Point, col color.Color) {
	if len(pts) < 3 {
		return
	}
	b := c.img.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	x, y := c.px(pts[0])
	z.MoveTo(x, y)
	for _, p := range pts[1:] {
		x, y = c.px(p)
		z.LineTo(x, y)
	}
	z.ClosePath()
	z.Draw(c.img, b, image.NewUniform(col), image.Point{})
}

// FillSector fills the pie sector between angles start and end. A sweep of
// a full turn or more is drawn as a disc.
func (c *Canvas) FillSector(center proportion.Point, r, start, end float64, col color.Color) {
	sweep := end - start
	if sweep <= 0 {
		return
	}
	if sweep >= 2*math.Pi-1e-9 {
		c.FillCircle(center, r, col)
		return
	}
	pts := []proportion.Point{center}
	pts = append(pts, arcPoints(center, r, start, end)...)
	c.FillPolygon(pts, col)
}

// FillCircle fills a disc of radius r.
func (c *Canvas) FillCircle(center proportion.Point, r float64, col color.Color) {
	pts := arcPoints(center, r, 0, 2*math.Pi)
	c.FillPolygon(pts[:len(pts)-1], col)
}

// StrokeSector outlines a sector with the given line width.
func (c *Canvas) StrokeSector(center proportion.Point, r, start, end, width float64, col color.Color) {
	sweep := end - start
	if sweep <= 0 {
		return
	}
	pts := arcPoints(center, r, start, end)
	for i := 1; i < len(pts); i++ {
		c.Line(pts[i-1], pts[i], width, col)
	}
	if sweep < 2*math.Pi-1e-9 {
		c.Line(center, pts[0], width, col)
		c.Line(center, pts[len(pts)-1], width, col)
	}
}

// FillRect fills an axis-aligned rectangle.
func (c *Canvas) FillRect(x, y, w, h float64, col color.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	c.FillPolygon([]proportion.Point{
		proportion.Pt(x, y), proportion.Pt(x+w, y),
		proportion.Pt(x+w, y+h), proportion.Pt(x, y+h),
	}, col)
}

// Line strokes a straight segment from a to b.
func (c *Canvas) Line(a, b proportion.Point, width float64, col color.Color) {
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	nx, ny := -dy/l*width/2, dx/l*width/2
	c.FillPolygon([]proportion.Point{
		a.Offset(nx, ny), b.Offset(nx, ny),
		b.Offset(-nx, -ny), a.Offset(-nx, -ny),
	}, col)
}

// Text draws s with its baseline vertically centred on p.
func (c *Canvas) Text(p proportion.Point, s string, align Align, col color.Color) {
	if s == "" {
		return
	}
	x, y := c.px(p)
	adv := font.MeasureString(c.face, s)
	dot := fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)}
	switch align {
	case AlignMiddle:
		dot.X -= adv / 2
	case AlignEnd:
		dot.X -= adv
	}
	dot.Y += c.face.Metrics().CapHeight / 2
	d := &font.Drawer{Dst: c.img, Src: image.NewUniform(col), Face: c.face, Dot: dot}
	d.DrawString(s)
}

// EncodePNG writes the canvas as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error {
	return png.Encode(w, c.img)
}

// arcPoints samples the arc from start to end, inclusive of both ends.
func arcPoints(center proportion.Point, r, start, end float64) []proportion.Point {
	n := max(int(math.Ceil((end-start)/arcStep)), 1)
	pts := make([]proportion.Point, 0, n+1)
	for i := range n + 1 {
		a := start + (end-start)*float64(i)/float64(n)
		pts = append(pts, center.Add(proportion.Polar(r, a)))
	}
	return pts
}
