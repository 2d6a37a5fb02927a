package pie

import (
	"github.com/matzehuels/sharechart/pkg/errors"
	"github.com/matzehuels/sharechart/pkg/proportion"
	"github.com/matzehuels/sharechart/pkg/render/raster"
	"github.com/matzehuels/sharechart/pkg/render/styles"
)

// Default geometry in SVG user units. Labels sit DefaultLabelOffset outside
// the rim, and the margins leave room for label text around the circle.
const (
	DefaultRadius      = 180.0
	DefaultLabelOffset = 36.0
	DefaultMarginX     = 200.0
	DefaultMarginY     = 40.0

	// TextNudge moves label text away from the end of its leader line.
	TextNudge = 8.0
)

// Option configures [Build].
type Option func(*builder)

type builder struct {
	title       string
	radius      float64
	labelOffset float64
	startAngle  float64
	marginX     float64
	marginY     float64
	palette     styles.Palette
}

// WithTitle sets the chart title used for the accessible name.
func WithTitle(t string) Option { return func(b *builder) { b.title = t } }

// WithRadius sets the pie radius. It must be positive.
func WithRadius(r float64) Option { return func(b *builder) { b.radius = r } }

// WithLabelOffset sets how far outside the rim labels are anchored.
func WithLabelOffset(d float64) Option { return func(b *builder) { b.labelOffset = d } }

// WithStartAngle sets where the first slice begins, in radians.
func WithStartAngle(a float64) Option { return func(b *builder) { b.startAngle = a } }

// WithPalette sets the colors for items without their own.
func WithPalette(p styles.Palette) Option { return func(b *builder) { b.palette = p } }

// WithMargins sets the space kept around the label ring.
func WithMargins(x, y float64) Option { return func(b *builder) { b.marginX, b.marginY = x, y } }

// Layout is a fully positioned pie chart, independent of output format.
type Layout struct {
	Title       string
	Radius      float64
	LabelRadius float64
	StartAngle  float64
	MarginX     float64
	MarginY     float64
	Wedges      []proportion.Wedge
	Colors      []string
}

// Build normalizes series and computes the wedge geometry.
//
// A non-positive radius or a negative label offset is reported as
// INVALID_CONFIGURATION. An empty or all-zero series is not an error; the
// layout then has no visible wedges.
func Build(series proportion.Series, opts ...Option) (Layout, error) {
	b := builder{
		radius:      DefaultRadius,
		labelOffset: DefaultLabelOffset,
		startAngle:  proportion.DefaultStartAngle,
		marginX:     DefaultMarginX,
		marginY:     DefaultMarginY,
		palette:     styles.DefaultPalette,
	}
	for _, opt := range opts {
		opt(&b)
	}
	if b.labelOffset < 0 {
		return Layout{}, errors.InvalidConfiguration("label offset must not be negative, got %g", b.labelOffset)
	}
	if b.marginX < 0 || b.marginY < 0 {
		return Layout{}, errors.InvalidConfiguration("margins must not be negative, got %g,%g", b.marginX, b.marginY)
	}

	cfg := proportion.PieConfig{
		InnerRadius: b.radius,
		LabelRadius: b.radius + b.labelOffset,
		StartAngle:  b.startAngle,
	}
	wedges, err := proportion.BuildPieGeometry(proportion.Normalize(series), cfg)
	if err != nil {
		return Layout{}, err
	}

	colors := make([]string, len(wedges))
	for i, w := range wedges {
		colors[i] = b.palette.Color(i, w.Item.Color)
	}
	return Layout{
		Title:       b.title,
		Radius:      cfg.InnerRadius,
		LabelRadius: cfg.LabelRadius,
		StartAngle:  cfg.StartAngle,
		MarginX:     b.marginX,
		MarginY:     b.marginY,
		Wedges:      wedges,
		Colors:      colors,
	}, nil
}

// Visible reports whether at least one wedge has a non-zero sweep.
func (l Layout) Visible() bool {
	for _, w := range l.Wedges {
		if !w.Slice.IsEmpty() {
			return true
		}
	}
	return false
}

// ViewBox returns the region of user space the chart occupies, centered on
// the pie. Margins are measured from the label radius.
func (l Layout) ViewBox() raster.Rect {
	hw := l.LabelRadius + l.MarginX
	hh := l.LabelRadius + l.MarginY
	return raster.Rect{X: -hw, Y: -hh, W: 2 * hw, H: 2 * hh}
}

// TextPoint returns where the label text of w starts, nudged outward from
// the leader line end.
func TextPoint(w proportion.Wedge) proportion.Point {
	if w.Label.Side == proportion.SideEnd {
		return w.Label.Label.Offset(-TextNudge, 0)
	}
	return w.Label.Label.Offset(TextNudge, 0)
}
