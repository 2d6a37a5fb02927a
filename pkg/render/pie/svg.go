package pie

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/matzehuels/sharechart/pkg/proportion"
	"github.com/matzehuels/sharechart/pkg/render/styles"
)

// Stroke and text colors of the drawing.
const (
	SliceStroke  = "#fff"
	LeaderStroke = "#444"
	TextFill     = "#1a1a1a"

	// EmptyMessage is shown in place of a chart with nothing to draw.
	EmptyMessage = "No chart data."
)

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	id        string
	fontSize  float64
	noLabels  bool
	sliceLine float64
}

// WithID sets the id attribute of the root element.
func WithID(id string) SVGOption { return func(r *svgRenderer) { r.id = id } }

// WithFontSize sets the label size in pixels (default 16).
func WithFontSize(px float64) SVGOption { return func(r *svgRenderer) { r.fontSize = px } }

// WithoutLabels omits leader lines and label text.
func WithoutLabels() SVGOption { return func(r *svgRenderer) { r.noLabels = true } }

// WithSliceStrokeWidth sets the width of the white separator between slices.
func WithSliceStrokeWidth(w float64) SVGOption { return func(r *svgRenderer) { r.sliceLine = w } }

// RenderSVG draws the layout as a standalone SVG document.
func RenderSVG(l Layout, opts ...SVGOption) []byte {
	r := svgRenderer{fontSize: 16, sliceLine: 2}
	for _, opt := range opts {
		opt(&r)
	}

	vb := l.ViewBox()
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s" width="%s" height="%s" role="img"`,
		f(vb.X), f(vb.Y), f(vb.W), f(vb.H), styles.Num(vb.W, 0), styles.Num(vb.H, 0))
	if r.id != "" {
		fmt.Fprintf(&buf, ` id="%s"`, styles.EscapeXML(r.id))
	}
	if l.Title != "" {
		fmt.Fprintf(&buf, ` aria-label="%s"`, styles.EscapeXML(l.Title))
	}
	buf.WriteString(">\n")
	if l.Title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", styles.EscapeXML(l.Title))
	}

	if !l.Visible() {
		fmt.Fprintf(&buf, `  <text x="0" y="0" text-anchor="middle" dominant-baseline="middle" font-size="%s" fill="%s">%s</text>`+"\n",
			styles.Num(r.fontSize, 0), TextFill, EmptyMessage)
		buf.WriteString("</svg>\n")
		return buf.Bytes()
	}

	buf.WriteString(`  <g class="slices">` + "\n")
	for i, w := range l.Wedges {
		d := ArcPath(l.Radius, w.Slice)
		if d == "" {
			continue
		}
		fmt.Fprintf(&buf, `    <path class="slice" d="%s" fill="%s" stroke="%s" stroke-width="%s" aria-label="%s"/>`+"\n",
			d, styles.EscapeXML(l.Colors[i]), SliceStroke, styles.Num(r.sliceLine, 1), styles.EscapeXML(AriaLabel(w.Item)))
	}
	buf.WriteString("  </g>\n")

	if !r.noLabels {
		renderLabels(&buf, l, r.fontSize)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderLabels(buf *bytes.Buffer, l Layout, fontSize float64) {
	buf.WriteString(`  <g class="labels">` + "\n")
	for _, w := range l.Wedges {
		if w.Slice.IsEmpty() {
			continue
		}
		e, lp, tp := w.Label.Edge, w.Label.Label, TextPoint(w)
		fmt.Fprintf(buf, `    <line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="1.5"/>`+"\n",
			f1(e.X), f1(e.Y), f1(lp.X), f1(lp.Y), LeaderStroke)
		fmt.Fprintf(buf, `    <text class="pie-label" x="%s" y="%s" text-anchor="%s" dominant-baseline="middle" font-size="%s" fill="%s">%s</text>`+"\n",
			f1(tp.X), f1(tp.Y), w.Label.Side, styles.Num(fontSize, 0), TextFill, styles.EscapeXML(LabelText(w.Item)))
	}
	buf.WriteString("  </g>\n")
}

// LabelText is the visible label of a wedge, such as "Parks 30%".
func LabelText(it proportion.NormalizedItem) string {
	return fmt.Sprintf("%s %d%%", it.Name, it.Percent)
}

// AriaLabel is the accessible description of a wedge, such as
// "Parks: 30% (1200)".
func AriaLabel(it proportion.NormalizedItem) string {
	return fmt.Sprintf("%s: %d%% (%s)", it.Name, it.Percent, strconv.FormatFloat(it.Value, 'f', -1, 64))
}
