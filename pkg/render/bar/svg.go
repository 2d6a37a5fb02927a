package bar

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/sharechart/pkg/render/styles"
)

// Row metrics in user-space units, shared by the SVG and PNG sinks.
const (
	Width       = 760.0
	PlotWidth   = 640.0
	LabelHeight = 22.0
	RowHeight   = 27.0
	RowGap      = 24.0
	Padding     = 20.0
	TextGap     = 10.0
	TextFill    = "#222"
)

func rowTop(i int) float64 {
	return Padding + float64(i)*(LabelHeight+RowHeight+RowGap)
}

// Height is the total height of the rendered chart.
func (l Layout) Height() float64 {
	if len(l.Bars) == 0 {
		return 2*Padding + RowHeight
	}
	return rowTop(len(l.Bars)) - RowGap + Padding
}

// RenderSVG draws the chart as a standalone SVG document.
func RenderSVG(l Layout) []byte {
	h := l.Height()
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s" role="img" aria-label="%s">`+"\n",
		styles.Num(Width, 0), styles.Num(h, 0), styles.Num(Width, 0), styles.Num(h, 0), PlotLabel)
	if l.Title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", styles.EscapeXML(l.Title))
	}
	if len(l.Bars) == 0 {
		fmt.Fprintf(&buf, `  <text x="%s" y="%s" text-anchor="middle" dominant-baseline="middle" font-size="14" fill="%s">%s</text>`+"\n",
			styles.Num(Width/2, 0), styles.Num(h/2, 0), TextFill, EmptyMessage)
		buf.WriteString("</svg>\n")
		return buf.Bytes()
	}
	for i, b := range l.Bars {
		y := rowTop(i)
		w := b.Width() / 100 * PlotWidth
		fmt.Fprintf(&buf, `  <g class="bar">`+"\n")
		fmt.Fprintf(&buf, `    <text x="%s" y="%s" dominant-baseline="middle" font-size="14" fill="%s">%s</text>`+"\n",
			styles.Num(Padding, 0), styles.Num(y+LabelHeight/2, 1), TextFill, styles.EscapeXML(b.Name))
		fmt.Fprintf(&buf, `    <rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`+"\n",
			styles.Num(Padding, 0), styles.Num(y+LabelHeight, 1), styles.Num(w, 2), styles.Num(RowHeight, 0), styles.EscapeXML(b.Color))
		fmt.Fprintf(&buf, `    <text x="%s" y="%s" dominant-baseline="middle" font-size="14" fill="%s">%s</text>`+"\n",
			styles.Num(Padding+w+TextGap, 2), styles.Num(y+LabelHeight+RowHeight/2, 1), TextFill, styles.EscapeXML(b.ValueText()))
		buf.WriteString("  </g>\n")
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}
