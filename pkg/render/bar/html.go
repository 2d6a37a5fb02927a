package bar

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/sharechart/pkg/render/styles"
)

// CSS styles the HTML fragment produced by [RenderHTML].
const CSS = `
  .tax-chart { --bar:#0095cc; --row-h:27px; --border:#dbdcdd; font-family: Inter, system-ui, sans-serif; overflow:hidden; padding:0 20px 20px; border:1px solid var(--border); background:#fff; }
  .tax-chart__plot { position:relative; padding-block:6px; }
  .bar-container { padding:12px 0; border-bottom:1px solid var(--border); }
  .bar-container:last-of-type { border-bottom:0; }
  .bar-text { line-height:1.25; margin:0 0 8px 0; }
  .bar { height:var(--row-h); display:flex; align-items:center; gap:10px; }
  .bar .fill { width:var(--w); height:100%; background:var(--bar); box-sizing:border-box; }
  .percent-text { margin-left:10px; white-space:nowrap; }
  .breakdown-panel { margin-top:8px; }
  .breakdown__list { list-style:none; margin:15px 0 0; padding:0; display:grid; gap:6px; }
  .breakdown__list li { display:flex; justify-content:space-between; border-bottom:1px dashed var(--border); padding:4px 0; }
  .breakdown__list li:last-child { border-bottom:0; }`

// PlotLabel describes the chart to assistive technology.
const PlotLabel = "Horizontal bar chart showing allocation by category."

// HTMLOption configures [RenderHTML].
type HTMLOption func(*htmlRenderer)

type htmlRenderer struct {
	id     string
	format *styles.Formatter
	css    bool
}

// WithHTMLID prefixes element ids, so several charts can share a page.
func WithHTMLID(id string) HTMLOption { return func(r *htmlRenderer) { r.id = id } }

// WithFormatter sets the formatter for breakdown amounts.
func WithFormatter(f *styles.Formatter) HTMLOption { return func(r *htmlRenderer) { r.format = f } }

// WithCSS embeds [CSS] in a style element.
func WithCSS() HTMLOption { return func(r *htmlRenderer) { r.css = true } }

// RenderHTML writes the chart as an HTML fragment.
func RenderHTML(l Layout, opts ...HTMLOption) []byte {
	r := htmlRenderer{id: "bar"}
	for _, opt := range opts {
		opt(&r)
	}
	if r.format == nil {
		r.format = styles.DefaultFormatter()
	}

	var buf bytes.Buffer
	if r.css {
		fmt.Fprintf(&buf, "<style>%s\n</style>\n", CSS)
	}
	buf.WriteString(`<section class="tax-chart"`)
	if l.Title != "" {
		fmt.Fprintf(&buf, ` aria-label="%s"`, styles.EscapeXML(l.Title))
	}
	buf.WriteString(">\n")
	if len(l.Bars) == 0 {
		fmt.Fprintf(&buf, "  <p class=\"empty\">%s</p>\n</section>\n", EmptyMessage)
		return buf.Bytes()
	}

	fmt.Fprintf(&buf, `  <div class="tax-chart__plot" role="img" aria-label="%s">`+"\n", PlotLabel)
	for i, b := range l.Bars {
		buf.WriteString(`    <div class="bar-container">` + "\n")
		fmt.Fprintf(&buf, `      <p class="bar-text">%s</p>`+"\n", styles.EscapeXML(b.Name))
		fmt.Fprintf(&buf, `      <div class="bar"><div class="fill" style="--w:%s%%;background:%s"></div><span class="percent-text">%s</span></div>`+"\n",
			styles.Num(b.Fraction, 2), styles.EscapeXML(b.Color), styles.EscapeXML(b.ValueText()))
		if len(b.Breakdown) > 0 {
			fmt.Fprintf(&buf, `      <details class="breakdown-panel" id="%s-breakdown-%d"><summary>Breakdown</summary>`+"\n",
				styles.EscapeXML(r.id), i)
			buf.WriteString(`        <ul class="breakdown__list">` + "\n")
			for _, line := range b.Breakdown {
				fmt.Fprintf(&buf, "          <li><span>%s</span><span>%s</span></li>\n",
					styles.EscapeXML(line.Label), styles.EscapeXML(r.format.Money(line.Amount)))
			}
			buf.WriteString("        </ul>\n      </details>\n")
		}
		buf.WriteString("    </div>\n")
	}
	buf.WriteString("  </div>\n</section>\n")
	return buf.Bytes()
}
