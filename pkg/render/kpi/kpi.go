// Package kpi renders headline figures as a grid of tiles.
package kpi

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/sharechart/pkg/io"
	"github.com/matzehuels/sharechart/pkg/render/styles"
)

// CSS styles the markup from [RenderHTML].
const CSS = `
  .kpi-grid { display:grid; grid-template-columns:repeat(auto-fit, minmax(220px, 1fr)); gap:12px; margin:12px 0 24px; padding:0; list-style:none; }
  .kpi-grid > li { background:#f5f5f6; padding:2rem; border:1px solid #dbdcdd; }
  .kpi-grid span { display:block; }
  .kpi-grid strong { display:block; font-size:2.5rem; font-weight:800; }
  @media (max-width:520px) { .kpi-grid strong { font-size:2rem; } }`

// RenderHTML writes one tile per KPI, with an optional heading above the
// grid. Values are shown verbatim.
func RenderHTML(kpis []io.KPI, heading string) []byte {
	var buf bytes.Buffer
	if heading != "" {
		fmt.Fprintf(&buf, "<h2>%s</h2>\n", styles.EscapeXML(heading))
	}
	buf.WriteString("<ul class=\"kpi-grid\" role=\"list\">\n")
	for _, k := range kpis {
		fmt.Fprintf(&buf, "  <li><span>%s</span><strong>%s</strong></li>\n",
			styles.EscapeXML(k.Label), styles.EscapeXML(k.Value))
	}
	buf.WriteString("</ul>\n")
	return buf.Bytes()
}

// RenderText lists KPIs one per line as "label: value".
func RenderText(kpis []io.KPI) string {
	var buf bytes.Buffer
	for _, k := range kpis {
		fmt.Fprintf(&buf, "%s: %s\n", k.Label, k.Value)
	}
	return buf.String()
}
