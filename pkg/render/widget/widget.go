// Package widget composes rendered parts into an embeddable HTML fragment:
// a chart with a table alternative behind a toggle button, optional KPI
// tiles, and the fallback messages shown when there is nothing to draw.
package widget

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/sharechart/pkg/errors"
	"github.com/matzehuels/sharechart/pkg/render/styles"
)

const (
	// EmptyMessage is shown when the data source has no items.
	EmptyMessage = "No chart data."
	// NoSourceMessage is shown when no data source was given.
	NoSourceMessage = "No data provided."
)

// CSS styles the widget shell.
const CSS = `
  .host { width:100%; font-family:Arial, Helvetica, sans-serif; }
  .toggle { padding:.5rem .75rem; max-width:max-content; cursor:pointer; }
  .toggle:focus-visible { outline:3px solid #1f77b4; outline-offset:2px; }
  .chart svg { width:100%; height:auto; display:block; }
  .sr-live { position:absolute; width:1px; height:1px; overflow:hidden; clip:rect(0 0 0 0); }
  .err { color:#b00020; font:14px/1.4 system-ui, sans-serif; }`

const toggleJS = `
  (function () {
    var host = document.getElementById(%q);
    var btn = host.querySelector('.toggle');
    var live = host.querySelector('.sr-live');
    var chart = document.getElementById(%q), table = document.getElementById(%q);
    btn.addEventListener('click', function () {
      var showTable = btn.getAttribute('aria-pressed') !== 'true';
      btn.setAttribute('aria-pressed', String(showTable));
      btn.textContent = showTable ? 'Show chart' : 'Show table';
      chart.hidden = showTable;
      table.hidden = !showTable;
      live.textContent = showTable ? 'Table view shown' : 'Chart view shown';
    });
  })();`

// Widget holds the rendered parts of one embeddable chart.
type Widget struct {
	// ID prefixes element ids; it must be unique on the page.
	ID    string
	Title string
	View  ViewMode
	// Chart is the markup shown in chart view (inline SVG or HTML).
	Chart []byte
	// Table is the markup shown in table view. Without it the widget shows
	// the chart alone and no toggle.
	Table []byte
	// KPIs is optional markup placed above the chart.
	KPIs []byte
	// ExtraCSS is appended to the widget style sheet.
	ExtraCSS string
	// Script enables the client-side toggle.
	Script bool
}

// RenderHTML writes the widget. Only the part matching View is visible;
// the other is present but hidden so the toggle can reveal it.
func RenderHTML(w Widget) []byte {
	id := w.ID
	if id == "" {
		id = "sharechart"
	}
	view := w.View
	if view == "" {
		view = ViewChart
	}
	chartID, tableID := id+"-chart", id+"-table"

	var buf bytes.Buffer
	writeStyle(&buf, w.ExtraCSS)
	fmt.Fprintf(&buf, "<div class=\"host\" id=\"%s\">\n", styles.EscapeXML(id))
	if w.Title != "" {
		fmt.Fprintf(&buf, "  <h2 class=\"chart-title\">%s</h2>\n", styles.EscapeXML(w.Title))
	}
	if len(w.KPIs) > 0 {
		buf.Write(w.KPIs)
	}
	if w.Table == nil {
		fmt.Fprintf(&buf, "  <div id=\"%s\" class=\"chart\">\n", styles.EscapeXML(chartID))
		buf.Write(w.Chart)
		buf.WriteString("  </div>\n</div>\n")
		return buf.Bytes()
	}

	fmt.Fprintf(&buf, "  <div><button class=\"toggle\" aria-pressed=\"%t\" aria-controls=\"%s %s\" type=\"button\">%s</button></div>\n",
		view == ViewTable, styles.EscapeXML(chartID), styles.EscapeXML(tableID), view.ButtonLabel())
	buf.WriteString("  <div class=\"sr-live\" aria-live=\"polite\"></div>\n")
	fmt.Fprintf(&buf, "  <div id=\"%s\" class=\"chart\"%s>\n", styles.EscapeXML(chartID), hidden(view != ViewChart))
	buf.Write(w.Chart)
	buf.WriteString("  </div>\n")
	fmt.Fprintf(&buf, "  <div id=\"%s\" class=\"tablewrap\"%s>\n", styles.EscapeXML(tableID), hidden(view != ViewTable))
	buf.Write(w.Table)
	buf.WriteString("  </div>\n")
	if w.Script {
		fmt.Fprintf(&buf, "  <script>%s\n  </script>\n", fmt.Sprintf(toggleJS, id, chartID, tableID))
	}
	buf.WriteString("</div>\n")
	return buf.Bytes()
}

// RenderMessage writes the widget shell around a single error-styled
// message, used for the empty and failed states.
func RenderMessage(msg string) []byte {
	var buf bytes.Buffer
	writeStyle(&buf, "")
	fmt.Fprintf(&buf, "<div class=\"host\">\n  <p class=\"err\">%s</p>\n</div>\n", styles.EscapeXML(msg))
	return buf.Bytes()
}

// RenderEmpty is the fallback for a source with no items.
func RenderEmpty() []byte { return RenderMessage(EmptyMessage) }

// RenderFailure is the fallback for a source that could not be loaded.
func RenderFailure(err error) []byte {
	return RenderMessage("Failed to load: " + FailureReason(err))
}

// FailureReason is the user-facing part of a load error.
func FailureReason(err error) string {
	if err == nil {
		return "unknown error"
	}
	return errors.UserMessage(err)
}

func writeStyle(buf *bytes.Buffer, extra string) {
	fmt.Fprintf(buf, "<style>%s%s\n</style>\n", CSS, extra)
}

func hidden(h bool) string {
	if h {
		return " hidden"
	}
	return ""
}
