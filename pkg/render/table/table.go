// Package table renders normalized items as an accessible data table, the
// tabular alternative to a pie chart.
package table

import (
	"bytes"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/sharechart/pkg/proportion"
	"github.com/matzehuels/sharechart/pkg/render/styles"
)

// Column headings, in order.
var Headers = []string{"Category", "Amount", "Percent"}

// Row is one formatted table row.
type Row struct {
	Category string
	Amount   string
	Percent  string
}

// Rows formats items for display. Amounts keep at most two fraction digits.
func Rows(items []proportion.NormalizedItem, f *styles.Formatter) []Row {
	if f == nil {
		f = styles.DefaultFormatter()
	}
	rows := make([]Row, len(items))
	for i, it := range items {
		rows[i] = Row{
			Category: it.Name,
			Amount:   f.Amount(it.Value),
			Percent:  f.Percent(it.Percent),
		}
	}
	return rows
}

// CSS styles the markup from [RenderHTML].
const CSS = `
  .govuk-table-container { overflow-x:auto; }
  .govuk-table { width:100%; border-collapse:collapse; background:#fff; font-family:Arial, Helvetica, sans-serif; font-size:19px; line-height:1.25; }
  .govuk-table__caption { text-align:left; padding:10px 0; margin:0; font-weight:700; }
  .govuk-table__head .govuk-table__header { border-bottom:2px solid #0b0c0c; }
  .govuk-table__row > .govuk-table__header, .govuk-table__row > .govuk-table__cell { padding:10px 0; vertical-align:top; text-align:left; border-bottom:1px solid #b1b4b6; }
  .govuk-table__header--numeric, .govuk-table__cell--numeric { text-align:right; }`

// RenderHTML writes rows as a GOV.UK style table. A non-empty caption is
// used as the table caption and the accessible name of its container.
func RenderHTML(rows []Row, caption string) []byte {
	var buf bytes.Buffer
	buf.WriteString(`<div class="govuk-table-container" role="region" tabindex="0"`)
	if caption != "" {
		fmt.Fprintf(&buf, ` aria-label="%s"`, styles.EscapeXML(caption))
	}
	buf.WriteString(">\n  <table class=\"govuk-table\">\n")
	if caption != "" {
		fmt.Fprintf(&buf, "    <caption class=\"govuk-table__caption\">%s</caption>\n", styles.EscapeXML(caption))
	}
	buf.WriteString("    <thead class=\"govuk-table__head\">\n      <tr class=\"govuk-table__row\">\n")
	for i, h := range Headers {
		class := "govuk-table__header"
		if i > 0 {
			class += " govuk-table__header--numeric"
		}
		fmt.Fprintf(&buf, "        <th scope=\"col\" class=\"%s\">%s</th>\n", class, h)
	}
	buf.WriteString("      </tr>\n    </thead>\n    <tbody class=\"govuk-table__body\">\n")
	for _, r := range rows {
		buf.WriteString("      <tr class=\"govuk-table__row\">\n")
		fmt.Fprintf(&buf, "        <th scope=\"row\" class=\"govuk-table__header\" style=\"font-weight:400;\">%s</th>\n", styles.EscapeXML(r.Category))
		fmt.Fprintf(&buf, "        <td class=\"govuk-table__cell govuk-table__cell--numeric\" data-title=\"Amount\">%s</td>\n", styles.EscapeXML(r.Amount))
		fmt.Fprintf(&buf, "        <td class=\"govuk-table__cell govuk-table__cell--numeric\" data-title=\"Percent\">%s</td>\n", r.Percent)
		buf.WriteString("      </tr>\n")
	}
	buf.WriteString("    </tbody>\n  </table>\n</div>\n")
	return buf.Bytes()
}

// RenderText draws rows as a bordered plain-text table with numeric columns
// right-aligned.
func RenderText(rows []Row) string {
	data := make([][]string, len(rows))
	for i, r := range rows {
		data[i] = []string{r.Category, r.Amount, r.Percent}
	}
	cell := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(Headers...).
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col > 0 {
				return cell.Align(lipgloss.Right)
			}
			return cell
		})
	return t.Render() + "\n"
}
