package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/sharechart/pkg/errors"
	"github.com/matzehuels/sharechart/pkg/io"
	"github.com/matzehuels/sharechart/pkg/proportion"
	"github.com/matzehuels/sharechart/pkg/render/bar"
	"github.com/matzehuels/sharechart/pkg/render/kpi"
	"github.com/matzehuels/sharechart/pkg/render/pie"
	"github.com/matzehuels/sharechart/pkg/render/table"
	"github.com/matzehuels/sharechart/pkg/render/widget"
)

// chart is a document laid out for one chart type. Building it validates
// every geometry option, so a bad configuration fails before any output is
// written.
type chart struct {
	doc   io.Document
	opts  Options
	title string
	items []proportion.NormalizedItem
	pie   pie.Layout
	bar   bar.Layout
}

// RenderDocument generates output artifacts for doc in the requested
// formats. Formats are rendered concurrently.
func RenderDocument(doc io.Document, opts Options) (map[string][]byte, error) {
	return renderFormats(context.Background(), doc, opts, opts.Formats)
}

func renderFormats(ctx context.Context, doc io.Document, opts Options, formats []string) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	c, err := newChart(doc, opts)
	if err != nil {
		return nil, err
	}

	var (
		mu        sync.Mutex
		artifacts = make(map[string][]byte, len(formats))
	)
	g, ctx := errgroup.WithContext(ctx)
	for _, format := range formats {
		g.Go(func() (err error) {
			defer func() {
				if p := recover(); p != nil {
					err = errors.New(errors.ErrCodeInternal, "render %s: panic: %v", format, p)
				}
			}()
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := c.render(format)
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			mu.Lock()
			artifacts[format] = data
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}

func newChart(doc io.Document, opts Options) (*chart, error) {
	c := &chart{doc: doc, opts: opts, title: opts.ResolveTitle(doc.Title)}
	switch opts.Chart {
	case ChartPie:
		l, err := pie.Build(doc.Series(),
			pie.WithTitle(c.title),
			pie.WithRadius(opts.Radius),
			pie.WithLabelOffset(opts.LabelOffset),
			pie.WithPalette(opts.PaletteOrDefault()),
		)
		if err != nil {
			return nil, err
		}
		c.pie = l
		c.items = wedgeItems(l.Wedges)
	case ChartBar:
		l, err := bar.Build(doc.Entries, bar.WithTitle(c.title), bar.WithMax(opts.Max))
		if err != nil {
			return nil, err
		}
		c.bar = l
		c.items = proportion.Normalize(doc.Series())
	default:
		c.items = proportion.Normalize(doc.Series())
	}
	return c, nil
}

func wedgeItems(wedges []proportion.Wedge) []proportion.NormalizedItem {
	items := make([]proportion.NormalizedItem, len(wedges))
	for i, w := range wedges {
		items[i] = w.Item
	}
	return items
}

func (c *chart) render(format string) ([]byte, error) {
	switch c.opts.Chart {
	case ChartPie:
		return c.renderPie(format)
	case ChartBar:
		return c.renderBar(format)
	case ChartTable:
		return c.renderTable(format)
	case ChartKPI:
		return c.renderKPI(format)
	}
	return nil, fmt.Errorf("unsupported chart: %s", c.opts.Chart)
}

func (c *chart) renderPie(format string) ([]byte, error) {
	switch format {
	case FormatSVG:
		return pie.RenderSVG(c.pie, pie.WithID(c.opts.ID+"-pie")), nil
	case FormatPNG:
		return pie.RenderPNG(c.pie, pie.WithScale(c.opts.Scale))
	case FormatJSON:
		return pie.RenderJSON(c.pie)
	case FormatTXT:
		return c.text(), nil
	case FormatHTML:
		if !c.pie.Visible() {
			return widget.RenderEmpty(), nil
		}
		return widget.RenderHTML(widget.Widget{
			ID:       c.opts.ID,
			Title:    c.title,
			View:     c.opts.ViewMode(),
			Chart:    pie.RenderSVG(c.pie, pie.WithID(c.opts.ID+"-pie")),
			Table:    c.tableHTML(),
			KPIs:     c.kpiHTML(),
			ExtraCSS: table.CSS + c.kpiCSS(),
			Script:   c.opts.Script,
		}), nil
	}
	return nil, fmt.Errorf("unsupported pie format: %s", format)
}

func (c *chart) renderBar(format string) ([]byte, error) {
	switch format {
	case FormatSVG:
		return bar.RenderSVG(c.bar), nil
	case FormatPNG:
		return bar.RenderPNG(c.bar, c.opts.Scale)
	case FormatJSON:
		return bar.RenderJSON(c.bar)
	case FormatTXT:
		return c.text(), nil
	case FormatHTML:
		if len(c.bar.Bars) == 0 {
			return widget.RenderEmpty(), nil
		}
		return widget.RenderHTML(widget.Widget{
			ID:    c.opts.ID,
			Title: c.title,
			View:  c.opts.ViewMode(),
			Chart: bar.RenderHTML(c.bar,
				bar.WithHTMLID(c.opts.ID+"-bar"),
				bar.WithFormatter(c.opts.Formatter()),
			),
			Table:    c.tableHTML(),
			KPIs:     c.kpiHTML(),
			ExtraCSS: bar.CSS + table.CSS + c.kpiCSS(),
			Script:   c.opts.Script,
		}), nil
	}
	return nil, fmt.Errorf("unsupported bar format: %s", format)
}

func (c *chart) renderTable(format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return marshal(c.rows())
	case FormatTXT:
		return c.text(), nil
	case FormatHTML:
		if len(c.items) == 0 {
			return widget.RenderEmpty(), nil
		}
		return widget.RenderHTML(widget.Widget{
			ID:       c.opts.ID,
			Title:    c.title,
			Chart:    c.tableHTML(),
			KPIs:     c.kpiHTML(),
			ExtraCSS: table.CSS + c.kpiCSS(),
		}), nil
	}
	return nil, fmt.Errorf("unsupported table format: %s", format)
}

func (c *chart) renderKPI(format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		kpis := c.doc.KPIs
		if kpis == nil {
			kpis = []io.KPI{}
		}
		return marshal(kpis)
	case FormatTXT:
		return []byte(kpi.RenderText(c.doc.KPIs)), nil
	case FormatHTML:
		if len(c.doc.KPIs) == 0 {
			return widget.RenderEmpty(), nil
		}
		return widget.RenderHTML(widget.Widget{
			ID:       c.opts.ID,
			Title:    c.title,
			Chart:    kpi.RenderHTML(c.doc.KPIs, ""),
			ExtraCSS: kpi.CSS,
		}), nil
	}
	return nil, fmt.Errorf("unsupported kpi format: %s", format)
}

// jsonRow is the serialized form of a table row.
type jsonRow struct {
	Category string `json:"category"`
	Amount   string `json:"amount"`
	Percent  string `json:"percent"`
}

func (c *chart) rows() []jsonRow {
	rows := table.Rows(c.items, c.opts.Formatter())
	out := make([]jsonRow, len(rows))
	for i, r := range rows {
		out[i] = jsonRow(r)
	}
	return out
}

func (c *chart) text() []byte {
	if len(c.items) == 0 {
		return []byte(widget.EmptyMessage + "\n")
	}
	return []byte(table.RenderText(table.Rows(c.items, c.opts.Formatter())) + "\n")
}

func (c *chart) tableHTML() []byte {
	return table.RenderHTML(table.Rows(c.items, c.opts.Formatter()), c.title)
}

func (c *chart) kpiHTML() []byte {
	if len(c.doc.KPIs) == 0 {
		return nil
	}
	return kpi.RenderHTML(c.doc.KPIs, "")
}

func (c *chart) kpiCSS() string {
	if len(c.doc.KPIs) == 0 {
		return ""
	}
	return kpi.CSS
}

func marshal(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
