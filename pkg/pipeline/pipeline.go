// Package pipeline provides the load → normalize → render pipeline for
// sharechart.
//
// The CLI and the chart server both go through this package so that option
// defaults, validation and caching behave the same on every entry point.
//
// # Architecture
//
// The pipeline has two stages:
//
//  1. Load: read a data document from a file, standard input or an http(s) URL
//  2. Render: normalize the items and produce every requested format
//
// Rendered artifacts are cached by the hash of the raw document and the
// options that change the output bytes.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	opts := pipeline.Options{
//	    Chart:   "pie",
//	    Formats: []string{"svg", "html"},
//	}
//	result, err := runner.Execute(ctx, "budget.json", opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Render an already loaded document:
//
//	artifacts, err := pipeline.RenderDocument(doc, opts)
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"sort"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sharechart/pkg/buildinfo"
	"github.com/matzehuels/sharechart/pkg/cache"
	"github.com/matzehuels/sharechart/pkg/errors"
	"github.com/matzehuels/sharechart/pkg/render/bar"
	"github.com/matzehuels/sharechart/pkg/render/pie"
	"github.com/matzehuels/sharechart/pkg/render/styles"
	"github.com/matzehuels/sharechart/pkg/render/widget"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	DefaultChart       = ChartPie
	DefaultRadius      = pie.DefaultRadius
	DefaultLabelOffset = pie.DefaultLabelOffset
	DefaultMax         = bar.DefaultMax
	DefaultScale       = 2.0
	DefaultLocale      = styles.DefaultLocale
	DefaultCurrency    = styles.DefaultCurrency
	DefaultID          = "sharechart"

	// DefaultPieTitle is used when neither the options nor the document
	// name a pie chart.
	DefaultPieTitle = "Revenue breakdown"

	// MaxScale, MaxRadius and MaxLabelOffset bound PNG output size.
	MaxScale       = 8.0
	MaxRadius      = 1000.0
	MaxLabelOffset = 200.0
)

// Chart types.
const (
	ChartPie   = "pie"
	ChartBar   = "bar"
	ChartTable = "table"
	ChartKPI   = "kpi"
)

// Output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatHTML = "html"
	FormatJSON = "json"
	FormatTXT  = "txt"
)

// ValidFormats lists the formats Options.Formats may name.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatHTML: true,
	FormatJSON: true,
	FormatTXT:  true,
}

// ChartFormats lists the formats each chart type can produce.
var ChartFormats = map[string][]string{
	ChartPie:   {FormatSVG, FormatPNG, FormatHTML, FormatJSON, FormatTXT},
	ChartBar:   {FormatSVG, FormatPNG, FormatHTML, FormatJSON, FormatTXT},
	ChartTable: {FormatHTML, FormatJSON, FormatTXT},
	ChartKPI:   {FormatHTML, FormatJSON, FormatTXT},
}

// Charts returns the chart types in a stable order.
func Charts() []string {
	charts := make([]string, 0, len(ChartFormats))
	for c := range ChartFormats {
		charts = append(charts, c)
	}
	sort.Strings(charts)
	return charts
}

// =============================================================================
// Options
// =============================================================================

// Options contains all configuration for one render. Zero values select the
// defaults; negative geometry is rejected rather than replaced.
type Options struct {
	Chart   string   `json:"chart"`
	Formats []string `json:"formats,omitempty"`
	View    string   `json:"view,omitempty"`
	Title   string   `json:"title,omitempty"`
	ID      string   `json:"id,omitempty"`

	// Pie geometry
	Radius      float64 `json:"radius,omitempty"`
	LabelOffset float64 `json:"label_offset,omitempty"`

	// Bar scale
	Max float64 `json:"max,omitempty"`

	// PNG pixels per SVG unit
	Scale float64 `json:"scale,omitempty"`

	Palette  []string `json:"palette,omitempty"`
	Locale   string   `json:"locale,omitempty"`
	Currency string   `json:"currency,omitempty"`

	// Script embeds the client-side chart/table toggle in HTML output.
	Script bool `json:"script,omitempty"`

	// Refresh bypasses the artifact cache for reads.
	Refresh bool `json:"refresh,omitempty"`

	// Logger is never part of a cache key.
	Logger *log.Logger `json:"-"`

	formatter *styles.Formatter
	validated bool
}

// Result is what one Execute or RenderResult call produced.
type Result struct {
	// Source is the path or URL the document was loaded from.
	Source string

	// DataHash is the content hash of the raw document.
	DataHash string

	// Title is the resolved chart title.
	Title string

	// Items is the number of data items in the document.
	Items int

	// Warnings lists values that were coerced while decoding.
	Warnings []string

	// Artifacts maps each requested format to its bytes.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats records where the time went.
type Stats struct {
	LoadTime   time.Duration
	RenderTime time.Duration
}

// CacheInfo reports which stages were served from the cache.
type CacheInfo struct {
	SourceHit bool // remote document reused
	RenderHit bool // every requested format reused
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateChart checks that a chart type is valid.
func ValidateChart(chart string) error {
	if _, ok := ChartFormats[chart]; !ok {
		return errors.New(errors.ErrCodeInvalidChart, "invalid chart: %q (must be one of: bar, kpi, pie, table)", chart)
	}
	return nil
}

// ValidateFormat checks that a format is valid for chart.
func ValidateFormat(chart, format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, html, json, txt)", format)
	}
	if !slices.Contains(ChartFormats[chart], format) {
		return errors.New(errors.ErrCodeInvalidFormat, "%s charts cannot be rendered as %s", chart, format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid for chart.
func ValidateFormats(chart string, formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(chart, f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and fills in defaults. Only the
// first call does any work.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Chart == "" {
		o.Chart = DefaultChart
	}
	if err := ValidateChart(o.Chart); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{ChartFormats[o.Chart][0]}
	}
	o.Formats = dedupe(o.Formats)
	if err := ValidateFormats(o.Chart, o.Formats); err != nil {
		return err
	}

	view, err := widget.ParseViewMode(o.View)
	if err != nil {
		return err
	}
	o.View = view.String()

	if o.ID == "" {
		o.ID = DefaultID
	}

	if err := o.setGeometryDefaults(); err != nil {
		return err
	}

	if len(o.Palette) > 0 {
		if err := styles.Palette(o.Palette).Validate(); err != nil {
			return err
		}
	}

	if o.Locale == "" {
		o.Locale = DefaultLocale
	}
	if o.Currency == "" {
		o.Currency = DefaultCurrency
	}
	f, err := styles.NewFormatter(o.Locale, o.Currency)
	if err != nil {
		return err
	}
	o.formatter = f

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

func (o *Options) setGeometryDefaults() error {
	switch {
	case o.Radius < 0:
		return errors.InvalidConfiguration("radius must be positive, got %g", o.Radius)
	case o.Radius == 0:
		o.Radius = DefaultRadius
	case !(o.Radius <= MaxRadius):
		return errors.InvalidConfiguration("radius must be at most %g, got %g", MaxRadius, o.Radius)
	}
	switch {
	case o.LabelOffset < 0:
		return errors.InvalidConfiguration("label offset must not be negative, got %g", o.LabelOffset)
	case o.LabelOffset == 0:
		o.LabelOffset = DefaultLabelOffset
	case !(o.LabelOffset <= MaxLabelOffset):
		return errors.InvalidConfiguration("label offset must be at most %g, got %g", MaxLabelOffset, o.LabelOffset)
	}
	switch {
	case o.Max < 0:
		return errors.InvalidConfiguration("max must be positive, got %g", o.Max)
	case o.Max == 0:
		o.Max = DefaultMax
	}
	switch {
	case o.Scale < 0 || o.Scale > MaxScale:
		return errors.InvalidConfiguration("scale must be in (0, %g], got %g", MaxScale, o.Scale)
	case o.Scale == 0:
		o.Scale = DefaultScale
	}
	return nil
}

// ViewMode returns the parsed view. Call after ValidateAndSetDefaults.
func (o *Options) ViewMode() widget.ViewMode {
	v, err := widget.ParseViewMode(o.View)
	if err != nil {
		return widget.ViewChart
	}
	return v
}

// Formatter returns the number formatter for the options' locale and
// currency.
func (o *Options) Formatter() *styles.Formatter {
	if o.formatter == nil {
		o.formatter = styles.DefaultFormatter()
	}
	return o.formatter
}

// PaletteOrDefault returns the configured palette or the built-in one.
func (o *Options) PaletteOrDefault() styles.Palette {
	if len(o.Palette) == 0 {
		return styles.DefaultPalette
	}
	return styles.Palette(o.Palette)
}

// ResolveTitle picks the chart title: explicit option, then the document's
// own title, then the chart type's default.
func (o *Options) ResolveTitle(docTitle string) string {
	switch {
	case o.Title != "":
		return o.Title
	case docTitle != "":
		return docTitle
	case o.Chart == ChartPie:
		return DefaultPieTitle
	}
	return ""
}

// IsPie returns true if this is a pie chart.
func (o *Options) IsPie() bool {
	return o.Chart == ChartPie
}

// IsBar returns true if this is a bar chart.
func (o *Options) IsBar() bool {
	return o.Chart == ChartBar
}

// ArtifactKeyOpts lists every option that changes the bytes of format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Chart:    o.Chart,
		Format:   format,
		Title:    o.Title,
		Palette:  o.Palette,
		Locale:   o.Locale,
		Currency: o.Currency,
		Version:  buildinfo.Resolved(),
	}
	if format == FormatHTML {
		k.View = o.View + "|" + o.ID
		if o.Script {
			k.View += "|script"
		}
	}
	switch o.Chart {
	case ChartPie:
		k.Radius, k.LabelOffset = o.Radius, o.LabelOffset
	case ChartBar:
		k.Max = o.Max
	}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	return k
}

func dedupe(formats []string) []string {
	seen := make(map[string]bool, len(formats))
	out := formats[:0:0]
	for _, f := range formats {
		if seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

// String summarises the options for log lines.
func (o *Options) String() string {
	return fmt.Sprintf("%s %v view=%s", o.Chart, o.Formats, o.View)
}
