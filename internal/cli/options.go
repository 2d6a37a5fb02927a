package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/sharechart/pkg/config"
	"github.com/matzehuels/sharechart/pkg/errors"
	"github.com/matzehuels/sharechart/pkg/pipeline"
)

// chartFlags holds the rendering flags of the render command.
type chartFlags struct {
	chart       string
	formats     string
	view        string
	title       string
	radius      float64
	labelOffset float64
	max         float64
	scale       float64
	palette     string
	locale      string
	currency    string
	script      bool
	noCache     bool
	refresh     bool
}

// register adds the flags to fs.
func (f *chartFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.chart, "chart", "c", pipeline.DefaultChart, "chart type: pie, bar, table, kpi")
	fs.StringVarP(&f.formats, "format", "f", "", "output format(s): svg, png, html, json, txt (comma-separated)")
	fs.StringVar(&f.view, "view", "chart", "initial HTML view: chart or table")
	fs.BoolVar(&f.script, "script", false, "embed the chart/table toggle script in HTML output")
	fs.Float64Var(&f.scale, "scale", 0, "PNG pixels per unit (default 2)")
	fs.StringVar(&f.title, "title", "", "chart title (default: document title)")
	fs.Float64Var(&f.radius, "radius", 0, "pie radius (default 180)")
	fs.Float64Var(&f.labelOffset, "label-offset", 0, "distance of pie labels outside the radius (default 36)")
	fs.Float64Var(&f.max, "max", 0, "bar chart scale maximum (default 35)")
	fs.StringVar(&f.palette, "palette", "", "slice colors (comma-separated)")
	fs.StringVar(&f.locale, "locale", "", "number formatting locale (default en-CA)")
	fs.StringVar(&f.currency, "currency", "", "currency for breakdown amounts (default CAD)")
	fs.BoolVar(&f.noCache, "no-cache", false, "disable caching")
	fs.BoolVar(&f.refresh, "refresh", false, "re-render even when cached")
}

// options merges flags over the config file over the pipeline defaults. An
// explicitly given non-positive radius or max is an error rather than a
// request for the default.
func (f *chartFlags) options(cmd *cobra.Command, cfg config.Chart) (pipeline.Options, error) {
	changed := cmd.Flags().Changed

	opts := pipeline.Options{
		Chart:       f.chart,
		Formats:     splitList(f.formats),
		View:        f.view,
		Title:       f.title,
		Radius:      cfg.Radius,
		LabelOffset: cfg.LabelOffset,
		Max:         cfg.Max,
		Scale:       cfg.Scale,
		Palette:     cfg.Palette,
		Locale:      cfg.Locale,
		Currency:    cfg.Currency,
		Script:      f.script,
		Refresh:     f.refresh,
		Logger:      loggerFromContext(cmd.Context()),
	}

	if changed("radius") {
		if f.radius <= 0 {
			return opts, errors.InvalidConfiguration("--radius must be positive, got %g", f.radius)
		}
		opts.Radius = f.radius
	}
	if changed("label-offset") {
		opts.LabelOffset = f.labelOffset
	}
	if changed("max") {
		if f.max <= 0 {
			return opts, errors.InvalidConfiguration("--max must be positive, got %g", f.max)
		}
		opts.Max = f.max
	}
	if changed("scale") {
		if f.scale <= 0 {
			return opts, errors.InvalidConfiguration("--scale must be positive, got %g", f.scale)
		}
		opts.Scale = f.scale
	}
	if changed("palette") {
		opts.Palette = splitList(f.palette)
	}
	if changed("locale") {
		opts.Locale = f.locale
	}
	if changed("currency") {
		opts.Currency = f.currency
	}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, err
	}
	return opts, nil
}
