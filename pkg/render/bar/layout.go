package bar

import (
	"strconv"

	"github.com/matzehuels/sharechart/pkg/io"
	"github.com/matzehuels/sharechart/pkg/proportion"
)

const (
	// DefaultMax is the value drawn as a full-width bar.
	DefaultMax = 35.0
	// DefaultColor fills bars without their own color.
	DefaultColor = "#0095cc"

	// EmptyMessage replaces a chart without entries.
	EmptyMessage = "No chart data."
)

// Option configures [Build].
type Option func(*builder)

type builder struct {
	title string
	max   float64
	color string
}

// WithTitle sets the heading above the bars.
func WithTitle(t string) Option { return func(b *builder) { b.title = t } }

// WithMax sets the value drawn as a full-width bar. It must be positive.
func WithMax(m float64) Option { return func(b *builder) { b.max = m } }

// WithColor sets the fill for entries without their own color.
func WithColor(c string) Option { return func(b *builder) { b.color = c } }

// Bar is one positioned row of the chart.
type Bar struct {
	Name  string
	Value float64
	Color string
	// Fraction is Value/Max*100, unclamped.
	Fraction  float64
	Breakdown []io.BreakdownLine
}

// Width is the fraction clamped into [0, 100].
func (b Bar) Width() float64 { return proportion.ClampFraction(b.Fraction) }

// ValueText is the label printed beside the bar, such as "12.5%".
func (b Bar) ValueText() string {
	return strconv.FormatFloat(b.Value, 'f', -1, 64) + "%"
}

// Layout is a bar chart ready for rendering.
type Layout struct {
	Title string
	Max   float64
	Bars  []Bar
}

// Build scales every entry against the maximum. A maximum that is not a
// positive number is reported as INVALID_CONFIGURATION and never replaced
// by the default.
func Build(entries []io.Entry, opts ...Option) (Layout, error) {
	b := builder{max: DefaultMax, color: DefaultColor}
	for _, opt := range opts {
		opt(&b)
	}
	if _, err := proportion.ScaleFraction(0, b.max); err != nil {
		return Layout{}, err
	}

	bars := make([]Bar, len(entries))
	for i, e := range entries {
		frac, err := proportion.ScaleFraction(e.Value, b.max)
		if err != nil {
			return Layout{}, err
		}
		color := e.Color
		if color == "" {
			color = b.color
		}
		bars[i] = Bar{
			Name:      e.Name,
			Value:     proportion.Finite(e.Value),
			Color:     color,
			Fraction:  frac,
			Breakdown: e.Breakdown,
		}
	}
	return Layout{Title: b.title, Max: b.max, Bars: bars}, nil
}
