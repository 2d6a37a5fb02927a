package bar

import (
	"bytes"
	"encoding/json"
	"image/png"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/matzehuels/sharechart/pkg/errors"
	"github.com/matzehuels/sharechart/pkg/io"
	"github.com/matzehuels/sharechart/pkg/proportion"
)

func entries() []io.Entry {
	return []io.Entry{
		{
			Item: proportion.Item{Name: "Police & Fire", Value: 42},
			Breakdown: []io.BreakdownLine{
				{Label: "Wages", Amount: 1234.4},
				{Label: "Fleet", Amount: 500},
			},
		},
		{Item: proportion.Item{Name: "Parks", Value: 17.5, Color: "#5c874c"}},
	}
}

func TestBuild(t *testing.T) {
	l, err := Build(entries())
	if err != nil {
		t.Fatal(err)
	}
	if l.Max != DefaultMax {
		t.Errorf("Max = %g, want %g", l.Max, DefaultMax)
	}
	got := []float64{l.Bars[0].Fraction, l.Bars[1].Fraction}
	if diff := cmp.Diff([]float64{120, 50}, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("fractions mismatch (-want +got):\n%s", diff)
	}
	if l.Bars[0].Width() != 100 {
		t.Errorf("Width() = %g, want clamp to 100", l.Bars[0].Width())
	}
	if l.Bars[0].Color != DefaultColor || l.Bars[1].Color != "#5c874c" {
		t.Errorf("colors = %q, %q", l.Bars[0].Color, l.Bars[1].Color)
	}
	if got := l.Bars[1].ValueText(); got != "17.5%" {
		t.Errorf("ValueText = %q", got)
	}
}

func TestBuildInvalidMax(t *testing.T) {
	for _, m := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := Build(entries(), WithMax(m))
		if !errors.IsInvalidConfiguration(err) {
			t.Errorf("Build(max=%g) error = %v, want INVALID_CONFIGURATION", m, err)
		}
	}
	// An empty chart still rejects a bad maximum.
	if _, err := Build(nil, WithMax(0)); !errors.IsInvalidConfiguration(err) {
		t.Errorf("Build(nil, max=0) error = %v", err)
	}
}

func TestBuildNonFiniteValues(t *testing.T) {
	in := []io.Entry{
		{Item: proportion.Item{Name: "nan", Value: math.NaN()}},
		{Item: proportion.Item{Name: "inf", Value: math.Inf(1)}},
		{Item: proportion.Item{Name: "-inf", Value: math.Inf(-1)}},
	}
	l, err := Build(in)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for _, b := range l.Bars {
		if b.Fraction != 0 {
			t.Errorf("%s: Fraction = %g, want 0", b.Name, b.Fraction)
		}
		if got := b.ValueText(); got != "0%" {
			t.Errorf("%s: ValueText() = %q, want %q", b.Name, got, "0%")
		}
	}
}

func TestRenderHTML(t *testing.T) {
	l, err := Build(entries(), WithTitle("Tax allocation"))
	if err != nil {
		t.Fatal(err)
	}
	html := string(RenderHTML(l, WithHTMLID("mb"), WithCSS()))
	for _, want := range []string{
		"<style>",
		`aria-label="Tax allocation"`,
		`<p class="bar-text">Police &amp; Fire</p>`,
		`--w:120.00%`,
		`<span class="percent-text">42%</span>`,
		`id="mb-breakdown-0"`,
		`<li><span>Wages</span><span>$1,234</span></li>`,
		`<li><span>Fleet</span><span>$500</span></li>`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("HTML missing %q\n%s", want, html)
		}
	}
	if strings.Count(html, "<details") != 1 {
		t.Error("only entries with a breakdown get a details element")
	}
}

func TestRenderHTMLEmpty(t *testing.T) {
	l, err := Build(nil)
	if err != nil {
		t.Fatal(err)
	}
	if html := string(RenderHTML(l)); !strings.Contains(html, EmptyMessage) {
		t.Errorf("missing empty message:\n%s", html)
	}
}

func TestRenderSVG(t *testing.T) {
	l, err := Build(entries())
	if err != nil {
		t.Fatal(err)
	}
	svg := string(RenderSVG(l))
	if n := strings.Count(svg, "<rect "); n != 2 {
		t.Errorf("rect count = %d, want 2", n)
	}
	// 42 of 35 is clipped to the plot width; 17.5 is half of it.
	for _, want := range []string{`width="640.00"`, `width="320.00"`, `>Police &amp; Fire</text>`} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
}

func TestRenderPNG(t *testing.T) {
	l, err := Build(entries())
	if err != nil {
		t.Fatal(err)
	}
	data, err := RenderPNG(l, 1)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != int(Width) || b.Dy() != int(math.Ceil(l.Height())) {
		t.Errorf("bounds = %v", b)
	}
}

func TestRenderJSON(t *testing.T) {
	l, err := Build(entries(), WithMax(84))
	if err != nil {
		t.Fatal(err)
	}
	data, err := RenderJSON(l)
	if err != nil {
		t.Fatal(err)
	}
	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out.Max != 84 || out.Items[0].Fraction != 50 || len(out.Items[0].Breakdown) != 2 {
		t.Errorf("got %+v", out)
	}
}
