package raster

import (
	"bytes"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/matzehuels/sharechart/pkg/errors"
	"github.com/matzehuels/sharechart/pkg/proportion"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"#ff0000", color.RGBA{255, 0, 0, 255}},
		{"#F00", color.RGBA{255, 0, 0, 255}},
		{"#1f77b4", color.RGBA{0x1f, 0x77, 0xb4, 255}},
		{"red", color.RGBA{255, 0, 0, 255}},
		{"rgb(0, 128, 255)", color.RGBA{0, 128, 255, 255}},
		{"hsl(120, 50%, 50%)", Fallback},
		{"#12345", Fallback},
		{"nonsense", Fallback},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseColor(tt.in); got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewCanvasInvalid(t *testing.T) {
	if _, err := NewCanvas(Rect{W: 10, H: 10}, 0); err == nil {
		t.Error("expected error for zero scale")
	}
	if _, err := NewCanvas(Rect{W: 0, H: 10}, 1); err == nil {
		t.Error("expected error for empty view")
	}
	if _, err := NewCanvas(Rect{W: 20000, H: 20000}, 8); !errors.IsInvalidConfiguration(err) {
		t.Errorf("oversized canvas: got %v, want INVALID_CONFIGURATION", err)
	}
	if _, err := NewCanvas(Rect{W: math.Inf(1), H: 10}, 1); err == nil {
		t.Error("expected error for an infinite view")
	}
}

func TestFillSector(t *testing.T) {
	red := color.RGBA{255, 0, 0, 255}
	c, err := NewCanvas(Rect{X: -20, Y: -20, W: 40, H: 40}, 1)
	if err != nil {
		t.Fatal(err)
	}
	// Right half only.
	c.FillSector(proportion.Pt(0, 0), 16, -math.Pi/2, math.Pi/2, red)

	if got := c.Image().RGBAAt(30, 20); got != red {
		t.Errorf("pixel inside sector = %v, want red", got)
	}
	if got := c.Image().RGBAAt(10, 20); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("pixel outside sector = %v, want white", got)
	}
}

func TestFillSectorFullCircle(t *testing.T) {
	blue := color.RGBA{0, 0, 255, 255}
	c, err := NewCanvas(Rect{X: -20, Y: -20, W: 40, H: 40}, 1)
	if err != nil {
		t.Fatal(err)
	}
	start := -math.Pi / 2
	c.FillSector(proportion.Pt(0, 0), 16, start, start+2*math.Pi, blue)

	for _, p := range [][2]int{{30, 20}, {10, 20}, {20, 10}, {20, 30}} {
		if got := c.Image().RGBAAt(p[0], p[1]); got != blue {
			t.Errorf("pixel %v = %v, want blue", p, got)
		}
	}
}

func TestEmptySectorDrawsNothing(t *testing.T) {
	c, err := NewCanvas(Rect{X: -5, Y: -5, W: 10, H: 10}, 1)
	if err != nil {
		t.Fatal(err)
	}
	c.FillSector(proportion.Pt(0, 0), 4, 1, 1, color.Black)
	if got := c.Image().RGBAAt(5, 5); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("center = %v, want white", got)
	}
}

func TestEncodePNG(t *testing.T) {
	c, err := NewCanvas(Rect{W: 30, H: 10}, 2)
	if err != nil {
		t.Fatal(err)
	}
	c.Text(proportion.Pt(15, 5), "Hi", AlignMiddle, color.Black)

	var buf bytes.Buffer
	if err := c.EncodePNG(&buf); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 60 || b.Dy() != 20 {
		t.Errorf("bounds = %v, want 60x20", b)
	}
}

func TestAlignFor(t *testing.T) {
	if AlignFor(proportion.SideStart) != AlignStart || AlignFor(proportion.SideEnd) != AlignEnd {
		t.Error("AlignFor mismatch")
	}
}
