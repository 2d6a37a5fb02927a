package proportion

import (
	"math"
	"testing"

	"github.com/matzehuels/sharechart/pkg/errors"
)

func TestScaleFraction(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		max   float64
		want  float64
	}{
		{"exceeds max unclamped", 42, 35, 120},
		{"half", 17.5, 35, 50},
		{"zero value", 0, 35, 0},
		{"equal to max", 35, 35, 100},
		{"nan value", math.NaN(), 35, 0},
		{"negative value passes through", -7, 35, -20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ScaleFraction(tt.value, tt.max)
			if err != nil {
				t.Fatalf("ScaleFraction(%v, %v) error: %v", tt.value, tt.max, err)
			}
			if math.Abs(got-tt.want) > tolerance {
				t.Errorf("ScaleFraction(%v, %v) = %v, want %v", tt.value, tt.max, got, tt.want)
			}
		})
	}
}

func TestScaleFractionInvalidMax(t *testing.T) {
	for _, max := range []float64{0, -1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := ScaleFraction(10, max)
		if !errors.IsInvalidConfiguration(err) {
			t.Errorf("ScaleFraction(10, %v) error = %v, want INVALID_CONFIGURATION", max, err)
		}
	}
}

func TestClampFraction(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{120, 100},
		{-5, 0},
		{42.5, 42.5},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		if got := ClampFraction(tt.in); got != tt.want {
			t.Errorf("ClampFraction(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
