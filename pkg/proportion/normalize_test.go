package proportion

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func series(values ...float64) Series {
	s := make(Series, len(values))
	for i, v := range values {
		s[i] = Item{Name: string(rune('A' + i)), Value: v}
	}
	return s
}

func sumPercents(items []NormalizedItem) int {
	sum := 0
	for _, it := range items {
		sum += it.Percent
	}
	return sum
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   []int
	}{
		{"no remainder needed", []float64{60, 30, 10}, []int{60, 30, 10}},
		{"three way tie goes to first", []float64{1, 1, 1}, []int{34, 33, 33}},
		{"single item", []float64{5}, []int{100}},
		{"largest remainder wins", []float64{1, 2, 3}, []int{17, 33, 50}},
		{"seven way split", []float64{1, 1, 1, 1, 1, 1, 1}, []int{15, 15, 14, 14, 14, 14, 14}},
		{"zero item in the middle", []float64{2, 0, 1}, []int{67, 0, 33}},
		{"all zero", []float64{0, 0, 0}, []int{0, 0, 0}},
		{"nan is zero", []float64{math.NaN(), 1, 1}, []int{0, 50, 50}},
		{"inf is zero", []float64{math.Inf(1), 3, 1}, []int{0, 75, 25}},
		{"only nan", []float64{math.NaN()}, []int{0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percents(Normalize(series(tt.values...)))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Normalize(%v) mismatch (-want +got):\n%s", tt.values, diff)
			}
		})
	}
}

func TestNormalizeEmpty(t *testing.T) {
	got := Normalize(nil)
	if got == nil {
		t.Fatal("Normalize(nil) = nil, want empty slice")
	}
	if len(got) != 0 {
		t.Errorf("Normalize(nil) length = %d, want 0", len(got))
	}
}

func TestNormalizeExactPercent(t *testing.T) {
	got := Normalize(series(1, 1, 1))
	for i, it := range got {
		if math.Abs(it.ExactPercent-100.0/3) > 1e-9 {
			t.Errorf("item %d ExactPercent = %v, want 33.33…", i, it.ExactPercent)
		}
	}

	zero := Normalize(series(0, 0))
	for i, it := range zero {
		if it.ExactPercent != 0 || it.Percent != 0 {
			t.Errorf("degenerate item %d = (%v, %d), want (0, 0)", i, it.ExactPercent, it.Percent)
		}
	}
}

func TestNormalizePreservesItems(t *testing.T) {
	in := Series{
		{Name: "Taxes", Value: 70, Color: "#1f77b4"},
		{Name: "Fees", Value: math.NaN(), Color: "#d62728"},
	}
	got := Normalize(in)
	if got[0].Name != "Taxes" || got[0].Color != "#1f77b4" || got[0].Value != 70 {
		t.Errorf("item 0 = %+v, want fields preserved", got[0].Item)
	}
	if got[1].Value != 0 {
		t.Errorf("NaN value = %v, want coerced to 0", got[1].Value)
	}
	if !math.IsNaN(in[1].Value) {
		t.Error("Normalize must not modify its input")
	}
}

func TestNormalizeOverflow(t *testing.T) {
	got := Normalize(series(math.MaxFloat64, math.MaxFloat64))
	if diff := cmp.Diff([]int{50, 50}, Percents(got)); diff != "" {
		t.Errorf("Normalize(huge) mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeNegativeDoesNotPanic(t *testing.T) {
	got := Normalize(series(-50, 100, 0.5))
	if sum := sumPercents(got); sum != 100 {
		t.Errorf("sum = %d, want 100", sum)
	}
}

func TestNormalizeProperties(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 42))

	for iter := range 2000 {
		n := 1 + r.IntN(12)
		values := make([]float64, n)
		for i := range values {
			switch r.IntN(4) {
			case 0:
				values[i] = 0
			case 1:
				values[i] = float64(r.IntN(10))
			default:
				values[i] = r.Float64() * 1e6
			}
		}
		s := series(values...)
		got := Normalize(s)

		if s.Total() > 0 {
			if sum := sumPercents(got); sum != 100 {
				t.Fatalf("iter %d: Normalize(%v) sums to %d, want 100", iter, values, sum)
			}
		} else {
			for i, it := range got {
				if it.Percent != 0 {
					t.Fatalf("iter %d: zero-total item %d has Percent %d", iter, i, it.Percent)
				}
			}
		}

		for i, it := range got {
			if d := math.Abs(float64(it.Percent) - it.ExactPercent); d >= 1 {
				t.Fatalf("iter %d: item %d rounding error %v >= 1 (%d vs %v)", iter, i, d, it.Percent, it.ExactPercent)
			}
		}

		again := Normalize(s)
		if diff := cmp.Diff(Percents(got), Percents(again)); diff != "" {
			t.Fatalf("iter %d: Normalize is not deterministic:\n%s", iter, diff)
		}
	}
}
