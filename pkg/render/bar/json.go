package bar

import (
	"encoding/json"

	"github.com/matzehuels/sharechart/pkg/io"
)

type jsonOutput struct {
	Title string    `json:"title,omitempty"`
	Max   float64   `json:"max"`
	Items []jsonBar `json:"items"`
}

type jsonBar struct {
	Name      string             `json:"name"`
	Value     float64            `json:"value"`
	Color     string             `json:"color"`
	Fraction  float64            `json:"fraction"`
	Breakdown []io.BreakdownLine `json:"breakdown,omitempty"`
}

// RenderJSON exports the scaled bars as pretty-printed JSON.
func RenderJSON(l Layout) ([]byte, error) {
	out := jsonOutput{Title: l.Title, Max: l.Max, Items: make([]jsonBar, len(l.Bars))}
	for i, b := range l.Bars {
		out.Items[i] = jsonBar{
			Name:      b.Name,
			Value:     b.Value,
			Color:     b.Color,
			Fraction:  b.Fraction,
			Breakdown: b.Breakdown,
		}
	}
	return json.MarshalIndent(out, "", "  ")
}
