package pie

import (
	"encoding/json"

	"github.com/matzehuels/sharechart/pkg/proportion"
)

type jsonOutput struct {
	Title       string      `json:"title,omitempty"`
	Radius      float64     `json:"radius"`
	LabelRadius float64     `json:"label_radius"`
	StartAngle  float64     `json:"start_angle"`
	Items       []jsonWedge `json:"items"`
}

type jsonWedge struct {
	Name         string           `json:"name"`
	Value        float64          `json:"value"`
	Color        string           `json:"color"`
	ExactPercent float64          `json:"exact_percent"`
	Percent      int              `json:"percent"`
	StartAngle   float64          `json:"start_angle"`
	EndAngle     float64          `json:"end_angle"`
	LargeArc     int              `json:"large_arc"`
	Edge         proportion.Point `json:"edge"`
	Label        proportion.Point `json:"label"`
	Side         proportion.Side  `json:"side"`
	Path         string           `json:"path,omitempty"`
}

// RenderJSON exports the normalized items together with their geometry as
// pretty-printed JSON.
func RenderJSON(l Layout) ([]byte, error) {
	out := jsonOutput{
		Title:       l.Title,
		Radius:      l.Radius,
		LabelRadius: l.LabelRadius,
		StartAngle:  l.StartAngle,
		Items:       make([]jsonWedge, len(l.Wedges)),
	}
	for i, w := range l.Wedges {
		out.Items[i] = jsonWedge{
			Name:         w.Item.Name,
			Value:        w.Item.Value,
			Color:        l.Colors[i],
			ExactPercent: w.Item.ExactPercent,
			Percent:      w.Item.Percent,
			StartAngle:   w.Slice.StartAngle,
			EndAngle:     w.Slice.EndAngle,
			LargeArc:     w.Slice.LargeArc,
			Edge:         w.Label.Edge,
			Label:        w.Label.Label,
			Side:         w.Label.Side,
			Path:         ArcPath(l.Radius, w.Slice),
		}
	}
	return json.MarshalIndent(out, "", "  ")
}
