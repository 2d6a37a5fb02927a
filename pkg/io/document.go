package io

import "github.com/matzehuels/sharechart/pkg/proportion"

// Document is a decoded chart data source.
type Document struct {
	Title    string   `json:"title,omitempty"`
	Entries  []Entry  `json:"items"`
	KPIs     []KPI    `json:"kpis,omitempty"`
	Warnings []string `json:"-"`
}

// Entry is one item of the document with its optional bar breakdown.
type Entry struct {
	proportion.Item
	Breakdown []BreakdownLine `json:"breakdown,omitempty"`
}

// BreakdownLine is a sub-amount listed under a bar.
type BreakdownLine struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// KPI is a headline figure. Value is displayed verbatim.
type KPI struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Series returns the document's items in order.
func (d Document) Series() proportion.Series {
	s := make(proportion.Series, len(d.Entries))
	for i, e := range d.Entries {
		s[i] = e.Item
	}
	return s
}

// Empty reports whether the document has neither items nor KPIs.
func (d Document) Empty() bool {
	return len(d.Entries) == 0 && len(d.KPIs) == 0
}
