package widget

import (
	"strings"

	"github.com/matzehuels/sharechart/pkg/errors"
)

// ViewMode selects which representation of the data a widget shows.
type ViewMode string

const (
	ViewChart ViewMode = "chart"
	ViewTable ViewMode = "table"
)

// ParseViewMode accepts "chart" or "table", case-insensitively. The empty
// string means [ViewChart].
func ParseViewMode(s string) (ViewMode, error) {
	switch ViewMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ViewChart:
		return ViewChart, nil
	case ViewTable:
		return ViewTable, nil
	}
	return "", errors.New(errors.ErrCodeInvalidView, "unknown view %q (want chart or table)", s)
}

// Toggle returns the other view.
func (v ViewMode) Toggle() ViewMode {
	if v == ViewTable {
		return ViewChart
	}
	return ViewTable
}

// ButtonLabel is the text of the button that switches away from v.
func (v ViewMode) ButtonLabel() string {
	if v == ViewTable {
		return "Show chart"
	}
	return "Show table"
}

// Announcement is read out by screen readers after switching to v.
func (v ViewMode) Announcement() string {
	if v == ViewTable {
		return "Table view shown"
	}
	return "Chart view shown"
}

func (v ViewMode) String() string { return string(v) }
