// Package styles holds the shared look of sharechart renderers: the color
// palette, number formatting, CSS, and XML escaping.
package styles

import (
	"fmt"

	"github.com/matzehuels/sharechart/pkg/errors"
)

// Palette is an ordered list of CSS colors assigned to items by index.
type Palette []string

// DefaultPalette is used when no palette is configured.
var DefaultPalette = Palette{
	"#9b87d3",
	"#1f77b4",
	"#d62728",
	"#ff7f0e",
	"#c7c7c7",
	"#9467bd",
	"#17becf",
	"#f0c419",
}

// Color returns override if set, otherwise the palette color for index i,
// cycling when i exceeds the palette length.
func (p Palette) Color(i int, override string) string {
	if override != "" {
		return override
	}
	if len(p) == 0 {
		return DefaultPalette.Color(i, "")
	}
	return p[i%len(p)]
}

// Validate checks that the palette is non-empty and every entry is a safe
// CSS color.
func (p Palette) Validate() error {
	if len(p) == 0 {
		return errors.InvalidConfiguration("palette cannot be empty")
	}
	for i, c := range p {
		if c == "" {
			return errors.InvalidConfiguration("palette color %d is empty", i)
		}
		if err := errors.ValidateColor(c); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfiguration, err, "palette color %d", i)
		}
	}
	return nil
}

func (p Palette) String() string {
	return fmt.Sprint([]string(p))
}
