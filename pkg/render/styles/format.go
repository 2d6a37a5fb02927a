package styles

import (
	"fmt"
	"math"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	// DefaultLocale matches the municipal widgets the charts are embedded in.
	DefaultLocale = "en-CA"
	// DefaultCurrency is the ISO 4217 code used for breakdown amounts.
	DefaultCurrency = "CAD"
)

// Formatter renders amounts for display in a given locale and currency.
// A Formatter is safe for concurrent use.
type Formatter struct {
	tag  language.Tag
	unit currency.Unit
}

// NewFormatter returns a formatter for a BCP 47 locale and an ISO 4217
// currency code. Empty arguments select the defaults.
func NewFormatter(locale, currencyCode string) (*Formatter, error) {
	if locale == "" {
		locale = DefaultLocale
	}
	if currencyCode == "" {
		currencyCode = DefaultCurrency
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}
	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		return nil, fmt.Errorf("parse currency %q: %w", currencyCode, err)
	}
	return &Formatter{tag: tag, unit: unit}, nil
}

// DefaultFormatter formats for DefaultLocale and DefaultCurrency.
func DefaultFormatter() *Formatter {
	f, err := NewFormatter(DefaultLocale, DefaultCurrency)
	if err != nil {
		panic(err) // constants above always parse
	}
	return f
}

// Amount formats v with digit grouping and at most two fraction digits.
func (f *Formatter) Amount(v float64) string {
	return message.NewPrinter(f.tag).Sprint(number.Decimal(v, number.MaxFractionDigits(2)))
}

// Money formats v as a whole amount of the formatter's currency.
func (f *Formatter) Money(v float64) string {
	p := message.NewPrinter(f.tag)
	return p.Sprint(currency.NarrowSymbol(f.unit)) + p.Sprint(number.Decimal(math.Round(v), number.MaxFractionDigits(0)))
}

// Percent formats an integer share as "34%".
func (f *Formatter) Percent(p int) string {
	return fmt.Sprintf("%d%%", p)
}

// Locale returns the formatter's language tag.
func (f *Formatter) Locale() string {
	return f.tag.String()
}
