package styles

import (
	"bytes"
	"encoding/xml"
	"strconv"
)

// EscapeXML escapes s for use in SVG or HTML text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// Num formats v with prec fraction digits, never producing "-0".
func Num(v float64, prec int) string {
	s := strconv.FormatFloat(v, 'f', prec, 64)
	if s[0] == '-' {
		zero := true
		for _, r := range s[1:] {
			if r != '0' && r != '.' {
				zero = false
				break
			}
		}
		if zero {
			return s[1:]
		}
	}
	return s
}
