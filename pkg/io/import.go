package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/matzehuels/sharechart/pkg/errors"
	"github.com/matzehuels/sharechart/pkg/proportion"
)

type rawDocument struct {
	Title json.RawMessage `json:"title"`
	Data  []rawItem       `json:"data"`
	Items []rawItem       `json:"items"`
	KPIs  []rawKPI        `json:"kpis"`
}

type rawItem struct {
	Name      json.RawMessage `json:"name"`
	Label     json.RawMessage `json:"label"`
	Value     json.RawMessage `json:"value"`
	Color     json.RawMessage `json:"color"`
	Breakdown []rawBreakdown  `json:"breakdown"`
}

type rawBreakdown struct {
	Label  json.RawMessage `json:"label"`
	Amount json.RawMessage `json:"amount"`
}

type rawKPI struct {
	Label json.RawMessage `json:"label"`
	Value json.RawMessage `json:"value"`
}

// ReadJSON decodes a chart data document from r.
//
// See the package documentation for the accepted shapes. ReadJSON returns an
// error with code errors.ErrCodeInvalidInput only when the input is not valid
// JSON or its top level is neither an object nor an array. Individual
// malformed values are coerced and reported in Document.Warnings.
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("read: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return Document{}, errors.New(errors.ErrCodeInvalidInput, "empty document")
	}

	var raw rawDocument
	switch data[0] {
	case '[':
		if err := json.Unmarshal(data, &raw.Items); err != nil {
			return Document{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode item array")
		}
	case '{':
		if err := json.Unmarshal(data, &raw); err != nil {
			return Document{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode document")
		}
	default:
		return Document{}, errors.New(errors.ErrCodeInvalidInput, "document must be a JSON object or array")
	}

	var doc Document
	doc.Title, _ = text(raw.Title)

	items := raw.Data
	if len(items) == 0 {
		items = raw.Items
	}
	doc.Entries = make([]Entry, len(items))
	for i, it := range items {
		doc.Entries[i] = decodeEntry(i, it, &doc.Warnings)
	}

	for _, k := range raw.KPIs {
		label, _ := text(k.Label)
		value, _ := text(k.Value)
		doc.KPIs = append(doc.KPIs, KPI{Label: label, Value: value})
	}
	return doc, nil
}

// ImportJSON reads a chart data document from the file at path.
//
// A missing file is reported with errors.ErrCodeFileNotFound; decoding
// errors are the same as for [ReadJSON].
func ImportJSON(path string) (Document, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return Document{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

func decodeEntry(i int, it rawItem, warnings *[]string) Entry {
	name, ok := text(it.Name)
	if !ok {
		name, ok = text(it.Label)
	}
	if !ok {
		name = fmt.Sprintf("Item %d", i+1)
	}

	value, ok := number(it.Value)
	if !ok {
		*warnings = append(*warnings, fmt.Sprintf("item %d (%s): value %s is not a number, using 0", i+1, name, it.Value))
	}

	color, _ := text(it.Color)
	if err := errors.ValidateColor(color); err != nil {
		*warnings = append(*warnings, fmt.Sprintf("item %d (%s): %s, using palette", i+1, name, errors.UserMessage(err)))
		color = ""
	}

	e := Entry{Item: proportion.Item{Name: name, Value: value, Color: color}}
	for _, b := range it.Breakdown {
		label, _ := text(b.Label)
		amount, ok := money(b.Amount)
		if !ok {
			*warnings = append(*warnings, fmt.Sprintf("item %d (%s): breakdown %q amount %s is not a number, using 0", i+1, name, label, b.Amount))
		}
		e.Breakdown = append(e.Breakdown, BreakdownLine{Label: label, Amount: amount})
	}
	return e
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

// text returns a string or number field as display text. ok is false when
// the field is absent or null.
func text(raw json.RawMessage) (string, bool) {
	if isNull(raw) {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}
	return string(raw), true
}

// number decodes a numeric field. Absent and null fields are 0 without a
// warning; anything that does not parse as a finite number is 0 with ok
// false.
func number(raw json.RawMessage) (float64, bool) {
	if isNull(raw) {
		return 0, true
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, false
	}
	switch x := v.(type) {
	case float64:
		return x, true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, true
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

var nonNumeric = regexp.MustCompile(`[^0-9.\-]`)

// money decodes an amount that may be formatted as currency ("$1,250,000").
func money(raw json.RawMessage) (float64, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return number(json.RawMessage(strconv.Quote(nonNumeric.ReplaceAllString(s, ""))))
	}
	return number(raw)
}
