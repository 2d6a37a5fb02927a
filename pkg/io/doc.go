// Package io decodes chart data documents and writes them back out.
//
// # Overview
//
// Chart widgets read their data from a small JSON document. Real-world
// documents come in several shapes, so [ReadJSON] accepts all of them and
// produces a single canonical [Document].
//
// # JSON Format
//
// The items may be a bare array:
//
//	[
//	  {"name": "Residential", "value": 61.5},
//	  {"name": "Commercial", "value": 38.5, "color": "#1f77b4"}
//	]
//
// or wrapped in an object under "data" or "items" (the first non-empty one
// wins, in that order), next to an optional title and KPI list:
//
//	{
//	  "title": "Where your tax dollar goes",
//	  "items": [
//	    {"label": "Police", "value": 21, "breakdown": [
//	      {"label": "Patrol", "amount": "$1,250,000"}
//	    ]}
//	  ],
//	  "kpis": [{"label": "Total budget", "value": "$4.1M"}]
//	}
//
// # Item Fields
//
//   - name or label: display key (name wins when both are present; a missing
//     key becomes "Item N", 1-based)
//   - value: a number or numeric string
//   - color: optional CSS color
//   - breakdown: optional list of {label, amount} lines for bar charts
//
// # Malformed Values
//
// A single bad item must not abort rendering of the rest, so malformed values
// are coerced rather than rejected: a non-numeric value becomes 0 and an
// unsafe color is dropped so the palette applies. Each coercion is recorded
// in [Document.Warnings]. Only JSON that cannot be parsed at all is an error.
//
// # Export
//
// [WriteJSON] writes a Document in canonical form (items under "items", key
// "name"), which [ReadJSON] reads back identically.
package io
