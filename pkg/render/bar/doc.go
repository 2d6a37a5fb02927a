// Package bar renders values as horizontal bars scaled against a fixed
// maximum.
//
// Unlike a pie, bars are not normalized: each bar's width is its value as a
// percentage of the configured maximum (35 by default), so a value above the
// maximum yields a fraction above 100. The HTML sink keeps that fraction and
// lets its container clip the overflow; the SVG and PNG sinks clamp it.
//
// Entries may carry a breakdown of currency amounts, listed under the bar in
// a collapsible details element.
package bar
