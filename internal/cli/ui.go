package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/sharechart/pkg/errors"
)

// statusOut receives every status line; stdout stays free for rendered
// charts.
var statusOut io.Writer = os.Stderr

// Terminal colors (ANSI 256).
var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	StyleTitle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleDim    = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue  = lipgloss.NewStyle().Foreground(colorWhite)
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	styleSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleKey     = lipgloss.NewStyle().Foreground(colorGray).Width(12)
)

// marker is the colored glyph leading a status line.
type marker struct {
	glyph string
	style lipgloss.Style
}

func (m marker) line(msg string) {
	fmt.Fprintln(statusOut, m.style.Render(m.glyph)+" "+msg)
}

var (
	markOK   = marker{"✓", lipgloss.NewStyle().Foreground(colorGreen)}
	markFail = marker{"✗", lipgloss.NewStyle().Foreground(colorRed)}
	markWarn = marker{"!", lipgloss.NewStyle().Foreground(colorYellow)}
	markInfo = marker{"›", lipgloss.NewStyle().Foreground(colorGray)}
)

func printSuccess(format string, args ...any) {
	markOK.line(fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	markWarn.line(markWarn.style.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	markInfo.line(fmt.Sprintf(format, args...))
}

// ReportError prints a failed command's error as the user message followed
// by the dimmed error code.
func ReportError(err error) {
	msg := errors.UserMessage(err)
	if code := errors.GetCode(err); code != "" {
		msg += StyleDim.Render(" (" + string(code) + ")")
	}
	markFail.line(msg)
}

func printDetail(format string, args ...any) {
	fmt.Fprintln(statusOut, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile announces a written output file.
func printFile(path string) {
	fmt.Fprintln(statusOut, "  "+StyleDim.Render("→")+" "+StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(statusOut, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// printStats summarizes a render: item count, formats written, and whether
// the document came from the cache.
func printStats(items int, formats []string, cached bool) {
	origin := lipgloss.NewStyle().Foreground(colorGray).Render("fresh")
	if cached {
		origin = lipgloss.NewStyle().Foreground(colorGreen).Render("cached")
	}
	sep := StyleDim.Render(" · ")
	fmt.Fprintln(statusOut, "  "+StyleDim.Render(fmt.Sprintf("%d items", items))+sep+
		StyleDim.Render(strings.Join(formats, ", "))+sep+origin)
}
