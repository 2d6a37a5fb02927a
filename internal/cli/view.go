package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sharechart/pkg/io"
	"github.com/matzehuels/sharechart/pkg/proportion"
	"github.com/matzehuels/sharechart/pkg/render/raster"
	"github.com/matzehuels/sharechart/pkg/render/styles"
	"github.com/matzehuels/sharechart/pkg/render/table"
	"github.com/matzehuels/sharechart/pkg/render/widget"
	"github.com/matzehuels/sharechart/pkg/source"
)

// Bar widths in terminal cells.
const (
	minBarCells     = 10
	defaultBarCells = 40
)

var (
	viewHelpStyle   = lipgloss.NewStyle().Foreground(colorDim)
	viewStatusStyle = lipgloss.NewStyle().Foreground(colorGreen)
	viewKPIStyle    = lipgloss.NewStyle().Foreground(colorWhite).Bold(true)
	viewEmptyStyle  = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// viewModel - chart/table toggle in the terminal
// =============================================================================

// viewModel is the bubbletea model behind the view command. It shows the
// data as horizontal percentage bars or as a table and flips between the
// two on a key press.
type viewModel struct {
	title  string
	items  []proportion.NormalizedItem
	colors []string
	rows   []table.Row
	kpis   []io.KPI

	view   widget.ViewMode
	status string
	cells  int
}

func newViewModel(doc io.Document, title string, view widget.ViewMode, palette styles.Palette, f *styles.Formatter) viewModel {
	items := proportion.Normalize(doc.Series())
	colors := make([]string, len(items))
	for i, it := range items {
		colors[i] = terminalColor(palette.Color(i, it.Color))
	}
	return viewModel{
		title:  title,
		items:  items,
		colors: colors,
		rows:   table.Rows(items, f),
		kpis:   doc.KPIs,
		view:   view,
		cells:  defaultBarCells,
	}
}

// terminalColor converts any CSS color the renderers accept into the hex
// form lipgloss understands.
func terminalColor(css string) string {
	c := raster.ParseColor(css)
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (m viewModel) Init() tea.Cmd {
	return nil
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "t", "tab", " ", "enter":
			m.view = m.view.Toggle()
			m.status = m.view.Announcement()
		case "c":
			m.view = widget.ViewChart
			m.status = m.view.Announcement()
		}
	case tea.WindowSizeMsg:
		m.cells = max(minBarCells, min(defaultBarCells, msg.Width-40))
	}
	return m, nil
}

func (m viewModel) View() string {
	var b strings.Builder

	if m.title != "" {
		b.WriteString(StyleTitle.Render(m.title))
		b.WriteString("\n\n")
	}
	if len(m.kpis) > 0 {
		parts := make([]string, len(m.kpis))
		for i, k := range m.kpis {
			parts[i] = StyleDim.Render(k.Label+" ") + viewKPIStyle.Render(k.Value)
		}
		b.WriteString(strings.Join(parts, StyleDim.Render("  ·  ")))
		b.WriteString("\n\n")
	}

	switch {
	case len(m.items) == 0:
		b.WriteString(viewEmptyStyle.Render(widget.EmptyMessage))
		b.WriteString("\n")
	case m.view == widget.ViewTable:
		b.WriteString(table.RenderText(m.rows))
		b.WriteString("\n")
	default:
		b.WriteString(m.chart())
	}

	b.WriteString("\n")
	b.WriteString(viewHelpStyle.Render(fmt.Sprintf("t %s  q quit", strings.ToLower(m.view.ButtonLabel()))))
	if m.status != "" {
		b.WriteString("  ")
		b.WriteString(viewStatusStyle.Render(m.status))
	}
	b.WriteString("\n")
	return b.String()
}

// chart draws one bar per item, scaled so 100% fills m.cells.
func (m viewModel) chart() string {
	nameWidth := 0
	for _, it := range m.items {
		nameWidth = max(nameWidth, lipgloss.Width(it.Name))
	}
	nameStyle := lipgloss.NewStyle().Width(nameWidth + 2)

	var b strings.Builder
	for i, it := range m.items {
		filled := it.Percent * m.cells / 100
		if it.Percent > 0 && filled == 0 {
			filled = 1
		}
		bar := lipgloss.NewStyle().Foreground(lipgloss.Color(m.colors[i])).Render(strings.Repeat("█", filled))
		rest := StyleDim.Render(strings.Repeat("░", m.cells-filled))
		fmt.Fprintf(&b, "%s%s%s %s\n", nameStyle.Render(it.Name), bar, rest, StyleNumber.Render(fmt.Sprintf("%3d%%", it.Percent)))
	}
	return b.String()
}

// =============================================================================
// Command
// =============================================================================

// viewCommand creates the interactive view command.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		view     string
		title    string
		locale   string
		currency string
	)

	cmd := &cobra.Command{
		Use:   "view [source]",
		Short: "Browse a data source in the terminal",
		Long: `Show a data source as percentage bars in the terminal.

Press t to switch between the chart and the table view, q to quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := widget.ParseViewMode(view)
			if err != nil {
				return err
			}
			f, err := styles.NewFormatter(firstNonEmpty(locale, c.Config.Chart.Locale), firstNonEmpty(currency, c.Config.Chart.Currency))
			if err != nil {
				return err
			}
			return c.runView(cmd.Context(), args[0], title, mode, f)
		},
	}

	cmd.Flags().StringVar(&view, "view", "chart", "initial view: chart or table")
	cmd.Flags().StringVar(&title, "title", "", "title (default: document title)")
	cmd.Flags().StringVar(&locale, "locale", "", "number formatting locale (default en-CA)")
	cmd.Flags().StringVar(&currency, "currency", "", "currency code (default CAD)")

	return cmd
}

func (c *CLI) runView(ctx context.Context, src, title string, mode widget.ViewMode, f *styles.Formatter) error {
	runner, err := c.newRunner(ctx, false)
	if err != nil {
		return err
	}
	defer runner.Close()
	if src == source.Stdin {
		return fmt.Errorf("view needs the terminal for input; pass a file or URL")
	}

	res, err := runner.Loader.Load(ctx, src)
	if err != nil {
		return err
	}
	for _, w := range res.Document.Warnings {
		printWarning("%s", w)
	}

	palette := styles.DefaultPalette
	if len(c.Config.Chart.Palette) > 0 {
		palette = styles.Palette(c.Config.Chart.Palette)
	}
	m := newViewModel(res.Document, firstNonEmpty(title, res.Document.Title), mode, palette, f)

	_, err = tea.NewProgram(m, tea.WithContext(ctx), tea.WithOutput(c.out)).Run()
	return err
}
