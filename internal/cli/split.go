package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sharechart/pkg/pipeline"
	"github.com/matzehuels/sharechart/pkg/render/kpi"
	"github.com/matzehuels/sharechart/pkg/source"
)

// splitCommand creates the split command, which prints the apportioned
// percentages without drawing a chart.
func (c *CLI) splitCommand() *cobra.Command {
	var (
		asJSON   bool
		locale   string
		currency string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "split [source]",
		Short: "Print the percentage split of a data source",
		Long: `Print each item's share of the total as a whole percentage.

Shares are rounded with the largest remainder method, so they always add up
to exactly 100. KPIs in the document are listed below the table.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := pipeline.FormatTXT
			if asJSON {
				format = pipeline.FormatJSON
			}
			opts := pipeline.Options{
				Chart:    pipeline.ChartTable,
				Formats:  []string{format},
				Locale:   firstNonEmpty(locale, c.Config.Chart.Locale),
				Currency: firstNonEmpty(currency, c.Config.Chart.Currency),
				Logger:   loggerFromContext(cmd.Context()),
			}
			return c.runSplit(cmd.Context(), args[0], opts, noCache)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print rows as JSON")
	cmd.Flags().StringVar(&locale, "locale", "", "number formatting locale (default en-CA)")
	cmd.Flags().StringVar(&currency, "currency", "", "currency code (default CAD)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runSplit(ctx context.Context, src string, opts pipeline.Options, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()
	if src == source.Stdin {
		runner.Loader = source.NewLoader(source.WithStdin(c.stdin))
	}

	res, err := runner.Loader.Load(ctx, src)
	if err != nil {
		return err
	}
	result, err := runner.RenderResult(ctx, res, opts)
	if err != nil {
		return err
	}
	for _, w := range result.Warnings {
		printWarning("%s", w)
	}

	if result.Title != "" && opts.Formats[0] == pipeline.FormatTXT {
		fmt.Fprintln(c.out, StyleTitle.Render(result.Title))
	}
	if _, err := c.out.Write(result.Artifacts[opts.Formats[0]]); err != nil {
		return err
	}
	if kpis := res.Document.KPIs; len(kpis) > 0 && opts.Formats[0] == pipeline.FormatTXT {
		fmt.Fprintln(c.out)
		fmt.Fprint(c.out, kpi.RenderText(kpis))
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
