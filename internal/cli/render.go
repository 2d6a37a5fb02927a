package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sharechart/pkg/pipeline"
	"github.com/matzehuels/sharechart/pkg/source"
)

// stdoutPath selects standard output for --output.
const stdoutPath = "-"

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags  chartFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "render [source]",
		Short: "Render a data source to SVG, PNG, HTML, JSON or text",
		Long: `Render a data source to one or more output formats.

The source is a JSON file, an http(s) URL, or "-" for standard input. It is
either an array of {name, value} items or an object with a "data" or "items"
array, an optional "title" and optional "kpis".

Percentages always add up to exactly 100. Results are cached locally, keyed
by the document content and the render options.`,
		Example: `  sharechart render budget.json
  sharechart render budget.json -f svg,png,html -o out/budget
  sharechart render -c bar --max 40 rates.json -o rates.html
  curl -s https://example.org/budget.json | sharechart render - -f txt -o -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.formats == "" {
				flags.formats = formatFromPath(output)
			}
			opts, err := flags.options(cmd, c.Config.Chart)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, output, flags.noCache)
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringVarP(&output, "output", "o", "", `output file (single format), base path (multiple), or "-" for stdout`)

	return cmd
}

func (c *CLI) runRender(ctx context.Context, src string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()
	if src == source.Stdin {
		runner.Loader = source.NewLoader(source.WithStdin(c.stdin))
	}

	prog := newProgress(loggerFromContext(ctx))

	var spin *spinner
	if source.IsRemote(src) {
		spin = newSpinner(ctx, statusOut, "Fetching "+src)
		spin.Start()
	}
	result, err := runner.Execute(ctx, src, opts)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %s", opts.Chart))

	for _, w := range result.Warnings {
		printWarning("%s", w)
	}

	if output == stdoutPath {
		if len(opts.Formats) != 1 {
			return fmt.Errorf("--output - needs exactly one format, got %d", len(opts.Formats))
		}
		_, err := c.out.Write(result.Artifacts[opts.Formats[0]])
		return err
	}

	base := basePath(output, src)
	printSuccess("Rendered %s", StyleTitle.Render(result.Title+" ("+opts.Chart+")"))
	printStats(result.Items, opts.Formats, result.CacheInfo.RenderHit)
	for _, format := range opts.Formats {
		path := outputPath(output, base, format, len(opts.Formats))
		if filepath.Clean(path) == filepath.Clean(src) {
			return fmt.Errorf("refusing to overwrite the source %s; pass --output", src)
		}
		if err := writeFile(path, result.Artifacts[format]); err != nil {
			return err
		}
		printFile(path)
	}
	return nil
}

// basePath derives the base output path from the output and input paths.
// If output is empty, it strips the extension from the input file name; a
// remote or stdin source falls back to "chart". If output has a format
// extension, that extension is stripped.
func basePath(output, input string) string {
	if output == "" {
		if input == source.Stdin || source.IsRemote(input) {
			return "chart"
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// formatFromPath infers the format from an output file extension.
func formatFromPath(output string) string {
	ext := strings.TrimPrefix(filepath.Ext(output), ".")
	if pipeline.ValidFormats[ext] {
		return ext
	}
	return ""
}

// outputPath names the file for one format. A single format written to an
// explicit path uses that path unchanged.
func outputPath(output, base, format string, formats int) string {
	if formats == 1 && output != "" && filepath.Ext(output) != "" {
		return output
	}
	return base + "." + format
}

// writeFile writes data to path, creating parent directories as needed.
func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
