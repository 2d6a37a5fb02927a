// Package pkg provides the core libraries for sharechart.
//
// # Overview
//
// Sharechart turns a list of named values into whole percentages that add up
// to exactly 100 and renders them as pie charts, bar charts, data tables and
// KPI tiles. The pkg directory is organized into three areas:
//
//  1. Domain logic: [proportion] apportions and lays out slices, [io] decodes
//     data documents.
//  2. Rendering: [render] and its subpackages draw SVG, PNG, HTML, JSON and
//     text.
//  3. Infrastructure: [source], [cache], [config], [pipeline], [errors],
//     [observability] and [buildinfo].
//
// # Architecture
//
// The typical data flow:
//
//	JSON document (file, URL, stdin or request body)
//	         ↓
//	    [source] package (read, fetch, cache raw bytes)
//	         ↓
//	    [io] package (decode items and KPIs, coerce values)
//	         ↓
//	    [proportion] package (normalize to percentages, slice geometry)
//	         ↓
//	    [render] packages (pie, bar, table, kpi, widget)
//	         ↓
//	    SVG/PNG/HTML/JSON/TXT output
//
// [pipeline] runs the whole flow with caching and is shared by the CLI and
// the HTTP server.
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, err := runner.Execute(ctx, "budget.json", pipeline.Options{
//	    Chart:   pipeline.ChartPie,
//	    Formats: []string{pipeline.FormatSVG, pipeline.FormatHTML},
//	})
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("budget.svg", result.Artifacts[pipeline.FormatSVG], 0o644)
//
// [proportion]: https://pkg.go.dev/github.com/matzehuels/sharechart/pkg/proportion
// [io]: https://pkg.go.dev/github.com/matzehuels/sharechart/pkg/io
// [render]: https://pkg.go.dev/github.com/matzehuels/sharechart/pkg/render
// [source]: https://pkg.go.dev/github.com/matzehuels/sharechart/pkg/source
// [cache]: https://pkg.go.dev/github.com/matzehuels/sharechart/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/sharechart/pkg/config
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/sharechart/pkg/pipeline
// [errors]: https://pkg.go.dev/github.com/matzehuels/sharechart/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/sharechart/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/sharechart/pkg/buildinfo
package pkg
