package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sharechart/internal/server"
	"github.com/matzehuels/sharechart/pkg/config"
)

// Server defaults used when neither flags nor the config file set them.
const (
	defaultAddr         = ":8080"
	defaultReadTimeout  = 15 * time.Second
	defaultWriteTimeout = 60 * time.Second
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr        string
		dataDir     string
		allowRemote bool
		noCache     bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve chart widgets over HTTP",
		Long: `Serve charts rendered on request.

  GET  /v1/{chart}.{format}?src=budget.json
  POST /v1/{chart}.{format}   (data document as the request body)

Local sources are read from --data-dir. Remote URLs are only fetched with
--allow-remote. Query parameters view, title, id, max, radius, label_offset,
scale and script override the [chart] section of the config file.`,
		Example: `  sharechart serve --data-dir ./data
  curl 'localhost:8080/v1/pie.html?src=budget.json&view=table'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.Config.Server
			if cmd.Flags().Changed("addr") || cfg.Addr == "" {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("data-dir") {
				cfg.DataDir = dataDir
			}
			if cmd.Flags().Changed("allow-remote") {
				cfg.AllowRemote = allowRemote
			}
			return c.runServe(cmd.Context(), cfg, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "directory local sources are resolved in")
	cmd.Flags().BoolVar(&allowRemote, "allow-remote", false, "allow http(s) sources")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg config.Server, noCache bool) error {
	if cfg.DataDir == "" && !cfg.AllowRemote {
		printWarning("No --data-dir and remote sources disabled; only POST requests will render")
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	srv := server.New(runner, server.Options{
		DataDir:     cfg.DataDir,
		AllowRemote: cfg.AllowRemote,
		Chart:       c.Config.Chart,
	})

	read, write := cfg.ReadTimeout.Duration, cfg.WriteTimeout.Duration
	if read <= 0 {
		read = defaultReadTimeout
	}
	if write <= 0 {
		write = defaultWriteTimeout
	}

	printSuccess("Listening on %s", StyleValue.Render(cfg.Addr))
	if cfg.DataDir != "" {
		printKeyValue("Data", cfg.DataDir)
	}
	printKeyValue("Remote", fmt.Sprint(cfg.AllowRemote))
	err = srv.ListenAndServe(ctx, cfg.Addr, read, write)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
