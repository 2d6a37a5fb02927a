// Package cli holds the cobra commands behind the sharechart binary:
//
//   - render writes a chart as svg, png, html, json or txt
//   - split prints the percentage split of a data source
//   - view toggles between bars and a table in the terminal
//   - serve answers widget requests over HTTP
//   - cache and config inspect local state
//
// Every command receives the charm logger through its context; main adds
// --verbose to lower it to debug.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sharechart/pkg/buildinfo"
	"github.com/matzehuels/sharechart/pkg/cache"
	"github.com/matzehuels/sharechart/pkg/config"
	"github.com/matzehuels/sharechart/pkg/observability"
	"github.com/matzehuels/sharechart/pkg/pipeline"
)

const (
	appName = "sharechart"

	// redisPrefix scopes keys when the config file does not set one.
	redisPrefix = "sharechart:"
)

// Levels accepted by New and SetLogLevel.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI is the state shared by every command of one invocation.
type CLI struct {
	Logger *log.Logger

	// Config is the loaded configuration file, populated before any
	// command runs.
	Config config.Config

	configPath string
	stdin      io.Reader
	out        io.Writer
}

// New returns a CLI logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:     newLogger(w, level),
		configPath: config.DefaultPath(),
		stdin:      os.Stdin,
		out:        os.Stdout,
	}
}

func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand builds the sharechart command tree.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Sharechart renders proportional data as charts and tables",
		Long: `Sharechart turns a list of named values into percentages that add up to
exactly 100 and renders them as pie charts, bar charts, data tables or KPI
tiles, as files or as embeddable HTML widgets.`,
		Version:           buildinfo.Resolved(),
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", c.configPath, "config file (TOML)")

	root.AddCommand(
		c.renderCommand(),
		c.splitCommand(),
		c.viewCommand(),
		c.serveCommand(),
		c.cacheCommand(),
		c.configCommand(),
		c.completionCommand(),
	)

	return root
}

// setup loads the config file and attaches the logger and observability
// hooks before a command runs.
func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.installHooks()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))
	return nil
}

func (c *CLI) installHooks() {
	h := logHooks{logger: c.Logger}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
	observability.SetServerHooks(h)
}

// newRunner wires the configured cache into a pipeline runner.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(cc, nil, c.Logger)
	r.TTL = c.Config.Cache.TTL.Duration
	return r, nil
}

// newCache opens the backend selected in the config file. The file cache is
// the default; when its directory cannot be determined caching is disabled.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	cfg := c.Config.Cache
	if noCache || cfg.Backend == config.BackendNone {
		return cache.NewNullCache(), nil
	}
	if cfg.Backend == config.BackendRedis {
		prefix := cfg.Prefix
		if prefix == "" {
			prefix = redisPrefix
		}
		rc, err := cache.NewRedisCache(ctx, cfg.RedisURL, prefix)
		if err != nil {
			return nil, fmt.Errorf("open redis cache: %w", err)
		}
		return rc, nil
	}
	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Debug("file cache disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory, or the XDG default
// (~/.cache/sharechart/).
func (c *CLI) cacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return cacheDir()
}

// cacheDir returns the cache directory using XDG standard (~/.cache/sharechart/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// splitList parses a comma-separated flag value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
