package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sharechart/pkg/cache"
	"github.com/matzehuels/sharechart/pkg/observability"
	"github.com/matzehuels/sharechart/pkg/source"
)

// Runner loads documents and renders them through the artifact cache. The
// CLI and the widget server share one implementation of it.
//
// A Runner keeps no per-request state and may be used from many goroutines
// at once.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL is the artifact lifetime; zero selects cache.TTLArtifact.
	TTL time.Duration

	// Loader reads data documents. NewRunner installs one that caches
	// remote documents in Cache.
	Loader *source.Loader
}

// NewRunner returns a Runner over c. A nil c disables caching and a nil
// keyer hashes with cache.DefaultKeyer.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		Loader: source.NewLoader(source.WithCache(c, cache.TTLSource), source.WithKeyer(keyer)),
	}
}

// Execute runs the complete load → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, src string, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("options: %w", err)
	}

	loadStart := time.Now()
	res, err := r.Loader.Load(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	loadTime := time.Since(loadStart)

	result, err := r.RenderResult(ctx, res, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.LoadTime = loadTime
	return result, nil
}

// RenderResult renders an already loaded document.
func (r *Runner) RenderResult(ctx context.Context, res source.Result, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("options: %w", err)
	}

	result := &Result{
		Source:    res.Source,
		DataHash:  res.Hash(),
		Title:     opts.ResolveTitle(res.Document.Title),
		Items:     len(res.Document.Entries),
		Warnings:  res.Document.Warnings,
		CacheInfo: CacheInfo{SourceHit: res.Cached},
	}
	for _, w := range res.Document.Warnings {
		opts.Logger.Warn("coerced value", "source", res.Source, "detail", w)
	}
	opts.Logger.Debug("loaded data",
		"source", res.Source,
		"items", result.Items,
		"kpis", len(res.Document.KPIs),
		"cached", res.Cached)

	began := time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, res, opts)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", opts.Chart, err)
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = hit
	result.Stats.RenderTime = time.Since(began)

	opts.Logger.Info("rendered",
		"chart", opts.Chart, "formats", opts.Formats,
		"cached", hit, "took", result.Stats.RenderTime)

	return result, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit
// info. Formats found in the cache are reused; only the missing ones are
// rendered.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, res source.Result, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnRenderStart(ctx, opts.Chart, opts.Formats)

	dataHash := res.Hash()
	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		if !opts.Refresh {
			key := r.Keyer.ArtifactKey(dataHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = data
				continue
			} else if err != nil {
				opts.Logger.Debug("cache read failed", "format", format, "error", err)
			}
			observability.Cache().OnCacheMiss(ctx, "artifact")
		}
		missing = append(missing, format)
	}

	if len(missing) == 0 {
		hooks.OnRenderComplete(ctx, opts.Chart, opts.Formats, time.Since(start), nil)
		return artifacts, true, nil
	}

	rendered, err := renderFormats(ctx, res.Document, opts, missing)
	hooks.OnRenderComplete(ctx, opts.Chart, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		artifacts[format] = data
		key := r.Keyer.ArtifactKey(dataHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, r.ttl()); err != nil {
			opts.Logger.Debug("cache write failed", "format", format, "error", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return artifacts, false, nil
}

// Render is RenderWithCacheInfo without the hit flag.
func (r *Runner) Render(ctx context.Context, res source.Result, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, res, opts)
	return artifacts, err
}

// Close closes the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) ttl() time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return cache.TTLArtifact
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
