// Package observability lets an application observe chart rendering without
// the libraries depending on any metrics or tracing backend.
//
// Hooks are registered once at startup and called by the pipeline, the
// cache layer, the source loader and the HTTP server:
//
//	observability.SetPipelineHooks(myMetrics{})
//	observability.Pipeline().OnRenderStart(ctx, "pie", []string{"svg"})
//
// Every hook defaults to a no-op implementation.
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives events from loading and rendering.
type PipelineHooks interface {
	OnLoadStart(ctx context.Context, source string)
	OnLoadComplete(ctx context.Context, source string, items int, duration time.Duration, err error)

	OnRenderStart(ctx context.Context, chart string, formats []string)
	OnRenderComplete(ctx context.Context, chart string, formats []string, duration time.Duration, err error)
}

// CacheHooks receives events from artifact and source caching. keyType is
// "artifact" or "source".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives events from outgoing requests for remote data sources.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, host, path string)
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)
	OnError(ctx context.Context, method, host, path string, err error)
}

// ServerHooks receives one event per request handled by the chart server.
type ServerHooks interface {
	OnServe(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLoadStart(context.Context, string)                                      {}
func (NoopPipelineHooks) OnLoadComplete(context.Context, string, int, time.Duration, error)        {}
func (NoopPipelineHooks) OnRenderStart(context.Context, string, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, string, []string, time.Duration, error) {}

type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

type NoopServerHooks struct{}

func (NoopServerHooks) OnServe(context.Context, string, string, int, time.Duration) {}

// registry holds the active hooks. It is swapped as a whole by Reset.
type registry struct {
	pipeline PipelineHooks
	cache    CacheHooks
	http     HTTPHooks
	server   ServerHooks
}

func noopRegistry() registry {
	return registry{NoopPipelineHooks{}, NoopCacheHooks{}, NoopHTTPHooks{}, NoopServerHooks{}}
}

var (
	mu     sync.RWMutex
	active = noopRegistry()
)

func update(fn func(r *registry)) {
	mu.Lock()
	defer mu.Unlock()
	fn(&active)
}

func current() registry {
	mu.RLock()
	defer mu.RUnlock()
	return active
}

// SetPipelineHooks registers h. A nil h is ignored, as for every setter.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		update(func(r *registry) { r.pipeline = h })
	}
}

func SetCacheHooks(h CacheHooks) {
	if h != nil {
		update(func(r *registry) { r.cache = h })
	}
}

func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		update(func(r *registry) { r.http = h })
	}
}

func SetServerHooks(h ServerHooks) {
	if h != nil {
		update(func(r *registry) { r.server = h })
	}
}

func Pipeline() PipelineHooks { return current().pipeline }
func Cache() CacheHooks       { return current().cache }
func HTTP() HTTPHooks         { return current().http }
func Server() ServerHooks     { return current().server }

// Reset restores the no-op hooks. Tests use it to undo registrations.
func Reset() {
	update(func(r *registry) { *r = noopRegistry() })
}
