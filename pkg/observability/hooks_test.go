package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnLoadStart(ctx, "data.json")
	p.OnLoadComplete(ctx, "data.json", 3, time.Second, nil)
	p.OnRenderStart(ctx, "pie", []string{"svg"})
	p.OnRenderComplete(ctx, "pie", []string{"svg"}, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "artifact")
	c.OnCacheMiss(ctx, "source")
	c.OnCacheSet(ctx, "artifact", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "example.org", "/budget.json")
	h.OnResponse(ctx, "GET", "example.org", "/budget.json", 200, time.Second)
	h.OnError(ctx, "GET", "example.org", "/budget.json", nil)

	NoopServerHooks{}.OnServe(ctx, "GET", "/v1/{chart}.{format}", 200, time.Millisecond)
}

type countingHooks struct {
	NoopPipelineHooks
	NoopCacheHooks
	NoopServerHooks
	renders, hits int
}

func (c *countingHooks) OnRenderStart(context.Context, string, []string) { c.renders++ }
func (c *countingHooks) OnCacheHit(context.Context, string)              { c.hits++ }

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should default to NoopPipelineHooks")
	}
	if _, ok := Server().(NoopServerHooks); !ok {
		t.Error("Server() should default to NoopServerHooks")
	}

	h := &countingHooks{}
	SetPipelineHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(nil)

	ctx := context.Background()
	Pipeline().OnRenderStart(ctx, "bar", nil)
	Cache().OnCacheHit(ctx, "artifact")
	if h.renders != 1 || h.hits != 1 {
		t.Errorf("renders=%d hits=%d, want 1 and 1", h.renders, h.hits)
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("SetHTTPHooks(nil) should keep the no-op hooks")
	}

	Reset()
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Reset() should restore NoopCacheHooks")
	}
}
