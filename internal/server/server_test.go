package server

import (
	"context"
	"encoding/json"
	stdio "io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/sharechart/pkg/cache"
	"github.com/matzehuels/sharechart/pkg/config"
	"github.com/matzehuels/sharechart/pkg/errors"
	"github.com/matzehuels/sharechart/pkg/observability"
	"github.com/matzehuels/sharechart/pkg/pipeline"
)

const budget = `{
  "title": "City budget",
  "data": [
    {"name": "Property tax", "value": 600},
    {"name": "Grants", "value": 400}
  ],
  "kpis": [{"label": "Total", "value": "$1,000"}]
}`

func newTestServer(t *testing.T, opts Options) *httptest.Server {
	t.Helper()
	if opts.DataDir == "" {
		opts.DataDir = t.TempDir()
	}
	if err := os.WriteFile(filepath.Join(opts.DataDir, "budget.json"), []byte(budget), 0o644); err != nil {
		t.Fatal(err)
	}
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := pipeline.NewRunner(fc, nil, log.New(stdio.Discard))
	ts := httptest.NewServer(New(runner, opts).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := stdio.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, string(body)
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, Options{})

	resp, body := get(t, ts.URL+"/healthz")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var got map[string]string
	if err := json.Unmarshal([]byte(body), &got); err != nil {
		t.Fatal(err)
	}
	if got["status"] != "ok" || got["version"] == "" {
		t.Errorf("health = %v", got)
	}
}

func TestRenderGet(t *testing.T) {
	ts := newTestServer(t, Options{})

	tests := []struct {
		name        string
		path        string
		contentType string
		contains    []string
	}{
		{
			name:        "pie svg",
			path:        "/v1/pie.svg?src=budget.json",
			contentType: "image/svg+xml",
			contains:    []string{"<svg", "Property tax 60%"},
		},
		{
			name:        "pie html table view",
			path:        "/v1/pie.html?src=budget.json&view=table",
			contentType: "text/html; charset=utf-8",
			contains:    []string{"City budget", `class="chart" hidden`, "$1,000"},
		},
		{
			name:        "bar html with max",
			path:        "/v1/bar.html?src=budget.json&max=80&id=rates",
			contentType: "text/html; charset=utf-8",
			contains:    []string{"rates-chart", "Grants"},
		},
		{
			name:        "table json",
			path:        "/v1/table.json?src=budget.json",
			contentType: "application/json",
			contains:    []string{`"percent": "60%"`, `"category": "Grants"`},
		},
		{
			name:        "kpi text",
			path:        "/v1/kpi.txt?src=budget.json",
			contentType: "text/plain; charset=utf-8",
			contains:    []string{"Total", "$1,000"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := get(t, ts.URL+tt.path)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d, want 200: %s", resp.StatusCode, body)
			}
			if got := resp.Header.Get("Content-Type"); got != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", got, tt.contentType)
			}
			for _, want := range tt.contains {
				if !strings.Contains(body, want) {
					t.Errorf("body missing %q", want)
				}
			}
		})
	}
}

func TestRenderCacheHeader(t *testing.T) {
	ts := newTestServer(t, Options{})
	url := ts.URL + "/v1/pie.svg?src=budget.json"

	first, _ := get(t, url)
	second, _ := get(t, url)

	if got := first.Header.Get("X-Cache"); got != "miss" {
		t.Errorf("first X-Cache = %q, want miss", got)
	}
	if got := second.Header.Get("X-Cache"); got != "hit" {
		t.Errorf("second X-Cache = %q, want hit", got)
	}
}

func TestRenderPost(t *testing.T) {
	ts := newTestServer(t, Options{})

	resp, err := http.Post(ts.URL+"/v1/table.txt", "application/json", strings.NewReader(budget))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := stdio.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", resp.StatusCode, body)
	}
	if !strings.Contains(string(body), "Property tax") {
		t.Errorf("body = %q", body)
	}
}

func TestRenderPostTooLarge(t *testing.T) {
	ts := newTestServer(t, Options{MaxBody: 16})

	resp, err := http.Post(ts.URL+"/v1/pie.json", "application/json", strings.NewReader(budget))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestRenderPostOversizedPNG(t *testing.T) {
	ts := newTestServer(t, Options{})

	resp, err := http.Post(ts.URL+"/v1/pie.png?radius=10000000&scale=8", "application/json",
		strings.NewReader(`[{"name":"a","value":1}]`))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	health, _ := get(t, ts.URL+"/healthz")
	if health.StatusCode != http.StatusOK {
		t.Errorf("server unhealthy after rejected render: %d", health.StatusCode)
	}
}

func TestRenderErrors(t *testing.T) {
	ts := newTestServer(t, Options{})

	tests := []struct {
		name   string
		path   string
		status int
		code   errors.Code
	}{
		{"missing source", "/v1/pie.json", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"unknown chart", "/v1/donut.json?src=budget.json", http.StatusBadRequest, errors.ErrCodeInvalidChart},
		{"format not offered", "/v1/kpi.png?src=budget.json", http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"bad view", "/v1/pie.json?src=budget.json&view=grid", http.StatusBadRequest, errors.ErrCodeInvalidView},
		{"negative max", "/v1/bar.json?src=budget.json&max=-1", http.StatusBadRequest, errors.ErrCodeInvalidConfiguration},
		{"non-numeric radius", "/v1/pie.json?src=budget.json&radius=big", http.StatusBadRequest, errors.ErrCodeInvalidConfiguration},
		{"oversized radius", "/v1/pie.png?src=budget.json&radius=10000000&scale=8", http.StatusBadRequest, errors.ErrCodeInvalidConfiguration},
		{"infinite label offset", "/v1/pie.svg?src=budget.json&label_offset=Inf", http.StatusBadRequest, errors.ErrCodeInvalidConfiguration},
		{"image over pixel limit", "/v1/pie.png?src=budget.json&radius=1000&label_offset=200&scale=8", http.StatusBadRequest, errors.ErrCodeInvalidConfiguration},
		{"path traversal", "/v1/pie.json?src=../secret.json", http.StatusBadRequest, errors.ErrCodeInvalidPath},
		{"remote disabled", "/v1/pie.json?src=https://example.org/a.json", http.StatusBadRequest, errors.ErrCodeInvalidPath},
		{"not found", "/v1/pie.json?src=missing.json", http.StatusNotFound, errors.ErrCodeSourceNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := get(t, ts.URL+tt.path)
			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d: %s", resp.StatusCode, tt.status, body)
			}
			var got errorResponse
			if err := json.Unmarshal([]byte(body), &got); err != nil {
				t.Fatalf("decode error body %q: %v", body, err)
			}
			if got.Code != string(tt.code) {
				t.Errorf("code = %q, want %q", got.Code, tt.code)
			}
			if got.RequestID == "" {
				t.Error("missing request_id")
			}
		})
	}
}

func TestRenderErrorsHTML(t *testing.T) {
	ts := newTestServer(t, Options{})

	tests := []struct {
		name   string
		path   string
		status int
		want   string
	}{
		{"no source", "/v1/pie.html", http.StatusBadRequest, "No data provided."},
		{"not found", "/v1/pie.html?src=missing.json", http.StatusNotFound, "Failed to load: data source missing.json not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := get(t, ts.URL+tt.path)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			if !strings.Contains(body, tt.want) {
				t.Errorf("body = %q, want it to contain %q", body, tt.want)
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	ts := newTestServer(t, Options{})

	const id = "0f8fad5b-d9cb-469f-a165-70867728950e"
	req, err := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set(RequestIDHeader, id)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get(RequestIDHeader); got != id {
		t.Errorf("propagated id = %q, want %q", got, id)
	}

	req.Header.Set(RequestIDHeader, "not-a-uuid")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get(RequestIDHeader); got == "not-a-uuid" || got == "" {
		t.Errorf("replaced id = %q, want a fresh uuid", got)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.New(errors.ErrCodeInvalidFormat, "x"), http.StatusBadRequest},
		{errors.New(errors.ErrCodeUnsupported, "x"), http.StatusBadRequest},
		{errors.New(errors.ErrCodeFileNotFound, "x"), http.StatusNotFound},
		{errors.New(errors.ErrCodeNetwork, "x"), http.StatusInternalServerError},
		{context.Canceled, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := StatusFor(tt.err); got != tt.want {
			t.Errorf("StatusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

type serveRecorder struct {
	observability.NoopServerHooks
	mu     sync.Mutex
	routes []string
}

func (r *serveRecorder) OnServe(_ context.Context, method, route string, status int, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes = append(r.routes, method+" "+route+" "+http.StatusText(status))
}

func TestServeHooks(t *testing.T) {
	rec := &serveRecorder{}
	observability.SetServerHooks(rec)
	t.Cleanup(observability.Reset)

	ts := newTestServer(t, Options{Chart: config.Chart{Max: 50}})
	get(t, ts.URL+"/healthz")
	get(t, ts.URL+"/v1/bar.json?src=budget.json")

	// OnServe fires after the body is written, so the client can finish first.
	deadline := time.Now().Add(2 * time.Second)
	for {
		rec.mu.Lock()
		n := len(rec.routes)
		rec.mu.Unlock()
		if n >= 2 || time.Now().After(deadline) {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	want := []string{
		"GET /healthz OK",
		"GET /v1/{chart}.{format} OK",
	}
	if diff := cmp.Diff(want, rec.routes); diff != "" {
		t.Errorf("served routes (-want +got):\n%s", diff)
	}
}

func TestListenAndServeShutdown(t *testing.T) {
	fc := cache.NewNullCache()
	s := New(pipeline.NewRunner(fc, nil, log.New(stdio.Discard)), Options{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0", time.Second, time.Second) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("ListenAndServe() = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
