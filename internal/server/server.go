// Package server serves embeddable chart widgets and images over HTTP.
//
// Routes:
//
//	GET  /healthz
//	GET  /v1/{chart}.{format}?src=<path-or-url>&view=&title=&max=&radius=&label_offset=&scale=&script=
//	POST /v1/{chart}.{format}   (JSON data document as the body)
//
// Local sources are resolved inside the configured data directory. Invalid
// options answer 400, a missing source 404, anything else 500. Every response
// carries an X-Request-ID.
package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	stdio "io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/sharechart/pkg/buildinfo"
	"github.com/matzehuels/sharechart/pkg/cache"
	"github.com/matzehuels/sharechart/pkg/config"
	"github.com/matzehuels/sharechart/pkg/errors"
	"github.com/matzehuels/sharechart/pkg/observability"
	"github.com/matzehuels/sharechart/pkg/pipeline"
	"github.com/matzehuels/sharechart/pkg/render/widget"
	"github.com/matzehuels/sharechart/pkg/source"
)

const (
	// RequestIDHeader carries the per-request id in both directions.
	RequestIDHeader = "X-Request-ID"

	// DefaultMaxBody caps POSTed documents.
	DefaultMaxBody = 1 << 20

	shutdownTimeout = 10 * time.Second
)

// Content types per output format.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatHTML: "text/html; charset=utf-8",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatTXT:  "text/plain; charset=utf-8",
}

// Options configures a [Server].
type Options struct {
	// DataDir confines GET sources to a directory. Empty disables local
	// sources.
	DataDir     string
	AllowRemote bool
	// Chart holds rendering defaults; query parameters override them.
	Chart   config.Chart
	MaxBody int64
}

// Server renders charts on request. It is safe for concurrent use.
type Server struct {
	runner *pipeline.Runner
	loader *source.Loader
	chart  config.Chart
	local  bool
	max    int64
	logger *log.Logger
	router chi.Router
}

// New creates a server rendering through runner.
func New(runner *pipeline.Runner, opts Options) *Server {
	loaderOpts := []source.Option{
		source.WithCache(runner.Cache, cache.TTLSource),
		source.WithKeyer(runner.Keyer),
		source.WithRoot(opts.DataDir),
	}
	if !opts.AllowRemote {
		loaderOpts = append(loaderOpts, source.WithoutRemote())
	}
	if opts.MaxBody <= 0 {
		opts.MaxBody = DefaultMaxBody
	}
	s := &Server{
		runner: runner,
		loader: source.NewLoader(loaderOpts...),
		chart:  opts.Chart,
		local:  opts.DataDir != "",
		max:    opts.MaxBody,
		logger: runner.Logger,
	}
	s.router = s.buildRouter()
	return s
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string, readTimeout, writeTimeout time.Duration) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return ctx.Err()
}

// buildRouter configures all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(observe)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/{chart}.{format}", s.handleGet)
		r.Post("/{chart}.{format}", s.handlePost)
	})
	return r
}

// =============================================================================
// Middleware
// =============================================================================

type ctxKey int

const requestIDKey ctxKey = 0

// requestID propagates a valid incoming X-Request-ID or assigns a new UUID.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

// RequestIDFromContext returns the id assigned by the request id middleware.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// observe reports every request to the server hooks with its route pattern.
func observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		observability.Server().OnServe(r.Context(), r.Method, route, status, time.Since(start))
	})
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Resolved(),
	})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	opts, err := s.options(r)
	if err != nil {
		s.fail(w, r, opts, err)
		return
	}
	src := r.URL.Query().Get("src")
	if src == "" {
		s.fail(w, r, opts, errors.New(errors.ErrCodeInvalidInput, "%s", widget.NoSourceMessage))
		return
	}
	if !s.local && !source.IsRemote(src) {
		s.fail(w, r, opts, errors.New(errors.ErrCodeInvalidPath, "local data sources are disabled"))
		return
	}

	res, err := s.loader.Load(r.Context(), src)
	if err != nil {
		s.fail(w, r, opts, err)
		return
	}
	s.render(w, r, res, opts)
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	opts, err := s.options(r)
	if err != nil {
		s.fail(w, r, opts, err)
		return
	}
	body, err := stdio.ReadAll(http.MaxBytesReader(w, r.Body, s.max))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			err = errors.New(errors.ErrCodeInvalidInput, "document exceeds %d bytes", s.max)
		}
		s.fail(w, r, opts, err)
		return
	}
	res, err := source.Decode("request", body)
	if err != nil {
		s.fail(w, r, opts, err)
		return
	}
	s.render(w, r, res, opts)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, res source.Result, opts pipeline.Options) {
	result, err := s.runner.RenderResult(r.Context(), res, opts)
	if err != nil {
		s.fail(w, r, opts, err)
		return
	}
	format := opts.Formats[0]
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Cache", cacheStatus(result.CacheInfo.RenderHit))
	w.Header().Set("Cache-Control", "public, max-age=300")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// options builds render options from the route and query over the
// configured chart defaults.
func (s *Server) options(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Chart:       chi.URLParam(r, "chart"),
		Formats:     []string{chi.URLParam(r, "format")},
		View:        q.Get("view"),
		Title:       q.Get("title"),
		ID:          q.Get("id"),
		Radius:      s.chart.Radius,
		LabelOffset: s.chart.LabelOffset,
		Max:         s.chart.Max,
		Scale:       s.chart.Scale,
		Palette:     s.chart.Palette,
		Locale:      s.chart.Locale,
		Currency:    s.chart.Currency,
		Logger:      s.logger.With("request_id", RequestIDFromContext(r.Context())),
	}

	floats := []struct {
		name     string
		dst      *float64
		positive bool
	}{
		{"radius", &opts.Radius, true},
		{"label_offset", &opts.LabelOffset, false},
		{"max", &opts.Max, true},
		{"scale", &opts.Scale, true},
	}
	for _, f := range floats {
		raw := q.Get(f.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return opts, errors.InvalidConfiguration("%s must be a number, got %q", f.name, raw)
		}
		if f.positive && !(v > 0) {
			return opts, errors.InvalidConfiguration("%s must be positive, got %g", f.name, v)
		}
		*f.dst = v
	}
	if raw := q.Get("script"); raw != "" {
		script, err := strconv.ParseBool(raw)
		if err != nil {
			return opts, errors.InvalidConfiguration("script must be a boolean, got %q", raw)
		}
		opts.Script = script
	}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, err
	}
	return opts, nil
}

// =============================================================================
// Errors
// =============================================================================

// StatusFor maps an error to its HTTP status.
func StatusFor(err error) int {
	if errors.IsNotFound(err) {
		return http.StatusNotFound
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidConfiguration,
		errors.ErrCodeInvalidInput,
		errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidChart,
		errors.ErrCodeInvalidView,
		errors.ErrCodeInvalidColor,
		errors.ErrCodeInvalidPath,
		errors.ErrCodeUnsupported:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// fail writes err in the requested format: the widget failure state for
// HTML, a JSON error object otherwise.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, opts pipeline.Options, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("render failed", "request_id", RequestIDFromContext(r.Context()), "path", r.URL.Path, "error", err)
	}

	if len(opts.Formats) == 1 && opts.Formats[0] == pipeline.FormatHTML {
		body := widget.RenderFailure(err)
		if errors.Is(err, errors.ErrCodeInvalidInput) && errors.UserMessage(err) == widget.NoSourceMessage {
			body = widget.RenderMessage(widget.NoSourceMessage)
		}
		w.Header().Set("Content-Type", contentTypes[pipeline.FormatHTML])
		w.WriteHeader(status)
		_, _ = w.Write(body)
		return
	}

	code, msg := errors.GetCode(err), errors.UserMessage(err)
	if status == http.StatusInternalServerError {
		code, msg = errors.ErrCodeInternal, "internal error"
	}
	writeJSON(w, status, errorResponse{
		Error:     msg,
		Code:      string(code),
		RequestID: RequestIDFromContext(r.Context()),
	})
}

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
