// Package source loads chart data documents from local files, standard
// input, or http(s) URLs.
//
// Remote documents are fetched with retries on transient failures and may
// be cached; the raw bytes are returned alongside the decoded document so
// callers can derive content-addressed cache keys:
//
//	l := source.NewLoader(source.WithCache(c, time.Hour))
//	res, err := l.Load(ctx, "https://example.org/budget.json")
package source

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	stdio "io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/matzehuels/sharechart/pkg/buildinfo"
	"github.com/matzehuels/sharechart/pkg/cache"
	"github.com/matzehuels/sharechart/pkg/errors"
	"github.com/matzehuels/sharechart/pkg/io"
	"github.com/matzehuels/sharechart/pkg/observability"
)

const (
	// Stdin names standard input as a source.
	Stdin = "-"

	DefaultTimeout  = 10 * time.Second
	DefaultMaxBytes = 8 << 20
)

// Result is a loaded data source.
type Result struct {
	Source   string
	Document io.Document
	// Raw holds the bytes the document was decoded from.
	Raw []byte
	// Cached reports that a remote document came from the cache.
	Cached bool
}

// Hash is the content hash of the raw document.
func (r Result) Hash() string { return cache.Hash(r.Raw) }

// Option configures a [Loader].
type Option func(*Loader)

// WithCache caches remote documents for ttl.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(l *Loader) { l.cache, l.ttl = c, ttl }
}

// WithKeyer sets the keyer for source cache entries.
func WithKeyer(k cache.Keyer) Option { return func(l *Loader) { l.keyer = k } }

// WithHTTPClient replaces the default client (10s timeout).
func WithHTTPClient(c *http.Client) Option { return func(l *Loader) { l.http = c } }

// WithRetry sets the retry policy for remote fetches.
func WithRetry(p cache.RetryPolicy) Option { return func(l *Loader) { l.retry = p } }

// WithRoot confines local paths to dir. Paths must then be relative and free
// of ".." segments; absolute paths and standard input are rejected.
func WithRoot(dir string) Option { return func(l *Loader) { l.root = dir } }

// WithoutRemote rejects http(s) sources.
func WithoutRemote() Option { return func(l *Loader) { l.noRemote = true } }

// WithStdin sets the reader used for the "-" source.
func WithStdin(r stdio.Reader) Option { return func(l *Loader) { l.stdin = r } }

// WithMaxBytes caps the size of a document.
func WithMaxBytes(n int64) Option { return func(l *Loader) { l.maxBytes = n } }

// Loader reads data documents. It is safe for concurrent use.
type Loader struct {
	http     *http.Client
	cache    cache.Cache
	keyer    cache.Keyer
	ttl      time.Duration
	retry    cache.RetryPolicy
	root     string
	noRemote bool
	stdin    stdio.Reader
	maxBytes int64
}

// NewLoader returns a loader with no cache and the default retry policy.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		http:     &http.Client{Timeout: DefaultTimeout},
		cache:    cache.NewNullCache(),
		keyer:    cache.NewDefaultKeyer(),
		retry:    cache.DefaultRetry,
		stdin:    os.Stdin,
		maxBytes: DefaultMaxBytes,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// IsRemote reports whether src is an http or https URL.
func IsRemote(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// Load reads and decodes src.
func (l *Loader) Load(ctx context.Context, src string) (Result, error) {
	start := time.Now()
	observability.Pipeline().OnLoadStart(ctx, src)

	res, err := l.load(ctx, src)
	observability.Pipeline().OnLoadComplete(ctx, src, len(res.Document.Entries), time.Since(start), err)
	return res, err
}

// Decode decodes an in-memory document, as posted to the server.
func Decode(name string, raw []byte) (Result, error) {
	doc, err := io.ReadJSON(bytes.NewReader(raw))
	if err != nil {
		return Result{}, err
	}
	return Result{Source: name, Document: doc, Raw: raw}, nil
}

func (l *Loader) load(ctx context.Context, src string) (Result, error) {
	var (
		raw    []byte
		cached bool
		err    error
	)
	switch {
	case src == "":
		return Result{}, errors.New(errors.ErrCodeInvalidInput, "no data source given")
	case IsRemote(src):
		raw, cached, err = l.fetch(ctx, src)
	case src == Stdin:
		if l.root != "" {
			return Result{}, errors.New(errors.ErrCodeInvalidPath, "standard input is not allowed here")
		}
		raw, err = l.readAll(l.stdin)
	default:
		raw, err = l.readFile(src)
	}
	if err != nil {
		return Result{}, err
	}
	res, err := Decode(src, raw)
	res.Cached = cached
	return res, err
}

func (l *Loader) readFile(path string) ([]byte, error) {
	if l.root != "" {
		if err := errors.ValidatePath(path); err != nil {
			return nil, err
		}
		path = filepath.Join(l.root, filepath.FromSlash(path))
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeSourceNotFound, err, "data source %s not found", filepath.Base(path))
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return l.readAll(f)
}

func (l *Loader) readAll(r stdio.Reader) ([]byte, error) {
	raw, err := stdio.ReadAll(stdio.LimitReader(r, l.maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(raw)) > l.maxBytes {
		return nil, errors.New(errors.ErrCodeInvalidInput, "data source exceeds %d bytes", l.maxBytes)
	}
	return raw, nil
}

func (l *Loader) fetch(ctx context.Context, src string) ([]byte, bool, error) {
	if l.noRemote {
		return nil, false, errors.New(errors.ErrCodeInvalidPath, "remote data sources are disabled")
	}
	u, err := url.Parse(src)
	if err != nil || u.Host == "" {
		return nil, false, errors.New(errors.ErrCodeInvalidPath, "invalid data source url %q", src)
	}

	key := l.keyer.SourceKey(src)
	if data, ok, _ := l.cache.Get(ctx, key); ok {
		observability.Cache().OnCacheHit(ctx, "source")
		return data, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "source")

	var raw []byte
	err = l.retry.Do(ctx, func() error {
		var err error
		raw, err = l.get(ctx, u)
		return err
	})
	if err != nil {
		return nil, false, classify(err)
	}
	if err := l.cache.Set(ctx, key, raw, l.ttl); err == nil {
		observability.Cache().OnCacheSet(ctx, "source", len(raw))
	}
	return raw, false, nil
}

func (l *Loader) get(ctx context.Context, u *url.URL) ([]byte, error) {
	hooks := observability.HTTP()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", buildinfo.UserAgent())

	start := time.Now()
	hooks.OnRequest(ctx, req.Method, u.Host, u.Path)
	resp, err := l.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, u.Host, u.Path, err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, cache.Retryable(fmt.Errorf("%w: %v", cache.ErrNetwork, err))
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, u.Host, u.Path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode); err != nil {
		return nil, err
	}
	return l.readAll(resp.Body)
}

// statusError keeps the status text for the user-facing message.
type statusError struct {
	code int
	kind error
}

func (e *statusError) Error() string {
	return fmt.Sprintf("HTTP %d", e.code)
}

func (e *statusError) Unwrap() error { return e.kind }

func checkStatus(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound || code == http.StatusGone:
		return &statusError{code: code, kind: cache.ErrNotFound}
	case code >= 500 || code == http.StatusTooManyRequests:
		return cache.Retryable(&statusError{code: code, kind: cache.ErrNetwork})
	default:
		return &statusError{code: code, kind: cache.ErrNetwork}
	}
}

func classify(err error) error {
	var se *statusError
	switch {
	case errors.Is(err, errors.ErrCodeInvalidInput):
		return err
	case stderrors.As(err, &se) && stderrors.Is(se, cache.ErrNotFound):
		return errors.Wrap(errors.ErrCodeSourceNotFound, err, "%s", se.Error())
	case stderrors.Is(err, context.DeadlineExceeded):
		return errors.Wrap(errors.ErrCodeTimeout, err, "request timed out")
	case stderrors.Is(err, context.Canceled):
		return err
	case stderrors.As(err, &se):
		return errors.Wrap(errors.ErrCodeNetwork, err, "%s", se.Error())
	default:
		return errors.Wrap(errors.ErrCodeNetwork, err, "%v", err)
	}
}
