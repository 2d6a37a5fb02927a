package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/sharechart/pkg/cache"
	"github.com/matzehuels/sharechart/pkg/config"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirXDG(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(xdg, appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirFromConfig(t *testing.T) {
	c, _ := newTestCLI(t)
	c.Config.Cache.Dir = "/var/cache/charts"

	dir, err := c.cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != "/var/cache/charts" {
		t.Errorf("cacheDir() = %q, want the configured directory", dir)
	}
}

func TestNewCacheBackends(t *testing.T) {
	tests := []struct {
		name    string
		backend string
		noCache bool
		want    string
	}{
		{"default is file", "", false, "file"},
		{"explicit file", config.BackendFile, false, "file"},
		{"none", config.BackendNone, false, "null"},
		{"flag disables", config.BackendFile, true, "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCLI(t)
			c.Config.Cache.Backend = tt.backend

			cc, err := c.newCache(t.Context(), tt.noCache)
			if err != nil {
				t.Fatal(err)
			}
			defer cc.Close()

			var got string
			switch cc.(type) {
			case *cache.FileCache:
				got = "file"
			case cache.NullCache:
				got = "null"
			default:
				got = "other"
			}
			if got != tt.want {
				t.Errorf("newCache() is %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCacheCommands(t *testing.T) {
	c, out := newTestCLI(t)
	src := writeBudget(t)

	if err := execute(c, "render", src, "-f", "svg", "-o", filepath.Join(t.TempDir(), "b.svg")); err != nil {
		t.Fatalf("render: %v", err)
	}

	if err := execute(c, "cache", "path"); err != nil {
		t.Fatalf("cache path: %v", err)
	}
	dir := strings.TrimSpace(out.String())
	if !strings.HasSuffix(dir, appName) {
		t.Errorf("cache path = %q", dir)
	}
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) == 0 {
		t.Fatalf("expected cached artifacts in %s (err %v)", dir, err)
	}

	if err := execute(c, "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	if n, err := fc.Clear(t.Context()); err != nil || n != 0 {
		t.Errorf("after clear: %d entries left (err %v)", n, err)
	}
}
