package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	cfg, err := Parse(`
[chart]
radius = 200
label_offset = 40
max = 50
palette = ["#111", "#222"]
locale = "fr-CA"

[cache]
backend = "redis"
redis_url = "redis://localhost:6379/0"
ttl = "6h"

[server]
addr = ":9000"
allow_remote = true
read_timeout = "5s"
`)
	if err != nil {
		t.Fatal(err)
	}
	want := Config{
		Chart:  Chart{Radius: 200, LabelOffset: 40, Max: 50, Palette: []string{"#111", "#222"}, Locale: "fr-CA"},
		Cache:  Cache{Backend: BackendRedis, RedisURL: "redis://localhost:6379/0", TTL: Duration{6 * time.Hour}},
		Server: Server{Addr: ":9000", AllowRemote: true, ReadTimeout: Duration{5 * time.Second}},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"syntax":       "[chart\nradius = 1",
		"unknown key":  "[chart]\nradiuss = 1",
		"bad duration": "[cache]\nttl = \"soon\"",
		"bad backend":  "[cache]\nbackend = \"memcached\"",
		"redis no url": "[cache]\nbackend = \"redis\"",
		"wrong type":   "[chart]\nradius = \"big\"",
	}
	for name, text := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse(text); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(filepath.Join(dir, "missing.toml"))
	if err != nil {
		t.Fatalf("missing file: %v", err)
	}
	if diff := cmp.Diff(Config{}, cfg); diff != "" {
		t.Errorf("missing file should give zero config:\n%s", diff)
	}

	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[server]\ndata_dir = \"charts\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.DataDir != "charts" {
		t.Errorf("DataDir = %q", cfg.Server.DataDir)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	in := Config{
		Chart: Chart{Radius: 150, Palette: []string{"red"}},
		Cache: Cache{Backend: BackendFile, TTL: Duration{90 * time.Minute}},
	}
	text, err := Encode(in)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(text, `ttl = "1h30m0s"`) {
		t.Errorf("encoded duration:\n%s", text)
	}
	out, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse(Encode()): %v\n%s", err, text)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultPath(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG lookup is linux-specific")
	}
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := DefaultPath(); got != "/tmp/xdg/sharechart/config.toml" {
		t.Errorf("DefaultPath() = %q", got)
	}
}
