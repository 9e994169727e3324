package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCacheDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		name     string
		xdg      string
		override string
		want     string
	}{
		{"default", "", "", filepath.Join(home, ".cache", appName)},
		{"xdg", "/tmp/custom-cache", "", filepath.Join("/tmp/custom-cache", appName)},
		{"config dir wins", "/tmp/custom-cache", "/srv/beads-cache", "/srv/beads-cache"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_CACHE_HOME", tt.xdg)

			c := &CLI{Config: DefaultConfig()}
			c.Config.Cache.Dir = tt.override

			got, err := c.cacheDir()
			if err != nil {
				t.Fatalf("cacheDir() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("cacheDir() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewCacheBackends(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	tests := []struct {
		name    string
		backend string
		noCache bool
		want    string
	}{
		{"file", backendFile, false, "*cache.FileCache"},
		{"none", backendNone, false, "*cache.NullCache"},
		{"no-cache flag", backendFile, true, "*cache.NullCache"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &CLI{Config: DefaultConfig(), Logger: newLogger(os.Stderr, LogInfo)}
			c.Config.Cache.Backend = tt.backend

			store, err := c.newCache(t.Context(), tt.noCache)
			if err != nil {
				t.Fatalf("newCache() error: %v", err)
			}
			defer store.Close()
			if got := typeName(store); got != tt.want {
				t.Errorf("newCache() = %s, want %s", got, tt.want)
			}
		})
	}
}
