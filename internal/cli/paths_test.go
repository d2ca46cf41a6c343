package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	customCache := filepath.Join(t.TempDir(), "xdg")
	t.Setenv("XDG_CACHE_HOME", customCache)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	expected := filepath.Join(customCache, appName)
	if dir != expected {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}

func TestNewCache(t *testing.T) {
	t.Run("no cache", func(t *testing.T) {
		c, err := newCache("", true)
		if err != nil {
			t.Fatal(err)
		}
		if _, ok := c.(interface{ Dir() string }); ok {
			t.Error("newCache(noCache) returned a file cache")
		}
	})

	t.Run("override dir", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "cache")
		c, err := newCache(dir, false)
		if err != nil {
			t.Fatal(err)
		}
		fc, ok := c.(interface{ Dir() string })
		if !ok || fc.Dir() != dir {
			t.Errorf("newCache(%q) = %T", dir, c)
		}
	})
}
