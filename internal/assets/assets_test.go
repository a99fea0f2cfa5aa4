package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func countingLoader(calls *int) LoadFunc[string] {
	return func(path string) (string, error) {
		*calls++
		data, err := os.ReadFile(path)
		return string(data), err
	}
}

func TestCacheHit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.png")
	if err := os.WriteFile(path, []byte("one"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	var calls int
	c := NewCache(countingLoader(&calls))

	for i := 0; i < 3; i++ {
		v, err := c.Get(path)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if v != "one" {
			t.Errorf("expected 'one', got %q", v)
		}
	}
	if calls != 1 {
		t.Errorf("expected 1 load, got %d", calls)
	}
	if hits, misses := c.Stats(); hits != 2 || misses != 1 {
		t.Errorf("expected 2 hits / 1 miss, got %d / %d", hits, misses)
	}
}

func TestCacheReloadsChangedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.png")
	if err := os.WriteFile(path, []byte("one"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	var calls int
	c := NewCache(countingLoader(&calls))
	if _, err := c.Get(path); err != nil {
		t.Fatalf("get: %v", err)
	}

	if err := os.WriteFile(path, []byte("two"), 0644); err != nil {
		t.Fatalf("failed to rewrite file: %v", err)
	}
	later := time.Now().Add(time.Minute)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	v, err := c.Get(path)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if v != "two" {
		t.Errorf("expected reloaded 'two', got %q", v)
	}
	if calls != 2 {
		t.Errorf("expected 2 loads, got %d", calls)
	}
}

func TestCacheLoadError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.png")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	errBad := errors.New("bad image")
	c := NewCache(func(string) (int, error) { return 0, errBad })
	if _, err := c.Get(path); !errors.Is(err, errBad) {
		t.Errorf("expected load error, got %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("expected failed load not to be cached, got %d entries", c.Len())
	}
}

func TestCacheMissingFile(t *testing.T) {
	c := NewCache(func(string) (int, error) { return 1, nil })
	if _, err := c.Get("/nonexistent/page.png"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}

func TestCacheEvictAndClear(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.png")
	b := filepath.Join(dir, "b.png")
	for _, p := range []string{a, b} {
		if err := os.WriteFile(p, []byte(p), 0644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
	}

	var calls int
	c := NewCache(countingLoader(&calls))
	c.Get(a)
	c.Get(b)
	if c.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", c.Len())
	}

	c.Evict(a)
	if c.Len() != 1 {
		t.Errorf("expected 1 entry after evict, got %d", c.Len())
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("expected empty cache, got %d", c.Len())
	}
	if hits, misses := c.Stats(); hits != 0 || misses != 0 {
		t.Errorf("expected stats reset, got %d / %d", hits, misses)
	}
}
