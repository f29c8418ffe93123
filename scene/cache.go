// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Loader opens scene databases by path.
type Loader interface {
	Load(path string) (Database, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(path string) (Database, error)

// Load calls f(path).
func (f LoaderFunc) Load(path string) (Database, error) {
	return f(path)
}

// FileLoader loads TOML drawing files from disk.
type FileLoader struct{}

// Load implements Loader.
func (FileLoader) Load(path string) (Database, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("scene: open: %w", err)
	}
	defer f.Close()

	d, err := Decode(f)
	if err != nil {
		return nil, err
	}
	if d.Name == "" {
		d.Name = filepath.Base(path)
	}
	return d, nil
}

// DefaultCacheSize is the number of drawings a CachingLoader keeps.
const DefaultCacheSize = 16

type cacheKey struct {
	path    string
	modTime time.Time
	size    int64
}

// CachingLoader keeps recently loaded databases in an LRU cache.
//
// Entries are keyed by absolute path, modification time and size, so a
// rewritten file is loaded again. CachingLoader is safe for concurrent use.
type CachingLoader struct {
	next  Loader
	mu    sync.Mutex
	cache *lru.Cache[cacheKey, Database]

	hits   int
	misses int
}

// NewCachingLoader wraps next with a cache of the given size.
// A non-positive size selects DefaultCacheSize.
func NewCachingLoader(next Loader, size int) (*CachingLoader, error) {
	if next == nil {
		next = FileLoader{}
	}
	if size <= 0 {
		size = DefaultCacheSize
	}
	c, err := lru.New[cacheKey, Database](size)
	if err != nil {
		return nil, fmt.Errorf("scene: cache: %w", err)
	}
	return &CachingLoader{next: next, cache: c}, nil
}

// Load implements Loader.
func (c *CachingLoader) Load(path string) (Database, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("scene: resolve path: %w", err)
	}
	fi, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("scene: stat: %w", err)
	}
	key := cacheKey{path: abs, modTime: fi.ModTime(), size: fi.Size()}

	c.mu.Lock()
	defer c.mu.Unlock()

	if db, ok := c.cache.Get(key); ok {
		c.hits++
		return db, nil
	}
	c.misses++
	db, err := c.next.Load(abs)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, db)
	return db, nil
}

// Len returns the number of cached databases.
func (c *CachingLoader) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Len()
}

// Stats returns cache hit and miss counts.
func (c *CachingLoader) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// Purge drops every cached database.
func (c *CachingLoader) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache.Purge()
}
