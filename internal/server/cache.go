package server

import (
	"os"
	"sync"
	"time"

	"github.com/mj1618/gergui/internal/layout"
)

// cacheEntry holds a parsed layout file and when it was last checked.
type cacheEntry struct {
	controls layout.ControlSet
	modTime  time.Time
	checked  time.Time
}

// ScreenCache caches parsed layout files by path. Within the TTL an entry is
// returned as-is; after it the file's mtime is checked and the file is only
// re-parsed when it changed.
type ScreenCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewScreenCache creates a new cache. A ttl of 0 disables caching.
func NewScreenCache(ttl time.Duration) *ScreenCache {
	return &ScreenCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Load returns the parsed control set for path.
func (c *ScreenCache) Load(path string) (layout.ControlSet, error) {
	if c.ttl == 0 {
		return layout.ParseFile(path)
	}

	now := c.now()
	c.mu.Lock()
	entry, ok := c.entries[path]
	c.mu.Unlock()
	if ok && now.Sub(entry.checked) < c.ttl {
		return entry.controls, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		c.Invalidate(path)
		return nil, err
	}
	if ok && info.ModTime().Equal(entry.modTime) {
		entry.checked = now
		c.mu.Lock()
		c.entries[path] = entry
		c.mu.Unlock()
		return entry.controls, nil
	}

	controls, err := layout.ParseFile(path)
	if err != nil {
		c.Invalidate(path)
		return nil, err
	}

	c.mu.Lock()
	c.entries[path] = cacheEntry{controls: controls, modTime: info.ModTime(), checked: now}
	c.mu.Unlock()
	return controls, nil
}

// Invalidate drops the entry for path.
func (c *ScreenCache) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, path)
}

// InvalidateAll clears the entire cache.
func (c *ScreenCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}

// Len returns the number of cached files.
func (c *ScreenCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
