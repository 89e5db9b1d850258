package daemon

import (
	"encoding/json"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/restore/internal/core/domain"
)

// nominationEntry is the last nomination loaded from a file.
type nominationEntry struct {
	project string
	mtime   int64
	digest  uint64
}

// NominationCache remembers the nomination files the daemon has loaded, so editors
// that write a file several times per save trigger a single restore.
//
// Freshness trusts file modification times. The daemon and the build host share
// the same file system view.
type NominationCache struct {
	mu      sync.RWMutex
	entries map[string]nominationEntry // path -> entry
}

// NewNominationCache creates an empty NominationCache.
func NewNominationCache() *NominationCache {
	return &NominationCache{
		entries: make(map[string]nominationEntry),
	}
}

// Fresh reports whether path was loaded with the given modification time.
func (c *NominationCache) Fresh(path string, mtime int64) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[path]
	return ok && entry.mtime == mtime
}

// Store records the nomination loaded from path and reports whether its content
// differs from the previous load.
func (c *NominationCache) Store(path string, mtime int64, n domain.NominationData) bool {
	digest := nominationDigest(n)

	c.mu.Lock()
	defer c.mu.Unlock()

	prev, ok := c.entries[path]
	c.entries[path] = nominationEntry{project: n.ProjectUniqueName, mtime: mtime, digest: digest}
	return !ok || prev.digest != digest || prev.project != n.ProjectUniqueName
}

// Project returns the project last nominated by path.
func (c *NominationCache) Project(path string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[path]
	return entry.project, ok
}

// Forget drops path and returns the project it nominated.
func (c *NominationCache) Forget(path string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[path]
	if !ok {
		return "", false
	}
	delete(c.entries, path)
	return entry.project, true
}

// Len returns the number of cached nomination files.
func (c *NominationCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func nominationDigest(n domain.NominationData) uint64 {
	data, err := json.Marshal(n)
	if err != nil {
		// Nominations are plain data; Marshal cannot fail for them.
		panic(err)
	}
	return xxhash.Sum64(data)
}
