package board

import (
	"context"
	"sync"

	"github.com/seekerror/logw"
)

// CacheEntry is a snapshot of everything make/unmake needs to restore a
// position in O(1) once its hash has been seen before: piece placement and
// metadata, keyed by Zobrist hash.
type CacheEntry struct {
	Placement [NumSquares]Occupant
	Metadata  PositionMetadata
}

// PositionCache is a process-wide, concurrency-safe store mapping a
// Zobrist hash to the position it was computed from. Position.Make
// consults it before recomputing a transposition from scratch; last writer
// wins on a collision, since a cache hit is an optimization, not a source
// of truth — make/unmake always has the real Alteration trail to fall back
// on.
type PositionCache struct {
	mu      sync.RWMutex
	entries map[ZobristHash]CacheEntry
	debug   bool
}

// NewPositionCache returns an empty cache. When debug is true, Get
// re-verifies a hit by recomputing the entry's hash and returns
// ErrCacheCorrupt on mismatch, at the cost of doing real work on every hit;
// production callers should leave it false.
func NewPositionCache(debug bool) *PositionCache {
	return &PositionCache{entries: make(map[ZobristHash]CacheEntry), debug: debug}
}

// Put records (or overwrites) the entry for hash.
func (c *PositionCache) Put(hash ZobristHash, entry CacheEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[hash] = entry
}

// Get returns the cached entry for hash, if any.
func (c *PositionCache) Get(ctx context.Context, table *ZobristTable, hash ZobristHash) (CacheEntry, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[hash]
	c.mu.RUnlock()
	if !ok {
		return CacheEntry{}, false, nil
	}

	if c.debug {
		recomputed := table.Hash(entry)
		if recomputed != hash {
			logw.Errorf(ctx, "board: cache entry for %x recomputed to %x", uint64(hash), uint64(recomputed))
			return CacheEntry{}, false, ErrCacheCorrupt
		}
	}

	return entry, true, nil
}

// Len reports the number of cached entries.
func (c *PositionCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Get implements Query over a raw CacheEntry, so ZobristTable.Hash can
// re-verify an entry without reconstructing a full Position.
func (e CacheEntry) Get(sq Square) Occupant {
	return e.Placement[sq]
}

// TryMetadata implements Query.
func (e CacheEntry) TryMetadata() (PositionMetadata, bool) {
	return e.Metadata, true
}
