package cache

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/voxmetric/call-timeline/internal/core/event"
	"github.com/voxmetric/call-timeline/internal/core/layout"
	"github.com/voxmetric/call-timeline/internal/util"
)

// LayoutEntry holds one memoized packing result with access tracking.
// LastAccessed is stamped atomically: cache hits only hold the read lock.
type LayoutEntry struct {
	Result       layout.Result
	LastAccessed atomic.Int64
}

// LayoutCache memoizes row-packing results keyed by a fingerprint of their
// inputs. Derivations stay pure; the cache only short-circuits identical
// recomputations.
type LayoutCache struct {
	mu      sync.RWMutex
	entries map[string]*LayoutEntry
}

// NewLayoutCache creates an empty cache.
func NewLayoutCache() *LayoutCache {
	return &LayoutCache{
		entries: make(map[string]*LayoutEntry),
	}
}

// Pack returns the packing result for the given inputs, computing and
// storing it on the first request.
func (c *LayoutCache) Pack(events []event.TemporalEvent, width, duration float64, profile layout.Profile) layout.Result {
	key := fingerprintInputs(events, width, duration, profile)

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		entry.LastAccessed.Store(time.Now().Unix())
		return entry.Result
	}

	result := layout.Pack(events, width, duration, profile)

	fresh := &LayoutEntry{Result: result}
	fresh.LastAccessed.Store(time.Now().Unix())

	c.mu.Lock()
	c.entries[key] = fresh
	c.mu.Unlock()

	return result
}

// Clear drops every memoized result.
func (c *LayoutCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*LayoutEntry)
}

// Len returns the number of memoized results.
func (c *LayoutCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func fingerprintInputs(events []event.TemporalEvent, width, duration float64, profile layout.Profile) string {
	parts := make([]interface{}, 0, len(events)*3+5)
	parts = append(parts, width, duration, profile.MaxRows, profile.MinGap, profile.PointWidth)
	for _, e := range events {
		end := "-"
		if e.EndTime != nil {
			end = util.Fingerprint(*e.EndTime)
		}
		parts = append(parts, e.Id, e.StartTime, end)
	}
	return util.Fingerprint(parts...)
}
