package safety

import (
	"container/list"
	"strings"
	"sync"
	"time"
)

// pairKey builds the cache key for an unordered medication pair. Names are
// sorted so (a,b) and (b,a) share one entry.
func pairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "|" + b
}

// interactionCache is a process-local bounded cache of merged pair findings
// with TTL expiry and least-recently-used eviction. It is the only mutable
// shared state in the safety service; a single mutex guards both the map and
// the recency list, which is sufficient since entries are small and lookups
// dominate. Negative findings (no known interaction) are cached too, so
// clean pairs do not re-query the provider on every assessment.
type interactionCache struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	entries map[string]*list.Element
	order   *list.List // front = most recently used
}

type cacheEntry struct {
	key       string
	finding   *pairFinding
	expiresAt time.Time
}

func newInteractionCache(maxSize int, ttl time.Duration) *interactionCache {
	if maxSize <= 0 {
		maxSize = 1
	}
	return &interactionCache{
		maxSize: maxSize,
		ttl:     ttl,
		entries: make(map[string]*list.Element),
		order:   list.New(),
	}
}

// get returns the cached finding for the pair. The second return value
// distinguishes a cached negative finding from a miss. Expired entries are
// removed on access.
func (c *interactionCache) get(a, b string, now time.Time) (*pairFinding, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[pairKey(a, b)]
	if !ok {
		return nil, false
	}

	entry := elem.Value.(*cacheEntry)
	if now.After(entry.expiresAt) {
		c.order.Remove(elem)
		delete(c.entries, entry.key)
		return nil, false
	}

	c.order.MoveToFront(elem)
	return entry.finding, true
}

// put stores a merged pair finding, evicting the least-recently-used entry
// when the cache is full. Size violations are handled by eviction, never by
// failing the caller.
func (c *interactionCache) put(a, b string, finding *pairFinding, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := pairKey(a, b)
	if elem, ok := c.entries[key]; ok {
		entry := elem.Value.(*cacheEntry)
		entry.finding = finding
		entry.expiresAt = now.Add(c.ttl)
		c.order.MoveToFront(elem)
		return
	}

	for len(c.entries) >= c.maxSize {
		oldest := c.order.Back()
		if oldest == nil {
			break
		}
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
	}

	elem := c.order.PushFront(&cacheEntry{
		key:       key,
		finding:   finding,
		expiresAt: now.Add(c.ttl),
	})
	c.entries[key] = elem
}

// clear drops every entry.
func (c *interactionCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*list.Element)
	c.order.Init()
}

// len reports the number of live entries, for tests.
func (c *interactionCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// normalizeName lowercases and trims a medication name the same way
// Medication.NormalizedName does, so ad-hoc name lists hit the same entries.
func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
