// Package cache holds each bulk run's flattened result set long enough
// for an export to pick it up.
package cache

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ZhenWang-Jen/political-contribution-monitor/internal/model"
)

// DefaultTTL is how long a result set stays exportable after a bulk run.
const DefaultTTL = 10 * time.Minute

// sweepInterval is how often the background sweeper clears expired
// entries that nobody looked up.
const sweepInterval = time.Minute

type entry struct {
	records   []*model.Record
	expiresAt time.Time
}

// Cache maps opaque run identifiers to flattened record sets. Entries are
// write-once, read-many, and vanish unconditionally once their TTL
// elapses: a post-expiry Get is indistinguishable from a Get on an id
// that never existed. Capacity is unbounded; the TTL bounds occupancy
// under steady load, so there is no eviction policy.
//
// Expiry is enforced twice — lazily on Get, and by a single background
// sweeper goroutine. One timer per entry is deliberately avoided.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

// New creates a cache and starts its sweeper. Call Close to stop it.
func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &Cache{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	go c.sweep()
	return c
}

// NewID returns a fresh run identifier. A v4 UUID carries 122 random
// bits, so collisions over a process lifetime are negligible.
func NewID() string { return uuid.NewString() }

// Put stores records under id. The TTL clock starts now.
func (c *Cache) Put(id string, records []*model.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[id] = entry{records: records, expiresAt: c.now().Add(c.ttl)}
}

// Get returns the records stored under id, or false on a miss. Expired
// entries are deleted on sight, so correctness never depends on the
// sweeper having run.
func (c *Cache) Get(id string) ([]*model.Record, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[id]
	if !ok {
		return nil, false
	}
	if !c.now().Before(e.expiresAt) {
		delete(c.entries, id)
		return nil, false
	}
	return e.records, true
}

// Delete removes id if present.
func (c *Cache) Delete(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
}

// Len reports the number of unexpired entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	n := 0
	for _, e := range c.entries {
		if now.Before(e.expiresAt) {
			n++
		}
	}
	return n
}

// Close stops the background sweeper. Safe to call more than once.
func (c *Cache) Close() {
	c.stopOnce.Do(func() { close(c.stop) })
}

func (c *Cache) sweep() {
	t := time.NewTicker(sweepInterval)
	defer t.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-t.C:
			c.mu.Lock()
			now := c.now()
			removed := 0
			for id, e := range c.entries {
				if !now.Before(e.expiresAt) {
					delete(c.entries, id)
					removed++
				}
			}
			c.mu.Unlock()
			if removed > 0 {
				zap.L().Debug("cache: swept expired entries", zap.Int("removed", removed))
			}
		}
	}
}
