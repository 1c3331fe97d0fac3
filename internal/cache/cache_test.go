package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZhenWang-Jen/political-contribution-monitor/internal/model"
)

// newTestCache returns a cache whose clock the test controls.
func newTestCache(t *testing.T, ttl time.Duration) (*Cache, *time.Time) {
	t.Helper()
	c := New(ttl)
	t.Cleanup(c.Close)

	clock := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	c.mu.Lock()
	c.now = func() time.Time { return clock }
	c.mu.Unlock()
	return c, &clock
}

func sample() []*model.Record {
	return []*model.Record{{Name: "John Smith", Amount: 100}}
}

func TestPutGet(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)

	id := NewID()
	c.Put(id, sample())

	got, ok := c.Get(id)
	require.True(t, ok)
	assert.Equal(t, "John Smith", got[0].Name)
}

func TestGetUnknownID(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)

	_, ok := c.Get("no-such-id")
	assert.False(t, ok)
}

func TestExpiry(t *testing.T) {
	c, clock := newTestCache(t, 10*time.Minute)

	id := NewID()
	c.Put(id, sample())

	// One nanosecond shy of the deadline the entry is still live.
	*clock = clock.Add(10*time.Minute - time.Nanosecond)
	_, ok := c.Get(id)
	assert.True(t, ok)

	// At the deadline it is gone, exactly as if it never existed.
	*clock = clock.Add(time.Nanosecond)
	_, ok = c.Get(id)
	assert.False(t, ok)
	assert.Zero(t, c.Len())

	// A second lookup stays a miss.
	_, ok = c.Get(id)
	assert.False(t, ok)
}

func TestDelete(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)

	id := NewID()
	c.Put(id, sample())
	c.Delete(id)

	_, ok := c.Get(id)
	assert.False(t, ok)

	// Deleting a missing id is a no-op.
	c.Delete(id)
}

func TestLenCountsOnlyLiveEntries(t *testing.T) {
	c, clock := newTestCache(t, time.Minute)

	c.Put(NewID(), sample())
	*clock = clock.Add(30 * time.Second)
	c.Put(NewID(), sample())
	assert.Equal(t, 2, c.Len())

	*clock = clock.Add(45 * time.Second)
	assert.Equal(t, 1, c.Len(), "the first entry has aged out")
}

func TestEntriesExpireIndependently(t *testing.T) {
	c, clock := newTestCache(t, time.Minute)

	first := NewID()
	c.Put(first, sample())
	*clock = clock.Add(40 * time.Second)
	second := NewID()
	c.Put(second, sample())

	*clock = clock.Add(30 * time.Second)
	_, ok := c.Get(first)
	assert.False(t, ok)
	_, ok = c.Get(second)
	assert.True(t, ok)
}

func TestCloseIsIdempotent(t *testing.T) {
	c := New(time.Minute)
	c.Close()
	c.Close()
}

func TestZeroTTLFallsBackToDefault(t *testing.T) {
	c := New(0)
	defer c.Close()
	assert.Equal(t, DefaultTTL, c.ttl)
}
