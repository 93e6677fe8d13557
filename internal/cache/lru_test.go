// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

package cache

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func TestLRUCache_BasicOperations(t *testing.T) {
	clock := newFakeClock()
	c := NewLRUCache(3, time.Minute).WithClock(clock.Now)

	c.Add("a")
	c.Add("b")
	c.Add("c")

	for _, key := range []string{"a", "b", "c"} {
		seen, ok := c.Get(key)
		if !ok {
			t.Errorf("expected to find %q", key)
		}
		if !seen.Equal(clock.Now()) {
			t.Errorf("%q seen at %v, want %v", key, seen, clock.Now())
		}
	}
	if c.Len() != 3 {
		t.Errorf("Len = %d, want 3", c.Len())
	}

	if !c.Remove("b") {
		t.Error("Remove(b) = false")
	}
	if c.Remove("b") {
		t.Error("second Remove(b) = true")
	}
	if _, ok := c.Get("b"); ok {
		t.Error("b still present after Remove")
	}
}

func TestLRUCache_Eviction(t *testing.T) {
	c := NewLRUCache(3, time.Minute)

	c.Add("a")
	c.Add("b")
	c.Add("c")
	c.Get("a") // b becomes least recently used
	c.Add("d")

	if _, ok := c.Get("b"); ok {
		t.Error("expected b to be evicted")
	}
	for _, key := range []string{"a", "c", "d"} {
		if _, ok := c.Get(key); !ok {
			t.Errorf("expected %q to be present", key)
		}
	}
	if c.Len() != 3 {
		t.Errorf("Len = %d, want 3", c.Len())
	}
}

func TestLRUCache_TTLExpiration(t *testing.T) {
	clock := newFakeClock()
	c := NewLRUCache(10, time.Second).WithClock(clock.Now)

	c.Add("a")
	clock.Advance(time.Second)
	if _, ok := c.Get("a"); !ok {
		t.Fatal("a expired at exactly its TTL")
	}

	clock.Advance(time.Millisecond)
	if _, ok := c.Get("a"); ok {
		t.Error("a should have expired")
	}
	if c.Len() != 0 {
		t.Errorf("expired key not dropped on access, Len = %d", c.Len())
	}
}

func TestLRUCache_IsDuplicate(t *testing.T) {
	clock := newFakeClock()
	c := NewLRUCache(10, 2*time.Second).WithClock(clock.Now)

	steps := []struct {
		advance time.Duration
		key     string
		want    bool
	}{
		{0, "s1|dino-hall|liked", false},
		{500 * time.Millisecond, "s1|dino-hall|liked", true},
		{0, "s1|dino-hall|viewed", false},
		{0, "s2|dino-hall|liked", false},
		// duplicates do not extend the window opened by the first call
		{1600 * time.Millisecond, "s1|dino-hall|liked", false},
		{100 * time.Millisecond, "s1|dino-hall|liked", true},
	}
	for i, s := range steps {
		clock.Advance(s.advance)
		if got := c.IsDuplicate(s.key); got != s.want {
			t.Errorf("step %d: IsDuplicate(%q) = %v, want %v", i, s.key, got, s.want)
		}
	}

	hits, misses, size := c.Stats()
	if hits != 2 || misses != 4 || size != 3 {
		t.Errorf("Stats = (%d, %d, %d), want (2, 4, 3)", hits, misses, size)
	}
}

func TestLRUCache_CleanupExpired(t *testing.T) {
	clock := newFakeClock()
	c := NewLRUCache(10, time.Minute).WithClock(clock.Now)

	c.Add("old-1")
	c.Add("old-2")
	clock.Advance(45 * time.Second)
	c.Add("fresh")
	clock.Advance(30 * time.Second)

	if removed := c.CleanupExpired(); removed != 2 {
		t.Errorf("CleanupExpired = %d, want 2", removed)
	}
	if _, ok := c.Get("fresh"); !ok {
		t.Error("fresh key was removed")
	}
}

func TestNewLRUCache_Defaults(t *testing.T) {
	c := NewLRUCache(0, 0)
	if c.capacity != defaultCapacity || c.ttl != defaultTTL {
		t.Errorf("defaults = (%d, %v)", c.capacity, c.ttl)
	}
}

func TestLRUCache_ConcurrentIsDuplicate(t *testing.T) {
	c := NewLRUCache(1000, time.Minute)

	var firsts atomic.Int64
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				if !c.IsDuplicate(fmt.Sprintf("key-%d", i)) {
					firsts.Add(1)
				}
			}
		}()
	}
	wg.Wait()

	if got := firsts.Load(); got != 100 {
		t.Errorf("%d keys reported as new, want exactly 100", got)
	}
}
