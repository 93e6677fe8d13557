// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

package cache

import (
	"sync"
	"time"
)

const (
	defaultCapacity = 10000
	defaultTTL      = 5 * time.Minute
)

// LRUEntry is a node in the recency list.
type LRUEntry struct {
	key       string
	seenAt    time.Time
	prev      *LRUEntry
	next      *LRUEntry
	expiresAt time.Time
}

// LRUCache is a thread-safe least recently used set of keys with TTL.
// Get, Add, Remove and eviction are O(1): a map indexes the nodes of a
// doubly-linked list ordered by recency.
//
// Expiry is lazy. Expired keys are dropped when touched, by CleanupExpired,
// or by eviction when the cache is full.
type LRUCache struct {
	mu sync.Mutex

	capacity int
	ttl      time.Duration
	now      func() time.Time

	items map[string]*LRUEntry

	// head.next is the most recently used, tail.prev the least.
	head *LRUEntry
	tail *LRUEntry

	hits   int64
	misses int64
}

// NewLRUCache creates a cache holding at most capacity keys for ttl each.
// Non-positive values select 10000 keys and five minutes.
func NewLRUCache(capacity int, ttl time.Duration) *LRUCache {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}

	c := &LRUCache{
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
		items:    make(map[string]*LRUEntry, min(capacity, 1024)),
		head:     &LRUEntry{},
		tail:     &LRUEntry{},
	}
	c.head.next = c.tail
	c.tail.prev = c.head
	return c
}

// WithClock replaces the time source. Intended for tests.
func (c *LRUCache) WithClock(now func() time.Time) *LRUCache {
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
	return c
}

// Get reports when key was last added, if it is present and not expired.
// A hit marks the key as most recently used.
func (c *LRUCache) Get(key string) (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.items[key]
	if !ok {
		c.misses++
		return time.Time{}, false
	}
	if c.now().After(entry.expiresAt) {
		c.removeEntry(entry)
		c.misses++
		return time.Time{}, false
	}
	c.moveToFront(entry)
	c.hits++
	return entry.seenAt, true
}

// Add inserts key or refreshes its TTL, evicting the least recently used
// key when the cache is full.
func (c *LRUCache) Add(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.insert(key, c.now())
}

// Remove deletes key and reports whether it was present.
func (c *LRUCache) Remove(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.items[key]; ok {
		c.removeEntry(entry)
		return true
	}
	return false
}

// IsDuplicate reports whether key was seen within the TTL. Unseen or
// expired keys are recorded and reported as new, so only the first of
// several calls inside one TTL window returns false. The TTL of a
// duplicate is not extended.
func (c *LRUCache) IsDuplicate(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if entry, ok := c.items[key]; ok {
		if !now.After(entry.expiresAt) {
			c.moveToFront(entry)
			c.hits++
			return true
		}
		c.removeEntry(entry)
	}
	c.insert(key, now)
	c.misses++
	return false
}

// Len returns the number of keys held, including expired ones not yet dropped.
func (c *LRUCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// CleanupExpired drops every expired key and returns how many were removed.
func (c *LRUCache) CleanupExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for entry := c.tail.prev; entry != c.head; {
		prev := entry.prev
		if now.After(entry.expiresAt) {
			c.removeEntry(entry)
			removed++
		}
		entry = prev
	}
	return removed
}

// Stats returns hit and miss counts and the current size.
func (c *LRUCache) Stats() (hits, misses int64, size int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses, len(c.items)
}

// The helpers below must be called with c.mu held.

func (c *LRUCache) insert(key string, now time.Time) {
	if entry, ok := c.items[key]; ok {
		entry.seenAt = now
		entry.expiresAt = now.Add(c.ttl)
		c.moveToFront(entry)
		return
	}

	entry := &LRUEntry{key: key, seenAt: now, expiresAt: now.Add(c.ttl)}
	c.addToFront(entry)
	c.items[key] = entry

	for len(c.items) > c.capacity {
		c.evictOldest()
	}
}

func (c *LRUCache) addToFront(entry *LRUEntry) {
	entry.prev = c.head
	entry.next = c.head.next
	c.head.next.prev = entry
	c.head.next = entry
}

func (c *LRUCache) moveToFront(entry *LRUEntry) {
	entry.prev.next = entry.next
	entry.next.prev = entry.prev
	c.addToFront(entry)
}

func (c *LRUCache) removeEntry(entry *LRUEntry) {
	entry.prev.next = entry.next
	entry.next.prev = entry.prev
	delete(c.items, entry.key)
}

func (c *LRUCache) evictOldest() {
	oldest := c.tail.prev
	if oldest == c.head {
		return
	}
	c.removeEntry(oldest)
}
