// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

package history

import (
	"context"
	"sort"
	"sync"

	"github.com/tomtom215/curator/internal/recommend"
)

// MemoryStore implements Store in process memory. Contents are lost on restart.
type MemoryStore struct {
	mu        sync.RWMutex
	sessions  map[string][]recommend.InteractionEvent
	maxEvents int
}

// NewMemoryStore creates an empty store. maxEvents limits List to the newest
// N events; zero keeps all.
func NewMemoryStore(maxEvents int) *MemoryStore {
	return &MemoryStore{
		sessions:  make(map[string][]recommend.InteractionEvent),
		maxEvents: maxEvents,
	}
}

// Append implements Store.
//
//nolint:gocritic // hugeParam: see Store
func (m *MemoryStore) Append(ctx context.Context, sessionID string, ev recommend.InteractionEvent) error {
	if err := validateSession(sessionID); err != nil {
		return err
	}
	if err := validateEvent(ev); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	events := m.sessions[sessionID]
	// Insert after every event with a timestamp <= ev's.
	i := sort.Search(len(events), func(i int) bool {
		return events[i].Timestamp.After(ev.Timestamp)
	})
	events = append(events, recommend.InteractionEvent{})
	copy(events[i+1:], events[i:])
	events[i] = ev
	m.sessions[sessionID] = events
	return nil
}

// List implements Store.
func (m *MemoryStore) List(ctx context.Context, sessionID string) ([]recommend.InteractionEvent, error) {
	if err := validateSession(sessionID); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	kept := newest(m.sessions[sessionID], m.maxEvents)
	out := make([]recommend.InteractionEvent, len(kept))
	copy(out, kept)
	return out, nil
}

// Clear implements Store.
func (m *MemoryStore) Clear(ctx context.Context, sessionID string) (int, error) {
	if err := validateSession(sessionID); err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	n := len(m.sessions[sessionID])
	delete(m.sessions, sessionID)
	return n, nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	return nil
}
