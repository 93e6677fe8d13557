// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

package history

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/curator/internal/config"
	"github.com/tomtom215/curator/internal/recommend"
)

// flakyStore fails while failing is set and counts calls that reach it.
type flakyStore struct {
	*MemoryStore
	failing atomic.Bool
	calls   atomic.Int32
}

var errDisk = errors.New("disk on fire")

func newFlakyStore() *flakyStore {
	return &flakyStore{MemoryStore: NewMemoryStore(0)}
}

func (f *flakyStore) List(ctx context.Context, sessionID string) ([]recommend.InteractionEvent, error) {
	f.calls.Add(1)
	if f.failing.Load() {
		return nil, errDisk
	}
	return f.MemoryStore.List(ctx, sessionID)
}

//nolint:gocritic // hugeParam: see Store
func (f *flakyStore) Append(ctx context.Context, sessionID string, ev recommend.InteractionEvent) error {
	f.calls.Add(1)
	if f.failing.Load() {
		return errDisk
	}
	return f.MemoryStore.Append(ctx, sessionID, ev)
}

func testBreakerConfig() config.BreakerConfig {
	return config.BreakerConfig{
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          50 * time.Millisecond,
		FailureThreshold: 2,
	}
}

func TestBreakerStore_OpensAfterFailures(t *testing.T) {
	flaky := newFlakyStore()
	b := NewBreakerStore(flaky, testBreakerConfig(), zerolog.New(io.Discard))
	ctx := context.Background()

	flaky.failing.Store(true)
	for i := 0; i < 2; i++ {
		if _, err := b.List(ctx, "v"); !errors.Is(err, errDisk) {
			t.Fatalf("call %d error = %v, want errDisk", i, err)
		}
	}
	if b.State() != gobreaker.StateOpen {
		t.Fatalf("State() = %v, want open", b.State())
	}
	if got := b.StateName(); got != "open" {
		t.Errorf("StateName() = %q, want open", got)
	}

	calls := flaky.calls.Load()
	_, err := b.List(ctx, "v")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("open breaker error = %v, want ErrUnavailable", err)
	}
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("open breaker error = %v, want wrapped ErrOpenState", err)
	}
	if flaky.calls.Load() != calls {
		t.Error("open breaker let a call through to the store")
	}
}

func TestBreakerStore_RecoversAfterTimeout(t *testing.T) {
	flaky := newFlakyStore()
	b := NewBreakerStore(flaky, testBreakerConfig(), zerolog.New(io.Discard))
	ctx := context.Background()

	flaky.failing.Store(true)
	_, _ = b.List(ctx, "v")
	_, _ = b.List(ctx, "v")
	if b.State() != gobreaker.StateOpen {
		t.Fatalf("State() = %v, want open", b.State())
	}

	flaky.failing.Store(false)
	time.Sleep(80 * time.Millisecond)

	if _, err := b.List(ctx, "v"); err != nil {
		t.Fatalf("probe after timeout error = %v", err)
	}
	if b.State() != gobreaker.StateClosed {
		t.Errorf("State() = %v, want closed after successful probe", b.State())
	}
}

func TestBreakerStore_InvalidInputDoesNotTrip(t *testing.T) {
	b := NewBreakerStore(NewMemoryStore(0), testBreakerConfig(), zerolog.New(io.Discard))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		err := b.Append(ctx, "bad:session", event("a", recommend.FeedbackViewed, 0))
		if !errors.Is(err, recommend.ErrInvalidInput) {
			t.Fatalf("Append() error = %v, want ErrInvalidInput", err)
		}
	}
	if b.State() != gobreaker.StateClosed {
		t.Errorf("State() = %v, want closed", b.State())
	}
}

func TestBreakerStore_PassesThrough(t *testing.T) {
	b := NewBreakerStore(NewMemoryStore(0), testBreakerConfig(), zerolog.New(io.Discard))
	ctx := context.Background()

	if err := b.Append(ctx, "v", event("a", recommend.FeedbackLiked, 0)); err != nil {
		t.Fatal(err)
	}
	got, err := b.List(ctx, "v")
	if err != nil {
		t.Fatal(err)
	}
	assertIDs(t, got, "a")

	n, err := b.Clear(ctx, "v")
	if err != nil || n != 1 {
		t.Errorf("Clear() = %d, %v; want 1, nil", n, err)
	}
	if err := b.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestOpen(t *testing.T) {
	logger := zerolog.New(io.Discard)

	t.Run("memory", func(t *testing.T) {
		s, err := Open(config.HistoryConfig{
			Backend:             config.BackendMemory,
			MaxEventsPerSession: 10,
			Breaker:             testBreakerConfig(),
		}, logger)
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		defer s.Close()
		if _, ok := s.Unwrap().(*MemoryStore); !ok {
			t.Errorf("backend = %T, want *MemoryStore", s.Unwrap())
		}
	})

	t.Run("badger", func(t *testing.T) {
		s, err := Open(config.HistoryConfig{
			Backend:             config.BackendBadger,
			Path:                t.TempDir(),
			MaxEventsPerSession: 10,
			Breaker:             testBreakerConfig(),
		}, logger)
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		defer s.Close()
		if _, ok := s.Unwrap().(*BadgerStore); !ok {
			t.Errorf("backend = %T, want *BadgerStore", s.Unwrap())
		}
	})

	t.Run("unknown", func(t *testing.T) {
		if _, err := Open(config.HistoryConfig{Backend: "redis"}, logger); err == nil {
			t.Error("Open() with unknown backend should fail")
		}
	})
}
