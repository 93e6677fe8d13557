// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/curator/internal/config"
	"github.com/tomtom215/curator/internal/metrics"
	"github.com/tomtom215/curator/internal/recommend"
)

// BreakerStore guards a Store with a circuit breaker. While the breaker is
// open every call fails fast with ErrUnavailable.
//
// Invalid input and caller cancellation do not count as store failures.
//
// The breaker uses real time (via sony/gobreaker) for its interval and
// timeout; tests drive it with a failing fake store and a short Timeout.
type BreakerStore struct {
	next   Store
	cb     *gobreaker.CircuitBreaker[any]
	logger zerolog.Logger
}

var _ Store = (*BreakerStore)(nil)

// NewBreakerStore wraps next.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewBreakerStore(next Store, cfg config.BreakerConfig, logger zerolog.Logger) *BreakerStore {
	b := &BreakerStore{next: next, logger: logger}
	metrics.SetHistoryBreakerState(int(gobreaker.StateClosed))

	b.cb = gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        "history-store",
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, recommend.ErrInvalidInput) ||
				errors.Is(err, context.Canceled) ||
				errors.Is(err, context.DeadlineExceeded)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			b.logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("history circuit breaker state change")
			metrics.SetHistoryBreakerState(int(to))
		},
	})
	return b
}

// State returns the breaker state.
func (b *BreakerStore) State() gobreaker.State {
	return b.cb.State()
}

// StateName returns the breaker state as "closed", "half-open" or "open".
func (b *BreakerStore) StateName() string {
	return b.cb.State().String()
}

// Unwrap returns the guarded store.
func (b *BreakerStore) Unwrap() Store {
	return b.next
}

func (b *BreakerStore) execute(op string, fn func() (any, error)) (any, error) {
	start := time.Now()
	result, err := b.cb.Execute(fn)
	metrics.RecordHistoryOperation(op, time.Since(start), err)

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return result, err
}

// Append implements Store.
//
//nolint:gocritic // hugeParam: see Store
func (b *BreakerStore) Append(ctx context.Context, sessionID string, ev recommend.InteractionEvent) error {
	_, err := b.execute("append", func() (any, error) {
		return nil, b.next.Append(ctx, sessionID, ev)
	})
	return err
}

// List implements Store.
func (b *BreakerStore) List(ctx context.Context, sessionID string) ([]recommend.InteractionEvent, error) {
	result, err := b.execute("list", func() (any, error) {
		return b.next.List(ctx, sessionID)
	})
	if err != nil {
		return nil, err
	}
	events, ok := result.([]recommend.InteractionEvent)
	if !ok {
		return nil, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return events, nil
}

// Clear implements Store.
func (b *BreakerStore) Clear(ctx context.Context, sessionID string) (int, error) {
	result, err := b.execute("clear", func() (any, error) {
		return b.next.Clear(ctx, sessionID)
	})
	if err != nil {
		return 0, err
	}
	n, ok := result.(int)
	if !ok {
		return 0, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return n, nil
}

// Close closes the wrapped store. It bypasses the breaker.
func (b *BreakerStore) Close() error {
	return b.next.Close()
}
