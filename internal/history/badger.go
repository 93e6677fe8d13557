// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

package history

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/curator/internal/recommend"
)

// Key layout: interaction:<session>:<unix-nano, 20 digits>:<seq, 20 digits>.
// Zero padding makes lexical key order equal chronological order, and seq
// keeps events with equal timestamps in insertion order.
const interactionKeyPrefix = "interaction:"

// BadgerStore implements Store on BadgerDB.
type BadgerStore struct {
	db        *badger.DB
	maxEvents int
	seq       atomic.Uint64
}

// BadgerOptions configures OpenBadger.
type BadgerOptions struct {
	// Path is the data directory. Ignored when InMemory is set.
	Path string

	InMemory bool

	// MaxEventsPerSession limits List to the newest N events. Zero keeps all.
	MaxEventsPerSession int

	// Logger receives badger's own log output. Nil silences it.
	Logger *zerolog.Logger
}

// OpenBadger opens (or creates) a badger database for interaction history.
func OpenBadger(opts BadgerOptions) (*BadgerStore, error) {
	bopts := badger.DefaultOptions(opts.Path)
	if opts.InMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	}
	if opts.Logger != nil {
		bopts = bopts.WithLogger(&badgerLogger{logger: *opts.Logger})
	} else {
		bopts = bopts.WithLogger(nil)
	}

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for history: %w", err)
	}
	return NewBadgerStore(db, opts.MaxEventsPerSession), nil
}

// NewBadgerStore wraps an already open database. The store takes ownership
// and closes db on Close.
func NewBadgerStore(db *badger.DB, maxEvents int) *BadgerStore {
	return &BadgerStore{db: db, maxEvents: maxEvents}
}

func sessionPrefix(sessionID string) []byte {
	return []byte(interactionKeyPrefix + sessionID + ":")
}

func (s *BadgerStore) eventKey(sessionID string, ev *recommend.InteractionEvent) []byte {
	nanos := ev.Timestamp.UnixNano()
	if nanos < 0 {
		nanos = 0
	}
	return []byte(fmt.Sprintf("%s%s:%020d:%020d", interactionKeyPrefix, sessionID, nanos, s.seq.Add(1)))
}

// Append implements Store.
//
//nolint:gocritic // hugeParam: see Store
func (s *BadgerStore) Append(ctx context.Context, sessionID string, ev recommend.InteractionEvent) error {
	if err := validateSession(sessionID); err != nil {
		return err
	}
	if err := validateEvent(ev); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(&ev)
	if err != nil {
		return fmt.Errorf("marshal interaction: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(s.eventKey(sessionID, &ev), data); err != nil {
			return fmt.Errorf("set interaction: %w", err)
		}
		return nil
	})
}

// List implements Store. It walks the session's keys newest first and stops
// after MaxEventsPerSession, so long histories are never fully decoded.
func (s *BadgerStore) List(ctx context.Context, sessionID string) ([]recommend.InteractionEvent, error) {
	if err := validateSession(sessionID); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	events := []recommend.InteractionEvent{}
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = sessionPrefix(sessionID)
		it := txn.NewIterator(opts)
		defer it.Close()

		// 0xFF sorts after every digit, so seeking there lands on the newest key.
		seek := append(sessionPrefix(sessionID), 0xFF)
		for it.Seek(seek); it.ValidForPrefix(opts.Prefix); it.Next() {
			if s.maxEvents > 0 && len(events) >= s.maxEvents {
				break
			}
			var ev recommend.InteractionEvent
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &ev)
			}); err != nil {
				return fmt.Errorf("decode interaction %s: %w", it.Item().Key(), err)
			}
			events = append(events, ev)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list interactions: %w", err)
	}

	for i, j := 0, len(events)-1; i < j; i, j = i+1, j-1 {
		events[i], events[j] = events[j], events[i]
	}
	return events, nil
}

// Clear implements Store.
func (s *BadgerStore) Clear(ctx context.Context, sessionID string) (int, error) {
	if err := validateSession(sessionID); err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var keys [][]byte
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = sessionPrefix(sessionID)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("scan interactions: %w", err)
	}
	if len(keys) == 0 {
		return 0, nil
	}

	wb := s.db.NewWriteBatch()
	for _, k := range keys {
		if err := wb.Delete(k); err != nil {
			wb.Cancel()
			return 0, fmt.Errorf("delete interaction: %w", err)
		}
	}
	if err := wb.Flush(); err != nil {
		return 0, fmt.Errorf("flush deletes: %w", err)
	}
	return len(keys), nil
}

// RunGC runs one value log garbage collection pass. Nothing to rewrite is
// not an error, and neither is an in-memory database.
func (s *BadgerStore) RunGC(discardRatio float64) error {
	err := s.db.RunValueLogGC(discardRatio)
	if errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrGCInMemoryMode) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("value log gc: %w", err)
	}
	return nil
}

// Close implements Store.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// badgerLogger routes badger's printf-style logging into zerolog.
type badgerLogger struct {
	logger zerolog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error().Msgf(format, args...)
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn().Msgf(format, args...)
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug().Msgf(format, args...)
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Trace().Msgf(format, args...)
}
