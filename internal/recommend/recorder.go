// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

package recommend

import (
	"sort"
	"sync"

	"github.com/rs/zerolog"
)

// Severity classifies recorded events.
type Severity int

// Severities.
const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarn
)

// String returns the lower-case severity name.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarn:
		return "warn"
	default:
		return "unknown"
	}
}

// Event is a structured occurrence inside an engine stage.
type Event struct {
	Name     string
	Severity Severity
	Fields   map[string]any
}

// Recorder receives engine events. Engine stages perform no I/O of their own;
// everything observable goes through this hook.
type Recorder interface {
	Record(Event)
}

// RecorderFunc adapts a function to the Recorder interface.
type RecorderFunc func(Event)

// Record calls f(ev).
//
//nolint:gocritic // hugeParam: Event is small and passed by value per interface
func (f RecorderFunc) Record(ev Event) {
	f(ev)
}

// NopRecorder discards every event.
type NopRecorder struct{}

// Record implements Recorder.
//
//nolint:gocritic // hugeParam: see RecorderFunc.Record
func (NopRecorder) Record(Event) {}

// LogRecorder writes events to a zerolog logger.
type LogRecorder struct {
	logger zerolog.Logger
}

// NewLogRecorder creates a Recorder backed by zerolog.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewLogRecorder(logger zerolog.Logger) *LogRecorder {
	return &LogRecorder{logger: logger}
}

// Record implements Recorder.
//
//nolint:gocritic // hugeParam: see RecorderFunc.Record
func (r *LogRecorder) Record(ev Event) {
	var e *zerolog.Event
	switch ev.Severity {
	case SeverityDebug:
		e = r.logger.Debug()
	case SeverityWarn:
		e = r.logger.Warn()
	default:
		e = r.logger.Info()
	}
	// Sorted keys keep log lines stable across runs.
	keys := make([]string, 0, len(ev.Fields))
	for k := range ev.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		e = e.Interface(k, ev.Fields[k])
	}
	e.Msg(ev.Name)
}

// MemoryRecorder keeps events in memory. Used in tests and the CLI.
type MemoryRecorder struct {
	mu     sync.Mutex
	events []Event
}

// Record implements Recorder.
//
//nolint:gocritic // hugeParam: see RecorderFunc.Record
func (m *MemoryRecorder) Record(ev Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, ev)
}

// Events returns a copy of the recorded events.
func (m *MemoryRecorder) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out
}

// Named returns the recorded events with the given name.
func (m *MemoryRecorder) Named(name string) []Event {
	var out []Event
	for _, ev := range m.Events() {
		if ev.Name == name {
			out = append(out, ev)
		}
	}
	return out
}

// Multi fans an event out to several recorders. Nil entries are skipped.
func Multi(recorders ...Recorder) Recorder {
	return RecorderFunc(func(ev Event) {
		for _, r := range recorders {
			if r != nil {
				r.Record(ev)
			}
		}
	})
}

// OrNop returns r, or a NopRecorder when r is nil.
func OrNop(r Recorder) Recorder {
	if r == nil {
		return NopRecorder{}
	}
	return r
}
