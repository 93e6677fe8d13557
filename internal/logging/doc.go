// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

// Package logging provides the zerolog-based structured logging used across Curator.
//
// # Overview
//
// The package provides:
//   - A global zerolog logger configured once from main via Init
//   - JSON output for production, console output for development
//   - Request and session IDs carried in context.Context (Ctx)
//   - A slog.Handler bridge for sutureslog
//   - A watermill.LoggerAdapter for the feedback bus
//
// Engine packages never import this package; they report through
// recommend.Recorder, and recommend.NewLogRecorder bridges to zerolog.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logging.Info().Int("exhibits", n).Msg("catalog loaded")
//	logging.Ctx(ctx).Warn().Err(err).Msg("history unavailable, analyzing without it")
//
// # Configuration
//
// Environment Variables (read by internal/config):
//
//	LOG_LEVEL   - trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  - json, console (default: json)
//	LOG_CALLER  - true, false (default: false)
//
// # Best Practices
//
// Always terminate log chains with .Msg() or .Send(), and prefer typed
// fields over Msgf:
//
//	logging.Info().Str("session_id", id).Int("events", n).Msg("interactions stored")
//
// # Thread Safety
//
// The global logger is guarded by a RWMutex; Init and SetLogger may be
// called while other goroutines log.
package logging
