// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

// Package services adapts blocking components to suture.Service.
//
// HTTPServerService turns ListenAndServe/Shutdown into a context-driven Serve.
// HistoryGCService runs badger value log GC on a ticker. WebSocketHubService
// runs the live feed hub. Each depends on a small interface (HTTPServer,
// GCRunner, ContextHub) so tests can use fakes.
package services
