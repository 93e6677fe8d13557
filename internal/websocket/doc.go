// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

/*
Package websocket serves the live feed behind GET /api/v1/live.

Gallery dashboards connect over a websocket and receive a JSON message for
every accepted visitor interaction and every completed analysis. The feed is
one-way apart from keepalives and is best effort: slow clients are dropped
and a full broadcast queue discards messages.

Key Components:

  - Hub: tracks connected clients and fans messages out in client id order
  - Client: one connection with a read pump and a write pump
  - FeedbackRelay: a second subscriber on the interaction topic that turns
    bus messages into interaction broadcasts

Architecture:

	POST .../interactions ──► feedback bus ──┬──► history consumer
	                                         └──► FeedbackRelay ──► Hub ──► clients
	POST /analyze ──────────────────────────────────────────────────► Hub

Message Types:

	{"type":"interaction","data":{"session_id":"kiosk-3","exhibit_id":"dino-hall","kind":"liked","timestamp":"..."}}
	{"type":"analysis","data":{"profile_id":"...","recommendations":["..."],"tour_stops":["..."],"confidence":0.82,...}}
	{"type":"pong","data":null}   (reply to a client {"type":"ping"})

Analysis messages carry exhibit ids and scores only, never the visitor's
selections.

Supervision:

Hub.RunWithContext and FeedbackRelay.Serve both run under the supervisor
tree; see supervisor/services.WebSocketHubService. Join fails fast when the
hub is not running so an upgrade request never hangs.
*/
package websocket
