// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	ws "github.com/tomtom215/curator/internal/websocket"
)

const kioskOrigin = "https://kiosk.example.org"

// newLiveServer serves the router over a real listener with a running hub.
func newLiveServer(t *testing.T) (*httptest.Server, *ws.Hub) {
	t.Helper()
	env := newTestEnv(t, true)
	hub := ws.NewHub()
	env.handler.hub = hub
	env.handler.allowedOrigins = []string{kioskOrigin}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- hub.RunWithContext(ctx) }()

	server := httptest.NewServer(env.router)
	t.Cleanup(func() {
		server.Close()
		cancel()
		<-done
	})
	return server, hub
}

func dialLive(server *httptest.Server, origin string) (*websocket.Conn, *http.Response, error) {
	header := http.Header{}
	if origin != "" {
		header.Set("Origin", origin)
	}
	return websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http")+"/api/v1/live", header)
}

func TestLive_Disabled(t *testing.T) {
	env := newTestEnv(t, true)
	rec, resp := env.do(t, http.MethodGet, "/api/v1/live", "")
	wantError(t, rec, resp, http.StatusServiceUnavailable, ErrCodeUnavailable)
}

func TestLive_StreamsAnalyses(t *testing.T) {
	server, hub := newLiveServer(t)

	conn, resp, err := dialLive(server, kioskOrigin)
	if resp != nil && resp.Body != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.GetClientCount() != 1 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	body := `{"selections":{"age_group":"adults","group_type":"individual","time_slot":"morning","interests":["space"]},` +
		`"session_id":"kiosk-3","options":{"seed":7,"top_k":3}}`
	post, err := http.Post(server.URL+"/api/v1/analyze", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	post.Body.Close()
	if post.StatusCode != http.StatusOK {
		t.Fatalf("analyze status = %d", post.StatusCode)
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var frame struct {
		Type string          `json:"type"`
		Data ws.AnalysisData `json:"data"`
	}
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("read: %v", err)
	}
	if frame.Type != ws.MessageTypeAnalysis {
		t.Fatalf("type = %q, want analysis", frame.Type)
	}
	if frame.Data.SessionID != "kiosk-3" || frame.Data.ProfileID == "" || len(frame.Data.Recommendations) == 0 {
		t.Errorf("data = %+v", frame.Data)
	}
	if frame.Data.HistorySource != HistoryStored {
		t.Errorf("history_source = %q, want %q", frame.Data.HistorySource, HistoryStored)
	}
}

func TestLive_RejectsForeignOrigins(t *testing.T) {
	server, _ := newLiveServer(t)

	for _, origin := range []string{"", "https://evil.example.com"} {
		conn, resp, err := dialLive(server, origin)
		if resp != nil && resp.Body != nil {
			resp.Body.Close()
		}
		if err == nil {
			conn.Close()
			t.Errorf("origin %q: dial succeeded", origin)
			continue
		}
		if resp == nil || resp.StatusCode != http.StatusForbidden {
			t.Errorf("origin %q: response = %v, want 403", origin, resp)
		}
	}
}

func TestCheckWebSocketOrigin(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		origin  string
		want    bool
	}{
		{"listed origin", []string{kioskOrigin}, kioskOrigin, true},
		{"wildcard", []string{"*"}, "https://anything.example", true},
		{"unlisted origin", []string{kioskOrigin}, "https://other.example", false},
		{"missing origin", []string{"*"}, "", false},
		{"nothing allowed", nil, kioskOrigin, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &Handler{allowedOrigins: tt.allowed}
			r := httptest.NewRequest(http.MethodGet, "/api/v1/live", nil)
			if tt.origin != "" {
				r.Header.Set("Origin", tt.origin)
			}
			if got := h.checkWebSocketOrigin(r); got != tt.want {
				t.Errorf("checkWebSocketOrigin = %v, want %v", got, tt.want)
			}
		})
	}
}
