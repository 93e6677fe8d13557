// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

package websocket

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/curator/internal/logging"
	"github.com/tomtom215/curator/internal/recommend"
)

// ShutdownReason identifies why the hub stopped.
type ShutdownReason string

const (
	// ShutdownReasonContextCanceled is the normal graceful path (SIGTERM).
	ShutdownReasonContextCanceled ShutdownReason = "context_canceled"

	// ShutdownReasonContextDeadline may indicate a hung shutdown.
	ShutdownReasonContextDeadline ShutdownReason = "context_deadline"
)

// Message types sent to dashboard clients.
const (
	MessageTypeInteraction = "interaction"
	MessageTypeAnalysis    = "analysis"
	MessageTypePing        = "ping"
	MessageTypePong        = "pong"
)

// ErrHubUnavailable is returned by Join when the hub loop is not accepting
// clients.
var ErrHubUnavailable = errors.New("live feed unavailable")

// Message is the frame written to clients.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// InteractionData is the payload of an interaction message.
type InteractionData struct {
	SessionID string                 `json:"session_id"`
	ExhibitID string                 `json:"exhibit_id"`
	Kind      recommend.FeedbackKind `json:"kind"`
	Timestamp time.Time              `json:"timestamp"`
}

// AnalysisData summarizes one completed analysis. Exhibit ids only, so the
// feed carries no visitor selections.
type AnalysisData struct {
	SessionID       string    `json:"session_id,omitempty"`
	ProfileID       string    `json:"profile_id"`
	Recommendations []string  `json:"recommendations"`
	TourStops       []string  `json:"tour_stops"`
	TourMinutes     float64   `json:"tour_minutes"`
	Confidence      float64   `json:"confidence"`
	HistorySource   string    `json:"history_source"`
	CompletedAt     time.Time `json:"completed_at"`
}

// Hub keeps the set of connected clients and fans messages out to them.
// Register and Unregister are only served while RunWithContext is running.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan Message
	Register   chan *Client
	Unregister chan *Client
	mu         sync.RWMutex
}

// NewHub creates a Hub. Call RunWithContext to start it.
func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan Message, 256),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

// RunWithContext serves registrations and broadcasts until ctx is done,
// then closes every client and returns ctx.Err(). Suited to supervision.
//
// Shutdown is checked first and client lifecycle events before
// broadcasts, so a message never goes to a client that has already left.
func (h *Hub) RunWithContext(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			h.logGracefulShutdown(ctx)
			return ctx.Err()
		default:
		}

		select {
		case client := <-h.Register:
			h.addClient(client)
			continue
		case client := <-h.Unregister:
			h.removeClient(client)
			continue
		default:
		}

		select {
		case <-ctx.Done():
			h.logGracefulShutdown(ctx)
			return ctx.Err()
		case client := <-h.Register:
			h.addClient(client)
		case client := <-h.Unregister:
			h.removeClient(client)
		case message := <-h.broadcast:
			h.broadcastToClients(message)
		}
	}
}

// Join registers c with the running hub. It fails with ErrHubUnavailable
// if the hub does not take the client before ctx is done.
func (h *Hub) Join(ctx context.Context, c *Client) error {
	select {
	case h.Register <- c:
		return nil
	case <-ctx.Done():
		return ErrHubUnavailable
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	h.clients[client] = true
	n := len(h.clients)
	h.mu.Unlock()
	logging.Debug().Int("total_clients", n).Msg("live client connected")
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
	n := len(h.clients)
	h.mu.Unlock()
	logging.Debug().Int("total_clients", n).Msg("live client disconnected")
}

// logGracefulShutdown closes all clients and logs the stop. Cancellation is
// expected here, so ctx.Err() is not logged as an error.
func (h *Hub) logGracefulShutdown(ctx context.Context) {
	clientCount := h.GetClientCount()
	h.closeAllClients()

	logging.Info().
		Str("component", "websocket-hub").
		Str("reason", string(getShutdownReason(ctx))).
		Int("clients_closed", clientCount).
		Msg("websocket hub stopped")
}

func getShutdownReason(ctx context.Context) ShutdownReason {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ShutdownReasonContextDeadline
	}
	return ShutdownReasonContextCanceled
}

// sortedClients returns the clients in id order. Callers hold h.mu.
func (h *Hub) sortedClients() []*Client {
	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	sort.Slice(clients, func(i, j int) bool {
		return clients[i].id < clients[j].id
	})
	return clients
}

// broadcastToClients delivers message in client id order. A client whose
// send buffer is full is disconnected rather than stalling the others.
func (h *Hub) broadcastToClients(message Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var slow []*Client
	for _, client := range h.sortedClients() {
		select {
		case client.send <- message:
		default:
			slow = append(slow, client)
		}
	}
	for _, client := range slow {
		close(client.send)
		delete(h.clients, client)
	}
	if len(slow) > 0 {
		logging.Warn().Int("dropped_clients", len(slow)).Msg("disconnected slow live clients")
	}
}

func (h *Hub) closeAllClients() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, client := range h.sortedClients() {
		close(client.send)
		delete(h.clients, client)
	}
}

// BroadcastJSON queues a message for every client. It never blocks; when
// the queue is full the message is dropped.
func (h *Hub) BroadcastJSON(messageType string, data any) {
	select {
	case h.broadcast <- Message{Type: messageType, Data: data}:
	default:
		logging.Warn().Str("message_type", messageType).Msg("broadcast channel full, dropping message")
	}
}

// BroadcastInteraction announces an interaction accepted for a session.
func (h *Hub) BroadcastInteraction(data InteractionData) { //nolint:gocritic // hugeParam
	h.BroadcastJSON(MessageTypeInteraction, data)
}

// BroadcastAnalysis announces a completed analysis.
func (h *Hub) BroadcastAnalysis(data *AnalysisData) {
	h.BroadcastJSON(MessageTypeAnalysis, data)
}

// GetClientCount returns the number of connected clients.
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// SummarizeAnalysis builds the feed payload for result.
func SummarizeAnalysis(sessionID, historySource string, result *recommend.AnalysisResult, at time.Time) *AnalysisData {
	data := &AnalysisData{
		SessionID:       sessionID,
		Recommendations: make([]string, 0, len(result.Recommendations)),
		TourStops:       make([]string, 0, len(result.Tour.Stops)),
		TourMinutes:     result.Tour.TotalMinutes,
		Confidence:      result.Confidence,
		HistorySource:   historySource,
		CompletedAt:     at.UTC(),
	}
	if result.Profile != nil {
		data.ProfileID = result.Profile.ID
	}
	for i := range result.Recommendations {
		data.Recommendations = append(data.Recommendations, result.Recommendations[i].ExhibitID)
	}
	for i := range result.Tour.Stops {
		data.TourStops = append(data.TourStops, result.Tour.Stops[i].ExhibitID)
	}
	return data
}

// MarshalMessage encodes a message as sent on the wire.
func MarshalMessage(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}
