// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

// Package feedback carries visitor interaction events from the API to the
// history store over an in-process watermill bus.
//
// The API publishes and returns 202 immediately; the Consumer service
// appends to the history store in the background and retries on store
// failures. The bus is a watermill GoChannel, so any other watermill
// Publisher/Subscriber pair can replace it without touching either side.
package feedback

import (
	"time"

	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/rs/zerolog"

	"github.com/tomtom215/curator/internal/config"
	"github.com/tomtom215/curator/internal/logging"
	"github.com/tomtom215/curator/internal/recommend"
)

// MetadataSessionID is the message metadata key carrying the session id.
const MetadataSessionID = "session_id"

// Envelope is the bus payload for one interaction event.
type Envelope struct {
	SessionID  string                     `json:"session_id" validate:"required,sessionid"`
	Event      recommend.InteractionEvent `json:"event"`
	ReceivedAt time.Time                  `json:"received_at"`
}

// NewBus creates the in-process pub/sub. Messages published while no
// subscriber is attached are discarded.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewBus(cfg config.FeedbackConfig, logger zerolog.Logger) *gochannel.GoChannel {
	return gochannel.NewGoChannel(
		gochannel.Config{
			OutputChannelBuffer: cfg.BufferSize,
			Persistent:          false,
		},
		logging.NewWatermillAdapter(logger),
	)
}
