// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

package websocket

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/curator/internal/feedback"
)

// Broadcaster receives relayed interactions. Satisfied by *Hub.
type Broadcaster interface {
	BroadcastInteraction(InteractionData)
}

// FeedbackRelay subscribes to the interaction topic alongside the history
// consumer and forwards every event to the hub. It implements
// suture.Service.
//
// Every message is acked: the live feed is best effort and never causes
// redelivery.
type FeedbackRelay struct {
	sub    message.Subscriber
	hub    Broadcaster
	topic  string
	logger zerolog.Logger

	ready     chan struct{}
	readyOnce sync.Once
}

// NewFeedbackRelay creates a relay from topic on sub to hub.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewFeedbackRelay(sub message.Subscriber, hub Broadcaster, topic string, logger zerolog.Logger) *FeedbackRelay {
	return &FeedbackRelay{
		sub:    sub,
		hub:    hub,
		topic:  topic,
		logger: logger,
		ready:  make(chan struct{}),
	}
}

// Ready is closed once the first subscription is established.
func (r *FeedbackRelay) Ready() <-chan struct{} {
	return r.ready
}

// Serve implements suture.Service.
func (r *FeedbackRelay) Serve(ctx context.Context) error {
	msgs, err := r.sub.Subscribe(ctx, r.topic)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", r.topic, err)
	}
	r.readyOnce.Do(func() { close(r.ready) })

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-msgs:
			if !ok {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return errors.New("live feed subscription closed")
			}
			r.forward(msg)
			msg.Ack()
		}
	}
}

func (r *FeedbackRelay) forward(msg *message.Message) {
	var env feedback.Envelope
	if err := json.Unmarshal(msg.Payload, &env); err != nil {
		r.logger.Debug().Err(err).Str("message_id", msg.UUID).Msg("skipping undecodable interaction")
		return
	}
	r.hub.BroadcastInteraction(InteractionData{
		SessionID: env.SessionID,
		ExhibitID: env.Event.ExhibitID,
		Kind:      env.Event.Kind,
		Timestamp: env.Event.Timestamp,
	})
}

// String implements fmt.Stringer for suture logs.
func (r *FeedbackRelay) String() string {
	return "websocket-relay"
}
