// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

package feedback

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/curator/internal/history"
	"github.com/tomtom215/curator/internal/metrics"
	"github.com/tomtom215/curator/internal/recommend"
	"github.com/tomtom215/curator/internal/validation"
)

// DefaultRetryDelay is the pause before a failed message is nacked and redelivered.
const DefaultRetryDelay = time.Second

// ConsumerStats holds runtime counters for monitoring and tests.
type ConsumerStats struct {
	Stored    int64
	Malformed int64
	Failed    int64
}

// Consumer appends bus messages to the history store. It implements
// suture.Service.
//
// Malformed payloads are acked and counted, since redelivery cannot fix them.
// Store failures are nacked after RetryDelay so the bus redelivers.
type Consumer struct {
	sub    message.Subscriber
	store  history.Store
	topic  string
	logger zerolog.Logger

	// RetryDelay defaults to DefaultRetryDelay.
	RetryDelay time.Duration

	ready     chan struct{}
	readyOnce sync.Once

	stored    atomic.Int64
	malformed atomic.Int64
	failed    atomic.Int64
}

// NewConsumer creates a consumer for topic.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewConsumer(sub message.Subscriber, store history.Store, topic string, logger zerolog.Logger) *Consumer {
	return &Consumer{
		sub:        sub,
		store:      store,
		topic:      topic,
		logger:     logger,
		RetryDelay: DefaultRetryDelay,
		ready:      make(chan struct{}),
	}
}

// Ready is closed once the first subscription is established.
func (c *Consumer) Ready() <-chan struct{} {
	return c.ready
}

// Stats returns a snapshot of the counters.
func (c *Consumer) Stats() ConsumerStats {
	return ConsumerStats{
		Stored:    c.stored.Load(),
		Malformed: c.malformed.Load(),
		Failed:    c.failed.Load(),
	}
}

// Serve implements suture.Service.
func (c *Consumer) Serve(ctx context.Context) error {
	msgs, err := c.sub.Subscribe(ctx, c.topic)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", c.topic, err)
	}
	c.readyOnce.Do(func() { close(c.ready) })
	c.logger.Info().Str("topic", c.topic).Msg("feedback consumer subscribed")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-msgs:
			if !ok {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return errors.New("feedback subscription closed")
			}
			c.handle(ctx, msg)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, msg *message.Message) {
	var env Envelope
	if err := json.Unmarshal(msg.Payload, &env); err != nil {
		c.drop(msg, err)
		return
	}
	if verr := validation.ValidateStruct(&env); verr != nil {
		c.drop(msg, verr)
		return
	}

	err := c.store.Append(ctx, env.SessionID, env.Event)
	switch {
	case err == nil:
		c.stored.Add(1)
		metrics.RecordFeedbackConsumed("stored")
		msg.Ack()
	case errors.Is(err, recommend.ErrInvalidInput):
		c.drop(msg, err)
	default:
		c.failed.Add(1)
		metrics.RecordFeedbackConsumed("failed")
		c.logger.Warn().Err(err).
			Str("message_id", msg.UUID).
			Str("session_id", env.SessionID).
			Dur("retry_in", c.RetryDelay).
			Msg("storing interaction failed, will retry")
		select {
		case <-time.After(c.RetryDelay):
		case <-ctx.Done():
		}
		msg.Nack()
	}
}

func (c *Consumer) drop(msg *message.Message, err error) {
	c.malformed.Add(1)
	metrics.RecordFeedbackConsumed("malformed")
	c.logger.Warn().Err(err).Str("message_id", msg.UUID).Msg("dropping malformed interaction message")
	msg.Ack()
}

// String implements fmt.Stringer for suture logs.
func (c *Consumer) String() string {
	return "feedback-consumer"
}
