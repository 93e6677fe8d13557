// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

package feedback

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/curator/internal/cache"
	"github.com/tomtom215/curator/internal/config"
	"github.com/tomtom215/curator/internal/metrics"
	"github.com/tomtom215/curator/internal/recommend"
	"github.com/tomtom215/curator/internal/validation"
)

var (
	// ErrRateLimited is returned when a session publishes faster than allowed.
	ErrRateLimited = errors.New("interaction rate limit exceeded")

	// ErrDuplicate is returned for a repeat of an event published within the
	// dedup window. Nothing is published.
	ErrDuplicate = errors.New("duplicate interaction")
)

// Publisher validates interaction events and publishes them on the bus.
type Publisher struct {
	pub      message.Publisher
	topic    string
	limiters *sessionLimiters
	seen     *cache.LRUCache // nil when deduplication is off
	now      func() time.Time
	logger   zerolog.Logger
}

// NewPublisher creates a Publisher writing to cfg.Topic.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewPublisher(pub message.Publisher, cfg config.FeedbackConfig, logger zerolog.Logger) *Publisher {
	p := &Publisher{
		pub:      pub,
		topic:    cfg.Topic,
		limiters: newSessionLimiters(cfg.RatePerSecond, cfg.Burst),
		now:      time.Now,
		logger:   logger,
	}
	if cfg.DedupWindow > 0 {
		p.seen = cache.NewLRUCache(cfg.DedupCapacity, cfg.DedupWindow)
	}
	return p
}

// Publish sends one event for sessionID and returns the message id.
//
// Errors wrap recommend.ErrInvalidInput for malformed input. ErrRateLimited
// means the session's token bucket is empty and ErrDuplicate that the same
// session, exhibit and kind was published within the dedup window.
//
//nolint:gocritic // hugeParam: events are passed by value across the API
func (p *Publisher) Publish(ctx context.Context, sessionID string, ev recommend.InteractionEvent) (string, error) {
	env := Envelope{SessionID: sessionID, Event: ev, ReceivedAt: p.now().UTC()}
	if verr := validation.ValidateStruct(&env); verr != nil {
		return "", fmt.Errorf("%w: %w", recommend.ErrInvalidInput, verr)
	}

	if !p.limiters.allow(sessionID) {
		metrics.RecordFeedbackRateLimited()
		p.logger.Debug().Str("session_id", sessionID).Msg("interaction rate limited")
		return "", ErrRateLimited
	}

	key := dedupKey(sessionID, ev)
	if p.seen != nil && p.seen.IsDuplicate(key) {
		metrics.RecordFeedbackDuplicate()
		p.logger.Debug().Str("session_id", sessionID).Str("exhibit_id", ev.ExhibitID).Msg("duplicate interaction suppressed")
		return "", ErrDuplicate
	}

	payload, err := json.Marshal(&env)
	if err != nil {
		p.forget(key)
		return "", fmt.Errorf("marshal envelope: %w", err)
	}

	msg := message.NewMessage(uuid.NewString(), payload)
	msg.Metadata.Set(MetadataSessionID, sessionID)
	msg.SetContext(ctx)

	if err := p.pub.Publish(p.topic, msg); err != nil {
		p.forget(key)
		return "", fmt.Errorf("publish interaction: %w", err)
	}
	metrics.RecordFeedbackPublished()
	return msg.UUID, nil
}

// forget lets a retry through after a failed publish.
func (p *Publisher) forget(key string) {
	if p.seen != nil {
		p.seen.Remove(key)
	}
}

func dedupKey(sessionID string, ev recommend.InteractionEvent) string { //nolint:gocritic // hugeParam
	return sessionID + "|" + ev.ExhibitID + "|" + string(ev.Kind)
}
