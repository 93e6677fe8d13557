// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

package engine

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/tomtom215/curator/internal/recommend"
	"github.com/tomtom215/curator/internal/recommend/matching"
	"github.com/tomtom215/curator/internal/recommend/profile"
	"github.com/tomtom215/curator/internal/recommend/reranking"
	"github.com/tomtom215/curator/internal/recommend/tour"
	"github.com/tomtom215/curator/internal/validation"
)

// snapshot is the immutable catalog state shared by concurrent analyses.
type snapshot struct {
	catalog       *recommend.Catalog
	initializedAt time.Time
}

// Engine runs the profile, matching, recommendation and tour stages against
// the current catalog snapshot.
//
// Thread Safety: Engine is safe for concurrent use. Initialize swaps the
// snapshot atomically; analyses already running keep the snapshot they started with.
type Engine struct {
	cfg         *recommend.Config
	recorder    recommend.Recorder
	analyzer    *profile.Analyzer
	matcher     *matching.Matcher
	recommender *reranking.Recommender

	snap atomic.Pointer[snapshot]
	now  func() time.Time
}

// New creates an engine. A nil config uses recommend.DefaultConfig.
// The config is validated and copied; later changes by the caller have no effect.
func New(cfg *recommend.Config, rec recommend.Recorder) (*Engine, error) {
	if cfg == nil {
		cfg = recommend.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}
	cfg = cfg.Clone()
	rec = recommend.OrNop(rec)

	return &Engine{
		cfg:         cfg,
		recorder:    rec,
		analyzer:    profile.NewAnalyzer(rec),
		matcher:     matching.NewMatcher(cfg.Weights, rec),
		recommender: reranking.NewRecommender(cfg.Feedback, rec),
		now:         time.Now,
	}, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *recommend.Config {
	return e.cfg.Clone()
}

// Initialize validates records and installs them as the catalog snapshot,
// replacing any previous one. On error the previous snapshot is kept.
func (e *Engine) Initialize(records []recommend.ExhibitRecord) error {
	cat, err := recommend.NewCatalog(records)
	if err != nil {
		return fmt.Errorf("initialize engine: %w", err)
	}
	e.snap.Store(&snapshot{catalog: cat, initializedAt: e.now().UTC()})

	e.recorder.Record(recommend.Event{
		Name:     "catalog.loaded",
		Severity: recommend.SeverityInfo,
		Fields: map[string]any{
			"exhibits":   cat.Len(),
			"categories": len(cat.Categories()),
			"version":    cat.Version(),
		},
	})
	return nil
}

// Catalog returns the current catalog snapshot, or nil before Initialize.
func (e *Engine) Catalog() *recommend.Catalog {
	if s := e.snap.Load(); s != nil {
		return s.catalog
	}
	return nil
}

// Status reports whether a catalog is loaded and which one.
func (e *Engine) Status() recommend.Status {
	s := e.snap.Load()
	if s == nil {
		return recommend.Status{}
	}
	return recommend.Status{
		Initialized:    true,
		ExhibitCount:   s.catalog.Len(),
		CatalogVersion: s.catalog.Version(),
		InitializedAt:  s.initializedAt,
	}
}

// Analyze runs the full pipeline for one visitor.
//
// It fails with recommend.ErrInvalidInput for nil or malformed selections or
// options and with recommend.ErrNotInitialized before Initialize. An empty
// catalog is not an error: the result has no recommendations, an empty tour
// and zero confidence. Cancelling ctx truncates matching and ends the tour
// search early; the best result found so far is returned.
func (e *Engine) Analyze(ctx context.Context, sel *recommend.UserSelections, history []recommend.InteractionEvent, opts *recommend.Options) (*recommend.AnalysisResult, error) {
	if sel == nil {
		return nil, fmt.Errorf("%w: selections are required", recommend.ErrInvalidInput)
	}
	s := e.snap.Load()
	if s == nil {
		return nil, recommend.ErrNotInitialized
	}
	if opts != nil {
		if verr := validation.ValidateStruct(opts); verr != nil {
			return nil, fmt.Errorf("%w: options: %w", recommend.ErrInvalidInput, verr)
		}
	}
	cfg := e.cfg.WithOptions(opts)

	start := time.Now()
	prof, err := e.analyzer.Analyze(sel, s.catalog)
	if err != nil {
		return nil, fmt.Errorf("analyze profile: %w", err)
	}
	profileDur := time.Since(start)

	start = time.Now()
	candidates, err := e.matcher.Match(ctx, prof, s.catalog)
	if err != nil && !errors.Is(err, recommend.ErrEmptyCatalog) {
		return nil, fmt.Errorf("match exhibits: %w", err)
	}
	matchDur := time.Since(start)

	start = time.Now()
	ranked := e.recommender.Recommend(candidates, history, cfg.TopK, cfg.DiversityFactor)
	recommendDur := time.Since(start)

	req := tour.Request{
		Recommendations: ranked.Recommendations,
		Profile:         prof,
	}
	if opts != nil {
		req.BudgetMinutes = opts.TimeBudgetMinutes
		req.Start = opts.Start
	}
	start = time.Now()
	planned := tour.NewOptimizer(cfg.Tour, cfg.EffectiveSeed(), e.recorder).Optimize(ctx, req)
	tourDur := time.Since(start)

	e.recorder.Record(recommend.Event{
		Name:     "analysis.completed",
		Severity: recommend.SeverityDebug,
		Fields: map[string]any{
			"profile_id":      prof.ID,
			"recommendations": len(ranked.Recommendations),
			"tour_stops":      len(planned.Stops),
			"confidence":      ranked.Confidence,
			"profile_seconds": profileDur.Seconds(),
			"match_seconds":   matchDur.Seconds(),
			"rank_seconds":    recommendDur.Seconds(),
			"tour_seconds":    tourDur.Seconds(),
		},
	})

	return &recommend.AnalysisResult{
		Profile:         prof,
		Recommendations: ranked.Recommendations,
		Tour:            planned,
		Confidence:      ranked.Confidence,
		DroppedEvents:   ranked.DroppedEvents,
	}, nil
}
