// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

/*
Package engine is the entry point to the recommendation pipeline.

An Engine owns one immutable exhibit catalog snapshot and a validated
configuration. Each Analyze call is independent:

	selections -> profile.Analyzer -> matching.Matcher -> reranking.Recommender -> tour.Optimizer

and returns the profile, the ranked recommendations, the planned tour and a
confidence value in one recommend.AnalysisResult. The engine keeps no session
state; interaction history is supplied by the caller on every call.

Usage:

	eng, err := engine.New(recommend.DefaultConfig(), recommend.NewLogRecorder(logger))
	if err != nil {
	    return err
	}
	if err := eng.Initialize(records); err != nil {
	    return err
	}
	result, err := eng.Analyze(ctx, &selections, history, nil)

The engine performs no I/O. Diagnostics go through the injected
recommend.Recorder.
*/
package engine
