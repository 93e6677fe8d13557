// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

/*
Package cache provides a bounded, TTL-based LRU key set used for
deduplication.

The feedback publisher keys every interaction by session, exhibit and kind
and asks IsDuplicate before publishing, so a kiosk button pressed twice in
quick succession produces one history event:

	seen := cache.NewLRUCache(10000, 2*time.Second)
	if seen.IsDuplicate(sessionID + "|" + exhibitID + "|liked") {
	    return // already recorded
	}

# Thread Safety

All methods are safe for concurrent use. A single mutex guards the map and
the recency list; every operation is O(1) except CleanupExpired, which walks
the list once.
*/
package cache
