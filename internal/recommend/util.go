// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

package recommend

import (
	"math"
	"sort"

	"github.com/google/uuid"
)

// profileNamespace scopes deterministic profile identifiers.
var profileNamespace = uuid.MustParse("6f1c3b52-7a0e-4c1b-9d8e-2f4a5b6c7d80")

// StableID derives a deterministic UUIDv5 from the given canonical key.
// Identical keys always produce identical identifiers.
func StableID(key string) string {
	return uuid.NewSHA1(profileNamespace, []byte(key)).String()
}

// Clamp01 limits v to [0, 1]. NaN maps to 0.
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// Clamp limits v to [lo, hi]. NaN maps to lo.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Normalize maps v from [lo, hi] onto [0, 1], clamping values outside the range.
// A degenerate range returns 0.5.
func Normalize(v, lo, hi float64) float64 {
	if hi <= lo {
		return 0.5
	}
	return Clamp01((v - lo) / (hi - lo))
}

// Round rounds v to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// NormalizeTerms lower-cases and trims terms, drops empties and duplicates,
// and returns them sorted.
func NormalizeTerms(terms []string) []string {
	if len(terms) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(terms))
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		n := normalizeTerm(t)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
