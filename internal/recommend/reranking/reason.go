// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

package reranking

import (
	"sort"
	"strings"

	"github.com/tomtom215/curator/internal/recommend"
)

// strongSubScore is the minimum sub-score worth mentioning.
const strongSubScore = 0.7

// maxReasonParts bounds the number of phrases in one reason.
const maxReasonParts = 2

type reasonPart struct {
	value  float64
	phrase string
}

// Reason explains a recommendation from its strongest sub-scores.
// Ties keep the fixed dimension order below, so output is deterministic.
//
//nolint:gocritic // hugeParam: sub-scores are read-only
func Reason(sub recommend.SubScores, likedCategory bool) string {
	parts := []reasonPart{
		{sub.Interest, "matches your interests"},
		{sub.Category, "in a category you prefer"},
		{sub.LearningStyle, "suits how you like to learn"},
		{sub.Age, "designed for your age group"},
		{sub.Duration, "fits your visit length"},
		{sub.Energy, "matches your energy"},
		{sub.Popularity, "popular with visitors"},
	}
	sort.SliceStable(parts, func(i, j int) bool { return parts[i].value > parts[j].value })

	phrases := make([]string, 0, maxReasonParts+1)
	if likedCategory {
		phrases = append(phrases, "similar to exhibits you liked")
	}
	for _, p := range parts {
		if len(phrases) >= maxReasonParts || p.value < strongSubScore {
			break
		}
		phrases = append(phrases, p.phrase)
	}
	if len(phrases) == 0 {
		return "A good all-round match"
	}

	out := strings.Join(phrases, "; ")
	return strings.ToUpper(out[:1]) + out[1:]
}
