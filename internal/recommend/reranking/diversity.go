// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

package reranking

import (
	"github.com/tomtom215/curator/internal/recommend"
)

// maxRerankSize limits slice allocations; k is also bounded by len(items).
const maxRerankSize = 10000

// Diversifier implements greedy category diversification.
// It repeatedly selects the highest-scoring remaining exhibit, then
// penalizes every remaining exhibit of the same category:
//
//	score(j) = score(j) * (1 - factor)   for category(j) == category(picked)
//
// With factor > 0, a single category may also fill at most ceil(k/2)
// slots while exhibits of other categories remain.
type Diversifier struct {
	// factor is the same-category penalty (0.0 = pure relevance, 1.0 = strongest)
	factor float64
}

// NewDiversifier creates a diversifier. The factor is clamped to [0, 1].
func NewDiversifier(factor float64) *Diversifier {
	return &Diversifier{factor: recommend.Clamp01(factor)}
}

// Name returns the reranker identifier.
func (d *Diversifier) Name() string {
	return "category-diversity"
}

// Selection is one diversified pick.
type Selection struct {
	Candidate recommend.ScoredCandidate
	// Score is the candidate score after same-category penalties.
	Score float64
}

// Rerank selects up to k candidates from items, which must already be ranked.
// The returned selections keep greedy pick order. The second return value
// holds the items that were not selected, in their input order.
//
//nolint:gocritic // rangeValCopy: ScoredCandidate copied in range for clarity
func (d *Diversifier) Rerank(items []recommend.ScoredCandidate, k int) ([]Selection, []recommend.ScoredCandidate) {
	if len(items) == 0 || k <= 0 {
		return nil, items
	}

	if k > maxRerankSize {
		k = maxRerankSize
	}
	if k > len(items) {
		k = len(items)
	}

	current := make([]float64, len(items))
	for i := range items {
		current[i] = items[i].Score
	}

	limit := k
	if d.factor > 0 {
		limit = (k + 1) / 2
	}

	selected := make([]Selection, 0, k)
	taken := make([]bool, len(items))
	perCategory := make(map[recommend.Category]int)

	for len(selected) < k {
		capped := func(i int) bool {
			return perCategory[items[i].Exhibit.Category] >= limit
		}
		openLeft := false
		for i := range items {
			if !taken[i] && !capped(i) {
				openLeft = true
				break
			}
		}

		bestIdx := -1
		for i := range items {
			if taken[i] || (openLeft && capped(i)) {
				continue
			}
			if bestIdx < 0 || better(items, current, i, bestIdx) {
				bestIdx = i
			}
		}
		if bestIdx < 0 {
			break
		}

		taken[bestIdx] = true
		picked := items[bestIdx]
		selected = append(selected, Selection{Candidate: picked, Score: current[bestIdx]})
		perCategory[picked.Exhibit.Category]++

		if d.factor > 0 {
			for j := range items {
				if !taken[j] && items[j].Exhibit.Category == picked.Exhibit.Category {
					current[j] *= 1 - d.factor
				}
			}
		}
	}

	rest := make([]recommend.ScoredCandidate, 0, len(items)-len(selected))
	for i, item := range items {
		if !taken[i] {
			rest = append(rest, item)
		}
	}
	return selected, rest
}

// better reports whether candidate i outranks candidate j under the
// current scores: score desc, popularity desc, catalog order asc.
func better(items []recommend.ScoredCandidate, current []float64, i, j int) bool {
	if current[i] != current[j] {
		return current[i] > current[j]
	}
	if items[i].Exhibit.Popularity != items[j].Exhibit.Popularity {
		return items[i].Exhibit.Popularity > items[j].Exhibit.Popularity
	}
	return items[i].Order < items[j].Order
}
