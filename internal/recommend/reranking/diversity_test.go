// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

package reranking

import (
	"testing"

	"github.com/tomtom215/curator/internal/recommend"
)

func candidate(id string, cat recommend.Category, score float64, order int) recommend.ScoredCandidate {
	return recommend.ScoredCandidate{
		Exhibit: &recommend.ExhibitRecord{
			ID:         id,
			Name:       id,
			Category:   cat,
			Popularity: 0.5,
		},
		Score: score,
		Order: order,
	}
}

func ids(sel []Selection) []string {
	out := make([]string, len(sel))
	for i, s := range sel {
		out[i] = s.Candidate.Exhibit.ID
	}
	return out
}

func TestNewDiversifier(t *testing.T) {
	tests := []struct {
		name       string
		factor     float64
		wantFactor float64
	}{
		{"normal value", 0.3, 0.3},
		{"zero value", 0.0, 0.0},
		{"one value", 1.0, 1.0},
		{"negative clamped to zero", -0.5, 0.0},
		{"above one clamped to one", 1.5, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDiversifier(tt.factor)
			if d.factor != tt.wantFactor {
				t.Errorf("factor = %f, want %f", d.factor, tt.wantFactor)
			}
		})
	}
	if NewDiversifier(0.3).Name() != "category-diversity" {
		t.Error("unexpected Name()")
	}
}

func TestDiversifier_Rerank(t *testing.T) {
	items := []recommend.ScoredCandidate{
		candidate("a1", "art", 1.0, 0),
		candidate("a2", "art", 0.9, 1),
		candidate("h1", "history", 0.85, 2),
		candidate("a3", "art", 0.8, 3),
		candidate("s1", "space", 0.75, 4),
		candidate("h2", "history", 0.7, 5),
	}

	tests := []struct {
		name   string
		factor float64
		k      int
		want   []string
	}{
		{"pure relevance", 0, 3, []string{"a1", "a2", "h1"}},
		{"penalty demotes second art", 0.3, 3, []string{"a1", "h1", "s1"}},
		{"strong penalty spreads categories", 1, 4, []string{"a1", "h1", "s1", "a2"}},
		{"k larger than pool", 0, 10, []string{"a1", "a2", "h1", "a3", "s1", "h2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rest := NewDiversifier(tt.factor).Rerank(items, tt.k)
			gotIDs := ids(got)
			if len(gotIDs) != len(tt.want) {
				t.Fatalf("got %v, want %v", gotIDs, tt.want)
			}
			for i := range tt.want {
				if gotIDs[i] != tt.want[i] {
					t.Errorf("got %v, want %v", gotIDs, tt.want)
					break
				}
			}
			if len(got)+len(rest) != len(items) {
				t.Errorf("selected %d + rest %d != %d", len(got), len(rest), len(items))
			}
		})
	}
}

func TestDiversifier_CategoryCap(t *testing.T) {
	// Five art exhibits dominate; the cap for k=4 is ceil(4/2) = 2.
	items := []recommend.ScoredCandidate{
		candidate("a1", "art", 0.99, 0),
		candidate("a2", "art", 0.98, 1),
		candidate("a3", "art", 0.97, 2),
		candidate("a4", "art", 0.96, 3),
		candidate("h1", "history", 0.2, 4),
		candidate("s1", "space", 0.1, 5),
	}

	got, _ := NewDiversifier(0.01).Rerank(items, 4)
	counts := map[recommend.Category]int{}
	for _, s := range got {
		counts[s.Candidate.Exhibit.Category]++
	}
	if counts["art"] != 2 {
		t.Errorf("art picks = %d, want 2 (got %v)", counts["art"], ids(got))
	}
	if len(got) != 4 {
		t.Errorf("len = %d, want 4", len(got))
	}
}

func TestDiversifier_CapRelaxedWhenOnlyOneCategory(t *testing.T) {
	items := []recommend.ScoredCandidate{
		candidate("a1", "art", 0.9, 0),
		candidate("a2", "art", 0.8, 1),
		candidate("a3", "art", 0.7, 2),
	}
	got, _ := NewDiversifier(0.5).Rerank(items, 3)
	if len(got) != 3 {
		t.Errorf("len = %d, want 3 when no other category remains", len(got))
	}
	if got[1].Score != 0.4 {
		t.Errorf("second pick score = %f, want 0.8 * 0.5", got[1].Score)
	}
}

func TestDiversifier_EdgeCases(t *testing.T) {
	d := NewDiversifier(0.3)

	if got, rest := d.Rerank(nil, 5); got != nil || rest != nil {
		t.Error("Rerank(nil) should return nil")
	}
	items := []recommend.ScoredCandidate{candidate("a", "art", 0.5, 0)}
	if got, rest := d.Rerank(items, 0); got != nil || len(rest) != 1 {
		t.Error("Rerank(k=0) should select nothing")
	}
}
