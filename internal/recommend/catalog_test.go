// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

package recommend

import (
	"errors"
	"testing"

	"github.com/tomtom215/curator/internal/validation"
)

func testRecord(id string, cat Category, tags ...string) ExhibitRecord {
	return ExhibitRecord{
		ID:              id,
		Name:            "Exhibit " + id,
		Category:        cat,
		Tags:            tags,
		AgeGroup:        AgeAdults,
		Difficulty:      DifficultyBeginner,
		InteractionType: InteractionVisual,
		DurationMinutes: 20,
		Popularity:      0.5,
		Location:        Location{X: 10, Y: 10, Floor: "ground"},
		Accessible:      true,
		CrowdLevel:      LevelMedium,
	}
}

func TestNewCatalog(t *testing.T) {
	cat, err := NewCatalog([]ExhibitRecord{
		testRecord("a", "Art", "Design", "art"),
		testRecord("b", "history", "culture", "art"),
	})
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}

	if cat.Len() != 2 {
		t.Errorf("Len() = %d, want 2", cat.Len())
	}
	rec, ok := cat.Get("a")
	if !ok {
		t.Fatal("Get(a) not found")
	}
	if rec.Category != "art" {
		t.Errorf("Category = %q, want normalized art", rec.Category)
	}
	if cat.TagCount("art") != 2 || cat.TagCount("design") != 1 || cat.TagCount("missing") != 0 {
		t.Errorf("TagCount() = art %d, design %d", cat.TagCount("art"), cat.TagCount("design"))
	}
	if got := cat.Categories(); len(got) != 2 || got[0] != "art" || got[1] != "history" {
		t.Errorf("Categories() = %v", got)
	}
	if cat.At(1).ID != "b" {
		t.Errorf("At(1) = %q, want insertion order", cat.At(1).ID)
	}
	if cat.Has("zzz") {
		t.Error("Has(zzz) = true")
	}
}

func TestNewCatalog_Empty(t *testing.T) {
	cat, err := NewCatalog(nil)
	if err != nil {
		t.Fatalf("NewCatalog(nil) error = %v", err)
	}
	if cat.Len() != 0 {
		t.Errorf("Len() = %d, want 0", cat.Len())
	}
	if cat.Version() == "" {
		t.Error("Version() should be set for empty catalogs")
	}
}

func TestNewCatalog_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*ExhibitRecord)
		wantField string
	}{
		{"zero duration", func(r *ExhibitRecord) { r.DurationMinutes = 0 }, "duration_minutes"},
		{"popularity above 1", func(r *ExhibitRecord) { r.Popularity = 1.2 }, "popularity"},
		{"no tags", func(r *ExhibitRecord) { r.Tags = []string{" "} }, "tags"},
		{"missing id", func(r *ExhibitRecord) { r.ID = "" }, "id"},
		{"unknown difficulty", func(r *ExhibitRecord) { r.Difficulty = "expert" }, "difficulty"},
		{"missing floor", func(r *ExhibitRecord) { r.Location.Floor = "" }, "floor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := testRecord("x", "art", "art")
			tt.modify(&rec)

			_, err := NewCatalog([]ExhibitRecord{rec})
			if !errors.Is(err, ErrInvalidCatalog) {
				t.Fatalf("error = %v, want ErrInvalidCatalog", err)
			}
			var verr *validation.RequestValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("error = %v, want RequestValidationError", err)
			}
			if !verr.HasField(tt.wantField) {
				t.Errorf("errors = %v, want field %q", verr, tt.wantField)
			}
		})
	}
}

func TestNewCatalog_DuplicateID(t *testing.T) {
	_, err := NewCatalog([]ExhibitRecord{testRecord("a", "art", "x"), testRecord("a", "art", "y")})
	if !errors.Is(err, ErrInvalidCatalog) {
		t.Errorf("error = %v, want ErrInvalidCatalog", err)
	}
}

func TestCatalog_VersionAndIsolation(t *testing.T) {
	records := []ExhibitRecord{testRecord("a", "art", "art")}
	c1, _ := NewCatalog(records)
	c2, _ := NewCatalog(records)
	if c1.Version() != c2.Version() {
		t.Error("Version() differs for identical records")
	}

	records[0].Tags[0] = "mutated"
	if got, _ := c1.Get("a"); got.Tags[0] != "art" {
		t.Error("catalog shares tag storage with the caller")
	}

	out := c1.Records()
	out[0].Tags[0] = "mutated"
	if got, _ := c1.Get("a"); got.Tags[0] != "art" {
		t.Error("Records() leaks internal tag storage")
	}

	c3, _ := NewCatalog([]ExhibitRecord{testRecord("b", "art", "art")})
	if c3.Version() == c1.Version() {
		t.Error("Version() equal for different records")
	}
}

func TestCatalog_NilSafe(t *testing.T) {
	var c *Catalog
	if c.Len() != 0 || c.Version() != "" || c.TagCount("a") != 0 || c.Records() != nil {
		t.Error("nil catalog accessors should return zero values")
	}
	if _, ok := c.Get("a"); ok {
		t.Error("nil catalog Get() should miss")
	}
}
