// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

package recommend

import (
	"fmt"
	"sort"

	"github.com/goccy/go-json"

	"github.com/tomtom215/curator/internal/validation"
)

// Catalog is an immutable, validated snapshot of exhibit records.
// All accessors are safe for concurrent use.
type Catalog struct {
	records    []ExhibitRecord
	index      map[string]int
	tagFreq    map[string]int
	categories []Category
	version    string
}

// NewCatalog validates and copies the given records into a new snapshot.
// Tags and categories are normalized to lower case. An empty input yields an
// empty catalog, which is valid.
func NewCatalog(records []ExhibitRecord) (*Catalog, error) {
	c := &Catalog{
		records: make([]ExhibitRecord, 0, len(records)),
		index:   make(map[string]int, len(records)),
		tagFreq: make(map[string]int),
	}

	seenCat := make(map[Category]struct{})
	for i := range records {
		rec := records[i]
		rec.Tags = NormalizeTerms(rec.Tags)
		rec.Category = Category(normalizeTerm(string(rec.Category)))
		rec.CrowdLevel = Level(normalizeTerm(string(rec.CrowdLevel)))

		if verr := validation.ValidateStruct(&rec); verr != nil {
			return nil, fmt.Errorf("%w: record %d (%q): %w", ErrInvalidCatalog, i, rec.ID, verr)
		}
		if _, dup := c.index[rec.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate exhibit id %q", ErrInvalidCatalog, rec.ID)
		}

		c.index[rec.ID] = len(c.records)
		c.records = append(c.records, rec)

		for _, tag := range rec.Tags {
			c.tagFreq[tag]++
		}
		if _, ok := seenCat[rec.Category]; !ok {
			seenCat[rec.Category] = struct{}{}
			c.categories = append(c.categories, rec.Category)
		}
	}
	sort.Slice(c.categories, func(i, j int) bool { return c.categories[i] < c.categories[j] })

	payload, err := json.Marshal(c.records)
	if err != nil {
		return nil, fmt.Errorf("fingerprint catalog: %w", err)
	}
	c.version = StableID(string(payload))

	return c, nil
}

// Len returns the number of exhibits.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.records)
}

// Get returns the exhibit with the given id.
func (c *Catalog) Get(id string) (*ExhibitRecord, bool) {
	if c == nil {
		return nil, false
	}
	i, ok := c.index[id]
	if !ok {
		return nil, false
	}
	return &c.records[i], true
}

// Has reports whether the catalog contains the given id.
func (c *Catalog) Has(id string) bool {
	_, ok := c.Get(id)
	return ok
}

// At returns the exhibit at insertion index i.
func (c *Catalog) At(i int) *ExhibitRecord {
	return &c.records[i]
}

// Records returns a copy of the records in insertion order.
func (c *Catalog) Records() []ExhibitRecord {
	if c == nil {
		return nil
	}
	out := make([]ExhibitRecord, len(c.records))
	copy(out, c.records)
	for i := range out {
		out[i].Tags = append([]string(nil), out[i].Tags...)
	}
	return out
}

// TagCount returns the number of exhibits carrying the given tag.
func (c *Catalog) TagCount(tag string) int {
	if c == nil {
		return 0
	}
	return c.tagFreq[tag]
}

// Categories returns the distinct categories, sorted.
func (c *Catalog) Categories() []Category {
	if c == nil {
		return nil
	}
	return append([]Category(nil), c.categories...)
}

// Version is a content fingerprint: equal record sets yield equal versions.
func (c *Catalog) Version() string {
	if c == nil {
		return ""
	}
	return c.version
}
