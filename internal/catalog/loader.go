// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

// Package catalog reads exhibit catalogs from JSON files or the bundled sample.
//
// A catalog file is a JSON array of exhibit records. Unknown fields are
// rejected so typos in hand-edited catalogs surface at load time rather
// than as silently ignored metadata. Semantic validation (required fields,
// ranges, duplicate IDs) happens in recommend.NewCatalog.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/tomtom215/curator/internal/recommend"
)

// MaxFileSize caps catalog files read from disk.
const MaxFileSize = 16 << 20

//go:embed sample.json
var sampleJSON []byte

// ErrTooLarge is returned for catalog files above MaxFileSize.
var ErrTooLarge = errors.New("catalog file too large")

// Decode reads a JSON array of exhibit records from r.
func Decode(r io.Reader) ([]recommend.ExhibitRecord, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var records []recommend.ExhibitRecord
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if records == nil {
		records = []recommend.ExhibitRecord{}
	}
	return records, nil
}

// LoadFile reads and decodes the catalog at path.
func LoadFile(path string) ([]recommend.ExhibitRecord, error) {
	cleanPath := filepath.Clean(path)
	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("stat catalog: %w", err)
	}
	if info.Size() > MaxFileSize {
		return nil, fmt.Errorf("%w: %s is %d bytes (max %d)", ErrTooLarge, cleanPath, info.Size(), MaxFileSize)
	}

	f, err := os.Open(cleanPath) //nolint:gosec // G304: path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	records, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cleanPath, err)
	}
	return records, nil
}

// Sample returns a fresh copy of the bundled sample catalog.
func Sample() []recommend.ExhibitRecord {
	records, err := Decode(bytes.NewReader(sampleJSON))
	if err != nil {
		// The sample is compiled in; failure here is a build defect.
		panic(fmt.Sprintf("bundled sample catalog is invalid: %v", err))
	}
	return records
}

// Load reads the catalog at path, or the bundled sample when path is empty.
// The returned source names where the records came from.
func Load(path string) (records []recommend.ExhibitRecord, source string, err error) {
	if path == "" {
		return Sample(), "embedded:sample.json", nil
	}
	records, err = LoadFile(path)
	if err != nil {
		return nil, path, err
	}
	return records, path, nil
}
