package domain

import (
	"encoding/json"

	"github.com/paulmach/orb"
)

// DistrictRecord is one row of the unit-count table.
type DistrictRecord struct {
	District string
	Counts   map[string]*int // nil value: cell was blank
	Line     int             // 1-based line in the source file
}

// Feature is one district shape from the geometry collection.
type Feature struct {
	District   string
	Geometry   orb.Geometry
	Properties map[string]any
}

// GeometrySet is the parsed geometry collection plus the original document,
// which the boundary overlay renders as-is.
type GeometrySet struct {
	Features []Feature
	Raw      json.RawMessage
}

// MergedRecord is a feature joined with its table row, if any.
type MergedRecord struct {
	District string
	Geometry orb.Geometry
	Counts   map[string]*int
	Matched  bool
	Rows     int // table rows sharing this district name
}

// Count returns the value for a category, reporting whether it was present.
func (m MergedRecord) Count(category string) (int, bool) {
	v := m.Counts[category]
	if v == nil {
		return 0, false
	}
	return *v, true
}

// CountOrZero returns the value for a category, 0 when absent.
func (m MergedRecord) CountOrZero(category string) int {
	n, _ := m.Count(category)
	return n
}

// Has reports whether the record belongs in the category's layer: the count
// is present and strictly positive.
func (m MergedRecord) Has(category string) bool {
	n, ok := m.Count(category)
	return ok && n > 0
}

// IntPtr returns a pointer to n.
func IntPtr(n int) *int { return &n }
