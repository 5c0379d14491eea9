package domain

import (
	"fmt"
	"strings"
)

// DuplicatePolicy decides how a feature matching several table rows is merged.
type DuplicatePolicy string

const (
	// DuplicateFirst merges the first matching row in file order.
	DuplicateFirst DuplicatePolicy = "first"
	// DuplicateError fails the join with a JoinError.
	DuplicateError DuplicatePolicy = "error"
	// DuplicateAggregate sums present values per category across the rows.
	DuplicateAggregate DuplicatePolicy = "aggregate"
)

// ParseDuplicatePolicy accepts "first", "error" or "aggregate", case-insensitively.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch p := DuplicatePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case DuplicateFirst, DuplicateError, DuplicateAggregate:
		return p, nil
	default:
		return "", fmt.Errorf("unknown duplicate policy %q (want first, error or aggregate)", s)
	}
}

// JoinResult is the output of Join.
type JoinResult struct {
	Records []MergedRecord

	// Unmatched lists districts of features with no table row, in feature order.
	Unmatched []string
	// Orphans lists table districts that no feature referenced, in table order.
	Orphans []string
	// Duplicates counts features that matched more than one row.
	Duplicates int
}

// Join left-joins features to table rows on exact, case-sensitive district
// name. It returns one record per feature in feature order.
func Join(features []Feature, rows []DistrictRecord, categories []Category, policy DuplicatePolicy) (JoinResult, error) {
	index := make(map[string][]int, len(rows))
	for i, r := range rows {
		index[r.District] = append(index[r.District], i)
	}

	res := JoinResult{Records: make([]MergedRecord, 0, len(features))}
	referenced := make(map[string]bool, len(features))

	for _, f := range features {
		matches := index[f.District]
		referenced[f.District] = true

		rec := MergedRecord{
			District: f.District,
			Geometry: f.Geometry,
			Counts:   make(map[string]*int, len(categories)),
			Matched:  len(matches) > 0,
			Rows:     len(matches),
		}

		switch {
		case len(matches) == 0:
			res.Unmatched = append(res.Unmatched, f.District)
		case len(matches) == 1:
			copyCounts(rec.Counts, rows[matches[0]], categories)
		default:
			res.Duplicates++
			switch policy {
			case DuplicateFirst:
				copyCounts(rec.Counts, rows[matches[0]], categories)
			case DuplicateAggregate:
				sumCounts(rec.Counts, rows, matches, categories)
			default:
				return JoinResult{}, &JoinError{District: f.District, Matches: len(matches)}
			}
		}

		res.Records = append(res.Records, rec)
	}

	seen := make(map[string]bool, len(rows))
	for _, r := range rows {
		if referenced[r.District] || seen[r.District] {
			continue
		}
		seen[r.District] = true
		res.Orphans = append(res.Orphans, r.District)
	}

	return res, nil
}

func copyCounts(dst map[string]*int, row DistrictRecord, categories []Category) {
	for _, c := range categories {
		if v := row.Counts[c.Name]; v != nil {
			dst[c.Name] = IntPtr(*v)
		}
	}
}

func sumCounts(dst map[string]*int, rows []DistrictRecord, matches []int, categories []Category) {
	for _, c := range categories {
		for _, i := range matches {
			v := rows[i].Counts[c.Name]
			if v == nil {
				continue
			}
			if dst[c.Name] == nil {
				dst[c.Name] = IntPtr(0)
			}
			*dst[c.Name] += *v
		}
	}
}
