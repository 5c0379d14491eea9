package domain

import (
	"errors"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSquare = orb.Polygon{{{80, 26}, {81, 26}, {81, 27}, {80, 27}, {80, 26}}}

func feature(name string) Feature {
	return Feature{District: name, Geometry: testSquare}
}

func row(name string, line int, ndrf, sdrf, pac *int) DistrictRecord {
	return DistrictRecord{
		District: name,
		Line:     line,
		Counts:   map[string]*int{"NDRF": ndrf, "SDRF": sdrf, "PAC": pac},
	}
}

func TestJoin_SingleMatch(t *testing.T) {
	res, err := Join(
		[]Feature{feature("Lucknow")},
		[]DistrictRecord{row("Lucknow", 2, IntPtr(5), IntPtr(0), nil)},
		DefaultCategories(), DuplicateError,
	)
	require.NoError(t, err)
	require.Len(t, res.Records, 1)

	rec := res.Records[0]
	assert.Equal(t, "Lucknow", rec.District)
	assert.True(t, rec.Matched)
	assert.Equal(t, 1, rec.Rows)
	assert.Equal(t, testSquare, rec.Geometry)

	n, ok := rec.Count("NDRF")
	assert.True(t, ok)
	assert.Equal(t, 5, n)
	n, ok = rec.Count("SDRF")
	assert.True(t, ok)
	assert.Equal(t, 0, n)
	_, ok = rec.Count("PAC")
	assert.False(t, ok)

	assert.True(t, rec.Has("NDRF"))
	assert.False(t, rec.Has("SDRF"))
	assert.False(t, rec.Has("PAC"))
	assert.Empty(t, res.Unmatched)
	assert.Empty(t, res.Orphans)
}

func TestJoin_UnmatchedFeatureKeepsGeometry(t *testing.T) {
	res, err := Join(
		[]Feature{feature("Lucknow"), feature("Kanpur")},
		[]DistrictRecord{row("Lucknow", 2, IntPtr(5), nil, nil)},
		DefaultCategories(), DuplicateError,
	)
	require.NoError(t, err)
	require.Len(t, res.Records, 2)

	kanpur := res.Records[1]
	assert.Equal(t, "Kanpur", kanpur.District)
	assert.False(t, kanpur.Matched)
	assert.Equal(t, testSquare, kanpur.Geometry)
	for _, c := range DefaultCategories() {
		_, ok := kanpur.Count(c.Name)
		assert.False(t, ok, c.Name)
		assert.False(t, kanpur.Has(c.Name), c.Name)
		assert.Equal(t, 0, kanpur.CountOrZero(c.Name))
	}
	assert.Equal(t, []string{"Kanpur"}, res.Unmatched)
}

func TestJoin_PreservesFeatureOrder(t *testing.T) {
	features := []Feature{feature("C"), feature("A"), feature("B")}
	rows := []DistrictRecord{
		row("A", 2, IntPtr(1), nil, nil),
		row("B", 3, IntPtr(2), nil, nil),
		row("C", 4, IntPtr(3), nil, nil),
	}

	res, err := Join(features, rows, DefaultCategories(), DuplicateError)
	require.NoError(t, err)

	got := make([]string, len(res.Records))
	for i, r := range res.Records {
		got[i] = r.District
	}
	assert.Equal(t, []string{"C", "A", "B"}, got)
	assert.Equal(t, 3, res.Records[0].CountOrZero("NDRF"))
}

func TestJoin_CaseSensitive(t *testing.T) {
	res, err := Join(
		[]Feature{feature("lucknow")},
		[]DistrictRecord{row("Lucknow", 2, IntPtr(5), nil, nil)},
		DefaultCategories(), DuplicateError,
	)
	require.NoError(t, err)
	assert.False(t, res.Records[0].Matched)
	assert.Equal(t, []string{"lucknow"}, res.Unmatched)
	assert.Equal(t, []string{"Lucknow"}, res.Orphans)
}

func TestJoin_OrphansListedOnce(t *testing.T) {
	res, err := Join(
		[]Feature{feature("Agra")},
		[]DistrictRecord{
			row("Agra", 2, nil, nil, nil),
			row("Atlantis", 3, nil, nil, nil),
			row("Atlantis", 4, nil, nil, nil),
			row("Lemuria", 5, nil, nil, nil),
		},
		DefaultCategories(), DuplicateError,
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"Atlantis", "Lemuria"}, res.Orphans)
	assert.Zero(t, res.Duplicates)
}

func TestJoin_DuplicateRows(t *testing.T) {
	features := []Feature{feature("Varanasi")}
	rows := []DistrictRecord{
		row("Varanasi", 2, IntPtr(2), nil, IntPtr(1)),
		row("Varanasi", 3, IntPtr(7), nil, IntPtr(4)),
	}

	t.Run("first uses the first row only", func(t *testing.T) {
		res, err := Join(features, rows, DefaultCategories(), DuplicateFirst)
		require.NoError(t, err)
		require.Len(t, res.Records, 1)

		rec := res.Records[0]
		assert.Equal(t, 2, rec.CountOrZero("NDRF"))
		assert.Equal(t, 1, rec.CountOrZero("PAC"))
		_, ok := rec.Count("SDRF")
		assert.False(t, ok)
		assert.Equal(t, 2, rec.Rows)
		assert.Equal(t, 1, res.Duplicates)
	})

	t.Run("error fails the join", func(t *testing.T) {
		_, err := Join(features, rows, DefaultCategories(), DuplicateError)
		require.Error(t, err)

		var joinErr *JoinError
		require.True(t, errors.As(err, &joinErr))
		assert.Equal(t, "Varanasi", joinErr.District)
		assert.Equal(t, 2, joinErr.Matches)
		assert.Contains(t, err.Error(), "Varanasi")
	})

	t.Run("aggregate sums present values", func(t *testing.T) {
		res, err := Join(features, rows, DefaultCategories(), DuplicateAggregate)
		require.NoError(t, err)

		rec := res.Records[0]
		assert.Equal(t, 9, rec.CountOrZero("NDRF"))
		assert.Equal(t, 5, rec.CountOrZero("PAC"))
		_, ok := rec.Count("SDRF")
		assert.False(t, ok, "all-absent category stays absent")
	})

	t.Run("unknown policy behaves as error", func(t *testing.T) {
		_, err := Join(features, rows, DefaultCategories(), DuplicatePolicy("bogus"))
		var joinErr *JoinError
		assert.True(t, errors.As(err, &joinErr))
	})
}

func TestJoin_DoesNotAliasTableCounts(t *testing.T) {
	rows := []DistrictRecord{row("Agra", 2, IntPtr(1), nil, nil)}
	res, err := Join([]Feature{feature("Agra")}, rows, DefaultCategories(), DuplicateError)
	require.NoError(t, err)

	*res.Records[0].Counts["NDRF"] = 99
	assert.Equal(t, 1, *rows[0].Counts["NDRF"])
}

func TestParseDuplicatePolicy(t *testing.T) {
	cases := map[string]DuplicatePolicy{
		"first":       DuplicateFirst,
		"ERROR":       DuplicateError,
		" aggregate ": DuplicateAggregate,
	}
	for in, want := range cases {
		got, err := ParseDuplicatePolicy(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseDuplicatePolicy("last")
	assert.Error(t, err)
}
