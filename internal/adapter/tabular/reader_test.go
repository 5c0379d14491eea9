package tabular

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/couchcryptid/district-response-map/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeCSV(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestReader_LoadTable(t *testing.T) {
	path := writeCSV(t, "District,NDRF,SDRF,PAC,Notes\nLucknow,5,0,,capital\nKanpur, 2 ,1.0,3,\n")
	r := NewReader(path, DefaultKeyColumn, domain.DefaultCategories(), discardLogger())

	rows, err := r.LoadTable(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	lucknow := rows[0]
	assert.Equal(t, "Lucknow", lucknow.District)
	assert.Equal(t, 2, lucknow.Line)
	require.NotNil(t, lucknow.Counts["NDRF"])
	assert.Equal(t, 5, *lucknow.Counts["NDRF"])
	require.NotNil(t, lucknow.Counts["SDRF"])
	assert.Equal(t, 0, *lucknow.Counts["SDRF"])
	assert.Nil(t, lucknow.Counts["PAC"])

	kanpur := rows[1]
	assert.Equal(t, 3, kanpur.Line)
	assert.Equal(t, 2, *kanpur.Counts["NDRF"])
	assert.Equal(t, 1, *kanpur.Counts["SDRF"])
	assert.Equal(t, 3, *kanpur.Counts["PAC"])
}

func TestReader_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.csv")
	r := NewReader(path, DefaultKeyColumn, domain.DefaultCategories(), discardLogger())

	_, err := r.LoadTable(context.Background())
	require.Error(t, err)

	var loadErr *domain.LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, path, loadErr.Path)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestReader_MissingKeyColumn(t *testing.T) {
	path := writeCSV(t, "Name,NDRF,SDRF,PAC\nLucknow,1,2,3\n")
	r := NewReader(path, DefaultKeyColumn, domain.DefaultCategories(), discardLogger())

	_, err := r.LoadTable(context.Background())
	var loadErr *domain.LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Contains(t, err.Error(), `"District"`)
}

func TestParse(t *testing.T) {
	cats := domain.DefaultCategories()

	t.Run("missing category column", func(t *testing.T) {
		_, err := Parse(strings.NewReader("District,NDRF,SDRF\nA,1,2\n"), DefaultKeyColumn, cats)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"PAC"`)
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := Parse(strings.NewReader(""), DefaultKeyColumn, cats)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "header")
	})

	t.Run("header only", func(t *testing.T) {
		rows, err := Parse(strings.NewReader("District,NDRF,SDRF,PAC\n"), DefaultKeyColumn, cats)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("byte order mark and padded header", func(t *testing.T) {
		rows, err := Parse(strings.NewReader("\ufeffDistrict , NDRF,SDRF,PAC\nAgra,1,,\n"), DefaultKeyColumn, cats)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Agra", rows[0].District)
	})

	t.Run("short row treats missing cells as blank", func(t *testing.T) {
		rows, err := Parse(strings.NewReader("District,NDRF,SDRF,PAC\nAgra,4\n"), DefaultKeyColumn, cats)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, 4, *rows[0].Counts["NDRF"])
		assert.Nil(t, rows[0].Counts["SDRF"])
		assert.Nil(t, rows[0].Counts["PAC"])
	})

	t.Run("duplicate districts are kept in order", func(t *testing.T) {
		rows, err := Parse(strings.NewReader("District,NDRF,SDRF,PAC\nVaranasi,1,,\nVaranasi,2,,\n"), DefaultKeyColumn, cats)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, 1, *rows[0].Counts["NDRF"])
		assert.Equal(t, 2, *rows[1].Counts["NDRF"])
	})

	t.Run("non-numeric count", func(t *testing.T) {
		_, err := Parse(strings.NewReader("District,NDRF,SDRF,PAC\nAgra,many,,\n"), DefaultKeyColumn, cats)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 2")
		assert.Contains(t, err.Error(), `"NDRF"`)
	})

	t.Run("fractional count", func(t *testing.T) {
		_, err := Parse(strings.NewReader("District,NDRF,SDRF,PAC\nAgra,1.5,,\n"), DefaultKeyColumn, cats)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "whole number")
	})
}

func TestParse_CountOutOfRange(t *testing.T) {
	_, err := Parse(strings.NewReader("District,NDRF,SDRF,PAC\nAgra,1e19,,\n"), DefaultKeyColumn, domain.DefaultCategories())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `line 2 column "NDRF"`)
	assert.Contains(t, err.Error(), "out of range")
}

func TestParseCount(t *testing.T) {
	cases := []struct {
		in      string
		want    *int
		wantErr bool
	}{
		{in: "", want: nil},
		{in: "0", want: domain.IntPtr(0)},
		{in: "12", want: domain.IntPtr(12)},
		{in: "-3", want: domain.IntPtr(-3)},
		{in: "7.0", want: domain.IntPtr(7)},
		{in: "NaN", want: nil},
		{in: "2.25", wantErr: true},
		{in: "Inf", wantErr: true},
		{in: "x", wantErr: true},
		{in: "1e19", wantErr: true},
		{in: "-1e19", wantErr: true},
		{in: "99999999999999999999", wantErr: true},
		{in: "1e3", want: domain.IntPtr(1000)},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := parseCount(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
