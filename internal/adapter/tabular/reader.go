package tabular

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/couchcryptid/district-response-map/internal/domain"
)

// DefaultKeyColumn is the header naming the district join key.
const DefaultKeyColumn = "District"

// Reader loads district unit counts from a CSV file.
// It implements pipeline.TableLoader.
type Reader struct {
	path       string
	keyColumn  string
	categories []domain.Category
	logger     *slog.Logger
}

// NewReader creates a Reader for path that expects keyColumn plus one column
// per category.
func NewReader(path, keyColumn string, categories []domain.Category, logger *slog.Logger) *Reader {
	return &Reader{
		path:       path,
		keyColumn:  keyColumn,
		categories: categories,
		logger:     logger,
	}
}

// LoadTable reads every data row. Any failure is returned as a *domain.LoadError.
func (r *Reader) LoadTable(_ context.Context) ([]domain.DistrictRecord, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, &domain.LoadError{Path: r.path, Err: err}
	}
	defer f.Close()

	records, err := Parse(f, r.keyColumn, r.categories)
	if err != nil {
		return nil, &domain.LoadError{Path: r.path, Err: err}
	}

	r.logger.Info("table loaded", "path", r.path, "rows", len(records))
	return records, nil
}

// Parse reads CSV from src. The header must contain keyColumn and every
// category name; other columns are ignored.
func Parse(src io.Reader, keyColumn string, categories []domain.Category) ([]domain.DistrictRecord, error) {
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("empty file: missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := indexHeader(header)
	keyIdx, ok := cols[keyColumn]
	if !ok {
		return nil, fmt.Errorf("missing required column %q", keyColumn)
	}
	catIdx := make(map[string]int, len(categories))
	for _, c := range categories {
		i, ok := cols[c.Name]
		if !ok {
			return nil, fmt.Errorf("missing required column %q", c.Name)
		}
		catIdx[c.Name] = i
	}

	var records []domain.DistrictRecord
	line := 1
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		line++

		rec := domain.DistrictRecord{
			District: cell(row, keyIdx),
			Counts:   make(map[string]*int, len(categories)),
			Line:     line,
		}
		for _, c := range categories {
			v, err := parseCount(cell(row, catIdx[c.Name]))
			if err != nil {
				return nil, fmt.Errorf("line %d column %q: %w", line, c.Name, err)
			}
			rec.Counts[c.Name] = v
		}
		records = append(records, rec)
	}

	return records, nil
}

func indexHeader(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		h = strings.TrimSpace(h)
		if _, dup := cols[h]; !dup {
			cols[h] = i
		}
	}
	return cols
}

// cell returns the trimmed value at i, or "" for short rows.
func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parseCount parses a unit count. Blank is absent; "5" and "5.0" are 5.
func parseCount(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err == nil {
		return &n, nil
	}
	if errors.Is(err, strconv.ErrRange) {
		return nil, fmt.Errorf("out of range: %q", s)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("not a number: %q", s)
	}
	if math.IsNaN(f) {
		return nil, nil
	}
	if math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil, fmt.Errorf("not a whole number: %q", s)
	}
	// float64(math.MaxInt) rounds up to 2^63, so the upper bound is exclusive.
	if f >= float64(math.MaxInt) || f < float64(math.MinInt) {
		return nil, fmt.Errorf("out of range: %q", s)
	}
	n = int(f)
	return &n, nil
}
