// Command validate checks the two map inputs before a render: the unit-count
// table, the district geometry collection, and how well they join. It writes
// no map. Inputs are located the same way as for cmd/choropleth.
//
// Usage:
//
//	go run ./cmd/validate
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	geojsonadapter "github.com/couchcryptid/district-response-map/internal/adapter/geojson"
	"github.com/couchcryptid/district-response-map/internal/adapter/tabular"
	"github.com/couchcryptid/district-response-map/internal/config"
	"github.com/couchcryptid/district-response-map/internal/domain"
	"github.com/couchcryptid/district-response-map/internal/render"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load config: %v\n", err)
		os.Exit(1)
	}
	os.Exit(run(context.Background(), cfg, os.Stdout))
}

func run(ctx context.Context, cfg *config.Config, out io.Writer) int {
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	categories := cfg.Map.Categories

	fmt.Fprintln(out, "=== District Map Input Validation ===")
	fmt.Fprintln(out)

	rows, err := tabular.NewReader(cfg.TablePath, cfg.KeyColumn, categories, quiet).LoadTable(ctx)
	if err != nil {
		fmt.Fprintf(out, "FATAL: %v\n", err)
		return 1
	}
	geometry, err := geojsonadapter.NewReader(cfg.GeoJSONPath, cfg.NameProperty, quiet).LoadGeometry(ctx)
	if err != nil {
		fmt.Fprintf(out, "FATAL: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateTable(rows, categories),
		validateGeometry(geometry),
		validateCoverage(rows, geometry, categories),
	}

	return report(out, phases, len(rows), len(geometry.Features))
}

func report(out io.Writer, phases []*phase, rows, features int) int {
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(out, "  %-42s %s\n", p.name, status)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Inputs: %d table rows, %d geometry features\n", rows, features)

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(out, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(out, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(out, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(out, "\nValidation FAILED.")
	return 1
}

// ── Phase 1: Table Integrity ──

func validateTable(rows []domain.DistrictRecord, categories []domain.Category) *phase {
	p := &phase{name: "Phase 1: Table Integrity (CSV)"}

	firstLine := map[string]int{}
	for _, r := range rows {
		if r.District == "" {
			p.errorf("line %d: empty district name", r.Line)
			continue
		}
		if prev, ok := firstLine[r.District]; ok {
			p.errorf("line %d: district %q duplicates line %d", r.Line, r.District, prev)
		} else {
			firstLine[r.District] = r.Line
		}
		for _, c := range categories {
			if v := r.Counts[c.Name]; v != nil && *v < 0 {
				p.errorf("line %d: %s count %d is negative", r.Line, c.Name, *v)
			}
		}
	}
	return p
}

// ── Phase 2: Geometry Integrity ──

func validateGeometry(set domain.GeometrySet) *phase {
	p := &phase{name: "Phase 2: Geometry Integrity (GeoJSON)"}

	seen := map[string]int{}
	for i, f := range set.Features {
		if err := render.CheckPolygon(f.Geometry); err != nil {
			p.errorf("feature %d (%s): %v", i, f.District, err)
		}
		if prev, ok := seen[f.District]; ok {
			p.errorf("feature %d: district %q already used by feature %d", i, f.District, prev)
		} else {
			seen[f.District] = i
		}
	}
	return p
}

// ── Phase 3: Join Coverage ──

func validateCoverage(rows []domain.DistrictRecord, set domain.GeometrySet, categories []domain.Category) *phase {
	p := &phase{name: "Phase 3: Join Coverage (table vs geometry)"}

	joined, err := domain.Join(set.Features, rows, categories, domain.DuplicateFirst)
	if err != nil {
		p.errorf("join: %v", err)
		return p
	}
	for _, d := range joined.Unmatched {
		p.errorf("feature district %q has no table row", d)
	}
	for _, d := range joined.Orphans {
		p.errorf("table district %q has no feature", d)
	}
	return p
}
