package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/district-response-map/internal/domain"
	"github.com/couchcryptid/district-response-map/internal/observability"
	"github.com/couchcryptid/district-response-map/internal/render"
)

// TableLoader reads the district unit-count table.
type TableLoader interface {
	LoadTable(ctx context.Context) ([]domain.DistrictRecord, error)
}

// GeometryLoader reads the district geometry collection.
type GeometryLoader interface {
	LoadGeometry(ctx context.Context) (domain.GeometrySet, error)
}

// Exporter writes the assembled map to its destination.
type Exporter interface {
	Export(ctx context.Context, m *render.Map) error
}

// Result summarizes a completed run.
type Result struct {
	Records   []domain.MergedRecord
	Totals    domain.Totals
	Map       *render.Map
	Unmatched []string
	Orphans   []string
}

// Pipeline runs load, join, aggregate, render and export once, in order.
type Pipeline struct {
	table    TableLoader
	geometry GeometryLoader
	exporter Exporter
	mapCfg   domain.MapConfig
	policy   domain.DuplicatePolicy
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// New creates a Pipeline with the given stages and observability.
func New(t TableLoader, g GeometryLoader, e Exporter, mapCfg domain.MapConfig, policy domain.DuplicatePolicy, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		table:    t,
		geometry: g,
		exporter: e,
		mapCfg:   mapCfg,
		policy:   policy,
		logger:   logger,
		metrics:  metrics,
	}
}

// Run executes the pipeline. It stops at the first failing stage and returns
// that stage's error; the context is checked between stages.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	start := domain.Now()
	p.logger.Info("pipeline started", "duplicate_policy", p.policy)

	rows, err := p.table.LoadTable(ctx)
	if err != nil {
		return Result{}, p.fail("load", err)
	}
	p.metrics.RowsLoaded.Add(float64(len(rows)))

	geometry, err := p.geometry.LoadGeometry(ctx)
	if err != nil {
		return Result{}, p.fail("load", err)
	}
	p.metrics.FeaturesLoaded.Add(float64(len(geometry.Features)))

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	joined, err := domain.Join(geometry.Features, rows, p.mapCfg.Categories, p.policy)
	if err != nil {
		return Result{}, p.fail("join", err)
	}
	p.recordJoin(joined)

	totals := domain.Aggregate(joined.Records, p.mapCfg.Categories)
	for _, c := range p.mapCfg.Categories {
		p.metrics.CategoryTotal.WithLabelValues(c.Name).Set(float64(totals[c.Name]))
	}
	p.logger.Info("totals computed", "totals", totals)

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	m, err := render.Build(p.mapCfg, joined.Records, geometry, totals)
	if err != nil {
		return Result{}, p.fail("render", err)
	}
	for _, l := range m.Layers {
		p.metrics.ShapesRendered.WithLabelValues(l.Name).Add(float64(len(l.Shapes)))
		p.logger.Debug("layer built", "category", l.Name, "shapes", len(l.Shapes), "visible", l.Show)
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	if err := p.exporter.Export(ctx, m); err != nil {
		return Result{}, p.fail("write", err)
	}

	elapsed := domain.Since(start)
	p.metrics.RunDuration.Observe(elapsed.Seconds())
	p.metrics.LastSuccess.Set(float64(domain.Now().Unix()))
	p.logger.Info("pipeline finished", "features", len(joined.Records), "duration", elapsed)

	return Result{
		Records:   joined.Records,
		Totals:    totals,
		Map:       m,
		Unmatched: joined.Unmatched,
		Orphans:   joined.Orphans,
	}, nil
}

func (p *Pipeline) recordJoin(joined domain.JoinResult) {
	p.metrics.UnmatchedFeatures.Add(float64(len(joined.Unmatched)))
	p.metrics.OrphanRows.Add(float64(len(joined.Orphans)))
	p.metrics.DuplicateMatches.Add(float64(joined.Duplicates))

	if len(joined.Unmatched) > 0 {
		p.logger.Warn("features without table rows", "count", len(joined.Unmatched), "districts", joined.Unmatched)
	}
	if len(joined.Orphans) > 0 {
		p.logger.Warn("table rows without features", "count", len(joined.Orphans), "districts", joined.Orphans)
	}
	if joined.Duplicates > 0 {
		p.logger.Warn("districts matched several table rows", "count", joined.Duplicates, "policy", p.policy)
	}
	p.logger.Info("join complete", "records", len(joined.Records))
}

func (p *Pipeline) fail(stage string, err error) error {
	p.metrics.PipelineError.WithLabelValues(stage).Inc()
	return fmt.Errorf("%s stage: %w", stage, err)
}
