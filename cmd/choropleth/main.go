// Command choropleth joins district unit counts to district polygons and
// writes a standalone interactive map of NDRF, SDRF and PAC deployment.
//
// Usage:
//
//	go run ./cmd/choropleth
//
// Inputs and output default to data.csv, up_districts.geojson and
// up_ndrf_sdrf_pac_map_with_white_background.html in the working directory.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	geojsonadapter "github.com/couchcryptid/district-response-map/internal/adapter/geojson"
	htmladapter "github.com/couchcryptid/district-response-map/internal/adapter/html"
	"github.com/couchcryptid/district-response-map/internal/adapter/tabular"
	"github.com/couchcryptid/district-response-map/internal/config"
	"github.com/couchcryptid/district-response-map/internal/observability"
	"github.com/couchcryptid/district-response-map/internal/pipeline"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("map generation failed", "error", err)
		stop()
		os.Exit(1) //nolint:gocritic // stop already called
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)

	table := tabular.NewReader(cfg.TablePath, cfg.KeyColumn, cfg.Map.Categories, logger)
	geometry := geojsonadapter.NewReader(cfg.GeoJSONPath, cfg.NameProperty, logger)
	exporter := htmladapter.NewExporter(cfg.OutputPath, logger)

	p := pipeline.New(table, geometry, exporter, cfg.Map, cfg.DuplicatePolicy, logger, metrics)

	_, runErr := p.Run(ctx)

	if cfg.MetricsTextfile != "" {
		if err := observability.WriteTextfile(cfg.MetricsTextfile, reg); err != nil {
			logger.Warn("metrics textfile not written", "path", cfg.MetricsTextfile, "error", err)
		}
	}

	if runErr != nil {
		return runErr
	}

	fmt.Printf("Map saved to %s\n", exporter.Path())
	return nil
}
