package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/couchcryptid/district-response-map/internal/domain"
	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Default input and output paths, relative to the working directory.
const (
	DefaultTablePath   = "data.csv"
	DefaultGeoJSONPath = "up_districts.geojson"
	DefaultOutputPath  = "up_ndrf_sdrf_pac_map_with_white_background.html"
)

// Config holds run settings. Every field has a build-time default; the
// environment may override them.
type Config struct {
	TablePath    string
	GeoJSONPath  string
	OutputPath   string
	KeyColumn    string
	NameProperty string

	DuplicatePolicy domain.DuplicatePolicy

	LogLevel  string
	LogFormat string

	// MetricsTextfile, when set, receives a Prometheus text dump after the run.
	MetricsTextfile string

	Map domain.MapConfig
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	policy, err := domain.ParseDuplicatePolicy(sharedcfg.EnvOrDefault("DUPLICATE_POLICY", string(domain.DuplicateError)))
	if err != nil {
		return nil, fmt.Errorf("invalid DUPLICATE_POLICY: %w", err)
	}

	logFormat := strings.ToLower(sharedcfg.EnvOrDefault("LOG_FORMAT", "json"))
	if logFormat != "json" && logFormat != "text" {
		return nil, fmt.Errorf("invalid LOG_FORMAT %q (want json or text)", logFormat)
	}

	cfg := &Config{
		TablePath:       sharedcfg.EnvOrDefault("CHOROPLETH_TABLE_PATH", DefaultTablePath),
		GeoJSONPath:     sharedcfg.EnvOrDefault("CHOROPLETH_GEOJSON_PATH", DefaultGeoJSONPath),
		OutputPath:      sharedcfg.EnvOrDefault("CHOROPLETH_OUTPUT_PATH", DefaultOutputPath),
		KeyColumn:       "District",
		NameProperty:    "district",
		DuplicatePolicy: policy,
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       logFormat,
		MetricsTextfile: sharedcfg.EnvOrDefault("METRICS_TEXTFILE", ""),
		Map:             domain.DefaultMapConfig(),
	}

	if strings.TrimSpace(cfg.TablePath) == "" {
		return nil, errors.New("CHOROPLETH_TABLE_PATH is required")
	}
	if strings.TrimSpace(cfg.GeoJSONPath) == "" {
		return nil, errors.New("CHOROPLETH_GEOJSON_PATH is required")
	}
	if strings.TrimSpace(cfg.OutputPath) == "" {
		return nil, errors.New("CHOROPLETH_OUTPUT_PATH is required")
	}

	return cfg, nil
}
