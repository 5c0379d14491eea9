package geojson

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/couchcryptid/district-response-map/internal/domain"
	orbjson "github.com/paulmach/orb/geojson"
)

// DefaultNameProperty is the feature property holding the district name.
const DefaultNameProperty = "district"

// Reader loads district geometries from a GeoJSON FeatureCollection.
// It implements pipeline.GeometryLoader.
type Reader struct {
	path         string
	nameProperty string
	logger       *slog.Logger
}

// NewReader creates a Reader for path that takes district names from nameProperty.
func NewReader(path, nameProperty string, logger *slog.Logger) *Reader {
	return &Reader{path: path, nameProperty: nameProperty, logger: logger}
}

// LoadGeometry reads and parses the collection. Any failure is returned as a
// *domain.LoadError.
func (r *Reader) LoadGeometry(_ context.Context) (domain.GeometrySet, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return domain.GeometrySet{}, &domain.LoadError{Path: r.path, Err: err}
	}

	set, err := Parse(data, r.nameProperty)
	if err != nil {
		return domain.GeometrySet{}, &domain.LoadError{Path: r.path, Err: err}
	}

	r.logger.Info("geometry loaded", "path", r.path, "features", len(set.Features))
	return set, nil
}

// Parse decodes a FeatureCollection document, preserving feature order.
func Parse(data []byte, nameProperty string) (domain.GeometrySet, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return domain.GeometrySet{}, fmt.Errorf("decode feature collection: %w", err)
	}
	members, ok := probe["features"]
	if !ok {
		return domain.GeometrySet{}, errors.New(`feature collection has no "features" member`)
	}
	if trimmed := bytes.TrimSpace(members); len(trimmed) == 0 || trimmed[0] != '[' {
		return domain.GeometrySet{}, errors.New(`feature collection "features" member is not an array`)
	}

	fc, err := orbjson.UnmarshalFeatureCollection(data)
	if err != nil {
		return domain.GeometrySet{}, fmt.Errorf("decode feature collection: %w", err)
	}

	features := make([]domain.Feature, 0, len(fc.Features))
	for i, f := range fc.Features {
		if f == nil || f.Geometry == nil {
			return domain.GeometrySet{}, fmt.Errorf("feature %d: missing geometry", i)
		}
		raw, ok := f.Properties[nameProperty]
		if !ok {
			return domain.GeometrySet{}, fmt.Errorf("feature %d: missing %q property", i, nameProperty)
		}
		name, ok := raw.(string)
		if !ok {
			return domain.GeometrySet{}, fmt.Errorf("feature %d: %q property is %T, want string", i, nameProperty, raw)
		}
		features = append(features, domain.Feature{
			District:   name,
			Geometry:   f.Geometry,
			Properties: map[string]any(f.Properties),
		})
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, data); err != nil {
		return domain.GeometrySet{}, fmt.Errorf("compact feature collection: %w", err)
	}

	return domain.GeometrySet{Features: features, Raw: compact.Bytes()}, nil
}
