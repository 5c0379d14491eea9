package html

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/couchcryptid/district-response-map/internal/domain"
	"github.com/couchcryptid/district-response-map/internal/render"
	orbjson "github.com/paulmach/orb/geojson"
)

// Exporter writes a rendered map as a standalone Leaflet HTML page.
// It implements pipeline.Exporter.
type Exporter struct {
	path   string
	logger *slog.Logger
}

// NewExporter creates an Exporter that writes to path, replacing any existing file.
func NewExporter(path string, logger *slog.Logger) *Exporter {
	return &Exporter{path: path, logger: logger}
}

// Path returns the output file path.
func (e *Exporter) Path() string { return e.path }

// Export serializes m and writes it to the output path. Write failures are
// returned as *domain.WriteError.
func (e *Exporter) Export(_ context.Context, m *render.Map) error {
	var buf bytes.Buffer
	if err := Render(&buf, m); err != nil {
		return err
	}
	if err := os.WriteFile(e.path, buf.Bytes(), 0o644); err != nil { //nolint:gosec // output is a public web page
		return &domain.WriteError{Path: e.path, Err: err}
	}
	e.logger.Info("map written", "path", e.path, "bytes", buf.Len())
	return nil
}

// mapData is the JSON document the page script reads.
type mapData struct {
	Center        [2]float64       `json:"center"`
	Zoom          int              `json:"zoom"`
	Tiles         domain.TileLayer `json:"tiles"`
	Layers        []layerData      `json:"layers"`
	Boundary      json.RawMessage  `json:"boundary"`
	BoundaryStyle domain.Style     `json:"boundaryStyle"`
	Collapsed     bool             `json:"collapsed"`
}

type layerData struct {
	Name     string          `json:"name"`
	Show     bool            `json:"show"`
	Features json.RawMessage `json:"features"`
}

// Render writes the HTML document for m to w.
func Render(w io.Writer, m *render.Map) error {
	data, err := encodeMapData(m)
	if err != nil {
		return err
	}

	return pageTemplate.Execute(w, struct {
		Title       string
		GeneratedAt string
		Legend      render.Legend
		Data        template.JS
	}{
		Title:       m.Title,
		GeneratedAt: m.GeneratedAt.Format(time.RFC3339),
		Legend:      m.Legend,
		Data:        data,
	})
}

// encodeMapData marshals the script payload. encoding/json escapes <, > and &
// inside strings and raw messages, so the result is safe inside <script>.
func encodeMapData(m *render.Map) (template.JS, error) {
	md := mapData{
		Center:        [2]float64{m.Center.Lat, m.Center.Lon},
		Zoom:          m.Zoom,
		Tiles:         m.Tiles,
		Layers:        make([]layerData, 0, len(m.Layers)),
		Boundary:      m.Boundary.Raw,
		BoundaryStyle: m.Boundary.Style,
		Collapsed:     m.Control.Collapsed,
	}
	if len(md.Boundary) == 0 {
		md.Boundary = json.RawMessage(`{"type":"FeatureCollection","features":[]}`)
	}

	for _, l := range m.Layers {
		fc := orbjson.NewFeatureCollection()
		for _, s := range l.Shapes {
			f := orbjson.NewFeature(s.Geometry)
			f.Properties["district"] = s.District
			f.Properties["tooltip"] = s.Tooltip
			f.Properties["style"] = s.Style
			fc.Append(f)
		}
		features, err := fc.MarshalJSON()
		if err != nil {
			return "", fmt.Errorf("encode %s layer: %w", l.Name, err)
		}
		md.Layers = append(md.Layers, layerData{Name: l.Name, Show: l.Show, Features: features})
	}

	b, err := json.Marshal(md)
	if err != nil {
		return "", fmt.Errorf("encode map data: %w", err)
	}
	return template.JS(b), nil //nolint:gosec // json.Marshal output with HTML escaping
}
