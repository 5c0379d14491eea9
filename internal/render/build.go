package render

import (
	"errors"
	"fmt"
	"html"
	"math"
	"strings"

	"github.com/couchcryptid/district-response-map/internal/domain"
	"github.com/paulmach/orb"
)

// Build assembles the map. Every record's geometry must be polygon data;
// the first one that is not fails the build with a *domain.RenderError.
func Build(cfg domain.MapConfig, records []domain.MergedRecord, geometry domain.GeometrySet, totals domain.Totals) (*Map, error) {
	m := &Map{
		Title:       cfg.Title,
		Center:      cfg.Center,
		Zoom:        cfg.Zoom,
		Tiles:       cfg.Tiles,
		Control:     LayerControl{Collapsed: false},
		Legend:      Legend{Title: "Legend"},
		GeneratedAt: domain.Now().UTC(),
		Boundary: Boundary{
			Raw:      geometry.Raw,
			Features: len(geometry.Features),
			Style:    domain.BoundaryStyle(),
		},
	}

	shapes := make([]orb.Geometry, len(records))
	for i, r := range records {
		g, err := polygonData(r.Geometry)
		if err != nil {
			return nil, &domain.RenderError{District: r.District, Err: err}
		}
		shapes[i] = g

		if m.HasBound {
			m.Bounds = m.Bounds.Union(g.Bound())
		} else {
			m.Bounds = g.Bound()
			m.HasBound = true
		}
	}

	for _, c := range cfg.Categories {
		layer := Layer{Name: c.Name, Show: c.DefaultVisible}
		style := domain.StyleFor(c)
		for i, r := range records {
			if !r.Has(c.Name) {
				continue
			}
			layer.Shapes = append(layer.Shapes, Shape{
				District: r.District,
				Geometry: shapes[i],
				Style:    style,
				Tooltip:  Tooltip(r, cfg.Categories),
			})
		}
		m.Layers = append(m.Layers, layer)
		m.Control.Overlays = append(m.Control.Overlays, c.Name)
		m.Legend.Entries = append(m.Legend.Entries, LegendEntry{
			Name:  c.Name,
			Color: c.Color,
			Total: totals[c.Name],
		})
	}

	return m, nil
}

// Tooltip renders the hover text for a district: its name followed by every
// category count, absent counts shown as 0.
func Tooltip(r domain.MergedRecord, categories []domain.Category) string {
	var b strings.Builder
	b.WriteString("<strong>")
	b.WriteString(html.EscapeString(r.District))
	b.WriteString("</strong>")
	for _, c := range categories {
		fmt.Fprintf(&b, "<br>%s: %d", html.EscapeString(c.Name), r.CountOrZero(c.Name))
	}
	return b.String()
}

// CheckPolygon reports why g cannot be drawn as a district shape, or nil.
func CheckPolygon(g orb.Geometry) error {
	_, err := polygonData(g)
	return err
}

// polygonData checks that g is a Polygon or MultiPolygon with usable rings
// and returns a copy with every ring closed.
func polygonData(g orb.Geometry) (orb.Geometry, error) {
	switch g := g.(type) {
	case nil:
		return nil, errors.New("missing geometry")
	case orb.Polygon:
		return closePolygon(g)
	case orb.MultiPolygon:
		if len(g) == 0 {
			return nil, errors.New("multipolygon has no polygons")
		}
		out := make(orb.MultiPolygon, len(g))
		for i, p := range g {
			cp, err := closePolygon(p)
			if err != nil {
				return nil, fmt.Errorf("polygon %d: %w", i, err)
			}
			out[i] = cp
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%s is not polygon data", g.GeoJSONType())
	}
}

func closePolygon(p orb.Polygon) (orb.Polygon, error) {
	if len(p) == 0 {
		return nil, errors.New("polygon has no rings")
	}
	out := make(orb.Polygon, len(p))
	for i, ring := range p {
		if len(ring) < 3 {
			return nil, fmt.Errorf("ring %d has %d positions, need at least 3", i, len(ring))
		}
		for _, pt := range ring {
			if !finite(pt[0]) || !finite(pt[1]) {
				return nil, fmt.Errorf("ring %d has a non-finite coordinate", i)
			}
		}
		closed := append(orb.Ring(nil), ring...)
		if !closed.Closed() {
			closed = append(closed, closed[0])
		}
		out[i] = closed
	}
	return out, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
