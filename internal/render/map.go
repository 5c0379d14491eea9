// Package render assembles the choropleth map model from joined district
// records: a base layer, one overlay per category, a boundary overlay, a
// layer control and a legend. Serialization lives in the html adapter.
package render

import (
	"encoding/json"
	"time"

	"github.com/couchcryptid/district-response-map/internal/domain"
	"github.com/paulmach/orb"
)

// Map is the fully assembled, format-independent map.
type Map struct {
	Title    string
	Center   domain.LatLon
	Zoom     int
	Tiles    domain.TileLayer
	Bounds   orb.Bound
	HasBound bool

	Layers   []Layer
	Boundary Boundary
	Control  LayerControl
	Legend   Legend

	GeneratedAt time.Time
}

// Layer is a toggleable overlay for one category.
type Layer struct {
	Name   string
	Show   bool
	Shapes []Shape
}

// Shape is one filled district polygon with its hover tooltip.
type Shape struct {
	District string
	Geometry orb.Geometry
	Style    domain.Style
	Tooltip  string
}

// Boundary is the outline overlay of every input feature.
type Boundary struct {
	Raw      json.RawMessage
	Features int
	Style    domain.Style
}

// LayerControl lists the overlays the viewer can toggle.
type LayerControl struct {
	Collapsed bool
	Overlays  []string
}

// Legend is the fixed lower-left panel.
type Legend struct {
	Title   string
	Entries []LegendEntry
}

// LegendEntry is one category row in the legend.
type LegendEntry struct {
	Name  string
	Color string
	Total int
}

// Districts returns the district names drawn in the layer, in draw order.
func (l Layer) Districts() []string {
	names := make([]string, len(l.Shapes))
	for i, s := range l.Shapes {
		names[i] = s.District
	}
	return names
}

// Layer returns the overlay for a category name.
func (m *Map) Layer(name string) (Layer, bool) {
	for _, l := range m.Layers {
		if l.Name == name {
			return l, true
		}
	}
	return Layer{}, false
}
