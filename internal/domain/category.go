package domain

// Category is a tracked unit type rendered as its own map layer.
type Category struct {
	Name           string
	Color          string
	DefaultVisible bool
}

// Style describes how a district shape is drawn in a category layer.
type Style struct {
	FillColor   string  `json:"fillColor"`
	Color       string  `json:"color"`
	Weight      float64 `json:"weight"`
	FillOpacity float64 `json:"fillOpacity"`
}

const (
	outlineColor  = "black"
	outlineWeight = 1.5
)

// DefaultCategories returns the tracked categories in legend order.
func DefaultCategories() []Category {
	return []Category{
		{Name: "NDRF", Color: "red", DefaultVisible: true},
		{Name: "SDRF", Color: "green"},
		{Name: "PAC", Color: "yellow"},
	}
}

// StyleFor returns the fill style for a shape in the given category's layer.
func StyleFor(c Category) Style {
	return Style{
		FillColor:   c.Color,
		Color:       outlineColor,
		Weight:      outlineWeight,
		FillOpacity: 1.0,
	}
}

// BoundaryStyle is the outline-only style of the district boundary overlay.
func BoundaryStyle() Style {
	return Style{
		Color:       outlineColor,
		Weight:      2,
		FillOpacity: 0,
	}
}

// LatLon is a WGS-84 coordinate in Leaflet's (lat, lon) order.
type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// TileLayer is the base map raster source.
type TileLayer struct {
	URL         string `json:"url"`
	Attribution string `json:"attribution"`
	Subdomains  string `json:"subdomains"`
	MaxZoom     int    `json:"maxZoom"`
}

// MapConfig holds the fixed presentation settings handed to the renderer.
// Treat it as immutable once built.
type MapConfig struct {
	Title      string
	Center     LatLon
	Zoom       int
	Tiles      TileLayer
	Categories []Category
}

// DefaultMapConfig centers on Uttar Pradesh over a label-free light basemap.
func DefaultMapConfig() MapConfig {
	return MapConfig{
		Title:  "NDRF, SDRF and PAC deployment by district",
		Center: LatLon{Lat: 26.8467, Lon: 80.9462},
		Zoom:   7,
		Tiles: TileLayer{
			URL:         "https://{s}.basemaps.cartocdn.com/light_nolabels/{z}/{x}/{y}{r}.png",
			Attribution: `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors &copy; <a href="https://carto.com/attributions">CARTO</a>`,
			Subdomains:  "abcd",
			MaxZoom:     20,
		},
		Categories: DefaultCategories(),
	}
}

// CategoryNames lists the category labels in order.
func CategoryNames(categories []Category) []string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.Name
	}
	return names
}
