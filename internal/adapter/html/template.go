package html

import "html/template"

var pageTemplate = template.Must(template.New("map").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1.0" />
  <meta name="generator" content="district-response-map" />
  <meta name="generated-at" content="{{.GeneratedAt}}" />
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css" />
  <script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
  <style>
    html, body { height: 100%; margin: 0; padding: 0; }
    #map { position: absolute; top: 0; bottom: 0; left: 0; right: 0; }
    .legend {
      position: fixed; bottom: 50px; left: 50px; width: 250px;
      background-color: white; z-index: 9999; font-size: 14px;
      border: 2px solid grey; padding: 10px; font-family: sans-serif;
    }
    .legend h4 { margin-top: 0; }
    .legend .swatch { width: 18px; height: 18px; display: inline-block; vertical-align: middle; margin-right: 4px; }
  </style>
</head>
<body>
  <div id="map"></div>
  <div class="legend" id="legend">
    <h4>{{.Legend.Title}}</h4>
    {{- range .Legend.Entries}}
    <div class="legend-entry" data-category="{{.Name}}"><i class="swatch" style="background: {{.Color}};"></i> {{.Name}} (Total: {{.Total}})</div>
    {{- end}}
  </div>
  <script>
    var cfg = {{.Data}};

    var map = L.map('map', { center: cfg.center, zoom: cfg.zoom });
    L.tileLayer(cfg.tiles.url, {
      attribution: cfg.tiles.attribution,
      subdomains: cfg.tiles.subdomains,
      maxZoom: cfg.tiles.maxZoom
    }).addTo(map);

    var overlays = {};
    cfg.layers.forEach(function (layer) {
      var group = L.featureGroup();
      L.geoJSON(layer.features, {
        style: function (feature) { return feature.properties.style; },
        onEachFeature: function (feature, shape) {
          shape.bindTooltip(feature.properties.tooltip, { sticky: true });
        }
      }).addTo(group);
      if (layer.show) {
        group.addTo(map);
      }
      overlays[layer.name] = group;
    });

    map.createPane('boundary');
    map.getPane('boundary').style.zIndex = 450;
    map.getPane('boundary').style.pointerEvents = 'none';
    L.geoJSON(cfg.boundary, {
      pane: 'boundary',
      interactive: false,
      style: function () { return cfg.boundaryStyle; }
    }).addTo(map);

    L.control.layers(null, overlays, { collapsed: cfg.collapsed }).addTo(map);
  </script>
</body>
</html>
`))
