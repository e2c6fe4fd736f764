// Package render draws a route on an interactive map and saves it as a
// standalone HTML page.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/kilianp07/routeeta/infra/logger"
)

// Coordinates is a WGS84 position.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Fallback endpoints used when a location label has no known coordinates.
var (
	DefaultStart = Coordinates{Lat: 41.8781, Lon: -87.6298} // Chicago
	DefaultEnd   = Coordinates{Lat: 42.3314, Lon: -83.0458} // Detroit
)

const zoom = 7

var page = template.Must(template.New("route").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Name}}</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<style>html, body, #map { height: 100%; margin: 0; }</style>
</head>
<body>
<div id="map"></div>
<script>
var map = L.map('map').setView([{{.Mid.Lat}}, {{.Mid.Lon}}], {{.Zoom}});
L.tileLayer('https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png', {attribution: '&copy; OpenStreetMap contributors'}).addTo(map);
L.circleMarker([{{.Start.Lat}}, {{.Start.Lon}}], {color: 'green'}).bindPopup({{printf "Start: %s" .Name}}).addTo(map);
L.circleMarker([{{.End.Lat}}, {{.End.Lon}}], {color: 'red'}).bindPopup({{printf "End: %s" .Name}}).addTo(map);
L.polyline([[{{.Start.Lat}}, {{.Start.Lon}}], [{{.End.Lat}}, {{.End.Lon}}]], {color: 'blue', weight: 2.5, opacity: 0.8}).addTo(map);
</script>
</body>
</html>
`))

// Renderer writes route maps into OutputDir.
type Renderer struct {
	OutputDir string
	Locations map[string]Coordinates
	log       logger.Logger
}

// New returns a Renderer writing to dir. Locations maps location labels to
// coordinates.
func New(dir string, locations map[string]Coordinates) *Renderer {
	if dir == "" {
		dir = "."
	}
	return &Renderer{OutputDir: dir, Locations: locations, log: logger.New("render")}
}

// Resolve returns the coordinates of both labels, falling back to the
// defaults for unknown ones.
func (r *Renderer) Resolve(start, end string) (Coordinates, Coordinates) {
	s, ok := r.lookup(start)
	if !ok {
		s = DefaultStart
	}
	e, ok := r.lookup(end)
	if !ok {
		e = DefaultEnd
	}
	return s, e
}

func (r *Renderer) lookup(label string) (Coordinates, bool) {
	if c, ok := r.Locations[label]; ok {
		return c, true
	}
	for k, c := range r.Locations {
		if strings.EqualFold(k, label) {
			return c, true
		}
	}
	return Coordinates{}, false
}

// FileName returns the artifact name for routeID.
func FileName(routeID string) string {
	safe := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == os.PathSeparator {
			return '_'
		}
		return r
	}, routeID)
	return fmt.Sprintf("route_%s.html", safe)
}

// Render writes the map for routeID and returns the file path.
func (r *Renderer) Render(routeID string, start, end Coordinates, name string) (string, error) {
	var buf bytes.Buffer
	err := page.Execute(&buf, struct {
		Name       string
		Start, End Coordinates
		Mid        Coordinates
		Zoom       int
	}{
		Name:  name,
		Start: start,
		End:   end,
		Mid:   Coordinates{Lat: (start.Lat + end.Lat) / 2, Lon: (start.Lon + end.Lon) / 2},
		Zoom:  zoom,
	})
	if err != nil {
		return "", fmt.Errorf("render %s: %w", routeID, err)
	}
	if err := os.MkdirAll(r.OutputDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(r.OutputDir, FileName(routeID))
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", err
	}
	r.log.Infof("Route visualization saved as %s", path)
	return path, nil
}
