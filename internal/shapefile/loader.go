// Package shapefile loads development site polygons from ESRI shapefiles
// for batch assessment runs.
package shapefile

import (
	"fmt"
	"strings"

	shp "github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/urbanlens/envirocast/internal/geometry"
)

// Site is one polygon record read from a shapefile, with an optional
// name attribute.
type Site struct {
	Name    string
	Polygon *geometry.Polygon
}

// nameFields are attribute names probed, in order, for a site label.
var nameFields = []string{"NAME", "SITE_NAME", "LABEL", "ID"}

// LoadSites reads every polygon record from the shapefile at path.
// Non-polygon shapes and degenerate rings are skipped with a warning.
func LoadSites(path string) ([]Site, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "shapefile: open")
	}
	defer func() { _ = reader.Close() }()

	log := zap.L().With(zap.String("component", "shapefile.loader"), zap.String("path", path))

	nameIdx := -1
	for _, field := range nameFields {
		if nameIdx = fieldIndex(reader, field); nameIdx >= 0 {
			break
		}
	}

	var sites []Site
	for reader.Next() {
		n, shape := reader.Shape()
		if shape == nil {
			continue
		}

		poly, ok := shape.(*shp.Polygon)
		if !ok {
			log.Warn("skipping non-polygon shape", zap.Int("record", n))
			continue
		}

		vertices := outerRingVertices(poly)
		if len(vertices) < 3 {
			log.Warn("skipping degenerate polygon", zap.Int("record", n))
			continue
		}

		g, err := geometry.New(vertices)
		if err != nil {
			log.Warn("skipping invalid polygon", zap.Int("record", n), zap.Error(err))
			continue
		}

		name := fmt.Sprintf("site-%d", n)
		if nameIdx >= 0 {
			if attr := strings.TrimSpace(reader.Attribute(nameIdx)); attr != "" {
				name = attr
			}
		}
		sites = append(sites, Site{Name: name, Polygon: g})
	}

	if len(sites) == 0 {
		return nil, eris.New("shapefile: no polygon records found")
	}
	log.Info("loaded sites", zap.Int("count", len(sites)))
	return sites, nil
}

// outerRingVertices returns the first ring of the polygon with the
// closing vertex dropped.
func outerRingVertices(p *shp.Polygon) []geometry.Vertex {
	if len(p.Points) == 0 {
		return nil
	}
	end := len(p.Points)
	if len(p.Parts) > 1 {
		end = int(p.Parts[1])
	}
	points := p.Points[:end]
	if len(points) > 1 && points[0] == points[len(points)-1] {
		points = points[:len(points)-1]
	}

	vertices := make([]geometry.Vertex, 0, len(points))
	for _, pt := range points {
		vertices = append(vertices, geometry.Vertex{Lon: pt.X, Lat: pt.Y})
	}
	return vertices
}

func fieldIndex(reader *shp.Reader, name string) int {
	for i, f := range reader.Fields() {
		if strings.EqualFold(strings.TrimRight(f.String(), "\x00"), name) {
			return i
		}
	}
	return -1
}
