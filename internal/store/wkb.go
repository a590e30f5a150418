package store

import (
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/ewkb"

	"github.com/urbanlens/envirocast/internal/geometry"
)

// EncodeAreaWKB converts an analysis polygon to EWKB bytes with SRID 4326.
func EncodeAreaWKB(poly *geometry.Polygon) ([]byte, error) {
	if poly == nil {
		return nil, nil
	}

	vertices := poly.Vertices()
	flat := make([]float64, 0, (len(vertices)+1)*2)
	for _, v := range vertices {
		flat = append(flat, v.Lon, v.Lat)
	}
	// Close the ring.
	flat = append(flat, vertices[0].Lon, vertices[0].Lat)

	g := geom.NewPolygonFlat(geom.XY, flat, []int{len(flat)}).SetSRID(4326)

	data, err := ewkb.Marshal(g, ewkb.NDR)
	if err != nil {
		return nil, eris.Wrap(err, "store: encode WKB")
	}
	return data, nil
}

// DecodeAreaWKB converts EWKB bytes back to an analysis polygon. The
// closing vertex of the ring is dropped.
func DecodeAreaWKB(data []byte) (*geometry.Polygon, error) {
	if len(data) == 0 {
		return nil, nil
	}

	g, err := ewkb.Unmarshal(data)
	if err != nil {
		return nil, eris.Wrap(err, "store: decode WKB")
	}

	pg, ok := g.(*geom.Polygon)
	if !ok {
		return nil, eris.Errorf("store: unexpected geometry type %T", g)
	}

	ring := pg.LinearRing(0)
	n := ring.NumCoords()
	if n > 1 {
		n-- // closing vertex
	}
	vertices := make([]geometry.Vertex, 0, n)
	for i := 0; i < n; i++ {
		c := ring.Coord(i)
		vertices = append(vertices, geometry.Vertex{Lon: c.X(), Lat: c.Y()})
	}

	poly, err := geometry.New(vertices)
	if err != nil {
		return nil, eris.Wrap(err, "store: rebuild polygon")
	}
	return poly, nil
}
