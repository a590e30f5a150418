// Package geometry converts analysis-area polygons into planar areas and
// derived shapes. All functions are pure; validation errors are reported via
// ErrInvalidGeometry and ErrAreaBounds.
package geometry

import (
	"math"

	"github.com/rotisserie/eris"
)

// KmPerDegree is the approximate length of one degree of latitude in
// kilometers. The flat-area fast path applies it to both axes, which is
// acceptable for small bounding boxes at mid-latitudes.
const KmPerDegree = 111.32

// DefaultMaxAreaKm2 is the largest analysis area accepted by bounds-checked
// operations.
const DefaultMaxAreaKm2 = 100.0

// ErrInvalidGeometry indicates a malformed or degenerate polygon.
var ErrInvalidGeometry = eris.New("geometry: invalid polygon")

// ErrAreaBounds indicates an analysis area over the configured maximum.
var ErrAreaBounds = eris.New("geometry: area exceeds maximum")

// Vertex is a single longitude/latitude pair.
type Vertex struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// BBox is a geographic bounding box.
type BBox struct {
	MinLon float64 `json:"min_lon"`
	MinLat float64 `json:"min_lat"`
	MaxLon float64 `json:"max_lon"`
	MaxLat float64 `json:"max_lat"`
}

// Polygon is a validated analysis area. The planar area is computed once at
// construction and never changes.
type Polygon struct {
	vertices []Vertex
	areaKm2  float64
}

// New validates the given vertices and constructs a Polygon. It requires at
// least three vertices, each within valid longitude/latitude range.
func New(vertices []Vertex) (*Polygon, error) {
	if len(vertices) < 3 {
		return nil, eris.Wrapf(ErrInvalidGeometry, "need at least 3 vertices, got %d", len(vertices))
	}
	for i, v := range vertices {
		if v.Lon < -180 || v.Lon > 180 {
			return nil, eris.Wrapf(ErrInvalidGeometry, "vertex %d: longitude %v out of range", i, v.Lon)
		}
		if v.Lat < -90 || v.Lat > 90 {
			return nil, eris.Wrapf(ErrInvalidGeometry, "vertex %d: latitude %v out of range", i, v.Lat)
		}
	}

	p := &Polygon{vertices: append([]Vertex(nil), vertices...)}
	p.areaKm2 = shoelaceKm2(p.vertices)
	return p, nil
}

// ProjectUTM recomputes the polygon's area with the UTM-projected variant.
// All downstream consumers of AreaKm2 see the projected value.
func (p *Polygon) ProjectUTM() *Polygon {
	p.areaKm2 = p.AreaKm2UTM()
	return p
}

// FromCoords constructs a Polygon from raw [lon, lat] pairs, the shape used
// by the JSON request contract. Pairs of the wrong length are rejected.
func FromCoords(coords [][]float64) (*Polygon, error) {
	vertices := make([]Vertex, 0, len(coords))
	for i, c := range coords {
		if len(c) != 2 {
			return nil, eris.Wrapf(ErrInvalidGeometry, "coordinate %d: expected [lon, lat], got %d values", i, len(c))
		}
		vertices = append(vertices, Vertex{Lon: c[0], Lat: c[1]})
	}
	return New(vertices)
}

// AreaKm2 returns the planar area of the polygon in km², computed via the
// shoelace formula on raw degrees and scaled by KmPerDegree on both axes.
func (p *Polygon) AreaKm2() float64 {
	return p.areaKm2
}

// Vertices returns a copy of the polygon's vertices in input order.
func (p *Polygon) Vertices() []Vertex {
	return append([]Vertex(nil), p.vertices...)
}

// Coords returns the polygon vertices as raw [lon, lat] pairs.
func (p *Polygon) Coords() [][]float64 {
	coords := make([][]float64, len(p.vertices))
	for i, v := range p.vertices {
		coords[i] = []float64{v.Lon, v.Lat}
	}
	return coords
}

// BoundingBox returns the min/max longitude and latitude of the polygon.
func (p *Polygon) BoundingBox() BBox {
	bb := BBox{
		MinLon: p.vertices[0].Lon, MaxLon: p.vertices[0].Lon,
		MinLat: p.vertices[0].Lat, MaxLat: p.vertices[0].Lat,
	}
	for _, v := range p.vertices[1:] {
		bb.MinLon = math.Min(bb.MinLon, v.Lon)
		bb.MaxLon = math.Max(bb.MaxLon, v.Lon)
		bb.MinLat = math.Min(bb.MinLat, v.Lat)
		bb.MaxLat = math.Max(bb.MaxLat, v.Lat)
	}
	return bb
}

// Centroid returns the arithmetic mean of the polygon's vertices.
func (p *Polygon) Centroid() Vertex {
	var lon, lat float64
	for _, v := range p.vertices {
		lon += v.Lon
		lat += v.Lat
	}
	n := float64(len(p.vertices))
	return Vertex{Lon: lon / n, Lat: lat / n}
}

// CheckBounds returns ErrAreaBounds when the polygon's area exceeds maxKm2.
// A non-positive maxKm2 falls back to DefaultMaxAreaKm2.
func (p *Polygon) CheckBounds(maxKm2 float64) error {
	if maxKm2 <= 0 {
		maxKm2 = DefaultMaxAreaKm2
	}
	if p.areaKm2 > maxKm2 {
		return eris.Wrapf(ErrAreaBounds, "area %.2f km² over limit %.2f km²", p.areaKm2, maxKm2)
	}
	return nil
}

// shoelaceKm2 applies the surveyor's formula to raw degree coordinates and
// converts squared degrees to km². Winding direction does not affect the
// result.
func shoelaceKm2(vertices []Vertex) float64 {
	n := len(vertices)
	var sum float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += vertices[i].Lon * vertices[j].Lat
		sum -= vertices[j].Lon * vertices[i].Lat
	}
	areaDeg2 := math.Abs(sum) / 2.0
	return areaDeg2 * KmPerDegree * KmPerDegree
}

// HaversineKm returns the great-circle distance between two points in
// kilometers.
func HaversineKm(a, b Vertex) float64 {
	const earthRadiusKm = 6371.0

	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}
