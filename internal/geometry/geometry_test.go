package geometry

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// square returns a d×d degree square with its southwest corner at (lon, lat).
func square(lon, lat, d float64) []Vertex {
	return []Vertex{
		{Lon: lon, Lat: lat},
		{Lon: lon + d, Lat: lat},
		{Lon: lon + d, Lat: lat + d},
		{Lon: lon, Lat: lat + d},
	}
}

func TestNewValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		vertices []Vertex
		wantErr  bool
	}{
		{name: "valid triangle", vertices: []Vertex{{0, 0}, {1, 0}, {0, 1}}},
		{name: "valid square", vertices: square(-74.0, 40.7, 0.01)},
		{name: "too few points", vertices: []Vertex{{0, 0}, {1, 1}}, wantErr: true},
		{name: "empty", vertices: nil, wantErr: true},
		{name: "longitude too large", vertices: []Vertex{{181, 0}, {1, 0}, {0, 1}}, wantErr: true},
		{name: "longitude too small", vertices: []Vertex{{-180.5, 0}, {1, 0}, {0, 1}}, wantErr: true},
		{name: "latitude too large", vertices: []Vertex{{0, 91}, {1, 0}, {0, 1}}, wantErr: true},
		{name: "latitude too small", vertices: []Vertex{{0, -90.1}, {1, 0}, {0, 1}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p, err := New(tt.vertices)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, eris.Is(err, ErrInvalidGeometry))
				assert.Nil(t, p)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, p)
		})
	}
}

func TestAreaKm2(t *testing.T) {
	t.Parallel()

	// 0.01° × 0.01° square: 0.0001 deg² × 111.32² ≈ 1.2392 km².
	p, err := New(square(0, 0, 0.01))
	require.NoError(t, err)
	assert.InDelta(t, 0.0001*KmPerDegree*KmPerDegree, p.AreaKm2(), 1e-9)

	// Area is non-negative and invariant under vertex-order reversal.
	v := square(-74.0, 40.7, 0.05)
	reversed := make([]Vertex, len(v))
	for i := range v {
		reversed[i] = v[len(v)-1-i]
	}
	fwd, err := New(v)
	require.NoError(t, err)
	rev, err := New(reversed)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, fwd.AreaKm2(), 0.0)
	assert.InDelta(t, fwd.AreaKm2(), rev.AreaKm2(), 1e-12)
}

func TestFromCoords(t *testing.T) {
	t.Parallel()

	p, err := FromCoords([][]float64{{0, 0}, {0.01, 0}, {0.01, 0.01}, {0, 0.01}})
	require.NoError(t, err)
	assert.Len(t, p.Vertices(), 4)
	assert.Equal(t, [][]float64{{0, 0}, {0.01, 0}, {0.01, 0.01}, {0, 0.01}}, p.Coords())

	_, err = FromCoords([][]float64{{0, 0, 5}, {1, 0}, {0, 1}})
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrInvalidGeometry))
}

func TestBoundingBox(t *testing.T) {
	t.Parallel()

	p, err := New([]Vertex{{-74.0059, 40.7128}, {-74.0059, 40.7589}, {-73.9352, 40.7589}, {-73.9352, 40.7128}})
	require.NoError(t, err)

	bb := p.BoundingBox()
	assert.Equal(t, -74.0059, bb.MinLon)
	assert.Equal(t, -73.9352, bb.MaxLon)
	assert.Equal(t, 40.7128, bb.MinLat)
	assert.Equal(t, 40.7589, bb.MaxLat)
}

func TestCentroid(t *testing.T) {
	t.Parallel()

	p, err := New(square(10, 20, 2))
	require.NoError(t, err)
	c := p.Centroid()
	assert.InDelta(t, 11.0, c.Lon, 1e-9)
	assert.InDelta(t, 21.0, c.Lat, 1e-9)
}

func TestCheckBounds(t *testing.T) {
	t.Parallel()

	small, err := New(square(0, 0, 0.01))
	require.NoError(t, err)
	assert.NoError(t, small.CheckBounds(100))
	assert.NoError(t, small.CheckBounds(0)) // falls back to default max

	// A 0.5° square is ~3,098 km², well over the 100 km² default.
	big, err := New(square(0, 0, 0.5))
	require.NoError(t, err)
	err = big.CheckBounds(0)
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrAreaBounds))
}

func TestHaversineKm(t *testing.T) {
	t.Parallel()

	// One degree of latitude is ~111.19 km on the sphere.
	d := HaversineKm(Vertex{Lon: 0, Lat: 0}, Vertex{Lon: 0, Lat: 1})
	assert.InDelta(t, 111.19, d, 0.5)

	// Zero distance.
	assert.InDelta(t, 0, HaversineKm(Vertex{Lon: 5, Lat: 5}, Vertex{Lon: 5, Lat: 5}), 1e-9)
}

func TestUTMZone(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 31, UTMZone(0.5, 48))   // Paris region
	assert.Equal(t, 18, UTMZone(-74, 40.7)) // New York
	assert.Equal(t, 32, UTMZone(5, 60))     // southern Norway exception
	assert.Equal(t, 33, UTMZone(15, 78))    // Svalbard exception
}

func TestAreaKm2UTMAgreesNearEquator(t *testing.T) {
	t.Parallel()

	// For a small square near the equator the flat-degree approximation and
	// the projected area agree within a few percent.
	p, err := New(square(0, 0, 0.01))
	require.NoError(t, err)

	flat := p.AreaKm2()
	utm := p.AreaKm2UTM()
	assert.InEpsilon(t, flat, utm, 0.05)
}
