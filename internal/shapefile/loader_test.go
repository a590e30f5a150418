package shapefile

import (
	"fmt"
	"path/filepath"
	"testing"

	shp "github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

func writeTestShapefile(t *testing.T, names []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sites.shp")

	writer, err := shp.Create(path, shp.POLYGON)
	require.NoError(t, err)
	writer.SetFields([]shp.Field{shp.StringField("NAME", 25)})

	for i, name := range names {
		offset := float64(i) * 0.05
		poly := &shp.Polygon{
			Box:       shp.Box{MinX: -74.01 + offset, MinY: 40.70, MaxX: -74.00 + offset, MaxY: 40.71},
			NumParts:  1,
			NumPoints: 5,
			Parts:     []int32{0},
			Points: []shp.Point{
				{X: -74.01 + offset, Y: 40.70},
				{X: -74.00 + offset, Y: 40.70},
				{X: -74.00 + offset, Y: 40.71},
				{X: -74.01 + offset, Y: 40.71},
				{X: -74.01 + offset, Y: 40.70},
			},
		}
		writer.Write(poly)
		// DBF character fields are space-padded; pad to the field width so
		// the fixture matches what real shapefiles contain.
		writer.WriteAttribute(i, 0, fmt.Sprintf("%-25s", name))
	}
	writer.Close()
	return path
}

func TestLoadSites(t *testing.T) {
	path := writeTestShapefile(t, []string{"riverside", "docklands"})

	sites, err := LoadSites(path)
	require.NoError(t, err)
	require.Len(t, sites, 2)

	assert.Equal(t, "riverside", sites[0].Name)
	assert.Equal(t, "docklands", sites[1].Name)
	for _, site := range sites {
		// Closing vertex dropped on load.
		assert.Len(t, site.Polygon.Vertices(), 4)
		assert.InDelta(t, 1.2392, site.Polygon.AreaKm2(), 0.01)
	}
}

func TestLoadSites_MissingFile(t *testing.T) {
	_, err := LoadSites(filepath.Join(t.TempDir(), "nope.shp"))
	assert.Error(t, err)
}

func TestOuterRingVertices_MultiRing(t *testing.T) {
	t.Parallel()

	poly := &shp.Polygon{
		NumParts:  2,
		NumPoints: 8,
		Parts:     []int32{0, 4},
		Points: []shp.Point{
			{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
			{X: 0.2, Y: 0.2}, {X: 0.8, Y: 0.2}, {X: 0.8, Y: 0.8}, {X: 0.2, Y: 0.8},
		},
	}

	vertices := outerRingVertices(poly)
	require.Len(t, vertices, 4)
	assert.Equal(t, 0.0, vertices[0].Lon)
	assert.Equal(t, 1.0, vertices[2].Lat)
}
