package indicator

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDefaults(t *testing.T) {
	t.Parallel()

	got, err := Resolve(nil)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), got)

	got, err = Resolve(map[string]float64{})
	require.NoError(t, err)
	assert.Equal(t, Defaults(), got)
}

func TestResolveMerge(t *testing.T) {
	t.Parallel()

	got, err := Resolve(map[string]float64{
		NDVI:         0.85,
		Permeability: 0.2,
	})
	require.NoError(t, err)

	assert.Equal(t, 0.85, got.NDVI)
	assert.Equal(t, 0.2, got.Permeability)

	// Everything else keeps its default.
	want := Defaults()
	want.NDVI = 0.85
	want.Permeability = 0.2
	assert.Equal(t, want, got)
}

func TestResolveValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		partial map[string]float64
	}{
		{name: "unknown name", partial: map[string]float64{"cloud_cover": 0.5}},
		{name: "ndvi below range", partial: map[string]float64{NDVI: -1.5}},
		{name: "ndvi above range", partial: map[string]float64{NDVI: 1.5}},
		{name: "albedo negative", partial: map[string]float64{Albedo: -0.1}},
		{name: "permeability above one", partial: map[string]float64{Permeability: 1.01}},
		{name: "wind speed negative", partial: map[string]float64{WindSpeed: -3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Resolve(tt.partial)
			require.Error(t, err)
			assert.True(t, eris.Is(err, ErrInvalidIndicator))
		})
	}
}

func TestResolveBoundaryValues(t *testing.T) {
	t.Parallel()

	// Extreme but valid values resolve fine.
	got, err := Resolve(map[string]float64{
		NDVI:         1.0,
		Albedo:       0.0,
		Permeability: 0.0,
	})
	require.NoError(t, err)
	assert.Equal(t, 1.0, got.NDVI)
	assert.Equal(t, 0.0, got.Albedo)
	assert.Equal(t, 0.0, got.Permeability)
}

func TestNames(t *testing.T) {
	t.Parallel()

	names := Names()
	assert.Len(t, names, 13)
	assert.Contains(t, names, NDVI)
	assert.Contains(t, names, Drainage)
	// Sorted order.
	for i := 1; i < len(names); i++ {
		assert.Less(t, names[i-1], names[i])
	}
}
