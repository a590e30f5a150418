package uhi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urbanlens/envirocast/internal/geometry"
	"github.com/urbanlens/envirocast/internal/indicator"
)

func TestCompareWorseDevelopment(t *testing.T) {
	t.Parallel()

	a := testAnalyzer()

	baseline, err := a.Analyze(smallSquare(t), 10, indicator.Defaults())
	require.NoError(t, err)

	// A larger footprint raises intensity through the area factors.
	bigger, err := geometry.FromCoords([][]float64{
		{-74.03, 40.70},
		{-74.00, 40.70},
		{-74.00, 40.73},
		{-74.03, 40.73},
	})
	require.NoError(t, err)
	proposed, err := a.Analyze(bigger, 10, indicator.Defaults())
	require.NoError(t, err)

	cmp := Compare(baseline, proposed)

	assert.Equal(t, "Worse", cmp.Temperature.Impact)
	assert.Greater(t, cmp.Temperature.Difference, 0.0)
	assert.Equal(t, "Worse", cmp.Energy.Impact)
	assert.Equal(t, "Negative", cmp.NetImpact)
	assert.Equal(t, "Implement mitigation strategies", cmp.Recommendation)
}

func TestCompareIdenticalScenarios(t *testing.T) {
	t.Parallel()

	a := testAnalyzer()

	baseline, err := a.Analyze(smallSquare(t), 10, indicator.Defaults())
	require.NoError(t, err)
	proposed, err := a.Analyze(smallSquare(t), 10, indicator.Defaults())
	require.NoError(t, err)

	cmp := Compare(baseline, proposed)

	assert.InDelta(t, 0.0, cmp.Temperature.Difference, 1e-9)
	assert.Equal(t, "Better", cmp.Temperature.Impact)
	assert.Equal(t, "Positive", cmp.NetImpact)
	assert.Equal(t, "Development appears sustainable", cmp.Recommendation)
}

func TestCompareBetterDevelopment(t *testing.T) {
	t.Parallel()

	a := testAnalyzer()

	baseline, err := a.Analyze(smallSquare(t), 10, indicator.Defaults())
	require.NoError(t, err)

	greened := indicator.Defaults()
	greened.NDVI = 0.9
	greened.VegetationDensity = 0.9
	greened.Albedo = 0.7
	proposed, err := a.Analyze(smallSquare(t), 10, greened)
	require.NoError(t, err)

	cmp := Compare(baseline, proposed)

	assert.Equal(t, "Better", cmp.Temperature.Impact)
	assert.Less(t, cmp.Temperature.Difference, 0.0)
	assert.Equal(t, "Positive", cmp.NetImpact)
	assert.Equal(t, "Development appears sustainable", cmp.Recommendation)
}
