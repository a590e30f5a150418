package predictor

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urbanlens/envirocast/internal/indicator"
)

func TestWaterAnalyzeDefaults(t *testing.T) {
	t.Parallel()

	p := NewWater(testCfg())
	result, err := p.Analyze(smallSquare(t), 10, indicator.Defaults())
	require.NoError(t, err)

	// change = -0.1 * (1.2392/10) * 1.0 = -0.0124
	assert.InDelta(t, 0.6, result.CurrentAbsorptionRate, 1e-9)
	assert.InDelta(t, 0.588, result.PredictedAbsorptionRate, 1e-9)
	assert.InDelta(t, -0.012, result.AbsorptionChange, 1e-9)

	// score = 0.8*(1-0.5876) + 0.2*(1.2392/100) = 0.332
	assert.InDelta(t, 0.332, result.RiskScore, 1e-9)
	assert.Equal(t, RiskLow, result.RiskLevel)

	// efficiency = min(0.5876*1.2, 1) = 0.705
	assert.InDelta(t, 0.705, result.DrainageEfficiency, 1e-9)

	assert.Equal(t, 1239, result.PopulationAtRisk)

	// 50 + min(1.2392/10, 1)*20 = 52.48
	assert.InDelta(t, 52.48, result.ImperviousSurfacePct, 1e-9)
}

func TestWaterAnalyzePermeabilitySetsCurrent(t *testing.T) {
	t.Parallel()

	p := NewWater(testCfg())
	poly := smallSquare(t)

	ind := indicator.Defaults()
	ind.Permeability = 0.9
	result, err := p.Analyze(poly, 10, ind)
	require.NoError(t, err)

	assert.InDelta(t, 0.9, result.CurrentAbsorptionRate, 1e-9)
	assert.InDelta(t, 0.888, result.PredictedAbsorptionRate, 1e-9)
}

func TestWaterAnalyzeBaselineConfig(t *testing.T) {
	t.Parallel()

	cfg := testCfg()
	cfg.BaselineAbsorptionRate = 0.8
	p := NewWater(cfg)

	result, err := p.Analyze(smallSquare(t), 10, indicator.Defaults())
	require.NoError(t, err)

	// Default permeability reproduces the configured baseline.
	assert.InDelta(t, 0.8, result.CurrentAbsorptionRate, 1e-9)
	assert.InDelta(t, 0.788, result.PredictedAbsorptionRate, 1e-9)
}

func TestWaterAnalyzeAbsorptionClamped(t *testing.T) {
	t.Parallel()

	p := NewWater(testCfg())
	poly := smallSquare(t)

	// Near-zero permeability cannot decay below zero even at the longest
	// horizon.
	ind := indicator.Defaults()
	ind.Permeability = 0.01
	result, err := p.Analyze(poly, 50, ind)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, result.PredictedAbsorptionRate, 0.0)
	assert.LessOrEqual(t, result.PredictedAbsorptionRate, 1.0)
}

func TestWaterAnalyzeHorizonBounds(t *testing.T) {
	t.Parallel()

	p := NewWater(testCfg())
	_, err := p.Analyze(smallSquare(t), 0, indicator.Defaults())
	assert.True(t, eris.Is(err, ErrInvalidParameter))
}

func TestWaterPredictDefaults(t *testing.T) {
	t.Parallel()

	p := NewWater(testCfg())
	pred, err := p.Predict(nil, 10, 0.95)
	require.NoError(t, err)

	// 0.5*0.4 + 0.7*0.3 + 0.5*0.2 + (1-0.1/45)*0.1 = 0.60978
	assert.InDelta(t, 0.61, pred.AbsorptionRate, 1e-9)
	assert.InDelta(t, 0.39, pred.FloodRiskScore, 1e-9)
	assert.InDelta(t, 0.305, pred.DrainageEfficiency, 1e-9)

	assert.InDelta(t, 0.52, pred.Interval.LowerBound, 1e-9)
	assert.InDelta(t, 0.7, pred.Interval.UpperBound, 1e-9)
}

func TestWaterPredictFeatures(t *testing.T) {
	t.Parallel()

	p := NewWater(testCfg())

	tests := []struct {
		name           string
		features       map[string]float64
		wantAbsorption float64
	}{
		{
			name: "sandy flat pervious",
			features: map[string]float64{
				indicator.SoilType:          0.0,
				indicator.Slope:             0.0,
				indicator.ImperviousSurface: 0.0,
				indicator.Drainage:          1.0,
			},
			wantAbsorption: 1.0,
		},
		{
			name: "clay steep paved",
			features: map[string]float64{
				indicator.SoilType:          1.0,
				indicator.Slope:             45.0,
				indicator.ImperviousSurface: 1.0,
				indicator.Drainage:          0.0,
			},
			wantAbsorption: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			pred, err := p.Predict(tt.features, 10, 0.9)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantAbsorption, pred.AbsorptionRate, 1e-9)
		})
	}
}
