package predictor

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urbanlens/envirocast/internal/geometry"
	"github.com/urbanlens/envirocast/internal/indicator"
)

func TestEngineAssess(t *testing.T) {
	t.Parallel()

	engine := NewEngine(testCfg())
	assessment, err := engine.Assess(context.Background(), smallSquare(t), 10, indicator.Defaults())
	require.NoError(t, err)

	assert.NotEmpty(t, assessment.ID)
	assert.Equal(t, 10, assessment.TimeHorizonYears)
	assert.InDelta(t, 1.24, assessment.AreaKm2, 1e-9)
	assert.False(t, assessment.GeneratedAt.IsZero())

	// overall = 0.4*0.021 + 0.3*0.332 + 0.3*0.105 = 0.1395
	assert.InDelta(t, 0.14, assessment.OverallRiskScore, 1e-9)
	assert.Equal(t, RiskVeryLow, assessment.OverallRiskLevel)

	// No domain exceeds the moderate threshold for this small area.
	assert.Empty(t, assessment.Recommendations)
}

func TestEngineAssessDeterministic(t *testing.T) {
	t.Parallel()

	engine := NewEngine(testCfg())
	poly := smallSquare(t)

	a, err := engine.Assess(context.Background(), poly, 25, indicator.Defaults())
	require.NoError(t, err)
	b, err := engine.Assess(context.Background(), poly, 25, indicator.Defaults())
	require.NoError(t, err)

	assert.Equal(t, a.Heat, b.Heat)
	assert.Equal(t, a.Water, b.Water)
	assert.Equal(t, a.Air, b.Air)
	assert.Equal(t, a.OverallRiskScore, b.OverallRiskScore)
}

func TestEngineAssessHorizonBounds(t *testing.T) {
	t.Parallel()

	engine := NewEngine(testCfg())
	_, err := engine.Assess(context.Background(), smallSquare(t), 0, indicator.Defaults())
	assert.True(t, eris.Is(err, ErrInvalidParameter))
}

type failingHeat struct{}

func (failingHeat) Analyze(*geometry.Polygon, int, indicator.Set) (HeatResult, error) {
	return HeatResult{}, eris.New("model unavailable")
}

func (failingHeat) Predict(map[string]float64, int, float64) (HeatPrediction, error) {
	return HeatPrediction{}, eris.New("model unavailable")
}

func TestEngineAssessDomainFailure(t *testing.T) {
	t.Parallel()

	cfg := testCfg()
	engine := NewEngineWith(cfg, failingHeat{}, NewWater(cfg), NewAir(cfg))

	_, err := engine.Assess(context.Background(), smallSquare(t), 10, indicator.Defaults())
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrDomainPrediction))
	assert.Contains(t, err.Error(), "heat")
}

func TestEnginePredictAll(t *testing.T) {
	t.Parallel()

	engine := NewEngine(testCfg())
	pred, err := engine.PredictAll(context.Background(), nil, 10, 0.95)
	require.NoError(t, err)

	assert.NotEmpty(t, pred.ID)
	assert.InDelta(t, 2.75, pred.Heat.TemperatureIncreaseC, 1e-9)
	assert.InDelta(t, 0.61, pred.Water.AbsorptionRate, 1e-9)
	assert.InDelta(t, 58.0, pred.Air.AQI, 1e-9)
}

func TestEnginePredictAllDomainFailure(t *testing.T) {
	t.Parallel()

	cfg := testCfg()
	engine := NewEngineWith(cfg, failingHeat{}, NewWater(cfg), NewAir(cfg))

	_, err := engine.PredictAll(context.Background(), nil, 10, 0.95)
	assert.True(t, eris.Is(err, ErrDomainPrediction))
}

func TestAssessmentJSONRoundTrip(t *testing.T) {
	t.Parallel()

	engine := NewEngine(testCfg())
	assessment, err := engine.Assess(context.Background(), smallSquare(t), 10, indicator.Defaults())
	require.NoError(t, err)

	data, err := json.Marshal(assessment)
	require.NoError(t, err)

	var decoded Assessment
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, assessment.ID, decoded.ID)
	assert.Equal(t, assessment.OverallRiskScore, decoded.OverallRiskScore)
	assert.Equal(t, assessment.Heat.RiskScore, decoded.Heat.RiskScore)
	assert.Equal(t, assessment.Air.Pollutants, decoded.Air.Pollutants)
}

func TestLevelForScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		score float64
		want  RiskLevel
	}{
		{0.0, RiskVeryLow},
		{0.19, RiskVeryLow},
		{0.2, RiskLow},
		{0.4, RiskMedium},
		{0.59, RiskMedium},
		{0.6, RiskHigh},
		{0.8, RiskVeryHigh},
		{1.0, RiskVeryHigh},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, LevelForScore(tt.score), "score %.2f", tt.score)
	}
}
