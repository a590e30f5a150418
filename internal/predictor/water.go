package predictor

import (
	"go.uber.org/zap"

	"github.com/urbanlens/envirocast/internal/config"
	"github.com/urbanlens/envirocast/internal/geometry"
	"github.com/urbanlens/envirocast/internal/indicator"
)

// WaterPredictor models water absorption capacity and flood risk.
type WaterPredictor struct {
	cfg config.PredictorConfig
}

// NewWater returns a water absorption predictor with the given coefficients.
func NewWater(cfg config.PredictorConfig) *WaterPredictor {
	return &WaterPredictor{cfg: cfg}
}

// Analyze projects absorption rate decline over the polygon for the given
// horizon. The configured baseline anchors the current absorption rate and
// the surface permeability indicator shifts it relative to its default, so
// default indicators reproduce the baseline exactly.
func (p *WaterPredictor) Analyze(poly *geometry.Polygon, horizonYears int, ind indicator.Set) (WaterResult, error) {
	if err := validateHorizon(horizonYears); err != nil {
		return WaterResult{}, err
	}

	area := poly.AreaKm2()
	defaults := indicator.Defaults()
	current := clamp(p.cfg.BaselineAbsorptionRate+(ind.Permeability-defaults.Permeability), 0.0, 1.0)

	areaFactor := minf(area/10.0, 2.0)
	timeFactor := float64(horizonYears) / 10.0
	change := p.cfg.WaterRatePerDecade * areaFactor * timeFactor

	predicted := clamp(current+change, 0.0, 1.0)

	score := 0.8*(1-predicted) + 0.2*minf(area/100.0, 1.0)

	result := WaterResult{
		CurrentAbsorptionRate:   round3(current),
		PredictedAbsorptionRate: round3(predicted),
		AbsorptionChange:        round3(predicted - current),
		RiskScore:               round3(score),
		RiskLevel:               LevelForScore(score),
		PopulationAtRisk:        int(area * p.cfg.PopulationDensityPerKm2),
		DrainageEfficiency:      round3(minf(predicted*1.2, 1.0)),
		ImperviousSurfacePct:    round2(imperviousEstimate(area)),
	}

	zap.L().Debug("water analysis complete",
		zap.Float64("area_km2", area),
		zap.Int("horizon_years", horizonYears),
		zap.Float64("predicted_absorption", result.PredictedAbsorptionRate),
		zap.String("risk_level", string(result.RiskLevel)))

	return result, nil
}

// Predict estimates the absorption rate from a feature bag. Soil type runs
// 0 (sandy) to 1 (clay); slope is in degrees.
func (p *WaterPredictor) Predict(features map[string]float64, horizonYears int, confidenceLevel float64) (WaterPrediction, error) {
	if err := validateHorizon(horizonYears); err != nil {
		return WaterPrediction{}, err
	}
	if err := validateConfidence(confidenceLevel); err != nil {
		return WaterPrediction{}, err
	}

	soilType := feat(features, indicator.SoilType, 0.5)
	slope := feat(features, indicator.Slope, 0.1)
	impervious := feat(features, indicator.ImperviousSurface, 0.3)
	drainage := feat(features, indicator.Drainage, 0.5)

	absorption := (1-soilType)*0.4 +
		(1-impervious)*0.3 +
		drainage*0.2 +
		(1-slope/45.0)*0.1

	return WaterPrediction{
		AbsorptionRate:     round3(absorption),
		FloodRiskScore:     round3(1 - absorption),
		DrainageEfficiency: round3(absorption * drainage),
		Interval:           intervalFor(absorption, p.cfg.WaterMarginPct, confidenceLevel),
	}, nil
}

// imperviousEstimate approximates impervious surface coverage from area
// alone. Urban areas typically run 30-80 percent; a satellite-derived
// indicator should replace this when available.
func imperviousEstimate(areaKm2 float64) float64 {
	pct := 50.0 + minf(areaKm2/10.0, 1.0)*20.0
	return minf(pct, 90.0)
}
