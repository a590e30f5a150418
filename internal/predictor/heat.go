package predictor

import (
	"go.uber.org/zap"

	"github.com/urbanlens/envirocast/internal/config"
	"github.com/urbanlens/envirocast/internal/geometry"
	"github.com/urbanlens/envirocast/internal/indicator"
)

// HeatPredictor models urban heat island temperature change.
type HeatPredictor struct {
	cfg config.PredictorConfig
}

// NewHeat returns a heat predictor with the given coefficients.
func NewHeat(cfg config.PredictorConfig) *HeatPredictor {
	return &HeatPredictor{cfg: cfg}
}

// Analyze projects temperature change over the polygon for the given
// horizon. Surface indicators scale the warming rate: darker, less
// vegetated areas warm faster than the reference surface.
func (p *HeatPredictor) Analyze(poly *geometry.Polygon, horizonYears int, ind indicator.Set) (HeatResult, error) {
	if err := validateHorizon(horizonYears); err != nil {
		return HeatResult{}, err
	}

	area := poly.AreaKm2()
	current := p.cfg.BaselineTemperatureC

	// Reference surface factor uses the default albedo and vegetation
	// density, so an area with default indicators warms at exactly the
	// base rate.
	defaults := indicator.Defaults()
	refSurface := (1 - defaults.Albedo) + (1 - defaults.VegetationDensity)
	surface := ((1 - ind.Albedo) + (1 - ind.VegetationDensity)) / refSurface

	areaFactor := minf(area/10.0, 2.0)
	timeFactor := float64(horizonYears) / 10.0
	increase := p.cfg.HeatRatePerDecadeC * areaFactor * timeFactor * surface

	score := 0.7*minf(increase/5.0, 1.0) + 0.3*minf(area/100.0, 1.0)

	result := HeatResult{
		CurrentTemperatureC:   round2(current),
		PredictedTemperatureC: round2(current + increase),
		TemperatureIncreaseC:  round2(increase),
		RiskScore:             round3(score),
		RiskLevel:             LevelForScore(score),
		AffectedAreaKm2:       round2(area),
		PopulationAtRisk:      int(area * p.cfg.PopulationDensityPerKm2),
	}

	zap.L().Debug("heat analysis complete",
		zap.Float64("area_km2", area),
		zap.Int("horizon_years", horizonYears),
		zap.Float64("temperature_increase_c", result.TemperatureIncreaseC),
		zap.String("risk_level", string(result.RiskLevel)))

	return result, nil
}

// Predict estimates temperature increase from a feature bag. Missing
// features fall back to reference defaults.
func (p *HeatPredictor) Predict(features map[string]float64, horizonYears int, confidenceLevel float64) (HeatPrediction, error) {
	if err := validateHorizon(horizonYears); err != nil {
		return HeatPrediction{}, err
	}
	if err := validateConfidence(confidenceLevel); err != nil {
		return HeatPrediction{}, err
	}

	buildingDensity := feat(features, indicator.BuildingDensity, 0.5)
	vegetationCover := feat(features, indicator.VegetationCover, 0.3)
	albedo := feat(features, indicator.Albedo, 0.3)

	increase := (buildingDensity*2.0 +
		(1-vegetationCover)*1.5 +
		(1-albedo)*1.0) * (float64(horizonYears) / 10.0)

	return HeatPrediction{
		TemperatureIncreaseC: round2(increase),
		RiskScore:            round3(minf(increase/5.0, 1.0)),
		AffectedAreaKm2:      feat(features, "area_km2", 1.0),
		Interval:             intervalFor(increase, p.cfg.HeatMarginPct, confidenceLevel),
	}, nil
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
