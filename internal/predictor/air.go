package predictor

import (
	"go.uber.org/zap"

	"github.com/urbanlens/envirocast/internal/config"
	"github.com/urbanlens/envirocast/internal/geometry"
	"github.com/urbanlens/envirocast/internal/indicator"
)

// AQI scale bounds.
const (
	minAQI = 0.0
	maxAQI = 500.0
)

// pollutantFractions expresses each tracked pollutant as a fraction of the
// composite AQI.
var pollutantFractions = map[string]float64{
	"pm2_5": 0.8,
	"no2":   0.6,
	"o3":    0.7,
	"pm10":  0.9,
}

// AirPredictor models air quality degradation.
type AirPredictor struct {
	cfg config.PredictorConfig
}

// NewAir returns an air quality predictor with the given coefficients.
func NewAir(cfg config.PredictorConfig) *AirPredictor {
	return &AirPredictor{cfg: cfg}
}

// Analyze projects AQI change over the polygon for the given horizon.
// Traffic, industry, and vegetation indicators shift the degradation rate
// relative to their defaults, so default indicators reproduce the base
// rate exactly.
func (p *AirPredictor) Analyze(poly *geometry.Polygon, horizonYears int, ind indicator.Set) (AirResult, error) {
	if err := validateHorizon(horizonYears); err != nil {
		return AirResult{}, err
	}

	area := poly.AreaKm2()
	current := p.cfg.BaselineAQI

	areaFactor := minf(area/10.0, 2.0)
	timeFactor := float64(horizonYears) / 10.0

	defaults := indicator.Defaults()
	sourceDelta := (ind.TrafficDensity-defaults.TrafficDensity)*30.0 +
		(ind.IndustrialZones-defaults.IndustrialZones)*40.0 -
		(ind.VegetationCover-defaults.VegetationCover)*20.0

	change := p.cfg.AirRatePerDecadeAQI*areaFactor*timeFactor + sourceDelta*timeFactor
	predicted := clamp(current+change, minAQI, maxAQI)

	score := airRiskScore(predicted)

	result := AirResult{
		CurrentAQI:       round2(current),
		PredictedAQI:     round2(predicted),
		AQIChange:        round2(predicted - current),
		RiskScore:        round3(score),
		RiskLevel:        LevelForScore(score),
		PopulationAtRisk: int(area * p.cfg.PopulationDensityPerKm2 * airPopulationFactor(predicted)),
		Pollutants:       pollutantBreakdown(predicted),
	}

	zap.L().Debug("air analysis complete",
		zap.Float64("area_km2", area),
		zap.Int("horizon_years", horizonYears),
		zap.Float64("predicted_aqi", result.PredictedAQI),
		zap.String("risk_level", string(result.RiskLevel)))

	return result, nil
}

// Predict estimates AQI from a feature bag. Wind speed is in m/s.
func (p *AirPredictor) Predict(features map[string]float64, horizonYears int, confidenceLevel float64) (AirPrediction, error) {
	if err := validateHorizon(horizonYears); err != nil {
		return AirPrediction{}, err
	}
	if err := validateConfidence(confidenceLevel); err != nil {
		return AirPrediction{}, err
	}

	traffic := feat(features, indicator.TrafficDensity, 0.5)
	industrial := feat(features, indicator.IndustrialZones, 0.2)
	vegetation := feat(features, indicator.VegetationCover, 0.3)
	wind := feat(features, indicator.WindSpeed, 3.0)

	aqi := 50.0 +
		traffic*30.0 +
		industrial*40.0 -
		vegetation*20.0 -
		minf(wind/5.0, 1.0)*15.0
	aqi = clamp(aqi, minAQI, maxAQI)

	return AirPrediction{
		AQI:        round2(aqi),
		RiskScore:  round3(airRiskScore(aqi)),
		Pollutants: pollutantBreakdown(aqi),
		Interval:   intervalFor(aqi, p.cfg.AirMarginPct, confidenceLevel),
	}, nil
}

// airRiskScore maps an AQI reading onto the 0-1 risk scale using the EPA
// category breakpoints. Good air contributes zero risk; each successive
// band adds a diminishing share.
func airRiskScore(aqi float64) float64 {
	switch {
	case aqi <= 50:
		return 0.0
	case aqi <= 100:
		return (aqi - 50) / 50 * 0.2
	case aqi <= 150:
		return 0.2 + (aqi-100)/50*0.3
	case aqi <= 200:
		return 0.5 + (aqi-150)/50*0.3
	default:
		return 0.8 + minf((aqi-200)/300, 1.0)*0.2
	}
}

// airPopulationFactor maps an AQI reading to the share of the population
// considered at risk, stepping up at the EPA category breakpoints.
func airPopulationFactor(aqi float64) float64 {
	switch {
	case aqi <= 50:
		return 0.0
	case aqi <= 100:
		return 0.1
	case aqi <= 150:
		return 0.3
	case aqi <= 200:
		return 0.6
	default:
		return 1.0
	}
}

func pollutantBreakdown(aqi float64) map[string]float64 {
	out := make(map[string]float64, len(pollutantFractions))
	for name, frac := range pollutantFractions {
		out[name] = round2(aqi * frac)
	}
	return out
}
