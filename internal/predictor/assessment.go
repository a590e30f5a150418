// Package predictor implements the environmental impact prediction models:
// heat island, water absorption, and air quality. Each domain predictor
// exposes a polygon-based Analyze and a feature-based Predict; the Engine
// aggregates the three into an overall assessment.
//
// The models are deterministic closed-form formulas. Same inputs always
// produce the same outputs.
package predictor

import (
	"math"

	"github.com/rotisserie/eris"
)

var (
	// ErrInvalidParameter is returned for out-of-range horizons,
	// confidence levels, and feature values.
	ErrInvalidParameter = eris.New("predictor: invalid parameter")

	// ErrDomainPrediction wraps a failure in one of the domain predictors
	// during an aggregate assessment.
	ErrDomainPrediction = eris.New("predictor: domain prediction failed")
)

// Horizon bounds in years.
const (
	MinHorizonYears = 1
	MaxHorizonYears = 50
)

// Confidence level bounds for Predict calls.
const (
	MinConfidenceLevel = 0.5
	MaxConfidenceLevel = 0.99
)

// RiskLevel is a categorical risk classification.
type RiskLevel string

const (
	RiskVeryLow  RiskLevel = "Very Low"
	RiskLow      RiskLevel = "Low"
	RiskMedium   RiskLevel = "Medium"
	RiskHigh     RiskLevel = "High"
	RiskVeryHigh RiskLevel = "Very High"
)

// LevelForScore maps a 0-1 risk score to its categorical level.
func LevelForScore(score float64) RiskLevel {
	switch {
	case score >= 0.8:
		return RiskVeryHigh
	case score >= 0.6:
		return RiskHigh
	case score >= 0.4:
		return RiskMedium
	case score >= 0.2:
		return RiskLow
	default:
		return RiskVeryLow
	}
}

// ConfidenceInterval bounds a predicted value. The margin is a fixed
// fraction of the prediction per domain; the confidence level is echoed
// from the request.
type ConfidenceInterval struct {
	LowerBound      float64 `json:"lower_bound"`
	UpperBound      float64 `json:"upper_bound"`
	ConfidenceLevel float64 `json:"confidence_level"`
}

func intervalFor(prediction, marginPct, confidenceLevel float64) ConfidenceInterval {
	margin := prediction * marginPct
	return ConfidenceInterval{
		LowerBound:      round2(prediction - margin),
		UpperBound:      round2(prediction + margin),
		ConfidenceLevel: confidenceLevel,
	}
}

// HeatResult is a polygon-based heat island analysis.
type HeatResult struct {
	CurrentTemperatureC   float64   `json:"current_temperature_c"`
	PredictedTemperatureC float64   `json:"predicted_temperature_c"`
	TemperatureIncreaseC  float64   `json:"temperature_increase_c"`
	RiskScore             float64   `json:"heat_risk_score"`
	RiskLevel             RiskLevel `json:"heat_risk_level"`
	AffectedAreaKm2       float64   `json:"affected_area_km2"`
	PopulationAtRisk      int       `json:"population_at_risk"`
}

// WaterResult is a polygon-based water absorption analysis.
type WaterResult struct {
	CurrentAbsorptionRate   float64   `json:"current_absorption_rate"`
	PredictedAbsorptionRate float64   `json:"predicted_absorption_rate"`
	AbsorptionChange        float64   `json:"absorption_change"`
	RiskScore               float64   `json:"flood_risk_score"`
	RiskLevel               RiskLevel `json:"flood_risk_level"`
	PopulationAtRisk        int       `json:"population_at_risk"`
	DrainageEfficiency      float64   `json:"drainage_efficiency"`
	ImperviousSurfacePct    float64   `json:"impervious_surface_pct"`
}

// AirResult is a polygon-based air quality analysis.
type AirResult struct {
	CurrentAQI       float64            `json:"current_aqi"`
	PredictedAQI     float64            `json:"predicted_aqi"`
	AQIChange        float64            `json:"aqi_change"`
	RiskScore        float64            `json:"air_risk_score"`
	RiskLevel        RiskLevel          `json:"air_risk_level"`
	PopulationAtRisk int                `json:"population_at_risk"`
	Pollutants       map[string]float64 `json:"pollutants"`
}

// HeatPrediction is a feature-based heat prediction.
type HeatPrediction struct {
	TemperatureIncreaseC float64            `json:"temperature_increase_c"`
	RiskScore            float64            `json:"heat_risk_score"`
	AffectedAreaKm2      float64            `json:"affected_area_km2"`
	Interval             ConfidenceInterval `json:"confidence_interval"`
}

// WaterPrediction is a feature-based water absorption prediction.
type WaterPrediction struct {
	AbsorptionRate     float64            `json:"absorption_rate"`
	FloodRiskScore     float64            `json:"flood_risk_score"`
	DrainageEfficiency float64            `json:"drainage_efficiency"`
	Interval           ConfidenceInterval `json:"confidence_interval"`
}

// AirPrediction is a feature-based air quality prediction.
type AirPrediction struct {
	AQI        float64            `json:"air_quality_index"`
	RiskScore  float64            `json:"air_risk_score"`
	Pollutants map[string]float64 `json:"pollutants"`
	Interval   ConfidenceInterval `json:"confidence_interval"`
}

func validateHorizon(horizonYears int) error {
	if horizonYears < MinHorizonYears || horizonYears > MaxHorizonYears {
		return eris.Wrapf(ErrInvalidParameter, "predictor: horizon %d years outside [%d, %d]",
			horizonYears, MinHorizonYears, MaxHorizonYears)
	}
	return nil
}

func validateConfidence(level float64) error {
	if level < MinConfidenceLevel || level > MaxConfidenceLevel {
		return eris.Wrapf(ErrInvalidParameter, "predictor: confidence level %.2f outside [%.2f, %.2f]",
			level, MinConfidenceLevel, MaxConfidenceLevel)
	}
	return nil
}

// feat reads a named feature from the bag, falling back to a default.
func feat(features map[string]float64, name string, fallback float64) float64 {
	if v, ok := features[name]; ok {
		return v
	}
	return fallback
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
