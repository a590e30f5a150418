package uhi

import "math"

func energyRating(netIncreasePct float64) string {
	switch {
	case netIncreasePct <= 5:
		return "Good"
	case netIncreasePct <= 10:
		return "Fair"
	case netIncreasePct <= 15:
		return "Poor"
	default:
		return "Very Poor"
	}
}

func airRating(aqiIncrease float64) string {
	switch {
	case aqiIncrease <= 2:
		return "Good"
	case aqiIncrease <= 5:
		return "Moderate"
	case aqiIncrease <= 8:
		return "Unhealthy for Sensitive Groups"
	default:
		return "Unhealthy"
	}
}

func healthRating(vulnerabilityScore, tempDiffC float64) string {
	risk := vulnerabilityScore * (tempDiffC / 5.0)
	switch {
	case risk <= 0.2:
		return "Low"
	case risk <= 0.4:
		return "Moderate"
	case risk <= 0.6:
		return "High"
	default:
		return "Very High"
	}
}

func economicRating(totalCostUSD float64, population int) string {
	if population == 0 {
		return "Unknown"
	}
	perCapita := totalCostUSD / float64(population)
	switch {
	case perCapita <= 100:
		return "Low"
	case perCapita <= 300:
		return "Moderate"
	case perCapita <= 500:
		return "High"
	default:
		return "Very High"
	}
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
