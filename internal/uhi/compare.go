package uhi

// Delta compares one metric between the baseline and proposed scenarios.
// A positive difference means the proposed development makes it worse.
type Delta struct {
	Baseline   float64 `json:"baseline"`
	Proposed   float64 `json:"proposed"`
	Difference float64 `json:"difference"`
	Impact     string  `json:"impact"`
}

// Comparison holds the scenario-over-scenario deltas.
type Comparison struct {
	Temperature    Delta  `json:"temperature_change"`
	Energy         Delta  `json:"energy_impact_change"`
	Health         Delta  `json:"health_impact_change"`
	Economic       Delta  `json:"economic_impact_change"`
	NetImpact      string `json:"net_impact"`
	Recommendation string `json:"recommendation"`
}

// Compare derives the scenario deltas between a baseline analysis and a
// proposed development analysis.
func Compare(baseline, proposed *Analysis) Comparison {
	temp := delta(baseline.Intensity.TemperatureDifferenceC, proposed.Intensity.TemperatureDifferenceC)
	energy := delta(baseline.Energy.AdditionalEnergyCostUSD, proposed.Energy.AdditionalEnergyCostUSD)
	health := delta(baseline.Health.HeatRelated.TotalHealthcareCostUSD, proposed.Health.HeatRelated.TotalHealthcareCostUSD)
	economic := delta(baseline.Economic.TotalAnnualCostUSD, proposed.Economic.TotalAnnualCostUSD)

	net := "Positive"
	if temp.Difference > 0 || energy.Difference > 0 || health.Difference > 0 {
		net = "Negative"
	}

	recommendation := "Development appears sustainable"
	if temp.Difference > 0 {
		recommendation = "Implement mitigation strategies"
	}

	return Comparison{
		Temperature:    temp,
		Energy:         energy,
		Health:         health,
		Economic:       economic,
		NetImpact:      net,
		Recommendation: recommendation,
	}
}

func delta(baseline, proposed float64) Delta {
	diff := round2(proposed - baseline)
	impact := "Better"
	if diff > 0 {
		impact = "Worse"
	}
	return Delta{
		Baseline:   baseline,
		Proposed:   proposed,
		Difference: diff,
		Impact:     impact,
	}
}
