package mitigation

import (
	"fmt"

	"github.com/rotisserie/eris"
)

// Focus selects how strategies are ranked for a planning goal.
type Focus string

const (
	FocusEnergySavings     Focus = "energy_savings"
	FocusHealthImprovement Focus = "health_improvement"
	FocusAirQuality        Focus = "air_quality"
	FocusComprehensive     Focus = "comprehensive"
)

// ErrUnknownFocus is returned for an unrecognized planning focus.
var ErrUnknownFocus = eris.New("mitigation: unknown priority focus")

var focusOrders = map[Focus][]string{
	// Roof and canopy interventions cut cooling demand directly.
	FocusEnergySavings: {GreenRoofs, UrbanForests, CoolPavements, WaterFeatures},
	// Canopy and vegetation filter pollutants and shade people.
	FocusHealthImprovement: {UrbanForests, GreenRoofs, WaterFeatures, CoolPavements},
	FocusAirQuality:        {UrbanForests, GreenRoofs, WaterFeatures, CoolPavements},
	// Ranked by overall effectiveness.
	FocusComprehensive: {UrbanForests, GreenRoofs, CoolPavements, WaterFeatures},
}

// ParseFocus validates a focus string. Empty input defaults to the
// comprehensive ranking.
func ParseFocus(s string) (Focus, error) {
	if s == "" {
		return FocusComprehensive, nil
	}
	f := Focus(s)
	if _, ok := focusOrders[f]; !ok {
		return "", eris.Wrapf(ErrUnknownFocus, "%q", s)
	}
	return f, nil
}

// PriorityRecommendation ranks one strategy for a planning focus.
type PriorityRecommendation struct {
	Strategy              string  `json:"strategy"`
	Title                 string  `json:"title"`
	TemperatureReductionC float64 `json:"temperature_reduction_c"`
	ImplementationCostUSD float64 `json:"implementation_cost_usd"`
	Feasibility           float64 `json:"feasibility"`
	Priority              int     `json:"priority"`
	Rationale             string  `json:"rationale"`
}

// FilterByBudget keeps strategies whose implementation cost fits the
// budget. A zero or negative budget means unconstrained. An empty result
// is valid: nothing affordable is a legitimate answer.
func FilterByBudget(strategies []CostedStrategy, budgetUSD float64) []CostedStrategy {
	if budgetUSD <= 0 {
		return strategies
	}
	out := make([]CostedStrategy, 0, len(strategies))
	for _, s := range strategies {
		if s.ImplementationCostUSD <= budgetUSD {
			out = append(out, s)
		}
	}
	return out
}

// Prioritize orders the given strategies by the focus ranking and numbers
// them starting at 1. Strategies absent from the input are skipped.
func Prioritize(strategies []CostedStrategy, focus Focus) []PriorityRecommendation {
	byName := make(map[string]CostedStrategy, len(strategies))
	for _, s := range strategies {
		byName[s.Name] = s
	}

	order, ok := focusOrders[focus]
	if !ok {
		order = focusOrders[FocusComprehensive]
	}

	recs := make([]PriorityRecommendation, 0, len(strategies))
	for _, name := range order {
		s, ok := byName[name]
		if !ok {
			continue
		}
		recs = append(recs, PriorityRecommendation{
			Strategy:              s.Name,
			Title:                 s.Title,
			TemperatureReductionC: s.TemperatureReductionC,
			ImplementationCostUSD: s.ImplementationCostUSD,
			Feasibility:           s.Feasibility,
			Priority:              len(recs) + 1,
			Rationale:             fmt.Sprintf("Recommended for %s focus based on effectiveness and feasibility", focus),
		})
	}

	return recs
}
