package mitigation

import (
	"encoding/json"
	"math"

	"go.uber.org/zap"

	"github.com/urbanlens/envirocast/internal/config"
)

// CostedStrategy is a catalog strategy costed for a concrete area.
type CostedStrategy struct {
	Strategy
	ImplementationCostUSD float64 `json:"implementation_cost_usd"`
	AnnualMaintenanceUSD  float64 `json:"annual_maintenance_usd"`
}

// PaybackPeriod is the years until mitigation benefits cover the
// implementation cost. It serializes as a number, or "N/A" when annual
// benefits never exceed maintenance.
type PaybackPeriod struct {
	Years      float64
	Achievable bool
}

// MarshalJSON implements json.Marshaler.
func (p PaybackPeriod) MarshalJSON() ([]byte, error) {
	if !p.Achievable {
		return json.Marshal("N/A")
	}
	return json.Marshal(p.Years)
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *PaybackPeriod) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*p = PaybackPeriod{}
		return nil
	}
	var years float64
	if err := json.Unmarshal(data, &years); err != nil {
		return err
	}
	*p = PaybackPeriod{Years: years, Achievable: true}
	return nil
}

// CostAnalysis summarizes the combined cost-benefit picture of a plan.
type CostAnalysis struct {
	TotalImplementationCostUSD float64       `json:"total_implementation_cost_usd"`
	TotalAnnualMaintenanceUSD  float64       `json:"total_annual_maintenance_usd"`
	AnnualBenefitsUSD          float64       `json:"annual_benefits_usd"`
	PaybackPeriodYears         PaybackPeriod `json:"payback_period_years"`
}

// Plan is a full mitigation plan for an area.
type Plan struct {
	Strategies             []CostedStrategy `json:"mitigation_strategies"`
	AchievableReductionC   float64          `json:"achievable_temperature_reduction_c"`
	Cost                   CostAnalysis     `json:"cost_analysis"`
	Priority               string           `json:"mitigation_priority"`
	ImplementationTimeline string           `json:"implementation_timeline"`
}

// severityPriority maps heat island severity to planning priority.
var severityPriority = map[string]string{
	"Extreme":  "Critical",
	"High":     "High",
	"Moderate": "Medium",
	"Low":      "Low",
}

// Builder assembles mitigation plans using the configured cost model.
type Builder struct {
	cfg config.UHIConfig
}

// NewBuilder returns a plan builder.
func NewBuilder(cfg config.UHIConfig) *Builder {
	return &Builder{cfg: cfg}
}

// Build costs the full catalog for the area and assembles a plan against
// the observed heat island intensity. The achievable reduction is capped
// at the configured share of the intensity, regardless of how much
// cooling the strategies could deliver together.
func (b *Builder) Build(areaKm2, intensityC float64, population int, severity string) Plan {
	strategies := b.CostCatalog(areaKm2)

	var (
		maxReduction     float64
		totalImpl        float64
		totalMaintenance float64
	)
	for _, s := range strategies {
		maxReduction += s.TemperatureReductionC
		totalImpl += s.ImplementationCostUSD
		totalMaintenance += s.AnnualMaintenanceUSD
	}

	achievable := math.Min(maxReduction, intensityC*b.cfg.MaxMitigationShare)
	benefits := b.AnnualBenefits(achievable, population)

	payback := PaybackPeriod{}
	if net := benefits - totalMaintenance; net > 0 {
		payback = PaybackPeriod{Years: round1(totalImpl / net), Achievable: true}
	}

	priority, ok := severityPriority[severity]
	if !ok {
		priority = "Medium"
	}

	plan := Plan{
		Strategies:           strategies,
		AchievableReductionC: round2(achievable),
		Cost: CostAnalysis{
			TotalImplementationCostUSD: round2(totalImpl),
			TotalAnnualMaintenanceUSD:  round2(totalMaintenance),
			AnnualBenefitsUSD:          round2(benefits),
			PaybackPeriodYears:         payback,
		},
		Priority:               priority,
		ImplementationTimeline: "3-5 years",
	}

	zap.L().Debug("mitigation plan built",
		zap.Float64("area_km2", areaKm2),
		zap.Float64("achievable_reduction_c", plan.AchievableReductionC),
		zap.Bool("payback_achievable", payback.Achievable))

	return plan
}

// CostCatalog scales every catalog strategy's per-km2 costs to the area.
func (b *Builder) CostCatalog(areaKm2 float64) []CostedStrategy {
	out := make([]CostedStrategy, 0, len(catalog))
	for _, s := range catalog {
		out = append(out, CostedStrategy{
			Strategy:              s,
			ImplementationCostUSD: round2(s.ImplementationCostPerKm2 * areaKm2),
			AnnualMaintenanceUSD:  round2(s.MaintenanceCostPerKm2 * areaKm2),
		})
	}
	return out
}

// AnnualBenefits estimates the yearly dollar value of a temperature
// reduction: avoided cooling energy, avoided health costs, and recovered
// productivity.
func (b *Builder) AnnualBenefits(reductionC float64, population int) float64 {
	pop := float64(population)

	energySavings := pop * b.cfg.EnergyPerPersonMWh *
		(reductionC * b.cfg.CoolingIncreasePctPerC / 100) * b.cfg.EnergyCostPerMWhUSD
	healthSavings := pop * 0.1 * reductionC * 1000
	productivityGains := pop * b.cfg.AverageIncomeUSD *
		(reductionC * b.cfg.ProductivityLossPctPerC / 100)

	return energySavings + healthSavings + productivityGains
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
