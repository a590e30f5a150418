// Package uhi implements the deep urban heat island analysis: intensity,
// energy consumption, air quality, public health, and economic impacts,
// plus the mitigation plan for the area.
package uhi

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/urbanlens/envirocast/internal/config"
	"github.com/urbanlens/envirocast/internal/geometry"
	"github.com/urbanlens/envirocast/internal/indicator"
	"github.com/urbanlens/envirocast/internal/mitigation"
	"github.com/urbanlens/envirocast/internal/predictor"
)

// Severity thresholds for heat island intensity in degrees Celsius.
const (
	severityExtremeC  = 5.0
	severityHighC     = 3.0
	severityModerateC = 1.5
)

// Intensity is the core heat island signal for an area.
type Intensity struct {
	TemperatureDifferenceC float64            `json:"temperature_difference_c"`
	Severity               string             `json:"severity"`
	ContributingFactors    map[string]float64 `json:"contributing_factors"`
	PeakIntensityTime      string             `json:"peak_intensity_time"`
	SeasonalVariation      map[string]float64 `json:"seasonal_variation"`
}

// EnergyImpact quantifies the energy consumption cost of the heat island.
type EnergyImpact struct {
	NetEnergyIncreasePct     float64 `json:"net_energy_increase_percent"`
	CoolingEnergyIncreasePct float64 `json:"cooling_energy_increase_percent"`
	HeatingEnergyDecreasePct float64 `json:"heating_energy_decrease_percent"`
	AdditionalEnergyMWh      float64 `json:"additional_energy_consumption_mwh"`
	AdditionalEnergyCostUSD  float64 `json:"additional_energy_cost_usd"`
	AffectedPopulation       int     `json:"affected_population"`
	AffectedBuildings        int     `json:"affected_buildings"`
	EfficiencyRating         string  `json:"energy_efficiency_rating"`
}

// AirDegradation is the pollutant-level air quality shift.
type AirDegradation struct {
	OzoneIncreasePpb float64 `json:"ozone_increase_ppb"`
	PM25IncreaseUgm3 float64 `json:"pm2_5_increase_ugm3"`
	NO2IncreasePpb   float64 `json:"no2_increase_ppb"`
	AQIIncrease      float64 `json:"aqi_increase"`
}

// AirHealthImpacts counts cases attributable to degraded air.
type AirHealthImpacts struct {
	RespiratoryIssues    int     `json:"respiratory_issues"`
	CardiovascularIssues int     `json:"cardiovascular_issues"`
	PrematureDeaths      int     `json:"premature_deaths"`
	TotalHealthCostUSD   float64 `json:"total_health_cost_usd"`
}

// AirQualityImpact quantifies the air quality cost of the heat island.
type AirQualityImpact struct {
	Degradation        AirDegradation   `json:"air_quality_degradation"`
	HealthImpacts      AirHealthImpacts `json:"health_impacts"`
	Rating             string           `json:"air_quality_rating"`
	AffectedPopulation int              `json:"affected_population"`
}

// HeatHealthImpacts counts heat-related illness cases.
type HeatHealthImpacts struct {
	HeatStressCases        int     `json:"heat_stress_cases"`
	HeatExhaustionCases    int     `json:"heat_exhaustion_cases"`
	HeatStrokeCases        int     `json:"heat_stroke_cases"`
	TotalHealthcareCostUSD float64 `json:"total_healthcare_cost_usd"`
}

// VulnerablePopulations sizes the groups most exposed to heat.
type VulnerablePopulations struct {
	Elderly            int     `json:"elderly"`
	Children           int     `json:"children"`
	LowIncome          int     `json:"low_income"`
	VulnerabilityScore float64 `json:"vulnerability_score"`
}

// ProductivityImpact is lost output from heat exposure.
type ProductivityImpact struct {
	ProductivityLossPct float64 `json:"productivity_loss_percent"`
	ProductivityLossUSD float64 `json:"productivity_loss_usd"`
}

// HealthImpact quantifies the public health cost of the heat island.
type HealthImpact struct {
	HeatRelated  HeatHealthImpacts     `json:"heat_related_health_impacts"`
	Vulnerable   VulnerablePopulations `json:"vulnerable_populations"`
	Productivity ProductivityImpact    `json:"productivity_impact"`
	RiskRating   string                `json:"health_risk_rating"`
}

// CostBreakdown itemizes the annual heat island cost.
type CostBreakdown struct {
	EnergyCostUSD       float64 `json:"energy_cost"`
	HealthCostUSD       float64 `json:"health_cost"`
	AirQualityCostUSD   float64 `json:"air_quality_cost"`
	ProductivityLossUSD float64 `json:"productivity_loss"`
}

// EconomicImpact rolls the domain costs into one annual figure.
type EconomicImpact struct {
	TotalAnnualCostUSD float64       `json:"total_annual_cost_usd"`
	Breakdown          CostBreakdown `json:"cost_breakdown"`
	CostPerCapitaUSD   float64       `json:"cost_per_capita_usd"`
	CostPerKm2USD      float64       `json:"cost_per_km2_usd"`
	Rating             string        `json:"economic_impact_rating"`
}

// Metadata describes the analysis run.
type Metadata struct {
	AreaKm2          float64   `json:"area_km2"`
	TimeHorizonYears int       `json:"time_horizon_years"`
	GeneratedAt      time.Time `json:"generated_at"`
}

// Analysis is the full heat island assessment for an area.
type Analysis struct {
	ID               string           `json:"analysis_id"`
	Intensity        Intensity        `json:"uhi_intensity"`
	Energy           EnergyImpact     `json:"energy_consumption_impact"`
	AirQuality       AirQualityImpact `json:"air_quality_impact"`
	Health           HealthImpact     `json:"public_health_impact"`
	Mitigation       mitigation.Plan  `json:"mitigation_potential"`
	Economic         EconomicImpact   `json:"economic_impact"`
	OverallRiskScore float64          `json:"overall_uhi_risk_score"`
	Metadata         Metadata         `json:"analysis_metadata"`
}

// Analyzer runs the heat island model.
type Analyzer struct {
	cfg             config.UHIConfig
	popPerKm2       float64
	buildingsPerKm2 float64
	plans           *mitigation.Builder
}

// NewAnalyzer returns a heat island analyzer. Population density comes
// from the predictor configuration so assessments and heat island
// analyses agree on exposure.
func NewAnalyzer(cfg config.UHIConfig, popPerKm2 float64) *Analyzer {
	return &Analyzer{
		cfg:             cfg,
		popPerKm2:       popPerKm2,
		buildingsPerKm2: 500,
		plans:           mitigation.NewBuilder(cfg),
	}
}

// Analyze runs the full heat island assessment over the polygon.
func (a *Analyzer) Analyze(poly *geometry.Polygon, horizonYears int, ind indicator.Set) (*Analysis, error) {
	if horizonYears < predictor.MinHorizonYears || horizonYears > predictor.MaxHorizonYears {
		return nil, predictor.ErrInvalidParameter
	}

	area := poly.AreaKm2()
	population := int(area * a.popPerKm2)

	intensity := a.intensity(area, ind)
	energy := a.energyImpact(intensity.TemperatureDifferenceC, population, area)
	air := a.airQualityImpact(intensity.TemperatureDifferenceC, population)
	health := a.healthImpact(intensity.TemperatureDifferenceC, population)
	plan := a.plans.Build(area, intensity.TemperatureDifferenceC, population, intensity.Severity)
	economic := a.economicImpact(energy, air, health, population, area)

	analysis := &Analysis{
		ID:               uuid.NewString(),
		Intensity:        intensity,
		Energy:           energy,
		AirQuality:       air,
		Health:           health,
		Mitigation:       plan,
		Economic:         economic,
		OverallRiskScore: a.overallRisk(intensity, energy, air, health),
		Metadata: Metadata{
			AreaKm2:          round2(area),
			TimeHorizonYears: horizonYears,
			GeneratedAt:      time.Now().UTC(),
		},
	}

	zap.L().Info("heat island analysis complete",
		zap.String("analysis_id", analysis.ID),
		zap.Float64("area_km2", analysis.Metadata.AreaKm2),
		zap.Float64("intensity_c", intensity.TemperatureDifferenceC),
		zap.String("severity", intensity.Severity),
		zap.Float64("overall_risk_score", analysis.OverallRiskScore))

	return analysis, nil
}

// intensity computes the urban-rural temperature differential from surface
// indicators and area-derived urbanization factors.
func (a *Analyzer) intensity(areaKm2 float64, ind indicator.Set) Intensity {
	factors := map[string]float64{
		"building_density":   minf(areaKm2/10.0, 1.0),
		"impervious_surface": 1 - ind.NDVI,
		"lack_of_vegetation": 1 - ind.VegetationDensity,
		"albedo":             1 - ind.Albedo,
		"anthropogenic_heat": minf(areaKm2/5.0, 1.0),
	}

	total := a.cfg.BaseIntensityC
	for _, v := range factors {
		total += v
	}

	return Intensity{
		TemperatureDifferenceC: round2(total),
		Severity:               severityFor(total),
		ContributingFactors:    factors,
		PeakIntensityTime:      "Evening (6-8 PM)",
		SeasonalVariation: map[string]float64{
			"summer": round2(total * 1.3),
			"winter": round2(total * 0.7),
			"spring": round2(total * 1.0),
			"fall":   round2(total * 1.1),
		},
	}
}

func (a *Analyzer) energyImpact(tempDiffC float64, population int, areaKm2 float64) EnergyImpact {
	cooling := tempDiffC * a.cfg.CoolingIncreasePctPerC
	heating := tempDiffC * a.cfg.HeatingDecreasePctPerC * a.cfg.HeatingSeasonWeight
	net := cooling - heating

	totalConsumption := float64(population) * a.cfg.EnergyPerPersonMWh
	additional := totalConsumption * (net / 100)
	cost := additional * a.cfg.EnergyCostPerMWhUSD

	return EnergyImpact{
		NetEnergyIncreasePct:     round2(net),
		CoolingEnergyIncreasePct: round2(cooling),
		HeatingEnergyDecreasePct: round2(heating),
		AdditionalEnergyMWh:      round2(additional),
		AdditionalEnergyCostUSD:  round2(cost),
		AffectedPopulation:       population,
		AffectedBuildings:        int(areaKm2 * a.buildingsPerKm2),
		EfficiencyRating:         energyRating(net),
	}
}

func (a *Analyzer) airQualityImpact(tempDiffC float64, population int) AirQualityImpact {
	ozone := tempDiffC * a.cfg.OzonePpbPerC
	pm25 := tempDiffC * a.cfg.PM25Ugm3PerC
	no2 := tempDiffC * a.cfg.NO2PpbPerC
	aqiIncrease := (ozone + pm25 + no2) / 3

	pop := float64(population)
	respiratory := int(pop * 0.15 * (aqiIncrease / 10))
	cardiovascular := int(pop * 0.08 * (aqiIncrease / 10))
	deaths := int(pop * 0.001 * (aqiIncrease / 20))
	healthCost := float64(respiratory+cardiovascular) * a.cfg.HealthCostPerPersonUSD

	return AirQualityImpact{
		Degradation: AirDegradation{
			OzoneIncreasePpb: round2(ozone),
			PM25IncreaseUgm3: round2(pm25),
			NO2IncreasePpb:   round2(no2),
			AQIIncrease:      round2(aqiIncrease),
		},
		HealthImpacts: AirHealthImpacts{
			RespiratoryIssues:    respiratory,
			CardiovascularIssues: cardiovascular,
			PrematureDeaths:      deaths,
			TotalHealthCostUSD:   round2(healthCost),
		},
		Rating:             airRating(aqiIncrease),
		AffectedPopulation: population,
	}
}

func (a *Analyzer) healthImpact(tempDiffC float64, population int) HealthImpact {
	pop := float64(population)

	stress := int(pop * 0.05 * (tempDiffC / 2))
	exhaustion := int(pop * 0.02 * (tempDiffC / 2))
	stroke := int(pop * 0.001 * (tempDiffC / 2))
	healthcareCost := float64(stress+exhaustion+stroke) * a.cfg.HealthcareCostPerCaseUSD

	elderly := int(pop * 0.15)
	children := int(pop * 0.20)
	lowIncome := int(pop * 0.25)
	vulnerability := vulnerabilityScore(elderly, children, lowIncome, population)

	lossPct := tempDiffC * a.cfg.ProductivityLossPctPerC
	lossUSD := pop * (lossPct / 100) * a.cfg.AverageIncomeUSD

	return HealthImpact{
		HeatRelated: HeatHealthImpacts{
			HeatStressCases:        stress,
			HeatExhaustionCases:    exhaustion,
			HeatStrokeCases:        stroke,
			TotalHealthcareCostUSD: round2(healthcareCost),
		},
		Vulnerable: VulnerablePopulations{
			Elderly:            elderly,
			Children:           children,
			LowIncome:          lowIncome,
			VulnerabilityScore: round2(vulnerability),
		},
		Productivity: ProductivityImpact{
			ProductivityLossPct: round2(lossPct),
			ProductivityLossUSD: round2(lossUSD),
		},
		RiskRating: healthRating(vulnerability, tempDiffC),
	}
}

func (a *Analyzer) economicImpact(energy EnergyImpact, air AirQualityImpact, health HealthImpact, population int, areaKm2 float64) EconomicImpact {
	total := energy.AdditionalEnergyCostUSD +
		health.HeatRelated.TotalHealthcareCostUSD +
		air.HealthImpacts.TotalHealthCostUSD +
		health.Productivity.ProductivityLossUSD

	perCapita := 0.0
	if population > 0 {
		perCapita = total / float64(population)
	}
	perKm2 := 0.0
	if areaKm2 > 0 {
		perKm2 = total / areaKm2
	}

	return EconomicImpact{
		TotalAnnualCostUSD: round2(total),
		Breakdown: CostBreakdown{
			EnergyCostUSD:       energy.AdditionalEnergyCostUSD,
			HealthCostUSD:       health.HeatRelated.TotalHealthcareCostUSD,
			AirQualityCostUSD:   air.HealthImpacts.TotalHealthCostUSD,
			ProductivityLossUSD: health.Productivity.ProductivityLossUSD,
		},
		CostPerCapitaUSD: round2(perCapita),
		CostPerKm2USD:    round2(perKm2),
		Rating:           economicRating(total, population),
	}
}

func (a *Analyzer) overallRisk(intensity Intensity, energy EnergyImpact, air AirQualityImpact, health HealthImpact) float64 {
	tempScore := minf(intensity.TemperatureDifferenceC/5.0, 1.0)
	energyScore := minf(energy.NetEnergyIncreasePct/20.0, 1.0)
	airScore := minf(air.Degradation.AQIIncrease/10.0, 1.0)
	healthScore := minf(health.Vulnerable.VulnerabilityScore, 1.0)

	return round3(tempScore*0.3 + energyScore*0.25 + airScore*0.25 + healthScore*0.2)
}

func vulnerabilityScore(elderly, children, lowIncome, total int) float64 {
	if total == 0 {
		return 0.0
	}
	pop := float64(total)
	return float64(elderly)/pop*0.4 + float64(children)/pop*0.3 + float64(lowIncome)/pop*0.3
}

func severityFor(intensityC float64) string {
	switch {
	case intensityC >= severityExtremeC:
		return "Extreme"
	case intensityC >= severityHighC:
		return "High"
	case intensityC >= severityModerateC:
		return "Moderate"
	default:
		return "Low"
	}
}
