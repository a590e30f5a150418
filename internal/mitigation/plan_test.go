package mitigation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/urbanlens/envirocast/internal/config"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

func testUHICfg() config.UHIConfig {
	return config.UHIConfig{
		BaseIntensityC:           2.5,
		CoolingIncreasePctPerC:   3.5,
		HeatingDecreasePctPerC:   2.0,
		HeatingSeasonWeight:      0.3,
		EnergyPerPersonMWh:       12.5,
		EnergyCostPerMWhUSD:      120.0,
		OzonePpbPerC:             2.0,
		PM25Ugm3PerC:             1.5,
		NO2PpbPerC:               1.2,
		HealthCostPerPersonUSD:   500.0,
		HealthcareCostPerCaseUSD: 2000.0,
		AverageIncomeUSD:         50000.0,
		ProductivityLossPctPerC:  0.5,
		MaxMitigationShare:       0.8,
	}
}

func TestCatalogContents(t *testing.T) {
	t.Parallel()

	strategies := Catalog()
	require.Len(t, strategies, 4)

	forests, ok := ByName(UrbanForests)
	require.True(t, ok)
	assert.Equal(t, "Urban Forests", forests.Title)
	assert.InDelta(t, 2.0, forests.TemperatureReductionC, 1e-9)
	assert.InDelta(t, 30000.0, forests.ImplementationCostPerKm2, 1e-9)
	assert.InDelta(t, 0.9, forests.Feasibility, 1e-9)

	_, ok = ByName("solar_shades")
	assert.False(t, ok)
}

func TestCatalogIsCopied(t *testing.T) {
	t.Parallel()

	first := Catalog()
	first[0].TemperatureReductionC = 99.0

	second := Catalog()
	assert.NotEqual(t, 99.0, second[0].TemperatureReductionC)
}

func TestBuildPlan(t *testing.T) {
	t.Parallel()

	b := NewBuilder(testUHICfg())
	plan := b.Build(2.0, 4.0, 2000, "High")

	require.Len(t, plan.Strategies, 4)

	// Combined catalog reduction is 5.3C but the cap is 80% of the 4.0C
	// intensity.
	assert.InDelta(t, 3.2, plan.AchievableReductionC, 1e-9)

	assert.InDelta(t, 360000.0, plan.Cost.TotalImplementationCostUSD, 1e-9)
	assert.InDelta(t, 36000.0, plan.Cost.TotalAnnualMaintenanceUSD, 1e-9)

	// energy 336000 + health 640000 + productivity 1600000
	assert.InDelta(t, 2576000.0, plan.Cost.AnnualBenefitsUSD, 1e-9)

	require.True(t, plan.Cost.PaybackPeriodYears.Achievable)
	assert.InDelta(t, 0.1, plan.Cost.PaybackPeriodYears.Years, 1e-9)

	assert.Equal(t, "High", plan.Priority)
	assert.Equal(t, "3-5 years", plan.ImplementationTimeline)
}

func TestBuildPlanReductionBelowCap(t *testing.T) {
	t.Parallel()

	b := NewBuilder(testUHICfg())

	// Intensity high enough that the catalog total, not the cap, binds.
	plan := b.Build(1.0, 10.0, 1000, "Extreme")
	assert.InDelta(t, 5.3, plan.AchievableReductionC, 1e-9)
	assert.Equal(t, "Critical", plan.Priority)
}

func TestBuildPlanPaybackNotAchievable(t *testing.T) {
	t.Parallel()

	b := NewBuilder(testUHICfg())

	// No population means no benefits, so maintenance is never recovered.
	plan := b.Build(2.0, 4.0, 0, "Moderate")
	assert.False(t, plan.Cost.PaybackPeriodYears.Achievable)

	data, err := json.Marshal(plan.Cost)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"payback_period_years":"N/A"`)
}

func TestPaybackPeriodJSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(PaybackPeriod{Years: 2.5, Achievable: true})
	require.NoError(t, err)
	assert.Equal(t, "2.5", string(data))

	var p PaybackPeriod
	require.NoError(t, json.Unmarshal([]byte(`"N/A"`), &p))
	assert.False(t, p.Achievable)

	require.NoError(t, json.Unmarshal([]byte("3.1"), &p))
	assert.True(t, p.Achievable)
	assert.InDelta(t, 3.1, p.Years, 1e-9)
}

func TestAnnualBenefits(t *testing.T) {
	t.Parallel()

	b := NewBuilder(testUHICfg())

	assert.InDelta(t, 0.0, b.AnnualBenefits(2.0, 0), 1e-9)
	assert.InDelta(t, 0.0, b.AnnualBenefits(0.0, 5000), 1e-9)

	// 1000 people, 1C: energy 52500 + health 100000 + productivity 250000
	assert.InDelta(t, 402500.0, b.AnnualBenefits(1.0, 1000), 1e-9)
}
