// Package mitigation holds the heat island mitigation strategy catalog and
// plan construction: costing strategies for an area, filtering by budget,
// and ordering by planning focus.
package mitigation

// Strategy is a catalog entry. Costs are per km2; temperature reduction is
// the expected cooling when deployed across the whole area.
type Strategy struct {
	Name                     string   `json:"name"`
	Title                    string   `json:"title"`
	Description              string   `json:"description"`
	TemperatureReductionC    float64  `json:"temperature_reduction_c"`
	ImplementationCostPerKm2 float64  `json:"implementation_cost_per_km2_usd"`
	MaintenanceCostPerKm2    float64  `json:"maintenance_cost_per_km2_usd"`
	Feasibility              float64  `json:"feasibility"`
	Effectiveness            string   `json:"effectiveness"`
	ImplementationTime       string   `json:"implementation_time"`
	Benefits                 []string `json:"benefits"`
}

// Strategy names.
const (
	GreenRoofs    = "green_roofs"
	UrbanForests  = "urban_forests"
	CoolPavements = "cool_pavements"
	WaterFeatures = "water_features"
)

var catalog = []Strategy{
	{
		Name:                     GreenRoofs,
		Title:                    "Green Roofs",
		Description:              "Install vegetation on building rooftops to reduce heat absorption",
		TemperatureReductionC:    1.5,
		ImplementationCostPerKm2: 50000,
		MaintenanceCostPerKm2:    5000,
		Feasibility:              0.8,
		Effectiveness:            "High",
		ImplementationTime:       "6-12 months",
		Benefits: []string{
			"Reduces building cooling costs",
			"Improves air quality",
			"Provides habitat for wildlife",
			"Reduces stormwater runoff",
		},
	},
	{
		Name:                     UrbanForests,
		Title:                    "Urban Forests",
		Description:              "Increase tree canopy coverage throughout the urban area",
		TemperatureReductionC:    2.0,
		ImplementationCostPerKm2: 30000,
		MaintenanceCostPerKm2:    3000,
		Feasibility:              0.9,
		Effectiveness:            "Very High",
		ImplementationTime:       "1-3 years",
		Benefits: []string{
			"Provides shade and cooling",
			"Improves air quality",
			"Reduces noise pollution",
			"Enhances property values",
		},
	},
	{
		Name:                     CoolPavements,
		Title:                    "Cool Pavements",
		Description:              "Replace dark surfaces with reflective materials",
		TemperatureReductionC:    1.0,
		ImplementationCostPerKm2: 40000,
		MaintenanceCostPerKm2:    2000,
		Feasibility:              0.7,
		Effectiveness:            "Medium",
		ImplementationTime:       "3-6 months",
		Benefits: []string{
			"Reduces surface temperature",
			"Improves pedestrian comfort",
			"Reduces maintenance costs",
			"Enhances safety",
		},
	},
	{
		Name:                     WaterFeatures,
		Title:                    "Water Features",
		Description:              "Add fountains, ponds, and water features for evaporative cooling",
		TemperatureReductionC:    0.8,
		ImplementationCostPerKm2: 60000,
		MaintenanceCostPerKm2:    8000,
		Feasibility:              0.6,
		Effectiveness:            "Medium",
		ImplementationTime:       "6-18 months",
		Benefits: []string{
			"Provides evaporative cooling",
			"Enhances aesthetic appeal",
			"Supports biodiversity",
			"Creates recreational spaces",
		},
	},
}

// Catalog returns the full strategy catalog.
func Catalog() []Strategy {
	out := make([]Strategy, len(catalog))
	copy(out, catalog)
	return out
}

// ByName looks up a catalog strategy.
func ByName(name string) (Strategy, bool) {
	for _, s := range catalog {
		if s.Name == name {
			return s, true
		}
	}
	return Strategy{}, false
}
