// Package indicator resolves optional remote-sensing-derived environmental
// indicators against a complete set of documented defaults, so predictors
// always receive fully populated inputs.
package indicator

import (
	"sort"

	"github.com/rotisserie/eris"
)

// ErrInvalidIndicator indicates an indicator value outside its documented
// range, or an unrecognized indicator name.
var ErrInvalidIndicator = eris.New("indicator: invalid value")

// Indicator names accepted by Resolve.
const (
	NDVI              = "ndvi"
	Albedo            = "albedo"
	VegetationDensity = "vegetation_density"
	VegetationCover   = "vegetation_cover"
	Permeability      = "permeability"
	BuildingDensity   = "building_density"
	TrafficDensity    = "traffic_density"
	IndustrialZones   = "industrial_zones"
	WindSpeed         = "wind_speed"
	SoilType          = "soil_type"
	Slope             = "slope"
	ImperviousSurface = "impervious_surface"
	Drainage          = "drainage_infrastructure"
)

// Set is a fully resolved indicator record. Every field carries either a
// caller-supplied value or its documented default.
type Set struct {
	NDVI              float64 `json:"ndvi"`
	Albedo            float64 `json:"albedo"`
	VegetationDensity float64 `json:"vegetation_density"`
	VegetationCover   float64 `json:"vegetation_cover"`
	Permeability      float64 `json:"permeability"`
	BuildingDensity   float64 `json:"building_density"`
	TrafficDensity    float64 `json:"traffic_density"`
	IndustrialZones   float64 `json:"industrial_zones"`
	WindSpeed         float64 `json:"wind_speed"`
	SoilType          float64 `json:"soil_type"`
	Slope             float64 `json:"slope"`
	ImperviousSurface float64 `json:"impervious_surface"`
	Drainage          float64 `json:"drainage_infrastructure"`
}

// Defaults returns the documented default indicator record. Predictors built
// on a defaulted Set reproduce the constant-only baseline formulas exactly.
func Defaults() Set {
	return Set{
		NDVI:              0.5,
		Albedo:            0.3,
		VegetationDensity: 0.4,
		VegetationCover:   0.3,
		Permeability:      0.6,
		BuildingDensity:   0.5,
		TrafficDensity:    0.5,
		IndustrialZones:   0.2,
		WindSpeed:         3.0,
		SoilType:          0.5,
		Slope:             0.1,
		ImperviousSurface: 0.3,
		Drainage:          0.5,
	}
}

// bound describes the valid range for one indicator.
type bound struct {
	min, max float64
	set      func(*Set, float64)
}

var bounds = map[string]bound{
	NDVI:              {-1, 1, func(s *Set, v float64) { s.NDVI = v }},
	Albedo:            {0, 1, func(s *Set, v float64) { s.Albedo = v }},
	VegetationDensity: {0, 1, func(s *Set, v float64) { s.VegetationDensity = v }},
	VegetationCover:   {0, 1, func(s *Set, v float64) { s.VegetationCover = v }},
	Permeability:      {0, 1, func(s *Set, v float64) { s.Permeability = v }},
	BuildingDensity:   {0, 1, func(s *Set, v float64) { s.BuildingDensity = v }},
	TrafficDensity:    {0, 1, func(s *Set, v float64) { s.TrafficDensity = v }},
	IndustrialZones:   {0, 1, func(s *Set, v float64) { s.IndustrialZones = v }},
	WindSpeed:         {0, 100, func(s *Set, v float64) { s.WindSpeed = v }},
	SoilType:          {0, 1, func(s *Set, v float64) { s.SoilType = v }},
	Slope:             {0, 90, func(s *Set, v float64) { s.Slope = v }},
	ImperviousSurface: {0, 1, func(s *Set, v float64) { s.ImperviousSurface = v }},
	Drainage:          {0, 1, func(s *Set, v float64) { s.Drainage = v }},
}

// Names returns the accepted indicator names in sorted order.
func Names() []string {
	names := make([]string, 0, len(bounds))
	for name := range bounds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve merges a partial indicator mapping over the default record. Unknown
// names and out-of-range values are rejected; a nil or empty mapping yields
// the defaults unchanged.
func Resolve(partial map[string]float64) (Set, error) {
	resolved := Defaults()
	for name, value := range partial {
		b, ok := bounds[name]
		if !ok {
			return Set{}, eris.Wrapf(ErrInvalidIndicator, "unknown indicator %q", name)
		}
		if value < b.min || value > b.max {
			return Set{}, eris.Wrapf(ErrInvalidIndicator, "%s=%v outside [%v, %v]", name, value, b.min, b.max)
		}
		b.set(&resolved, value)
	}
	return resolved, nil
}
