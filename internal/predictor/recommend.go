package predictor

import "sort"

// Recommendation is a suggested intervention derived from domain risk
// scores. Priority 1 is most urgent.
type Recommendation struct {
	Type               string `json:"type"`
	Title              string `json:"title"`
	Description        string `json:"description"`
	Impact             string `json:"impact"`
	Cost               string `json:"cost"`
	Priority           int    `json:"priority"`
	ImplementationTime string `json:"implementation_time"`
}

// Domain risk thresholds for recommendation generation.
const (
	highRiskThreshold     = 0.7
	moderateRiskThreshold = 0.4
)

var heatHighRecs = []Recommendation{
	{
		Type:               "green_infrastructure",
		Title:              "Implement Green Roofs",
		Description:        "Install green roofs on buildings to reduce heat absorption",
		Impact:             "High",
		Cost:               "Medium",
		Priority:           1,
		ImplementationTime: "6-12 months",
	},
	{
		Type:               "vegetation",
		Title:              "Increase Tree Canopy",
		Description:        "Plant trees to provide shade and cooling",
		Impact:             "High",
		Cost:               "Low",
		Priority:           1,
		ImplementationTime: "1-3 years",
	},
}

var heatModerateRec = Recommendation{
	Type:               "materials",
	Title:              "Use Reflective Materials",
	Description:        "Replace dark surfaces with reflective materials",
	Impact:             "Medium",
	Cost:               "Medium",
	Priority:           2,
	ImplementationTime: "3-6 months",
}

var waterHighRecs = []Recommendation{
	{
		Type:               "infrastructure",
		Title:              "Install Permeable Pavement",
		Description:        "Replace impervious surfaces with permeable materials",
		Impact:             "High",
		Cost:               "High",
		Priority:           1,
		ImplementationTime: "6-18 months",
	},
	{
		Type:               "infrastructure",
		Title:              "Create Rain Gardens",
		Description:        "Install rain gardens to capture and filter stormwater",
		Impact:             "High",
		Cost:               "Medium",
		Priority:           1,
		ImplementationTime: "3-6 months",
	},
}

var waterModerateRec = Recommendation{
	Type:               "infrastructure",
	Title:              "Improve Drainage Systems",
	Description:        "Upgrade existing drainage infrastructure",
	Impact:             "Medium",
	Cost:               "Medium",
	Priority:           2,
	ImplementationTime: "6-12 months",
}

var airHighRecs = []Recommendation{
	{
		Type:               "transportation",
		Title:              "Promote Electric Vehicles",
		Description:        "Install EV charging stations and promote electric vehicle use",
		Impact:             "High",
		Cost:               "High",
		Priority:           1,
		ImplementationTime: "12-24 months",
	},
	{
		Type:               "vegetation",
		Title:              "Plant Air-Purifying Vegetation",
		Description:        "Plant trees and vegetation that filter air pollutants",
		Impact:             "Medium",
		Cost:               "Low",
		Priority:           1,
		ImplementationTime: "1-3 years",
	},
}

var airModerateRec = Recommendation{
	Type:               "transportation",
	Title:              "Improve Public Transit",
	Description:        "Enhance public transportation to reduce vehicle emissions",
	Impact:             "Medium",
	Cost:               "High",
	Priority:           2,
	ImplementationTime: "12-36 months",
}

// Recommend derives interventions from the three domain risk scores. Each
// high-risk domain contributes two priority-1 actions, each moderate-risk
// domain one priority-2 action. The result is sorted descending on the
// numeric priority field; low-risk inputs produce an empty slice.
func Recommend(heatRisk, waterRisk, airRisk float64) []Recommendation {
	recs := make([]Recommendation, 0, 6)

	recs = append(recs, domainRecs(heatRisk, heatHighRecs, heatModerateRec)...)
	recs = append(recs, domainRecs(waterRisk, waterHighRecs, waterModerateRec)...)
	recs = append(recs, domainRecs(airRisk, airHighRecs, airModerateRec)...)

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Priority > recs[j].Priority
	})

	return recs
}

func domainRecs(risk float64, high []Recommendation, moderate Recommendation) []Recommendation {
	switch {
	case risk > highRiskThreshold:
		return high
	case risk > moderateRiskThreshold:
		return []Recommendation{moderate}
	default:
		return nil
	}
}
