package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/urbanlens/envirocast/internal/config"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

func initTestConfig(t *testing.T) {
	t.Helper()
	c, err := config.Load()
	require.NoError(t, err)
	cfg = c
}

func TestParseCoords(t *testing.T) {
	initTestConfig(t)

	poly, err := parseCoords("-74.01,40.70;-74.00,40.70;-74.00,40.71;-74.01,40.71")
	require.NoError(t, err)
	assert.Len(t, poly.Vertices(), 4)
	assert.InDelta(t, 1.2392, poly.AreaKm2(), 0.01)
}

func TestParseCoords_Invalid(t *testing.T) {
	initTestConfig(t)

	tests := []struct {
		name   string
		coords string
	}{
		{"empty", ""},
		{"too few pairs", "-74.01,40.70;-74.00,40.70"},
		{"bad pair", "-74.01;40.70;-74.00,40.70;-74.00,40.71"},
		{"not a number", "-74.01,forty;-74.00,40.70;-74.00,40.71"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseCoords(tt.coords)
			assert.Error(t, err)
		})
	}
}

func TestParseIndicators(t *testing.T) {
	ind, err := parseIndicators([]string{"albedo=0.5", "ndvi=0.7"})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, ind.Albedo, 1e-9)
	assert.InDelta(t, 0.7, ind.NDVI, 1e-9)
	// Unset indicators fall back to defaults.
	assert.InDelta(t, 0.6, ind.Permeability, 1e-9)
}

func TestParseIndicators_Invalid(t *testing.T) {
	_, err := parseIndicators([]string{"albedo"})
	assert.Error(t, err)

	_, err = parseIndicators([]string{"albedo=high"})
	assert.Error(t, err)

	_, err = parseIndicators([]string{"albedo=1.7"})
	assert.Error(t, err)
}

func TestParseFeatures(t *testing.T) {
	features, err := parseFeatures([]string{"building_density=0.8", "wind_speed=4"})
	require.NoError(t, err)
	assert.InDelta(t, 0.8, features["building_density"], 1e-9)
	assert.InDelta(t, 4.0, features["wind_speed"], 1e-9)
}
