package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 100.0, cfg.Geometry.MaxAreaKm2)
	assert.False(t, cfg.Geometry.UseUTM)

	assert.Equal(t, 0.4, cfg.Predictor.HeatWeight)
	assert.Equal(t, 0.3, cfg.Predictor.WaterWeight)
	assert.Equal(t, 0.3, cfg.Predictor.AirWeight)
	assert.InDelta(t, 1.0, cfg.Predictor.HeatWeight+cfg.Predictor.WaterWeight+cfg.Predictor.AirWeight, 1e-9)

	assert.Equal(t, 25.0, cfg.Predictor.BaselineTemperatureC)
	assert.Equal(t, 0.6, cfg.Predictor.BaselineAbsorptionRate)
	assert.Equal(t, 75.0, cfg.Predictor.BaselineAQI)
	assert.Equal(t, -0.1, cfg.Predictor.WaterRatePerDecade)
	assert.Equal(t, 1000.0, cfg.Predictor.PopulationDensityPerKm2)

	assert.Equal(t, 2.5, cfg.UHI.BaseIntensityC)
	assert.Equal(t, 0.8, cfg.UHI.MaxMitigationShare)
	assert.Equal(t, 12.5, cfg.UHI.EnergyPerPersonMWh)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("ENVIROCAST_SERVER_PORT", "9191")
	t.Setenv("ENVIROCAST_STORE_DRIVER", "postgres")
	t.Setenv("ENVIROCAST_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestInitLogger(t *testing.T) {
	tests := []struct {
		name    string
		cfg     LogConfig
		wantErr bool
	}{
		{name: "json info", cfg: LogConfig{Level: "info", Format: "json"}},
		{name: "console debug", cfg: LogConfig{Level: "debug", Format: "console"}},
		{name: "bad level", cfg: LogConfig{Level: "shouty", Format: "json"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := InitLogger(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
