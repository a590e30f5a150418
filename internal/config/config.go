// Package config loads application configuration from file and environment
// and initializes the global logger. Every policy constant used by the
// prediction engine is a named, overridable field whose default matches the
// published model coefficients.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Geometry  GeometryConfig  `yaml:"geometry" mapstructure:"geometry"`
	Predictor PredictorConfig `yaml:"predictor" mapstructure:"predictor"`
	UHI       UHIConfig       `yaml:"uhi" mapstructure:"uhi"`
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// GeometryConfig configures area computation and bounds checking.
type GeometryConfig struct {
	MaxAreaKm2 float64 `yaml:"max_area_km2" mapstructure:"max_area_km2"`
	// UseUTM switches area computation to the UTM-projected variant. The
	// flat degree-scalar fast path stays the default so results are
	// reproducible against the published coefficients.
	UseUTM bool `yaml:"use_utm" mapstructure:"use_utm"`
}

// PredictorConfig holds the domain predictor coefficients and the aggregate
// risk weights.
type PredictorConfig struct {
	HeatWeight  float64 `yaml:"heat_weight" mapstructure:"heat_weight"`
	WaterWeight float64 `yaml:"water_weight" mapstructure:"water_weight"`
	AirWeight   float64 `yaml:"air_weight" mapstructure:"air_weight"`

	BaselineTemperatureC   float64 `yaml:"baseline_temperature_c" mapstructure:"baseline_temperature_c"`
	BaselineAbsorptionRate float64 `yaml:"baseline_absorption_rate" mapstructure:"baseline_absorption_rate"`
	BaselineAQI            float64 `yaml:"baseline_aqi" mapstructure:"baseline_aqi"`

	HeatRatePerDecadeC      float64 `yaml:"heat_rate_per_decade_c" mapstructure:"heat_rate_per_decade_c"`
	WaterRatePerDecade      float64 `yaml:"water_rate_per_decade" mapstructure:"water_rate_per_decade"`
	AirRatePerDecadeAQI     float64 `yaml:"air_rate_per_decade_aqi" mapstructure:"air_rate_per_decade_aqi"`
	PopulationDensityPerKm2 float64 `yaml:"population_density_per_km2" mapstructure:"population_density_per_km2"`

	HeatMarginPct  float64 `yaml:"heat_margin_pct" mapstructure:"heat_margin_pct"`
	WaterMarginPct float64 `yaml:"water_margin_pct" mapstructure:"water_margin_pct"`
	AirMarginPct   float64 `yaml:"air_margin_pct" mapstructure:"air_margin_pct"`
}

// UHIConfig holds the deep heat-island model coefficients. The values are
// policy constants with no cited derivation; override only on an explicit
// product decision.
type UHIConfig struct {
	BaseIntensityC float64 `yaml:"base_intensity_c" mapstructure:"base_intensity_c"`

	CoolingIncreasePctPerC float64 `yaml:"cooling_increase_pct_per_c" mapstructure:"cooling_increase_pct_per_c"`
	HeatingDecreasePctPerC float64 `yaml:"heating_decrease_pct_per_c" mapstructure:"heating_decrease_pct_per_c"`
	HeatingSeasonWeight    float64 `yaml:"heating_season_weight" mapstructure:"heating_season_weight"`
	EnergyPerPersonMWh     float64 `yaml:"energy_per_person_mwh" mapstructure:"energy_per_person_mwh"`
	EnergyCostPerMWhUSD    float64 `yaml:"energy_cost_per_mwh_usd" mapstructure:"energy_cost_per_mwh_usd"`

	OzonePpbPerC float64 `yaml:"ozone_ppb_per_c" mapstructure:"ozone_ppb_per_c"`
	PM25Ugm3PerC float64 `yaml:"pm25_ugm3_per_c" mapstructure:"pm25_ugm3_per_c"`
	NO2PpbPerC   float64 `yaml:"no2_ppb_per_c" mapstructure:"no2_ppb_per_c"`

	HealthCostPerPersonUSD   float64 `yaml:"health_cost_per_person_usd" mapstructure:"health_cost_per_person_usd"`
	HealthcareCostPerCaseUSD float64 `yaml:"healthcare_cost_per_case_usd" mapstructure:"healthcare_cost_per_case_usd"`
	AverageIncomeUSD         float64 `yaml:"average_income_usd" mapstructure:"average_income_usd"`
	ProductivityLossPctPerC  float64 `yaml:"productivity_loss_pct_per_c" mapstructure:"productivity_loss_pct_per_c"`

	MaxMitigationShare float64 `yaml:"max_mitigation_share" mapstructure:"max_mitigation_share"`
}

// StoreConfig configures the assessment persistence backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	RateLimitRPS   float64  `yaml:"rate_limit_rps" mapstructure:"rate_limit_rps"`
	RateLimitBurst int      `yaml:"rate_limit_burst" mapstructure:"rate_limit_burst"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("ENVIROCAST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("geometry.max_area_km2", 100.0)
	v.SetDefault("geometry.use_utm", false)

	v.SetDefault("predictor.heat_weight", 0.4)
	v.SetDefault("predictor.water_weight", 0.3)
	v.SetDefault("predictor.air_weight", 0.3)
	v.SetDefault("predictor.baseline_temperature_c", 25.0)
	v.SetDefault("predictor.baseline_absorption_rate", 0.6)
	v.SetDefault("predictor.baseline_aqi", 75.0)
	v.SetDefault("predictor.heat_rate_per_decade_c", 1.0)
	v.SetDefault("predictor.water_rate_per_decade", -0.1)
	v.SetDefault("predictor.air_rate_per_decade_aqi", 10.0)
	v.SetDefault("predictor.population_density_per_km2", 1000.0)
	v.SetDefault("predictor.heat_margin_pct", 0.20)
	v.SetDefault("predictor.water_margin_pct", 0.15)
	v.SetDefault("predictor.air_margin_pct", 0.10)

	v.SetDefault("uhi.base_intensity_c", 2.5)
	v.SetDefault("uhi.cooling_increase_pct_per_c", 3.5)
	v.SetDefault("uhi.heating_decrease_pct_per_c", 2.0)
	v.SetDefault("uhi.heating_season_weight", 0.3)
	v.SetDefault("uhi.energy_per_person_mwh", 12.5)
	v.SetDefault("uhi.energy_cost_per_mwh_usd", 120.0)
	v.SetDefault("uhi.ozone_ppb_per_c", 2.0)
	v.SetDefault("uhi.pm25_ugm3_per_c", 1.5)
	v.SetDefault("uhi.no2_ppb_per_c", 1.2)
	v.SetDefault("uhi.health_cost_per_person_usd", 500.0)
	v.SetDefault("uhi.healthcare_cost_per_case_usd", 2000.0)
	v.SetDefault("uhi.average_income_usd", 50000.0)
	v.SetDefault("uhi.productivity_loss_pct_per_c", 0.5)
	v.SetDefault("uhi.max_mitigation_share", 0.8)

	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "envirocast.db")

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.rate_limit_rps", 20.0)
	v.SetDefault("server.rate_limit_burst", 40)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
