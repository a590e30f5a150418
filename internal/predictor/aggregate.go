package predictor

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/urbanlens/envirocast/internal/config"
	"github.com/urbanlens/envirocast/internal/geometry"
	"github.com/urbanlens/envirocast/internal/indicator"
)

// HeatAnalyzer is the heat domain as seen by the aggregate engine.
type HeatAnalyzer interface {
	Analyze(poly *geometry.Polygon, horizonYears int, ind indicator.Set) (HeatResult, error)
	Predict(features map[string]float64, horizonYears int, confidenceLevel float64) (HeatPrediction, error)
}

// WaterAnalyzer is the water domain as seen by the aggregate engine.
type WaterAnalyzer interface {
	Analyze(poly *geometry.Polygon, horizonYears int, ind indicator.Set) (WaterResult, error)
	Predict(features map[string]float64, horizonYears int, confidenceLevel float64) (WaterPrediction, error)
}

// AirAnalyzer is the air domain as seen by the aggregate engine.
type AirAnalyzer interface {
	Analyze(poly *geometry.Polygon, horizonYears int, ind indicator.Set) (AirResult, error)
	Predict(features map[string]float64, horizonYears int, confidenceLevel float64) (AirPrediction, error)
}

// Assessment is the combined three-domain environmental assessment.
type Assessment struct {
	ID               string           `json:"assessment_id"`
	AreaKm2          float64          `json:"area_km2"`
	TimeHorizonYears int              `json:"time_horizon_years"`
	Heat             HeatResult       `json:"heat_island"`
	Water            WaterResult      `json:"water_absorption"`
	Air              AirResult        `json:"air_quality"`
	OverallRiskScore float64          `json:"overall_risk_score"`
	OverallRiskLevel RiskLevel        `json:"overall_risk_level"`
	Recommendations  []Recommendation `json:"recommendations"`
	GeneratedAt      time.Time        `json:"generated_at"`
}

// ComprehensivePrediction bundles the three feature-based predictions.
type ComprehensivePrediction struct {
	ID          string          `json:"prediction_id"`
	Heat        HeatPrediction  `json:"heat_island"`
	Water       WaterPrediction `json:"water_absorption"`
	Air         AirPrediction   `json:"air_quality"`
	GeneratedAt time.Time       `json:"generated_at"`
}

// Engine runs the three domain predictors and combines their scores.
type Engine struct {
	cfg   config.PredictorConfig
	heat  HeatAnalyzer
	water WaterAnalyzer
	air   AirAnalyzer
}

// NewEngine returns an engine wired to the standard domain predictors.
func NewEngine(cfg config.PredictorConfig) *Engine {
	return &Engine{
		cfg:   cfg,
		heat:  NewHeat(cfg),
		water: NewWater(cfg),
		air:   NewAir(cfg),
	}
}

// NewEngineWith returns an engine with explicit domain predictors.
func NewEngineWith(cfg config.PredictorConfig, heat HeatAnalyzer, water WaterAnalyzer, air AirAnalyzer) *Engine {
	return &Engine{cfg: cfg, heat: heat, water: water, air: air}
}

// Assess runs all three domain analyses concurrently and combines them
// into an overall assessment with recommendations.
func (e *Engine) Assess(ctx context.Context, poly *geometry.Polygon, horizonYears int, ind indicator.Set) (*Assessment, error) {
	if err := validateHorizon(horizonYears); err != nil {
		return nil, err
	}

	var (
		heat  HeatResult
		water WaterResult
		air   AirResult
	)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if heat, err = e.heat.Analyze(poly, horizonYears, ind); err != nil {
			return eris.Wrap(err, "heat")
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if water, err = e.water.Analyze(poly, horizonYears, ind); err != nil {
			return eris.Wrap(err, "water")
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if air, err = e.air.Analyze(poly, horizonYears, ind); err != nil {
			return eris.Wrap(err, "air")
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, eris.Wrapf(ErrDomainPrediction, "%v", err)
	}

	overall := e.cfg.HeatWeight*heat.RiskScore +
		e.cfg.WaterWeight*water.RiskScore +
		e.cfg.AirWeight*air.RiskScore

	assessment := &Assessment{
		ID:               uuid.NewString(),
		AreaKm2:          round2(poly.AreaKm2()),
		TimeHorizonYears: horizonYears,
		Heat:             heat,
		Water:            water,
		Air:              air,
		OverallRiskScore: round3(overall),
		OverallRiskLevel: LevelForScore(overall),
		Recommendations:  Recommend(heat.RiskScore, water.RiskScore, air.RiskScore),
		GeneratedAt:      time.Now().UTC(),
	}

	zap.L().Info("assessment complete",
		zap.String("assessment_id", assessment.ID),
		zap.Float64("area_km2", assessment.AreaKm2),
		zap.Int("horizon_years", horizonYears),
		zap.Float64("overall_risk_score", assessment.OverallRiskScore),
		zap.String("overall_risk_level", string(assessment.OverallRiskLevel)))

	return assessment, nil
}

// PredictAll runs the three feature-based predictions concurrently.
func (e *Engine) PredictAll(ctx context.Context, features map[string]float64, horizonYears int, confidenceLevel float64) (*ComprehensivePrediction, error) {
	if err := validateHorizon(horizonYears); err != nil {
		return nil, err
	}
	if err := validateConfidence(confidenceLevel); err != nil {
		return nil, err
	}

	out := &ComprehensivePrediction{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
	}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if out.Heat, err = e.heat.Predict(features, horizonYears, confidenceLevel); err != nil {
			return eris.Wrap(err, "heat")
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if out.Water, err = e.water.Predict(features, horizonYears, confidenceLevel); err != nil {
			return eris.Wrap(err, "water")
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if out.Air, err = e.air.Predict(features, horizonYears, confidenceLevel); err != nil {
			return eris.Wrap(err, "air")
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, eris.Wrapf(ErrDomainPrediction, "%v", err)
	}

	return out, nil
}

// Heat exposes the heat domain predictor.
func (e *Engine) Heat() HeatAnalyzer { return e.heat }

// Water exposes the water domain predictor.
func (e *Engine) Water() WaterAnalyzer { return e.water }

// Air exposes the air domain predictor.
func (e *Engine) Air() AirAnalyzer { return e.air }
