package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rotisserie/eris"

	"github.com/urbanlens/envirocast/internal/config"
	"github.com/urbanlens/envirocast/internal/geometry"
	"github.com/urbanlens/envirocast/internal/indicator"
	"github.com/urbanlens/envirocast/internal/mitigation"
	"github.com/urbanlens/envirocast/internal/predictor"
	"github.com/urbanlens/envirocast/internal/store"
	"github.com/urbanlens/envirocast/internal/uhi"
)

var errBadRequest = eris.New("server: bad request")

const (
	defaultHorizonYears    = 10
	defaultConfidenceLevel = 0.95
)

// areaRequest is the common body for area-based operations.
type areaRequest struct {
	Coordinates             [][]float64        `json:"coordinates"`
	TimeHorizonYears        int                `json:"time_horizon_years"`
	EnvironmentalIndicators map[string]float64 `json:"environmental_indicators"`
}

// resolve validates the request geometry and indicator overrides.
func (req *areaRequest) resolve(geo config.GeometryConfig) (*geometry.Polygon, indicator.Set, int, error) {
	poly, err := geometry.FromCoords(req.Coordinates)
	if err != nil {
		return nil, indicator.Set{}, 0, err
	}
	if geo.UseUTM {
		poly.ProjectUTM()
	}
	if err := poly.CheckBounds(geo.MaxAreaKm2); err != nil {
		return nil, indicator.Set{}, 0, err
	}
	ind, err := indicator.Resolve(req.EnvironmentalIndicators)
	if err != nil {
		return nil, indicator.Set{}, 0, err
	}
	horizon := req.TimeHorizonYears
	if horizon == 0 {
		horizon = defaultHorizonYears
	}
	return poly, ind, horizon, nil
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return eris.Wrapf(errBadRequest, "decode body: %v", err)
	}
	return nil
}

// saveRecord persists a result under the same ID the caller returned to
// the client.
func (s *Server) saveRecord(r *http.Request, id string, kind store.Kind, poly *geometry.Polygon, horizon int, risk float64, payload any) error {
	result, err := json.Marshal(payload)
	if err != nil {
		return eris.Wrap(err, "server: marshal result")
	}
	var wkb []byte
	if poly != nil {
		if wkb, err = store.EncodeAreaWKB(poly); err != nil {
			return err
		}
	}
	rec := &store.Record{
		ID:               id,
		Kind:             kind,
		AreaWKB:          wkb,
		TimeHorizonYears: horizon,
		OverallRiskScore: risk,
	}
	if poly != nil {
		rec.AreaKm2 = poly.AreaKm2()
	}
	rec.Result = result
	return s.store.Save(r.Context(), rec)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req areaRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	poly, ind, horizon, err := req.resolve(s.cfg.Geometry)
	if err != nil {
		writeError(w, err)
		return
	}

	assessment, err := s.engine.Assess(r.Context(), poly, horizon, ind)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.saveRecord(r, assessment.ID, store.KindAssessment, poly, horizon, assessment.OverallRiskScore, assessment); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, assessment)
}

type predictRequest struct {
	ModelType        string             `json:"model_type"`
	Features         map[string]float64 `json:"features"`
	TimeHorizonYears int                `json:"time_horizon_years"`
	ConfidenceLevel  float64            `json:"confidence_level"`
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var req predictRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	horizon := req.TimeHorizonYears
	if horizon == 0 {
		horizon = defaultHorizonYears
	}
	confidence := req.ConfidenceLevel
	if confidence == 0 {
		confidence = defaultConfidenceLevel
	}

	var (
		payload any
		risk    float64
		err     error
	)
	switch req.ModelType {
	case "heat_island":
		var p predictor.HeatPrediction
		if p, err = s.engine.Heat().Predict(req.Features, horizon, confidence); err == nil {
			payload, risk = p, p.RiskScore
		}
	case "water_absorption":
		var p predictor.WaterPrediction
		if p, err = s.engine.Water().Predict(req.Features, horizon, confidence); err == nil {
			payload, risk = p, p.FloodRiskScore
		}
	case "air_quality":
		var p predictor.AirPrediction
		if p, err = s.engine.Air().Predict(req.Features, horizon, confidence); err == nil {
			payload, risk = p, p.RiskScore
		}
	case "comprehensive", "":
		var p *predictor.ComprehensivePrediction
		if p, err = s.engine.PredictAll(r.Context(), req.Features, horizon, confidence); err == nil {
			payload = p
			risk = p.Heat.RiskScore
		}
	default:
		err = eris.Wrapf(errBadRequest, "unknown model type %q", req.ModelType)
	}
	if err != nil {
		writeError(w, err)
		return
	}

	resp := map[string]any{
		"model_type": req.ModelType,
		"prediction": payload,
	}
	if req.ModelType == "" {
		resp["model_type"] = "comprehensive"
	}
	if p, ok := payload.(*predictor.ComprehensivePrediction); ok {
		if err := s.saveRecord(r, p.ID, store.KindPrediction, nil, horizon, risk, p); err != nil {
			writeError(w, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUHI(w http.ResponseWriter, r *http.Request) {
	var req areaRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	poly, ind, horizon, err := req.resolve(s.cfg.Geometry)
	if err != nil {
		writeError(w, err)
		return
	}

	analysis, err := s.analyzer.Analyze(poly, horizon, ind)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.saveRecord(r, analysis.ID, store.KindUHIAnalysis, poly, horizon, analysis.OverallRiskScore, analysis); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

type mitigationRequest struct {
	areaRequest
	BudgetConstraintUSD float64 `json:"budget_constraint_usd"`
	PriorityFocus       string  `json:"priority_focus"`
}

type mitigationResponse struct {
	AnalysisID           string                              `json:"analysis_id"`
	UHIIntensityC        float64                             `json:"uhi_intensity_c"`
	AchievableReductionC float64                             `json:"achievable_reduction_c"`
	BudgetConstraintUSD  float64                             `json:"budget_constraint_usd,omitempty"`
	PriorityFocus        mitigation.Focus                    `json:"priority_focus"`
	Recommendations      []mitigation.PriorityRecommendation `json:"recommendations"`
}

func (s *Server) handleMitigation(w http.ResponseWriter, r *http.Request) {
	var req mitigationRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	focus, err := mitigation.ParseFocus(req.PriorityFocus)
	if err != nil {
		writeError(w, err)
		return
	}
	poly, ind, horizon, err := req.resolve(s.cfg.Geometry)
	if err != nil {
		writeError(w, err)
		return
	}

	analysis, err := s.analyzer.Analyze(poly, horizon, ind)
	if err != nil {
		writeError(w, err)
		return
	}

	costed := s.plans.CostCatalog(poly.AreaKm2())
	affordable := mitigation.FilterByBudget(costed, req.BudgetConstraintUSD)
	recs := mitigation.Prioritize(affordable, focus)

	writeJSON(w, http.StatusOK, mitigationResponse{
		AnalysisID:           analysis.ID,
		UHIIntensityC:        analysis.Intensity.TemperatureDifferenceC,
		AchievableReductionC: analysis.Mitigation.AchievableReductionC,
		BudgetConstraintUSD:  req.BudgetConstraintUSD,
		PriorityFocus:        focus,
		Recommendations:      recs,
	})
}

type compareRequest struct {
	Baseline         areaRequest `json:"baseline"`
	Proposed         areaRequest `json:"proposed"`
	TimeHorizonYears int         `json:"time_horizon_years"`
}

type compareResponse struct {
	Baseline   *uhi.Analysis  `json:"baseline"`
	Proposed   *uhi.Analysis  `json:"proposed"`
	Comparison uhi.Comparison `json:"comparison"`
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.TimeHorizonYears != 0 {
		req.Baseline.TimeHorizonYears = req.TimeHorizonYears
		req.Proposed.TimeHorizonYears = req.TimeHorizonYears
	}

	basePoly, baseInd, baseHorizon, err := req.Baseline.resolve(s.cfg.Geometry)
	if err != nil {
		writeError(w, eris.Wrap(err, "baseline"))
		return
	}
	propPoly, propInd, propHorizon, err := req.Proposed.resolve(s.cfg.Geometry)
	if err != nil {
		writeError(w, eris.Wrap(err, "proposed"))
		return
	}

	baseline, err := s.analyzer.Analyze(basePoly, baseHorizon, baseInd)
	if err != nil {
		writeError(w, err)
		return
	}
	proposed, err := s.analyzer.Analyze(propPoly, propHorizon, propInd)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, compareResponse{
		Baseline:   baseline,
		Proposed:   proposed,
		Comparison: uhi.Compare(baseline, proposed),
	})
}

func (s *Server) handleStrategies(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"strategies": mitigation.Catalog()})
}

func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	filter := store.Filter{
		Kind:  store.Kind(r.URL.Query().Get("kind")),
		Limit: 50,
	}
	if v := r.URL.Query().Get("min_risk"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, eris.Wrapf(errBadRequest, "min_risk: %v", err))
			return
		}
		filter.MinRiskScore = f
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, eris.Wrapf(errBadRequest, "limit: %v", err))
			return
		}
		filter.Limit = n
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, eris.Wrapf(errBadRequest, "offset: %v", err))
			return
		}
		filter.Offset = n
	}

	records, err := s.store.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count":   len(records),
		"records": records,
	})
}

func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
