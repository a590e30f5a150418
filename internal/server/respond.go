package server

import (
	"encoding/json"
	"net/http"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/urbanlens/envirocast/internal/geometry"
	"github.com/urbanlens/envirocast/internal/indicator"
	"github.com/urbanlens/envirocast/internal/mitigation"
	"github.com/urbanlens/envirocast/internal/predictor"
	"github.com/urbanlens/envirocast/internal/store"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("encode response", zap.Error(err))
	}
}

// writeError maps domain sentinels to HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case eris.Is(err, geometry.ErrInvalidGeometry),
		eris.Is(err, geometry.ErrAreaBounds),
		eris.Is(err, indicator.ErrInvalidIndicator),
		eris.Is(err, predictor.ErrInvalidParameter),
		eris.Is(err, mitigation.ErrUnknownFocus),
		eris.Is(err, errBadRequest):
		status = http.StatusBadRequest
	case eris.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		zap.L().Error("request failed", zap.Error(err))
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
