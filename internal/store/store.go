// Package store persists assessment results. Two backends implement the
// same interface: SQLite for single-node CLI use and Postgres for the
// service deployment.
package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = eris.New("store: record not found")

// Kind distinguishes the result types kept in the records table.
type Kind string

const (
	KindAssessment  Kind = "assessment"
	KindUHIAnalysis Kind = "uhi_analysis"
	KindPrediction  Kind = "prediction"
)

// Record is one persisted analysis result. AreaWKB holds the analyzed
// polygon as EWKB with SRID 4326; Result holds the full JSON document as
// produced by the engine.
type Record struct {
	ID               string          `json:"id"`
	Kind             Kind            `json:"kind"`
	AreaWKB          []byte          `json:"-"`
	AreaKm2          float64         `json:"area_km2"`
	TimeHorizonYears int             `json:"time_horizon_years"`
	OverallRiskScore float64         `json:"overall_risk_score"`
	Result           json.RawMessage `json:"result"`
	CreatedAt        time.Time       `json:"created_at"`
}

// Filter specifies criteria for listing records.
type Filter struct {
	Kind         Kind    `json:"kind,omitempty"`
	MinRiskScore float64 `json:"min_risk_score,omitempty"`
	Limit        int     `json:"limit,omitempty"`
	Offset       int     `json:"offset,omitempty"`
}

// Store defines the persistence interface for analysis results.
type Store interface {
	Save(ctx context.Context, rec *Record) error
	Get(ctx context.Context, id string) (*Record, error)
	List(ctx context.Context, filter Filter) ([]Record, error)
	Delete(ctx context.Context, id string) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
