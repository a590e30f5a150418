package main

import (
	"context"
	"encoding/json"

	"github.com/rotisserie/eris"

	"github.com/urbanlens/envirocast/internal/geometry"
	"github.com/urbanlens/envirocast/internal/store"
)

// saveResult persists a computed result under the ID already returned to
// the user.
func saveResult(ctx context.Context, st store.Store, poly *geometry.Polygon, id string, kind store.Kind, horizon int, risk float64, payload any) error {
	result, err := json.Marshal(payload)
	if err != nil {
		return eris.Wrap(err, "marshal result")
	}

	rec := &store.Record{
		ID:               id,
		Kind:             kind,
		TimeHorizonYears: horizon,
		OverallRiskScore: risk,
		Result:           result,
	}
	if poly != nil {
		wkb, err := store.EncodeAreaWKB(poly)
		if err != nil {
			return err
		}
		rec.AreaWKB = wkb
		rec.AreaKm2 = poly.AreaKm2()
	}
	return st.Save(ctx, rec)
}
