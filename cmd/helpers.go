package main

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/urbanlens/envirocast/internal/geometry"
	"github.com/urbanlens/envirocast/internal/indicator"
)

// usd formats dollar amounts with thousands separators for CLI output.
var usd = message.NewPrinter(language.English)

// parseCoords parses "lon,lat;lon,lat;..." into a validated polygon.
func parseCoords(s string) (*geometry.Polygon, error) {
	if strings.TrimSpace(s) == "" {
		return nil, eris.New("coordinates are required (lon,lat;lon,lat;...)")
	}
	var coords [][]float64
	for _, pair := range strings.Split(s, ";") {
		parts := strings.Split(strings.TrimSpace(pair), ",")
		if len(parts) != 2 {
			return nil, eris.Errorf("invalid coordinate pair %q", pair)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return nil, eris.Wrapf(err, "parse longitude %q", parts[0])
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, eris.Wrapf(err, "parse latitude %q", parts[1])
		}
		coords = append(coords, []float64{lon, lat})
	}

	poly, err := geometry.FromCoords(coords)
	if err != nil {
		return nil, err
	}
	if cfg.Geometry.UseUTM {
		poly.ProjectUTM()
	}
	if err := poly.CheckBounds(cfg.Geometry.MaxAreaKm2); err != nil {
		return nil, err
	}
	return poly, nil
}

// parseIndicators parses repeated "name=value" flags into a resolved set.
func parseIndicators(pairs []string) (indicator.Set, error) {
	overrides := make(map[string]float64, len(pairs))
	for _, pair := range pairs {
		name, raw, found := strings.Cut(pair, "=")
		if !found {
			return indicator.Set{}, eris.Errorf("invalid indicator %q (want name=value)", pair)
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return indicator.Set{}, eris.Wrapf(err, "parse indicator %q", pair)
		}
		overrides[strings.TrimSpace(name)] = value
	}
	return indicator.Resolve(overrides)
}

// parseFeatures parses repeated "name=value" flags into a feature bag.
func parseFeatures(pairs []string) (map[string]float64, error) {
	features := make(map[string]float64, len(pairs))
	for _, pair := range pairs {
		name, raw, found := strings.Cut(pair, "=")
		if !found {
			return nil, eris.Errorf("invalid feature %q (want name=value)", pair)
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, eris.Wrapf(err, "parse feature %q", pair)
		}
		features[strings.TrimSpace(name)] = value
	}
	return features, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(v), "encode output")
}
