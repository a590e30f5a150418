package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/urbanlens/envirocast/internal/predictor"
	"github.com/urbanlens/envirocast/internal/shapefile"
	"github.com/urbanlens/envirocast/internal/store"
)

var (
	batchShapefile   string
	batchOutput      string
	batchHorizon     int
	batchIndicators  []string
	batchConcurrency int
	batchNoStore     bool
)

// siteResult pairs a loaded site with its assessment for export.
type siteResult struct {
	site       shapefile.Site
	assessment *predictor.Assessment
}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Assess every polygon in a shapefile",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		sites, err := shapefile.LoadSites(batchShapefile)
		if err != nil {
			return err
		}
		ind, err := parseIndicators(batchIndicators)
		if err != nil {
			return err
		}

		var st store.Store
		if !batchNoStore {
			if st, err = initStore(ctx); err != nil {
				return err
			}
			defer st.Close() //nolint:errcheck
			if err := st.Migrate(ctx); err != nil {
				return eris.Wrap(err, "migrate store")
			}
		}

		engine := predictor.NewEngine(cfg.Predictor)

		var mu sync.Mutex
		results := make([]siteResult, 0, len(sites))

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(batchConcurrency)
		for _, site := range sites {
			g.Go(func() error {
				assessment, err := engine.Assess(gctx, site.Polygon, batchHorizon, ind)
				if err != nil {
					return eris.Wrapf(err, "assess %s", site.Name)
				}
				if st != nil {
					if err := saveResult(gctx, st, site.Polygon, assessment.ID, store.KindAssessment,
						batchHorizon, assessment.OverallRiskScore, assessment); err != nil {
						return err
					}
				}
				mu.Lock()
				results = append(results, siteResult{site: site, assessment: assessment})
				mu.Unlock()
				zap.L().Info("site assessed",
					zap.String("site", site.Name),
					zap.Float64("risk", assessment.OverallRiskScore),
				)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		if batchOutput != "" {
			if err := exportResults(batchOutput, results); err != nil {
				return err
			}
			fmt.Printf("Wrote %d assessments to %s\n", len(results), batchOutput)
			return nil
		}
		fmt.Printf("Assessed %d sites\n", len(results))
		return nil
	},
}

var exportHeader = []string{
	"site", "assessment_id", "area_km2", "horizon_years",
	"heat_increase_c", "heat_risk", "absorption_rate", "flood_risk",
	"predicted_aqi", "air_risk", "overall_risk", "overall_level",
}

func exportRow(r siteResult) []string {
	a := r.assessment
	return []string{
		r.site.Name,
		a.ID,
		strconv.FormatFloat(a.AreaKm2, 'f', 4, 64),
		strconv.Itoa(a.TimeHorizonYears),
		strconv.FormatFloat(a.Heat.TemperatureIncreaseC, 'f', 2, 64),
		strconv.FormatFloat(a.Heat.RiskScore, 'f', 3, 64),
		strconv.FormatFloat(a.Water.PredictedAbsorptionRate, 'f', 3, 64),
		strconv.FormatFloat(a.Water.RiskScore, 'f', 3, 64),
		strconv.FormatFloat(a.Air.PredictedAQI, 'f', 1, 64),
		strconv.FormatFloat(a.Air.RiskScore, 'f', 3, 64),
		strconv.FormatFloat(a.OverallRiskScore, 'f', 3, 64),
		string(a.OverallRiskLevel),
	}
}

func exportResults(path string, results []siteResult) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return exportXLSX(path, results)
	case ".csv":
		return exportCSV(path, results)
	default:
		return eris.Errorf("unsupported export format %q (want .xlsx or .csv)", filepath.Ext(path))
	}
}

func exportXLSX(path string, results []siteResult) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("assessments")
	if err != nil {
		return eris.Wrap(err, "xlsx: add sheet")
	}

	header := sheet.AddRow()
	for _, name := range exportHeader {
		header.AddCell().Value = name
	}
	for _, r := range results {
		row := sheet.AddRow()
		for _, value := range exportRow(r) {
			row.AddCell().Value = value
		}
	}
	return eris.Wrap(f.Save(path), "xlsx: save")
}

func exportCSV(path string, results []siteResult) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "csv: create file")
	}
	defer f.Close() //nolint:errcheck

	w := csv.NewWriter(f)
	if err := w.Write(exportHeader); err != nil {
		return eris.Wrap(err, "csv: write header")
	}
	for _, r := range results {
		if err := w.Write(exportRow(r)); err != nil {
			return eris.Wrap(err, "csv: write row")
		}
	}
	w.Flush()
	return eris.Wrap(w.Error(), "csv: flush")
}

func init() {
	batchCmd.Flags().StringVar(&batchShapefile, "shapefile", "", "path to .shp file with site polygons")
	batchCmd.Flags().StringVar(&batchOutput, "output", "", "export path (.xlsx or .csv)")
	batchCmd.Flags().IntVar(&batchHorizon, "horizon", 10, "time horizon in years")
	batchCmd.Flags().StringSliceVar(&batchIndicators, "indicator", nil, "environmental indicator override, name=value (repeatable)")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 4, "max concurrent assessments")
	batchCmd.Flags().BoolVar(&batchNoStore, "no-store", false, "skip persisting results")
	_ = batchCmd.MarkFlagRequired("shapefile")
	rootCmd.AddCommand(batchCmd)
}
