package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/urbanlens/envirocast/internal/store"
	"github.com/urbanlens/envirocast/internal/uhi"
)

var uhiCmd = &cobra.Command{
	Use:   "uhi",
	Short: "Urban heat island analysis",
	Long:  "Commands for deep heat island scoring, scenario comparison, and mitigation planning.",
}

// -- uhi analyze --

var (
	uhiCoords     string
	uhiHorizon    int
	uhiIndicators []string
	uhiJSON       bool
	uhiNoStore    bool
)

var uhiAnalyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the full heat island assessment for an area",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		poly, err := parseCoords(uhiCoords)
		if err != nil {
			return err
		}
		ind, err := parseIndicators(uhiIndicators)
		if err != nil {
			return err
		}

		analyzer := uhi.NewAnalyzer(cfg.UHI, cfg.Predictor.PopulationDensityPerKm2)
		analysis, err := analyzer.Analyze(poly, uhiHorizon, ind)
		if err != nil {
			return err
		}

		if !uhiNoStore {
			st, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close() //nolint:errcheck
			if err := st.Migrate(ctx); err != nil {
				return eris.Wrap(err, "migrate store")
			}
			if err := saveResult(ctx, st, poly, analysis.ID, store.KindUHIAnalysis,
				uhiHorizon, analysis.OverallRiskScore, analysis); err != nil {
				return err
			}
		}

		if uhiJSON {
			return printJSON(analysis)
		}
		printAnalysis(analysis)
		return nil
	},
}

// -- uhi compare --

var (
	compareBaseline   string
	compareProposed   string
	compareHorizon    int
	compareIndicators []string
	compareJSON       bool
)

var uhiCompareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare heat island outcomes of two development scenarios",
	RunE: func(cmd *cobra.Command, args []string) error {
		basePoly, err := parseCoords(compareBaseline)
		if err != nil {
			return eris.Wrap(err, "baseline")
		}
		propPoly, err := parseCoords(compareProposed)
		if err != nil {
			return eris.Wrap(err, "proposed")
		}
		ind, err := parseIndicators(compareIndicators)
		if err != nil {
			return err
		}

		analyzer := uhi.NewAnalyzer(cfg.UHI, cfg.Predictor.PopulationDensityPerKm2)
		baseline, err := analyzer.Analyze(basePoly, compareHorizon, ind)
		if err != nil {
			return eris.Wrap(err, "baseline")
		}
		proposed, err := analyzer.Analyze(propPoly, compareHorizon, ind)
		if err != nil {
			return eris.Wrap(err, "proposed")
		}

		comparison := uhi.Compare(baseline, proposed)
		if compareJSON {
			return printJSON(map[string]any{
				"baseline":   baseline,
				"proposed":   proposed,
				"comparison": comparison,
			})
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		printDelta(w, "Temperature (°C)", comparison.Temperature)
		printDelta(w, "Energy cost (USD)", comparison.Energy)
		printDelta(w, "Health cost (USD)", comparison.Health)
		printDelta(w, "Economic cost (USD)", comparison.Economic)
		w.Flush() //nolint:errcheck
		fmt.Printf("\nNet impact: %s\n%s\n", comparison.NetImpact, comparison.Recommendation)
		return nil
	},
}

func printDelta(w *tabwriter.Writer, label string, d uhi.Delta) {
	fmt.Fprintf(w, "%s\t%.2f\t→ %.2f\t%+.2f\t%s\n", label, d.Baseline, d.Proposed, d.Difference, d.Impact)
}

func printAnalysis(a *uhi.Analysis) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Analysis\t%s\n", a.ID)
	fmt.Fprintf(w, "Area\t%.2f km²\n", a.Metadata.AreaKm2)
	fmt.Fprintf(w, "UHI intensity\t+%.2f °C (%s)\n", a.Intensity.TemperatureDifferenceC, a.Intensity.Severity)
	fmt.Fprintf(w, "Energy impact\t%s\n", a.Energy.EfficiencyRating)
	fmt.Fprintf(w, "Air quality impact\t%s\n", a.AirQuality.Rating)
	fmt.Fprintf(w, "Health risk\t%s\n", a.Health.RiskRating)
	fmt.Fprintf(w, "Economic impact\t%s\n", a.Economic.Rating)
	fmt.Fprintf(w, "Overall risk\t%.3f\n", a.OverallRiskScore)
	w.Flush() //nolint:errcheck

	usd.Printf("\nAnnual energy cost:     $%.0f\n", a.Energy.AdditionalEnergyCostUSD)
	usd.Printf("Annual economic cost:   $%.0f\n", a.Economic.TotalAnnualCostUSD)
	usd.Printf("Achievable mitigation:  %.2f °C (priority %s)\n",
		a.Mitigation.AchievableReductionC, a.Mitigation.Priority)
}

func init() {
	uhiAnalyzeCmd.Flags().StringVar(&uhiCoords, "coords", "", "polygon as lon,lat;lon,lat;...")
	uhiAnalyzeCmd.Flags().IntVar(&uhiHorizon, "horizon", 10, "time horizon in years")
	uhiAnalyzeCmd.Flags().StringSliceVar(&uhiIndicators, "indicator", nil, "environmental indicator override, name=value (repeatable)")
	uhiAnalyzeCmd.Flags().BoolVar(&uhiJSON, "json", false, "print full JSON result")
	uhiAnalyzeCmd.Flags().BoolVar(&uhiNoStore, "no-store", false, "skip persisting the result")

	uhiCompareCmd.Flags().StringVar(&compareBaseline, "baseline", "", "baseline polygon as lon,lat;lon,lat;...")
	uhiCompareCmd.Flags().StringVar(&compareProposed, "proposed", "", "proposed polygon as lon,lat;lon,lat;...")
	uhiCompareCmd.Flags().IntVar(&compareHorizon, "horizon", 10, "time horizon in years")
	uhiCompareCmd.Flags().StringSliceVar(&compareIndicators, "indicator", nil, "environmental indicator override, name=value (repeatable)")
	uhiCompareCmd.Flags().BoolVar(&compareJSON, "json", false, "print full JSON result")

	uhiCmd.AddCommand(uhiAnalyzeCmd)
	uhiCmd.AddCommand(uhiCompareCmd)
	rootCmd.AddCommand(uhiCmd)
}
