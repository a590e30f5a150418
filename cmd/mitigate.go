package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/urbanlens/envirocast/internal/mitigation"
	"github.com/urbanlens/envirocast/internal/uhi"
)

var (
	mitigateCoords     string
	mitigateHorizon    int
	mitigateIndicators []string
	mitigateBudget     float64
	mitigateFocus      string
	mitigateJSON       bool
)

var mitigateCmd = &cobra.Command{
	Use:   "mitigate",
	Short: "Recommend mitigation strategies for an area",
	Long:  "Analyzes the heat island, then ranks mitigation strategies by the chosen focus within an optional budget. Focus: energy_savings, health_improvement, air_quality, comprehensive.",
	RunE: func(cmd *cobra.Command, args []string) error {
		focus, err := mitigation.ParseFocus(mitigateFocus)
		if err != nil {
			return err
		}
		poly, err := parseCoords(mitigateCoords)
		if err != nil {
			return err
		}
		ind, err := parseIndicators(mitigateIndicators)
		if err != nil {
			return err
		}

		analyzer := uhi.NewAnalyzer(cfg.UHI, cfg.Predictor.PopulationDensityPerKm2)
		analysis, err := analyzer.Analyze(poly, mitigateHorizon, ind)
		if err != nil {
			return err
		}

		plans := mitigation.NewBuilder(cfg.UHI)
		costed := plans.CostCatalog(poly.AreaKm2())
		affordable := mitigation.FilterByBudget(costed, mitigateBudget)
		recs := mitigation.Prioritize(affordable, focus)

		if mitigateJSON {
			return printJSON(map[string]any{
				"analysis_id":            analysis.ID,
				"uhi_intensity_c":        analysis.Intensity.TemperatureDifferenceC,
				"achievable_reduction_c": analysis.Mitigation.AchievableReductionC,
				"priority_focus":         focus,
				"recommendations":        recs,
			})
		}

		fmt.Printf("UHI intensity: +%.2f °C (%s), achievable reduction %.2f °C\n\n",
			analysis.Intensity.TemperatureDifferenceC, analysis.Intensity.Severity,
			analysis.Mitigation.AchievableReductionC)

		if len(recs) == 0 {
			fmt.Println("No strategies fit the budget constraint.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "#\tSTRATEGY\tREDUCTION\tCOST\tFEASIBILITY")
		for _, rec := range recs {
			fmt.Fprintf(w, "%d\t%s\t%.1f °C\t%s\t%.0f%%\n",
				rec.Priority, rec.Title, rec.TemperatureReductionC,
				usd.Sprintf("$%.0f", rec.ImplementationCostUSD), rec.Feasibility*100)
		}
		return w.Flush()
	},
}

func init() {
	mitigateCmd.Flags().StringVar(&mitigateCoords, "coords", "", "polygon as lon,lat;lon,lat;...")
	mitigateCmd.Flags().IntVar(&mitigateHorizon, "horizon", 10, "time horizon in years")
	mitigateCmd.Flags().StringSliceVar(&mitigateIndicators, "indicator", nil, "environmental indicator override, name=value (repeatable)")
	mitigateCmd.Flags().Float64Var(&mitigateBudget, "budget", 0, "budget constraint in USD (0 = unconstrained)")
	mitigateCmd.Flags().StringVar(&mitigateFocus, "focus", "", "priority focus (default comprehensive)")
	mitigateCmd.Flags().BoolVar(&mitigateJSON, "json", false, "print full JSON result")
	rootCmd.AddCommand(mitigateCmd)
}
