package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/urbanlens/envirocast/internal/predictor"
	"github.com/urbanlens/envirocast/internal/store"
)

var (
	predictModel      string
	predictFeatures   []string
	predictHorizon    int
	predictConfidence float64
	predictJSON       bool
	predictNoStore    bool
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Run feature-based predictions without area geometry",
	Long:  "Predicts environmental outcomes from a bag of named features. Models: heat_island, water_absorption, air_quality, comprehensive.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		features, err := parseFeatures(predictFeatures)
		if err != nil {
			return err
		}

		engine := predictor.NewEngine(cfg.Predictor)

		switch predictModel {
		case "heat_island":
			p, err := engine.Heat().Predict(features, predictHorizon, predictConfidence)
			if err != nil {
				return err
			}
			if predictJSON {
				return printJSON(p)
			}
			fmt.Printf("Temperature increase: +%.2f °C (risk %.3f)\n", p.TemperatureIncreaseC, p.RiskScore)
			fmt.Printf("Confidence interval:  [%.2f, %.2f] at %.0f%%\n",
				p.Interval.LowerBound, p.Interval.UpperBound, p.Interval.ConfidenceLevel*100)
			return nil

		case "water_absorption":
			p, err := engine.Water().Predict(features, predictHorizon, predictConfidence)
			if err != nil {
				return err
			}
			if predictJSON {
				return printJSON(p)
			}
			fmt.Printf("Absorption rate:     %.3f\n", p.AbsorptionRate)
			fmt.Printf("Flood risk score:    %.3f\n", p.FloodRiskScore)
			fmt.Printf("Drainage efficiency: %.3f\n", p.DrainageEfficiency)
			fmt.Printf("Confidence interval: [%.2f, %.2f] at %.0f%%\n",
				p.Interval.LowerBound, p.Interval.UpperBound, p.Interval.ConfidenceLevel*100)
			return nil

		case "air_quality":
			p, err := engine.Air().Predict(features, predictHorizon, predictConfidence)
			if err != nil {
				return err
			}
			if predictJSON {
				return printJSON(p)
			}
			fmt.Printf("Predicted AQI: %.1f (risk %.3f)\n", p.AQI, p.RiskScore)
			for name, value := range p.Pollutants {
				fmt.Printf("  %-6s %.1f\n", name, value)
			}
			fmt.Printf("Confidence interval: [%.2f, %.2f] at %.0f%%\n",
				p.Interval.LowerBound, p.Interval.UpperBound, p.Interval.ConfidenceLevel*100)
			return nil

		case "comprehensive":
			p, err := engine.PredictAll(ctx, features, predictHorizon, predictConfidence)
			if err != nil {
				return err
			}
			if !predictNoStore {
				st, err := initStore(ctx)
				if err != nil {
					return err
				}
				defer st.Close() //nolint:errcheck
				if err := st.Migrate(ctx); err != nil {
					return eris.Wrap(err, "migrate store")
				}
				if err := saveResult(ctx, st, nil, p.ID, store.KindPrediction,
					predictHorizon, p.Heat.RiskScore, p); err != nil {
					return err
				}
			}
			return printJSON(p)

		default:
			return eris.Errorf("unknown model %q", predictModel)
		}
	},
}

func init() {
	predictCmd.Flags().StringVar(&predictModel, "model", "comprehensive", "prediction model")
	predictCmd.Flags().StringSliceVar(&predictFeatures, "feature", nil, "model feature, name=value (repeatable)")
	predictCmd.Flags().IntVar(&predictHorizon, "horizon", 10, "time horizon in years")
	predictCmd.Flags().Float64Var(&predictConfidence, "confidence", 0.95, "confidence level in [0.5, 0.99]")
	predictCmd.Flags().BoolVar(&predictJSON, "json", false, "print full JSON result")
	predictCmd.Flags().BoolVar(&predictNoStore, "no-store", false, "skip persisting the result")
	rootCmd.AddCommand(predictCmd)
}
