package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/urbanlens/envirocast/internal/mitigation"
)

var strategiesJSON bool

var strategiesCmd = &cobra.Command{
	Use:   "strategies",
	Short: "List the mitigation strategy catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog := mitigation.Catalog()
		if strategiesJSON {
			return printJSON(catalog)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "STRATEGY\tREDUCTION\tCOST/KM²\tMAINTENANCE/KM²\tFEASIBILITY\tEFFECTIVENESS\tTIMELINE")
		for _, s := range catalog {
			fmt.Fprintf(w, "%s\t%.1f °C\t%s\t%s\t%.0f%%\t%s\t%s\n",
				s.Title, s.TemperatureReductionC,
				usd.Sprintf("$%.0f", s.ImplementationCostPerKm2),
				usd.Sprintf("$%.0f", s.MaintenanceCostPerKm2),
				s.Feasibility*100, s.Effectiveness, s.ImplementationTime)
		}
		return w.Flush()
	},
}

func init() {
	strategiesCmd.Flags().BoolVar(&strategiesJSON, "json", false, "print full JSON catalog")
	rootCmd.AddCommand(strategiesCmd)
}
