package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/urbanlens/envirocast/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect stored assessment history",
	Long:  "Commands for listing, viewing, and deleting stored assessments, heat island analyses, and predictions.",
}

// -- history list --

var (
	historyKind    string
	historyMinRisk float64
	historyLimit   int
	historyOffset  int
)

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored records",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		records, err := st.List(ctx, store.Filter{
			Kind:         store.Kind(historyKind),
			MinRiskScore: historyMinRisk,
			Limit:        historyLimit,
			Offset:       historyOffset,
		})
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Fprintln(os.Stderr, "No records found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tKIND\tAREA\tHORIZON\tRISK\tCREATED")
		for _, rec := range records {
			fmt.Fprintf(w, "%s\t%s\t%.2f km²\t%dy\t%.3f\t%s\n",
				rec.ID, rec.Kind, rec.AreaKm2, rec.TimeHorizonYears,
				rec.OverallRiskScore, rec.CreatedAt.Format(time.RFC3339))
		}
		return w.Flush()
	},
}

// -- history show --

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a stored record's full result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		rec, err := st.Get(ctx, args[0])
		if err != nil {
			return err
		}
		return printJSON(rec)
	},
}

// -- history delete --

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		if err := st.Delete(ctx, args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted %s\n", args[0])
		return nil
	},
}

func init() {
	historyListCmd.Flags().StringVar(&historyKind, "kind", "", "filter by record kind (assessment, uhi_analysis, prediction)")
	historyListCmd.Flags().Float64Var(&historyMinRisk, "min-risk", 0, "minimum overall risk score")
	historyListCmd.Flags().IntVar(&historyLimit, "limit", 50, "max records to list")
	historyListCmd.Flags().IntVar(&historyOffset, "offset", 0, "records to skip")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyDeleteCmd)
	rootCmd.AddCommand(historyCmd)
}
