package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past analysis runs and completion requests",
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 20, "Maximum entries to show")
	historyCmd.Flags().Bool("calls", false, "Show the completion request log instead of runs")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	limit, _ := cmd.Flags().GetInt("limit")
	showCalls, _ := cmd.Flags().GetBool("calls")

	store := initStorage(cfg, newLogger(cfg))
	if store == nil {
		fmt.Println("History storage is unavailable.")
		return nil
	}
	defer store.Close()

	if showCalls {
		calls, err := store.ListCalls(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("list calls: %w", err)
		}
		if len(calls) == 0 {
			fmt.Println("No completion requests recorded.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "TIMESTAMP\tSTAGE\tMODEL\tPROMPT\tCOMPLETION\tMS\tOK\n")
		for _, c := range calls {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%v\n",
				c.CreatedAt.Format("2006-01-02 15:04"),
				c.Stage, c.Model,
				c.PromptTokens, c.CompletionTokens,
				c.DurationMS, c.OK,
			)
		}
		return w.Flush()
	}

	runs, err := store.ListRuns(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Println("No analysis runs recorded.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "TIMESTAMP\tPROJECT\tBUDGET\tMONTHLY\tSAVINGS\tRECS\tOVER\n")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\tINR %d\tINR %.0f\tINR %d\t%d\t%v\n",
			r.CreatedAt.Format("2006-01-02 15:04"),
			r.ProjectName, r.BudgetINR, r.AvgMonthlyCost,
			r.TotalSavings, r.RecommendationCount, r.OverBudget,
		)
	}
	return w.Flush()
}
