package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Display the stored cost optimization report",
	RunE:  runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().Bool("full", false, "Show every recommendation in detail")
}

func runReport(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	full, _ := cmd.Flags().GetBool("full")

	store := newArtifactStore(cfg)
	report, err := store.LoadReport()
	if err != nil {
		if MissingArtifact(err) {
			fmt.Println("No report found. Run an analysis first.")
			return nil
		}
		return err
	}

	printReportSummary(report)
	if full {
		printFullRecommendations(report)
	}
	return nil
}
