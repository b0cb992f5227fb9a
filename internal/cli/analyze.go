package cli

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the full profile, billing and analysis pipeline",
	Long: `Runs billing synthesis and cost analysis against the stored project
profile, producing the cost optimization report. When no profile exists the
profile stage is run first.`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p, err := newPipeline(cfg, newLogger(cfg))
	if err != nil {
		return err
	}
	defer p.Close()

	return runFullAnalysis(cmd, p, bufio.NewScanner(cmd.InOrStdin()))
}

// runFullAnalysis chains the billing and analysis stages, running profile
// extraction first when its artifact is missing. Shared with the menu, which
// passes its own scanner so buffered input is not lost between prompts.
func runFullAnalysis(cmd *cobra.Command, p *pipeline, scanner *bufio.Scanner) error {
	ctx := cmd.Context()

	if _, err := p.files.LoadProfile(); err != nil {
		if !MissingArtifact(err) {
			return err
		}
		fmt.Println("No profile found. Capture a project description first.")
		fmt.Println("Enter project description (finish with two blank lines):")
		description := readDescription(scanner)
		if description == "" {
			fmt.Println("No description entered.")
			return nil
		}
		if _, err := p.RunProfileStage(ctx, description); err != nil {
			fmt.Printf("Profile extraction failed: %v\n", err)
			return nil
		}
	}

	records, err := p.RunBillingStage(ctx)
	if err != nil {
		fmt.Printf("Billing generation failed: %v\n", err)
		return nil
	}
	printBillingSummary(records)

	report, err := p.RunAnalysisStage(ctx)
	if err != nil {
		fmt.Printf("Analysis failed: %v\n", err)
		return nil
	}

	printReportSummary(report)
	return nil
}
