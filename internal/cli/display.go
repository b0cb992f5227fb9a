package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/yapay-ai/cloud-cost-optimizer/pkg/model"
)

// printBillingSummary shows per-month totals after billing generation.
func printBillingSummary(records []model.BillingRecord) {
	totals := make(map[string]int)
	for _, r := range records {
		totals[r.Month] += r.CostINR
	}

	months := make([]string, 0, len(totals))
	for m := range totals {
		months = append(months, m)
	}
	sort.Strings(months)

	fmt.Printf("Generated %d billing records.\n", len(records))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  MONTH\tTOTAL\n")
	for _, m := range months {
		fmt.Fprintf(w, "  %s\tINR %d\n", m, totals[m])
	}
	w.Flush()
}

// printReportSummary shows the report headline and the top recommendations.
func printReportSummary(report *model.CostReport) {
	fmt.Println("\n" + strings.Repeat("=", 50))
	fmt.Printf("REPORT: %s\n", report.ProjectName)
	fmt.Println(strings.Repeat("=", 50))

	status := "UNDER BUDGET"
	if report.Analysis.IsOverBudget {
		status = "OVER BUDGET"
	}
	fmt.Printf("Total: INR %.2f (Budget: INR %d)\n", report.Analysis.TotalMonthlyCost, report.Analysis.Budget)
	fmt.Printf("Status: %s\n", status)

	recs := report.Recommendations
	fmt.Printf("\nFound %d recommendations. Top 3:\n", len(recs))
	for i, r := range recs {
		if i >= 3 {
			break
		}
		fmt.Printf("%d. %s (Save: INR %d)\n", i+1, r.Title, r.PotentialSavings)
	}
}

// printFullRecommendations lists every recommendation with its action.
func printFullRecommendations(report *model.CostReport) {
	recs := report.Recommendations
	fmt.Println("\n" + strings.Repeat("=", 50))
	fmt.Printf("RECOMMENDATIONS (%d)\n", len(recs))
	fmt.Println(strings.Repeat("=", 50))

	for i, r := range recs {
		fmt.Printf("\n%d. %s\n", i+1, r.Title)
		fmt.Printf("   Savings: INR %d\n", r.PotentialSavings)
		fmt.Printf("   Action: %s\n", r.Description)
	}
}
