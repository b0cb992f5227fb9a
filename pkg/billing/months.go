// Package billing synthesizes monthly billing records for a project profile
// and normalizes them to the budget. When the completion endpoint is unusable
// a deterministic fallback guarantees non-empty output.
package billing

import "time"

// RecentMonths returns the last n months as "YYYY-MM" strings in ascending
// order, ending with the month containing now.
func RecentMonths(n int, now time.Time) []string {
	months := make([]string, 0, n)
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i := n - 1; i >= 0; i-- {
		months = append(months, first.AddDate(0, -i, 0).Format("2006-01"))
	}
	return months
}
