// Package analyzer computes the financial analysis for a billing dataset,
// requests cost-optimization recommendations from the completion endpoint,
// and post-processes them into the final report.
package analyzer

import "github.com/yapay-ai/cloud-cost-optimizer/pkg/model"

// RedistributeSQLite removes Database records and spreads their summed cost
// across the remaining Compute records. An embedded database consumes the
// host compute's resources rather than incurring separate billing.
//
// The sum is conserved exactly when at least one Compute record exists: the
// integer division remainder goes to the first records one rupee at a time.
// With no Compute records the removed cost is discarded.
func RedistributeSQLite(records []model.BillingRecord) []model.BillingRecord {
	dbCost := 0
	kept := make([]model.BillingRecord, 0, len(records))
	var computeIdx []int

	for _, r := range records {
		if r.Service == "Database" {
			dbCost += r.CostINR
			continue
		}
		if r.Service == "Compute" {
			computeIdx = append(computeIdx, len(kept))
		}
		kept = append(kept, r)
	}

	if dbCost > 0 && len(computeIdx) > 0 {
		share := dbCost / len(computeIdx)
		remainder := dbCost % len(computeIdx)
		for i, idx := range computeIdx {
			kept[idx].CostINR += share
			if i < remainder {
				kept[idx].CostINR++
			}
		}
	}

	return kept
}
