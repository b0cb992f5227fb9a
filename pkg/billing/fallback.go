package billing

import (
	"github.com/yapay-ai/cloud-cost-optimizer/pkg/catalog"
	"github.com/yapay-ai/cloud-cost-optimizer/pkg/model"
)

// Fallback emits a fully deterministic billing dataset: one record per
// catalog service category per expected month, each taking its fixed share of
// the budget. For SQLite projects the Database share folds into Compute, so
// the "SQLite incurs no Database cost" rule holds on this path too.
func Fallback(budget int, months []string, isSQLite bool, services []catalog.FallbackService) []model.BillingRecord {
	shares := make([]catalog.FallbackService, 0, len(services))
	extra := 0.0
	for _, s := range services {
		if isSQLite && s.Service == "Database" {
			extra += s.Share
			continue
		}
		shares = append(shares, s)
	}
	if extra > 0 {
		for i := range shares {
			if shares[i].Service == "Compute" {
				shares[i].Share += extra
				break
			}
		}
	}

	var recs []model.BillingRecord
	for _, month := range months {
		for _, s := range shares {
			recs = append(recs, model.BillingRecord{
				Month:         month,
				Service:       s.Service,
				CostINR:       int(float64(budget) * s.Share),
				Desc:          s.Desc,
				Region:        defaultRegion,
				ResourceID:    s.ResourceID,
				UsageType:     s.UsageType,
				Unit:          s.Unit,
				UsageQuantity: s.UsageQuantity,
			})
		}
	}

	if len(recs) > maxRecords {
		recs = recs[:maxRecords]
	}
	return recs
}
