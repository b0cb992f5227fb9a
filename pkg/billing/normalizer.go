package billing

import (
	"fmt"
	"math/rand"
	"strconv"

	"github.com/yapay-ai/cloud-cost-optimizer/pkg/model"
)

const (
	// maxRecords caps the combined normalized list.
	maxRecords = 20

	// minCost is the floor applied to every rescaled record.
	minCost = 10

	// tolerance is the half-width of the random band around the budget each
	// month's total is rescaled into.
	tolerance = 0.03

	defaultRegion    = "ap-south-1"
	defaultUsageType = "Standard"
)

// Repair drops raw records missing month, service or cost_inr, coerces costs
// through float-then-int conversion, and backfills missing optional fields.
// Records whose cost cannot be coerced are dropped.
func Repair(raw []map[string]any) []model.BillingRecord {
	var out []model.BillingRecord
	for _, r := range raw {
		month, _ := r["month"].(string)
		service, _ := r["service"].(string)
		costRaw, hasCost := r["cost_inr"]
		if month == "" || service == "" || !hasCost {
			continue
		}

		cost, ok := coerceCost(costRaw)
		if !ok {
			continue
		}

		rec := model.BillingRecord{
			Month:   month,
			Service: service,
			CostINR: cost,
		}

		if rec.Region, _ = r["region"].(string); rec.Region == "" {
			rec.Region = defaultRegion
		}
		if rec.UsageType, _ = r["usage_type"].(string); rec.UsageType == "" {
			rec.UsageType = defaultUsageType
		}
		if rec.Desc, _ = r["desc"].(string); rec.Desc == "" {
			rec.Desc = fmt.Sprintf("%s usage", service)
		}
		rec.ResourceID, _ = r["resource_id"].(string)
		rec.Unit, _ = r["unit"].(string)
		if q, ok := r["usage_quantity"].(float64); ok {
			rec.UsageQuantity = q
		}

		out = append(out, rec)
	}
	return out
}

// Rescale groups records by expected month and scales each group's costs so
// the group total lands on a random target within the tolerance band around
// the budget. Every rescaled cost is floored at minCost; months with no
// records are skipped rather than backfilled. The combined list is truncated
// to maxRecords, preserving per-month ordering as received.
func Rescale(records []model.BillingRecord, budget int, months []string, rng *rand.Rand) []model.BillingRecord {
	byMonth := make(map[string][]model.BillingRecord, len(months))
	for _, m := range months {
		byMonth[m] = nil
	}
	for _, r := range records {
		if _, ok := byMonth[r.Month]; ok {
			byMonth[r.Month] = append(byMonth[r.Month], r)
		}
	}

	var final []model.BillingRecord
	for _, month := range months {
		group := byMonth[month]
		if len(group) == 0 {
			continue
		}

		total := 0
		for _, r := range group {
			total += r.CostINR
		}
		if total == 0 {
			total = 1
		}

		factor := 1 - tolerance + rng.Float64()*2*tolerance
		target := float64(budget) * factor
		scale := target / float64(total)

		for _, r := range group {
			r.CostINR = int(float64(r.CostINR) * scale)
			if r.CostINR < minCost {
				r.CostINR = minCost
			}
			final = append(final, r)
		}
	}

	if len(final) > maxRecords {
		final = final[:maxRecords]
	}
	return final
}

func coerceCost(v any) (int, bool) {
	switch c := v.(type) {
	case float64:
		return int(c), true
	case string:
		f, err := strconv.ParseFloat(c, 64)
		if err != nil {
			return 0, false
		}
		return int(f), true
	default:
		return 0, false
	}
}
