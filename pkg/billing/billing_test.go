package billing_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yapay-ai/cloud-cost-optimizer/pkg/billing"
	"github.com/yapay-ai/cloud-cost-optimizer/pkg/catalog"
	"github.com/yapay-ai/cloud-cost-optimizer/pkg/model"
)

func TestRecentMonths(t *testing.T) {
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, []string{"2025-01", "2025-02", "2025-03"}, billing.RecentMonths(3, now))
}

func TestRecentMonths_YearBoundary(t *testing.T) {
	now := time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, []string{"2024-10", "2024-11", "2024-12", "2025-01"}, billing.RecentMonths(4, now))
}

func TestRepair(t *testing.T) {
	raw := []map[string]any{
		{"month": "2025-01", "service": "EC2", "cost_inr": 900.0},
		{"month": "2025-01", "service": "S3", "cost_inr": "150.75"},
		{"month": "2025-01", "cost_inr": 100.0},                  // missing service
		{"service": "RDS", "cost_inr": 100.0},                    // missing month
		{"month": "2025-01", "service": "Lambda"},                // missing cost
		{"month": "2025-01", "service": "EBS", "cost_inr": true}, // uncoercible cost
	}

	out := billing.Repair(raw)
	require.Len(t, out, 2)

	assert.Equal(t, "EC2", out[0].Service)
	assert.Equal(t, 900, out[0].CostINR)
	assert.Equal(t, "ap-south-1", out[0].Region)
	assert.Equal(t, "Standard", out[0].UsageType)
	assert.Equal(t, "EC2 usage", out[0].Desc)

	assert.Equal(t, 150, out[1].CostINR)
}

func TestRepair_KeepsProvidedOptionalFields(t *testing.T) {
	raw := []map[string]any{{
		"month": "2025-01", "service": "EC2", "cost_inr": 500.0,
		"region": "us-east-1", "usage_type": "Spot", "desc": "web server",
		"resource_id": "i-abc", "unit": "hours", "usage_quantity": 720.0,
	}}

	out := billing.Repair(raw)
	require.Len(t, out, 1)
	assert.Equal(t, "us-east-1", out[0].Region)
	assert.Equal(t, "Spot", out[0].UsageType)
	assert.Equal(t, "web server", out[0].Desc)
	assert.Equal(t, "i-abc", out[0].ResourceID)
	assert.Equal(t, "hours", out[0].Unit)
	assert.Equal(t, 720.0, out[0].UsageQuantity)
}

func TestRescale_MonthTotalsLandNearBudget(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	months := []string{"2025-01", "2025-02"}
	records := []model.BillingRecord{
		{Month: "2025-01", Service: "EC2", CostINR: 100},
		{Month: "2025-01", Service: "S3", CostINR: 300},
		{Month: "2025-02", Service: "EC2", CostINR: 50},
		{Month: "2025-02", Service: "S3", CostINR: 50},
	}

	out := billing.Rescale(records, 1000, months, rng)
	require.Len(t, out, 4)

	totals := map[string]int{}
	for _, r := range out {
		totals[r.Month] += r.CostINR
	}

	for month, total := range totals {
		// Integer truncation can lose up to one rupee per record.
		assert.GreaterOrEqual(t, total, 968, "month %s", month)
		assert.LessOrEqual(t, total, 1030, "month %s", month)
	}
}

func TestRescale_FloorsTinyCosts(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	records := []model.BillingRecord{
		{Month: "2025-01", Service: "EC2", CostINR: 1},
		{Month: "2025-01", Service: "S3", CostINR: 100000},
	}

	out := billing.Rescale(records, 100, []string{"2025-01"}, rng)
	require.Len(t, out, 2)
	assert.Equal(t, 10, out[0].CostINR)
}

func TestRescale_DropsUnexpectedMonthsAndTruncates(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	var records []model.BillingRecord
	for i := 0; i < 25; i++ {
		records = append(records, model.BillingRecord{Month: "2025-01", Service: "EC2", CostINR: 100})
	}
	records = append(records, model.BillingRecord{Month: "1999-01", Service: "EC2", CostINR: 100})

	out := billing.Rescale(records, 5000, []string{"2025-01"}, rng)
	assert.Len(t, out, 20)
	for _, r := range out {
		assert.Equal(t, "2025-01", r.Month)
	}
}

func fallbackServices(t *testing.T) []catalog.FallbackService {
	t.Helper()
	cat, err := catalog.Load()
	require.NoError(t, err)
	return cat.FallbackServices
}

func TestFallback(t *testing.T) {
	months := []string{"2025-01", "2025-02"}
	out := billing.Fallback(1000, months, false, fallbackServices(t))
	require.Len(t, out, 10)

	perMonth := map[string]map[string]int{}
	for _, r := range out {
		if perMonth[r.Month] == nil {
			perMonth[r.Month] = map[string]int{}
		}
		perMonth[r.Month][r.Service] = r.CostINR
	}

	for _, month := range months {
		assert.Equal(t, 400, perMonth[month]["Compute"])
		assert.Equal(t, 300, perMonth[month]["Database"])
		assert.Equal(t, 150, perMonth[month]["Storage"])
		assert.Equal(t, 100, perMonth[month]["Networking"])
		assert.Equal(t, 50, perMonth[month]["Monitoring"])
	}
}

func TestFallback_SQLiteFoldsDatabaseIntoCompute(t *testing.T) {
	out := billing.Fallback(1000, []string{"2025-01"}, true, fallbackServices(t))
	require.Len(t, out, 4)

	costs := map[string]int{}
	for _, r := range out {
		costs[r.Service] = r.CostINR
	}

	assert.NotContains(t, costs, "Database")
	assert.Equal(t, 700, costs["Compute"])
	assert.Equal(t, 150, costs["Storage"])
}

func TestFallback_Deterministic(t *testing.T) {
	months := []string{"2025-01"}
	a := billing.Fallback(5000, months, false, fallbackServices(t))
	b := billing.Fallback(5000, months, false, fallbackServices(t))
	assert.Equal(t, a, b)
}
