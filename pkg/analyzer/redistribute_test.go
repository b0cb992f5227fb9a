package analyzer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yapay-ai/cloud-cost-optimizer/pkg/analyzer"
	"github.com/yapay-ai/cloud-cost-optimizer/pkg/model"
)

func TestRedistributeSQLite(t *testing.T) {
	records := []model.BillingRecord{
		{Month: "2025-01", Service: "Compute", CostINR: 10},
		{Month: "2025-01", Service: "Database", CostINR: 100},
		{Month: "2025-01", Service: "Storage", CostINR: 30},
		{Month: "2025-02", Service: "Compute", CostINR: 10},
		{Month: "2025-02", Service: "Compute", CostINR: 10},
	}

	out := analyzer.RedistributeSQLite(records)
	require.Len(t, out, 4)

	for _, r := range out {
		assert.NotEqual(t, "Database", r.Service)
	}

	// 100 over 3 Compute records: 34 + 33 + 33.
	assert.Equal(t, 44, out[0].CostINR)
	assert.Equal(t, 30, out[1].CostINR)
	assert.Equal(t, 43, out[2].CostINR)
	assert.Equal(t, 43, out[3].CostINR)
}

func TestRedistributeSQLite_SumConserved(t *testing.T) {
	records := []model.BillingRecord{
		{Service: "Compute", CostINR: 7},
		{Service: "Compute", CostINR: 11},
		{Service: "Compute", CostINR: 13},
		{Service: "Database", CostINR: 101},
		{Service: "Database", CostINR: 59},
	}

	before := 0
	for _, r := range records {
		before += r.CostINR
	}

	out := analyzer.RedistributeSQLite(records)
	after := 0
	for _, r := range out {
		after += r.CostINR
	}

	assert.Equal(t, before, after)
}

func TestRedistributeSQLite_NoComputeDiscardsCost(t *testing.T) {
	records := []model.BillingRecord{
		{Service: "Storage", CostINR: 30},
		{Service: "Database", CostINR: 100},
	}

	out := analyzer.RedistributeSQLite(records)
	require.Len(t, out, 1)
	assert.Equal(t, 30, out[0].CostINR)
}

func TestRedistributeSQLite_NoDatabaseIsNoop(t *testing.T) {
	records := []model.BillingRecord{
		{Service: "Compute", CostINR: 50},
		{Service: "Storage", CostINR: 30},
	}

	out := analyzer.RedistributeSQLite(records)
	assert.Equal(t, records, out)
}
