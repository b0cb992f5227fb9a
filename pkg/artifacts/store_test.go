package artifacts_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yapay-ai/cloud-cost-optimizer/pkg/artifacts"
	"github.com/yapay-ai/cloud-cost-optimizer/pkg/model"
)

func TestDescriptionRoundtrip(t *testing.T) {
	store := artifacts.NewStore(t.TempDir())

	require.NoError(t, store.SaveDescription("A small web shop.\nWith two lines."))

	got, err := store.LoadDescription()
	require.NoError(t, err)
	assert.Equal(t, "A small web shop.\nWith two lines.", got)
}

func TestProfileRoundtrip(t *testing.T) {
	store := artifacts.NewStore(t.TempDir())

	p := &model.ProjectProfile{
		Name:                      "Shop",
		BudgetINRPerMonth:         5000,
		Description:               "A shop",
		TechStack:                 map[string]string{"frontend": "React"},
		NonFunctionalRequirements: []string{"Scalability"},
	}
	require.NoError(t, store.SaveProfile(p))

	got, err := store.LoadProfile()
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestBillingRoundtrip(t *testing.T) {
	store := artifacts.NewStore(t.TempDir())

	records := []model.BillingRecord{
		{Month: "2025-01", Service: "Compute", CostINR: 400, Region: "ap-south-1"},
		{Month: "2025-01", Service: "Storage", CostINR: 150},
	}
	require.NoError(t, store.SaveBilling(records))

	got, err := store.LoadBilling()
	require.NoError(t, err)
	assert.Equal(t, records, got)
}

func TestReportRoundtrip(t *testing.T) {
	store := artifacts.NewStore(t.TempDir())

	report := &model.CostReport{
		ProjectName: "Shop",
		Analysis: model.Analysis{
			TotalMonthlyCost: 1050.5,
			Budget:           1000,
			IsOverBudget:     true,
			ServiceCosts:     map[string]float64{"Compute": 700},
			HighCostServices: map[string]float64{"Compute": 700},
		},
		Recommendations: []model.RecommendationItem{
			{Title: "Rightsize", Service: "Compute", PotentialSavings: 100},
		},
	}
	require.NoError(t, store.SaveReport(report))

	got, err := store.LoadReport()
	require.NoError(t, err)
	assert.Equal(t, report, got)
}

func TestLoadMissingArtifact(t *testing.T) {
	store := artifacts.NewStore(t.TempDir())

	_, err := store.LoadProfile()
	require.Error(t, err)
	assert.ErrorIs(t, err, artifacts.ErrNotFound)

	_, err = store.LoadReport()
	assert.ErrorIs(t, err, artifacts.ErrNotFound)
}

func TestStatus(t *testing.T) {
	store := artifacts.NewStore(t.TempDir())

	byName := func() map[string]bool {
		out := map[string]bool{}
		for _, s := range store.Status() {
			out[s.Name] = s.Exists
		}
		return out
	}

	before := byName()
	assert.False(t, before[artifacts.ProfileFile])
	assert.False(t, before[artifacts.ReportFile])

	require.NoError(t, store.SaveProfile(&model.ProjectProfile{Name: "X"}))

	after := byName()
	assert.True(t, after[artifacts.ProfileFile])
	assert.False(t, after[artifacts.ReportFile])
}
