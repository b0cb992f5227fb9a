package analyzer_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yapay-ai/cloud-cost-optimizer/pkg/analyzer"
	"github.com/yapay-ai/cloud-cost-optimizer/pkg/catalog"
	"github.com/yapay-ai/cloud-cost-optimizer/pkg/llm"
	"github.com/yapay-ai/cloud-cost-optimizer/pkg/model"
)

type fakeCompleter struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string, _ int) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

func (f *fakeCompleter) Model() string { return "test-model" }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newAnalyzer(t *testing.T, c llm.Completer) *analyzer.Analyzer {
	t.Helper()
	cat, err := catalog.Load()
	require.NoError(t, err)
	return analyzer.New(llm.NewQueryLoop(c, 1, testLogger()), cat, testLogger())
}

func candidateList(n int) string {
	items := make([]map[string]any, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, map[string]any{
			"title":               fmt.Sprintf("Opt %02d compute rightsizing", i),
			"service":             "Compute",
			"current_cost":        1000,
			"potential_savings":   50 + i,
			"recommendation_type": "rightsizing",
			"description":         "desc",
		})
	}
	out, _ := json.Marshal(items)
	return string(out)
}

func testBilling() []model.BillingRecord {
	return []model.BillingRecord{
		{Month: "2025-01", Service: "Compute", CostINR: 600},
		{Month: "2025-01", Service: "Storage", CostINR: 400},
		{Month: "2025-02", Service: "Compute", CostINR: 700},
		{Month: "2025-02", Service: "Storage", CostINR: 500},
	}
}

func TestAnalyze(t *testing.T) {
	c := &fakeCompleter{response: candidateList(6)}
	a := newAnalyzer(t, c)

	p := &model.ProjectProfile{Name: "Shop", BudgetINRPerMonth: 1000}
	report := a.Analyze(context.Background(), p, testBilling())

	assert.Equal(t, "Shop", report.ProjectName)
	// (600+400+700+500) / 2 months.
	assert.InDelta(t, 1100.0, report.Analysis.TotalMonthlyCost, 0.001)
	assert.Equal(t, 1000, report.Analysis.Budget)
	assert.InDelta(t, 100.0, report.Analysis.BudgetVariance, 0.001)
	assert.True(t, report.Analysis.IsOverBudget)

	assert.InDelta(t, 650.0, report.Analysis.ServiceCosts["Compute"], 0.001)
	assert.InDelta(t, 450.0, report.Analysis.ServiceCosts["Storage"], 0.001)
	assert.Len(t, report.Analysis.HighCostServices, 2)

	require.NotEmpty(t, report.Recommendations)
	assert.GreaterOrEqual(t, len(report.Recommendations), 6)
}

func TestAnalyze_DeadEndpointStillProducesReport(t *testing.T) {
	c := &fakeCompleter{err: errors.New("endpoint down")}
	a := newAnalyzer(t, c)

	p := &model.ProjectProfile{Name: "Shop", BudgetINRPerMonth: 2000}
	report := a.Analyze(context.Background(), p, testBilling())

	assert.False(t, report.Analysis.IsOverBudget)
	// Defaults fill the whole list.
	require.Len(t, report.Recommendations, 6)
	assert.Equal(t, "Configure Cloud Budget Alerts", report.Recommendations[0].Title)
}

func TestAnalyze_RetriesShortLists(t *testing.T) {
	c := &fakeCompleter{response: candidateList(3)}
	a := newAnalyzer(t, c)

	p := &model.ProjectProfile{Name: "Shop", BudgetINRPerMonth: 1000}
	report := a.Analyze(context.Background(), p, testBilling())

	// One try plus one retry, both rejected for being short.
	assert.Len(t, c.prompts, 2)
	assert.Contains(t, c.prompts[1], "Need 5+ items")
	// Post-processing still fills the report from the defaults.
	assert.GreaterOrEqual(t, len(report.Recommendations), 6)
}

func TestAnalyze_SQLiteRedistributesBeforeFinancials(t *testing.T) {
	c := &fakeCompleter{response: candidateList(6)}
	a := newAnalyzer(t, c)

	p := &model.ProjectProfile{
		Name:              "Shop",
		BudgetINRPerMonth: 1000,
		TechStack:         map[string]string{"database": "SQLite"},
	}
	billing := []model.BillingRecord{
		{Month: "2025-01", Service: "Compute", CostINR: 500},
		{Month: "2025-01", Service: "Database", CostINR: 300},
	}

	report := a.Analyze(context.Background(), p, billing)

	assert.NotContains(t, report.Analysis.ServiceCosts, "Database")
	assert.InDelta(t, 800.0, report.Analysis.ServiceCosts["Compute"], 0.001)
	assert.InDelta(t, 800.0, report.Analysis.TotalMonthlyCost, 0.001)
}

func TestAnalyze_SQLiteRejectsDatabaseRecommendations(t *testing.T) {
	bad := `[
		{"title": "Tune database indexes", "service": "Database", "current_cost": 100, "potential_savings": 50},
		{"title": "Item two", "service": "Compute", "current_cost": 100, "potential_savings": 50},
		{"title": "Item three", "service": "Compute", "current_cost": 100, "potential_savings": 50},
		{"title": "Item four", "service": "Compute", "current_cost": 100, "potential_savings": 50},
		{"title": "Item five", "service": "Compute", "current_cost": 100, "potential_savings": 50}
	]`
	c := &fakeCompleter{response: bad}
	a := newAnalyzer(t, c)

	p := &model.ProjectProfile{
		Name:              "Shop",
		BudgetINRPerMonth: 1000,
		TechStack:         map[string]string{"database": "SQLite"},
	}
	a.Analyze(context.Background(), p, testBilling())

	require.Len(t, c.prompts, 2)
	assert.Contains(t, c.prompts[1], "No DB recs for SQLite")
}

func TestAnalyze_EmptyBilling(t *testing.T) {
	c := &fakeCompleter{err: errors.New("down")}
	a := newAnalyzer(t, c)

	p := &model.ProjectProfile{Name: "Shop", BudgetINRPerMonth: 1000}
	report := a.Analyze(context.Background(), p, nil)

	assert.Zero(t, report.Analysis.TotalMonthlyCost)
	assert.False(t, report.Analysis.IsOverBudget)
	assert.NotEmpty(t, report.Recommendations)
}
