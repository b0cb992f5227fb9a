package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/yapay-ai/cloud-cost-optimizer/pkg/catalog"
	"github.com/yapay-ai/cloud-cost-optimizer/pkg/llm"
	"github.com/yapay-ai/cloud-cost-optimizer/pkg/model"
)

const (
	analysisMaxTokens = 3000

	// minCandidates is the minimum list length the validator accepts from the
	// completion endpoint before post-processing.
	minCandidates = 5

	topServices = 3
)

// Analyzer turns a profile and its billing records into a cost report.
type Analyzer struct {
	loop    *llm.QueryLoop
	catalog *catalog.Catalog
	logger  *slog.Logger
}

// New creates an analyzer around a validated query loop.
func New(loop *llm.QueryLoop, cat *catalog.Catalog, logger *slog.Logger) *Analyzer {
	return &Analyzer{loop: loop, catalog: cat, logger: logger}
}

// Analyze redistributes SQLite costs, computes the financial summary,
// requests recommendations through the validated query loop, post-processes
// them, and assembles the final report. A dead completion endpoint still
// yields a report: post-processing fills in the default recommendations.
func (a *Analyzer) Analyze(ctx context.Context, profile *model.ProjectProfile, billing []model.BillingRecord) *model.CostReport {
	isSQLite := profile.IsSQLite()
	if isSQLite {
		billing = RedistributeSQLite(billing)
	}

	avgMonthly, breakdown := financials(billing)
	budget := profile.BudgetINRPerMonth
	variance := avgMonthly - float64(budget)

	prompt := buildAnalysisPrompt(profile, avgMonthly, budget, breakdown)

	a.logger.Info("generating recommendations", "monthly_cost", avgMonthly, "budget", budget)
	payload := a.loop.Run(ctx, prompt, analysisMaxTokens, candidateValidator(isSQLite))

	var raw []map[string]any
	if payload != nil {
		if err := json.Unmarshal(payload, &raw); err != nil {
			a.logger.Warn("discarding unparseable recommendation payload", "error", err)
			raw = nil
		}
	}

	recs := PostProcess(raw, isSQLite, a.catalog.BannedPhrases, a.catalog.Defaults)
	CapSavings(recs, avgMonthly)

	return &model.CostReport{
		ProjectName: profile.Name,
		Analysis: model.Analysis{
			TotalMonthlyCost: round2(avgMonthly),
			Budget:           budget,
			BudgetVariance:   round2(variance),
			ServiceCosts:     roundMap(breakdown),
			HighCostServices: highCostServices(breakdown),
			IsOverBudget:     variance > 0,
		},
		Recommendations: recs,
	}
}

// candidateValidator rejects short lists, items missing required fields, and
// Database recommendations for SQLite projects. The returned message is fed
// back to the model on retry.
func candidateValidator(isSQLite bool) llm.Validator {
	return func(payload json.RawMessage) (bool, string) {
		var recs []map[string]any
		if err := json.Unmarshal(payload, &recs); err != nil {
			return false, "Output must be a JSON list"
		}
		if len(recs) < minCandidates {
			return false, fmt.Sprintf("Need %d+ items", minCandidates)
		}

		required := []string{"title", "service", "current_cost", "potential_savings"}
		for i, r := range recs {
			for _, k := range required {
				if _, ok := r[k]; !ok {
					return false, fmt.Sprintf("Missing fields at index %d", i)
				}
			}
			if isSQLite && str(r["service"]) == "Database" {
				return false, "No DB recs for SQLite"
			}
		}
		return true, ""
	}
}

// financials returns the average monthly cost and the per-service breakdown
// averaged over the distinct months present in the records.
func financials(billing []model.BillingRecord) (float64, map[string]float64) {
	total := 0
	months := make(map[string]struct{})
	services := make(map[string]int)

	for _, r := range billing {
		total += r.CostINR
		months[r.Month] = struct{}{}
		svc := r.Service
		if svc == "" {
			svc = "Unknown"
		}
		services[svc] += r.CostINR
	}

	monthCount := len(months)
	if monthCount == 0 {
		monthCount = 1
	}

	breakdown := make(map[string]float64, len(services))
	for svc, cost := range services {
		breakdown[svc] = float64(cost) / float64(monthCount)
	}

	return float64(total) / float64(monthCount), breakdown
}

// highCostServices returns the top services by average monthly spend.
func highCostServices(breakdown map[string]float64) map[string]float64 {
	type entry struct {
		name string
		cost float64
	}
	entries := make([]entry, 0, len(breakdown))
	for name, cost := range breakdown {
		entries = append(entries, entry{name, cost})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].cost != entries[j].cost {
			return entries[i].cost > entries[j].cost
		}
		return entries[i].name < entries[j].name
	})

	if len(entries) > topServices {
		entries = entries[:topServices]
	}

	top := make(map[string]float64, len(entries))
	for _, e := range entries {
		top[e.name] = round2(e.cost)
	}
	return top
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func roundMap(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = round2(v)
	}
	return out
}
