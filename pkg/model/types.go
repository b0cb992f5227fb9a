package model

import (
	"strings"
	"time"
)

// NotSpecified is the sentinel value for tech-stack layers whose tool could not
// be verified against the project description.
const NotSpecified = "Not Specified"

// ProjectProfile is the structured description of a cloud project, extracted
// from free text and sanitized against it. After sanitization it is immutable.
type ProjectProfile struct {
	Name                      string            `json:"name"`
	BudgetINRPerMonth         int               `json:"budget_inr_per_month"`
	Description               string            `json:"description"`
	TechStack                 map[string]string `json:"tech_stack"`
	NonFunctionalRequirements []string          `json:"non_functional_requirements"`
}

// IsSQLite reports whether the profile's database layer is SQLite. SQLite runs
// on the host compute instance, so it must never incur separate Database billing.
func (p *ProjectProfile) IsSQLite() bool {
	return strings.Contains(strings.ToLower(p.TechStack["database"]), "sqlite")
}

// BillingRecord is one line item of simulated monthly cloud spend.
type BillingRecord struct {
	Month         string  `json:"month"`
	Service       string  `json:"service"`
	CostINR       int     `json:"cost_inr"`
	Region        string  `json:"region,omitempty"`
	UsageType     string  `json:"usage_type,omitempty"`
	ResourceID    string  `json:"resource_id,omitempty"`
	Unit          string  `json:"unit,omitempty"`
	UsageQuantity float64 `json:"usage_quantity,omitempty"`
	Desc          string  `json:"desc,omitempty"`
}

// RecommendationItem is a proposed cost-optimization or governance action.
type RecommendationItem struct {
	Title                string   `json:"title"`
	Service              string   `json:"service"`
	CurrentCost          int      `json:"current_cost"`
	PotentialSavings     int      `json:"potential_savings"`
	RecommendationType   string   `json:"recommendation_type"`
	Description          string   `json:"description"`
	Steps                []string `json:"steps,omitempty"`
	RiskLevel            string   `json:"risk_level,omitempty"`
	ImplementationEffort string   `json:"implementation_effort,omitempty"`
	CloudProviders       []string `json:"cloud_providers,omitempty"`
}

// IsGovernance reports whether the item is retained for compliance/process
// value even with zero projected savings.
func (r *RecommendationItem) IsGovernance() bool {
	return strings.Contains(strings.ToLower(r.RecommendationType), "governance")
}

// Analysis holds the computed financial summary for a report.
type Analysis struct {
	TotalMonthlyCost float64            `json:"total_monthly_cost"`
	Budget           int                `json:"budget"`
	BudgetVariance   float64            `json:"budget_variance"`
	ServiceCosts     map[string]float64 `json:"service_costs"`
	HighCostServices map[string]float64 `json:"high_cost_services"`
	IsOverBudget     bool               `json:"is_over_budget"`
}

// CostReport is the terminal artifact of an analysis run.
type CostReport struct {
	ProjectName     string               `json:"project_name"`
	Analysis        Analysis             `json:"analysis"`
	Recommendations []RecommendationItem `json:"recommendations"`
}

// TotalSavings sums the potential savings across all recommendations.
func (r *CostReport) TotalSavings() int {
	total := 0
	for _, rec := range r.Recommendations {
		total += rec.PotentialSavings
	}
	return total
}

// RunRecord summarizes one completed analysis run in the history store.
type RunRecord struct {
	ID                  string    `json:"id" db:"id"`
	ProjectName         string    `json:"project_name" db:"project_name"`
	BudgetINR           int       `json:"budget_inr" db:"budget_inr"`
	AvgMonthlyCost      float64   `json:"avg_monthly_cost" db:"avg_monthly_cost"`
	TotalSavings        int       `json:"total_savings" db:"total_savings"`
	RecommendationCount int       `json:"recommendation_count" db:"recommendation_count"`
	OverBudget          bool      `json:"over_budget" db:"over_budget"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
}

// CallRecord logs a single completion request made during a pipeline run.
type CallRecord struct {
	ID               string    `json:"id" db:"id"`
	Stage            string    `json:"stage" db:"stage"`
	Model            string    `json:"model" db:"model"`
	PromptTokens     int64     `json:"prompt_tokens" db:"prompt_tokens"`
	CompletionTokens int64     `json:"completion_tokens" db:"completion_tokens"`
	DurationMS       int64     `json:"duration_ms" db:"duration_ms"`
	OK               bool      `json:"ok" db:"ok"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}
