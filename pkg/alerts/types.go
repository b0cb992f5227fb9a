package alerts

import (
	"context"
	"fmt"

	"github.com/yapay-ai/cloud-cost-optimizer/pkg/model"
)

// AlertLevel indicates the severity of a budget overrun alert.
type AlertLevel string

const (
	AlertWarning  AlertLevel = "warning"  // Over budget
	AlertCritical AlertLevel = "critical" // Over budget by 20% or more
)

// criticalOverrunFactor is the monthly-cost-to-budget ratio at which an
// overrun escalates from warning to critical.
const criticalOverrunFactor = 1.2

// Alert represents a budget overrun notification for an analysis run.
type Alert struct {
	Level       AlertLevel `json:"level"`
	ProjectName string     `json:"project_name"`
	BudgetINR   int        `json:"budget_inr"`
	MonthlyCost float64    `json:"monthly_cost"`
	VarianceINR float64    `json:"variance_inr"`
	SavingsINR  int        `json:"savings_inr"`
	Message     string     `json:"message"`
}

// FromReport builds an overrun alert from a cost report. Callers only invoke
// this for over-budget reports.
func FromReport(report *model.CostReport) Alert {
	level := AlertWarning
	if report.Analysis.Budget > 0 &&
		report.Analysis.TotalMonthlyCost >= float64(report.Analysis.Budget)*criticalOverrunFactor {
		level = AlertCritical
	}

	return Alert{
		Level:       level,
		ProjectName: report.ProjectName,
		BudgetINR:   report.Analysis.Budget,
		MonthlyCost: report.Analysis.TotalMonthlyCost,
		VarianceINR: report.Analysis.BudgetVariance,
		SavingsINR:  report.TotalSavings(),
		Message: fmt.Sprintf("Project %q over budget: %.0f INR/month against a budget of %d INR",
			report.ProjectName, report.Analysis.TotalMonthlyCost, report.Analysis.Budget),
	}
}

// Notifier sends alerts to external systems.
type Notifier interface {
	// Name returns the notifier identifier.
	Name() string

	// Send delivers an alert. Implementations must be safe for concurrent use.
	Send(ctx context.Context, alert Alert) error
}
