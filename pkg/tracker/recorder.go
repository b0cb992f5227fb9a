// Package tracker records pipeline activity: every completion request goes to
// the call log, every finished analysis run to the run history, and runs that
// land over budget are dispatched to the configured notifiers. Recording is
// best-effort and never fails the pipeline.
package tracker

import (
	"context"
	"log/slog"
	"time"

	"github.com/yapay-ai/cloud-cost-optimizer/pkg/alerts"
	"github.com/yapay-ai/cloud-cost-optimizer/pkg/llm"
	"github.com/yapay-ai/cloud-cost-optimizer/pkg/model"
	"github.com/yapay-ai/cloud-cost-optimizer/pkg/storage"
	"github.com/yapay-ai/cloud-cost-optimizer/pkg/tokenizer"
)

// Recorder persists run summaries and dispatches over-budget alerts.
type Recorder struct {
	storage   storage.Storage
	notifiers []alerts.Notifier
	logger    *slog.Logger
}

// NewRecorder creates a recorder. storage may be nil, in which case only
// alerts are dispatched.
func NewRecorder(store storage.Storage, notifiers []alerts.Notifier, logger *slog.Logger) *Recorder {
	return &Recorder{storage: store, notifiers: notifiers, logger: logger}
}

// RecordRun stores the run summary and alerts when the report is over budget.
func (r *Recorder) RecordRun(ctx context.Context, report *model.CostReport) {
	run := &model.RunRecord{
		ProjectName:         report.ProjectName,
		BudgetINR:           report.Analysis.Budget,
		AvgMonthlyCost:      report.Analysis.TotalMonthlyCost,
		TotalSavings:        report.TotalSavings(),
		RecommendationCount: len(report.Recommendations),
		OverBudget:          report.Analysis.IsOverBudget,
	}

	if r.storage != nil {
		if err := r.storage.RecordRun(ctx, run); err != nil {
			r.logger.Error("record run failed", "project", run.ProjectName, "error", err)
		}
	}

	if report.Analysis.IsOverBudget {
		r.dispatchOverBudget(ctx, report)
	}
}

func (r *Recorder) dispatchOverBudget(ctx context.Context, report *model.CostReport) {
	alert := alerts.FromReport(report)

	r.logger.Warn("project over budget",
		"project", report.ProjectName,
		"monthly_cost", report.Analysis.TotalMonthlyCost,
		"budget", report.Analysis.Budget,
		"variance", report.Analysis.BudgetVariance,
	)

	for _, notifier := range r.notifiers {
		if err := notifier.Send(ctx, alert); err != nil {
			r.logger.Error("send alert failed",
				"notifier", notifier.Name(),
				"project", report.ProjectName,
				"error", err,
			)
		}
	}
}

// InstrumentedCompleter wraps a Completer and logs every request it makes to
// the call log, with token estimates and timing. It implements llm.Completer
// so stages stay unaware of the instrumentation.
type InstrumentedCompleter struct {
	inner   llm.Completer
	stage   string
	storage storage.Storage
	logger  *slog.Logger
}

// Instrument wraps client so its calls are logged under the given stage name.
func Instrument(client llm.Completer, stage string, store storage.Storage, logger *slog.Logger) *InstrumentedCompleter {
	return &InstrumentedCompleter{inner: client, stage: stage, storage: store, logger: logger}
}

func (c *InstrumentedCompleter) Model() string { return c.inner.Model() }

func (c *InstrumentedCompleter) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	start := time.Now()
	out, err := c.inner.Complete(ctx, prompt, maxTokens)
	elapsed := time.Since(start)

	promptTokens, tokErr := tokenizer.CountPromptTokens(prompt, c.inner.Model())
	if tokErr != nil {
		promptTokens = tokenizer.EstimateTokens(prompt)
	}

	call := &model.CallRecord{
		Stage:            c.stage,
		Model:            c.inner.Model(),
		PromptTokens:     promptTokens,
		CompletionTokens: tokenizer.EstimateTokens(out),
		DurationMS:       elapsed.Milliseconds(),
		OK:               err == nil,
	}

	if c.storage != nil {
		if recErr := c.storage.RecordCall(ctx, call); recErr != nil {
			c.logger.Error("record call failed", "stage", c.stage, "error", recErr)
		}
	}

	return out, err
}
