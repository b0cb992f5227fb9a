package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/yapay-ai/cloud-cost-optimizer/internal/config"
	"github.com/yapay-ai/cloud-cost-optimizer/pkg/analyzer"
	"github.com/yapay-ai/cloud-cost-optimizer/pkg/artifacts"
	"github.com/yapay-ai/cloud-cost-optimizer/pkg/billing"
	"github.com/yapay-ai/cloud-cost-optimizer/pkg/catalog"
	"github.com/yapay-ai/cloud-cost-optimizer/pkg/llm"
	"github.com/yapay-ai/cloud-cost-optimizer/pkg/model"
	"github.com/yapay-ai/cloud-cost-optimizer/pkg/profile"
	"github.com/yapay-ai/cloud-cost-optimizer/pkg/storage"
	"github.com/yapay-ai/cloud-cost-optimizer/pkg/tracker"
)

// pipeline wires the stages together with shared infrastructure. Each stage's
// completion client is instrumented separately so the call log names the
// stage that made each request.
type pipeline struct {
	cfg       *config.Config
	logger    *slog.Logger
	files     *artifacts.Store
	history   storage.Storage
	recorder  *tracker.Recorder
	extractor *profile.Extractor
	generator *billing.Generator
	analyzer  *analyzer.Analyzer
}

// newPipeline assembles the full pipeline from config.
func newPipeline(cfg *config.Config, logger *slog.Logger) (*pipeline, error) {
	cat, err := catalog.Load()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	client := newClient(cfg, logger)
	history := initStorage(cfg, logger)
	notifiers := initNotifiers(cfg)

	p := &pipeline{
		cfg:      cfg,
		logger:   logger,
		files:    newArtifactStore(cfg),
		history:  history,
		recorder: tracker.NewRecorder(history, notifiers, logger),
	}

	profileClient := tracker.Instrument(client, "profile", history, logger)
	billingClient := tracker.Instrument(client, "billing", history, logger)
	analysisClient := tracker.Instrument(client, "analysis", history, logger)

	p.extractor = profile.NewExtractor(profileClient, cat, logger)
	p.generator = billing.NewGenerator(billingClient, cat, logger, nil)
	p.analyzer = analyzer.New(llm.NewQueryLoop(analysisClient, cfg.LLM.MaxRetries, logger), cat, logger)

	return p, nil
}

// Close releases the history database.
func (p *pipeline) Close() {
	if p.history != nil {
		_ = p.history.Close()
	}
}

// RunProfileStage extracts and persists a profile for the description. The
// description itself is saved first so the sanitizer's source of truth is
// always on disk.
func (p *pipeline) RunProfileStage(ctx context.Context, description string) (*model.ProjectProfile, error) {
	if err := p.files.SaveDescription(description); err != nil {
		return nil, err
	}

	profile, err := p.extractor.Extract(ctx, description)
	if err != nil {
		return nil, err
	}
	if profile.BudgetINRPerMonth <= 0 {
		profile.BudgetINRPerMonth = p.cfg.Defaults.BudgetINR
	}

	if err := p.files.SaveProfile(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// RunBillingStage generates and persists billing records for the stored
// profile.
func (p *pipeline) RunBillingStage(ctx context.Context) ([]model.BillingRecord, error) {
	profile, err := p.files.LoadProfile()
	if err != nil {
		return nil, err
	}

	records := p.generator.Generate(ctx, profile)
	if err := p.files.SaveBilling(records); err != nil {
		return nil, err
	}
	return records, nil
}

// RunAnalysisStage analyzes the stored profile and billing records, persists
// the report, and records the run.
func (p *pipeline) RunAnalysisStage(ctx context.Context) (*model.CostReport, error) {
	profile, err := p.files.LoadProfile()
	if err != nil {
		return nil, err
	}
	records, err := p.files.LoadBilling()
	if err != nil {
		return nil, err
	}

	report := p.analyzer.Analyze(ctx, profile, records)
	if err := p.files.SaveReport(report); err != nil {
		return nil, err
	}

	p.recorder.RecordRun(ctx, report)
	return report, nil
}

// MissingArtifact reports whether err signals a missing input artifact.
func MissingArtifact(err error) bool {
	return errors.Is(err, artifacts.ErrNotFound)
}
