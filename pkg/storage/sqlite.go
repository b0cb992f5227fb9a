// Package storage keeps a local history of analysis runs and completion
// requests in an SQLite database.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/yapay-ai/cloud-cost-optimizer/pkg/model"

	_ "modernc.org/sqlite"
)

// SQLite implements the Storage interface using an SQLite database.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens or creates an SQLite database at the given path.
func NewSQLite(dbPath string) (*SQLite, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) RecordRun(ctx context.Context, run *model.RunRecord) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, project_name, budget_inr, avg_monthly_cost, total_savings, recommendation_count, over_budget, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.ProjectName, run.BudgetINR, run.AvgMonthlyCost,
		run.TotalSavings, run.RecommendationCount, boolToInt(run.OverBudget), run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert run record: %w", err)
	}
	return nil
}

func (s *SQLite) ListRuns(ctx context.Context, limit int) ([]model.RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, project_name, budget_inr, avg_monthly_cost, total_savings, recommendation_count, over_budget, created_at
		 FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []model.RunRecord
	for rows.Next() {
		var r model.RunRecord
		var overBudget int
		if err := rows.Scan(&r.ID, &r.ProjectName, &r.BudgetINR, &r.AvgMonthlyCost,
			&r.TotalSavings, &r.RecommendationCount, &overBudget, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}
		r.OverBudget = overBudget != 0
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func (s *SQLite) RecordCall(ctx context.Context, call *model.CallRecord) error {
	if call.ID == "" {
		call.ID = uuid.New().String()
	}
	if call.CreatedAt.IsZero() {
		call.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO llm_calls (id, stage, model, prompt_tokens, completion_tokens, duration_ms, ok, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		call.ID, call.Stage, call.Model, call.PromptTokens,
		call.CompletionTokens, call.DurationMS, boolToInt(call.OK), call.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert call record: %w", err)
	}
	return nil
}

func (s *SQLite) ListCalls(ctx context.Context, limit int) ([]model.CallRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, stage, model, prompt_tokens, completion_tokens, duration_ms, ok, created_at
		 FROM llm_calls ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query calls: %w", err)
	}
	defer rows.Close()

	var calls []model.CallRecord
	for rows.Next() {
		var c model.CallRecord
		var ok int
		if err := rows.Scan(&c.ID, &c.Stage, &c.Model, &c.PromptTokens,
			&c.CompletionTokens, &c.DurationMS, &ok, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan call row: %w", err)
		}
		c.OK = ok != 0
		calls = append(calls, c)
	}
	return calls, rows.Err()
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
