package storage

import (
	"context"

	"github.com/yapay-ai/cloud-cost-optimizer/pkg/model"
)

// Storage defines the persistence layer for run history and LLM call logs.
type Storage interface {
	// RecordRun persists the summary of one completed analysis run.
	RecordRun(ctx context.Context, run *model.RunRecord) error

	// ListRuns returns the most recent runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]model.RunRecord, error)

	// RecordCall persists a single completion request log entry.
	RecordCall(ctx context.Context, call *model.CallRecord) error

	// ListCalls returns the most recent call log entries, newest first.
	ListCalls(ctx context.Context, limit int) ([]model.CallRecord, error)

	// Close releases resources.
	Close() error
}
