package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RunRecord describes one analysis invocation stored in the ensemble archive.
type RunRecord struct {
	ID        uuid.UUID
	Command   string
	Channel   string
	Params    string
	Seed      int64
	CreatedAt time.Time
}

// AggregateRow is one archived aggregate estimate keyed by time separation.
type AggregateRow struct {
	Tau            int
	Value          float64
	Error          float64
	FailurePercent float64
}

// ArchivePort persists run metadata, aggregate estimates, and raw bootstrap
// populations for later re-analysis.
type ArchivePort interface {
	SaveRun(ctx context.Context, run RunRecord) error
	SaveAggregates(ctx context.Context, runID uuid.UUID, rows []AggregateRow) error
	SaveSamples(ctx context.Context, runID uuid.UUID, samples []float64) error
}
