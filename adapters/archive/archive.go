// Package archive persists runs, aggregate estimates, and raw bootstrap
// populations to a Postgres ensemble database, keyed by a run UUID, so
// results can be re-analysed without rerunning the trials.
package archive

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"su2kit/internal/errors"
	"su2kit/ports"
)

// Archive stores analysis results in Postgres. Implements ports.ArchivePort.
type Archive struct {
	db *sqlx.DB
}

// Open connects to the archive database and ensures the schema exists.
func Open(ctx context.Context, dsn string) (*Archive, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, errors.ArchiveError(fmt.Sprintf("connect to archive: %v", err))
	}
	a := &Archive{db: db}
	if err := a.ensure(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return a, nil
}

// Close releases the database connection.
func (a *Archive) Close() error {
	return a.db.Close()
}

func (a *Archive) ensure(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id         UUID PRIMARY KEY,
			command    TEXT NOT NULL,
			channel    TEXT NOT NULL DEFAULT '',
			params     TEXT NOT NULL DEFAULT '',
			seed       BIGINT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);
		CREATE TABLE IF NOT EXISTS aggregates (
			run_id          UUID NOT NULL REFERENCES runs(id),
			tau             INT NOT NULL,
			value           DOUBLE PRECISION NOT NULL,
			error           DOUBLE PRECISION NOT NULL,
			failure_percent DOUBLE PRECISION NOT NULL,
			PRIMARY KEY (run_id, tau)
		);
		CREATE TABLE IF NOT EXISTS samples (
			run_id UUID NOT NULL REFERENCES runs(id),
			ord    INT NOT NULL,
			value  DOUBLE PRECISION NOT NULL,
			PRIMARY KEY (run_id, ord)
		);`
	if _, err := a.db.ExecContext(ctx, schema); err != nil {
		return errors.ArchiveError(fmt.Sprintf("ensure archive schema: %v", err))
	}
	return nil
}

// SaveRun records one analysis invocation.
func (a *Archive) SaveRun(ctx context.Context, run ports.RunRecord) error {
	query := `
		INSERT INTO runs (id, command, channel, params, seed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := a.db.ExecContext(ctx, query,
		run.ID, run.Command, run.Channel, run.Params, run.Seed, run.CreatedAt)
	if err != nil {
		return errors.ArchiveError(fmt.Sprintf("save run %s: %v", run.ID, err))
	}
	log.Printf("[Archive] saved run %s (%s)", run.ID, run.Command)
	return nil
}

// SaveAggregates records the aggregate rows of a scan.
func (a *Archive) SaveAggregates(ctx context.Context, runID uuid.UUID, rows []ports.AggregateRow) error {
	tx, err := a.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.ArchiveError(fmt.Sprintf("begin aggregate save: %v", err))
	}
	defer tx.Rollback()

	query := `
		INSERT INTO aggregates (run_id, tau, value, error, failure_percent)
		VALUES ($1, $2, $3, $4, $5)`
	for _, row := range rows {
		if _, err := tx.ExecContext(ctx, query, runID, row.Tau, row.Value, row.Error, row.FailurePercent); err != nil {
			return errors.ArchiveError(fmt.Sprintf("save aggregate tau=%d: %v", row.Tau, err))
		}
	}
	if err := tx.Commit(); err != nil {
		return errors.ArchiveError(fmt.Sprintf("commit aggregate save: %v", err))
	}
	return nil
}

// SaveSamples records a raw bootstrap population in trial order.
func (a *Archive) SaveSamples(ctx context.Context, runID uuid.UUID, samples []float64) error {
	tx, err := a.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.ArchiveError(fmt.Sprintf("begin sample save: %v", err))
	}
	defer tx.Rollback()

	query := `INSERT INTO samples (run_id, ord, value) VALUES ($1, $2, $3)`
	for i, v := range samples {
		if _, err := tx.ExecContext(ctx, query, runID, i, v); err != nil {
			return errors.ArchiveError(fmt.Sprintf("save sample %d: %v", i, err))
		}
	}
	if err := tx.Commit(); err != nil {
		return errors.ArchiveError(fmt.Sprintf("commit sample save: %v", err))
	}
	return nil
}
