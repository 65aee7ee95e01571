package storage

import (
	"context"
	"time"

	"github.com/voltline/renewable-ts/internal/core/timeseries"
)

// SeedStore opens ingestion transactions.
type SeedStore interface {
	// BeginSeed starts one transaction that owns a single pooled connection
	// until Commit or Rollback.
	BeginSeed(ctx context.Context) (SeedTx, error)
}

// SeedTx is the write surface of one ingestion transaction.
// Rollback after Commit is a no-op, so callers may always defer it.
type SeedTx interface {
	// InsertBatch records the source with conflict-do-nothing semantics.
	// created is false when the source was already ingested; no row is written then.
	InsertBatch(ctx context.Context, source string, ingestedAt time.Time) (batchID int64, created bool, err error)

	// InsertPoints bulk inserts readings for batchID, silently dropping rows that
	// collide on (batch, timestamp). Returns the number of rows written.
	InsertPoints(ctx context.Context, batchID int64, readings []timeseries.Reading) (int64, error)

	Commit() error
	Rollback() error
}

// QueryStore serves aggregation reads and the audit history.
type QueryStore interface {
	// AggregateWithHistory writes entry first and then runs the grouped sum for
	// entry.Kind within entry's bounds, in one transaction. entry.ID is populated
	// on success. If any step fails nothing is persisted.
	AggregateWithHistory(ctx context.Context, entry *timeseries.HistoryEntry) ([]timeseries.Bucket, error)

	// ListHistory returns up to limit committed entries, newest first.
	ListHistory(ctx context.Context, limit int) ([]timeseries.HistoryEntry, error)
}
