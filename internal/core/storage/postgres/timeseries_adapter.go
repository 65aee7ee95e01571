package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"github.com/voltline/renewable-ts/internal/core/timeseries"
)

// QueryAdapter implements storage.QueryStore using PostgreSQL.
// The history insert and the aggregate read share one transaction, so an
// audit row exists only for aggregations that completed.
type QueryAdapter struct {
	db *sql.DB
}

// NewQueryAdapter creates a new QueryAdapter sharing the given connection pool.
func NewQueryAdapter(db *sql.DB) *QueryAdapter {
	return &QueryAdapter{db: db}
}

// AggregateWithHistory records entry and returns the grouped sums for entry.Kind.
func (a *QueryAdapter) AggregateWithHistory(ctx context.Context, entry *timeseries.HistoryEntry) ([]timeseries.Bucket, error) {
	if !entry.Kind.Valid() {
		return nil, fmt.Errorf("aggregate: invalid aggregation kind %d", int(entry.Kind))
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("aggregate: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	// History first: if the read below fails the insert is rolled back with it.
	var historyID int64
	if err := tx.QueryRowContext(ctx, queryInsertHistory,
		entry.ExecutedAt.UTC(),
		nullableTime(entry.From),
		nullableTime(entry.To),
		entry.Kind.String(),
	).Scan(&historyID); err != nil {
		return nil, fmt.Errorf("aggregate: insert history: %w", err)
	}

	rows, err := tx.QueryContext(ctx, queryAggregate,
		entry.Kind.TruncUnit(),
		nullableTime(entry.From),
		nullableTime(entry.To),
	)
	if err != nil {
		return nil, fmt.Errorf("aggregate: query %s: %w", entry.Kind, err)
	}
	defer rows.Close()

	buckets := make([]timeseries.Bucket, 0)
	for rows.Next() {
		var (
			bucket timeseries.Bucket
			total  decimal.NullDecimal
		)
		if err := rows.Scan(&bucket.Start, &total); err != nil {
			return nil, fmt.Errorf("aggregate: scan row: %w", err)
		}
		bucket.Start = bucket.Start.UTC()
		bucket.Total = total
		buckets = append(buckets, bucket)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("aggregate: iterate rows: %w", err)
	}
	if err := rows.Close(); err != nil {
		return nil, fmt.Errorf("aggregate: close rows: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("aggregate: commit: %w", err)
	}

	entry.ID = historyID
	slog.Debug("[Postgres] Aggregation complete",
		"history_id", historyID,
		"aggregation", entry.Kind.String(),
		"buckets", len(buckets))
	return buckets, nil
}

// ListHistory returns the most recent history entries, newest first.
func (a *QueryAdapter) ListHistory(ctx context.Context, limit int) ([]timeseries.HistoryEntry, error) {
	rows, err := a.db.QueryContext(ctx, queryListHistory, limit)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	entries := make([]timeseries.HistoryEntry, 0)
	for rows.Next() {
		entry, err := scanHistoryRow(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list history: iterate rows: %w", err)
	}

	return entries, nil
}
