package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/voltline/renewable-ts/internal/core/storage"
	"github.com/voltline/renewable-ts/internal/core/timeseries"
)

const defaultInsertChunkSize = 5000

// SeedAdapter implements storage.SeedStore on the shared pool.
type SeedAdapter struct {
	db        *sql.DB
	chunkSize int
}

// NewSeedAdapter creates a SeedAdapter. chunkSize bounds the number of readings
// sent per INSERT statement; <= 0 selects the default.
func NewSeedAdapter(db *sql.DB, chunkSize int) *SeedAdapter {
	if chunkSize <= 0 {
		chunkSize = defaultInsertChunkSize
	}
	return &SeedAdapter{db: db, chunkSize: chunkSize}
}

// BeginSeed opens the ingestion transaction. The connection stays checked out
// of the pool until the returned SeedTx commits or rolls back.
func (a *SeedAdapter) BeginSeed(ctx context.Context) (storage.SeedTx, error) {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("seed: begin tx: %w", err)
	}
	return &seedTx{tx: tx, chunkSize: a.chunkSize}, nil
}

type seedTx struct {
	tx        *sql.Tx
	chunkSize int
}

func (s *seedTx) InsertBatch(ctx context.Context, source string, ingestedAt time.Time) (int64, bool, error) {
	var batchID int64
	err := s.tx.QueryRowContext(ctx, queryInsertBatch, ingestedAt.UTC(), source).Scan(&batchID)
	if errors.Is(err, sql.ErrNoRows) {
		// ON CONFLICT DO NOTHING - source already ingested
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("seed: insert batch %q: %w", source, err)
	}

	slog.Debug("[Postgres] Registered ingestion batch", "source", source, "ingestion_id", batchID)
	return batchID, true, nil
}

func (s *seedTx) InsertPoints(ctx context.Context, batchID int64, readings []timeseries.Reading) (int64, error) {
	if len(readings) == 0 {
		return 0, nil
	}

	stmt, err := s.tx.PrepareContext(ctx, queryInsertPoints)
	if err != nil {
		return 0, fmt.Errorf("seed: prepare insert points: %w", err)
	}
	defer stmt.Close()

	var inserted int64
	for start := 0; start < len(readings); start += s.chunkSize {
		end := min(start+s.chunkSize, len(readings))

		timestamps, amounts := pointArrays(readings[start:end])
		result, err := stmt.ExecContext(ctx, batchID, timestamps, amounts)
		if err != nil {
			slog.Error("[Postgres] Bulk insert failed",
				"ingestion_id", batchID,
				"chunk_start", start,
				"sqlstate", pgCode(err))
			return inserted, fmt.Errorf("seed: insert points [%d:%d]: %w", start, end, err)
		}

		n, err := result.RowsAffected()
		if err != nil {
			return inserted, fmt.Errorf("seed: rows affected: %w", err)
		}
		inserted += n
	}

	return inserted, nil
}

func (s *seedTx) Commit() error {
	if err := s.tx.Commit(); err != nil {
		return fmt.Errorf("seed: commit: %w", err)
	}
	return nil
}

func (s *seedTx) Rollback() error {
	if err := s.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("seed: rollback: %w", err)
	}
	return nil
}
