// Package memory is an in-process implementation of the storage interfaces.
// It keeps the same transactional guarantees as the Postgres adapters and is
// used by service and seeder tests.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/voltline/renewable-ts/internal/core/storage"
	"github.com/voltline/renewable-ts/internal/core/timeseries"
)

// Operations that can be failed with FailOn.
const (
	OpBeginSeed     = "begin_seed"
	OpInsertBatch   = "insert_batch"
	OpInsertPoints  = "insert_points"
	OpCommitSeed    = "commit_seed"
	OpInsertHistory = "insert_history"
	OpAggregate     = "aggregate"
)

var errTxDone = errors.New("memory: transaction already finished")

type pointKey struct {
	batchID int64
	ts      int64
}

// Store holds batches, points and history in memory.
type Store struct {
	// seedMu serializes seed transactions the way the unique source index
	// serializes competing inserts in Postgres.
	seedMu sync.Mutex

	mu          sync.RWMutex
	nextBatch   int64
	nextHistory int64
	batches     map[string]timeseries.Batch
	points      map[pointKey]timeseries.Point
	history     []timeseries.HistoryEntry
	failures    map[string]error
}

var (
	_ storage.SeedStore  = (*Store)(nil)
	_ storage.QueryStore = (*Store)(nil)
)

func NewStore() *Store {
	return &Store{
		batches:  make(map[string]timeseries.Batch),
		points:   make(map[pointKey]timeseries.Point),
		failures: make(map[string]error),
	}
}

// FailOn makes every later call of op return err. A nil err clears it.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, op)
		return
	}
	s.failures[op] = err
}

func (s *Store) failure(op string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.failures[op]
}

// Ping always succeeds.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Batches returns committed batches keyed by source.
func (s *Store) Batches() map[string]timeseries.Batch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]timeseries.Batch, len(s.batches))
	for k, v := range s.batches {
		out[k] = v
	}
	return out
}

// Points returns committed points ordered by batch and timestamp.
func (s *Store) Points() []timeseries.Point {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]timeseries.Point, 0, len(s.points))
	for _, p := range s.points {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].BatchID != out[j].BatchID {
			return out[i].BatchID < out[j].BatchID
		}
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

// BeginSeed blocks until no other seed transaction is open.
func (s *Store) BeginSeed(ctx context.Context) (storage.SeedTx, error) {
	if err := s.failure(OpBeginSeed); err != nil {
		return nil, err
	}
	s.seedMu.Lock()
	if err := ctx.Err(); err != nil {
		s.seedMu.Unlock()
		return nil, err
	}
	return &seedTx{store: s, points: make(map[pointKey]timeseries.Point)}, nil
}

type seedTx struct {
	store  *Store
	done   bool
	batch  *timeseries.Batch
	points map[pointKey]timeseries.Point
}

func (tx *seedTx) InsertBatch(ctx context.Context, source string, ingestedAt time.Time) (int64, bool, error) {
	if tx.done {
		return 0, false, errTxDone
	}
	if err := tx.store.failure(OpInsertBatch); err != nil {
		return 0, false, err
	}
	if err := ctx.Err(); err != nil {
		return 0, false, err
	}

	tx.store.mu.Lock()
	defer tx.store.mu.Unlock()
	if _, ok := tx.store.batches[source]; ok {
		return 0, false, nil
	}
	if tx.batch != nil && tx.batch.Source == source {
		return 0, false, nil
	}
	tx.store.nextBatch++
	tx.batch = &timeseries.Batch{ID: tx.store.nextBatch, IngestedAt: ingestedAt.UTC(), Source: source}
	return tx.batch.ID, true, nil
}

func (tx *seedTx) InsertPoints(ctx context.Context, batchID int64, readings []timeseries.Reading) (int64, error) {
	if tx.done {
		return 0, errTxDone
	}
	if err := tx.store.failure(OpInsertPoints); err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if tx.batch == nil || tx.batch.ID != batchID {
		return 0, fmt.Errorf("memory: unknown batch %d", batchID)
	}

	var inserted int64
	for _, r := range readings {
		key := pointKey{batchID: batchID, ts: r.Timestamp.UnixNano()}
		if _, ok := tx.points[key]; ok {
			continue
		}
		tx.points[key] = timeseries.Point{BatchID: batchID, Timestamp: r.Timestamp.UTC(), Amount: r.Amount}
		inserted++
	}
	return inserted, nil
}

func (tx *seedTx) Commit() error {
	if tx.done {
		return errTxDone
	}
	if err := tx.store.failure(OpCommitSeed); err != nil {
		return err
	}
	tx.done = true
	defer tx.store.seedMu.Unlock()

	if tx.batch == nil {
		return nil
	}
	tx.store.mu.Lock()
	defer tx.store.mu.Unlock()
	tx.store.batches[tx.batch.Source] = *tx.batch
	for k, p := range tx.points {
		tx.store.points[k] = p
	}
	return nil
}

func (tx *seedTx) Rollback() error {
	if tx.done {
		return nil
	}
	tx.done = true
	tx.store.seedMu.Unlock()
	return nil
}

// AggregateWithHistory records entry and sums points per bucket atomically.
// Buckets are returned in ascending order.
func (s *Store) AggregateWithHistory(ctx context.Context, entry *timeseries.HistoryEntry) ([]timeseries.Bucket, error) {
	if !entry.Kind.Valid() {
		return nil, fmt.Errorf("aggregate: invalid kind %d", entry.Kind)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.failure(OpInsertHistory); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// The entry is staged first and published only once the sums succeed,
	// mirroring the insert-then-select transaction in Postgres.
	recorded := *entry
	recorded.ID = s.nextHistory + 1
	recorded.ExecutedAt = entry.ExecutedAt.UTC()
	staged := append(s.history[:len(s.history):len(s.history)], recorded)

	if err := s.failures[OpAggregate]; err != nil {
		return nil, err
	}

	totals := make(map[int64]decimal.Decimal)
	starts := make(map[int64]time.Time)
	for _, p := range s.points {
		if !entry.Contains(p.Timestamp) {
			continue
		}
		start := entry.Kind.Truncate(p.Timestamp)
		key := start.UnixNano()
		totals[key] = totals[key].Add(p.Amount)
		starts[key] = start
	}

	buckets := make([]timeseries.Bucket, 0, len(totals))
	for key, total := range totals {
		buckets = append(buckets, timeseries.Bucket{
			Start: starts[key],
			Total: decimal.NewNullDecimal(total),
		})
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Start.Before(buckets[j].Start)
	})

	s.history = staged
	s.nextHistory = recorded.ID
	entry.ID = recorded.ID
	return buckets, nil
}

// ListHistory returns up to limit entries, newest first.
func (s *Store) ListHistory(ctx context.Context, limit int) ([]timeseries.HistoryEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]timeseries.HistoryEntry, len(s.history))
	copy(out, s.history)
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ExecutedAt.Equal(out[j].ExecutedAt) {
			return out[i].ExecutedAt.After(out[j].ExecutedAt)
		}
		return out[i].ID > out[j].ID
	})
	if limit < 0 {
		limit = 0
	}
	return out[:min(limit, len(out))], nil
}
