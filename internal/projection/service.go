package projection

import (
	"context"
	"errors"
	"fmt"
	"time"

	v1 "github.com/voltline/renewable-ts/internal/api/v1"
	"github.com/voltline/renewable-ts/internal/core/storage"
	"github.com/voltline/renewable-ts/internal/core/timeseries"
)

// DefaultHistoryLimit is the number of entries the history endpoint returns.
const DefaultHistoryLimit = 10

var (
	// ErrInvalidQuery marks request validation errors that should return HTTP 400.
	ErrInvalidQuery = errors.New("invalid aggregate query")

	// ErrStore marks storage failures. Nothing is recorded when it is returned.
	ErrStore = errors.New("query store failure")
)

// Service implements the query layer: aggregation reads with their audit
// record, and the audit history itself.
type Service struct {
	store        storage.QueryStore
	historyLimit int
	nowFn        func() time.Time
}

// NewService creates a new query service. historyLimit <= 0 selects
// DefaultHistoryLimit.
func NewService(store storage.QueryStore, historyLimit int) *Service {
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}
	return &Service{
		store:        store,
		historyLimit: historyLimit,
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Aggregate sums production per bucket of req's kind and records the request
// in the same transaction.
func (s *Service) Aggregate(ctx context.Context, req v1.QueryRequest) (*v1.QueryResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, invalidQueryf("%v", err)
	}

	from, to := req.Bounds()
	entry := &timeseries.HistoryEntry{
		ExecutedAt: s.nowFn().UTC(),
		From:       from,
		To:         to,
		Kind:       req.AggregationKind,
	}

	buckets, err := s.store.AggregateWithHistory(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}

	return v1.NewQueryResponse(entry.ExecutedAt, buckets), nil
}

// History returns the most recent aggregation requests, newest first.
func (s *Service) History(ctx context.Context) ([]v1.HistoryEntry, error) {
	entries, err := s.store.ListHistory(ctx, s.historyLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}
	return v1.NewHistoryEntries(entries), nil
}

func invalidQueryf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidQuery, fmt.Sprintf(format, args...))
}
