package timeseries

import (
	"time"

	"github.com/shopspring/decimal"
)

// Reading is one decoded source record: when the energy was produced and how much.
type Reading struct {
	Timestamp time.Time       // UTC
	Amount    decimal.Decimal // exact; never round-tripped through float64
}

// Batch describes one ingested source (ts_metadata row).
// Source is the idempotence key: a source is ingested at most once.
type Batch struct {
	ID         int64
	IngestedAt time.Time
	Source     string
}

// Point is a persisted reading owned by a batch (ts_store row).
// (BatchID, Timestamp) is unique.
type Point struct {
	BatchID   int64
	Timestamp time.Time
	Amount    decimal.Decimal
}

// HistoryEntry is one audit row written for every aggregation request.
type HistoryEntry struct {
	ID         int64
	ExecutedAt time.Time
	From       *time.Time
	To         *time.Time
	Kind       AggregationKind
}

// Bucket is one aggregation group: the truncated bucket start and its total.
// Total is NULL-able to match SUM over an empty set, though grouped queries
// never produce one.
type Bucket struct {
	Start time.Time
	Total decimal.NullDecimal
}

// Contains reports whether ts falls inside the entry's inclusive bounds.
func (h HistoryEntry) Contains(ts time.Time) bool {
	if h.From != nil && ts.Before(*h.From) {
		return false
	}
	if h.To != nil && ts.After(*h.To) {
		return false
	}
	return true
}
