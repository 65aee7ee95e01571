package v1

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/voltline/renewable-ts/internal/core/timeseries"
)

// DatetimeFilter bounds an aggregation request. Both bounds are inclusive
// and independent; either may be omitted.
type DatetimeFilter struct {
	FromDate *time.Time `json:"from_date,omitempty"`
	ToDate   *time.Time `json:"to_date,omitempty"`
}

// QueryRequest is the body of POST /timeseries/v1/query.
type QueryRequest struct {
	// AggregationKind is one of "Hourly", "DayInMonth", "Monthly", "Yearly".
	// Any other name fails JSON decoding.
	AggregationKind timeseries.AggregationKind `json:"aggregation_kind"`

	// DatetimeFilter may be omitted entirely, which aggregates every point.
	DatetimeFilter *DatetimeFilter `json:"datetime_filter,omitempty"`
}

// Validate ensures the request names a supported aggregation kind.
func (r *QueryRequest) Validate() error {
	if !r.AggregationKind.Valid() {
		return fmt.Errorf("aggregation_kind is required")
	}
	return nil
}

// Bounds returns the optional inclusive range, normalized to UTC.
func (r *QueryRequest) Bounds() (from, to *time.Time) {
	if r.DatetimeFilter == nil {
		return nil, nil
	}
	return utcPtr(r.DatetimeFilter.FromDate), utcPtr(r.DatetimeFilter.ToDate)
}

// Record is one aggregated bucket.
type Record struct {
	// Datetime is the UTC start of the bucket.
	Datetime time.Time `json:"datetime"`

	// TotalAmount is the bucket sum as a decimal string, or null.
	TotalAmount decimal.NullDecimal `json:"total_amount"`
}

// QueryResponse is the 200 body of POST /timeseries/v1/query.
type QueryResponse struct {
	ExecutedAt time.Time `json:"executed_at"`
	Records    []Record  `json:"records"`
}

// NewQueryResponse converts store buckets into the wire shape. Records is
// never nil so an empty result encodes as [].
func NewQueryResponse(executedAt time.Time, buckets []timeseries.Bucket) *QueryResponse {
	records := make([]Record, 0, len(buckets))
	for _, b := range buckets {
		records = append(records, Record{Datetime: b.Start.UTC(), TotalAmount: b.Total})
	}
	return &QueryResponse{ExecutedAt: executedAt.UTC(), Records: records}
}

// HistoryEntry is one element of GET /timeseries/v1/query/history.
// Missing bounds encode as null.
type HistoryEntry struct {
	ID          int64                      `json:"id"`
	ExecutedAt  time.Time                  `json:"executed_at"`
	FromDate    *time.Time                 `json:"from_date"`
	ToDate      *time.Time                 `json:"to_date"`
	Aggregation timeseries.AggregationKind `json:"aggregation"`
}

// NewHistoryEntries converts stored entries into the wire shape, keeping order.
func NewHistoryEntries(entries []timeseries.HistoryEntry) []HistoryEntry {
	out := make([]HistoryEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, HistoryEntry{
			ID:          e.ID,
			ExecutedAt:  e.ExecutedAt.UTC(),
			FromDate:    utcPtr(e.From),
			ToDate:      utcPtr(e.To),
			Aggregation: e.Kind,
		})
	}
	return out
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
