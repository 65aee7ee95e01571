package projection

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	v1 "github.com/voltline/renewable-ts/internal/api/v1"
	"github.com/voltline/renewable-ts/internal/core/storage/memory"
	"github.com/voltline/renewable-ts/internal/core/timeseries"
	storagemocks "github.com/voltline/renewable-ts/internal/mocks/storage"
)

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestService(store *storagemocks.QueryStore) *Service {
	svc := NewService(store, 0)
	svc.nowFn = func() time.Time { return now }
	return svc
}

func TestService_Aggregate_Validation(t *testing.T) {
	store := storagemocks.NewQueryStore(t)
	svc := newTestService(store)

	_, err := svc.Aggregate(context.Background(), v1.QueryRequest{})
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidQuery)
}

func TestService_Aggregate_PassesBoundsAndClock(t *testing.T) {
	from := time.Date(2025, 1, 1, 2, 0, 0, 0, time.FixedZone("CET", 3600))
	to := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	bucket := timeseries.Bucket{
		Start: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Total: decimal.NewNullDecimal(decimal.RequireFromString("117600.000")),
	}

	store := storagemocks.NewQueryStore(t)
	store.EXPECT().
		AggregateWithHistory(mock.Anything, mock.MatchedBy(func(e *timeseries.HistoryEntry) bool {
			return e.Kind == timeseries.Monthly &&
				e.ExecutedAt.Equal(now) &&
				e.From != nil && e.From.Equal(from) && e.From.Location() == time.UTC &&
				e.To != nil && e.To.Equal(to)
		})).
		RunAndReturn(func(_ context.Context, e *timeseries.HistoryEntry) ([]timeseries.Bucket, error) {
			e.ID = 7
			return []timeseries.Bucket{bucket}, nil
		}).
		Once()

	svc := newTestService(store)
	resp, err := svc.Aggregate(context.Background(), v1.QueryRequest{
		AggregationKind: timeseries.Monthly,
		DatetimeFilter:  &v1.DatetimeFilter{FromDate: &from, ToDate: &to},
	})
	require.NoError(t, err)
	require.Equal(t, now, resp.ExecutedAt)
	require.Len(t, resp.Records, 1)
	require.Equal(t, bucket.Start, resp.Records[0].Datetime)
	require.True(t, resp.Records[0].TotalAmount.Decimal.Equal(decimal.NewFromInt(117600)))
}

func TestService_Aggregate_StoreErrorWrapped(t *testing.T) {
	store := storagemocks.NewQueryStore(t)
	store.EXPECT().
		AggregateWithHistory(mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("aggregate: query hour: connection refused")).
		Once()

	_, err := newTestService(store).Aggregate(context.Background(), v1.QueryRequest{AggregationKind: timeseries.Hourly})
	require.ErrorIs(t, err, ErrStore)
	require.NotErrorIs(t, err, ErrInvalidQuery)
}

func TestService_History_UsesLimit(t *testing.T) {
	store := storagemocks.NewQueryStore(t)
	store.EXPECT().
		ListHistory(mock.Anything, DefaultHistoryLimit).
		Return([]timeseries.HistoryEntry{{ID: 3, ExecutedAt: now, Kind: timeseries.Yearly}}, nil).
		Once()

	entries, err := newTestService(store).History(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, int64(3), entries[0].ID)
	require.Equal(t, timeseries.Yearly, entries[0].Aggregation)

	custom := storagemocks.NewQueryStore(t)
	custom.EXPECT().ListHistory(mock.Anything, 3).Return(nil, fmt.Errorf("timeout")).Once()
	_, err = NewService(custom, 3).History(context.Background())
	require.ErrorIs(t, err, ErrStore)
}

func TestService_HistoryCapAgainstMemoryStore(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store, 0)

	tick := now
	svc.nowFn = func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}

	for range 15 {
		_, err := svc.Aggregate(context.Background(), v1.QueryRequest{AggregationKind: timeseries.DayInMonth})
		require.NoError(t, err)
	}

	entries, err := svc.History(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, DefaultHistoryLimit)
	require.Equal(t, now.Add(15*time.Second), entries[0].ExecutedAt)
	require.Equal(t, now.Add(6*time.Second), entries[9].ExecutedAt)
}
