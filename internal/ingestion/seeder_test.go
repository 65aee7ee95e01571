package ingestion

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/voltline/renewable-ts/internal/core/storage"
	"github.com/voltline/renewable-ts/internal/core/storage/memory"
	"github.com/voltline/renewable-ts/internal/core/timeseries"
	storagemocks "github.com/voltline/renewable-ts/internal/mocks/storage"
	"golang.org/x/sync/errgroup"
)

var seededAt = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// sevenAndOneEmpty has seven valid records and one with an empty amount.
const sevenAndOneEmpty = `Time (UTC),Quantity kWh
1 Jan 2025 00:00,"9,000.000"
1 Jan 2025 01:00,"8,000.000"
1 Jan 2025 02:00,7000
1 Jan 2025 03:00,
1 Jan 2025 04:00,6000
1 Jan 2025 05:00,5000
1 Jan 2025 06:00,4000
1 Jan 2025 07:00,3000
`

func seedSource(t *testing.T) Source {
	t.Helper()
	src, err := OpenSource(writeSource(t, "production.csv", sevenAndOneEmpty))
	require.NoError(t, err)
	return src
}

func TestSeeder_InsertsInChunksAndCountsSkips(t *testing.T) {
	src := seedSource(t)
	store := storagemocks.NewSeedStore(t)
	tx := storagemocks.NewSeedTx(t)

	store.EXPECT().BeginSeed(mock.Anything).Return(tx, nil).Once()
	tx.EXPECT().InsertBatch(mock.Anything, src.Identifier, seededAt).Return(int64(42), true, nil).Once()

	var chunks [][]timeseries.Reading
	tx.EXPECT().InsertPoints(mock.Anything, int64(42), mock.Anything).
		RunAndReturn(func(_ context.Context, _ int64, readings []timeseries.Reading) (int64, error) {
			chunks = append(chunks, append([]timeseries.Reading(nil), readings...))
			return int64(len(readings)), nil
		}).Times(3)
	tx.EXPECT().Commit().Return(nil).Once()
	tx.EXPECT().Rollback().Return(nil).Once()

	seeder := NewSeeder(store, 3)
	seeder.nowFn = func() time.Time { return seededAt }

	report, err := seeder.Seed(context.Background(), src)
	require.NoError(t, err)
	require.False(t, report.AlreadyIngested)
	require.Equal(t, int64(42), report.BatchID)
	require.Equal(t, 7, report.Decoded)
	require.Equal(t, 1, report.Skipped)
	require.Equal(t, int64(7), report.Inserted)
	require.Len(t, report.SkipReasons, 1)
	require.Contains(t, report.SkipReasons[0], "line 5")

	require.Len(t, chunks, 3)
	require.Len(t, chunks[0], 3)
	require.Len(t, chunks[1], 3)
	require.Len(t, chunks[2], 1)
	require.True(t, chunks[0][0].Amount.Equal(decimal.NewFromInt(9000)))
	require.Equal(t, time.Date(2025, 1, 1, 7, 0, 0, 0, time.UTC), chunks[2][0].Timestamp)
}

func TestSeeder_AlreadyIngestedWritesNothing(t *testing.T) {
	src := seedSource(t)
	store := storagemocks.NewSeedStore(t)
	tx := storagemocks.NewSeedTx(t)

	store.EXPECT().BeginSeed(mock.Anything).Return(tx, nil).Once()
	tx.EXPECT().InsertBatch(mock.Anything, src.Identifier, mock.Anything).Return(int64(0), false, nil).Once()
	tx.EXPECT().Commit().Return(nil).Once()
	tx.EXPECT().Rollback().Return(nil).Once()

	report, err := NewSeeder(store, 0).Seed(context.Background(), src)
	require.NoError(t, err)
	require.True(t, report.AlreadyIngested)
	require.Zero(t, report.Decoded)
	require.Zero(t, report.Inserted)
	tx.AssertNotCalled(t, "InsertPoints", mock.Anything, mock.Anything, mock.Anything)
}

func TestSeeder_StoreFailuresRollBack(t *testing.T) {
	boom := errors.New("connection reset")

	tests := []struct {
		name  string
		setup func(store *storagemocks.SeedStore, tx *storagemocks.SeedTx)
	}{
		{
			name: "begin",
			setup: func(store *storagemocks.SeedStore, _ *storagemocks.SeedTx) {
				store.EXPECT().BeginSeed(mock.Anything).Return(nil, boom).Once()
			},
		},
		{
			name: "insert batch",
			setup: func(store *storagemocks.SeedStore, tx *storagemocks.SeedTx) {
				store.EXPECT().BeginSeed(mock.Anything).Return(tx, nil).Once()
				tx.EXPECT().InsertBatch(mock.Anything, mock.Anything, mock.Anything).Return(int64(0), false, boom).Once()
				tx.EXPECT().Rollback().Return(nil).Once()
			},
		},
		{
			name: "insert points",
			setup: func(store *storagemocks.SeedStore, tx *storagemocks.SeedTx) {
				store.EXPECT().BeginSeed(mock.Anything).Return(tx, nil).Once()
				tx.EXPECT().InsertBatch(mock.Anything, mock.Anything, mock.Anything).Return(int64(1), true, nil).Once()
				tx.EXPECT().InsertPoints(mock.Anything, int64(1), mock.Anything).Return(int64(0), boom).Once()
				tx.EXPECT().Rollback().Return(nil).Once()
			},
		},
		{
			name: "commit",
			setup: func(store *storagemocks.SeedStore, tx *storagemocks.SeedTx) {
				store.EXPECT().BeginSeed(mock.Anything).Return(tx, nil).Once()
				tx.EXPECT().InsertBatch(mock.Anything, mock.Anything, mock.Anything).Return(int64(1), true, nil).Once()
				tx.EXPECT().InsertPoints(mock.Anything, int64(1), mock.Anything).Return(int64(7), nil).Once()
				tx.EXPECT().Commit().Return(boom).Once()
				tx.EXPECT().Rollback().Return(nil).Once()
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := storagemocks.NewSeedStore(t)
			tx := storagemocks.NewSeedTx(t)
			tc.setup(store, tx)

			_, err := NewSeeder(store, 100).Seed(context.Background(), seedSource(t))
			require.ErrorIs(t, err, ErrStore)
			require.ErrorIs(t, err, boom)
		})
	}
}

func TestSeeder_UnreadableSourceRollsBack(t *testing.T) {
	src := seedSource(t)
	require.NoError(t, os.Remove(src.Path))

	store := storagemocks.NewSeedStore(t)
	tx := storagemocks.NewSeedTx(t)
	store.EXPECT().BeginSeed(mock.Anything).Return(tx, nil).Once()
	tx.EXPECT().InsertBatch(mock.Anything, src.Identifier, mock.Anything).Return(int64(1), true, nil).Once()
	tx.EXPECT().Rollback().Return(nil).Once()

	_, err := NewSeeder(store, 100).Seed(context.Background(), src)
	require.ErrorIs(t, err, ErrInvalidSource)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestSeeder_SeedFileRejectsInvalidSource(t *testing.T) {
	store := storagemocks.NewSeedStore(t)

	_, err := NewSeeder(store, 100).SeedFile(context.Background(), writeSource(t, "data.json", "{}"))
	require.ErrorIs(t, err, ErrInvalidSource)
}

func TestNewSeeder_PanicsOnNilStore(t *testing.T) {
	require.Panics(t, func() { NewSeeder(nil, 0) })
}

func TestSeeder_IdempotentAgainstMemoryStore(t *testing.T) {
	store := memory.NewStore()
	seeder := NewSeeder(store, 2)
	path := writeSource(t, "production.csv", sevenAndOneEmpty)

	first, err := seeder.SeedFile(context.Background(), path)
	require.NoError(t, err)
	require.False(t, first.AlreadyIngested)
	require.Equal(t, int64(7), first.Inserted)

	second, err := seeder.SeedFile(context.Background(), path)
	require.NoError(t, err)
	require.True(t, second.AlreadyIngested)

	require.Len(t, store.Batches(), 1)
	require.Len(t, store.Points(), 7)
}

func TestSeeder_ConcurrentSeedsInsertOnce(t *testing.T) {
	store := memory.NewStore()
	path := writeSource(t, "production.csv", sevenAndOneEmpty)

	// Two seeders share the store but not their in-flight groups, so the
	// store has to arbitrate between them.
	seeders := []*Seeder{NewSeeder(store, 3), NewSeeder(store, 3)}

	var g errgroup.Group
	for i := range 8 {
		seeder := seeders[i%len(seeders)]
		g.Go(func() error {
			_, err := seeder.SeedFile(context.Background(), path)
			return err
		})
	}
	require.NoError(t, g.Wait())

	require.Len(t, store.Batches(), 1)
	points := store.Points()
	require.Len(t, points, 7)

	sum := decimal.Zero
	for _, p := range points {
		sum = sum.Add(p.Amount)
	}
	require.True(t, sum.Equal(decimal.NewFromInt(42000)), "got %s", sum)
}

func TestSeeder_DuplicateTimestampsCollapse(t *testing.T) {
	store := memory.NewStore()
	body := "h,h\n1 Jan 2025 00:00,1\n1 Jan 2025 00:00,2\n1 Jan 2025 01:00,3\n"
	path := writeSource(t, "dups.csv", body)

	report, err := NewSeeder(store, 10).SeedFile(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, 3, report.Decoded)
	require.Equal(t, int64(2), report.Inserted)
	require.Zero(t, report.Skipped)
	require.Len(t, store.Points(), 2)
}

// gatedStore holds every BeginSeed until release is closed and reports the
// first one on entered.
type gatedStore struct {
	*memory.Store
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func newGatedStore() *gatedStore {
	return &gatedStore{
		Store:   memory.NewStore(),
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (g *gatedStore) BeginSeed(ctx context.Context) (storage.SeedTx, error) {
	g.once.Do(func() { close(g.entered) })
	<-g.release
	return g.Store.BeginSeed(ctx)
}

func TestSeeder_JoinedCallerSeesNoOp(t *testing.T) {
	store := newGatedStore()
	seeder := NewSeeder(store, 3)
	path := writeSource(t, "production.csv", sevenAndOneEmpty)

	reports := make([]SeedReport, 2)
	var g errgroup.Group
	g.Go(func() error {
		var err error
		reports[0], err = seeder.SeedFile(context.Background(), path)
		return err
	})
	<-store.entered
	g.Go(func() error {
		var err error
		reports[1], err = seeder.SeedFile(context.Background(), path)
		return err
	})
	time.Sleep(20 * time.Millisecond)
	close(store.release)
	require.NoError(t, g.Wait())

	var loaded, noop int
	for _, r := range reports {
		if r.AlreadyIngested {
			require.Zero(t, r.Inserted)
			noop++
			continue
		}
		require.Equal(t, int64(7), r.Inserted)
		loaded++
	}
	require.Equal(t, 1, loaded)
	require.Equal(t, 1, noop)
	require.Len(t, store.Points(), 7)
}

func TestSeeder_CancelledCallerDoesNotFailOthers(t *testing.T) {
	store := newGatedStore()
	seeder := NewSeeder(store, 3)
	path := writeSource(t, "production.csv", sevenAndOneEmpty)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	leaderErr := make(chan error, 1)
	go func() {
		_, err := seeder.SeedFile(ctx, path)
		leaderErr <- err
	}()
	<-store.entered

	type result struct {
		report SeedReport
		err    error
	}
	follower := make(chan result, 1)
	go func() {
		r, err := seeder.SeedFile(context.Background(), path)
		follower <- result{r, err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancel()
	err := <-leaderErr
	require.ErrorIs(t, err, context.Canceled)

	close(store.release)
	res := <-follower
	require.NoError(t, res.err)
	require.True(t, res.report.AlreadyIngested)

	require.Len(t, store.Batches(), 1)
	require.Len(t, store.Points(), 7)
}
