package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/voltline/renewable-ts/internal/core/storage"
	"github.com/voltline/renewable-ts/internal/core/timeseries"
	"golang.org/x/sync/singleflight"
)

const (
	defaultFlushSize = 5000
	maxSkipReasons   = 5
)

// SeedReport summarizes one seeding run.
type SeedReport struct {
	Source          string
	BatchID         int64
	AlreadyIngested bool
	Decoded         int      // records decoded and sent to the store
	Skipped         int      // records dropped by the decoder
	Inserted        int64    // rows written; lower than Decoded when timestamps repeat
	SkipReasons     []string // first few decode errors, for logs
}

// Seeder loads seed files into the store at most once per source.
type Seeder struct {
	store     storage.SeedStore
	decoder   *Decoder
	flushSize int
	nowFn     func() time.Time

	// inflight collapses concurrent seeds of one source in this process. Across
	// processes the unique source constraint decides which run inserts.
	inflight singleflight.Group
}

// NewSeeder creates a Seeder. flushSize is the number of decoded readings
// buffered before each bulk insert; <= 0 selects the default.
func NewSeeder(store storage.SeedStore, flushSize int) *Seeder {
	if store == nil {
		panic("ingestion: store must not be nil")
	}
	if flushSize <= 0 {
		flushSize = defaultFlushSize
	}
	return &Seeder{
		store:     store,
		decoder:   NewDecoder(),
		flushSize: flushSize,
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// SeedFile validates path and seeds it.
func (s *Seeder) SeedFile(ctx context.Context, path string) (SeedReport, error) {
	src, err := OpenSource(path)
	if err != nil {
		slog.Error("[Seeder] Invalid seed source", "path", path, "error", err)
		return SeedReport{Source: path}, err
	}
	return s.Seed(ctx, src)
}

// Seed ingests src in one transaction. Seeding a source that was already
// ingested succeeds with AlreadyIngested set and writes nothing.
//
// Concurrent calls for one source share a single run. Only the caller that
// started it gets the full report; the others see the AlreadyIngested no-op.
// The shared run is detached from caller cancellation, so a cancelled ctx only
// abandons the wait of its own caller.
func (s *Seeder) Seed(ctx context.Context, src Source) (SeedReport, error) {
	var led bool
	ch := s.inflight.DoChan(src.Identifier, func() (interface{}, error) {
		led = true
		return s.seed(context.WithoutCancel(ctx), src)
	})

	select {
	case <-ctx.Done():
		return SeedReport{Source: src.Identifier}, fmt.Errorf("%w: %w", ErrStore, ctx.Err())
	case res := <-ch:
		if led {
			return res.Val.(SeedReport), res.Err
		}
		slog.Debug("[Seeder] Joined in-flight seed", "source", src.Identifier)
		if res.Err != nil {
			return SeedReport{Source: src.Identifier}, res.Err
		}
		return SeedReport{Source: src.Identifier, AlreadyIngested: true}, nil
	}
}

func (s *Seeder) seed(ctx context.Context, src Source) (SeedReport, error) {
	report := SeedReport{Source: src.Identifier}
	log := slog.With("run_id", uuid.NewString(), "source", src.Identifier)

	log.Info("[Seeder] Seeding database")

	tx, err := s.store.BeginSeed(ctx)
	if err != nil {
		return report, fmt.Errorf("%w: %w", ErrStore, err)
	}
	defer func() {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Warn("[Seeder] Rollback failed", "error", rbErr)
		}
	}()

	batchID, created, err := tx.InsertBatch(ctx, src.Identifier, s.nowFn())
	if err != nil {
		return report, fmt.Errorf("%w: %w", ErrStore, err)
	}
	if !created {
		if err := tx.Commit(); err != nil {
			return report, fmt.Errorf("%w: %w", ErrStore, err)
		}
		report.AlreadyIngested = true
		log.Info("[Seeder] Data has already been ingested")
		return report, nil
	}
	report.BatchID = batchID

	if err := s.load(ctx, tx, src, &report, log); err != nil {
		return report, err
	}

	if err := tx.Commit(); err != nil {
		return report, fmt.Errorf("%w: %w", ErrStore, err)
	}

	if report.Skipped > 0 {
		log.Warn("[Seeder] Skipped malformed records",
			"skipped", report.Skipped,
			"examples", report.SkipReasons)
	}
	log.Info("[Seeder] Seeded database",
		"ingestion_id", batchID,
		"decoded", report.Decoded,
		"inserted", report.Inserted,
		"skipped", report.Skipped)
	return report, nil
}

// load streams decoded readings into tx in flushSize chunks, counting the
// records the decoder rejects.
func (s *Seeder) load(ctx context.Context, tx storage.SeedTx, src Source, report *SeedReport, log *slog.Logger) error {
	buf := make([]timeseries.Reading, 0, s.flushSize)

	flush := func() error {
		if len(buf) == 0 {
			return nil
		}
		n, err := tx.InsertPoints(ctx, report.BatchID, buf)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrStore, err)
		}
		report.Inserted += n
		buf = buf[:0]
		return nil
	}

	for reading, err := range src.Records(s.decoder) {
		if err != nil {
			if !IsDecodeError(err) {
				return fmt.Errorf("%w: %w", ErrInvalidSource, err)
			}
			report.Skipped++
			if len(report.SkipReasons) < maxSkipReasons {
				report.SkipReasons = append(report.SkipReasons, err.Error())
			}
			log.Debug("[Seeder] Skipping record", "error", err)
			continue
		}

		buf = append(buf, reading)
		report.Decoded++
		if len(buf) >= s.flushSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}

	return flush()
}
