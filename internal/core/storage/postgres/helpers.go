package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/voltline/renewable-ts/internal/core/timeseries"
)

// pointArrays splits readings into the parallel text arrays consumed by
// queryInsertPoints. Amounts are sent as their exact decimal text.
func pointArrays(readings []timeseries.Reading) (interface{}, interface{}) {
	timestamps := make([]string, len(readings))
	amounts := make([]string, len(readings))
	for i, r := range readings {
		timestamps[i] = r.Timestamp.UTC().Format(time.RFC3339Nano)
		amounts[i] = r.Amount.String()
	}
	return pq.Array(timestamps), pq.Array(amounts)
}

// nullableTime maps an optional bound to a driver value; nil binds SQL NULL.
func nullableTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC()
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time.UTC()
	return &t
}

type scanner interface {
	Scan(dest ...interface{}) error
}

// scanHistoryRow scans one query_history row.
// Compatible with both sql.Row (single) and sql.Rows (multiple).
func scanHistoryRow(row scanner) (timeseries.HistoryEntry, error) {
	var (
		entry    timeseries.HistoryEntry
		fromDate sql.NullTime
		toDate   sql.NullTime
	)

	if err := row.Scan(
		&entry.ID,
		&entry.ExecutedAt,
		&fromDate,
		&toDate,
		&entry.Kind,
	); err != nil {
		return timeseries.HistoryEntry{}, fmt.Errorf("failed to scan history row: %w", err)
	}

	entry.ExecutedAt = entry.ExecutedAt.UTC()
	entry.From = timePtr(fromDate)
	entry.To = timePtr(toDate)
	return entry, nil
}

// pgCode extracts the SQLSTATE from a driver error for log attributes.
func pgCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}
