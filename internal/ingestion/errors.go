package ingestion

import (
	"errors"
	"fmt"
)

// Per-record decode failures. They are counted and skipped by the Seeder,
// never returned from Seed.
var (
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyAmount      = errors.New("empty amount")
	ErrMalformedRecord  = errors.New("malformed record")
)

// Seed failures.
var (
	// ErrInvalidSource: the source is missing, not a regular file, has the wrong
	// extension, or cannot be read.
	ErrInvalidSource = errors.New("invalid seed source")
	// ErrStore wraps any transactional failure. Nothing from the run persists.
	ErrStore = errors.New("seed store failure")
)

// DecodeError describes one record that could not be decoded.
type DecodeError struct {
	Line  int    // 1-based line in the source
	Value string // offending field text
	Err   error  // one of the Err* sentinels above
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Value)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsDecodeError reports whether err is a per-record failure that may be skipped.
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}
