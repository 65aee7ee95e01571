package ingestion

import (
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/voltline/renewable-ts/internal/core/timeseries"
)

// SourceExtension is the only accepted seed file extension.
const SourceExtension = ".csv"

// Source is a validated seed file.
type Source struct {
	// Identifier is the idempotence key stored with the batch.
	Identifier string
	Path       string
}

// OpenSource validates that path names an existing regular .csv file.
// The file is not held open; Records reopens it on every iteration.
func OpenSource(path string) (Source, error) {
	if strings.TrimSpace(path) == "" {
		return Source{}, fmt.Errorf("%w: empty path", ErrInvalidSource)
	}

	info, err := os.Stat(path)
	if err != nil {
		return Source{}, fmt.Errorf("%w: %w", ErrInvalidSource, err)
	}
	if !info.Mode().IsRegular() {
		return Source{}, fmt.Errorf("%w: %q is not a regular file", ErrInvalidSource, path)
	}
	if ext := filepath.Ext(path); !strings.EqualFold(ext, SourceExtension) {
		return Source{}, fmt.Errorf("%w: %q should be a %s file", ErrInvalidSource, path, SourceExtension)
	}

	cleaned := filepath.Clean(path)
	return Source{Identifier: cleaned, Path: cleaned}, nil
}

// Records decodes the file from the start each time it is ranged over.
// An open failure is yielded as a single non-decode error.
func (s Source) Records(d *Decoder) iter.Seq2[timeseries.Reading, error] {
	return func(yield func(timeseries.Reading, error) bool) {
		f, err := os.Open(s.Path)
		if err != nil {
			yield(timeseries.Reading{}, fmt.Errorf("open source: %w", err))
			return
		}
		defer f.Close()

		for reading, err := range d.Records(f) {
			if !yield(reading, err) {
				return
			}
		}
	}
}
