package ingestion

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/voltline/renewable-ts/internal/core/timeseries"
)

// TimestampLayout matches source timestamps such as "1 Jan 2025 00:00".
// Values carry no zone and are read as UTC.
const TimestampLayout = "2 Jan 2006 15:04"

// ParseTimestamp parses a source timestamp as a UTC instant.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(TimestampLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrInvalidTimestamp
	}
	return t.UTC(), nil
}

// ParseAmount parses a production amount such as `"9,000.000"`.
// Surrounding quotes and thousands separators are removed first.
func ParseAmount(s string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(strings.Trim(strings.TrimSpace(s), `"`), ",", "")
	if cleaned == "" {
		return decimal.Zero, ErrEmptyAmount
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// DecodeRecord turns the two text fields of one record into a Reading.
// The returned error, if any, is one of ErrInvalidTimestamp, ErrEmptyAmount
// or ErrInvalidAmount.
func DecodeRecord(timestamp, amount string) (timeseries.Reading, error) {
	ts, err := ParseTimestamp(timestamp)
	if err != nil {
		return timeseries.Reading{}, err
	}
	value, err := ParseAmount(amount)
	if err != nil {
		return timeseries.Reading{}, err
	}
	return timeseries.Reading{Timestamp: ts, Amount: value}, nil
}

// Decoder reads delimited production files: one header line, then
// <timestamp>,<amount> records.
type Decoder struct {
	comma rune
}

func NewDecoder() *Decoder {
	return &Decoder{comma: ','}
}

// Records lazily decodes r one record at a time. Each step yields either a
// Reading or an error: a *DecodeError for a bad record (iteration continues),
// or a read error from r (iteration stops). Nothing is buffered beyond the
// current record.
func (d *Decoder) Records(r io.Reader) iter.Seq2[timeseries.Reading, error] {
	return func(yield func(timeseries.Reading, error) bool) {
		reader := csv.NewReader(r)
		reader.Comma = d.comma
		reader.FieldsPerRecord = -1
		reader.TrimLeadingSpace = true
		reader.LazyQuotes = true
		reader.ReuseRecord = true

		// Header
		if _, err := reader.Read(); err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(timeseries.Reading{}, recordError(err)) {
				return
			}
			if !isParseError(err) {
				return
			}
		}

		for {
			record, err := reader.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				if !yield(timeseries.Reading{}, recordError(err)) || !isParseError(err) {
					return
				}
				continue
			}

			line, _ := reader.FieldPos(0)
			if len(record) < 2 {
				if !yield(timeseries.Reading{}, &DecodeError{Line: line, Value: strings.Join(record, string(d.comma)), Err: ErrMalformedRecord}) {
					return
				}
				continue
			}

			reading, err := DecodeRecord(record[0], record[1])
			if err != nil {
				value := record[0]
				if !errors.Is(err, ErrInvalidTimestamp) {
					value = record[1]
				}
				err = &DecodeError{Line: line, Value: strings.TrimSpace(value), Err: err}
			}
			if !yield(reading, err) {
				return
			}
		}
	}
}

func isParseError(err error) bool {
	var pe *csv.ParseError
	return errors.As(err, &pe)
}

// recordError classifies a csv.Reader failure. Parse errors are per-record and
// skippable; anything else is a read failure of the underlying source.
func recordError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &DecodeError{Line: pe.Line, Value: pe.Err.Error(), Err: ErrMalformedRecord}
	}
	return fmt.Errorf("read source: %w", err)
}
