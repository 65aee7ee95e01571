package timeseries

import (
	"fmt"
	"time"
)

// AggregationKind selects the truncation granularity of an aggregation query.
// It is a closed set; the zero value is not a valid kind.
type AggregationKind int

const (
	Hourly AggregationKind = iota + 1
	DayInMonth
	Monthly
	Yearly
)

// kindSpec is the single mapping between a kind, its wire/storage name and the
// date_trunc unit used to bucket it.
type kindSpec struct {
	name     string // JSON and aggregation_kind enum label
	truncArg string // date_trunc field
	truncate func(time.Time) time.Time
}

var kinds = map[AggregationKind]kindSpec{
	Hourly: {
		name:     "Hourly",
		truncArg: "hour",
		truncate: func(t time.Time) time.Time {
			return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, time.UTC)
		},
	},
	// DayInMonth buckets by calendar day, not by day-of-month number.
	DayInMonth: {
		name:     "DayInMonth",
		truncArg: "day",
		truncate: func(t time.Time) time.Time {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		},
	},
	Monthly: {
		name:     "Monthly",
		truncArg: "month",
		truncate: func(t time.Time) time.Time {
			return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
		},
	},
	Yearly: {
		name:     "Yearly",
		truncArg: "year",
		truncate: func(t time.Time) time.Time {
			return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		},
	},
}

var kindsByName = func() map[string]AggregationKind {
	m := make(map[string]AggregationKind, len(kinds))
	for k, spec := range kinds {
		m[spec.name] = k
	}
	return m
}()

// Kinds returns every supported kind in ascending granularity.
func Kinds() []AggregationKind {
	return []AggregationKind{Hourly, DayInMonth, Monthly, Yearly}
}

// ParseAggregationKind resolves a wire/storage name such as "Monthly".
func ParseAggregationKind(s string) (AggregationKind, error) {
	k, ok := kindsByName[s]
	if !ok {
		return 0, fmt.Errorf("unknown aggregation kind %q", s)
	}
	return k, nil
}

func (k AggregationKind) Valid() bool {
	_, ok := kinds[k]
	return ok
}

func (k AggregationKind) String() string {
	if spec, ok := kinds[k]; ok {
		return spec.name
	}
	return fmt.Sprintf("AggregationKind(%d)", int(k))
}

// TruncUnit returns the date_trunc field name for the kind ("hour", "day", ...).
func (k AggregationKind) TruncUnit() string {
	return kinds[k].truncArg
}

// Truncate returns the UTC start of the bucket containing t.
// Mirrors date_trunc(TruncUnit(), t AT TIME ZONE 'UTC').
func (k AggregationKind) Truncate(t time.Time) time.Time {
	spec, ok := kinds[k]
	if !ok {
		return t
	}
	return spec.truncate(t.UTC())
}

func (k AggregationKind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("invalid aggregation kind %d", int(k))
	}
	return []byte(k.String()), nil
}

func (k *AggregationKind) UnmarshalText(text []byte) error {
	parsed, err := ParseAggregationKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Scan implements sql.Scanner for the aggregation_kind enum column.
func (k *AggregationKind) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		return k.UnmarshalText([]byte(v))
	case []byte:
		return k.UnmarshalText(v)
	default:
		return fmt.Errorf("cannot scan %T into AggregationKind", src)
	}
}
