package schedfa

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Series stores a chronological sequence of observed values (closing prices
// or exchange rates), one per calendar day, sorted ascending by date.
// It is immutable once built and owned by the PriceDB that built it.
type Series struct {
	days   []Date
	values []decimal.Decimal
}

// Observation is a single dated value from a Series.
type Observation struct {
	Day   Date
	Value decimal.Decimal
}

// compareDate orders dates for binary searches over Series.days.
func compareDate(d, t Date) int {
	if d.After(t) {
		return 1
	}
	if d.Before(t) {
		return -1
	}
	return 0
}

// cleanNumber strips the decorations found in exported price files (currency
// symbols, thousands separators, surrounding quotes) before decimal parsing.
func cleanNumber(s string) string {
	s = strings.TrimSpace(s)
	for _, cut := range []string{`"`, "$", "₹", "€", "£", ","} {
		s = strings.ReplaceAll(s, cut, "")
	}
	return s
}

// BuildSeries parses raw (dateText, valueText) rows into a sorted Series.
//
// Rows may carry currency symbols and thousands separators in the value, and
// any of the date formats accepted by [ParseDate]. When the source repeats a
// date, the row read last wins. A row that parses to neither a date nor a
// number fails the whole build with [ErrMalformedData].
func BuildSeries(rows [][2]string) (*Series, error) {
	s := &Series{}
	for _, row := range rows {
		day, err := ParseDate(row[0])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedData, err)
		}
		value, err := decimal.NewFromString(cleanNumber(row[1]))
		if err != nil {
			return nil, fmt.Errorf("%w: invalid value %q on %s: %v", ErrMalformedData, row[1], day, err)
		}
		s.append(day, value)
	}
	return s, nil
}

// append inserts an observation keeping the series sorted; an observation on
// an existing date overwrites the previous one.
func (s *Series) append(on Date, v decimal.Decimal) {
	i, found := slices.BinarySearchFunc(s.days, on, compareDate)
	if found {
		s.values[i] = v
		return
	}
	s.days = slices.Insert(s.days, i, on)
	s.values = slices.Insert(s.values, i, v)
}

// Len returns the number of observations in the series.
func (s *Series) Len() int { return len(s.days) }

// First returns the earliest observation, ok reports whether one exists.
func (s *Series) First() (Observation, bool) {
	if len(s.days) == 0 {
		return Observation{}, false
	}
	return Observation{s.days[0], s.values[0]}, true
}

// Last returns the latest observation, ok reports whether one exists.
func (s *Series) Last() (Observation, bool) {
	last := len(s.days) - 1
	if last < 0 {
		return Observation{}, false
	}
	return Observation{s.days[last], s.values[last]}, true
}

// Get returns the value observed exactly on 'day'.
func (s *Series) Get(day Date) (decimal.Decimal, bool) {
	i, found := slices.BinarySearchFunc(s.days, day, compareDate)
	if !found {
		return decimal.Decimal{}, false
	}
	return s.values[i], true
}

// AtOrAfter returns the first observation dated on or after 'day', or
// ok=false when the series is exhausted before that date.
func (s *Series) AtOrAfter(day Date) (Observation, bool) {
	i, _ := slices.BinarySearchFunc(s.days, day, compareDate)
	if i >= len(s.days) {
		return Observation{}, false
	}
	return Observation{s.days[i], s.values[i]}, true
}

// AtOrBefore returns the latest observation dated on or before 'day', or
// ok=false when 'day' precedes the earliest observation.
func (s *Series) AtOrBefore(day Date) (Observation, bool) {
	i, found := slices.BinarySearchFunc(s.days, day, compareDate)
	if found {
		return Observation{s.days[i], s.values[i]}, true
	}
	// i is the insertion point, the observation before it is the last one
	// on or before 'day'.
	if i == 0 {
		return Observation{}, false
	}
	return Observation{s.days[i-1], s.values[i-1]}, true
}

// All returns every observation in chronological order.
func (s *Series) All() iter.Seq[Observation] {
	return func(yield func(Observation) bool) {
		for i, on := range s.days {
			if !yield(Observation{on, s.values[i]}) {
				return
			}
		}
	}
}

// Between returns the observations with from <= day <= to, in chronological
// order. A reversed or out-of-data range yields nothing.
func (s *Series) Between(from, to Date) iter.Seq[Observation] {
	return func(yield func(Observation) bool) {
		start, _ := slices.BinarySearchFunc(s.days, from, compareDate)
		for i := start; i < len(s.days) && !s.days[i].After(to); i++ {
			if !yield(Observation{s.days[i], s.values[i]}) {
				return
			}
		}
	}
}
