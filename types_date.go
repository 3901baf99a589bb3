package schedfa

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"
)

const readDateFormat = "2006-1-2" // Permissive read date format (allows single-digit month/day).

// DateFormat is the format used to represent dates as strings in ISO-8601 format.
const DateFormat = "2006-01-02" // write date format

// Date represents a date with day-level granularity.
//
// Historical observations and acquisition dates never carry a time of day;
// the canonical instant of a Date is midnight UTC.
type Date struct {
	y int        // year
	m time.Month // month
	d int        // day
}

// NewDate returns a normalized Date for the given year, month, and day.
func NewDate(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Year returns current year.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.time().Month() }

// Day returns current day of the month.
func (d Date) Day() int { return d.d }

// String format the date in date RFC3339
func (d Date) String() string { return d.time().Format(DateFormat) }

// IsZero returns true if the date is the zero value.
func (d Date) IsZero() bool { return d.y == 0 && d.m == 0 && d.d == 0 }

// Weekday returns the day of the week for the date.
func (d Date) Weekday() time.Weekday { return d.time().Weekday() }

// time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Format returns a textual representation of the date value formatted according to the layout defined by the argument.
//
//	See the documentation for the [time.Format].
func (d Date) Format(format string) string { return d.time().Format(format) }

// Before reports whether the day d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// Today returns the current date.
func Today() Date { return NewDate(time.Now().Date()) }

// Add returns a new Date with the given number of days added.
func (d Date) Add(i int) Date { return NewDate(d.y, d.m, d.d+i) }

// Sub returns the number of whole days from x to d.
func (d Date) Sub(x Date) int { return int(d.time().Sub(x.time()).Hours() / 24) }

// LastBusinessDay returns the preceding Friday when d falls on a weekend,
// and d itself otherwise. It is used to phrase diagnostics about data gaps,
// never to alter a looked-up value.
func (d Date) LastBusinessDay() Date {
	switch d.Weekday() {
	case time.Saturday:
		return d.Add(-1)
	case time.Sunday:
		return d.Add(-2)
	default:
		return d
	}
}

var (
	namedMonthDateRE = regexp.MustCompile(`^(\d{1,2})-([A-Za-z]{3})-(\d{4})$`)
	usSlashDateRE    = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`)
	dayFirstDateRE   = regexp.MustCompile(`^\d{1,2}-\d{1,2}-\d{4}$`)
)

// ParseDate parses a Date from a string.
//
// Besides the lenient ISO form ("2025-7-1"), it accepts the formats found in
// the historical data sources: "30-JUN-2020" (benefit history exports),
// "06/30/2020" (price history files, month first) and "30-06-2020"
// (exchange rate files, day first).
func ParseDate(str string) (Date, error) {
	str = strings.TrimSpace(str)

	// Named month format (e.g. 30-JUN-2020). Month abbreviations come in
	// upper case from spreadsheet exports, normalize before time.Parse.
	if m := namedMonthDateRE.FindStringSubmatch(str); m != nil {
		mon := strings.ToUpper(m[2][:1]) + strings.ToLower(m[2][1:])
		on, err := time.Parse("2-Jan-2006", m[1]+"-"+mon+"-"+m[3])
		if err != nil {
			return Date{}, fmt.Errorf("invalid date %q: %w", str, err)
		}
		return NewDate(on.Date()), nil
	}

	// US slash format, month first (e.g. 06/30/2020).
	if usSlashDateRE.MatchString(str) {
		on, err := time.Parse("1/2/2006", str)
		if err != nil {
			return Date{}, fmt.Errorf("invalid date %q: %w", str, err)
		}
		return NewDate(on.Date()), nil
	}

	// Dashed day-first format (e.g. 30-06-2020).
	if dayFirstDateRE.MatchString(str) {
		on, err := time.Parse("2-1-2006", str)
		if err != nil {
			return Date{}, fmt.Errorf("invalid date %q: %w", str, err)
		}
		return NewDate(on.Date()), nil
	}

	// Standard ISO format (fallback).
	on, err := time.Parse(readDateFormat, str)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", str, readDateFormat, err)
	}
	return NewDate(on.Date()), nil
}

// MustParse is like ParseDate but panics on error.
func MustParse(str string) Date {
	d, err := ParseDate(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// UnmarshalJSON implements the json specific way to unmarshall a date from a json string.
func (j *Date) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	// Keep this parsing strict, as it's for data files.
	// But not too strict, also supports 2025-7-1
	on, err := time.Parse(readDateFormat, str)
	if err != nil {
		return fmt.Errorf("invalid date %q in data file, want format %q: %w", str, DateFormat, err)
	}
	*j = NewDate(on.Date())
	return nil
}

func (j Date) MarshalJSON() ([]byte, error) {
	str := j.String()
	return json.Marshal(&str)
}

// check that a Date pointer is a valid json marshall/unmarshaller type.
var _ json.Marshaler = (*Date)(nil)
var _ json.Unmarshaler = (*Date)(nil)

// Range represents an inclusive range of dates.
type Range struct{ From, To Date }

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool { return !date.Before(r.From) && !date.After(r.To) }

func (r Range) String() string { return r.From.String() + ".." + r.To.String() }
