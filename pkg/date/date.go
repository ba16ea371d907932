// Package date provides a calendar date type without a time-of-day component.
package date

import (
	"errors"
	"fmt"
	"time"
)

// Layout is the ISO 8601 calendar date layout used for parsing and encoding.
const Layout = "2006-01-02"

// ErrInvalid is returned when a string cannot be parsed as a calendar date.
var ErrInvalid = errors.New("invalid date")

// Date is a calendar date. The zero value is not a valid date and reports IsZero.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// Of returns the calendar date of t in t's location.
func Of(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// New returns a normalized date, so New(2024, 6, 31) is July 1st.
func New(year int, month time.Month, day int) Date {
	return Of(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// Parse parses a YYYY-MM-DD string.
func Parse(s string) (Date, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w %q: expected YYYY-MM-DD", ErrInvalid, s)
	}
	return Of(t), nil
}

// MustParse is like Parse but panics on error. Intended for tests and constants.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// In returns midnight of d in loc.
func (d Date) In(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// AddDays returns d shifted by n days.
func (d Date) AddDays(n int) Date {
	return Of(d.In(time.UTC).AddDate(0, 0, n))
}

// Before reports whether d is strictly earlier than o.
func (d Date) Before(o Date) bool {
	return d.compare(o) < 0
}

// After reports whether d is strictly later than o.
func (d Date) After(o Date) bool {
	return d.compare(o) > 0
}

// Equal reports whether d and o are the same calendar date.
func (d Date) Equal(o Date) bool {
	return d.compare(o) == 0
}

func (d Date) compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return d.Year - o.Year
	case d.Month != o.Month:
		return int(d.Month) - int(o.Month)
	default:
		return d.Day - o.Day
	}
}

// Format formats d with a time package layout. Time-of-day verbs render as midnight.
func (d Date) Format(layout string) string {
	return d.In(time.UTC).Format(layout)
}

// String returns d as YYYY-MM-DD.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(Layout)
}

// MarshalText implements encoding.TextMarshaler. JSON and YAML both encode a
// Date as a YYYY-MM-DD string.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
