// Package date provides calendar dates without time-of-day and series of values indexed by them.
//
// Market data providers return closes stamped with instants in various timezones. Everything in
// this module compares them as calendar days, so a close is always looked up by the day it
// happened on the exchange, never by the instant it was published.
package date

import (
	"encoding/json"
	"fmt"
	"time"
)

// Layout is the ISO 8601 layout of a Date string.
const Layout = time.DateOnly

// lenientLayout also accepts single digit months and days.
const lenientLayout = "2006-1-2"

// Date is a calendar day. The zero value is not a valid day, see IsZero.
type Date struct {
	y int
	m time.Month
	d int
}

// midnight is the instant the day starts in UTC. Two equal dates have equal midnights.
func (d Date) midnight() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// New returns the date of year, month and day, normalized like time.Date: February 30th is
// March 1st or 2nd.
func New(year int, month time.Month, day int) Date {
	y, m, dd := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Date()
	return Date{y, m, dd}
}

// FromTime returns the calendar day of the instant t as seen in loc.
//
// A nil loc keeps t's own location.
func FromTime(t time.Time, loc *time.Location) Date {
	if loc != nil {
		t = t.In(loc)
	}
	return New(t.Date())
}

// Today returns the current date in the local timezone.
func Today() Date { return FromTime(time.Now(), nil) }

func (d Date) Year() int         { return d.y }
func (d Date) Month() time.Month { return d.m }
func (d Date) Day() int          { return d.d }

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool { return d == Date{} }

// Compare returns -1, 0 or +1 when d is before, equal to or after x.
func (d Date) Compare(x Date) int { return d.midnight().Compare(x.midnight()) }

func (d Date) Before(x Date) bool { return d.Compare(x) < 0 }
func (d Date) After(x Date) bool  { return d.Compare(x) > 0 }

// Add returns the date n days after d, before it when n is negative.
func (d Date) Add(n int) Date { return New(d.y, d.m, d.d+n) }

// Sub returns the number of days from x to d, negative when d is before x.
func (d Date) Sub(x Date) int {
	return int(d.midnight().Sub(x.midnight()).Hours() / 24)
}

func (d Date) String() string { return d.midnight().Format(Layout) }

// Parse reads a date like "2024-01-02" or "2024-1-2". An RFC 3339 timestamp is accepted too,
// keeping the calendar day in its own offset.
func Parse(s string) (Date, error) {
	t, err := time.Parse(lenientLayout, s)
	if err != nil {
		ts, tsErr := time.Parse(time.RFC3339, s)
		if tsErr != nil {
			return Date{}, fmt.Errorf("invalid date %q, want format %s: %w", s, Layout, err)
		}
		t = ts
	}
	return New(t.Date()), nil
}

// MustParse is like Parse but panics on error. It is meant for constants in tests.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) MarshalJSON() ([]byte, error) { return json.Marshal(d.String()) }

// UnmarshalJSON reads a date string. Both null and "" are the zero date.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
