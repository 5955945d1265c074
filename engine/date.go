/*
Package engine implements the leave balance and accrual engine.

PURPOSE:
  This package contains the calculation core of the leave management system:
  turning raw facts (hire date, termination date, leave policy, leave records,
  short departures, manual adjustments, worked holidays) into a point-in-time
  leave balance.

COMPONENTS:
  - Entitlement resolver (entitlement.go): annual days/year at a given date
  - Accrual integrator (accrual.go): fractional monthly accrual over a span
  - Leave-span calculator (span.go): chargeable days for a date range
  - Balance aggregator (balance.go): composes the above into a BalanceReport

DESIGN PRINCIPLES:
  1. Purity: every function is a function of its arguments. The reference
     date is always an explicit parameter - live and historical queries
     share one code path.
  2. Immutability: records are read, never mutated.
  3. Precision: fractional accrual uses decimal.Decimal; rounding happens
     once, at the report boundary.
  4. Date-only arithmetic: all dates are canonicalized to UTC midnight so
     comparisons never drift across timezones.

KEY CONCEPTS IN THIS FILE (date.go):
  - Date: a calendar date with day granularity
  - WeekendSet: the company's weekend weekdays
  - HolidaySet: exact-date holiday lookup

SEE ALSO:
  - types.go: record types the engine reads
  - balance.go: the composition root
*/
package engine

import (
	"fmt"
	"time"
)

// =============================================================================
// DATE - Day-granularity calendar date
// =============================================================================

// Date is a calendar date without time-of-day or timezone. The zero value
// is the zero date and reports IsZero() == true.
type Date struct {
	t time.Time
}

const dateLayout = "2006-01-02"

// NewDate constructs a Date pinned to UTC midnight.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf canonicalizes an arbitrary time.Time to a Date, dropping the
// time-of-day and timezone.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// MustDate parses a YYYY-MM-DD string and panics on failure. For tests and
// static defaults only.
func MustDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Comparison
func (d Date) Before(other Date) bool        { return d.t.Before(other.t) }
func (d Date) After(other Date) bool         { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool         { return d.t.Equal(other.t) }
func (d Date) BeforeOrEqual(other Date) bool { return !d.t.After(other.t) }
func (d Date) AfterOrEqual(other Date) bool  { return !d.t.Before(other.t) }

// Arithmetic
func (d Date) AddDays(n int) Date   { return Date{t: d.t.AddDate(0, 0, n)} }
func (d Date) AddMonths(n int) Date { return Date{t: d.t.AddDate(0, n, 0)} }
func (d Date) AddYears(n int) Date  { return Date{t: d.t.AddDate(n, 0, 0)} }

// Properties
func (d Date) Year() int             { return d.t.Year() }
func (d Date) Month() time.Month     { return d.t.Month() }
func (d Date) Day() int              { return d.t.Day() }
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }
func (d Date) IsZero() bool          { return d.t.IsZero() }

// FirstOfMonth returns the first day of d's month.
func (d Date) FirstOfMonth() Date {
	return NewDate(d.Year(), d.Month(), 1)
}

// DaysInMonth returns the number of days in d's month.
func (d Date) DaysInMonth() int {
	return time.Date(d.Year(), d.Month()+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1).Day()
}

// SameMonth reports whether two dates fall in the same calendar month.
func (d Date) SameMonth(other Date) bool {
	return d.Year() == other.Year() && d.Month() == other.Month()
}

func (d Date) String() string {
	return d.t.Format(dateLayout)
}

// MarshalJSON encodes the date as "YYYY-MM-DD".
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes a "YYYY-MM-DD" string.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date literal %s", s)
	}
	parsed, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MinDate returns the earlier of two dates.
func MinDate(a, b Date) Date {
	if a.Before(b) {
		return a
	}
	return b
}

// =============================================================================
// WEEKEND SET - Which weekdays count as the weekend
// =============================================================================

// WeekendSet is the set of weekdays treated as the weekly rest days.
type WeekendSet map[time.Weekday]struct{}

// NewWeekendSet builds a WeekendSet from weekday indices (0 = Sunday .. 6 =
// Saturday, matching time.Weekday). Out-of-range indices are ignored.
func NewWeekendSet(days ...int) WeekendSet {
	ws := make(WeekendSet, len(days))
	for _, d := range days {
		if d >= 0 && d <= 6 {
			ws[time.Weekday(d)] = struct{}{}
		}
	}
	return ws
}

// DefaultWeekend is Friday/Saturday, the company default.
func DefaultWeekend() WeekendSet {
	return WeekendSet{time.Friday: {}, time.Saturday: {}}
}

// Contains reports whether the weekday is a weekend day.
func (ws WeekendSet) Contains(wd time.Weekday) bool {
	_, ok := ws[wd]
	return ok
}

// Indices returns the weekday indices in ascending order.
func (ws WeekendSet) Indices() []int {
	var out []int
	for d := time.Sunday; d <= time.Saturday; d++ {
		if ws.Contains(d) {
			out = append(out, int(d))
		}
	}
	return out
}

// =============================================================================
// HOLIDAY SET - Exact-date holiday lookup
// =============================================================================

// HolidaySet indexes holidays by calendar date. Holidays are exact dates,
// not recurring rules.
type HolidaySet map[string]struct{}

// NewHolidaySet builds a HolidaySet from holiday records.
func NewHolidaySet(holidays []Holiday) HolidaySet {
	hs := make(HolidaySet, len(holidays))
	for _, h := range holidays {
		hs[h.Date.String()] = struct{}{}
	}
	return hs
}

// Contains reports whether the date is a holiday.
func (hs HolidaySet) Contains(d Date) bool {
	_, ok := hs[d.String()]
	return ok
}
