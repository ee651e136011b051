// Package calendar converts and compares dates at day and week granularity
// in a local (Jalali or Hijri) calendar. Every instant is a Gregorian
// time.Time internally; all functions are pure and return new values.
package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDate is returned for malformed or unrepresentable dates
var ErrInvalidDate = errors.New("invalid date")

// Unit is a period granularity
type Unit int

const (
	Day Unit = iota
	Week
)

func (u Unit) String() string {
	switch u {
	case Day:
		return "day"
	case Week:
		return "week"
	}
	return fmt.Sprintf("Unit(%d)", int(u))
}

// System selects the calendar used for labels and local date input
type System int

const (
	Jalali System = iota
	Hijri
	Gregorian
)

func (s System) String() string {
	switch s {
	case Jalali:
		return "jalali"
	case Hijri:
		return "hijri"
	case Gregorian:
		return "gregorian"
	}
	return fmt.Sprintf("System(%d)", int(s))
}

// ParseSystem parses a calendar system name
func ParseSystem(name string) (System, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "jalali", "persian", "shamsi":
		return Jalali, nil
	case "hijri", "islamic":
		return Hijri, nil
	case "gregorian":
		return Gregorian, nil
	}
	return Jalali, fmt.Errorf("unknown calendar system %q", name)
}

// ParseWeekday parses an English weekday name such as "saturday" or "sat"
func ParseWeekday(name string) (time.Weekday, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for d := time.Sunday; d <= time.Saturday; d++ {
		full := strings.ToLower(d.String())
		if n == full || n == full[:3] {
			return d, nil
		}
	}
	return time.Saturday, fmt.Errorf("unknown weekday %q", name)
}

// Calendar holds the locale conventions used by every period operation.
// The zero value is usable: it behaves like a Jalali calendar whose weeks
// start on Sunday in the local time zone, so prefer Default().
type Calendar struct {
	System        System
	WeekStart     time.Weekday
	Weekend       []time.Weekday
	Location      *time.Location
	PersianDigits bool
}

// Default returns the Persian locale conventions: Jalali labels, weeks
// starting on Saturday, Thursday and Friday as the weekend.
func Default() Calendar {
	return Calendar{
		System:    Jalali,
		WeekStart: time.Saturday,
		Weekend:   []time.Weekday{time.Thursday, time.Friday},
		Location:  time.Local,
	}
}

func (c Calendar) loc() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}

// Check returns ErrInvalidDate for the zero instant
func (c Calendar) Check(t time.Time) error {
	if t.IsZero() {
		return fmt.Errorf("%w: zero time", ErrInvalidDate)
	}
	return nil
}

// StartOfPeriod returns the first instant of the day or week containing t
func (c Calendar) StartOfPeriod(t time.Time, u Unit) time.Time {
	loc := c.loc()
	local := t.In(loc)
	y, m, d := local.Date()
	if u == Week {
		d -= (int(local.Weekday()) - int(c.WeekStart) + 7) % 7
	}
	// time.Date normalises both an out-of-range day and a midnight skipped
	// by a clock change
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// EndOfPeriod returns the last instant of the day or week containing t
func (c Calendar) EndOfPeriod(t time.Time, u Unit) time.Time {
	y, m, d := c.StartOfPeriod(t, u).Date()
	days := 1
	if u == Week {
		days = 7
	}
	return time.Date(y, m, d+days, 0, 0, 0, 0, c.loc()).Add(-time.Nanosecond)
}

// IsSamePeriod reports whether a and b fall in the same day or week
func (c Calendar) IsSamePeriod(a, b time.Time, u Unit) bool {
	return c.StartOfPeriod(a, u).Equal(c.StartOfPeriod(b, u))
}

// DiffInDays returns a - b in whole calendar days, ignoring time of day.
// Daylight saving shifts never change the result.
func (c Calendar) DiffInDays(a, b time.Time) int {
	return int((c.dayNumber(a) - c.dayNumber(b)) / 86400)
}

// DiffInPeriods returns a - b in whole periods
func (c Calendar) DiffInPeriods(a, b time.Time, u Unit) int {
	if u == Week {
		return c.DiffInDays(c.StartOfPeriod(a, Week), c.StartOfPeriod(b, Week)) / 7
	}
	return c.DiffInDays(a, b)
}

// AddPeriods returns t shifted by n days or weeks; n may be negative
func (c Calendar) AddPeriods(t time.Time, n int, u Unit) time.Time {
	days := n
	if u == Week {
		days = 7 * n
	}
	return t.In(c.loc()).AddDate(0, 0, days)
}

// IsWeekend reports whether t falls on one of the configured weekend days
func (c Calendar) IsWeekend(t time.Time) bool {
	wd := t.In(c.loc()).Weekday()
	for _, d := range c.Weekend {
		if d == wd {
			return true
		}
	}
	return false
}

// dayNumber maps the local calendar day of t to UTC midnight seconds
func (c Calendar) dayNumber(t time.Time) int64 {
	y, m, d := t.In(c.loc()).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix()
}

// Date is a year/month/day triple in a non-Gregorian calendar
type Date struct {
	Year  int
	Month int
	Day   int
}

func (d Date) String() string {
	return fmt.Sprintf("%04d/%02d/%02d", d.Year, d.Month, d.Day)
}

// ToLocal converts t to the configured calendar system
func (c Calendar) ToLocal(t time.Time) (Date, error) {
	switch c.System {
	case Hijri:
		return c.ToHijri(t), nil
	case Gregorian:
		y, m, d := t.In(c.loc()).Date()
		return Date{Year: y, Month: int(m), Day: d}, nil
	}
	return c.ToJalali(t)
}

// FromLocal converts a date in the configured calendar system to the start
// of that day
func (c Calendar) FromLocal(d Date) (time.Time, error) {
	switch c.System {
	case Hijri:
		return c.FromHijri(d)
	case Gregorian:
		t := time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, c.loc())
		if y, m, dd := t.Date(); y != d.Year || int(m) != d.Month || dd != d.Day {
			return time.Time{}, fmt.Errorf("%w: %s", ErrInvalidDate, d)
		}
		return t, nil
	}
	return c.FromJalali(d)
}
