package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseDay parses an ISO-8601 date ("2024-01-03") or RFC 3339 timestamp and
// returns the start of that day in the calendar's location.
func (c Calendar) ParseDay(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation("2006-01-02", s, c.loc()); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return c.StartOfPeriod(t, Day), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// ParseLocal parses YYYY/MM/DD (or YYYY-MM-DD) in the configured local
// calendar. Persian and Arabic-Indic digits are accepted.
func (c Calendar) ParseLocal(s string) (time.Time, error) {
	norm := latinDigits.Replace(strings.TrimSpace(s))
	parts := strings.FieldsFunc(norm, func(r rune) bool { return r == '/' || r == '-' })
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("%w: %q: expected YYYY/MM/DD", ErrInvalidDate, s)
	}

	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
		}
		nums[i] = n
	}
	return c.FromLocal(Date{Year: nums[0], Month: nums[1], Day: nums[2]})
}
