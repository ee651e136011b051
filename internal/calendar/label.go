package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Granularity selects the label format
type Granularity int

const (
	LabelDay     Granularity = iota // day of month: "16"
	LabelShort                      // month/day: "10/16"
	LabelLong                       // "16 دی 1402"
	LabelMonth                      // "دی 1402"
	LabelWeekday                    // one-letter Persian weekday, short English for gregorian
)

var persianWeekdays = map[time.Weekday]string{
	time.Saturday:  "ش",
	time.Sunday:    "ی",
	time.Monday:    "د",
	time.Tuesday:   "س",
	time.Wednesday: "چ",
	time.Thursday:  "پ",
	time.Friday:    "ج",
}

var persianDigits = strings.NewReplacer(
	"0", "۰", "1", "۱", "2", "۲", "3", "۳", "4", "۴",
	"5", "۵", "6", "۶", "7", "۷", "8", "۸", "9", "۹",
)

var latinDigits = strings.NewReplacer(
	"۰", "0", "۱", "1", "۲", "2", "۳", "3", "۴", "4",
	"۵", "5", "۶", "6", "۷", "7", "۸", "8", "۹", "9",
	"٠", "0", "١", "1", "٢", "2", "٣", "3", "٤", "4",
	"٥", "5", "٦", "6", "٧", "7", "٨", "8", "٩", "9",
)

// Label formats t in the configured local calendar
func (c Calendar) Label(t time.Time, g Granularity) string {
	if g == LabelWeekday {
		wd := t.In(c.loc()).Weekday()
		if c.System == Gregorian {
			return wd.String()[:3]
		}
		return persianWeekdays[wd]
	}

	d, err := c.ToLocal(t)
	system := c.System
	if err != nil {
		// outside the converter's range; fall back to gregorian
		y, m, dd := t.In(c.loc()).Date()
		d, system = Date{Year: y, Month: int(m), Day: dd}, Gregorian
	}

	var s string
	switch g {
	case LabelDay:
		s = strconv.Itoa(d.Day)
	case LabelShort:
		s = fmt.Sprintf("%02d/%02d", d.Month, d.Day)
	case LabelLong:
		s = fmt.Sprintf("%d %s %d", d.Day, monthName(system, d.Month), d.Year)
	case LabelMonth:
		s = fmt.Sprintf("%s %d", monthName(system, d.Month), d.Year)
	default:
		s = d.String()
	}
	return c.digits(s)
}

// FormatLocal formats t as YYYY/MM/DD in the local calendar, the format
// accepted by ParseLocal
func (c Calendar) FormatLocal(t time.Time) string {
	d, err := c.ToLocal(t)
	if err != nil {
		return t.In(c.loc()).Format("2006/01/02")
	}
	return c.digits(d.String())
}

func (c Calendar) digits(s string) string {
	if c.PersianDigits {
		return persianDigits.Replace(s)
	}
	return s
}

func monthName(s System, month int) string {
	switch s {
	case Hijri:
		return HijriMonthName(month)
	case Gregorian:
		return time.Month(month).String()
	}
	return JalaliMonthName(month)
}
