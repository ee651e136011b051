package calendar

import (
	"fmt"
	"time"

	"github.com/jalaali/go-jalaali"
)

var jalaliMonths = [...]string{
	"فروردین", "اردیبهشت", "خرداد",
	"تیر", "مرداد", "شهریور",
	"مهر", "آبان", "آذر",
	"دی", "بهمن", "اسفند",
}

// ToJalali converts the local calendar day of t to a Jalali date
func (c Calendar) ToJalali(t time.Time) (Date, error) {
	gy, gm, gd := t.In(c.loc()).Date()
	jy, jm, jd, err := jalaali.ToJalaali(gy, gm, gd)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	return Date{Year: jy, Month: int(jm), Day: jd}, nil
}

// FromJalali returns the start of the Gregorian day matching a Jalali date.
// Dates that do not exist, such as 1402/12/30, return ErrInvalidDate.
func (c Calendar) FromJalali(d Date) (time.Time, error) {
	if d.Month < 1 || d.Month > 12 || d.Day < 1 || d.Day > 31 {
		return time.Time{}, fmt.Errorf("%w: jalali %s", ErrInvalidDate, d)
	}
	gy, gm, gd, err := jalaali.ToGregorian(d.Year, jalaali.Month(d.Month), d.Day)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: jalali %s: %v", ErrInvalidDate, d, err)
	}
	t := time.Date(gy, gm, gd, 0, 0, 0, 0, c.loc())

	// the converter rolls overflowing days into the next month
	back, err := c.ToJalali(t)
	if err != nil || back != d {
		return time.Time{}, fmt.Errorf("%w: jalali %s", ErrInvalidDate, d)
	}
	return t, nil
}

// JalaliMonthName returns the Persian name of a Jalali month (1-12)
func JalaliMonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return jalaliMonths[month-1]
}
