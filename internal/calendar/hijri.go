package calendar

import (
	"fmt"
	"time"
)

// Tabular (arithmetic) Islamic calendar, civil epoch: 1 Muharram 1 AH is
// Julian day number 1948440. Observed month starts may differ by a day.

const (
	hijriEpochJDN = 1948440
	unixEpochJDN  = 2440588
)

var hijriMonths = [...]string{
	"محرم", "صفر", "ربیع‌الاول",
	"ربیع‌الثانی", "جمادی‌الاول", "جمادی‌الثانی",
	"رجب", "شعبان", "رمضان",
	"شوال", "ذی‌القعده", "ذی‌الحجه",
}

// ToHijri converts the local calendar day of t to a tabular Hijri date
func (c Calendar) ToHijri(t time.Time) Date {
	jdn := int(floorDiv(c.dayNumber(t), 86400)) + unixEpochJDN

	year := floorDivInt(30*(jdn-hijriEpochJDN)+10646, 10631)
	// ceil((jdn - 29 - first) / 29.5) + 1, kept in integers
	first := hijriToJDN(year, 1, 1)
	month := floorDivInt(2*(jdn-29-first)+58, 59) + 1
	if month > 12 {
		month = 12
	}
	if month < 1 {
		month = 1
	}
	day := jdn - hijriToJDN(year, month, 1) + 1
	return Date{Year: year, Month: month, Day: day}
}

// FromHijri returns the start of the Gregorian day matching a tabular Hijri date
func (c Calendar) FromHijri(d Date) (time.Time, error) {
	if d.Month < 1 || d.Month > 12 || d.Day < 1 || d.Day > hijriMonthLength(d.Year, d.Month) {
		return time.Time{}, fmt.Errorf("%w: hijri %s", ErrInvalidDate, d)
	}
	jdn := hijriToJDN(d.Year, d.Month, d.Day)
	y, m, dd := time.Unix(int64(jdn-unixEpochJDN)*86400, 0).UTC().Date()
	return time.Date(y, m, dd, 0, 0, 0, 0, c.loc()), nil
}

// HijriMonthName returns the name of a Hijri month (1-12)
func HijriMonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return hijriMonths[month-1]
}

func hijriToJDN(year, month, day int) int {
	return day +
		(59*(month-1)+1)/2 +
		(year-1)*354 +
		floorDivInt(3+11*year, 30) +
		hijriEpochJDN - 1
}

func hijriMonthLength(year, month int) int {
	if month == 12 {
		return hijriToJDN(year+1, 1, 1) - hijriToJDN(year, 12, 1)
	}
	return hijriToJDN(year, month+1, 1) - hijriToJDN(year, month, 1)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorDivInt(a, b int) int {
	return int(floorDiv(int64(a), int64(b)))
}
