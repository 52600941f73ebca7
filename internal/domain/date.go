package domain

import "time"

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// DateOf drops the clock part of t and pins it to UTC so that calendar
// arithmetic is not affected by zone offsets or DST.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// DaysBetween returns the number of calendar days from start to end.
func DaysBetween(start, end time.Time) int {
	return int(DateOf(end).Sub(DateOf(start)) / (24 * time.Hour))
}

// InclusiveDays counts both endpoints as rental days.
func InclusiveDays(start, end time.Time) int {
	return DaysBetween(start, end) + 1
}

// AddYears shifts a date by whole years. 29 February lands on 28 February
// in non-leap years instead of rolling into March.
func AddYears(t time.Time, years int) time.Time {
	d := DateOf(t)
	y, m, day := d.Year()+years, d.Month(), d.Day()
	if last := daysIn(y, m); day > last {
		day = last
	}
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
