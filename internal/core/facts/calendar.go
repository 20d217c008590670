package facts

import (
	"fmt"
	"strconv"
	"time"

	perr "salesboard/internal/platform/errors"
)

// ReferenceYear is the leap year every month_day is aligned onto so
// different years plot on one axis and 02-29 stays representable
const ReferenceYear = 2000

// DateLayout is the wire form of calendar dates
const DateLayout = "2006-01-02"

// ParseMonthDay splits "MM-DD" and checks it is a real day in a leap year
func ParseMonthDay(s string) (month, day int, err error) {
	if len(s) != 5 || s[2] != '-' {
		return 0, 0, perr.InvalidArgf("month_day %q: want MM-DD", s)
	}
	month, err = strconv.Atoi(s[:2])
	if err != nil {
		return 0, 0, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "month_day %q", s)
	}
	day, err = strconv.Atoi(s[3:])
	if err != nil {
		return 0, 0, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "month_day %q", s)
	}
	if month < 1 || month > 12 || day < 1 {
		return 0, 0, perr.InvalidArgf("month_day %q out of range", s)
	}
	t := time.Date(ReferenceYear, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Month() != time.Month(month) {
		return 0, 0, perr.InvalidArgf("month_day %q out of range", s)
	}
	return month, day, nil
}

// AlignedDate places a month_day onto ReferenceYear
func AlignedDate(monthDay string) (time.Time, error) {
	m, d, err := ParseMonthDay(monthDay)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(ReferenceYear, time.Month(m), d, 0, 0, 0, 0, time.UTC), nil
}

// MonthDayOf formats a date as "MM-DD"
func MonthDayOf(t time.Time) string {
	return fmt.Sprintf("%02d-%02d", int(t.Month()), t.Day())
}

// Day truncates t to UTC midnight
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Calendar carries the fields derived from a date
type Calendar struct {
	Year       int
	Month      int
	WeekNumber int
	Weekday    Weekday
	MonthDay   string
}

// CalendarOf derives year, month, ISO week, weekday and month_day from a date
func CalendarOf(t time.Time) Calendar {
	t = Day(t)
	_, wk := t.ISOWeek()
	return Calendar{
		Year:       t.Year(),
		Month:      int(t.Month()),
		WeekNumber: wk,
		Weekday:    WeekdayOf(t),
		MonthDay:   MonthDayOf(t),
	}
}
