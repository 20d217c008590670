package facts

import (
	"strconv"
	"strings"
	"time"

	perr "salesboard/internal/platform/errors"
)

// Weekday is a day of the week ordered Monday first
type Weekday uint8

// Weekdays in display order
const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [...]string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// Weekdays returns all seven days Monday first
func Weekdays() []Weekday {
	return []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

// String returns the lowercase full name
func (w Weekday) String() string {
	if int(w) < len(weekdayNames) {
		return weekdayNames[w]
	}
	return "weekday(" + strconv.Itoa(int(w)) + ")"
}

// Valid reports whether w is one of the seven days
func (w Weekday) Valid() bool { return int(w) < len(weekdayNames) }

// Weekend reports Saturday and Sunday
func (w Weekday) Weekend() bool { return w == Saturday || w == Sunday }

// WeekdayOf maps a time.Weekday (Sunday first) onto the Monday first enum
func WeekdayOf(t time.Time) Weekday { return Weekday((int(t.Weekday()) + 6) % 7) }

// ParseWeekday accepts full names and three letter abbreviations in any case
func ParseWeekday(s string) (Weekday, error) {
	k := strings.ToLower(strings.TrimSpace(s))
	for i, n := range weekdayNames {
		if k == n || (len(k) == 3 && strings.HasPrefix(n, k)) {
			return Weekday(i), nil
		}
	}
	return 0, perr.InvalidArgf("unknown weekday %q", s)
}

// MarshalText implements encoding.TextMarshaler
func (w Weekday) MarshalText() ([]byte, error) {
	if !w.Valid() {
		return nil, perr.InvalidArgf("invalid weekday %d", int(w))
	}
	return []byte(w.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (w *Weekday) UnmarshalText(b []byte) error {
	v, err := ParseWeekday(string(b))
	if err != nil {
		return err
	}
	*w = v
	return nil
}
