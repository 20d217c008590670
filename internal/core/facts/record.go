// Package facts is the in memory fact store: one row per station per day
package facts

import "time"

// Record is one row of the processed sales file
// station -> region -> operator holds across every row of a Table
type Record struct {
	Operator   string    `json:"operator"`
	Region     string    `json:"region"`
	Station    string    `json:"station"`
	Date       time.Time `json:"date"`
	Year       int       `json:"year"`
	Month      int       `json:"month"`
	WeekNumber int       `json:"week_number"`
	Weekday    Weekday   `json:"weekday"`
	MonthDay   string    `json:"month_day"`
	Sales      float64   `json:"sales"`
	Coastal    bool      `json:"coastal"`
	Rurality   string    `json:"rurality,omitempty"`
	Lat        float64   `json:"lat"`
	Lon        float64   `json:"lon"`
}

// Fill derives any calendar field left at its zero value from Date
func (r *Record) Fill() {
	if r.Date.IsZero() {
		return
	}
	r.Date = Day(r.Date)
	c := CalendarOf(r.Date)
	if r.Year == 0 {
		r.Year = c.Year
	}
	if r.Month == 0 {
		r.Month = c.Month
	}
	if r.WeekNumber == 0 {
		r.WeekNumber = c.WeekNumber
	}
	if r.MonthDay == "" {
		r.MonthDay = c.MonthDay
	}
}
