package aggregate

import (
	"cmp"
	"slices"
	"time"

	"salesboard/internal/core/facts"
	"salesboard/internal/core/view"
)

// DailyRow is total sales for one calendar day of one year, placed on the
// reference year so every year shares an axis
type DailyRow struct {
	Year        int       `json:"year"`
	MonthDay    string    `json:"month_day"`
	AlignedDate time.Time `json:"aligned_date"`
	Weekend     bool      `json:"weekend"`
	Sales       float64   `json:"sales"`
}

type yearDay struct {
	year     int
	monthDay string
}

// DailyByYear sums sales by (year, month_day), sorted by year then date
func DailyByYear(v view.View) []DailyRow {
	sums := make(map[yearDay]float64)
	v.Each(func(r *facts.Record) {
		sums[yearDay{r.Year, r.MonthDay}] += r.Sales
	})

	out := make([]DailyRow, 0, len(sums))
	for k, s := range sums {
		// month_day was validated when the table was built
		d, _ := facts.AlignedDate(k.monthDay)
		out = append(out, DailyRow{
			Year:        k.year,
			MonthDay:    k.monthDay,
			AlignedDate: d,
			Weekend:     facts.WeekdayOf(d).Weekend(),
			Sales:       s,
		})
	}
	slices.SortFunc(out, func(a, b DailyRow) int {
		if c := cmp.Compare(a.Year, b.Year); c != 0 {
			return c
		}
		return a.AlignedDate.Compare(b.AlignedDate)
	})
	return out
}
