package aggregate

import (
	"cmp"
	"slices"
	"time"

	"salesboard/internal/core/facts"
	"salesboard/internal/core/view"
)

// Sample is one row's sales, kept raw for box plots
type Sample struct {
	Month   int           `json:"month"`
	Date    time.Time     `json:"date"`
	Station string        `json:"station"`
	Weekday facts.Weekday `json:"weekday"`
	Sales   float64       `json:"sales"`
}

// YearDistribution holds every sample of one year
type YearDistribution struct {
	Year    int      `json:"year"`
	Samples []Sample `json:"samples"`
}

// MonthlyDistribution groups raw per row sales by year and month without
// pre-aggregating; years ascend, samples order by month, station, date
func MonthlyDistribution(v view.View) []YearDistribution {
	byYear := make(map[int][]Sample)
	v.Each(func(r *facts.Record) {
		byYear[r.Year] = append(byYear[r.Year], Sample{
			Month:   r.Month,
			Date:    r.Date,
			Station: r.Station,
			Weekday: r.Weekday,
			Sales:   r.Sales,
		})
	})

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	slices.Sort(years)

	out := make([]YearDistribution, 0, len(years))
	for _, y := range years {
		s := byYear[y]
		slices.SortStableFunc(s, func(a, b Sample) int {
			if c := cmp.Compare(a.Month, b.Month); c != 0 {
				return c
			}
			if c := cmp.Compare(a.Station, b.Station); c != 0 {
				return c
			}
			return a.Date.Compare(b.Date)
		})
		out = append(out, YearDistribution{Year: y, Samples: s})
	}
	return out
}
