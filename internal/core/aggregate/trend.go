package aggregate

import (
	"cmp"
	"slices"
	"time"

	"salesboard/internal/core/facts"
	"salesboard/internal/core/view"
)

// Window is an inclusive date range
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// DefaultTrendWindow is the station trend range, 2023-01-01 to 2024-12-01
func DefaultTrendWindow() Window {
	return Window{
		Start: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Contains reports whether t falls inside the window, both ends included
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// TrendRow is one station's sales on one date
type TrendRow struct {
	Date    time.Time `json:"date"`
	Station string    `json:"station"`
	Sales   float64   `json:"sales"`
}

type dateStation struct {
	date    time.Time
	station string
}

// StationTrend sums sales by (date, station) inside w, sorted by date then station
func StationTrend(v view.View, w Window) []TrendRow {
	sums := make(map[dateStation]float64)
	v.Each(func(r *facts.Record) {
		if w.Contains(r.Date) {
			sums[dateStation{r.Date, r.Station}] += r.Sales
		}
	})

	out := make([]TrendRow, 0, len(sums))
	for k, s := range sums {
		out = append(out, TrendRow{Date: k.date, Station: k.station, Sales: s})
	}
	slices.SortFunc(out, func(a, b TrendRow) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.Station, b.Station)
	})
	return out
}
