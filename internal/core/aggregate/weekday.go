package aggregate

import (
	"slices"

	"salesboard/internal/core/facts"
	"salesboard/internal/core/ratio"
	"salesboard/internal/core/view"
)

// WeekdayShareRow is one weekday's share of a month's sales
type WeekdayShareRow struct {
	Month   int           `json:"month"`
	Weekday facts.Weekday `json:"weekday"`
	Sales   float64       `json:"sales"`
	Pct     float64       `json:"pct"`
}

// WeekdayShare emits seven rows per month present in v, Monday first;
// a weekday with no rows reports 0, and a month totalling 0 reports 0 everywhere
func WeekdayShare(v view.View) []WeekdayShareRow {
	sums := make(map[int]*[7]float64)
	v.Each(func(r *facts.Record) {
		m, ok := sums[r.Month]
		if !ok {
			m = new([7]float64)
			sums[r.Month] = m
		}
		m[r.Weekday] += r.Sales
	})

	months := make([]int, 0, len(sums))
	for m := range sums {
		months = append(months, m)
	}
	slices.Sort(months)

	out := make([]WeekdayShareRow, 0, len(months)*7)
	for _, m := range months {
		days := sums[m]
		var total float64
		for _, s := range days {
			total += s
		}
		for _, wd := range facts.Weekdays() {
			out = append(out, WeekdayShareRow{
				Month:   m,
				Weekday: wd,
				Sales:   days[wd],
				Pct:     ratio.Percent(days[wd], total),
			})
		}
	}
	return out
}
