package aggregate

import (
	"salesboard/internal/core/facts"
	"salesboard/internal/core/ratio"
	"salesboard/internal/core/view"
)

// WeeksPerYear is the number of weeks the comparison always reports
const WeeksPerYear = 52

// Comparison names the two years compared by the week and scorecard tables
type Comparison struct {
	Previous int `json:"previous"`
	Current  int `json:"current"`
}

// DefaultComparison is 2023 against 2024
func DefaultComparison() Comparison { return Comparison{Previous: 2023, Current: 2024} }

// WeekChangeRow compares one week number across the two years
type WeekChangeRow struct {
	Week      int     `json:"week"`
	Previous  float64 `json:"previous"`
	Current   float64 `json:"current"`
	PctChange float64 `json:"pct_change"`
}

// WeekOverWeek returns exactly 52 rows for weeks 1..52; weeks without rows
// count as zero sales and a zero previous week yields a 0 change
func WeekOverWeek(v view.View, c Comparison) []WeekChangeRow {
	var prev, cur [WeeksPerYear + 1]float64
	v.Each(func(r *facts.Record) {
		if r.WeekNumber < 1 || r.WeekNumber > WeeksPerYear {
			return
		}
		switch r.Year {
		case c.Previous:
			prev[r.WeekNumber] += r.Sales
		case c.Current:
			cur[r.WeekNumber] += r.Sales
		}
	})

	out := make([]WeekChangeRow, WeeksPerYear)
	for w := 1; w <= WeeksPerYear; w++ {
		out[w-1] = WeekChangeRow{
			Week:      w,
			Previous:  prev[w],
			Current:   cur[w],
			PctChange: ratio.Change(cur[w], prev[w]),
		}
	}
	return out
}
