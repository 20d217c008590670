package aggregate

import (
	"cmp"
	"slices"

	"salesboard/internal/core/facts"
	"salesboard/internal/core/ratio"
	"salesboard/internal/core/view"
)

// CoastalRow is the coastal share of one week's sales
type CoastalRow struct {
	Year         int     `json:"year"`
	Week         int     `json:"week"`
	CoastalSales float64 `json:"coastal_sales"`
	TotalSales   float64 `json:"total_sales"`
	Pct          float64 `json:"pct"`
}

type yearWeek struct{ year, week int }

// CoastalShare reports every (year, week) present in v; weeks with no coastal
// sales report 0 and a zero weekly total reports 0
func CoastalShare(v view.View) []CoastalRow {
	type acc struct{ coastal, total float64 }
	sums := make(map[yearWeek]*acc)
	v.Each(func(r *facts.Record) {
		k := yearWeek{r.Year, r.WeekNumber}
		a, ok := sums[k]
		if !ok {
			a = &acc{}
			sums[k] = a
		}
		a.total += r.Sales
		if r.Coastal {
			a.coastal += r.Sales
		}
	})

	out := make([]CoastalRow, 0, len(sums))
	for k, a := range sums {
		out = append(out, CoastalRow{
			Year:         k.year,
			Week:         k.week,
			CoastalSales: a.coastal,
			TotalSales:   a.total,
			Pct:          ratio.Percent(a.coastal, a.total),
		})
	}
	slices.SortFunc(out, func(a, b CoastalRow) int {
		if c := cmp.Compare(a.Year, b.Year); c != 0 {
			return c
		}
		return cmp.Compare(a.Week, b.Week)
	})
	return out
}
