package aggregate

import (
	"cmp"
	"slices"
	"strings"

	"salesboard/internal/core/facts"
	"salesboard/internal/core/ratio"
	"salesboard/internal/core/view"
)

// UnknownRurality buckets rows with no rurality category
const UnknownRurality = "unknown"

// RuralityRow is one rurality category's share of a month's sales
type RuralityRow struct {
	Month    int     `json:"month"`
	Rurality string  `json:"rurality"`
	Sales    float64 `json:"sales"`
	Pct      float64 `json:"pct"`
}

type monthCategory struct {
	month    int
	rurality string
}

// RuralityShare groups by (month, rurality) against the month total; blank
// categories land in UnknownRurality so each month sums to 100
func RuralityShare(v view.View) []RuralityRow {
	sums := make(map[monthCategory]float64)
	totals := make(map[int]float64)
	v.Each(func(r *facts.Record) {
		cat := strings.TrimSpace(r.Rurality)
		if cat == "" {
			cat = UnknownRurality
		}
		sums[monthCategory{r.Month, cat}] += r.Sales
		totals[r.Month] += r.Sales
	})

	out := make([]RuralityRow, 0, len(sums))
	for k, s := range sums {
		out = append(out, RuralityRow{
			Month:    k.month,
			Rurality: k.rurality,
			Sales:    s,
			Pct:      ratio.Percent(s, totals[k.month]),
		})
	}
	slices.SortFunc(out, func(a, b RuralityRow) int {
		if c := cmp.Compare(a.Month, b.Month); c != 0 {
			return c
		}
		return cmp.Compare(a.Rurality, b.Rurality)
	})
	return out
}
