// Package view builds the filtered subset every aggregation of a request reads
package view

import (
	"slices"

	"salesboard/internal/core/facts"
	"salesboard/internal/core/selection"
)

// View is an index list into a Table, no rows are copied
// it is built once per request and only read afterwards
type View struct {
	t   *facts.Table
	idx []int
}

// Build keeps rows matching the operator (unless all), a resolved region
// and a resolved station; an unresolved filter yields an empty view
func Build(t *facts.Table, f selection.ResolvedFilter) View {
	v := View{t: t}
	if !f.Resolved() || len(f.Regions) == 0 || len(f.Stations) == 0 {
		return v
	}
	regions := toSet(f.Regions)
	stations := toSet(f.Stations)

	n := t.Len()
	v.idx = make([]int, 0, n)
	for i := 0; i < n; i++ {
		r := t.Row(i)
		if !f.Operator.Matches(r.Operator) {
			continue
		}
		if _, ok := regions[r.Region]; !ok {
			continue
		}
		if _, ok := stations[r.Station]; !ok {
			continue
		}
		v.idx = append(v.idx, i)
	}
	return v
}

// Of is the unfiltered view over every row
func Of(t *facts.Table) View {
	v := View{t: t, idx: make([]int, t.Len())}
	for i := range v.idx {
		v.idx[i] = i
	}
	return v
}

// Len is the number of matching rows
func (v View) Len() int { return len(v.idx) }

// Empty is the no data marker
func (v View) Empty() bool { return len(v.idx) == 0 }

// Each visits matching rows in table order
func (v View) Each(fn func(r *facts.Record)) {
	for _, i := range v.idx {
		fn(v.t.Row(i))
	}
}

// Rows copies the matching rows out
func (v View) Rows() []facts.Record {
	out := make([]facts.Record, 0, len(v.idx))
	v.Each(func(r *facts.Record) { out = append(out, *r) })
	return out
}

// Where narrows the view further
func (v View) Where(keep func(r *facts.Record) bool) View {
	out := View{t: v.t, idx: make([]int, 0, len(v.idx))}
	for _, i := range v.idx {
		if keep(v.t.Row(i)) {
			out.idx = append(out.idx, i)
		}
	}
	return out
}

// Stations returns the sorted distinct stations in the view
func (v View) Stations() []string {
	seen := make(map[string]struct{})
	v.Each(func(r *facts.Record) { seen[r.Station] = struct{}{} })
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}

func toSet(vals []string) map[string]struct{} {
	m := make(map[string]struct{}, len(vals))
	for _, s := range vals {
		m[s] = struct{}{}
	}
	return m
}
