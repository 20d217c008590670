package selection

import (
	"slices"
	"strings"

	"salesboard/internal/core/facts"
)

// Labels used for the ALL entry at each level
const (
	LabelAllOperators = "All Operators"
	LabelAllRegions   = "All Regions"
	LabelAllStations  = "All Stations"
)

// ResolvedFilter is the resolved selection used to build a view
// Regions and Stations are never empty while candidates exist
type ResolvedFilter struct {
	Operator OperatorChoice
	Regions  []string
	Stations []string
	resolved bool
}

// Resolved is false for the zero ResolvedFilter returned when no operator is chosen
func (f ResolvedFilter) Resolved() bool { return f.resolved }

// HasRegion reports whether region is in the resolved set
func (f ResolvedFilter) HasRegion(region string) bool {
	_, ok := slices.BinarySearch(f.Regions, region)
	return ok
}

// HasStation reports whether station is in the resolved set
func (f ResolvedFilter) HasStation(station string) bool {
	_, ok := slices.BinarySearch(f.Stations, station)
	return ok
}

// Option is one entry of a dropdown
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
	All   bool   `json:"all"`
}

// Options are the three dropdowns, each led by its ALL entry
type Options struct {
	Operators []Option `json:"operators"`
	Regions   []Option `json:"regions"`
	Stations  []Option `json:"stations"`
}

// Resolution is what one request cycle learns from the selection
type Resolution struct {
	Filter        ResolvedFilter
	OperatorLabel string
	RegionLabel   string
	StationLabel  string
	Options       Options
}

// Resolve applies the cascade: the operator narrows region candidates, the
// resolved regions narrow station candidates, and every level falls back to
// all candidates when its picks are All or none of them are still valid
func Resolve(t *facts.Table, sel Selection) Resolution {
	res := Resolution{Options: Options{Operators: optionList(LabelAllOperators, t.Operators())}}
	if !sel.Set() {
		return res
	}
	op := *sel.Operator
	res.OperatorLabel = op.Label()

	regionCands := RegionCandidates(t, op)
	regions, regionLabel := pick(regionCands, sel.Regions, LabelAllRegions)
	res.Options.Regions = optionList(LabelAllRegions, regionCands)
	res.RegionLabel = regionLabel

	stationCands := StationCandidates(t, op, regions)
	stations, stationLabel := pick(stationCands, sel.Stations, LabelAllStations)
	res.Options.Stations = optionList(LabelAllStations, stationCands)
	res.StationLabel = stationLabel

	res.Filter = ResolvedFilter{Operator: op, Regions: regions, Stations: stations, resolved: true}
	return res
}

// RegionCandidates are the sorted distinct regions of rows matching op
func RegionCandidates(t *facts.Table, op OperatorChoice) []string {
	seen := make(map[string]struct{})
	for i := 0; i < t.Len(); i++ {
		r := t.Row(i)
		if op.Matches(r.Operator) {
			seen[r.Region] = struct{}{}
		}
	}
	return sortedSet(seen)
}

// StationCandidates are the sorted distinct stations of rows matching op
// whose region is in regions (sorted)
func StationCandidates(t *facts.Table, op OperatorChoice, regions []string) []string {
	seen := make(map[string]struct{})
	for i := 0; i < t.Len(); i++ {
		r := t.Row(i)
		if !op.Matches(r.Operator) {
			continue
		}
		if _, ok := slices.BinarySearch(regions, r.Region); ok {
			seen[r.Station] = struct{}{}
		}
	}
	return sortedSet(seen)
}

// pick intersects the raw choice with the candidates, falling back to all
func pick(cands []string, c Choice, allLabel string) ([]string, string) {
	if c.IsAll() {
		return cands, allLabel
	}
	var kept []string
	for _, v := range c.values {
		if _, ok := slices.BinarySearch(cands, v); ok {
			kept = append(kept, v)
		}
	}
	if len(kept) == 0 {
		return cands, allLabel
	}
	return kept, strings.Join(kept, ", ")
}

func optionList(allLabel string, values []string) []Option {
	out := make([]Option, 0, len(values)+1)
	out = append(out, Option{Label: allLabel, All: true})
	for _, v := range values {
		out = append(out, Option{Value: v, Label: v})
	}
	return out
}

func sortedSet(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
