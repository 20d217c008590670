package facts

import (
	"slices"
	"strings"

	"salesboard/internal/core/ratio"
)

// StationRegistry is the full list of known stations, a superset of
// the stations that appear in the fact table
type StationRegistry struct {
	names map[string]struct{}
}

// NewStationRegistry dedupes names, ignoring blanks
func NewStationRegistry(names []string) *StationRegistry {
	r := &StationRegistry{names: make(map[string]struct{}, len(names))}
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		r.names[n] = struct{}{}
	}
	return r
}

// Len is the number of distinct stations
func (r *StationRegistry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.names)
}

// Contains reports whether the station is known
func (r *StationRegistry) Contains(station string) bool {
	if r == nil {
		return false
	}
	_, ok := r.names[station]
	return ok
}

// Names returns the sorted station names
func (r *StationRegistry) Names() []string {
	if r == nil {
		return nil
	}
	return sortedKeys(r.names)
}

// Coverage is the share of registry stations that have sales data,
// distinct stations in t over registry size times 100
func (r *StationRegistry) Coverage(t *Table) float64 {
	if t == nil {
		return 0
	}
	return ratio.Percent(float64(len(t.stations)), float64(r.Len()))
}

// Missing lists registry stations with no rows in t
func (r *StationRegistry) Missing(t *Table) []string {
	var out []string
	have := t.Stations()
	for _, n := range r.Names() {
		if _, found := slices.BinarySearch(have, n); !found {
			out = append(out, n)
		}
	}
	return out
}
