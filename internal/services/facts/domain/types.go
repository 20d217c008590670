// Package domain holds the dataset types and ports of the facts service
package domain

import (
	"time"

	"salesboard/internal/core/facts"
	perr "salesboard/internal/platform/errors"
)

// Source names where the fact table is loaded from
type Source string

// Sources
const (
	SourceCSV        Source = "csv"
	SourcePostgres   Source = "pg"
	SourceClickhouse Source = "ch"
)

// ParseSource validates a configured source name
func ParseSource(s string) (Source, error) {
	switch Source(s) {
	case SourceCSV, SourcePostgres, SourceClickhouse:
		return Source(s), nil
	}
	return "", perr.InvalidArgf("unknown sales source %q (want csv, pg or ch)", s)
}

// Dataset is one loaded, validated snapshot of the fact store
type Dataset struct {
	Table    *facts.Table
	Registry *facts.StationRegistry
	Source   Source
	LoadedAt time.Time
}

// Info summarises a dataset for the meta endpoint
type Info struct {
	Source        Source    `json:"source"`
	LoadedAt      time.Time `json:"loaded_at"`
	Rows          int       `json:"rows"`
	Operators     int       `json:"operators"`
	Stations      int       `json:"stations"`
	KnownStations int       `json:"known_stations"`
	Years         []int     `json:"years"`
	Coverage      float64   `json:"coverage"`
}

// Info builds the summary
func (d Dataset) Info() Info {
	return Info{
		Source:        d.Source,
		LoadedAt:      d.LoadedAt,
		Rows:          d.Table.Len(),
		Operators:     len(d.Table.Operators()),
		Stations:      len(d.Table.Stations()),
		KnownStations: d.Registry.Len(),
		Years:         d.Table.Years(),
		Coverage:      d.Registry.Coverage(d.Table),
	}
}
