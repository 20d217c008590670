package repo

import (
	"context"
	"os"

	"salesboard/internal/adapters/ingest/salescsv"
	"salesboard/internal/core/facts"
	perr "salesboard/internal/platform/errors"
)

// CSV reads the dataset from the processed sales file and the station list
type CSV struct {
	FactsPath    string
	StationsPath string
}

// NewCSV returns a file backed Storage
func NewCSV(factsPath, stationsPath string) *CSV {
	return &CSV{FactsPath: factsPath, StationsPath: stationsPath}
}

// LoadFacts implements Storage
func (c *CSV) LoadFacts(_ context.Context) ([]facts.Record, error) {
	f, err := os.Open(c.FactsPath)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "open %s", c.FactsPath)
	}
	defer func() { _ = f.Close() }()
	return salescsv.ReadFacts(f)
}

// LoadStations implements Storage; no path means no registry
func (c *CSV) LoadStations(_ context.Context) ([]string, error) {
	if c.StationsPath == "" {
		return nil, nil
	}
	f, err := os.Open(c.StationsPath)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "open %s", c.StationsPath)
	}
	defer func() { _ = f.Close() }()
	return salescsv.ReadStations(f)
}
