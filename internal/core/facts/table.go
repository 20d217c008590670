package facts

import (
	"math"
	"slices"
	"strings"

	perr "salesboard/internal/platform/errors"
)

// StationPoint is one map marker per station
type StationPoint struct {
	Station  string  `json:"station"`
	Region   string  `json:"region"`
	Operator string  `json:"operator"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
}

// Table is the immutable fact table loaded once per process
// readers may share it across goroutines without locking
type Table struct {
	rows      []Record
	operators []string
	years     []int
	stations  []string
	points    []StationPoint
}

// NewTable copies rows, validates them and precomputes the distinct lists
// a station seen under two regions or two operators is rejected; regions
// themselves may be served by several operators
func NewTable(rows []Record) (*Table, error) {
	t := &Table{rows: make([]Record, len(rows))}
	copy(t.rows, rows)

	stationRegion := make(map[string]string)
	stationOperator := make(map[string]string)
	ops := make(map[string]struct{})
	years := make(map[int]struct{})
	points := make(map[string]StationPoint)

	for i := range t.rows {
		r := &t.rows[i]
		r.Fill()
		if err := validateRow(i, r); err != nil {
			return nil, err
		}
		if prev, ok := stationRegion[r.Station]; ok && prev != r.Region {
			return nil, perr.WithField(
				perr.Newf(perr.ErrorCodeValidation, "row %d: station %q in region %q and %q", i+1, r.Station, prev, r.Region),
				"region")
		}
		if prev, ok := stationOperator[r.Station]; ok && prev != r.Operator {
			return nil, perr.WithField(
				perr.Newf(perr.ErrorCodeValidation, "row %d: station %q under operator %q and %q", i+1, r.Station, prev, r.Operator),
				"operator")
		}
		stationRegion[r.Station] = r.Region
		stationOperator[r.Station] = r.Operator
		ops[r.Operator] = struct{}{}
		years[r.Year] = struct{}{}
		if _, ok := points[r.Station]; !ok {
			points[r.Station] = StationPoint{Station: r.Station, Region: r.Region, Operator: r.Operator, Lat: r.Lat, Lon: r.Lon}
		}
	}

	t.operators = sortedKeys(ops)
	t.stations = sortedKeys(stationRegion)
	t.years = sortedKeys(years)
	t.points = make([]StationPoint, 0, len(points))
	for _, s := range t.stations {
		t.points = append(t.points, points[s])
	}
	return t, nil
}

// MustTable is NewTable for fixtures, panics on error
func MustTable(rows []Record) *Table {
	t, err := NewTable(rows)
	if err != nil {
		panic(err)
	}
	return t
}

func validateRow(i int, r *Record) error {
	bad := func(field, msg string) error {
		return perr.WithField(perr.Newf(perr.ErrorCodeValidation, "row %d: %s", i+1, msg), field)
	}
	switch {
	case strings.TrimSpace(r.Operator) == "":
		return bad("operator", "operator is required")
	case strings.TrimSpace(r.Region) == "":
		return bad("region", "region is required")
	case strings.TrimSpace(r.Station) == "":
		return bad("station", "station is required")
	case r.Date.IsZero():
		return bad("date", "date is required")
	case !finite(r.Sales):
		return bad("sales", "sales must be a finite number")
	case r.Sales < 0:
		return bad("sales", "sales must not be negative")
	case r.Month < 1 || r.Month > 12:
		return bad("month", "month out of range")
	case !r.Weekday.Valid():
		return bad("weekday", "weekday out of range")
	case !finite(r.Lat):
		return bad("lat", "lat must be a finite number")
	case !finite(r.Lon):
		return bad("lon", "lon must be a finite number")
	}
	if _, _, err := ParseMonthDay(r.MonthDay); err != nil {
		return perr.WithField(perr.Wrapf(err, perr.ErrorCodeValidation, "row %d", i+1), "month_day")
	}
	return nil
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

func sortedKeys[K interface{ ~int | ~string }, V any](m map[K]V) []K {
	out := make([]K, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// Len is the row count
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Row returns a pointer into the table; callers must not modify it
func (t *Table) Row(i int) *Record { return &t.rows[i] }

// Rows returns a copy of every row
func (t *Table) Rows() []Record {
	if t == nil {
		return nil
	}
	return slices.Clone(t.rows)
}

// Operators returns the sorted distinct operators
func (t *Table) Operators() []string {
	if t == nil {
		return nil
	}
	return slices.Clone(t.operators)
}

// Years returns the sorted distinct years
func (t *Table) Years() []int {
	if t == nil {
		return nil
	}
	return slices.Clone(t.years)
}

// Stations returns the sorted distinct stations
func (t *Table) Stations() []string {
	if t == nil {
		return nil
	}
	return slices.Clone(t.stations)
}

// StationPoints returns one point per station sorted by station,
// coordinates taken from the first row seen for it
func (t *Table) StationPoints() []StationPoint {
	if t == nil {
		return nil
	}
	return slices.Clone(t.points)
}
