package salescsv

import (
	"encoding/csv"
	"errors"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"salesboard/internal/core/facts"
	perr "salesboard/internal/platform/errors"
)

var dateLayouts = []string{facts.DateLayout, "2006-01-02 15:04:05", time.RFC3339, "02/01/2006"}

// ReadFacts parses the sales file into records
func ReadFacts(r io.Reader) ([]facts.Record, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true
	cr.FieldsPerRecord = -1

	names, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, perr.New(perr.ErrorCodeValidation, "sales file is empty")
	}
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeValidation, "read sales header")
	}
	h := parseHeader(names)
	if col := h.missing(); col != "" {
		return nil, perr.WithField(perr.Newf(perr.ErrorCodeValidation, "sales file: missing column %q", col), col)
	}

	var out []facts.Record
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeValidation, "sales file line %d", line)
		}
		rec, err := h.record(row)
		if err != nil {
			return nil, lineErr(err, "sales file", line)
		}
		out = append(out, rec)
	}
}

// lineErr wraps a row error with its line, keeping the offending field
func lineErr(err error, file string, line int) error {
	wrapped := perr.Wrapf(err, perr.ErrorCodeValidation, "%s line %d", file, line)
	if e, ok := perr.As(err); ok && e.Field() != "" {
		return perr.WithField(wrapped, e.Field())
	}
	return wrapped
}

func (h header) record(row []string) (facts.Record, error) {
	rec := facts.Record{
		Operator: h.get(row, colOperator),
		Region:   h.get(row, colRegion),
		Station:  h.get(row, colStation),
		MonthDay: h.get(row, colMonthDay),
		Rurality: h.get(row, colRurality),
	}

	var err error
	if rec.Sales, err = parseFloat(h.get(row, colSales), "sales"); err != nil {
		return rec, err
	}
	if rec.Date, err = h.date(row); err != nil {
		return rec, err
	}
	cal := facts.CalendarOf(rec.Date)
	rec.Year = cal.Year
	if rec.MonthDay != "" && rec.MonthDay != cal.MonthDay {
		return rec, perr.WithField(perr.InvalidArgf("month_day %q does not match date %s", rec.MonthDay, rec.Date.Format(time.DateOnly)), "month_day")
	}
	rec.MonthDay = cal.MonthDay
	if rec.Month, err = optInt(h.get(row, colMonth), "month", cal.Month); err != nil {
		return rec, err
	}
	if rec.WeekNumber, err = optInt(h.get(row, colWeekNumber), "week_number", cal.WeekNumber); err != nil {
		return rec, err
	}
	rec.Weekday = cal.Weekday
	if s := h.get(row, colWeekday); s != "" {
		if rec.Weekday, err = facts.ParseWeekday(s); err != nil {
			return rec, perr.WithField(err, "week_day")
		}
	}
	if rec.Coastal, err = parseFlag(h.get(row, colCoastal)); err != nil {
		return rec, err
	}
	if s := h.get(row, colLat); s != "" {
		if rec.Lat, err = parseFloat(s, "lat"); err != nil {
			return rec, err
		}
	}
	if s := h.get(row, colLon); s != "" {
		if rec.Lon, err = parseFloat(s, "lon"); err != nil {
			return rec, err
		}
	}
	return rec, nil
}

func (h header) date(row []string) (time.Time, error) {
	if s := h.get(row, colDate); s != "" {
		for _, l := range dateLayouts {
			if t, err := time.Parse(l, s); err == nil {
				return facts.Day(t), nil
			}
		}
		return time.Time{}, perr.WithField(perr.InvalidArgf("bad date %q", s), "date")
	}
	y, err := strconv.Atoi(h.get(row, colYear))
	if err != nil {
		return time.Time{}, perr.WithField(perr.InvalidArgf("bad year %q", h.get(row, colYear)), "year")
	}
	m, d, err := facts.ParseMonthDay(h.get(row, colMonthDay))
	if err != nil {
		return time.Time{}, perr.WithField(err, "month_day")
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Day() != d {
		return time.Time{}, perr.WithField(perr.InvalidArgf("%d-%s is not a date", y, h.get(row, colMonthDay)), "month_day")
	}
	return t, nil
}

// parseFloat accepts finite numbers only; strconv reads "NaN" and "Inf"
func parseFloat(s, field string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, perr.WithField(perr.InvalidArgf("bad %s %q", field, s), field)
	}
	return v, nil
}

func optInt(s, field string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	// integer columns exported with NaNs arrive as floats ("52.0")
	f, err := parseFloat(s, field)
	if err != nil || f != math.Trunc(f) {
		return 0, perr.WithField(perr.InvalidArgf("bad %s %q", field, s), field)
	}
	return int(f), nil
}

func parseFlag(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "", "0", "0.0", "false", "f", "n", "no":
		return false, nil
	case "1", "1.0", "true", "t", "y", "yes":
		return true, nil
	}
	return false, perr.WithField(perr.InvalidArgf("bad coastal_flag %q", s), "coastal_flag")
}

// ReadStations reads the station column of the station list
func ReadStations(r io.Reader) ([]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	names, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeValidation, "read stations header")
	}
	col := parseHeader(names)[colStation]
	if col < 0 {
		return nil, perr.WithField(perr.New(perr.ErrorCodeValidation, "stations file: missing column \"station\""), "station")
	}
	var out []string
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeValidation, "stations file line %d", line)
		}
		if col < len(row) {
			if s := strings.TrimSpace(row[col]); s != "" {
				out = append(out, s)
			}
		}
	}
}
