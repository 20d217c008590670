package salescsv

import "strings"

type column int

const (
	colOperator column = iota
	colRegion
	colStation
	colDate
	colYear
	colMonth
	colMonthDay
	colWeekNumber
	colWeekday
	colSales
	colCoastal
	colRurality
	colLat
	colLon
	numColumns
)

var columnNames = [numColumns]string{
	"operator", "region", "station", "date", "year", "month", "month_day",
	"week_number", "week_day", "sales", "coastal_flag", "rurality", "lat", "lon",
}

var aliases = map[string]column{
	"operator":     colOperator,
	"toc":          colOperator,
	"region":       colRegion,
	"region_nm":    colRegion,
	"rgn_nm":       colRegion,
	"station":      colStation,
	"station_name": colStation,
	"date":         colDate,
	"year":         colYear,
	"month":        colMonth,
	"month_day":    colMonthDay,
	"week_number":  colWeekNumber,
	"week":         colWeekNumber,
	"week_day":     colWeekday,
	"weekday":      colWeekday,
	"sales":        colSales,
	"coastal_flag": colCoastal,
	"coastal":      colCoastal,
	"rurality_nm":  colRurality,
	"rurality":     colRurality,
	"lat":          colLat,
	"latitude":     colLat,
	"lon":          colLon,
	"lng":          colLon,
	"longitude":    colLon,
}

// header maps each known column to its index, -1 when absent
type header [numColumns]int

func parseHeader(names []string) header {
	var h header
	for i := range h {
		h[i] = -1
	}
	for i, n := range names {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(n, "\ufeff")))
		if c, ok := aliases[key]; ok && h[c] < 0 {
			h[c] = i
		}
	}
	return h
}

func (h header) has(c column) bool { return h[c] >= 0 }

// get returns the trimmed cell, empty when the column is absent
func (h header) get(row []string, c column) string {
	i := h[c]
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// missing names the first required column not present
func (h header) missing() string {
	for _, c := range []column{colOperator, colRegion, colStation, colSales} {
		if !h.has(c) {
			return columnNames[c]
		}
	}
	if !h.has(colDate) && !(h.has(colYear) && h.has(colMonthDay)) {
		return columnNames[colDate]
	}
	return ""
}
