// Package salescsv reads the processed sales file and the station list
//
// Design choices:
// - Columns are located by header name, trimmed and case-insensitive, with the
//   aliases the upstream exports have used over time (region_nm, rgn_nm, ...).
// - date is optional; without it the date is rebuilt from year + month_day.
// - month, weekday and week_number are derived from the date when absent.
// - A malformed row fails the whole read with its line number, nothing is skipped.
package salescsv
