// Package aggregate turns a filtered view into the summary tables the
// dashboard charts. Every function is pure over the view, keeps full
// float64 precision and never returns NaN or Inf in a percentage column.
package aggregate
