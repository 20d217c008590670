// Package report runs one request cycle: resolve the selection, build the
// view once, then aggregate every table from that same view
package report

import (
	"salesboard/internal/core/aggregate"
	"salesboard/internal/core/facts"
	"salesboard/internal/core/selection"
	"salesboard/internal/core/view"
)

// Status classifies the outcome of a cycle; none of them is an error
type Status string

const (
	// StatusAwaitingInput means no operator has been chosen yet
	StatusAwaitingInput Status = "awaiting_input"
	// StatusNoData means the resolved filter matched no rows
	StatusNoData Status = "no_data"
	// StatusOK means Tables is populated
	StatusOK Status = "ok"
)

// Options tune the tables that compare years or clip dates
type Options struct {
	Compare aggregate.Comparison
	Trend   aggregate.Window
}

// DefaultOptions compares 2023 with 2024 over the default trend window
func DefaultOptions() Options {
	return Options{Compare: aggregate.DefaultComparison(), Trend: aggregate.DefaultTrendWindow()}
}

// Labels title the charts
type Labels struct {
	Operator string `json:"operator"`
	Regions  string `json:"regions"`
	Stations string `json:"stations"`
}

// Tables are the seven summary tables of a populated report
type Tables struct {
	Daily        []aggregate.DailyRow         `json:"daily"`
	Trend        []aggregate.TrendRow         `json:"trend"`
	Distribution []aggregate.YearDistribution `json:"distribution"`
	WeekdayShare []aggregate.WeekdayShareRow  `json:"weekday_share"`
	WeekChange   []aggregate.WeekChangeRow    `json:"week_change"`
	CoastalShare []aggregate.CoastalRow       `json:"coastal_share"`
	Rurality     []aggregate.RuralityRow      `json:"rurality_share"`
}

// Report is the result of one cycle; Tables is nil unless Status is ok
type Report struct {
	Status  Status                   `json:"status"`
	Labels  Labels                   `json:"labels"`
	Options selection.Options        `json:"options"`
	Filter  selection.ResolvedFilter `json:"-"`
	Rows    int                      `json:"rows"`
	Tables  *Tables                  `json:"tables,omitempty"`
}

// Run executes the pipeline; aggregation is skipped when there is no operator
// or the view is empty
func Run(t *facts.Table, sel selection.Selection, opt Options) Report {
	res := selection.Resolve(t, sel)
	rep := Report{
		Labels:  Labels{Operator: res.OperatorLabel, Regions: res.RegionLabel, Stations: res.StationLabel},
		Options: res.Options,
		Filter:  res.Filter,
	}
	if !res.Filter.Resolved() {
		rep.Status = StatusAwaitingInput
		return rep
	}
	v := view.Build(t, res.Filter)
	rep.Rows = v.Len()
	if v.Empty() {
		rep.Status = StatusNoData
		return rep
	}
	rep.Status = StatusOK
	rep.Tables = Aggregate(v, opt)
	return rep
}

// Aggregate computes every table from one non empty view. The distribution,
// weekday share and week change tables only see rows inside opt.Trend, and
// the distribution is further limited to the two compared years.
func Aggregate(v view.View, opt Options) *Tables {
	windowed := v.Where(func(r *facts.Record) bool { return opt.Trend.Contains(r.Date) })
	compared := windowed.Where(func(r *facts.Record) bool {
		return r.Year == opt.Compare.Previous || r.Year == opt.Compare.Current
	})
	return &Tables{
		Daily:        aggregate.DailyByYear(v),
		Trend:        aggregate.StationTrend(v, opt.Trend),
		Distribution: aggregate.MonthlyDistribution(compared),
		WeekdayShare: aggregate.WeekdayShare(windowed),
		WeekChange:   aggregate.WeekOverWeek(windowed, opt.Compare),
		CoastalShare: aggregate.CoastalShare(v),
		Rurality:     aggregate.RuralityShare(v),
	}
}
