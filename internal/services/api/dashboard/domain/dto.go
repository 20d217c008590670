// Package domain holds DTOs for dashboard http and service contracts
package domain

import (
	"strings"

	"salesboard/internal/core/aggregate"
	"salesboard/internal/core/facts"
	"salesboard/internal/core/report"
	"salesboard/internal/core/selection"
)

// OperatorInput picks every operator or one of them
type OperatorInput struct {
	All   bool   `json:"all,omitempty" example:"false"`
	Value string `json:"value,omitempty" validate:"omitempty,max=200" example:"Avanti West Coast"`
}

// ListInput picks every region or station, or some of them
type ListInput struct {
	All    bool     `json:"all,omitempty" example:"true"`
	Values []string `json:"values,omitempty" validate:"omitempty,max=500,dive,max=200"`
}

// SelectionInput is the dropdown state; a null operator means nothing chosen
type SelectionInput struct {
	Operator *OperatorInput `json:"operator"`
	Regions  *ListInput     `json:"regions"`
	Stations *ListInput     `json:"stations"`
}

// Selection converts the input; an operator with neither all nor a value
// counts as all operators
func (in SelectionInput) Selection() selection.Selection {
	var sel selection.Selection
	if in.Operator != nil {
		op := selection.AllOperators()
		if v := strings.TrimSpace(in.Operator.Value); !in.Operator.All && v != "" {
			op = selection.Operator(v)
		}
		sel.Operator = &op
	}
	sel.Regions = in.Regions.choice()
	sel.Stations = in.Stations.choice()
	return sel
}

func (l *ListInput) choice() selection.Choice {
	if l == nil || l.All {
		return selection.All()
	}
	return selection.Only(l.Values...)
}

// CompareYears overrides the comparison years
type CompareYears struct {
	Previous int `json:"previous" validate:"required,min=1900,max=2100" example:"2023"`
	Current  int `json:"current" validate:"required,min=1900,max=2100" example:"2024"`
}

// TrendWindow overrides the station trend window, both ends inclusive
type TrendWindow struct {
	Start string `json:"start" validate:"required,datetime=2006-01-02" example:"2023-01-01"`
	End   string `json:"end" validate:"required,datetime=2006-01-02" example:"2024-12-01"`
}

// ReportInput is a selection plus optional report options
type ReportInput struct {
	SelectionInput
	CompareYears *CompareYears `json:"compare_years,omitempty"`
	TrendWindow  *TrendWindow  `json:"trend_window,omitempty"`
}

// OptionsResponse feeds the three dropdowns
type OptionsResponse struct {
	Status  report.Status     `json:"status" example:"ok"`
	Labels  report.Labels     `json:"labels"`
	Options selection.Options `json:"options"`
}

// ReportResponse is one full dashboard refresh
type ReportResponse struct {
	ID      string               `json:"id" example:"0b7e7d2c-5b5e-4a53-9a43-1f0a0f4b9a11"`
	Status  report.Status        `json:"status" example:"ok"`
	Labels  report.Labels        `json:"labels"`
	Options selection.Options    `json:"options"`
	Rows    int                  `json:"rows" example:"7300"`
	Compare aggregate.Comparison `json:"compare_years"`
	Trend   TrendWindow          `json:"trend_window"`
	Tables  *report.Tables       `json:"tables,omitempty"`
	// WeekChange holds one display label per week_change row, e.g. "+3.5%"
	WeekChange []string `json:"week_change_labels,omitempty"`
	// Total is the view's total sales formatted as currency
	Total string `json:"total_sales,omitempty" example:"£1,234,567.00"`
}

// ScorecardLabels are the scorecard figures formatted for display
type ScorecardLabels struct {
	Previous  string `json:"previous" example:"£1,024.50"`
	Current   string `json:"current" example:"£1,100.00"`
	PctChange string `json:"pct_change" example:"+7.4%"`
	Max       string `json:"max_station,omitempty" example:"Euston: £9,800.00"`
	Min       string `json:"min_station,omitempty" example:"Penrith: £12.00"`
	Coverage  string `json:"coverage" example:"87.5%"`
}

// OverviewResponse is the headline panel over the whole dataset
type OverviewResponse struct {
	Compare       aggregate.Comparison         `json:"compare_years"`
	Scorecards    aggregate.Scorecards         `json:"scorecards"`
	Labels        ScorecardLabels              `json:"labels"`
	OperatorShare []aggregate.OperatorShareRow `json:"operator_share"`
	Coverage      float64                      `json:"coverage"`
	Stations      []facts.StationPoint         `json:"stations"`
}
