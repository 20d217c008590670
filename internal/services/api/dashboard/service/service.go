// Package service runs dashboard request cycles against the loaded dataset
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"salesboard/internal/core/aggregate"
	"salesboard/internal/core/facts"
	"salesboard/internal/core/report"
	"salesboard/internal/core/selection"
	"salesboard/internal/core/view"
	perr "salesboard/internal/platform/errors"
	"salesboard/internal/platform/logger"
	pnet "salesboard/internal/platform/net"
	"salesboard/internal/services/api/dashboard/domain"
	factsdom "salesboard/internal/services/facts/domain"
)

// Service defines the dashboard service contract
type Service interface {
	domain.ServicePort
}

// Config holds the report defaults and display settings
type Config struct {
	Defaults report.Options
	// Lang picks number grouping for labels
	Lang     language.Tag
	Currency string
}

// Svc implements the dashboard service
type Svc struct {
	data  factsdom.ProviderPort
	cfg   Config
	p     *message.Printer
	newID func() string
	now   func() time.Time
}

// New constructs a dashboard service
func New(data factsdom.ProviderPort, cfg Config) *Svc {
	if data == nil {
		panic("dashboard.Service requires a non nil dataset provider")
	}
	if cfg.Lang == language.Und {
		cfg.Lang = language.BritishEnglish
	}
	if cfg.Currency == "" {
		cfg.Currency = "£"
	}
	return &Svc{
		data:  data,
		cfg:   cfg,
		p:     message.NewPrinter(cfg.Lang),
		newID: uuid.NewString,
		now:   time.Now,
	}
}

// Options resolves the dropdowns without building a view
func (s *Svc) Options(ctx context.Context, in domain.SelectionInput) (domain.OptionsResponse, error) {
	ds, err := s.data.Dataset(ctx)
	if err != nil {
		return domain.OptionsResponse{}, err
	}
	res := selection.Resolve(ds.Table, in.Selection())
	status := report.StatusOK
	if !res.Filter.Resolved() {
		status = report.StatusAwaitingInput
	}
	return domain.OptionsResponse{
		Status:  status,
		Labels:  report.Labels{Operator: res.OperatorLabel, Regions: res.RegionLabel, Stations: res.StationLabel},
		Options: res.Options,
	}, nil
}

// Report runs one full cycle; awaiting_input and no_data are not errors
func (s *Svc) Report(ctx context.Context, in domain.ReportInput) (domain.ReportResponse, error) {
	opt, err := s.reportOptions(in)
	if err != nil {
		return domain.ReportResponse{}, err
	}
	ds, err := s.data.Dataset(ctx)
	if err != nil {
		return domain.ReportResponse{}, err
	}

	id := s.newID()
	ctx = logger.WithRequest(ctx, pnet.RequestID(ctx), id)
	start := s.now()
	rep := report.Run(ds.Table, in.Selection(), opt)

	out := domain.ReportResponse{
		ID:      id,
		Status:  rep.Status,
		Labels:  rep.Labels,
		Options: rep.Options,
		Rows:    rep.Rows,
		Compare: opt.Compare,
		Trend: domain.TrendWindow{
			Start: opt.Trend.Start.Format(facts.DateLayout),
			End:   opt.Trend.End.Format(facts.DateLayout),
		},
		Tables: rep.Tables,
	}
	if rep.Tables != nil {
		out.WeekChange = make([]string, len(rep.Tables.WeekChange))
		for i, w := range rep.Tables.WeekChange {
			out.WeekChange[i] = s.pct(w.PctChange, true)
		}
		var total float64
		for _, d := range rep.Tables.Daily {
			total += d.Sales
		}
		out.Total = s.money(total)
	}

	logger.C(ctx).Debug().
		Str("status", string(rep.Status)).
		Str("operator", rep.Labels.Operator).
		Int("rows", rep.Rows).
		Dur("elapsed", s.now().Sub(start)).
		Msg("dashboard cycle")
	return out, nil
}

// Overview summarises the whole dataset for the default comparison years
func (s *Svc) Overview(ctx context.Context) (domain.OverviewResponse, error) {
	ds, err := s.data.Dataset(ctx)
	if err != nil {
		return domain.OverviewResponse{}, err
	}
	c := s.cfg.Defaults.Compare
	ov := aggregate.Overview(view.Of(ds.Table), ds.Table, ds.Registry, c)

	labels := domain.ScorecardLabels{
		Previous:  s.money(ov.Scorecards.Previous.Mean),
		Current:   s.money(ov.Scorecards.Current.Mean),
		PctChange: s.pct(ov.Scorecards.PctChange, true),
		Coverage:  s.pct(ov.Coverage, false),
	}
	if m := ov.Scorecards.Max; m != nil {
		labels.Max = m.Station + ": " + s.money(m.Mean)
	}
	if m := ov.Scorecards.Min; m != nil {
		labels.Min = m.Station + ": " + s.money(m.Mean)
	}
	return domain.OverviewResponse{
		Compare:       c,
		Scorecards:    ov.Scorecards,
		Labels:        labels,
		OperatorShare: ov.OperatorShare,
		Coverage:      ov.Coverage,
		Stations:      ov.Stations,
	}, nil
}

func (s *Svc) reportOptions(in domain.ReportInput) (report.Options, error) {
	opt := s.cfg.Defaults
	if c := in.CompareYears; c != nil {
		opt.Compare = aggregate.Comparison{Previous: c.Previous, Current: c.Current}
	}
	if w := in.TrendWindow; w != nil {
		win, err := ParseWindow(w.Start, w.End)
		if err != nil {
			return report.Options{}, perr.WithField(err, "trend_window")
		}
		opt.Trend = win
	}
	return opt, nil
}

// ParseWindow parses two YYYY-MM-DD dates into an inclusive window
func ParseWindow(start, end string) (aggregate.Window, error) {
	a, err := time.Parse(facts.DateLayout, start)
	if err != nil {
		return aggregate.Window{}, perr.InvalidArgf("bad start date %q", start)
	}
	b, err := time.Parse(facts.DateLayout, end)
	if err != nil {
		return aggregate.Window{}, perr.InvalidArgf("bad end date %q", end)
	}
	if b.Before(a) {
		return aggregate.Window{}, perr.InvalidArgf("window ends %s before it starts %s", end, start)
	}
	return aggregate.Window{Start: a, End: b}, nil
}

func (s *Svc) money(v float64) string {
	return s.p.Sprintf("%s%.2f", s.cfg.Currency, v)
}

// pct formats one decimal; signed adds a leading + to gains
func (s *Svc) pct(v float64, signed bool) string {
	if signed && v > 0 {
		return s.p.Sprintf("+%.1f%%", v)
	}
	return s.p.Sprintf("%.1f%%", v)
}
