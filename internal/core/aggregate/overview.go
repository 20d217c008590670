package aggregate

import (
	"cmp"
	"math"
	"slices"
	"time"

	"salesboard/internal/core/facts"
	"salesboard/internal/core/ratio"
	"salesboard/internal/core/view"
)

// YearScore is the mean and sample standard deviation of a year's daily
// means, where a daily mean is the average row sales on one date
type YearScore struct {
	Year   int     `json:"year"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Days   int     `json:"days"`
}

// StationScore is a station's mean row sales within one year
type StationScore struct {
	Station string  `json:"station"`
	Mean    float64 `json:"mean"`
}

// Scorecards compares the two years and names the best and worst station
// of the current year; Max and Min are nil when the current year has no rows
type Scorecards struct {
	Previous  YearScore     `json:"previous"`
	Current   YearScore     `json:"current"`
	PctChange float64       `json:"pct_change"`
	Max       *StationScore `json:"max_station,omitempty"`
	Min       *StationScore `json:"min_station,omitempty"`
}

// OperatorShareRow is an operator's share of one year's sales
type OperatorShareRow struct {
	Year     int     `json:"year"`
	Operator string  `json:"operator"`
	Sales    float64 `json:"sales"`
	Pct      float64 `json:"pct"`
}

// OverviewTables is the headline panel over a view
type OverviewTables struct {
	Scorecards    Scorecards           `json:"scorecards"`
	OperatorShare []OperatorShareRow   `json:"operator_share"`
	Coverage      float64              `json:"coverage"`
	Stations      []facts.StationPoint `json:"stations"`
}

// Overview builds scorecards and operator share for the comparison years,
// coverage of the registry by t and the station map points of t
func Overview(v view.View, t *facts.Table, reg *facts.StationRegistry, c Comparison) OverviewTables {
	return OverviewTables{
		Scorecards:    ScorecardsOf(v, c),
		OperatorShare: OperatorShare(v, c),
		Coverage:      reg.Coverage(t),
		Stations:      t.StationPoints(),
	}
}

// ScorecardsOf computes the headline figures for the comparison
func ScorecardsOf(v view.View, c Comparison) Scorecards {
	prev := yearScore(v, c.Previous)
	cur := yearScore(v, c.Current)
	sc := Scorecards{
		Previous:  prev,
		Current:   cur,
		PctChange: ratio.Change(cur.Mean, prev.Mean),
	}
	stations := StationMeans(v, c.Current)
	if len(stations) > 0 {
		hi := slices.MaxFunc(stations, func(a, b StationScore) int {
			if x := cmp.Compare(a.Mean, b.Mean); x != 0 {
				return x
			}
			// equal means: the alphabetically first station wins
			return cmp.Compare(b.Station, a.Station)
		})
		lo := slices.MinFunc(stations, func(a, b StationScore) int {
			if x := cmp.Compare(a.Mean, b.Mean); x != 0 {
				return x
			}
			return cmp.Compare(a.Station, b.Station)
		})
		sc.Max, sc.Min = &hi, &lo
	}
	return sc
}

func yearScore(v view.View, year int) YearScore {
	type acc struct {
		sum float64
		n   int
	}
	byDate := make(map[time.Time]*acc)
	v.Each(func(r *facts.Record) {
		if r.Year != year {
			return
		}
		a, ok := byDate[r.Date]
		if !ok {
			a = &acc{}
			byDate[r.Date] = a
		}
		a.sum += r.Sales
		a.n++
	})
	means := make([]float64, 0, len(byDate))
	for _, a := range byDate {
		means = append(means, a.sum/float64(a.n))
	}
	slices.Sort(means)
	mean, std := meanStd(means)
	return YearScore{Year: year, Mean: mean, StdDev: std, Days: len(means)}
}

// meanStd returns the mean and the n-1 standard deviation; std is 0 below two samples
func meanStd(xs []float64) (float64, float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	mean := sum / float64(len(xs))
	if len(xs) < 2 {
		return mean, 0
	}
	var ss float64
	for _, x := range xs {
		d := x - mean
		ss += d * d
	}
	return mean, math.Sqrt(ss / float64(len(xs)-1))
}

// StationMeans is mean row sales per station for one year, sorted by station
func StationMeans(v view.View, year int) []StationScore {
	type acc struct {
		sum float64
		n   int
	}
	by := make(map[string]*acc)
	v.Each(func(r *facts.Record) {
		if r.Year != year {
			return
		}
		a, ok := by[r.Station]
		if !ok {
			a = &acc{}
			by[r.Station] = a
		}
		a.sum += r.Sales
		a.n++
	})
	out := make([]StationScore, 0, len(by))
	for s, a := range by {
		out = append(out, StationScore{Station: s, Mean: a.sum / float64(a.n)})
	}
	slices.SortFunc(out, func(a, b StationScore) int { return cmp.Compare(a.Station, b.Station) })
	return out
}

// OperatorShare is each operator's share of the year total for both
// comparison years, ordered by year then operator
func OperatorShare(v view.View, c Comparison) []OperatorShareRow {
	type yearOp struct {
		year int
		op   string
	}
	sums := make(map[yearOp]float64)
	totals := make(map[int]float64)
	v.Each(func(r *facts.Record) {
		if r.Year != c.Previous && r.Year != c.Current {
			return
		}
		sums[yearOp{r.Year, r.Operator}] += r.Sales
		totals[r.Year] += r.Sales
	})
	out := make([]OperatorShareRow, 0, len(sums))
	for k, s := range sums {
		out = append(out, OperatorShareRow{Year: k.year, Operator: k.op, Sales: s, Pct: ratio.Percent(s, totals[k.year])})
	}
	slices.SortFunc(out, func(a, b OperatorShareRow) int {
		if x := cmp.Compare(a.Year, b.Year); x != 0 {
			return x
		}
		return cmp.Compare(a.Operator, b.Operator)
	})
	return out
}
