package selection

import (
	"slices"
	"testing"
	"time"

	"salesboard/internal/core/facts"
)

func row(op, region, station string, sales float64) facts.Record {
	d := time.Date(2023, 3, 6, 0, 0, 0, 0, time.UTC)
	c := facts.CalendarOf(d)
	return facts.Record{
		Operator: op, Region: region, Station: station, Date: d,
		Year: c.Year, Month: c.Month, WeekNumber: c.WeekNumber, Weekday: c.Weekday, MonthDay: c.MonthDay,
		Sales: sales,
	}
}

// A serves R1; B serves R1 and R2
func fixture() *facts.Table {
	return facts.MustTable([]facts.Record{
		row("A", "R1", "S1", 10),
		row("A", "R1", "S2", 20),
		row("B", "R1", "S3", 5),
		row("B", "R2", "S4", 7),
		row("B", "R2", "S5", 1),
	})
}

func ptr(o OperatorChoice) *OperatorChoice { return &o }

func TestResolveAwaitingOperator(t *testing.T) {
	t.Parallel()

	res := Resolve(fixture(), Selection{})
	if res.Filter.Resolved() {
		t.Fatalf("filter must be unresolved without an operator")
	}
	if len(res.Options.Operators) != 3 || !res.Options.Operators[0].All || res.Options.Operators[0].Label != LabelAllOperators {
		t.Fatalf("operator options = %+v", res.Options.Operators)
	}
	if res.Options.Regions != nil || res.Options.Stations != nil {
		t.Fatalf("lower levels must stay empty: %+v", res.Options)
	}
}

func TestResolveCandidatesFollowOperator(t *testing.T) {
	t.Parallel()
	tbl := fixture()

	a := Resolve(tbl, Selection{Operator: ptr(Operator("A"))})
	if !slices.Equal(a.Filter.Regions, []string{"R1"}) {
		t.Fatalf("operator A regions = %v", a.Filter.Regions)
	}
	if !slices.Equal(a.Filter.Stations, []string{"S1", "S2"}) {
		t.Fatalf("operator A stations = %v", a.Filter.Stations)
	}

	all := Resolve(tbl, Selection{Operator: ptr(AllOperators())})
	if !slices.Equal(all.Filter.Regions, []string{"R1", "R2"}) {
		t.Fatalf("all operators regions = %v", all.Filter.Regions)
	}
	if all.OperatorLabel != LabelAllOperators || all.RegionLabel != LabelAllRegions {
		t.Fatalf("labels = %q %q", all.OperatorLabel, all.RegionLabel)
	}
	if got := all.Options.Regions; len(got) != 3 || got[1].Value != "R1" || got[2].Value != "R2" {
		t.Fatalf("region options = %+v", got)
	}
}

func TestResolveAllSubstitutionIdempotent(t *testing.T) {
	t.Parallel()
	tbl := fixture()

	for _, op := range []OperatorChoice{AllOperators(), Operator("A"), Operator("B")} {
		base := Resolve(tbl, Selection{Operator: ptr(op)})
		empty := Resolve(tbl, Selection{Operator: ptr(op), Regions: Only(), Stations: Only()})
		full := Resolve(tbl, Selection{
			Operator: ptr(op),
			Regions:  Only(base.Filter.Regions...),
			Stations: Only(base.Filter.Stations...),
		})
		for _, other := range []Resolution{empty, full} {
			if !slices.Equal(base.Filter.Regions, other.Filter.Regions) || !slices.Equal(base.Filter.Stations, other.Filter.Stations) {
				t.Fatalf("%s: %+v != %+v", op.Label(), base.Filter, other.Filter)
			}
		}
	}
}

func TestResolveNeverEmpty(t *testing.T) {
	t.Parallel()
	tbl := fixture()

	for _, op := range []OperatorChoice{AllOperators(), Operator("A"), Operator("B")} {
		for _, regions := range []Choice{All(), Only("R1"), Only("R2"), Only("nope")} {
			res := Resolve(tbl, Selection{Operator: ptr(op), Regions: regions, Stations: Only("S9")})
			if len(res.Filter.Regions) == 0 || len(res.Filter.Stations) == 0 {
				t.Fatalf("%s/%v resolved empty: %+v", op.Label(), regions.Values(), res.Filter)
			}
		}
	}
}

func TestResolveSpecificPicks(t *testing.T) {
	t.Parallel()

	res := Resolve(fixture(), Selection{
		Operator: ptr(Operator("B")),
		Regions:  Only("R2"),
		Stations: Only("S5", "S4"),
	})
	if res.RegionLabel != "R2" || res.StationLabel != "S4, S5" {
		t.Fatalf("labels = %q %q", res.RegionLabel, res.StationLabel)
	}
	if !slices.Equal(res.Filter.Stations, []string{"S4", "S5"}) {
		t.Fatalf("stations = %v", res.Filter.Stations)
	}
	if got := res.Options.Stations; len(got) != 3 {
		t.Fatalf("station options should only offer R2 stations: %+v", got)
	}
}

func TestResolveDropsStalePicks(t *testing.T) {
	t.Parallel()

	// R2 was picked under B, then the operator switched to A
	res := Resolve(fixture(), Selection{Operator: ptr(Operator("A")), Regions: Only("R2")})
	if !slices.Equal(res.Filter.Regions, []string{"R1"}) || res.RegionLabel != LabelAllRegions {
		t.Fatalf("stale region not replaced: %+v %q", res.Filter.Regions, res.RegionLabel)
	}

	res = Resolve(fixture(), Selection{Operator: ptr(Operator("B")), Regions: Only("R1", "R2"), Stations: Only("S1", "S3")})
	if !slices.Equal(res.Filter.Stations, []string{"S3"}) || res.StationLabel != "S3" {
		t.Fatalf("partial stale picks: %+v %q", res.Filter.Stations, res.StationLabel)
	}
}

func TestResolveUnknownOperator(t *testing.T) {
	t.Parallel()

	res := Resolve(fixture(), Selection{Operator: ptr(Operator("Z"))})
	if !res.Filter.Resolved() || len(res.Filter.Regions) != 0 || len(res.Filter.Stations) != 0 {
		t.Fatalf("unknown operator should resolve to empty candidate sets: %+v", res.Filter)
	}
}

func TestChoice(t *testing.T) {
	t.Parallel()

	if !All().IsAll() || !Only().IsAll() || !Only(" ", "").IsAll() {
		t.Fatalf("empty choices must be All")
	}
	c := Only("b", "a", "b")
	if c.IsAll() || !slices.Equal(c.Values(), []string{"a", "b"}) {
		t.Fatalf("Only = %v", c.Values())
	}
	if !Operator("").IsAll() || Operator("X").Matches("Y") || !AllOperators().Matches("Y") {
		t.Fatalf("operator choice matching wrong")
	}
}
