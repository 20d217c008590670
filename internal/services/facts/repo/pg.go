package repo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"salesboard/internal/core/facts"
	"salesboard/internal/modkit/repokit"
	perr "salesboard/internal/platform/errors"
	"salesboard/internal/platform/store"
)

type (
	pg       struct{ q repokit.Queryer }
	pgBinder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Writable] { return pgBinder{} }

// Bind implements repokit.Binder
func (pgBinder) Bind(q repokit.Queryer) Writable { return &pg{q: q} }

const pgSchema = `
CREATE TABLE IF NOT EXISTS sales_facts (
	operator    text             NOT NULL,
	region      text             NOT NULL,
	station     text             NOT NULL,
	sale_date   date             NOT NULL,
	year        integer          NOT NULL,
	month       integer          NOT NULL,
	week_number integer          NOT NULL,
	week_day    text             NOT NULL,
	month_day   text             NOT NULL,
	sales       double precision NOT NULL CHECK (sales >= 0),
	coastal     boolean          NOT NULL DEFAULT false,
	rurality    text             NOT NULL DEFAULT '',
	lat         double precision NOT NULL DEFAULT 0,
	lon         double precision NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS sales_facts_hierarchy_idx ON sales_facts (operator, region, station);
CREATE TABLE IF NOT EXISTS stations (
	station text PRIMARY KEY
);
`

// EnsureSchema implements Writable
func (s *pg) EnsureSchema(ctx context.Context) error {
	if _, err := s.q.Exec(ctx, pgSchema); err != nil {
		return perr.FromPostgres(err, "pg: ensure schema")
	}
	return nil
}

// Truncate implements Writable
func (s *pg) Truncate(ctx context.Context) error {
	if _, err := s.q.Exec(ctx, `TRUNCATE sales_facts, stations`); err != nil {
		return perr.FromPostgres(err, "pg: truncate")
	}
	return nil
}

// LoadFacts implements Storage
func (s *pg) LoadFacts(ctx context.Context) ([]facts.Record, error) {
	const sql = `
SELECT operator, region, station, sale_date, year, month, week_number, week_day,
	month_day, sales, coastal, rurality, lat, lon
FROM sales_facts
ORDER BY sale_date, station
`
	out, err := store.Many(ctx, s.q, scanFact, sql)
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeValidation) {
			return nil, err
		}
		return nil, perr.FromPostgres(err, "pg: load facts")
	}
	return out, nil
}

func scanFact(row store.Row) (facts.Record, error) {
	var (
		r  facts.Record
		wd string
		d  time.Time
	)
	if err := row.Scan(
		&r.Operator, &r.Region, &r.Station, &d, &r.Year, &r.Month, &r.WeekNumber, &wd,
		&r.MonthDay, &r.Sales, &r.Coastal, &r.Rurality, &r.Lat, &r.Lon,
	); err != nil {
		return r, err
	}
	r.Date = facts.Day(d)
	wday, err := facts.ParseWeekday(wd)
	if err != nil {
		return r, perr.Wrapf(err, perr.ErrorCodeValidation, "pg: station %s on %s", r.Station, d.Format(facts.DateLayout))
	}
	r.Weekday = wday
	return r, nil
}

// LoadStations implements Storage
func (s *pg) LoadStations(ctx context.Context) ([]string, error) {
	out, err := store.Strings(ctx, s.q, `SELECT station FROM stations ORDER BY station`)
	if err != nil {
		return nil, perr.FromPostgres(err, "pg: load stations")
	}
	return out, nil
}

const factCols = 14

// WriteFacts implements Writable, one multi row insert per batch
func (s *pg) WriteFacts(ctx context.Context, xs []facts.Record) error {
	return chunks(xs, BatchSize, func(batch []facts.Record) error {
		var sb strings.Builder
		sb.WriteString(`INSERT INTO sales_facts
		(operator, region, station, sale_date, year, month, week_number, week_day,
		month_day, sales, coastal, rurality, lat, lon) VALUES `)

		args := make([]any, 0, len(batch)*factCols)
		for i, r := range batch {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteByte('(')
			for c := 0; c < factCols; c++ {
				if c > 0 {
					sb.WriteByte(',')
				}
				fmt.Fprintf(&sb, "$%d", i*factCols+c+1)
			}
			sb.WriteByte(')')
			args = append(args,
				r.Operator, r.Region, r.Station, r.Date, r.Year, r.Month, r.WeekNumber, r.Weekday.String(),
				r.MonthDay, r.Sales, r.Coastal, r.Rurality, r.Lat, r.Lon,
			)
		}
		if _, err := s.q.Exec(ctx, sb.String(), args...); err != nil {
			return perr.FromPostgres(err, "pg: insert facts")
		}
		return nil
	})
}

// WriteStations implements Writable; duplicates are ignored
func (s *pg) WriteStations(ctx context.Context, names []string) error {
	return chunks(names, BatchSize, func(batch []string) error {
		var sb strings.Builder
		sb.WriteString(`INSERT INTO stations (station) VALUES `)
		args := make([]any, 0, len(batch))
		for i, n := range batch {
			if i > 0 {
				sb.WriteByte(',')
			}
			fmt.Fprintf(&sb, "($%d)", i+1)
			args = append(args, n)
		}
		sb.WriteString(` ON CONFLICT (station) DO NOTHING`)
		if _, err := s.q.Exec(ctx, sb.String(), args...); err != nil {
			return perr.FromPostgres(err, "pg: insert stations")
		}
		return nil
	})
}

// BulkLoadHook relaxes commit durability for the seeding transaction only
func BulkLoadHook(ctx context.Context, q repokit.Queryer) error {
	if _, err := q.Exec(ctx, `SET LOCAL synchronous_commit TO OFF`); err != nil {
		return perr.FromPostgres(err, "pg: bulk load settings")
	}
	return nil
}
