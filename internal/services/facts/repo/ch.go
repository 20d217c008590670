package repo

import (
	"context"
	"time"

	"salesboard/internal/core/facts"
	perr "salesboard/internal/platform/errors"
	"salesboard/internal/platform/store"
)

// CH stores the dataset in ClickHouse
type CH struct {
	db store.Clickhouse
}

// NewCH wraps the clickhouse seam
func NewCH(db store.Clickhouse) *CH { return &CH{db: db} }

var chSchema = []string{
	`CREATE TABLE IF NOT EXISTS sales_facts (
		operator    LowCardinality(String),
		region      LowCardinality(String),
		station     String,
		sale_date   Date,
		year        Int32,
		month       Int32,
		week_number Int32,
		week_day    LowCardinality(String),
		month_day   String,
		sales       Float64,
		coastal     Bool,
		rurality    LowCardinality(String),
		lat         Float64,
		lon         Float64
	) ENGINE = MergeTree ORDER BY (operator, region, station, sale_date)`,
	`CREATE TABLE IF NOT EXISTS stations (station String) ENGINE = ReplacingMergeTree ORDER BY station`,
}

// EnsureSchema implements Writable
func (c *CH) EnsureSchema(ctx context.Context) error {
	for _, ddl := range chSchema {
		if err := c.db.Exec(ctx, ddl); err != nil {
			return perr.Wrap(err, perr.ErrorCodeDB, "ch: ensure schema")
		}
	}
	return nil
}

// Truncate implements Writable
func (c *CH) Truncate(ctx context.Context) error {
	for _, t := range []string{"sales_facts", "stations"} {
		if err := c.db.Exec(ctx, "TRUNCATE TABLE IF EXISTS "+t); err != nil {
			return perr.Wrapf(err, perr.ErrorCodeDB, "ch: truncate %s", t)
		}
	}
	return nil
}

// LoadFacts implements Storage
func (c *CH) LoadFacts(ctx context.Context) ([]facts.Record, error) {
	const sql = `
SELECT operator, region, station, sale_date, year, month, week_number, week_day,
	month_day, sales, coastal, rurality, lat, lon
FROM sales_facts
ORDER BY sale_date, station`
	rows, err := c.db.Query(ctx, sql)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "ch: load facts")
	}
	defer rows.Close()

	var out []facts.Record
	for rows.Next() {
		var (
			r                 facts.Record
			d                 time.Time
			year, month, week int32
			wd                string
		)
		if err := rows.Scan(
			&r.Operator, &r.Region, &r.Station, &d, &year, &month, &week, &wd,
			&r.MonthDay, &r.Sales, &r.Coastal, &r.Rurality, &r.Lat, &r.Lon,
		); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeDB, "ch: scan fact")
		}
		r.Date = facts.Day(d)
		r.Year, r.Month, r.WeekNumber = int(year), int(month), int(week)
		if r.Weekday, err = facts.ParseWeekday(wd); err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeValidation, "ch: station %s on %s", r.Station, d.Format(facts.DateLayout))
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// LoadStations implements Storage
func (c *CH) LoadStations(ctx context.Context) ([]string, error) {
	rows, err := c.db.Query(ctx, `SELECT DISTINCT station FROM stations ORDER BY station`)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "ch: load stations")
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeDB, "ch: scan station")
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// WriteFacts implements Writable with one native batch per chunk
func (c *CH) WriteFacts(ctx context.Context, xs []facts.Record) error {
	return chunks(xs, BatchSize*10, func(batch []facts.Record) error {
		data := make([][]any, 0, len(batch))
		for _, r := range batch {
			data = append(data, []any{
				r.Operator, r.Region, r.Station, r.Date, int32(r.Year), int32(r.Month), int32(r.WeekNumber),
				r.Weekday.String(), r.MonthDay, r.Sales, r.Coastal, r.Rurality, r.Lat, r.Lon,
			})
		}
		if err := c.db.Insert(ctx, "sales_facts", data); err != nil {
			return perr.Wrap(err, perr.ErrorCodeDB, "ch: insert facts")
		}
		return nil
	})
}

// WriteStations implements Writable
func (c *CH) WriteStations(ctx context.Context, names []string) error {
	data := make([][]any, 0, len(names))
	for _, n := range names {
		data = append(data, []any{n})
	}
	if err := c.db.Insert(ctx, "stations", data); err != nil {
		return perr.Wrap(err, perr.ErrorCodeDB, "ch: insert stations")
	}
	return nil
}
