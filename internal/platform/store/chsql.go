package store

import (
	"context"

	"salesboard/internal/platform/store/ch"
)

// CH adapts *ch.CH to the Clickhouse seam
type CH struct{ c *ch.CH }

var (
	_ Clickhouse = (*CH)(nil)
	_ Pinger     = (*CH)(nil)
)

// NewCH wraps an open client
func NewCH(c *ch.CH) *CH { return &CH{c: c} }

func (a *CH) Insert(ctx context.Context, table string, data any) error {
	return a.c.Insert(ctx, table, data)
}

func (a *CH) Exec(ctx context.Context, sql string, args ...any) error {
	return a.c.Exec(ctx, sql, args...)
}

func (a *CH) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	rs, err := a.c.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return chRows{rs}, nil
}

func (a *CH) Ping(ctx context.Context) error { return a.c.Ping(ctx) }
func (a *CH) Close() error                   { return a.c.Close() }

// chRows drops the Close error to match Rows
type chRows struct{ ch.Rows }

func (r chRows) Close() { _ = r.Rows.Close() }
