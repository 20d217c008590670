// Package ch provides a clickhouse client
package ch

import (
	"context"
	"errors"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"salesboard/internal/platform/logger"
)

// Config configures clickhouse client
type Config struct {
	URL        string
	ClientName string
	ClientTag  string
	LogSQL     bool
	Log        logger.Logger
}

// Rows is the minimal result set iteration for ch
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
	Columns() []string
}

// Conn is the subset of driver.Conn the client uses
type Conn interface {
	Query(ctx context.Context, query string, args ...any) (driver.Rows, error)
	Exec(ctx context.Context, query string, args ...any) error
	PrepareBatch(ctx context.Context, query string, opts ...driver.PrepareBatchOption) (driver.Batch, error)
	Ping(ctx context.Context) error
	Close() error
}

// CH wraps a clickhouse-go connection
type CH struct {
	conn   Conn
	log    logger.Logger
	logSQL bool
}

// Open parses the dsn and opens a native connection tagged with client info
func Open(_ context.Context, cfg Config) (*CH, error) {
	if cfg.URL == "" {
		return nil, errors.New("ch: empty url")
	}
	opts, err := clickhouse.ParseDSN(cfg.URL)
	if err != nil {
		return nil, err
	}
	opts.ClientInfo = BuildClientInfo(cfg.ClientName, cfg.ClientTag)
	conn, err := clickhouse.Open(opts)
	if err != nil {
		return nil, err
	}
	return New(conn, cfg), nil
}

// New wraps an existing connection, tests pass fakes here
func New(conn Conn, cfg Config) *CH {
	return &CH{conn: conn, log: cfg.Log, logSQL: cfg.LogSQL}
}

// Insert appends rows to table in one batch; data must be [][]any in column order
func (c *CH) Insert(ctx context.Context, table string, data any) error {
	rows, ok := data.([][]any)
	if !ok {
		return errors.New("ch: unsupported insert shape (want [][]any)")
	}
	if len(rows) == 0 {
		return nil
	}
	start := time.Now()
	b, err := c.conn.PrepareBatch(ctx, "INSERT INTO "+table)
	if err != nil {
		return err
	}
	for _, r := range rows {
		if err := b.Append(r...); err != nil {
			_ = b.Abort()
			return err
		}
	}
	if err := b.Send(); err != nil {
		return err
	}
	c.trace("INSERT INTO "+table, start, len(rows))
	return nil
}

// Exec runs a statement that returns no rows
func (c *CH) Exec(ctx context.Context, sql string, args ...any) error {
	start := time.Now()
	err := c.conn.Exec(ctx, sql, args...)
	c.trace(sql, start, 0)
	return err
}

// Query runs a query and returns ch.Rows
func (c *CH) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	start := time.Now()
	r, err := c.conn.Query(ctx, sql, args...)
	c.trace(sql, start, 0)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Ping checks the server answers
func (c *CH) Ping(ctx context.Context) error { return c.conn.Ping(ctx) }

// Close closes resources
func (c *CH) Close() error { return c.conn.Close() }

func (c *CH) trace(sql string, start time.Time, n int) {
	if !c.logSQL {
		return
	}
	ev := c.log.Debug().Str("db", "clickhouse").Str("sql", sql).Dur("elapsed", time.Since(start))
	if n > 0 {
		ev = ev.Int("rows", n)
	}
	ev.Msg("ch")
}
