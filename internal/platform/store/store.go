// Package store opens the optional databases the fact store reads from and seeds
package store

import (
	"context"
	"errors"
	"fmt"

	"salesboard/internal/platform/logger"
	"salesboard/internal/platform/store/ch"
	"salesboard/internal/platform/store/pg"
)

// AppName tags every database session this process opens
const AppName = "salesboard"

// Store holds whichever backends Open enabled; the rest stay nil
type Store struct {
	Log logger.Logger
	PG  TxRunner
	CH  Clickhouse
}

// Row is anything that scans one row
type Row interface {
	Scan(dest ...any) error
}

// Rows iterates a result set
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
	Columns() []string
}

// CommandTag reports what a statement did
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier is the sql surface repos are written against
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner is a RowQuerier that can also run fn inside one transaction
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Clickhouse is the columnar seam: batch inserts and plain queries
type Clickhouse interface {
	Insert(ctx context.Context, table string, data any) error
	Exec(ctx context.Context, sql string, args ...any) error
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	Close() error
}

// Pinger reports readiness
type Pinger interface{ Ping(context.Context) error }

// Option adjusts the Store before any backend opens
type Option func(*Store)

// WithLogger sets the logger handed to the backends
func WithLogger(l logger.Logger) Option { return func(s *Store) { s.Log = l } }

// Open connects the backends cfg enables
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		o(s)
	}

	if cfg.PG.Enabled {
		pool, err := pg.Open(ctx, pg.Config{
			URL:      cfg.PG.URL,
			AppName:  AppName,
			MaxConns: cfg.PG.MaxConns,
			LogSQL:   cfg.PG.LogSQL,
			Slow:     cfg.PG.Slow,
			Retries:  cfg.PG.Retries,
		}, s.Log)
		if err != nil {
			return nil, err
		}
		s.PG = NewPG(pool)
	}

	if cfg.CH.Enabled {
		c, err := ch.Open(ctx, ch.Config{
			URL:        cfg.CH.URL,
			ClientName: AppName,
			ClientTag:  cfg.CH.Tag,
			LogSQL:     cfg.CH.LogSQL,
			Log:        s.Log,
		})
		if err != nil {
			_ = s.Close(ctx)
			return nil, err
		}
		s.CH = NewCH(c)
	}

	return s, nil
}

// Guard pings every open backend and joins the failures
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("store: nil")
	}
	var errs []error
	if p, ok := s.PG.(Pinger); ok {
		if err := p.Ping(ctx); err != nil {
			errs = append(errs, fmt.Errorf("pg: %w", err))
		}
	}
	if p, ok := s.CH.(Pinger); ok {
		if err := p.Ping(ctx); err != nil {
			errs = append(errs, fmt.Errorf("ch: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Close releases every open backend
func (s *Store) Close(context.Context) error {
	var errs []error
	if s.CH != nil {
		errs = append(errs, s.CH.Close())
	}
	if c, ok := s.PG.(interface{ Close() error }); ok {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
