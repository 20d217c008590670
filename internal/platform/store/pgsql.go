package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgxQuerier is what *pgxpool.Pool and pgx.Tx have in common
type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// pgBeginner starts transactions; *pgxpool.Pool satisfies it
type pgBeginner interface {
	pgxQuerier
	Begin(ctx context.Context) (pgx.Tx, error)
}

type pgQuerier struct{ q pgxQuerier }

func (p pgQuerier) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	return p.q.Exec(ctx, sql, args...)
}

func (p pgQuerier) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	rs, err := p.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return pgRows{rs}, nil
}

func (p pgQuerier) QueryRow(ctx context.Context, sql string, args ...any) Row {
	return p.q.QueryRow(ctx, sql, args...)
}

// PG is the TxRunner over a pgx pool
type PG struct {
	pgQuerier
	db    pgBeginner
	close func()
}

var (
	_ TxRunner = (*PG)(nil)
	_ Pinger   = (*PG)(nil)
)

// NewPG wraps an open pool
func NewPG(pool *pgxpool.Pool) *PG {
	return &PG{pgQuerier: pgQuerier{pool}, db: pool, close: pool.Close}
}

// Tx runs fn in a transaction, rolling back when fn or the commit fails
func (p *PG) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	tx, err := p.db.Begin(ctx)
	if err != nil {
		return err
	}
	if err := fn(pgQuerier{tx}); err != nil {
		return errors.Join(err, ignoreClosed(tx.Rollback(ctx)))
	}
	return tx.Commit(ctx)
}

// Ping runs a trivial query
func (p *PG) Ping(ctx context.Context) error {
	var one int
	return p.QueryRow(ctx, "SELECT 1").Scan(&one)
}

// Close closes the pool
func (p *PG) Close() error {
	if p.close != nil {
		p.close()
	}
	return nil
}

func ignoreClosed(err error) error {
	if errors.Is(err, pgx.ErrTxClosed) {
		return nil
	}
	return err
}

type pgRows struct{ pgx.Rows }

func (r pgRows) Columns() []string {
	fds := r.FieldDescriptions()
	out := make([]string, len(fds))
	for i, fd := range fds {
		out[i] = fd.Name
	}
	return out
}
