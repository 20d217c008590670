package pg

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"salesboard/internal/platform/logger"
)

// Tracer logs every statement through pgx's query hooks
// arguments are counted, not printed; a fact batch carries thousands
type Tracer struct {
	log  logger.Logger
	slow time.Duration
}

var _ pgx.QueryTracer = (*Tracer)(nil)

// NewTracer returns a tracer that warns at or above slow; zero disables the warning
// statements log at debug even when the process logger is quieter
func NewTracer(log logger.Logger, slow time.Duration) *Tracer {
	return &Tracer{log: log.Level(zerolog.DebugLevel).With().Str("component", "pg").Logger(), slow: slow}
}

type startKey struct{}

type started struct {
	sql  string
	args int
	at   time.Time
}

// TraceQueryStart implements pgx.QueryTracer
func (t *Tracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, d pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, startKey{}, started{sql: d.SQL, args: len(d.Args), at: time.Now()})
}

// TraceQueryEnd implements pgx.QueryTracer
func (t *Tracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, d pgx.TraceQueryEndData) {
	s, ok := ctx.Value(startKey{}).(started)
	if !ok {
		return
	}
	elapsed := time.Since(s.at)
	slow := t.slow > 0 && elapsed >= t.slow

	ev := t.log.Debug()
	switch {
	case d.Err != nil:
		ev = t.log.Error().Err(d.Err)
	case slow:
		ev = t.log.Warn()
	}
	ev.Str("sql", Compact(s.sql)).
		Int("args", s.args).
		Int64("rows", d.CommandTag.RowsAffected()).
		Dur("elapsed", elapsed).
		Bool("slow", slow).
		Msg("pg query")
}

// Compact folds runs of whitespace so multi line statements log on one line
func Compact(sql string) string {
	return strings.Join(strings.Fields(sql), " ")
}
