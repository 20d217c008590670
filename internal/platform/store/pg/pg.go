// Package pg opens the pgx pool behind the store's sql seam
package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"salesboard/internal/platform/logger"
)

// Config configures the pool
type Config struct {
	URL      string
	AppName  string
	MaxConns int32
	LogSQL   bool
	Slow     time.Duration
	Retries  int
}

const (
	pingTimeout = 3 * time.Second
	backoffMin  = 150 * time.Millisecond
	backoffMax  = 2 * time.Second
)

// PoolConfig parses the url and applies pool size, application name and tracing
func PoolConfig(cfg Config, log logger.Logger) (*pgxpool.Config, error) {
	pc, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("pg: parse url: %w", err)
	}
	if cfg.MaxConns > 0 {
		pc.MaxConns = cfg.MaxConns
	}
	if cfg.AppName != "" {
		pc.ConnConfig.RuntimeParams["application_name"] = cfg.AppName
	}
	if cfg.LogSQL {
		pc.ConnConfig.Tracer = NewTracer(log, cfg.Slow)
	}
	return pc, nil
}

// Open builds the pool and waits until the server answers a ping
// it retries with capped exponential backoff up to cfg.Retries attempts
func Open(ctx context.Context, cfg Config, log logger.Logger) (*pgxpool.Pool, error) {
	pc, err := PoolConfig(cfg, log)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, err
	}

	attempts := max(cfg.Retries, 1)
	backoff := backoffMin
	var last error
	for i := 1; i <= attempts; i++ {
		pctx, cancel := context.WithTimeout(ctx, pingTimeout)
		last = pool.Ping(pctx)
		cancel()
		if last == nil {
			return pool, nil
		}
		if ctx.Err() != nil {
			pool.Close()
			return nil, ctx.Err()
		}
		if i == attempts {
			break
		}
		log.Warn().Err(last).Int("attempt", i).Dur("retry_in", backoff).Msg("postgres not ready")
		select {
		case <-ctx.Done():
			pool.Close()
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, backoffMax)
	}

	pool.Close()
	return nil, fmt.Errorf("pg: ping failed after %d attempts: %w", attempts, last)
}
