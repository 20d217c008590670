// Package repo loads and stores the sales facts and the station list
package repo

import (
	"context"

	"salesboard/internal/core/facts"
)

// Storage reads the raw dataset
type Storage interface {
	LoadFacts(ctx context.Context) ([]facts.Record, error)
	LoadStations(ctx context.Context) ([]string, error)
}

// Writable is a Storage that can also be seeded
type Writable interface {
	Storage
	EnsureSchema(ctx context.Context) error
	Truncate(ctx context.Context) error
	WriteFacts(ctx context.Context, rows []facts.Record) error
	WriteStations(ctx context.Context, names []string) error
}

// BatchSize bounds rows per insert statement
const BatchSize = 1000

func chunks[T any](xs []T, n int, fn func([]T) error) error {
	for len(xs) > 0 {
		k := min(n, len(xs))
		if err := fn(xs[:k]); err != nil {
			return err
		}
		xs = xs[k:]
	}
	return nil
}
