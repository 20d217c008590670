package domain

import (
	"context"

	"salesboard/internal/core/facts"
)

// ProviderPort hands out the process wide dataset, loading it on first use
type ProviderPort interface {
	Dataset(ctx context.Context) (Dataset, error)
}

// LoaderPort reloads the dataset from its source
type LoaderPort interface {
	Load(ctx context.Context) (Dataset, error)
}

// WriterPort replaces the stored facts and stations, used for seeding
type WriterPort interface {
	EnsureSchema(ctx context.Context) error
	Replace(ctx context.Context, rows []facts.Record, stations []string) error
}
