// Package service loads the fact store once per process and seeds backends
package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"salesboard/internal/core/facts"
	"salesboard/internal/modkit/repokit"
	perr "salesboard/internal/platform/errors"
	"salesboard/internal/platform/logger"
	dom "salesboard/internal/services/facts/domain"
	"salesboard/internal/services/facts/repo"
)

// Service implements dom.ProviderPort, dom.LoaderPort and, for writable
// backends, dom.WriterPort
type Service struct {
	source  dom.Source
	storage repo.Storage
	// runs fn with a Writable bound to one transaction where the backend has them
	tx  func(ctx context.Context, fn func(repo.Writable) error) error
	log logger.Logger
	now func() time.Time

	mu  sync.Mutex
	cur atomic.Pointer[dom.Dataset]
}

// NewCSV reads from the processed sales file and station list
func NewCSV(storage *repo.CSV, log logger.Logger) *Service {
	return &Service{source: dom.SourceCSV, storage: storage, log: log, now: time.Now}
}

// NewPG reads and writes through postgres; writes share one transaction
func NewPG(db repokit.TxRunner, binder repokit.Binder[repo.Writable], log logger.Logger) *Service {
	if db == nil {
		panic("facts.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("facts.Service requires a non nil Repo binder")
	}
	return &Service{
		source:  dom.SourcePostgres,
		storage: binder.Bind(db),
		tx: func(ctx context.Context, fn func(repo.Writable) error) error {
			return repokit.WithTx(ctx, db, func(q repokit.Queryer) error {
				return fn(repokit.MustBind(binder, q))
			})
		},
		log: log,
		now: time.Now,
	}
}

// NewCH reads and writes through clickhouse
func NewCH(storage *repo.CH, log logger.Logger) *Service {
	if storage == nil {
		panic("facts.Service requires a non nil clickhouse repo")
	}
	return &Service{
		source:  dom.SourceClickhouse,
		storage: storage,
		tx: func(ctx context.Context, fn func(repo.Writable) error) error {
			return fn(storage)
		},
		log: log,
		now: time.Now,
	}
}

// Source reports the configured backend
func (s *Service) Source() dom.Source { return s.source }

// Load reads and validates a fresh dataset and makes it current
func (s *Service) Load(ctx context.Context) (dom.Dataset, error) {
	start := s.now()
	rows, err := s.storage.LoadFacts(ctx)
	if err != nil {
		return dom.Dataset{}, perr.WithOp(err, "facts.load")
	}
	t, err := facts.NewTable(rows)
	if err != nil {
		return dom.Dataset{}, perr.WithOp(err, "facts.load")
	}
	names, err := s.storage.LoadStations(ctx)
	if err != nil {
		return dom.Dataset{}, perr.WithOp(err, "facts.load_stations")
	}
	derived := len(names) == 0
	if derived {
		names = t.Stations()
	}
	ds := dom.Dataset{
		Table:    t,
		Registry: facts.NewStationRegistry(names),
		Source:   s.source,
		LoadedAt: s.now().UTC(),
	}
	s.cur.Store(&ds)

	s.log.Info().
		Str("source", string(s.source)).
		Int("rows", t.Len()).
		Int("stations", len(t.Stations())).
		Int("known_stations", ds.Registry.Len()).
		Bool("registry_derived", derived).
		Dur("elapsed", s.now().Sub(start)).
		Msg("fact store loaded")
	return ds, nil
}

// Dataset returns the current dataset, loading it on first use;
// concurrent first callers share one load
func (s *Service) Dataset(ctx context.Context) (dom.Dataset, error) {
	if d := s.cur.Load(); d != nil {
		return *d, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if d := s.cur.Load(); d != nil {
		return *d, nil
	}
	return s.Load(ctx)
}

// Loaded reports whether a dataset is in memory
func (s *Service) Loaded() bool { return s.cur.Load() != nil }

// Writable reports whether the backend can be seeded
func (s *Service) Writable() bool { return s.tx != nil }

// EnsureSchema creates tables when missing
func (s *Service) EnsureSchema(ctx context.Context) error {
	if s.tx == nil {
		return perr.Newf(perr.ErrorCodeInvalidArgument, "source %s is read only", s.source)
	}
	return s.tx(ctx, func(w repo.Writable) error { return w.EnsureSchema(ctx) })
}

// Replace validates rows as a table, then truncates and rewrites both tables
func (s *Service) Replace(ctx context.Context, rows []facts.Record, stations []string) error {
	if s.tx == nil {
		return perr.Newf(perr.ErrorCodeInvalidArgument, "source %s is read only", s.source)
	}
	t, err := facts.NewTable(rows)
	if err != nil {
		return perr.WithOp(err, "facts.replace")
	}
	reg := facts.NewStationRegistry(stations)
	start := s.now()
	err = s.tx(ctx, func(w repo.Writable) error {
		if err := w.Truncate(ctx); err != nil {
			return err
		}
		if err := w.WriteFacts(ctx, t.Rows()); err != nil {
			return err
		}
		return w.WriteStations(ctx, reg.Names())
	})
	if err != nil {
		return perr.WithOp(err, "facts.replace")
	}
	s.log.Info().
		Str("source", string(s.source)).
		Int("rows", t.Len()).
		Int("stations", reg.Len()).
		Dur("elapsed", s.now().Sub(start)).
		Msg("fact store replaced")
	return nil
}
